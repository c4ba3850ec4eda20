package namespace

import (
	"iter"
	"regexp"
	"strings"
)

// Wildcard matches any run of characters within a pattern token.
const Wildcard = "*"

// Negate prefixes a pattern token that disables matching namespaces.
const Negate = "-"

// separator splits a pattern specification into tokens.
var separator = regexp.MustCompile(`[\s,]+`)

// Rules holds the compiled matchers of a pattern specification.
//
// Order is preserved within each list, although it has no effect on the
// result of [Rules.Enabled].
type Rules struct {
	disabled []*regexp.Regexp
	enabled  []*regexp.Regexp
}

// Tokens returns an iterator over the non-empty tokens of spec.
func Tokens(spec string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, tok := range separator.Split(spec, -1) {
			if tok == "" {
				continue
			}

			if !yield(tok) {
				return
			}
		}
	}
}

// Compile parses spec into a new set of [Rules].
//
// Empty tokens are ignored. A token with a leading [Negate] is added to the
// disabled list with the prefix removed; all others are added to the
// enabled list.
func Compile(spec string) Rules {
	var r Rules

	for tok := range Tokens(spec) {
		if rest, ok := strings.CutPrefix(tok, Negate); ok {
			r.disabled = append(r.disabled, compile(rest))

			continue
		}

		r.enabled = append(r.enabled, compile(tok))
	}

	return r
}

// compile anchors tok and expands each [Wildcard] into a lazy match-all.
func compile(tok string) *regexp.Regexp {
	expanded := strings.ReplaceAll(tok, Wildcard, ".*?")

	rex, err := regexp.Compile("^" + expanded + "$")
	if err == nil {
		return rex
	}

	// Not a valid expression; fall back to matching the token literally.
	parts := strings.Split(tok, Wildcard)
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}

	return regexp.MustCompile("^" + strings.Join(parts, ".*?") + "$")
}

// Enabled reports whether name is enabled by r.
//
// A name ending in [Wildcard] names a parent namespace and is always
// enabled. Otherwise any disabled match wins, then any enabled match; a
// name matching nothing is disabled.
func (r Rules) Enabled(name string) bool {
	if strings.HasSuffix(name, Wildcard) {
		return true
	}

	for _, rex := range r.disabled {
		if rex.MatchString(name) {
			return false
		}
	}

	for _, rex := range r.enabled {
		if rex.MatchString(name) {
			return true
		}
	}

	return false
}

// IsZero reports whether r contains no matchers.
func (r Rules) IsZero() bool {
	return len(r.disabled) == 0 && len(r.enabled) == 0
}

// Patterns returns the source expressions of the enabled and disabled
// matchers, in compilation order.
func (r Rules) Patterns() (enabled, disabled []string) {
	for _, rex := range r.enabled {
		enabled = append(enabled, rex.String())
	}

	for _, rex := range r.disabled {
		disabled = append(disabled, rex.String())
	}

	return enabled, disabled
}

// Matches reports whether name matches at least one matcher in r, enabled
// or disabled. It distinguishes "disabled by default" from "disabled by a
// rule".
func (r Rules) Matches(name string) bool {
	for _, list := range [][]*regexp.Regexp{r.disabled, r.enabled} {
		for _, rex := range list {
			if rex.MatchString(name) {
				return true
			}
		}
	}

	return false
}
