package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/logs"
	"github.com/ardnew/namedlogs/namespace"
)

// tokenDelim separates tokens in a composed pattern spec.
const tokenDelim = ","

// Env prints a pattern spec composed from the active one.
type Env struct {
	Enable  []string `help:"Tokens to enable"                         sep:"," short:"e"`
	Disable []string `help:"Tokens to disable"                        sep:"," short:"d"`
	Export  bool     `help:"Print a shell export statement"                   short:"x"`
}

// Run executes the env command.
func (e *Env) Run(ctx context.Context) error {
	spec := Compose(configFrom(ctx).Namespaces, e.Enable, e.Disable)

	log.DebugContext(ctx, "compose pattern",
		slog.Any("enable", e.Enable),
		slog.Any("disable", e.Disable),
		slog.String("spec", spec),
	)

	w := outputFrom(ctx)

	if e.Export {
		_, err := fmt.Fprintf(w, "export %s=%s\n", logs.EnvNamespaces, shellQuote(spec))

		return err
	}

	_, err := fmt.Fprintln(w, spec)

	return err
}

// Compose returns spec with the enable and disable tokens placed first.
//
// Existing tokens that conflict with a new one are dropped: enabling a name
// removes its negation, and disabling one removes the plain token. A token
// given to both lists is disabled.
func Compose(spec string, enable, disable []string) string {
	var prefix []string

	for _, tok := range disable {
		if tok = pattern(tok); tok != "" {
			prefix = append(prefix, namespace.Negate+tok)
		}
	}

	for _, tok := range enable {
		if tok != "" && !slices.ContainsFunc(prefix, same(tok)) {
			prefix = append(prefix, tok)
		}
	}

	conflicts := func(tok string) bool {
		return slices.ContainsFunc(prefix, same(tok))
	}

	subject := slices.DeleteFunc(slices.Collect(namespace.Tokens(spec)), conflicts)

	return mung.Make(
		mung.WithSubjectItems(subject...),
		mung.WithDelim(tokenDelim),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(func(tok string) bool {
			return strings.TrimSpace(tok) != ""
		}),
	).String()
}

// pattern returns tok without its negation prefix.
func pattern(tok string) string {
	return strings.TrimPrefix(tok, namespace.Negate)
}

// same returns a predicate reporting whether a token names the same pattern
// as tok, negated or not.
func same(tok string) func(string) bool {
	return func(other string) bool { return pattern(other) == pattern(tok) }
}

// shellQuote quotes s for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
