package explore

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/namedlogs/namespace"
)

// isWordBoundary reports whether r separates tokens of a pattern spec.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', ',':
		return true
	}

	return false
}

// wordBounds returns the token at the cursor and its rune boundaries within
// input, excluding a leading negation. cursor is a rune offset, as reported
// by the text input.
func wordBounds(input string, cursor int) (word string, start, end int) {
	runes := []rune(input)
	cursor = max(0, min(cursor, len(runes)))

	start = cursor
	for start > 0 && !isWordBoundary(runes[start-1]) {
		start--
	}

	end = cursor
	for end < len(runes) && !isWordBoundary(runes[end]) {
		end++
	}

	if start < end && string(runes[start]) == namespace.Negate {
		start++
	}

	return string(runes[start:end]), start, end
}

// replaceWord substitutes s for the token at cursor, keeping any negation,
// and returns the new input with the cursor after the substitution.
func replaceWord(input string, cursor int, s string) (string, int) {
	_, start, end := wordBounds(input, cursor)
	runes := []rune(input)

	out := string(runes[:start]) + s + string(runes[end:])

	return out, start + len([]rune(s))
}

// complete returns the names fuzzy-matching word, best first. Wildcards in
// word are ignored. An empty word has no completions.
func complete(word string, names []string) fuzzy.Matches {
	word = strings.ReplaceAll(word, namespace.Wildcard, "")
	if word == "" {
		return nil
	}

	return fuzzy.Find(word, names)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := suggestionStyle.Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedStyle.Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
