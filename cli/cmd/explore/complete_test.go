package explore

import "testing"

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "app", 3, "app", 0, 3},
		{"after_comma", "a,wo", 4, "wo", 2, 4},
		{"after_space", "a wo", 4, "wo", 2, 4},
		{"negated", "a,-wo", 5, "wo", 3, 5},
		{"mid_word", "app:db", 2, "app:db", 0, 6},
		{"empty_at_boundary", "a,", 2, "", 2, 2},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
		{"multibyte", "é,wö", 4, "wö", 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestReplaceWord(t *testing.T) {
	tests := []struct {
		input, repl string
		cursor      int
		want        string
		wantCursor  int
	}{
		{"a,-wo", "worker", 5, "a,-worker", 9},
		{"ap,b", "app:db", 1, "app:db,b", 6},
		{"", "x", 0, "x", 1},
	}

	for _, tt := range tests {
		got, cursor := replaceWord(tt.input, tt.cursor, tt.repl)
		if got != tt.want || cursor != tt.wantCursor {
			t.Errorf("replaceWord(%q, %d, %q) = (%q, %d), want (%q, %d)",
				tt.input, tt.cursor, tt.repl, got, cursor, tt.want, tt.wantCursor)
		}
	}
}

func TestComplete(t *testing.T) {
	names := []string{"app:db", "app:http", "worker"}

	if got := complete("", names); got != nil {
		t.Errorf("empty word should not complete, got %v", got)
	}

	if got := complete("*", names); got != nil {
		t.Errorf("wildcard-only word should not complete, got %v", got)
	}

	got := complete("app:*h", names)
	if len(got) != 1 || got[0].Str != "app:http" {
		t.Errorf("complete(app:*h) = %v", got)
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := complete("a", []string{"alpha", "beta", "gamma"})

	if bar := renderCandidateBar(matches, 0, true, 80); bar == "" {
		t.Error("expected a candidate bar")
	}

	if bar := renderCandidateBar(matches, 0, false, 0); bar != "" {
		t.Errorf("zero width should render nothing, got %q", bar)
	}
}
