package explore

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/namedlogs/log"
)

var testNames = []string{"app:db", "app:http", "app:noisy", "worker"}

func newTestModel(spec string, h *History) model {
	if h == nil {
		h = NewHistory("")
	}

	return newModel(context.Background(), spec, testNames, h, log.Logger{})
}

func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}

	return m
}

func typeText(s string) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return keys
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestModel_TypingUpdatesNames(t *testing.T) {
	m := press(newTestModel("", nil), typeText("app:*,-app:noisy")...)

	if got := m.input.Value(); got != "app:*,-app:noisy" {
		t.Fatalf("input = %q", got)
	}

	view := m.View()
	for _, want := range []string{"✔ app:db", "✔ app:http", "✘ app:noisy", "✘ worker", "2/4 enabled"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_TabCompletion(t *testing.T) {
	m := press(newTestModel("", nil), typeText("wrk")...)

	if len(m.matches) != 1 {
		t.Fatalf("matches = %v", m.matches)
	}

	m = press(m, key(tea.KeyTab))

	if got := m.input.Value(); got != "worker" {
		t.Errorf("single candidate should complete, got %q", got)
	}
}

func TestModel_TabCycleAndEscape(t *testing.T) {
	m := press(newTestModel("x,-ap", nil))
	m.refreshMatches()

	if len(m.matches) < 2 {
		t.Fatalf("expected several matches, got %v", m.matches)
	}

	first := m.matches[0].Str
	second := m.matches[1].Str

	m = press(m, key(tea.KeyTab))
	if got := m.input.Value(); got != "x,-"+first {
		t.Errorf("first tab: input = %q", got)
	}

	m = press(m, key(tea.KeyTab))
	if got := m.input.Value(); got != "x,-"+second {
		t.Errorf("second tab: input = %q", got)
	}

	m = press(m, key(tea.KeyShiftTab))
	if got := m.input.Value(); got != "x,-"+first {
		t.Errorf("shift-tab: input = %q", got)
	}

	m = press(m, key(tea.KeyEsc))
	if got := m.input.Value(); got != "x,-ap" || m.tabActive {
		t.Errorf("escape should restore input, got %q (tab %v)", got, m.tabActive)
	}
}

func TestModel_CommitAndHistory(t *testing.T) {
	h := NewHistory("")
	m := newTestModel("", h)

	m = press(m, typeText("app:*")...)
	m = press(m, key(tea.KeyEnter))

	if m.committed != "app:*" || h.Len() != 1 {
		t.Fatalf("committed = %q, history = %v", m.committed, h.Entries())
	}

	m = press(m, key(tea.KeyCtrlC))
	if m.input.Value() != "" || m.quitting {
		t.Fatalf("ctrl+c should clear input, got %q (quitting %v)", m.input.Value(), m.quitting)
	}

	m = press(m, typeText("draft")...)
	m = press(m, key(tea.KeyUp))

	if got := m.input.Value(); got != "app:*" {
		t.Errorf("up: input = %q, want history entry", got)
	}

	m = press(m, key(tea.KeyDown))

	if got := m.input.Value(); got != "draft" {
		t.Errorf("down: input = %q, want draft", got)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel("", nil)

	next, cmd := m.Update(key(tea.KeyCtrlC))
	if !next.(model).quitting || cmd == nil {
		t.Error("ctrl+c on empty input should quit")
	}

	next, cmd = newTestModel("abc", nil).Update(key(tea.KeyCtrlD))
	if !next.(model).quitting || cmd == nil {
		t.Error("ctrl+d should quit")
	}

	if view := next.(model).View(); view != "" {
		t.Errorf("view after quit = %q", view)
	}
}

func TestRenderNames_Truncates(t *testing.T) {
	names := make([]string, maxRows+5)
	for i := range names {
		names[i] = "ns" + strings.Repeat("x", i)
	}

	out := renderNames("*", names)

	if !strings.Contains(out, "5 more") {
		t.Errorf("expected truncation marker:\n%s", out)
	}

	if !strings.Contains(out, "25/25 enabled") {
		t.Errorf("expected summary:\n%s", out)
	}

	if got := renderNames("*", nil); !strings.Contains(got, "no known namespaces") {
		t.Errorf("empty names: %q", got)
	}
}
