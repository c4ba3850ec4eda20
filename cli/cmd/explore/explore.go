package explore

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/logs"
	"github.com/ardnew/namedlogs/namespace"
)

const prompt = "➜ "

const (
	defaultWidth = 80
	// maxRows limits the namespaces listed below the input line.
	maxRows = 20
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	enabledStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	disabledStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// model is the Bubble Tea model of the pattern editor.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	names        []string
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // fuzzy matches of the word at the cursor
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int
	draft        string // input before browsing history
	committed    string
	quitting     bool
}

// Run starts the pattern editor with spec as the initial input, showing
// whether each of names is enabled as the pattern is edited. It returns the
// last spec committed with Enter, or the empty string if none was.
func Run(
	ctx context.Context,
	spec string,
	names []string,
	history *History,
	logger log.Logger,
) (committed string, err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if history == nil {
		history = NewHistory("")
	}

	logger.TraceContext(ctx, "explore start",
		slog.String("spec", spec),
		slog.Int("namespaces", len(names)),
		slog.Int("history", history.Len()),
	)

	m := newModel(ctx, spec, names, history, logger)

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return "", err
	}

	if fm, ok := final.(model); ok {
		committed = fm.committed
	}

	logger.TraceContext(ctx, "explore stop", slog.String("committed", committed))

	return committed, nil
}

func newModel(
	ctx context.Context,
	spec string,
	names []string,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "app:*,-app:noisy"
	ti.CharLimit = 1024
	ti.Width = defaultWidth
	ti.SetValue(spec)
	ti.CursorEnd()
	ti.Focus()

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		names:      names,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))

	default:
		b.WriteString(hintStyle.Render(
			"Tab completes, Enter commits, Up/Down browse history, Ctrl+D exits"))
	}

	b.WriteString("\n")
	b.WriteString(renderNames(m.input.Value(), m.names))

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "explore keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches()

			return m, nil
		}

		return m.commit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyPrev(), nil

	case tea.KeyDown:
		return m.historyNext(), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()
		}

		return m, nil
	}

	var cmd tea.Cmd

	// Any other key accepts the candidate being cycled.
	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// commit records the current spec in the history and prints its
// environment assignment above the editor.
func (m model) commit() (model, tea.Cmd) {
	spec := strings.TrimSpace(m.input.Value())
	if spec == "" {
		return m, nil
	}

	m.committed = spec

	echo := tea.Println(formatInput(spec))
	line := tea.Println(resultStyle.Render(
		fmt.Sprintf("%s=%s", logs.EnvNamespaces, spec)))

	err := m.history.Add(spec)
	m.historyIdx = m.history.Len()

	if err != nil {
		m.logger.WarnContext(m.ctxFunc(), "save history", slog.Any("error", err))

		return m, tea.Sequence(echo, line,
			tea.Println(errorStyle.Render("history: "+err.Error())))
	}

	return m, tea.Sequence(echo, line)
}

// cycle selects the next (dir > 0) or previous candidate and substitutes
// it for the word at the cursor.
func (m model) cycle(dir int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if dir < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	} else {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

func (m *model) replaceWord(s string) {
	text := m.preTabText
	cursor := m.preTabCursor

	if !m.tabActive {
		text, cursor = m.input.Value(), m.input.Position()
	}

	value, pos := replaceWord(text, cursor, s)
	m.input.SetValue(value)
	m.input.SetCursor(pos)
}

func (m *model) refreshMatches() {
	if m.tabActive {
		return
	}

	word, _, _ := wordBounds(m.input.Value(), m.input.Position())
	m.matches = complete(word, m.names)
	m.suggIdx = -1
}

func (m model) historyPrev() model {
	if m.historyIdx == 0 {
		return m
	}

	if m.historyIdx == m.history.Len() {
		m.draft = m.input.Value()
	}

	m.historyIdx--
	m.showHistory()

	return m
}

func (m model) historyNext() model {
	if m.historyIdx >= m.history.Len() {
		return m
	}

	m.historyIdx++

	if m.historyIdx == m.history.Len() {
		m.input.SetValue(m.draft)
		m.input.CursorEnd()
		m.refreshMatches()

		return m
	}

	m.showHistory()

	return m
}

func (m *model) showHistory() {
	if spec, ok := m.history.Get(m.historyIdx); ok {
		m.tabActive = false
		m.input.SetValue(spec)
		m.input.CursorEnd()
		m.refreshMatches()
	}
}

// renderNames lists each of names with its enabled state under spec.
func renderNames(spec string, names []string) string {
	if len(names) == 0 {
		return hintStyle.Render("(no known namespaces)") + "\n"
	}

	rules := namespace.Compile(spec)

	var (
		b       strings.Builder
		enabled int
	)

	for i, name := range names {
		on := rules.Enabled(name)
		if on {
			enabled++
		}

		if i >= maxRows {
			continue
		}

		if on {
			b.WriteString(enabledStyle.Render("✔ " + name))
		} else {
			b.WriteString(disabledStyle.Render("✘ " + name))
		}

		b.WriteString("\n")
	}

	if len(names) > maxRows {
		b.WriteString(hintStyle.Render(fmt.Sprintf("… %d more", len(names)-maxRows)))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render(fmt.Sprintf("%d/%d enabled", enabled, len(names))))
	b.WriteString("\n")

	return b.String()
}

// formatInput renders spec the way the prompt shows it.
func formatInput(spec string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(spec)
}
