package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of one pretty handler. Styles are bound to a
// renderer for the handler's writer, so colors are dropped automatically
// when the writer is not a terminal.
type palette struct {
	key, str, num, dur, tim lipgloss.Style
	yes, no, null           lipgloss.Style
	levels                  map[Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		dur:  fg("5"),
		tim:  fg("4"),
		yes:  fg("2"),
		no:   fg("1"),
		null: fg("8"),
		levels: map[Level]lipgloss.Style{
			LevelError: fg("1").Bold(true),
			LevelWarn:  fg("3"),
			LevelInfo:  fg("2"),
			LevelLog:   fg("6"),
			LevelDebug: fg("4"),
			LevelTrace: fg("8"),
		},
	}
}

func (p *palette) level(l Level) lipgloss.Style {
	// Nearest named level at or below l.
	best, found := LevelTrace, false

	for named := range p.levels {
		if named <= l && (!found || named > best) {
			best, found = named, true
		}
	}

	return p.levels[best]
}

// prettyHandler renders records as colorized "key=value" lines, or as
// indented colorized JSON-like objects.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    *palette
	json   bool
	attrs  []slog.Attr
	groups []string
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	json bool,
) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
		pal:  newPalette(w),
		json: json,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, h.replace(nil, slog.Time(slog.TimeKey, r.Time)))
	}

	fields = append(fields, slog.Any(slog.LevelKey, Level(r.Level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	prefix := strings.Join(h.groups, ".")

	r.Attrs(func(a slog.Attr) bool {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}

		fields = append(fields, a)

		return true
	})

	buf := new(bytes.Buffer)

	if h.json {
		h.writeObject(buf, fields)
	} else {
		h.writeLine(buf, fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h

	prefix := strings.Join(h.groups, ".")

	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	if prefix != "" {
		for i := len(h.attrs); i < len(c.attrs); i++ {
			c.attrs[i].Key = prefix + "." + c.attrs[i].Key
		}
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// replace applies the configured ReplaceAttr function, if any.
func (h *prettyHandler) replace(groups []string, a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(groups, a)
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []slog.Attr) {
	for _, a := range fields {
		if a.Equal(slog.Attr{}) {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.render(a.Value))
	}
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, fields []slog.Attr) {
	buf.WriteString("{")

	first := true

	for _, a := range fields {
		if a.Equal(slog.Attr{}) {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteString("\n  ")
		buf.WriteString(h.pal.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(": ")
		buf.WriteString(h.render(a.Value))
	}

	buf.WriteString("\n}")
}

func (h *prettyHandler) render(v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		if h.json {
			return h.pal.str.Render(strconv.Quote(v.String()))
		}

		return h.pal.str.Render(v.String())

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.pal.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.pal.yes.Render("true")
		}

		return h.pal.no.Render("false")

	case slog.KindDuration:
		return h.pal.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.pal.tim.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		switch val := v.Any().(type) {
		case Level:
			name := strings.ToUpper(val.String())
			if h.json {
				name = strconv.Quote(name)
			}

			return h.pal.level(val).Render(name)

		case nil:
			return h.pal.null.Render("null")

		case error:
			return h.pal.no.Render(val.Error())
		}
	}

	if h.json {
		return h.pal.str.Render(strconv.Quote(v.String()))
	}

	return h.pal.str.Render(v.String())
}
