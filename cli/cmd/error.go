package cmd

import (
	"log/slog"
	"strings"
)

// Error is a failed command operation. Sentinels below name the operation;
// commands derive errors from them with [Error.With], [Error.Hint] and
// [Error.Wrap], and the derived errors still match the sentinel with
// [errors.Is].
//
// When logged, an Error expands into a group of its operation, cause, hint
// and attributes.
type Error struct {
	op    string
	cause error
	hint  string
	attrs []slog.Attr
}

func newError(op string) *Error { return &Error{op: op} }

// Error formats e as "<op>: <cause> (<hint>)", omitting empty parts.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.op)

	if e.cause != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}

		b.WriteString(e.cause.Error())
	}

	if e.hint != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString("(" + e.hint + ")")
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an Error for the same operation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.op == e.op
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.op != "" {
		attrs = append(attrs, slog.String("op", e.op))
	}

	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}

	if e.hint != "" {
		attrs = append(attrs, slog.String("hint", e.hint))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// clone returns a copy of e that does not share attrs.
func (e *Error) clone() *Error {
	c := *e
	c.attrs = append([]slog.Attr(nil), e.attrs...)

	return &c
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.cause = err

	return c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = append(c.attrs, attrs...)

	return c
}

// Hint returns a copy of e suggesting how the user can recover.
func (e *Error) Hint(hint string) *Error {
	c := e.clone()
	c.hint = hint

	return c
}

var (
	ErrMarshal     = newError("marshal output")
	ErrWriteConfig = newError("write configuration file")
	ErrFileExists  = newError("file exists")
	ErrFilter      = newError("filter namespaces")
	ErrReadSource  = newError("read namespace sources")
	ErrWatchConfig = newError("watch configuration file")
	ErrApplyConfig = newError("apply configuration")
	ErrExplore     = newError("explore patterns")
	ErrEmit        = newError("emit message")
)
