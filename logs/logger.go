package logs

import (
	"context"
	"sync/atomic"
)

var _ Handle = (*Logger)(nil)

// Logger is the handle of one namespace within a [Factory].
//
// Each call checks, at call time, that the handle is enabled and that its
// level or the factory's global level admits the call's severity. The call
// is then forwarded with its arguments unmodified to the [Sink] bound to the
// call's context. Failing either step makes the call a no-op.
type Logger struct {
	namespace string
	factory   *Factory

	level   atomic.Int64
	enabled atomic.Bool
}

// Namespace returns the namespace of l.
func (l *Logger) Namespace() string { return l.namespace }

// Level returns the level of l.
func (l *Logger) Level() Level { return Level(l.level.Load()) }

// SetLevel sets the level of l.
func (l *Logger) SetLevel(level Level) { l.level.Store(int64(level)) }

// Enabled reports whether the factory's namespace rules enable l, as of the
// last time they were applied.
func (l *Logger) Enabled() bool { return l.enabled.Load() }

// sink returns the sink a call at level should be forwarded to, or nil if
// the call is gated off or ctx carries no sink.
func (l *Logger) sink(ctx context.Context, level Level) Sink {
	if !l.enabled.Load() {
		return nil
	}

	if l.Level() < level && l.factory.Level() < level {
		return nil
	}

	s, ok := SinkFrom(ctx)
	if !ok {
		return nil
	}

	return s
}

// forward dispatches data to the sink method of level's severity bucket.
func (l *Logger) forward(ctx context.Context, level Level, data []any) {
	s := l.sink(ctx, level)
	if s == nil {
		return
	}

	switch {
	case level <= LevelError:
		s.Error(data...)
	case level == LevelWarn:
		s.Warn(data...)
	case level == LevelInfo:
		s.Info(data...)
	case level == LevelLog:
		s.Log(data...)
	default:
		s.Debug(data...)
	}

	l.factory.fire(l.namespace, level)
}

// Error forwards data at [LevelError].
func (l *Logger) Error(data ...any) {
	l.forward(DefaultContextProvider(), LevelError, data)
}

// ErrorContext forwards data at [LevelError] to the sink of ctx.
func (l *Logger) ErrorContext(ctx context.Context, data ...any) {
	l.forward(ctx, LevelError, data)
}

// Warn forwards data at [LevelWarn].
func (l *Logger) Warn(data ...any) {
	l.forward(DefaultContextProvider(), LevelWarn, data)
}

// WarnContext forwards data at [LevelWarn] to the sink of ctx.
func (l *Logger) WarnContext(ctx context.Context, data ...any) {
	l.forward(ctx, LevelWarn, data)
}

// Info forwards data at [LevelInfo].
func (l *Logger) Info(data ...any) {
	l.forward(DefaultContextProvider(), LevelInfo, data)
}

// InfoContext forwards data at [LevelInfo] to the sink of ctx.
func (l *Logger) InfoContext(ctx context.Context, data ...any) {
	l.forward(ctx, LevelInfo, data)
}

// Log forwards data at [LevelLog].
func (l *Logger) Log(data ...any) {
	l.forward(DefaultContextProvider(), LevelLog, data)
}

// LogContext forwards data at [LevelLog] to the sink of ctx.
func (l *Logger) LogContext(ctx context.Context, data ...any) {
	l.forward(ctx, LevelLog, data)
}

// Debug forwards data at [LevelDebug].
func (l *Logger) Debug(data ...any) {
	l.forward(DefaultContextProvider(), LevelDebug, data)
}

// DebugContext forwards data at [LevelDebug] to the sink of ctx.
func (l *Logger) DebugContext(ctx context.Context, data ...any) {
	l.forward(ctx, LevelDebug, data)
}

// Trace forwards data at [LevelTrace]. Sinks receive it as debug output.
func (l *Logger) Trace(data ...any) {
	l.forward(DefaultContextProvider(), LevelTrace, data)
}

// TraceContext forwards data at [LevelTrace] to the sink of ctx.
func (l *Logger) TraceContext(ctx context.Context, data ...any) {
	l.forward(ctx, LevelTrace, data)
}

// Dir forwards item and options at [LevelDebug].
func (l *Logger) Dir(item any, options ...any) {
	l.DirContext(DefaultContextProvider(), item, options...)
}

// DirContext forwards item and options at [LevelDebug] to the sink of ctx.
func (l *Logger) DirContext(ctx context.Context, item any, options ...any) {
	l.forward(ctx, LevelDebug, append([]any{item}, options...))
}

// Table forwards data and properties at [LevelDebug].
func (l *Logger) Table(data any, properties ...string) {
	l.TableContext(DefaultContextProvider(), data, properties...)
}

// TableContext forwards data and properties at [LevelDebug] to the sink of
// ctx.
func (l *Logger) TableContext(
	ctx context.Context,
	data any,
	properties ...string,
) {
	args := make([]any, 0, 1+len(properties))
	args = append(args, data)

	for _, p := range properties {
		args = append(args, p)
	}

	l.forward(ctx, LevelDebug, args)
}

// Write forwards msg at [LevelInfo].
func (l *Logger) Write(msg string) {
	l.forward(DefaultContextProvider(), LevelInfo, []any{msg})
}

// WriteContext forwards msg at [LevelInfo] to the sink of ctx.
func (l *Logger) WriteContext(ctx context.Context, msg string) {
	l.forward(ctx, LevelInfo, []any{msg})
}

// Assert does nothing. Sinks are not asked to evaluate assertions.
func (*Logger) Assert(bool, ...any) {}

// Time does nothing. Timers are left to the backend.
func (*Logger) Time(string) {}

// TimeEnd does nothing.
func (*Logger) TimeEnd(string) {}

// TimeLog does nothing.
func (*Logger) TimeLog(string, ...any) {}
