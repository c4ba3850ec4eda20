package logs

import "context"

// Handle is the set of logging operations available to call sites.
//
// It is implemented by [*Logger], by the deferred handles returned from
// [Registry.Logs], and by [Noop].
type Handle interface {
	Error(data ...any)
	ErrorContext(ctx context.Context, data ...any)
	Warn(data ...any)
	WarnContext(ctx context.Context, data ...any)
	Info(data ...any)
	InfoContext(ctx context.Context, data ...any)
	Log(data ...any)
	LogContext(ctx context.Context, data ...any)
	Debug(data ...any)
	DebugContext(ctx context.Context, data ...any)
	Trace(data ...any)
	TraceContext(ctx context.Context, data ...any)

	Dir(item any, options ...any)
	DirContext(ctx context.Context, item any, options ...any)
	Table(data any, properties ...string)
	TableContext(ctx context.Context, data any, properties ...string)
	Write(msg string)
	WriteContext(ctx context.Context, msg string)

	Assert(condition bool, data ...any)
	Time(label string)
	TimeEnd(label string)
	TimeLog(label string, data ...any)
}

// FactoryFunc mints the handle for a namespace.
type FactoryFunc func(namespace string) Handle

// Noop is a handle whose every operation does nothing.
//
//nolint:gochecknoglobals
var Noop Handle = noop{}

type noop struct{}

func (noop) Error(...any) {}
func (noop) ErrorContext(context.Context, ...any) {}
func (noop) Warn(...any) {}
func (noop) WarnContext(context.Context, ...any) {}
func (noop) Info(...any) {}
func (noop) InfoContext(context.Context, ...any) {}
func (noop) Log(...any) {}
func (noop) LogContext(context.Context, ...any) {}
func (noop) Debug(...any) {}
func (noop) DebugContext(context.Context, ...any) {}
func (noop) Trace(...any) {}
func (noop) TraceContext(context.Context, ...any) {}
func (noop) Dir(any, ...any) {}
func (noop) DirContext(context.Context, any, ...any) {}
func (noop) Table(any, ...string) {}
func (noop) TableContext(context.Context, any, ...string) {}
func (noop) Write(string) {}
func (noop) WriteContext(context.Context, string) {}
func (noop) Assert(bool, ...any) {}
func (noop) Time(string) {}
func (noop) TimeEnd(string) {}
func (noop) TimeLog(string, ...any) {}
