package logs

import (
	"context"
	"sync"
)

var _ Handle = (*deferred)(nil)

// deferred is a handle whose target is resolved on first use after a
// factory has been installed. Until then each call resolves to [Noop].
type deferred struct {
	namespace string
	registry  *Registry

	mu     sync.Mutex
	handle Handle // nil while unresolved
}

// resolve returns the cached handle, materializing it from the installed
// factory if there is one.
func (d *deferred) resolve() Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handle != nil {
		return d.handle
	}

	fn, ok := d.registry.Factory()
	if !ok {
		return Noop
	}

	if h := fn(d.namespace); h != nil {
		d.handle = h

		return h
	}

	return Noop
}

func (d *deferred) Error(data ...any) { d.resolve().Error(data...) }

func (d *deferred) ErrorContext(ctx context.Context, data ...any) {
	d.resolve().ErrorContext(ctx, data...)
}

func (d *deferred) Warn(data ...any) { d.resolve().Warn(data...) }

func (d *deferred) WarnContext(ctx context.Context, data ...any) {
	d.resolve().WarnContext(ctx, data...)
}

func (d *deferred) Info(data ...any) { d.resolve().Info(data...) }

func (d *deferred) InfoContext(ctx context.Context, data ...any) {
	d.resolve().InfoContext(ctx, data...)
}

func (d *deferred) Log(data ...any) { d.resolve().Log(data...) }

func (d *deferred) LogContext(ctx context.Context, data ...any) {
	d.resolve().LogContext(ctx, data...)
}

func (d *deferred) Debug(data ...any) { d.resolve().Debug(data...) }

func (d *deferred) DebugContext(ctx context.Context, data ...any) {
	d.resolve().DebugContext(ctx, data...)
}

func (d *deferred) Trace(data ...any) { d.resolve().Trace(data...) }

func (d *deferred) TraceContext(ctx context.Context, data ...any) {
	d.resolve().TraceContext(ctx, data...)
}

func (d *deferred) Dir(item any, options ...any) {
	d.resolve().Dir(item, options...)
}

func (d *deferred) DirContext(ctx context.Context, item any, options ...any) {
	d.resolve().DirContext(ctx, item, options...)
}

func (d *deferred) Table(data any, properties ...string) {
	d.resolve().Table(data, properties...)
}

func (d *deferred) TableContext(
	ctx context.Context,
	data any,
	properties ...string,
) {
	d.resolve().TableContext(ctx, data, properties...)
}

func (d *deferred) Write(msg string) { d.resolve().Write(msg) }

func (d *deferred) WriteContext(ctx context.Context, msg string) {
	d.resolve().WriteContext(ctx, msg)
}

func (d *deferred) Assert(condition bool, data ...any) {
	d.resolve().Assert(condition, data...)
}

func (d *deferred) Time(label string) { d.resolve().Time(label) }

func (d *deferred) TimeEnd(label string) { d.resolve().TimeEnd(label) }

func (d *deferred) TimeLog(label string, data ...any) {
	d.resolve().TimeLog(label, data...)
}
