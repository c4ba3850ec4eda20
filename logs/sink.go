package logs

import "context"

// Sink is the output backend that receives forwarded calls.
//
// Arguments are passed through exactly as given at the call site. A Sink
// must be safe for concurrent use if it is bound to contexts shared across
// goroutines.
type Sink interface {
	Error(args ...any)
	Warn(args ...any)
	Info(args ...any)
	Log(args ...any)
	Debug(args ...any)
}

// DefaultContextProvider returns the context used by context-unaware
// logging methods. It returns [context.TODO] by default, which carries no
// sink; replace it to route those calls to a process-wide sink.
//
// It is read without synchronization. Assign it during initialization,
// before any goroutine logs, and do not change it afterwards.
//
//nolint:gochecknoglobals
var DefaultContextProvider = context.TODO

type sinkKey struct{}

// binding wraps the bound sink so that a nil sink can shadow an outer one.
type binding struct{ sink Sink }

// WithSink returns a copy of ctx in which s is the current sink.
//
// A nil s binds "no sink": calls made with the returned context (or its
// descendants) do nothing until another sink is bound.
func WithSink(ctx context.Context, s Sink) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, sinkKey{}, binding{sink: s})
}

// SinkFrom returns the current sink of ctx.
func SinkFrom(ctx context.Context) (Sink, bool) {
	if ctx == nil {
		return nil, false
	}

	b, ok := ctx.Value(sinkKey{}).(binding)
	if !ok || b.sink == nil {
		return nil, false
	}

	return b.sink, true
}

// Run calls body with a context derived from ctx in which s is the current
// sink, and returns body's results unchanged.
//
// The binding covers everything body does with that context, including
// goroutines it starts. Nested calls shadow s for their own extent only;
// callers holding ctx never observe s.
func Run[T any](
	ctx context.Context,
	s Sink,
	body func(context.Context) (T, error),
) (T, error) {
	return body(WithSink(ctx, s))
}

// Do is [Run] for bodies that only return an error.
func Do(ctx context.Context, s Sink, body func(context.Context) error) error {
	return body(WithSink(ctx, s))
}
