package log

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Sink adapts a [Logger] to receive calls forwarded by namespace handles,
// whose arguments are arbitrary values rather than a message and attributes.
//
// A leading string argument becomes the message. Each remaining argument
// becomes an attribute: [slog.Attr] values are kept as is, errors are keyed
// "error", and everything else is keyed by its position ("arg1", "arg2", ...).
type Sink struct {
	logger Logger
	ctx    context.Context //nolint:containedctx
}

// Sink returns a [Sink] writing to l. Records are handled with ctx, which
// may be nil.
func (l Logger) Sink(ctx context.Context) Sink {
	return Sink{logger: l, ctx: ctx}
}

func (s Sink) emit(level Level, args []any) {
	l := s.logger
	if l.Logger == nil {
		return
	}

	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	if !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pc uintptr
	if l.caller {
		pc = dispatchCaller()
	}

	msg, attrs := message(args)
	l.handle(ctx, pc, level, msg, attrs...)
}

// dispatchPackages returns the function name prefixes of the packages that
// dispatch calls from a call site to a Sink: this package and logs.
//
//nolint:gochecknoglobals
var dispatchPackages = sync.OnceValue(func() []string {
	fn := runtime.FuncForPC(reflect.ValueOf(message).Pointer()).Name()
	pkg := fn[:strings.LastIndex(fn, ".")]

	return []string{pkg + ".", pkg + "s."}
})

// dispatchCaller returns the pc of the first frame above the Sink that is
// outside the dispatch packages. Their test files count as callers.
func dispatchCaller() uintptr {
	var pcs [64]uintptr

	// Skip runtime.Callers and dispatchCaller.
	n := runtime.Callers(2, pcs[:])

	for _, pc := range pcs[:n] {
		frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()

		if strings.HasSuffix(frame.File, "_test.go") ||
			!slices.ContainsFunc(dispatchPackages(), func(prefix string) bool {
				return strings.HasPrefix(frame.Function, prefix)
			}) {
			return pc
		}
	}

	return 0
}

// Error logs args at Error level.
func (s Sink) Error(args ...any) { s.emit(LevelError, args) }

// Warn logs args at Warn level.
func (s Sink) Warn(args ...any) { s.emit(LevelWarn, args) }

// Info logs args at Info level.
func (s Sink) Info(args ...any) { s.emit(LevelInfo, args) }

// Log logs args at Log level.
func (s Sink) Log(args ...any) { s.emit(LevelLog, args) }

// Debug logs args at Debug level.
func (s Sink) Debug(args ...any) { s.emit(LevelDebug, args) }

// message splits forwarded arguments into a record message and attributes.
func message(args []any) (string, []slog.Attr) {
	var msg string

	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			msg, args = s, args[1:]
		}
	}

	attrs := make([]slog.Attr, 0, len(args))

	for i, arg := range args {
		switch v := arg.(type) {
		case slog.Attr:
			attrs = append(attrs, v)
		case error:
			attrs = append(attrs, slog.Any("error", v))
		case fmt.Stringer:
			attrs = append(attrs, slog.String("arg"+strconv.Itoa(i+1), v.String()))
		default:
			attrs = append(attrs, slog.Any("arg"+strconv.Itoa(i+1), v))
		}
	}

	return msg, attrs
}
