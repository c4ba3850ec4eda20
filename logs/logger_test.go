package logs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Gate_HandleAndGlobalLevels(t *testing.T) {
	f := New(WithPattern("*"), WithLevel(LevelWarn))
	l := f.Get("x")
	l.SetLevel(LevelInfo)

	sink := NewTestSink(t)
	ctx := WithSink(context.Background(), sink)

	l.LogContext(ctx, "suppressed")
	assert.Empty(t, sink.Calls(), "neither threshold admits log")

	l.InfoContext(ctx, "forwarded")
	require.Len(t, sink.Calls(), 1)
	assert.Equal(t, Call{Method: "info", Args: []any{"forwarded"}}, sink.Calls()[0])

	sink.Reset()
	f.SetLevel(LevelLog)
	l.LogContext(ctx, "global admits")
	assert.Equal(t, []string{"log"}, sink.Methods(), "global level loosens the gate")

	sink.Reset()
	f.SetLevel(LevelError)
	l.SetLevel(LevelDebug)
	l.DebugContext(ctx, "handle admits")
	assert.Equal(t, []string{"debug"}, sink.Methods(), "handle level loosens the gate")
}

func TestLogger_Gate_Disabled(t *testing.T) {
	f := New(WithPattern("-x,*"), WithLevel(LevelTrace))
	sink := NewTestSink(t)
	ctx := WithSink(context.Background(), sink)

	f.Get("x").ErrorContext(ctx, "dropped")
	assert.Empty(t, sink.Calls())

	f.Enable("x")
	f.Get("x").ErrorContext(ctx, "kept")
	assert.Equal(t, []string{"error"}, sink.Methods(), "enable applies to held handles")
}

func TestLogger_NoSink_NoOp(t *testing.T) {
	f := New(WithPattern("*"), WithLevel(LevelTrace))
	l := f.Get("x")

	assert.NotPanics(t, func() {
		l.ErrorContext(context.Background(), "nowhere")
		l.ErrorContext(nil, "nowhere") //nolint:staticcheck // nil context is tolerated
		l.Error("default context carries no sink")
		l.Trace("nor here")
	})
}

func TestLogger_Dispatch_SeverityBuckets(t *testing.T) {
	f := New(WithPattern("*"), WithLevel(LevelTrace))
	l := f.Get("x")

	tests := []struct {
		name   string
		call   func(context.Context)
		method string
		args   []any
	}{
		{"error", func(ctx context.Context) { l.ErrorContext(ctx, "e", 1) }, "error", []any{"e", 1}},
		{"warn", func(ctx context.Context) { l.WarnContext(ctx, "w") }, "warn", []any{"w"}},
		{"info", func(ctx context.Context) { l.InfoContext(ctx, "i") }, "info", []any{"i"}},
		{"write", func(ctx context.Context) { l.WriteContext(ctx, "msg") }, "info", []any{"msg"}},
		{"log", func(ctx context.Context) { l.LogContext(ctx, "l") }, "log", []any{"l"}},
		{"debug", func(ctx context.Context) { l.DebugContext(ctx, "d") }, "debug", []any{"d"}},
		{"trace", func(ctx context.Context) { l.TraceContext(ctx, "t") }, "debug", []any{"t"}},
		{"dir", func(ctx context.Context) { l.DirContext(ctx, "item", "opt") }, "debug", []any{"item", "opt"}},
		{"table", func(ctx context.Context) { l.TableContext(ctx, "rows", "a", "b") }, "debug", []any{"rows", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewTestSink(t)
			tt.call(WithSink(context.Background(), sink))

			require.Len(t, sink.Calls(), 1)
			assert.Equal(t, tt.method, sink.Calls()[0].Method)
			assert.Equal(t, tt.args, sink.Calls()[0].Args)
		})
	}
}

func TestLogger_SeverityThresholds(t *testing.T) {
	// Global level below every severity so only the handle level gates.
	f := New(WithPattern("*"), WithLevel(Level(-10)))
	l := f.Get("x")

	tests := []struct {
		name  string
		level Level
		call  func(context.Context)
	}{
		{"error", LevelError, func(ctx context.Context) { l.ErrorContext(ctx) }},
		{"warn", LevelWarn, func(ctx context.Context) { l.WarnContext(ctx) }},
		{"info", LevelInfo, func(ctx context.Context) { l.InfoContext(ctx) }},
		{"write", LevelInfo, func(ctx context.Context) { l.WriteContext(ctx, "") }},
		{"log", LevelLog, func(ctx context.Context) { l.LogContext(ctx) }},
		{"debug", LevelDebug, func(ctx context.Context) { l.DebugContext(ctx) }},
		{"dir", LevelDebug, func(ctx context.Context) { l.DirContext(ctx, nil) }},
		{"table", LevelDebug, func(ctx context.Context) { l.TableContext(ctx, nil) }},
		{"trace", LevelTrace, func(ctx context.Context) { l.TraceContext(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewTestSink(t)
			ctx := WithSink(context.Background(), sink)

			l.SetLevel(tt.level - 1)
			tt.call(ctx)
			assert.Empty(t, sink.Calls(), "below threshold")

			l.SetLevel(tt.level)
			tt.call(ctx)
			assert.Len(t, sink.Calls(), 1, "at threshold")
		})
	}
}

func TestLogger_UnforwardedOperations(t *testing.T) {
	f := New(WithPattern("*"), WithLevel(LevelTrace))
	l := f.Get("x")
	sink := NewTestSink(t)

	prev := DefaultContextProvider
	DefaultContextProvider = func() context.Context {
		return WithSink(context.Background(), sink)
	}
	defer func() { DefaultContextProvider = prev }()

	l.Assert(false, "never")
	l.Time("t")
	l.TimeLog("t", "x")
	l.TimeEnd("t")
	assert.Empty(t, sink.Calls())

	l.Info("through default provider")
	l.Dir("d")
	l.Table("t")
	l.Write("w")
	assert.Equal(t, []string{"info", "debug", "debug", "info"}, sink.Methods())
}

func TestLogger_Hooks(t *testing.T) {
	var fired []string

	hook := HookFunc(func(ns string, level Level) error {
		fired = append(fired, ns+"@"+level.String())

		return nil
	})

	var handled error

	failing := HookFunc(func(string, Level) error { return errors.New("boom") })

	f := New(
		WithPattern("*"),
		WithLevel(LevelInfo),
		WithHooks(hook, failing),
		WithErrorHandler(func(err error) { handled = err }),
	)
	l := f.Get("svc")
	ctx := WithSink(context.Background(), NewTestSink(t))

	l.DebugContext(ctx, "gated off")
	assert.Empty(t, fired, "hooks fire only for forwarded calls")

	l.WarnContext(ctx, "forwarded")
	assert.Equal(t, []string{"svc@warn"}, fired)
	require.Error(t, handled)
	assert.Contains(t, handled.Error(), "boom")
	assert.Contains(t, handled.Error(), "svc warn")
}
