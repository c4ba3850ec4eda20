package logs

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/slot"
)

func fakeEnv(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]

		return v, ok
	}
}

func TestRegistry_Logs_NoFactory(t *testing.T) {
	env := map[string]string{"SET": "1", "EMPTY": ""}
	r := NewRegistry(nil, fakeEnv(env))

	tests := []struct {
		name     string
		opts     []LogsOption
		deferred bool
	}{
		{"default", nil, false},
		{"proxy", []LogsOption{FallbackOnProxy(true)}, true},
		{"proxy off", []LogsOption{FallbackOnProxy(false)}, false},
		{"env set", []LogsOption{FallbackOnEnv("SET")}, true},
		{"env empty", []LogsOption{FallbackOnEnv("EMPTY")}, false},
		{"env unset", []LogsOption{FallbackOnEnv("UNSET")}, false},
		{"env then proxy", []LogsOption{FallbackOnEnv("UNSET"), FallbackOnProxy(true)}, true},
		{"proxy then env", []LogsOption{FallbackOnProxy(true), FallbackOnEnv("UNSET")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := r.Logs("x", tt.opts...)

			if tt.deferred {
				assert.IsType(t, &deferred{}, h)
			} else {
				assert.Equal(t, Noop, h)
			}
		})
	}
}

func TestRegistry_Logs_Installed(t *testing.T) {
	r := NewRegistry(nil, nil)
	f := New(WithPattern("*"))
	r.InstallFactory(f)

	h := r.Logs("x", FallbackOnProxy(true))
	assert.Same(t, f.Get("x"), h, "installed factory wins over fallback")
}

func TestRegistry_Deferred_ResolvesAfterInstall(t *testing.T) {
	r := NewRegistry(nil, nil)
	h := r.Logs("late", FallbackOnProxy(true))

	sink := NewTestSink(t)
	ctx := WithSink(context.Background(), sink)

	h.InfoContext(ctx, "before install")
	assert.Empty(t, sink.Calls())

	first := New(WithPattern("*"), WithLevel(LevelTrace))
	r.InstallFactory(first)

	h.InfoContext(ctx, "after install")
	assert.Equal(t, []Call{{Method: "info", Args: []any{"after install"}}}, sink.Calls())

	second := New()
	r.InstallFactory(second)

	h.InfoContext(ctx, "resolution is cached")
	assert.Len(t, sink.Calls(), 2, "deferred handle keeps its first resolution")
	assert.Empty(t, second.Namespaces())
}

func TestRegistry_Install_LastWins(t *testing.T) {
	r := NewRegistry(nil, nil)
	a, b := New(), New()

	r.InstallFactory(a)
	r.InstallFactory(b)

	assert.Same(t, b.Get("x"), r.Logs("x"))
	assert.Empty(t, a.Namespaces())
}

func TestRegistry_Install_Nil(t *testing.T) {
	r := NewRegistry(nil, nil)
	r.Install(nil)

	_, ok := r.Factory()
	assert.False(t, ok)
	assert.Equal(t, Noop, r.Logs("x"))
}

func TestRegistry_SharedSlot(t *testing.T) {
	s := &slot.Slot{}
	host := NewRegistry(s, nil)
	library := NewRegistry(s, nil)

	h := library.Logs("lib", FallbackOnProxy(true))

	f := New(WithPattern("lib"), WithLevel(LevelTrace))
	host.InstallFactory(f)

	sink := NewTestSink(t)
	h.DebugContext(WithSink(context.Background(), sink), "found through slot")

	assert.Equal(t, []string{"debug"}, sink.Methods())
	assert.Same(t, f.Get("lib"), library.Logs("lib"))

	fn, ok := library.Factory()
	require.True(t, ok)
	assert.Same(t, f.Get("other"), fn("other"))
}

func TestRegistry_SlotAcceptsPlainFunc(t *testing.T) {
	s := &slot.Slot{}
	f := New()
	s.Publish(func(ns string) Handle { return f.Get(ns) })

	r := NewRegistry(s, nil)
	assert.Same(t, f.Get("x"), r.Logs("x"))

	s.Publish("not a factory")
	assert.Equal(t, Noop, r.Logs("x"))
}

func TestRegistry_Deferred_ReportsCaller(t *testing.T) {
	var buf bytes.Buffer

	out := log.Make(&buf,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithCaller(true),
	)
	ctx := WithSink(context.Background(), out.Sink(nil))

	r := NewRegistry(nil, nil)
	h := r.Logs("late", FallbackOnProxy(true))
	r.InstallFactory(New(WithPattern("*"), WithLevel(LevelTrace)))

	h.InfoContext(ctx, "through deferred")
	r.Logs("late").InfoContext(ctx, "through factory")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	for _, line := range lines {
		assert.Contains(t, string(line), "registry_test.go:")
		assert.NotContains(t, string(line), "deferred.go")
		assert.NotContains(t, string(line), "logger.go")
		assert.NotContains(t, string(line), "sink.go")
	}
}

// foreignHandle stands in for the handle type of another copy of this
// package: same method set, different type.
type foreignHandle struct {
	Handle
	ns    string
	infos *[]string
}

func (h foreignHandle) Info(...any) {
	*h.infos = append(*h.infos, h.ns)
}

func TestRegistry_SlotAcceptsForeignFactory(t *testing.T) {
	var infos []string

	s := &slot.Slot{}
	s.Publish(func(ns string) any {
		return foreignHandle{Handle: Noop, ns: ns, infos: &infos}
	})

	r := NewRegistry(s, nil)
	r.Logs("a").Info("x")
	r.Logs("b", FallbackOnProxy(true)).Info("y")
	assert.Equal(t, []string{"a", "b"}, infos)

	s.Publish(func(string) any { return "not a handle" })
	assert.Equal(t, Noop, r.Logs("c"))
}

func TestRegistry_Install_PublishesNeutralFactory(t *testing.T) {
	s := &slot.Slot{}
	f := New()
	NewRegistry(s, nil).InstallFactory(f)

	fn, ok := s.Load().(func(string) any)
	require.True(t, ok, "published factory should not name this package's types")
	assert.Same(t, f.Get("x"), fn("x"))

	NewRegistry(s, nil).Install(nil)
	assert.Nil(t, s.Load())
}

func TestRegistry_Deferred_UsesLatestInstallBeforeFirstUse(t *testing.T) {
	r := NewRegistry(nil, nil)
	h := r.Logs("late", FallbackOnProxy(true))

	a := New(WithPattern("*"), WithLevel(LevelTrace))
	b := New(WithPattern("*"), WithLevel(LevelTrace))
	r.InstallFactory(a)
	r.InstallFactory(b)

	sink := NewTestSink(t)
	h.WarnContext(WithSink(context.Background(), sink), "first use")

	assert.Equal(t, []string{"warn"}, sink.Methods())
	assert.Empty(t, a.Namespaces())
	assert.Equal(t, []string{"late"}, b.Namespaces())
}

func TestRegistry_Deferred_EnvForwardsAfterInstall(t *testing.T) {
	r := NewRegistry(nil, fakeEnv(map[string]string{"SET": "1"}))
	h := r.Logs("late", FallbackOnEnv("SET"))
	require.IsType(t, &deferred{}, h)

	sink := NewTestSink(t)
	ctx := WithSink(context.Background(), sink)

	h.ErrorContext(ctx, "before install")
	assert.Empty(t, sink.Calls())

	r.InstallFactory(New(WithPattern("late"), WithLevel(LevelTrace)))

	h.ErrorContext(ctx, "after install")
	assert.Equal(t, []Call{{Method: "error", Args: []any{"after install"}}}, sink.Calls())
}
