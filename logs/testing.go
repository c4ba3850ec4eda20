package logs

import (
	"slices"
	"sync"
	"testing"
)

var _ Sink = (*TestSink)(nil)

// Call is one invocation recorded by a [TestSink].
type Call struct {
	Method string
	Args   []any
}

// TestSink is a [Sink] that records every call it receives.
type TestSink struct {
	t     testing.TB
	mu    sync.Mutex
	calls []Call
}

// NewTestSink returns a recording sink that also echoes calls to t.Log.
// t may be nil.
func NewTestSink(t testing.TB) *TestSink {
	if t != nil {
		t.Helper()
	}

	return &TestSink{t: t}
}

func (s *TestSink) record(method string, args []any) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: method, Args: args})
	s.mu.Unlock()

	if s.t != nil {
		s.t.Log(append([]any{method + ":"}, args...)...)
	}
}

// Error implements [Sink].
func (s *TestSink) Error(args ...any) { s.record("error", args) }

// Warn implements [Sink].
func (s *TestSink) Warn(args ...any) { s.record("warn", args) }

// Info implements [Sink].
func (s *TestSink) Info(args ...any) { s.record("info", args) }

// Log implements [Sink].
func (s *TestSink) Log(args ...any) { s.record("log", args) }

// Debug implements [Sink].
func (s *TestSink) Debug(args ...any) { s.record("debug", args) }

// Calls returns a copy of the recorded calls in order.
func (s *TestSink) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.calls)
}

// Methods returns the method names of the recorded calls in order.
func (s *TestSink) Methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	methods := make([]string, len(s.calls))
	for i, c := range s.calls {
		methods[i] = c.Method
	}

	return methods
}

// Reset discards the recorded calls.
func (s *TestSink) Reset() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}
