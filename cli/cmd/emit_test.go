package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestEmit_Run(t *testing.T) {
	_, cfg := testState()

	var out bytes.Buffer

	ctx := WithOutput(WithConfig(context.Background(), cfg), &out)

	e := &Emit{Message: "hello", Namespaces: []string{"app:extra"}, At: "info", Metrics: true}
	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}

	var records []string

	for line := range strings.Lines(out.String()) {
		if strings.Contains(line, "hello") {
			records = append(records, line)
		}
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3:\n%s", len(records), out.String())
	}

	for _, name := range []string{"app:extra", "app:db", "app:http"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("output missing %s:\n%s", name, out.String())
		}
	}

	for _, name := range []string{"app:noisy", "worker"} {
		if strings.Contains(out.String(), name) {
			t.Errorf("disabled namespace %s was forwarded:\n%s", name, out.String())
		}
	}

	if want := `namedlogs_dispatch_calls_total{level="info"} 3`; !strings.Contains(out.String(), want) {
		t.Errorf("output missing %q:\n%s", want, out.String())
	}
}

func TestEmit_LevelGate(t *testing.T) {
	_, cfg := testState()

	var out bytes.Buffer

	ctx := WithOutput(WithConfig(context.Background(), cfg), &out)

	// Only app:db admits trace.
	e := &Emit{Message: "deep", At: "trace"}
	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(out.String(), "deep"); got != 1 {
		t.Errorf("got %d records, want 1:\n%s", got, out.String())
	}

	if !strings.Contains(out.String(), "app:db") || strings.Contains(out.String(), "namedlogs_") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
