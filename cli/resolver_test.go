package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}

	return val
}

func TestResolve_TopLevelKeys(t *testing.T) {
	doc := `
namespaces: "app:*,-app:noisy"
level: info
log_format: text
levels:
  "app:db": trace
`

	resolver, err := resolve(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if val := resolveFlag(t, resolver, "namespaces"); val != "app:*,-app:noisy" {
		t.Errorf("expected namespaces=app:*,-app:noisy, got %v", val)
	}

	if val := resolveFlag(t, resolver, "level"); val != "info" {
		t.Errorf("expected level=info, got %v", val)
	}

	if val := resolveFlag(t, resolver, "absent"); val != nil {
		t.Errorf("expected nil for absent key, got %v", val)
	}
}

func TestResolve_UnderscoreHyphenMapping(t *testing.T) {
	resolver, err := resolve(strings.NewReader("log_level: debug\n"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	// Test underscore version (as stored in config)
	if val := resolveFlag(t, resolver, "log_level"); val != "debug" {
		t.Errorf("expected log_level=debug, got %v", val)
	}

	// Test hyphen version (should also work via underscore mapping)
	if val := resolveFlag(t, resolver, "log-level"); val != "debug" {
		t.Errorf("expected log-level=debug, got %v", val)
	}
}

func TestResolve_NestedMappings(t *testing.T) {
	doc := `
log:
  format: json
  caller: true
pprof:
  mode: cpu
`

	resolver, err := resolve(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-format", "json"},
		{"log-caller", true},
		{"pprof-mode", "cpu"},
		{"log", nil},
	}

	for _, tt := range tests {
		if val := resolveFlag(t, resolver, tt.flag); val != tt.want {
			t.Errorf("%s: expected %v, got %v (%T)", tt.flag, tt.want, val, val)
		}
	}
}

func TestResolve_Values(t *testing.T) {
	doc := `
level: 30
ratio: 0.5
negative: -2
source:
  - names.txt
  - 7
`

	resolver, err := resolve(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	for flag, want := range map[string]string{
		"level":    "30",
		"ratio":    "0.5",
		"negative": "-2",
	} {
		if val := resolveFlag(t, resolver, flag); val != want {
			t.Errorf("%s: expected %q, got %v (%T)", flag, want, val, val)
		}
	}

	items, ok := resolveFlag(t, resolver, "source").([]any)
	if !ok {
		t.Fatalf("expected source to be a sequence")
	}

	if !slices.Equal(items, []any{"names.txt", "7"}) {
		t.Errorf("expected [names.txt 7], got %v", items)
	}
}

func TestResolve_InvalidDocument(t *testing.T) {
	for _, doc := range []string{"namespaces: [unterminated\n", "- just\n- a list\n"} {
		resolver, err := resolve(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("invalid document should be ignored, got: %v", err)
		}

		if val := resolveFlag(t, resolver, "namespaces"); val != nil {
			t.Errorf("expected empty config for %q, got %v", doc, val)
		}
	}
}

func TestResolve_Empty(t *testing.T) {
	resolver, err := resolve(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if err := resolver.Validate(nil); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	if val := resolveFlag(t, resolver, "level"); val != nil {
		t.Errorf("expected nil, got %v", val)
	}
}

// TestResolve_ReadError verifies error handling for read failures.
func TestResolve_ReadError(t *testing.T) {
	_, err := resolve(&errorReader{err: bytes.ErrTooLarge})
	if err == nil {
		t.Error("expected read error")
	}
}

// errorReader is a reader that always returns an error.
type errorReader struct {
	err error
}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, e.err
}
