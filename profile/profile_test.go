package profile

import "testing"

func TestProfiler_EmptyMode(t *testing.T) {
	stop := Profiler{}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Fatalf("expected no-op stopper, got %T", stop)
	}

	stop.Stop()
}

func TestProfiler_UnsupportedMode(t *testing.T) {
	stop := Profiler{Mode: "nonsense", Path: t.TempDir(), Quiet: true}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Fatalf("expected no-op stopper, got %T", stop)
	}

	stop.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled {
		if len(modes) != 0 {
			t.Errorf("expected no modes without profiling, got %v", modes)
		}

		return
	}

	for i := 1; i < len(modes); i++ {
		if modes[i-1] >= modes[i] {
			t.Errorf("modes not sorted: %v", modes)
		}
	}
}
