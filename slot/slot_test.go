package slot

import "testing"

func TestSlot_LastWriteWins(t *testing.T) {
	var s Slot

	if got := s.Load(); got != nil {
		t.Fatalf("expected empty slot, got %v", got)
	}

	s.Publish("first")
	s.Publish(2)

	if got := s.Load(); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
}
