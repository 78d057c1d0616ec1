package starsurge

import (
	"slices"
	"testing"
)

func TestSchedulerFiresInTimeOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(0.3, func() { got = append(got, "c") })
	s.After(0.1, func() { got = append(got, "a") })
	s.After(0.1, func() { got = append(got, "b") })
	s.After(1.0, func() { got = append(got, "late") })

	if n := s.Advance(0.5); n != 3 {
		t.Errorf("Advance fired %d events, want 3", n)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	fired := false
	id := s.After(0.1, func() { fired = true })

	if !s.Cancel(id) {
		t.Fatal("Cancel should succeed for a pending event")
	}
	if s.Cancel(id) {
		t.Error("second Cancel should fail")
	}
	s.Advance(1)
	if fired {
		t.Error("cancelled event fired")
	}
}

func TestSchedulerResetDropsPending(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(0.5, func() { fired = true })
	s.Advance(0.2)

	gen := s.Generation()
	s.Reset()

	if s.Generation() != gen+1 {
		t.Errorf("Generation = %d, want %d", s.Generation(), gen+1)
	}
	if s.Now() != 0 {
		t.Errorf("Now = %f after reset, want 0", s.Now())
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after reset, want 0", s.Len())
	}
	s.Advance(1)
	if fired {
		t.Error("event from previous session fired")
	}
}

func TestSchedulerNestedEventsWaitForNextAdvance(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(0, func() {
		got = append(got, "outer")
		s.After(0, func() { got = append(got, "inner") })
	})

	s.Advance(0.1)
	if want := []string{"outer"}; !slices.Equal(got, want) {
		t.Fatalf("after first advance = %v, want %v", got, want)
	}
	s.Advance(0.1)
	if want := []string{"outer", "inner"}; !slices.Equal(got, want) {
		t.Errorf("after second advance = %v, want %v", got, want)
	}
}

func TestSchedulerResetInsideCallbackStopsFiring(t *testing.T) {
	s := NewScheduler()
	second := false
	s.After(0.1, func() { s.Reset() })
	s.After(0.1, func() { second = true })

	s.Advance(0.5)
	if second {
		t.Error("event fired after a callback reset the session")
	}
}

func TestSchedulerNegativeDelay(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(-5, func() { fired = true })
	s.Advance(0)
	if !fired {
		t.Error("negative delay should fire on the next advance")
	}
}
