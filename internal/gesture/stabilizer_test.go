package gesture

import "testing"

func TestNewStabilizer_InvalidCooldown(t *testing.T) {
	if _, err := NewStabilizer(0); err == nil {
		t.Error("NewStabilizer(0) should fail")
	}
	if _, err := NewStabilizer(-1); err == nil {
		t.Error("NewStabilizer(-1) should fail")
	}
}

func TestStabilizer_FirstGestureNotBlocked(t *testing.T) {
	s, err := NewStabilizer(0.5)
	if err != nil {
		t.Fatalf("NewStabilizer() error = %v", err)
	}

	// The very first observation fires even at time zero: lastEmit starts
	// at -Inf.
	action, fired := s.Observe(ActionJump, 0)
	if !fired || action != ActionJump {
		t.Errorf("Observe() = (%s, %v), want (%s, true)", action, fired, ActionJump)
	}
}

func TestStabilizer_EdgeTrigger(t *testing.T) {
	s, _ := NewStabilizer(0.5)

	// Raw sequence [IDLE, A, A, A, IDLE, A] with generous spacing: exactly
	// two events, one per run of A.
	sequence := []Action{ActionIdle, ActionLeft, ActionLeft, ActionLeft, ActionIdle, ActionLeft}

	var events []Action
	for i, raw := range sequence {
		if action, fired := s.Observe(raw, float64(i)); fired {
			events = append(events, action)
		}
	}

	if len(events) != 2 {
		t.Fatalf("got %d events %v, want 2", len(events), events)
	}
	for _, e := range events {
		if e != ActionLeft {
			t.Errorf("event = %s, want %s", e, ActionLeft)
		}
	}
}

func TestStabilizer_CooldownBlocksSecondEvent(t *testing.T) {
	s, _ := NewStabilizer(0.5)

	// [IDLE, A, IDLE, A] with the two A observations 0.2s apart: the idle
	// frame re-arms the edge detector but the cooldown still blocks.
	var count int
	steps := []struct {
		raw Action
		now float64
	}{
		{ActionIdle, 0.0},
		{ActionDuck, 0.1},
		{ActionIdle, 0.2},
		{ActionDuck, 0.3},
	}
	for _, step := range steps {
		if _, fired := s.Observe(step.raw, step.now); fired {
			count++
		}
	}

	if count != 1 {
		t.Errorf("got %d events, want 1", count)
	}
}

func TestStabilizer_HeldActionNeedsIdleAndCooldown(t *testing.T) {
	s, _ := NewStabilizer(0.1)

	// Fire once, then hold the action far past the cooldown. No idle frame
	// is ever observed, so nothing may re-fire.
	s.Observe(ActionJump, 0)
	for i := 1; i <= 10; i++ {
		if _, fired := s.Observe(ActionJump, float64(i)); fired {
			t.Fatalf("held action re-fired at t=%d", i)
		}
	}

	if s.Phase() != PhaseAction {
		t.Errorf("Phase() = %s, want %s", s.Phase(), PhaseAction)
	}
}

func TestStabilizer_LabelChangeWithoutIdleDoesNotFire(t *testing.T) {
	s, _ := NewStabilizer(0.1)

	s.Observe(ActionLeft, 0)
	if _, fired := s.Observe(ActionRight, 5); fired {
		t.Error("changing to another non-idle label without an idle frame must not fire")
	}

	// After an idle frame the new label fires.
	s.Observe(ActionIdle, 6)
	if action, fired := s.Observe(ActionRight, 7); !fired || action != ActionRight {
		t.Errorf("Observe() = (%s, %v), want (%s, true)", action, fired, ActionRight)
	}
}

func TestStabilizer_IdleTransitionEmitsNothing(t *testing.T) {
	s, _ := NewStabilizer(0.1)

	s.Observe(ActionDuck, 0)
	if _, fired := s.Observe(ActionIdle, 1); fired {
		t.Error("ACTION to IDLE transition must not emit")
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("Phase() = %s, want %s", s.Phase(), PhaseIdle)
	}
}

func TestStabilizer_Reset(t *testing.T) {
	s, _ := NewStabilizer(100)

	s.Observe(ActionJump, 0)
	s.Reset()

	// Reset restores the -Inf emit time, so the next gesture fires despite
	// the huge cooldown.
	if _, fired := s.Observe(ActionJump, 1); !fired {
		t.Error("Observe() after Reset() should fire")
	}
	if s.LastRaw() != ActionJump {
		t.Errorf("LastRaw() = %s, want %s", s.LastRaw(), ActionJump)
	}
}
