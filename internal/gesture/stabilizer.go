package gesture

import (
	"fmt"
	"math"
)

// Phase is the stabilizer's current state.
type Phase string

const (
	// PhaseIdle means the stabilizer is armed and will fire on the next
	// qualifying action.
	PhaseIdle Phase = "IDLE"
	// PhaseAction means an action has fired and the stabilizer is waiting
	// for an idle frame before re-arming.
	PhaseAction Phase = "ACTION"
)

// Stabilizer converts the raw per-frame action stream into edge-triggered,
// debounced events. It fires once on the IDLE to ACTION transition and then
// stays silent until it observes an idle frame AND the cooldown has elapsed.
// Both conditions are required: a held pose fires exactly once per hold, and
// the cooldown gives motion mode a minimum spacing guarantee even when label
// flicker produces spurious idle frames.
//
// The stabilizer is strategy-agnostic: it sees only the shared Action
// alphabet and never inspects which classifier produced it.
type Stabilizer struct {
	cooldown float64
	phase    Phase
	lastEmit float64
	lastRaw  Action
}

// NewStabilizer creates a stabilizer with the given cooldown in seconds.
// lastEmit starts at -Inf so the very first gesture is never blocked.
func NewStabilizer(cooldownS float64) (*Stabilizer, error) {
	if cooldownS <= 0 {
		return nil, fmt.Errorf("cooldown must be positive, got %v", cooldownS)
	}
	return &Stabilizer{
		cooldown: cooldownS,
		phase:    PhaseIdle,
		lastEmit: math.Inf(-1),
		lastRaw:  ActionIdle,
	}, nil
}

// Observe consumes one raw action with its observation time and reports
// whether a confirmed event fires this frame. now must be monotonic seconds
// on the same clock as frame timestamps.
func (s *Stabilizer) Observe(raw Action, now float64) (Action, bool) {
	s.lastRaw = raw

	if raw == ActionIdle {
		// Return to idle re-arms the machine; no event on this edge.
		s.phase = PhaseIdle
		return ActionIdle, false
	}

	if s.phase == PhaseAction {
		// Held or flickering action: nothing fires until an idle frame is
		// observed, even if the cooldown has long expired.
		return ActionIdle, false
	}

	if now-s.lastEmit < s.cooldown {
		return ActionIdle, false
	}

	s.phase = PhaseAction
	s.lastEmit = now
	return raw, true
}

// Phase returns the current phase.
func (s *Stabilizer) Phase() Phase { return s.phase }

// LastRaw returns the most recently observed raw action.
func (s *Stabilizer) LastRaw() Action { return s.lastRaw }

// Reset returns the stabilizer to its initial armed state.
func (s *Stabilizer) Reset() {
	s.phase = PhaseIdle
	s.lastEmit = math.Inf(-1)
	s.lastRaw = ActionIdle
}
