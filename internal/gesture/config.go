package gesture

import "fmt"

// Mode selects the active classification strategy.
type Mode string

const (
	// ModePose classifies static hand poses from finger-extension geometry.
	ModePose Mode = "pose"
	// ModeMotion classifies swipes from the smoothed wrist trajectory.
	ModeMotion Mode = "motion"
)

// ResetMode controls how the motion classifier re-arms after emitting a swipe.
type ResetMode string

const (
	// ResetClear flushes the trajectory history after a swipe, so a new swipe
	// needs a full buffer of fresh motion.
	ResetClear ResetMode = "clear"
	// ResetReturn suppresses classification until the smoothed wrist returns
	// near the origin of the emitted swipe.
	ResetReturn ResetMode = "return"
)

// Config holds the tuning surface for the classification core. Invalid values
// are rejected at construction; nothing is clamped at runtime.
type Config struct {
	Mode Mode `json:"mode"`

	// CooldownS is the minimum spacing between confirmed actions, in seconds.
	CooldownS float64 `json:"cooldown_s"`

	// BufferSize is the trajectory ring buffer capacity (motion mode).
	BufferSize int `json:"buffer_size"`

	// EMAAlpha is the exponential smoothing factor for the wrist position
	// (motion mode). 1.0 disables smoothing.
	EMAAlpha float64 `json:"ema_alpha"`

	// DXThresh and DYThresh are the per-axis displacement a swipe must cover.
	DXThresh float64 `json:"dx_thresh"`
	DYThresh float64 `json:"dy_thresh"`

	// VMin is the minimum trajectory velocity in normalized units per second.
	VMin float64 `json:"vmin"`

	// Deadzone is the minimum total displacement; anything below is jitter.
	Deadzone float64 `json:"deadzone"`

	// FingerMargin is how far a fingertip must sit above its PIP joint to
	// count as extended (pose mode).
	FingerMargin float64 `json:"finger_margin"`

	// ThumbRatio scales the wrist-to-middle-MCP span to get the horizontal
	// distance the thumb tip must clear to count as extended (pose mode).
	ThumbRatio float64 `json:"thumb_ratio"`

	// ClearOnDrop flushes the trajectory history when the hand disappears.
	// When false a brief dropout preserves trajectory context. The EMA
	// accumulator survives either way.
	ClearOnDrop bool `json:"clear_on_drop"`

	// ResetMode and NeutralRadius control post-swipe re-arming (motion mode).
	// NeutralRadius is only consulted for ResetReturn.
	ResetMode     ResetMode `json:"reset_mode"`
	NeutralRadius float64   `json:"neutral_radius"`

	// MirrorView flips the x-axis of incoming landmarks before
	// classification, matching a selfie-style preview.
	MirrorView bool `json:"mirror_view"`

	// Debug enables per-frame diagnostic logging. No behavioral effect.
	Debug bool `json:"debug"`
}

// DefaultConfig returns the tuning values the original controller shipped
// with, biased toward stability over responsiveness.
func DefaultConfig() Config {
	return Config{
		Mode:          ModePose,
		CooldownS:     0.4,
		BufferSize:    12,
		EMAAlpha:      0.3,
		DXThresh:      0.12,
		DYThresh:      0.12,
		VMin:          0.08,
		Deadzone:      0.015,
		FingerMargin:  0.02,
		ThumbRatio:    0.4,
		ClearOnDrop:   true,
		ResetMode:     ResetClear,
		NeutralRadius: 0.05,
		MirrorView:    true,
	}
}

// Validate checks the configuration. It returns the first problem found.
func (c Config) Validate() error {
	if c.Mode != ModePose && c.Mode != ModeMotion {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.CooldownS <= 0 {
		return fmt.Errorf("cooldown must be positive, got %v", c.CooldownS)
	}
	if c.Mode == ModePose {
		if c.FingerMargin < 0 {
			return fmt.Errorf("finger margin must not be negative, got %v", c.FingerMargin)
		}
		if c.ThumbRatio <= 0 {
			return fmt.Errorf("thumb ratio must be positive, got %v", c.ThumbRatio)
		}
		return nil
	}
	if c.BufferSize < 2 {
		return fmt.Errorf("buffer size must be at least 2, got %d", c.BufferSize)
	}
	if c.EMAAlpha <= 0 || c.EMAAlpha > 1 {
		return fmt.Errorf("ema alpha must be in (0,1], got %v", c.EMAAlpha)
	}
	if c.DXThresh <= 0 || c.DYThresh <= 0 {
		return fmt.Errorf("axis thresholds must be positive, got dx=%v dy=%v", c.DXThresh, c.DYThresh)
	}
	if c.VMin < 0 {
		return fmt.Errorf("vmin must not be negative, got %v", c.VMin)
	}
	if c.Deadzone < 0 {
		return fmt.Errorf("deadzone must not be negative, got %v", c.Deadzone)
	}
	if c.ResetMode != ResetClear && c.ResetMode != ResetReturn {
		return fmt.Errorf("unknown reset mode %q", c.ResetMode)
	}
	if c.ResetMode == ResetReturn && c.NeutralRadius <= 0 {
		return fmt.Errorf("neutral radius must be positive, got %v", c.NeutralRadius)
	}
	return nil
}
