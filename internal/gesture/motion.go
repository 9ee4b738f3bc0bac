package gesture

import (
	"log"
	"math"

	"github.com/ayusman/kathak/internal/detector"
)

// trajectorySample is one smoothed wrist observation.
type trajectorySample struct {
	x, y float64
	t    float64
}

// MotionClassifier recognizes swipes from the smoothed wrist trajectory. It
// owns all of its state: an EMA accumulator, a fixed-capacity FIFO of recent
// samples, and the re-arm latch set after each emitted swipe.
type MotionClassifier struct {
	cfg Config

	emaX, emaY float64
	emaSet     bool

	hist []trajectorySample

	// Set under ResetReturn after a swipe: classification is suppressed
	// until the wrist returns within NeutralRadius of the swipe origin.
	awaitNeutral     bool
	anchorX, anchorY float64
}

func newMotionClassifier(cfg Config) *MotionClassifier {
	return &MotionClassifier{
		cfg:  cfg,
		hist: make([]trajectorySample, 0, cfg.BufferSize),
	}
}

// ClassifyMotion consumes one frame and returns the swipe it completes, or
// NONE. A non-NONE result also re-arms the classifier so one continuous
// motion cannot trigger on every frame it stays above threshold.
func (c *MotionClassifier) ClassifyMotion(frame Frame) MotionLabel {
	if !frame.Present {
		// The EMA accumulator is kept so the position stays stable when
		// the hand reappears.
		if c.cfg.ClearOnDrop {
			c.hist = c.hist[:0]
			c.awaitNeutral = false
		}
		return MotionNone
	}

	wrist := frame.Hand.Points[detector.Wrist]
	sx, sy := c.emaUpdate(wrist.X, wrist.Y)

	if c.awaitNeutral {
		if math.Hypot(sx-c.anchorX, sy-c.anchorY) <= c.cfg.NeutralRadius {
			c.awaitNeutral = false
		}
		return MotionNone
	}

	c.push(trajectorySample{x: sx, y: sy, t: frame.Timestamp})

	if len(c.hist) < 2 {
		return MotionNone
	}

	oldest := c.hist[0]
	newest := c.hist[len(c.hist)-1]

	dx := newest.x - oldest.x
	dy := newest.y - oldest.y
	distance := math.Hypot(dx, dy)
	elapsed := newest.t - oldest.t

	if elapsed <= 0 {
		return MotionNone
	}
	if distance < c.cfg.Deadzone {
		return MotionNone
	}
	if distance/elapsed < c.cfg.VMin {
		return MotionNone
	}

	label := c.classifyAngle(dx, dy)
	if c.cfg.Debug {
		log.Printf("motion: dx=%.4f dy=%.4f dist=%.4f v=%.4f label=%s",
			dx, dy, distance, distance/elapsed, label)
	}
	if label == MotionNone {
		return MotionNone
	}

	// Re-arm: this is the classifier's job, not the stabilizer's.
	switch c.cfg.ResetMode {
	case ResetReturn:
		c.awaitNeutral = true
		c.anchorX, c.anchorY = oldest.x, oldest.y
		c.hist = c.hist[:0]
	default:
		c.hist = c.hist[:0]
	}

	return label
}

// classifyAngle maps the displacement direction to a swipe. The movement
// angle selects the candidate direction and the matching axis must clear its
// own threshold, so a shallow diagonal drift never counts as a swipe. Image y
// grows downward: a negative dy is an upward swipe.
func (c *MotionClassifier) classifyAngle(dx, dy float64) MotionLabel {
	angle := math.Atan2(dy, dx) * 180 / math.Pi

	switch {
	case angle >= -45 && angle < 45:
		if math.Abs(dx) >= c.cfg.DXThresh {
			return SwipeRight
		}
	case angle >= 45 && angle < 135:
		if math.Abs(dy) >= c.cfg.DYThresh {
			return SwipeDown
		}
	case angle >= -135 && angle < -45:
		if math.Abs(dy) >= c.cfg.DYThresh {
			return SwipeUp
		}
	default:
		if math.Abs(dx) >= c.cfg.DXThresh {
			return SwipeLeft
		}
	}

	return MotionNone
}

// Classify implements Classifier.
func (c *MotionClassifier) Classify(frame Frame) Action {
	return c.ClassifyMotion(frame).Action()
}

// Reset implements Classifier. It returns the classifier to its freshly
// constructed state.
func (c *MotionClassifier) Reset() {
	c.hist = c.hist[:0]
	c.emaSet = false
	c.awaitNeutral = false
}

// Mode implements Classifier.
func (c *MotionClassifier) Mode() Mode { return ModeMotion }

// emaUpdate folds a raw wrist position into the running average. The first
// sample bootstraps the accumulator.
func (c *MotionClassifier) emaUpdate(x, y float64) (float64, float64) {
	if !c.emaSet {
		c.emaX, c.emaY = x, y
		c.emaSet = true
		return x, y
	}
	a := c.cfg.EMAAlpha
	c.emaX = a*x + (1-a)*c.emaX
	c.emaY = a*y + (1-a)*c.emaY
	return c.emaX, c.emaY
}

// push appends a sample, evicting the oldest when the buffer is full.
func (c *MotionClassifier) push(s trajectorySample) {
	if len(c.hist) >= c.cfg.BufferSize {
		copy(c.hist, c.hist[1:])
		c.hist = c.hist[:len(c.hist)-1]
	}
	c.hist = append(c.hist, s)
}
