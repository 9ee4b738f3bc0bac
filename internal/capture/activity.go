package capture

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Frame differencing constants.
const (
	// blurKernel is the Gaussian blur kernel size used to suppress sensor
	// noise before differencing.
	blurKernel = 21
	// diffThreshold is the per-pixel binary threshold on the absolute
	// difference image.
	diffThreshold = 25
)

// ActivityMonitor decides whether anything is moving in front of the camera.
// It runs frame differencing on consecutive frames and remembers when motion
// was last seen, which the pipeline uses to drop back to the idle capture
// rate after a quiet period.
type ActivityMonitor struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	lastMotion  time.Time
	mu          sync.Mutex
}

// NewActivityMonitor creates a monitor with the given threshold: the
// percentage of pixels that must change between frames to count as motion.
func NewActivityMonitor(threshold float64) *ActivityMonitor {
	return &ActivityMonitor{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Observe compares a frame against the previous one. It returns whether
// motion was seen and the percentage of pixels that changed. The first frame
// after creation or Reset only establishes the baseline.
func (m *ActivityMonitor) Observe(frame *gocv.Mat, now time.Time) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernel, Y: blurKernel}, 0, 0, gocv.BorderDefault)

	if !m.initialized {
		blurred.CopyTo(&m.prevGray)
		m.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()
	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&m.prevGray)

	moving := changePercent > m.threshold
	if moving {
		m.lastMotion = now
	}
	return moving, changePercent
}

// QuietFor reports whether no motion has been seen within the window ending
// at now. A monitor that has never seen motion counts as quiet.
func (m *ActivityMonitor) QuietFor(window time.Duration, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastMotion.IsZero() {
		return true
	}
	return now.Sub(m.lastMotion) >= window
}

// SetThreshold changes the motion threshold. Values less than or equal to 0
// are ignored.
func (m *ActivityMonitor) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.threshold = threshold
}

// Reset clears the baseline so the next frame re-initializes the monitor.
func (m *ActivityMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.release()
}

// Close releases resources used by the monitor.
func (m *ActivityMonitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.release()
}

func (m *ActivityMonitor) release() {
	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
	m.lastMotion = time.Time{}
}
