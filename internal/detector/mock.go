package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset landmarks for each hand pose the classifier recognizes. The geometry
// is anatomically plausible rather than captured: wrist at (0.5, 0.8), middle
// MCP at (0.5, 0.66), extended fingertips well above their PIP joints, curled
// fingertips at or below them, and the thumb tucked near the wrist x unless
// the pose extends it.

// FistLandmarks returns a preset with all five fingers curled.
func FistLandmarks() HandLandmarks {
	landmarks := baseHand()

	tuckThumb(&landmarks)
	curlIndex(&landmarks)
	curlMiddle(&landmarks)
	curlRing(&landmarks)
	curlPinky(&landmarks)

	return landmarks
}

// IndexUpLandmarks returns a preset with only the index finger extended.
func IndexUpLandmarks() HandLandmarks {
	landmarks := baseHand()

	tuckThumb(&landmarks)
	extendIndex(&landmarks)
	curlMiddle(&landmarks)
	curlRing(&landmarks)
	curlPinky(&landmarks)

	return landmarks
}

// VictoryLandmarks returns a preset with index and middle fingers extended.
func VictoryLandmarks() HandLandmarks {
	landmarks := baseHand()

	tuckThumb(&landmarks)
	extendIndex(&landmarks)
	extendMiddle(&landmarks)
	curlRing(&landmarks)
	curlPinky(&landmarks)

	return landmarks
}

// ILoveYouLandmarks returns a preset with thumb, index, and pinky extended.
func ILoveYouLandmarks() HandLandmarks {
	landmarks := baseHand()

	extendThumb(&landmarks)
	extendIndex(&landmarks)
	curlMiddle(&landmarks)
	curlRing(&landmarks)
	extendPinky(&landmarks)

	return landmarks
}

// ThumbsUpLandmarks returns a preset with only the thumb extended, pointing up.
func ThumbsUpLandmarks() HandLandmarks {
	landmarks := baseHand()

	// Thumb extended upward and to the side of the wrist
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	curlIndex(&landmarks)
	curlMiddle(&landmarks)
	curlRing(&landmarks)
	curlPinky(&landmarks)

	return landmarks
}

// OpenPalmLandmarks returns a preset with all five fingers extended.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := baseHand()

	extendThumb(&landmarks)
	extendIndex(&landmarks)
	extendMiddle(&landmarks)
	extendRing(&landmarks)
	extendPinky(&landmarks)

	return landmarks
}

// baseHand returns a hand skeleton with the wrist and the four finger MCP
// joints placed; finger segments are filled in by the curl/extend helpers.
func baseHand() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}

	return landmarks
}

func tuckThumb(h *HandLandmarks) {
	h.Points[ThumbCMC] = Point3D{X: 0.54, Y: 0.76, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.55, Y: 0.72, Z: -0.01}
	h.Points[ThumbIP] = Point3D{X: 0.53, Y: 0.70, Z: -0.02}
	h.Points[ThumbTip] = Point3D{X: 0.51, Y: 0.69, Z: -0.02}
}

func extendThumb(h *HandLandmarks) {
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	h.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}
}

func curlIndex(h *HandLandmarks) {
	h.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.66, Z: -0.05}
	h.Points[IndexDIP] = Point3D{X: 0.53, Y: 0.69, Z: -0.04}
	h.Points[IndexTip] = Point3D{X: 0.52, Y: 0.71, Z: -0.02}
}

func extendIndex(h *HandLandmarks) {
	h.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.55, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.45, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.57, Y: 0.36, Z: 0.0}
}

func curlMiddle(h *HandLandmarks) {
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.64, Z: -0.05}
	h.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.67, Z: -0.04}
	h.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.70, Z: -0.02}
}

func extendMiddle(h *HandLandmarks) {
	h.Points[MiddlePIP] = Point3D{X: 0.49, Y: 0.52, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.42, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.32, Z: 0.0}
}

func curlRing(h *HandLandmarks) {
	h.Points[RingPIP] = Point3D{X: 0.45, Y: 0.66, Z: -0.05}
	h.Points[RingDIP] = Point3D{X: 0.43, Y: 0.69, Z: -0.04}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.71, Z: -0.02}
}

func extendRing(h *HandLandmarks) {
	h.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}
}

func curlPinky(h *HandLandmarks) {
	h.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.69, Z: -0.05}
	h.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.71, Z: -0.04}
	h.Points[PinkyTip] = Point3D{X: 0.37, Y: 0.73, Z: -0.02}
}

func extendPinky(h *HandLandmarks) {
	h.Points[PinkyPIP] = Point3D{X: 0.38, Y: 0.60, Z: 0.0}
	h.Points[PinkyDIP] = Point3D{X: 0.36, Y: 0.50, Z: 0.0}
	h.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.42, Z: 0.0}
}
