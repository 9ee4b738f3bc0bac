package gesture

import (
	"log"
	"math"

	"github.com/ayusman/kathak/internal/detector"
)

// degenerateSpan is the hand scale below which the thumb test is meaningless
// and the thumb is treated as not extended.
const degenerateSpan = 1e-6

// fingerJoints pairs each non-thumb fingertip with its PIP joint, in the
// order index, middle, ring, pinky.
var fingerJoints = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// poseTable maps the extension vector [thumb, index, middle, ring, pinky] to
// a pose. Any combination not listed classifies as UNKNOWN.
var poseTable = map[[5]bool]PoseLabel{
	{false, false, false, false, false}: PoseFist,
	{false, true, false, false, false}:  PoseIndexUp,
	{false, true, true, false, false}:   PoseVictory,
	{true, true, false, false, true}:    PoseILoveYou,
	{true, false, false, false, false}:  PoseThumbsUp,
	{true, true, true, true, true}:      PoseOpenPalm,
}

// PoseClassifier recognizes static hand poses from finger-extension geometry.
// It is a pure per-frame function: identical frames always classify to the
// same label.
type PoseClassifier struct {
	margin     float64
	thumbRatio float64
	debug      bool
}

func newPoseClassifier(cfg Config) *PoseClassifier {
	return &PoseClassifier{
		margin:     cfg.FingerMargin,
		thumbRatio: cfg.ThumbRatio,
		debug:      cfg.Debug,
	}
}

// ClassifyPose returns the pose label for a frame. An absent frame is UNKNOWN.
func (c *PoseClassifier) ClassifyPose(frame Frame) PoseLabel {
	if !frame.Present {
		return PoseUnknown
	}

	var extended [5]bool
	extended[0] = c.thumbExtended(&frame.Hand)
	for i, joints := range fingerJoints {
		extended[i+1] = c.fingerExtended(&frame.Hand, joints[0], joints[1])
	}

	label, ok := poseTable[extended]
	if !ok {
		label = PoseUnknown
	}

	if c.debug {
		log.Printf("pose: extended=%v label=%s", extended, label)
	}

	return label
}

// Classify implements Classifier.
func (c *PoseClassifier) Classify(frame Frame) Action {
	return c.ClassifyPose(frame).Action()
}

// Reset implements Classifier. The pose classifier is stateless.
func (c *PoseClassifier) Reset() {}

// Mode implements Classifier.
func (c *PoseClassifier) Mode() Mode { return ModePose }

// fingerExtended reports whether a fingertip sits above its PIP joint by at
// least the margin. Image y grows downward, so above means a smaller y.
func (c *PoseClassifier) fingerExtended(hand *detector.HandLandmarks, tip, pip int) bool {
	return hand.Points[tip].Y < hand.Points[pip].Y-c.margin
}

// thumbExtended uses horizontal distance from the wrist rather than the
// tip-above-PIP test, scaled by the hand span so the test holds at any
// distance from the camera. A degenerate span means the thumb test cannot be
// trusted and the thumb counts as not extended.
func (c *PoseClassifier) thumbExtended(hand *detector.HandLandmarks) bool {
	span := hand.Span()
	if span < degenerateSpan {
		return false
	}
	reach := math.Abs(hand.Points[detector.ThumbTip].X - hand.Points[detector.Wrist].X)
	return reach > c.thumbRatio*span
}
