package gesture

import "github.com/ayusman/kathak/internal/detector"

// Frame is one immutable landmark observation. A frame with Present == false
// is a valid observation meaning "no hand this frame"; its Hand field is zero
// and must not be interpreted.
type Frame struct {
	Present   bool
	Hand      detector.HandLandmarks
	Timestamp float64 // monotonic seconds
}

// FrameFrom builds a Frame from a detection result. A nil hand produces an
// absent frame.
func FrameFrom(hand *detector.HandLandmarks, timestamp float64) Frame {
	if hand == nil {
		return Frame{Timestamp: timestamp}
	}
	return Frame{
		Present:   true,
		Hand:      *hand,
		Timestamp: timestamp,
	}
}
