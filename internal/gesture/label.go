// Package gesture implements the gesture classification and stabilization core:
// it turns per-frame hand landmark observations into a sparse stream of
// debounced game actions.
package gesture

// Action is a confirmed game command. It is the common alphabet shared by both
// classifier strategies and consumed by the stabilizer and profile mapper.
type Action string

const (
	ActionLeft   Action = "LEFT"
	ActionRight  Action = "RIGHT"
	ActionJump   Action = "JUMP"
	ActionDuck   Action = "DUCK"
	ActionSelect Action = "SELECT"
	ActionIdle   Action = "IDLE"
)

// PoseLabel is the result of static pose classification.
type PoseLabel string

const (
	PoseFist     PoseLabel = "FIST"
	PoseIndexUp  PoseLabel = "INDEX_UP"
	PoseVictory  PoseLabel = "VICTORY"
	PoseILoveYou PoseLabel = "I_LOVE_YOU"
	PoseThumbsUp PoseLabel = "THUMBS_UP"
	PoseOpenPalm PoseLabel = "OPEN_PALM"
	PoseUnknown  PoseLabel = "UNKNOWN"
)

// Action maps a pose to its game action. An open palm is the deliberate rest
// pose, so it maps to IDLE along with unrecognized hand shapes.
func (p PoseLabel) Action() Action {
	switch p {
	case PoseFist:
		return ActionDuck
	case PoseIndexUp:
		return ActionJump
	case PoseVictory:
		return ActionLeft
	case PoseILoveYou:
		return ActionRight
	case PoseThumbsUp:
		return ActionSelect
	default:
		return ActionIdle
	}
}

// MotionLabel is the result of trajectory classification.
type MotionLabel string

const (
	SwipeUp    MotionLabel = "SWIPE_UP"
	SwipeDown  MotionLabel = "SWIPE_DOWN"
	SwipeLeft  MotionLabel = "SWIPE_LEFT"
	SwipeRight MotionLabel = "SWIPE_RIGHT"
	MotionNone MotionLabel = "NONE"
)

// Action maps a swipe to its game action.
func (m MotionLabel) Action() Action {
	switch m {
	case SwipeUp:
		return ActionJump
	case SwipeDown:
		return ActionDuck
	case SwipeLeft:
		return ActionLeft
	case SwipeRight:
		return ActionRight
	default:
		return ActionIdle
	}
}
