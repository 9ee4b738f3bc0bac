package gesture

import (
	"testing"

	"github.com/ayusman/kathak/internal/detector"
)

func newTestPoseClassifier(t *testing.T) *PoseClassifier {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Mode = ModePose

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	pc, ok := c.(*PoseClassifier)
	if !ok {
		t.Fatalf("New() returned %T, want *PoseClassifier", c)
	}
	return pc
}

func presentFrame(hand detector.HandLandmarks, ts float64) Frame {
	return FrameFrom(&hand, ts)
}

func TestPoseClassifier_Presets(t *testing.T) {
	c := newTestPoseClassifier(t)

	tests := []struct {
		name string
		hand detector.HandLandmarks
		want PoseLabel
	}{
		{"fist", detector.FistLandmarks(), PoseFist},
		{"index up", detector.IndexUpLandmarks(), PoseIndexUp},
		{"victory", detector.VictoryLandmarks(), PoseVictory},
		{"i love you", detector.ILoveYouLandmarks(), PoseILoveYou},
		{"thumbs up", detector.ThumbsUpLandmarks(), PoseThumbsUp},
		{"open palm", detector.OpenPalmLandmarks(), PoseOpenPalm},
	}

	for _, tt := range tests {
		got := c.ClassifyPose(presentFrame(tt.hand, 0))
		if got != tt.want {
			t.Errorf("%s: ClassifyPose() = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestPoseClassifier_AbsentFrame(t *testing.T) {
	c := newTestPoseClassifier(t)

	frame := FrameFrom(nil, 1.5)
	if frame.Present {
		t.Fatal("FrameFrom(nil) should produce an absent frame")
	}

	if got := c.ClassifyPose(frame); got != PoseUnknown {
		t.Errorf("ClassifyPose(absent) = %s, want %s", got, PoseUnknown)
	}
	if got := c.Classify(frame); got != ActionIdle {
		t.Errorf("Classify(absent) = %s, want %s", got, ActionIdle)
	}
}

func TestPoseClassifier_Deterministic(t *testing.T) {
	c := newTestPoseClassifier(t)
	frame := presentFrame(detector.VictoryLandmarks(), 2.0)

	first := c.ClassifyPose(frame)
	second := c.ClassifyPose(frame)

	if first != second {
		t.Errorf("classification changed between identical frames: %s then %s", first, second)
	}
	if first != PoseVictory {
		t.Errorf("ClassifyPose() = %s, want %s", first, PoseVictory)
	}
}

func TestPoseClassifier_VictoryGeometry(t *testing.T) {
	// Build the victory pose from raw coordinates rather than the preset:
	// index and middle fingertips above their PIP joints by more than the
	// margin, everything else retracted.
	hand := detector.FistLandmarks()
	hand.Points[detector.IndexTip] = detector.Point3D{X: 0.56, Y: 0.40}
	hand.Points[detector.IndexPIP] = detector.Point3D{X: 0.55, Y: 0.55}
	hand.Points[detector.MiddleTip] = detector.Point3D{X: 0.48, Y: 0.38}
	hand.Points[detector.MiddlePIP] = detector.Point3D{X: 0.49, Y: 0.52}

	c := newTestPoseClassifier(t)
	if got := c.ClassifyPose(presentFrame(hand, 0)); got != PoseVictory {
		t.Errorf("ClassifyPose() = %s, want %s", got, PoseVictory)
	}
}

func TestPoseClassifier_MarginSuppressesBoundaryFlicker(t *testing.T) {
	// A fingertip barely above its PIP joint must not count as extended.
	hand := detector.FistLandmarks()
	hand.Points[detector.IndexTip] = detector.Point3D{X: 0.55, Y: 0.655}
	hand.Points[detector.IndexPIP] = detector.Point3D{X: 0.55, Y: 0.66}

	c := newTestPoseClassifier(t)
	if got := c.ClassifyPose(presentFrame(hand, 0)); got != PoseFist {
		t.Errorf("ClassifyPose() = %s, want %s (index within margin)", got, PoseFist)
	}
}

func TestPoseClassifier_DegenerateSpan(t *testing.T) {
	// All landmarks collapsed onto one point: the thumb scale reference is
	// zero, so the thumb must be treated as not extended and the pose falls
	// through to the all-retracted row of the table.
	var hand detector.HandLandmarks
	for i := range hand.Points {
		hand.Points[i] = detector.Point3D{X: 0.5, Y: 0.5}
	}

	c := newTestPoseClassifier(t)
	if got := c.ClassifyPose(presentFrame(hand, 0)); got != PoseFist {
		t.Errorf("ClassifyPose(degenerate) = %s, want %s", got, PoseFist)
	}
}

func TestPoseClassifier_UnlistedCombination(t *testing.T) {
	// Ring and pinky only is not in the table.
	hand := detector.FistLandmarks()
	hand.Points[detector.RingTip] = detector.Point3D{X: 0.42, Y: 0.35}
	hand.Points[detector.PinkyTip] = detector.Point3D{X: 0.35, Y: 0.42}

	c := newTestPoseClassifier(t)
	if got := c.ClassifyPose(presentFrame(hand, 0)); got != PoseUnknown {
		t.Errorf("ClassifyPose() = %s, want %s", got, PoseUnknown)
	}
}

func TestPoseLabel_Action(t *testing.T) {
	tests := []struct {
		label PoseLabel
		want  Action
	}{
		{PoseFist, ActionDuck},
		{PoseIndexUp, ActionJump},
		{PoseVictory, ActionLeft},
		{PoseILoveYou, ActionRight},
		{PoseThumbsUp, ActionSelect},
		{PoseOpenPalm, ActionIdle},
		{PoseUnknown, ActionIdle},
	}

	for _, tt := range tests {
		if got := tt.label.Action(); got != tt.want {
			t.Errorf("%s.Action() = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestNew_InvalidPoseConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThumbRatio = 0
	if _, err := New(cfg); err == nil {
		t.Error("New() with zero thumb ratio should fail")
	}

	cfg = DefaultConfig()
	cfg.FingerMargin = -0.01
	if _, err := New(cfg); err == nil {
		t.Error("New() with negative finger margin should fail")
	}

	cfg = DefaultConfig()
	cfg.CooldownS = 0
	if _, err := New(cfg); err == nil {
		t.Error("New() with zero cooldown should fail")
	}

	cfg = DefaultConfig()
	cfg.Mode = "hybrid"
	if _, err := New(cfg); err == nil {
		t.Error("New() with unknown mode should fail")
	}
}
