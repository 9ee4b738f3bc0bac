package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func testFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()

	frames := make([]*gocv.Mat, n)
	for i := range frames {
		mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		frames[i] = &mat
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

func TestMockCamera_ReadBeforeOpen(t *testing.T) {
	c := NewMockCamera(nil, false)

	if _, err := c.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() before Open error = %v, want ErrCameraNotOpen", err)
	}
}

func TestMockCamera_PlaybackExhausts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	c := NewMockCamera(testFrames(t, 2), false)
	if err := c.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	for i := 0; i < 2; i++ {
		frame, err := c.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		frame.Close()
	}

	if _, err := c.ReadFrame(); err == nil {
		t.Error("ReadFrame() past the end without loop should fail")
	}
}

func TestMockCamera_LoopWrapsAround(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	c := NewMockCamera(testFrames(t, 2), true)
	c.Open()
	defer c.Close()

	for i := 0; i < 5; i++ {
		frame, err := c.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d with loop error = %v", i, err)
		}
		frame.Close()
	}
}

func TestMockCamera_FPS(t *testing.T) {
	c := NewMockCamera(nil, false)

	if got := c.FPS(); got != ActiveFPS {
		t.Errorf("FPS() = %d, want %d", got, ActiveFPS)
	}

	c.SetFPS(IdleFPS)
	if got := c.FPS(); got != IdleFPS {
		t.Errorf("FPS() = %d, want %d", got, IdleFPS)
	}

	c.SetFPS(0)
	if got := c.FPS(); got != IdleFPS {
		t.Errorf("SetFPS(0) should be ignored, got %d", got)
	}
}
