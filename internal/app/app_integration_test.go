package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/kathak/internal/detector"
	"github.com/ayusman/kathak/internal/gesture"
	"github.com/ayusman/kathak/internal/store"
)

func newTestApp(t *testing.T, mutate func(*gesture.Config)) (*App, *store.Store) {
	t.Helper()

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	cfg := gesture.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	a, err := New(Config{
		Store:     s,
		PluginDir: tmpDir,
		Gesture:   cfg,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a.SetDetector(detector.NewMockDetector())

	if err := a.LoadProfiles(); err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	return a, s
}

// drainEvents collects whatever is queued on the event channel.
func drainEvents(a *App) []Event {
	var events []Event
	for {
		select {
		case ev := <-a.Events():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestApp_PosePipeline_DebouncesHeldPose(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t, nil)

	base := time.Now()
	palm := []detector.HandLandmarks{detector.OpenPalmLandmarks()}
	fist := []detector.HandLandmarks{detector.FistLandmarks()}

	// Open palm is IDLE, then a fist held across three frames: the edge
	// fires exactly once.
	a.ProcessHands(palm, base)
	a.ProcessHands(fist, base.Add(100*time.Millisecond))
	a.ProcessHands(fist, base.Add(200*time.Millisecond))
	a.ProcessHands(fist, base.Add(300*time.Millisecond))

	events := drainEvents(a)
	if len(events) != 1 {
		t.Fatalf("got %d events %v, want 1", len(events), events)
	}
	if events[0].Action != gesture.ActionDuck {
		t.Errorf("event action = %s, want %s", events[0].Action, gesture.ActionDuck)
	}
	if events[0].Key != "down" {
		t.Errorf("event key = %q, want %q (Subway Surfers binding)", events[0].Key, "down")
	}
	if events[0].Profile != "Subway Surfers" {
		t.Errorf("event profile = %q, want %q", events[0].Profile, "Subway Surfers")
	}

	// Release to idle, wait out the cooldown, fist again: second event.
	a.ProcessHands(palm, base.Add(time.Second))
	a.ProcessHands(fist, base.Add(2*time.Second))

	events = drainEvents(a)
	if len(events) != 1 {
		t.Fatalf("got %d events after re-fire, want 1", len(events))
	}
}

func TestApp_ProfileSwitch_ChangesEmittedKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s := newTestApp(t, nil)

	if err := a.ActivateProfile("Temple Run"); err != nil {
		t.Fatalf("ActivateProfile() error = %v", err)
	}

	base := time.Now()
	a.ProcessHands([]detector.HandLandmarks{detector.OpenPalmLandmarks()}, base)
	a.ProcessHands([]detector.HandLandmarks{detector.IndexUpLandmarks()}, base.Add(100*time.Millisecond))

	events := drainEvents(a)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Action != gesture.ActionJump || events[0].Key != "w" {
		t.Errorf("event = (%s, %q), want (JUMP, \"w\") under Temple Run", events[0].Action, events[0].Key)
	}

	// The selection was persisted.
	if got := s.Settings().GetString("active_profile", ""); got != "Temple Run" {
		t.Errorf("persisted active profile = %q, want %q", got, "Temple Run")
	}
}

func TestApp_LoadProfiles_SeedsBuiltinsOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s := newTestApp(t, nil)

	stored, err := s.Profiles().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 seeded profiles, got %d", len(stored))
	}

	// A second load against the same store must not duplicate.
	if err := a.LoadProfiles(); err != nil {
		t.Fatalf("second LoadProfiles() error = %v", err)
	}
	stored, _ = s.Profiles().List()
	if len(stored) != 2 {
		t.Errorf("expected 2 profiles after reload, got %d", len(stored))
	}

	if got := a.Profiles().ActiveName(); got == "" {
		t.Error("expected an active profile after load")
	}
}

func TestApp_ApplyGestureConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s := newTestApp(t, nil)

	// Invalid config is rejected and the old one stays installed.
	bad := gesture.DefaultConfig()
	bad.CooldownS = 0
	if err := a.ApplyGestureConfig(bad); err == nil {
		t.Fatal("ApplyGestureConfig() accepted an invalid config")
	}
	if got := a.GestureConfig().CooldownS; got != gesture.DefaultConfig().CooldownS {
		t.Errorf("cooldown changed after rejected config: %v", got)
	}

	// Switching to motion mode takes effect and persists.
	motion := gesture.DefaultConfig()
	motion.Mode = gesture.ModeMotion
	motion.CooldownS = 0.8
	if err := a.ApplyGestureConfig(motion); err != nil {
		t.Fatalf("ApplyGestureConfig() error = %v", err)
	}
	if got := a.GestureConfig().Mode; got != gesture.ModeMotion {
		t.Errorf("mode = %s, want %s", got, gesture.ModeMotion)
	}

	loaded := LoadGestureConfig(s.Settings())
	if loaded.Mode != gesture.ModeMotion || loaded.CooldownS != 0.8 {
		t.Errorf("persisted config = (%s, %v), want (motion, 0.8)", loaded.Mode, loaded.CooldownS)
	}
}

func TestApp_MirrorView_FlipsMotionDirection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t, func(cfg *gesture.Config) {
		cfg.Mode = gesture.ModeMotion
		cfg.EMAAlpha = 1.0
		cfg.MirrorView = true
	})

	// Physical hand moving toward +x; in the mirrored view the player sees
	// it travel left, so the command must be LEFT.
	base := time.Now()
	for i := 0; i < 12; i++ {
		var hand detector.HandLandmarks
		hand.Points[detector.Wrist] = detector.Point3D{X: 0.2 + float64(i)*0.03, Y: 0.5}
		a.ProcessHands([]detector.HandLandmarks{hand}, base.Add(time.Duration(i)*30*time.Millisecond))
	}

	events := drainEvents(a)
	if len(events) == 0 {
		t.Fatal("expected a swipe event")
	}
	if events[0].Action != gesture.ActionLeft {
		t.Errorf("mirrored swipe action = %s, want %s", events[0].Action, gesture.ActionLeft)
	}
}

func TestNew_InvalidGestureConfig(t *testing.T) {
	cfg := gesture.DefaultConfig()
	cfg.CooldownS = -1

	if _, err := New(Config{Gesture: cfg}); err == nil {
		t.Error("New() should reject an invalid gesture config")
	}
}
