package app

import (
	"log"
	"time"

	"github.com/ayusman/kathak/internal/capture"
	"github.com/ayusman/kathak/internal/detector"
	"github.com/ayusman/kathak/internal/gesture"
	"github.com/ayusman/kathak/internal/plugin"
)

// runPipeline is the main loop driving frames from the camera through
// classification to key injection.
//
// Pipeline logic:
//  1. Start in idle mode (5 FPS), watching for motion only
//  2. On motion, switch to active mode (15 FPS) and run hand detection
//  3. Classify the first detected hand (or an absent frame) into a raw action
//  4. Stabilize: only the IDLE-to-action edge fires, cooldown permitting
//  5. Map the confirmed action through the active profile and inject the key
//  6. After 2s without motion, drop back to idle mode
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false

	frameInterval := time.Second / capture.IdleFPS
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frameStart := time.Now()

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			moving, _ := a.activity.Observe(frame, frameStart)
			if moving {
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(capture.ActiveFPS)
					ticker.Reset(time.Second / capture.ActiveFPS)
					log.Println("Switched to active mode")
				}
			} else if activeMode && a.activity.QuietFor(IdleTimeout, frameStart) {
				activeMode = false
				a.camera.SetFPS(capture.IdleFPS)
				ticker.Reset(time.Second / capture.IdleFPS)
				log.Println("Switched to idle mode")
			}

			var hands []detector.HandLandmarks
			if activeMode {
				hands, err = a.Detector().Detect(frame)
				if err != nil {
					log.Printf("Error detecting hands: %v", err)
				}
			}
			frame.Close()

			// Absent frames flow through too: hand loss and idle mode both
			// re-arm the edge trigger.
			a.ProcessHands(hands, frameStart)

			frameEnd := time.Now()
			a.tracker.RecordFrame(frameEnd)
			a.tracker.RecordLatency(frameStart, frameEnd)
		}
	}
}

// ProcessHands runs one set of detected hands through classification,
// stabilization, and injection. Exported so tests can drive the pipeline
// without a camera.
func (a *App) ProcessHands(hands []detector.HandLandmarks, now time.Time) {
	var hand *detector.HandLandmarks
	if len(hands) > 0 {
		hand = &hands[0]
	}

	a.mu.RLock()
	classifier := a.classifier
	stabilizer := a.stabilizer
	mirror := a.config.Gesture.MirrorView
	a.mu.RUnlock()

	if hand != nil && mirror {
		mirrored := hand.Mirror()
		hand = &mirrored
	}

	frame := gesture.FrameFrom(hand, now.Sub(a.startTime).Seconds())
	raw := classifier.Classify(frame)

	action, fired := stabilizer.Observe(raw, frame.Timestamp)
	if !fired {
		return
	}

	key, mapped := a.profiles.Map(action)
	profileName := a.profiles.ActiveName()

	a.emit(Event{Action: action, Key: key, Profile: profileName, At: now})

	if !mapped {
		log.Printf("Action %s has no key in profile %q, dropped", action, profileName)
		return
	}

	a.inject(action, key, profileName)
}

// inject presses a key through the configured injector plugin.
func (a *App) inject(action gesture.Action, key, profileName string) {
	injector, err := a.pluginMgr.Get(a.config.Injector)
	if err != nil {
		log.Printf("Injector %q unavailable: %v", a.config.Injector, err)
		return
	}

	resp, err := a.pluginExec.Execute(injector, &plugin.Request{
		Command: plugin.CommandPress,
		Key:     key,
		Action:  string(action),
		Profile: profileName,
	})
	if err != nil {
		log.Printf("Key injection failed: %v", err)
		return
	}
	if !resp.Success {
		log.Printf("Injector rejected key %q: %s", key, resp.Error)
		return
	}

	log.Printf("Pressed %q for %s (%s)", key, action, profileName)
}
