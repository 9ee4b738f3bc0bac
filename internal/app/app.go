// Package app wires the capture, classification, and injection stages into
// the gesture control pipeline.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/kathak/internal/capture"
	"github.com/ayusman/kathak/internal/detector"
	"github.com/ayusman/kathak/internal/gesture"
	"github.com/ayusman/kathak/internal/perf"
	"github.com/ayusman/kathak/internal/plugin"
	"github.com/ayusman/kathak/internal/profile"
	"github.com/ayusman/kathak/internal/store"
)

// Pipeline timing constants.
const (
	// IdleTimeout is how long without motion before dropping back to the
	// idle capture rate.
	IdleTimeout = 2 * time.Second
	// eventBufferSize bounds the event channel; slow websocket consumers
	// drop events rather than stall the pipeline.
	eventBufferSize = 64

	activeProfileKey = "active_profile"
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64
	Gesture      gesture.Config
	Injector     string
}

// Event is a confirmed game command emitted by the pipeline.
type Event struct {
	Action  gesture.Action `json:"action"`
	Key     string         `json:"key,omitempty"`
	Profile string         `json:"profile,omitempty"`
	At      time.Time      `json:"at"`
}

// App orchestrates frame capture, hand detection, gesture classification,
// and key injection.
type App struct {
	config     Config
	camera     capture.Camera
	activity   *capture.ActivityMonitor
	detector   detector.Detector
	classifier gesture.Classifier
	stabilizer *gesture.Stabilizer
	profiles   *profile.Registry
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	tracker    *perf.Tracker
	events     chan Event
	onEvent    func(Event)
	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
	startTime  time.Time
}

// New creates a new App instance. The gesture configuration is validated
// here; an invalid configuration fails construction instead of degrading
// silently at runtime.
func New(config Config) (*App, error) {
	classifier, err := gesture.New(config.Gesture)
	if err != nil {
		return nil, fmt.Errorf("invalid gesture config: %w", err)
	}
	stabilizer, err := gesture.NewStabilizer(config.Gesture.CooldownS)
	if err != nil {
		return nil, fmt.Errorf("invalid gesture config: %w", err)
	}

	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}
	if config.Injector == "" {
		config.Injector = "keyboard"
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(capture.Config{DeviceID: config.CameraID, Width: capture.DefaultWidth, Height: capture.DefaultHeight, FPS: capture.IdleFPS}),
		activity:   capture.NewActivityMonitor(motionThreshold),
		classifier: classifier,
		stabilizer: stabilizer,
		profiles:   profile.NewRegistry(),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(plugin.DefaultTimeoutMs),
		tracker:    perf.NewTracker(perf.DefaultWindowSize),
		events:     make(chan Event, eventBufferSize),
		startTime:  time.Now(),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// GestureConfig returns the current gesture configuration.
func (a *App) GestureConfig() gesture.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config.Gesture
}

// ApplyGestureConfig validates and installs a new gesture configuration,
// rebuilding the classifier and stabilizer. Running trajectory and
// edge-trigger state is discarded.
func (a *App) ApplyGestureConfig(cfg gesture.Config) error {
	classifier, err := gesture.New(cfg)
	if err != nil {
		return err
	}
	stabilizer, err := gesture.NewStabilizer(cfg.CooldownS)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.config.Gesture = cfg
	a.classifier = classifier
	a.stabilizer = stabilizer

	if a.config.Store != nil {
		saveGestureSettings(a.config.Store.Settings(), cfg)
	}
	return nil
}

// LoadProfiles loads game profiles from the database into the registry,
// seeding the built-in profiles on first run. The active selection is
// restored from settings.
func (a *App) LoadProfiles() error {
	if a.config.Store == nil {
		for _, p := range profile.Builtins() {
			a.profiles.Add(p)
		}
		return nil
	}

	repo := a.config.Store.Profiles()
	stored, err := repo.List()
	if err != nil {
		return err
	}

	if len(stored) == 0 {
		for _, p := range profile.Builtins() {
			record := &store.Profile{
				ID:       uuid.NewString(),
				Name:     p.Name,
				Builtin:  true,
				Bindings: bindingsFromProfile(p),
			}
			if err := repo.Create(record); err != nil {
				return fmt.Errorf("failed to seed profile %q: %w", p.Name, err)
			}
			stored = append(stored, record)
		}
		log.Printf("Seeded %d built-in profiles", len(stored))
	}

	for _, record := range stored {
		a.profiles.Add(RuntimeProfile(record))
	}

	if active := a.config.Store.Settings().GetString(activeProfileKey, ""); active != "" {
		if err := a.profiles.SetActive(active); err != nil {
			log.Printf("Stored active profile %q no longer exists", active)
		}
	}

	log.Printf("Loaded %d profiles", len(stored))
	return nil
}

// ActivateProfile switches the active profile and persists the selection.
func (a *App) ActivateProfile(name string) error {
	if err := a.profiles.SetActive(name); err != nil {
		return err
	}
	if a.config.Store != nil {
		if err := a.config.Store.Settings().Set(activeProfileKey, name); err != nil {
			log.Printf("Failed to persist active profile: %v", err)
		}
	}
	return nil
}

// RuntimeProfile converts a stored profile row into a runtime profile.
func RuntimeProfile(record *store.Profile) *profile.Profile {
	keys := make(map[gesture.Action]string, len(record.Bindings))
	for action, key := range record.Bindings {
		keys[gesture.Action(action)] = key
	}
	return &profile.Profile{
		ID:   record.ID,
		Name: record.Name,
		Keys: keys,
	}
}

// bindingsFromProfile converts runtime profile keys into storable bindings.
func bindingsFromProfile(p *profile.Profile) map[string]string {
	bindings := make(map[string]string, len(p.Keys))
	for action, key := range p.Keys {
		bindings[string(action)] = key
	}
	return bindings
}

// DiscoverPlugins scans the plugin directory for key injectors.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(capture.IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.activity.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Events returns the channel of confirmed game commands. There is one
// channel; a second in-process observer should use OnEvent instead.
func (a *App) Events() <-chan Event {
	return a.events
}

// OnEvent registers a callback invoked for every confirmed command, in
// addition to the event channel. Used by the tray. The callback runs on
// the pipeline goroutine and must return quickly.
func (a *App) OnEvent(fn func(Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEvent = fn
}

// emit publishes an event without ever blocking the pipeline.
func (a *App) emit(ev Event) {
	select {
	case a.events <- ev:
	default:
	}

	a.mu.RLock()
	fn := a.onEvent
	a.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
}

// Uptime returns how long the app has been running.
func (a *App) Uptime() time.Duration {
	return time.Since(a.startTime)
}

// FPS returns the pipeline's current processing rate.
func (a *App) FPS() float64 {
	return a.tracker.FPS()
}

// LatencyMs returns the last frame's processing latency in milliseconds.
func (a *App) LatencyMs() float64 {
	return a.tracker.LatencyMs()
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Profiles returns the profile registry.
func (a *App) Profiles() *profile.Registry {
	return a.profiles
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Store returns the backing store, which may be nil in tests.
func (a *App) Store() *store.Store {
	return a.config.Store
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
