package gesture

// Classifier maps one landmark frame to a raw action. Implementations may
// keep per-instance state (the motion classifier does); none share state
// across instances, so independent pipelines never interfere.
type Classifier interface {
	// Classify consumes one frame and returns the raw action it observes.
	// Called at most once per frame, never concurrently.
	Classify(frame Frame) Action

	// Reset discards any accumulated per-frame state.
	Reset()

	// Mode reports which strategy this classifier implements.
	Mode() Mode
}

// New constructs the classifier selected by cfg.Mode. The configuration is
// validated here; an invalid configuration is a construction error, never a
// runtime clamp.
func New(cfg Config) (Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode == ModeMotion {
		return newMotionClassifier(cfg), nil
	}
	return newPoseClassifier(cfg), nil
}
