package resilience

import "time"

// Circuit breaker presets.
const (
	DefaultThreshold         = 5
	DefaultResetTimeout      = 30 * time.Second
	DefaultHalfOpenSuccesses = 3

	// Inference calls run every listener cycle, so a dead runtime should
	// be noticed quickly.
	InferenceThreshold         = 3
	InferenceResetTimeout      = 10 * time.Second
	InferenceHalfOpenSuccesses = 2

	// Training batches are long and rare.
	TrainingThreshold         = 10
	TrainingResetTimeout      = 60 * time.Second
	TrainingHalfOpenSuccesses = 5
)

// Config holds circuit breaker settings.
type Config struct {
	Name              string           // used in log lines
	Threshold         int              // failures before opening
	ResetTimeout      time.Duration    // wait before a half-open trial call
	HalfOpenSuccesses int              // successes needed to close
	IsFailure         func(error) bool // which errors count; nil counts transport errors only
}

// DefaultConfig returns general-purpose settings.
func DefaultConfig() Config {
	return Config{
		Name:              "default",
		Threshold:         DefaultThreshold,
		ResetTimeout:      DefaultResetTimeout,
		HalfOpenSuccesses: DefaultHalfOpenSuccesses,
	}
}

// InferenceConfig returns aggressive settings for per-cycle runtime calls.
func InferenceConfig() Config {
	return Config{
		Name:              "inference",
		Threshold:         InferenceThreshold,
		ResetTimeout:      InferenceResetTimeout,
		HalfOpenSuccesses: InferenceHalfOpenSuccesses,
	}
}

// TrainingConfig returns lenient settings for training calls.
func TrainingConfig() Config {
	return Config{
		Name:              "training",
		Threshold:         TrainingThreshold,
		ResetTimeout:      TrainingResetTimeout,
		HalfOpenSuccesses: TrainingHalfOpenSuccesses,
	}
}

func (c Config) withDefaults() Config {
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
	if c.ResetTimeout <= 0 {
		c.ResetTimeout = DefaultResetTimeout
	}
	if c.HalfOpenSuccesses <= 0 {
		c.HalfOpenSuccesses = DefaultHalfOpenSuccesses
	}
	if c.IsFailure == nil {
		c.IsFailure = IsRetryableGRPC
	}
	return c
}
