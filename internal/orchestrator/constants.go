package orchestrator

// Orchestrator configuration constants
const (
	// DetectionEventBuffer is how many undelivered keyword events are kept
	// before new ones are dropped.
	DetectionEventBuffer = 64

	// ImbalanceRatio flags a training set whose largest class exceeds the
	// smallest by more than this factor.
	ImbalanceRatio = 3
)
