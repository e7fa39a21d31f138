package training

import (
	"maps"
	"strconv"
	"sync"

	apperrors "github.com/robodu/edgeml/internal/errors"
)

// Sample is one labeled bottleneck.
type Sample struct {
	Embedding  []float32
	Label      []float32 // one-hot
	ClassName  string
	ClassIndex int
}

// Store is the in-memory training set. It only grows through Add and only
// empties through Clear. While a training run holds it, mutations fail with
// TRAINING_IN_PROGRESS.
type Store struct {
	mu      sync.RWMutex
	dim     int
	classes *ClassMap
	samples []Sample
	counts  map[string]int
	held    bool
}

// NewStore creates an empty store for embeddings of length dim.
func NewStore(dim int, classes *ClassMap) *Store {
	return &Store{dim: dim, classes: classes, counts: make(map[string]int)}
}

// Classes returns the store's class map.
func (s *Store) Classes() *ClassMap { return s.classes }

// Dim returns the expected embedding length.
func (s *Store) Dim() int { return s.dim }

// Add appends a sample and returns the new total. Invalid input leaves the
// store unchanged.
func (s *Store) Add(embedding []float32, className string) (int, error) {
	if len(embedding) != s.dim {
		return 0, apperrors.Newf(apperrors.InvalidArgument, "embedding has %d values, want %d", len(embedding), s.dim).
			WithMetadata("class", className)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return 0, errTrainingInProgress()
	}

	idx, err := s.classes.Resolve(className)
	if err != nil {
		return 0, err
	}
	s.samples = append(s.samples, Sample{
		Embedding:  embedding,
		Label:      s.classes.OneHot(idx),
		ClassName:  className,
		ClassIndex: idx,
	})
	s.counts[className]++
	return len(s.samples), nil
}

// Count returns the number of samples.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples)
}

// CountByClass returns a copy of the per-class sample counts.
func (s *Store) CountByClass() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.counts)
}

// Clear drops every sample.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return errTrainingInProgress()
	}
	s.samples = nil
	s.counts = make(map[string]int)
	return nil
}

// Snapshot returns the current samples. The slice is a copy; the embeddings
// are shared and must not be modified.
func (s *Store) Snapshot() []Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// hold marks the store as in use by a training run. The returned func
// releases it.
func (s *Store) hold() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return nil, errTrainingInProgress()
	}
	s.held = true
	return func() {
		s.mu.Lock()
		s.held = false
		s.mu.Unlock()
	}, nil
}

// Training reports whether a run currently holds the store.
func (s *Store) Training() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.held
}

func errTrainingInProgress() *apperrors.AppError {
	return apperrors.New(apperrors.TrainingInProgress, "training is in progress")
}

// imbalance returns the smallest and largest class counts.
func imbalance(counts map[string]int) (lo, hi int) {
	first := true
	for _, n := range counts {
		if first {
			lo, hi, first = n, n, false
			continue
		}
		lo, hi = min(lo, n), max(hi, n)
	}
	return lo, hi
}

func countsAttr(counts map[string]int) map[string]string {
	out := make(map[string]string, len(counts))
	for k, v := range counts {
		out[k] = strconv.Itoa(v)
	}
	return out
}
