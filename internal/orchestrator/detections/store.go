// Package detections keeps a bounded history of keyword detections and
// hands new ones to the event consumer.
package detections

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/robodu/edgeml/internal/keyword"
)

// Detection is a recorded keyword event.
type Detection struct {
	ID         string    `json:"id"`
	Keyword    string    `json:"keyword"`
	Confidence float32   `json:"confidence"`
	LatencyMS  float64   `json:"latency_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// FromEvent converts a listener event, assigning it a new ID.
func FromEvent(ev keyword.Event) Detection {
	return Detection{
		ID:         uuid.NewString(),
		Keyword:    ev.Keyword,
		Confidence: ev.Confidence,
		LatencyMS:  float64(ev.Latency.Microseconds()) / 1000,
		Timestamp:  ev.Timestamp,
	}
}

// MemoryStore holds the most recent detections in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []Detection
	maxSize  int
	eventsCh chan Detection
	dropped  atomic.Int64
}

// NewStore creates a store keeping maxEntries detections and buffering
// eventBuffer undelivered events. A negative maxEntries keeps none.
func NewStore(maxEntries, eventBuffer int) *MemoryStore {
	maxEntries = max(maxEntries, 0)
	return &MemoryStore{
		entries:  make([]Detection, 0, maxEntries),
		maxSize:  maxEntries,
		eventsCh: make(chan Detection, eventBuffer),
	}
}

// Add records ev and returns the stored detection.
func (s *MemoryStore) Add(ev keyword.Event) Detection {
	d := FromEvent(ev)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, d)
	if len(s.entries) > s.maxSize {
		s.entries = s.entries[len(s.entries)-s.maxSize:]
	}
	return d
}

// Recent returns up to n detections, oldest first. n <= 0 returns all.
func (s *MemoryStore) Recent(n int) []Detection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := 0
	if n > 0 && n < len(s.entries) {
		start = len(s.entries) - n
	}
	out := make([]Detection, len(s.entries)-start)
	copy(out, s.entries[start:])
	return out
}

// Events returns the channel new detections are delivered on.
func (s *MemoryStore) Events() <-chan Detection {
	return s.eventsCh
}

// Emit delivers d without blocking; it is dropped when the buffer is full.
func (s *MemoryStore) Emit(d Detection) {
	select {
	case s.eventsCh <- d:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns how many events Emit has discarded.
func (s *MemoryStore) Dropped() int64 {
	return s.dropped.Load()
}
