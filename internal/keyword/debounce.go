package keyword

import (
	"sync"
	"time"
)

// Debouncer suppresses a keyword repeated within Interval of its previous
// emission. A different keyword always passes and becomes the new
// reference.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	last     string
	lastTime time.Time
}

// NewDebouncer creates a debouncer with the given repeat interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Allow reports whether keyword detected at may be emitted, and records it
// as the last emission when it may.
func (d *Debouncer) Allow(keyword string, at time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if keyword == d.last && at.Sub(d.lastTime) < d.interval {
		return false
	}
	d.last = keyword
	d.lastTime = at
	return true
}
