// Package training holds labeled bottleneck samples and runs mini-batch
// training of a classifier head over them.
package training

import (
	"strconv"
	"sync"

	apperrors "github.com/robodu/edgeml/internal/errors"
)

// Naming selects how class names map to label indices.
type Naming string

const (
	// NamingOrdinal accepts only "1".."N", mapped to 0..N-1.
	NamingOrdinal Naming = "ordinal"
	// NamingRegistration assigns indices in first-seen order until N
	// classes are taken.
	NamingRegistration Naming = "registration"
)

// ClassMap resolves class names to stable one-hot indices.
type ClassMap struct {
	mu     sync.RWMutex
	naming Naming
	size   int
	index  map[string]int
	names  []string
}

// NewClassMap creates a map for size classes.
func NewClassMap(naming Naming, size int) (*ClassMap, error) {
	if size < 1 {
		return nil, apperrors.Newf(apperrors.InvalidArgument, "class count %d must be positive", size)
	}
	c := &ClassMap{naming: naming, size: size, index: make(map[string]int, size)}
	switch naming {
	case NamingOrdinal:
		for i := range size {
			name := strconv.Itoa(i + 1)
			c.index[name] = i
			c.names = append(c.names, name)
		}
	case NamingRegistration:
	default:
		return nil, apperrors.Newf(apperrors.InvalidArgument, "unknown class naming %q", naming)
	}
	return c, nil
}

// Size returns the number of output classes.
func (c *ClassMap) Size() int { return c.size }

// Naming returns the naming mode.
func (c *ClassMap) Naming() Naming { return c.naming }

// Lookup returns the index of a known class without registering it.
func (c *ClassMap) Lookup(name string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[name]
	return i, ok
}

// Resolve returns the index for name, registering it first when the map
// is in registration mode and has room.
func (c *ClassMap) Resolve(name string) (int, error) {
	if err := c.Accepts(name); err != nil {
		return 0, err
	}
	if i, ok := c.Lookup(name); ok {
		return i, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[name]; ok {
		return i, nil
	}
	if len(c.names) >= c.size {
		return 0, apperrors.Newf(apperrors.UnknownClass, "unknown class %q", name).
			WithMetadata("classes", strconv.Itoa(c.size))
	}
	i := len(c.names)
	c.index[name] = i
	c.names = append(c.names, name)
	return i, nil
}

// Accepts reports whether Resolve would succeed for name, without
// registering it.
func (c *ClassMap) Accepts(name string) error {
	if name == "" {
		return apperrors.New(apperrors.InvalidArgument, "class name is empty")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.index[name]; ok {
		return nil
	}
	if c.naming == NamingRegistration && len(c.names) < c.size {
		return nil
	}
	return apperrors.Newf(apperrors.UnknownClass, "unknown class %q", name).
		WithMetadata("classes", strconv.Itoa(c.size))
}

// Name returns the class name at index i, or its 1-based ordinal when the
// index has no registered name.
func (c *ClassMap) Name(i int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i >= 0 && i < len(c.names) {
		return c.names[i]
	}
	return strconv.Itoa(i + 1)
}

// OneHot encodes index i as a label vector.
func (c *ClassMap) OneHot(i int) []float32 {
	v := make([]float32, c.size)
	v[i] = 1
	return v
}
