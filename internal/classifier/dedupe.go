package classifier

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/corona10/goimagehash"

	"github.com/robodu/edgeml/internal/model"
	"github.com/robodu/edgeml/internal/trace"
)

type matchKind int

const (
	matchNone matchKind = iota
	matchDuplicate
	matchConflict
)

type hashEntry struct {
	hash  *goimagehash.ImageHash
	class string
}

// hashIndex remembers the perceptual hash of every stored sample so that
// re-adding the same picture, or the same picture under another class, can
// be reported. It never rejects a sample.
type hashIndex struct {
	mu          sync.Mutex
	maxDistance int // negative disables the check
	entries     []hashEntry
	duplicates  int
	conflicts   int
}

func newHashIndex(maxDistance int) *hashIndex {
	return &hashIndex{maxDistance: maxDistance}
}

// check hashes img and compares it with the stored samples. A nil hash
// means hashing is disabled or failed.
func (h *hashIndex) check(ctx context.Context, img model.Image, class string) (*goimagehash.ImageHash, matchKind) {
	if h.maxDistance < 0 {
		return nil, matchNone
	}
	log := trace.Logger(ctx)

	hash, err := goimagehash.PerceptionHash(toImage(img))
	if err != nil {
		log.Debug("sample hash failed", "error", err)
		return nil, matchNone
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	kind := matchNone
	for _, e := range h.entries {
		dist, err := e.hash.Distance(hash)
		if err != nil || dist > h.maxDistance {
			continue
		}
		if e.class != class {
			log.Warn("sample resembles one labeled with another class", "class", class, "other_class", e.class, "distance", dist)
			return hash, matchConflict
		}
		kind = matchDuplicate
	}
	if kind == matchDuplicate {
		log.Warn("near-duplicate sample", "class", class)
	}
	return hash, kind
}

// record stores the hash of a sample that was accepted.
func (h *hashIndex) record(hash *goimagehash.ImageHash, class string, kind matchKind) {
	if hash == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, hashEntry{hash: hash, class: class})
	switch kind {
	case matchDuplicate:
		h.duplicates++
	case matchConflict:
		h.conflicts++
	}
}

func (h *hashIndex) counts() (duplicates, conflicts int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.duplicates, h.conflicts
}

// toImage converts a [0,1] HWC tensor to an 8-bit image. One channel is
// read as gray; otherwise the first three are RGB.
func toImage(img model.Image) image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	if img.Channels < 3 {
		gray := image.NewGray(rect)
		for y := range img.Height {
			for x := range img.Width {
				gray.SetGray(x, y, color.Gray{Y: to8(img.At(y, x, 0))})
			}
		}
		return gray
	}
	rgba := image.NewRGBA(rect)
	for y := range img.Height {
		for x := range img.Width {
			rgba.SetRGBA(x, y, color.RGBA{
				R: to8(img.At(y, x, 0)),
				G: to8(img.At(y, x, 1)),
				B: to8(img.At(y, x, 2)),
				A: 255,
			})
		}
	}
	return rgba
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
