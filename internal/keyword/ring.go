package keyword

// ring is a fixed-capacity sample buffer that overwrites the oldest samples
// when full. It is owned by the capture loop and not safe for concurrent use.
type ring struct {
	buf  []float32
	head int // next write position
	size int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]float32, capacity)}
}

// Write appends samples, dropping the oldest once capacity is reached.
func (r *ring) Write(samples []float32) {
	c := len(r.buf)
	if c == 0 {
		return
	}
	if len(samples) >= c {
		copy(r.buf, samples[len(samples)-c:])
		r.head = 0
		r.size = c
		return
	}
	n := copy(r.buf[r.head:], samples)
	if n < len(samples) {
		copy(r.buf, samples[n:])
	}
	r.head = (r.head + len(samples)) % c
	r.size = min(r.size+len(samples), c)
}

// Len returns the number of buffered samples.
func (r *ring) Len() int { return r.size }

// Cap returns the buffer capacity.
func (r *ring) Cap() int { return len(r.buf) }

// Snapshot copies the buffered samples out, oldest first.
func (r *ring) Snapshot() []float32 {
	out := make([]float32, r.size)
	start := (r.head - r.size + len(r.buf)) % max(len(r.buf), 1)
	n := copy(out, r.buf[start:min(start+r.size, len(r.buf))])
	copy(out[n:], r.buf[:r.size-n])
	return out
}

// Reset empties the buffer.
func (r *ring) Reset() {
	r.head = 0
	r.size = 0
}
