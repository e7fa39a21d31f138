// Package keyword runs continuous keyword spotting over a microphone stream:
// a bounded window of recent audio is gated on energy, normalized, turned
// into a coefficient matrix and classified; confident, non-repeated
// detections are handed to a consumer.
package keyword

import "math"

// RMS returns the root-mean-square amplitude of samples, or 0 when empty.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Gate skips windows too quiet to contain speech.
type Gate struct {
	Threshold float64
}

// Open reports whether the window is loud enough to classify, along with
// its RMS. A window at exactly the threshold stays closed.
func (g Gate) Open(samples []float32) (float64, bool) {
	rms := RMS(samples)
	return rms, rms > g.Threshold
}

// Peak returns the largest absolute amplitude in samples.
func Peak(samples []float32) float32 {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

// Normalize returns a copy of samples scaled so the peak absolute amplitude
// is 1. Windows whose peak does not exceed floor are returned unscaled.
func Normalize(samples []float32, floor float64) []float32 {
	out := make([]float32, len(samples))
	copy(out, samples)

	peak := Peak(samples)
	if float64(peak) <= floor {
		return out
	}
	for i := range out {
		out[i] /= peak
	}
	return out
}
