// Package features turns a window of normalized audio into the fixed-shape
// coefficient matrix consumed by the keyword model.
//
// The transform is a cheap MFCC approximation rather than a true mel
// cepstrum: each frame is Hamming-windowed, its DFT magnitude spectrum is
// computed directly (no FFT), and coefficient row i samples a single
// spectrum bin at i*len(spectrum)/MelBins. The keyword model was trained
// against exactly this transform, so it must stay bit-compatible.
//
// Default parameters:
//
//	SampleRate:      16000
//	FrameSize:       512
//	NumCoefficients: 13
//	NumFrames:       100
//	MelBins:         26
//	Epsilon:         1e-10
package features

import (
	"fmt"
	"math"
)

// Config controls the coefficient matrix shape and framing.
type Config struct {
	SampleRate      int     // audio sample rate in Hz (default 16000)
	FrameSize       int     // samples per analysis frame (default 512)
	NumCoefficients int     // matrix rows (default 13)
	NumFrames       int     // matrix columns, frames beyond the input are zero (default 100)
	MelBins         int     // divisor used to pick the spectrum bin per row (default 26)
	Epsilon         float64 // log floor (default 1e-10)
}

// DefaultConfig returns the configuration the bundled keyword model expects.
func DefaultConfig() Config {
	return Config{
		SampleRate:      16000,
		FrameSize:       512,
		NumCoefficients: 13,
		NumFrames:       100,
		MelBins:         26,
		Epsilon:         1e-10,
	}
}

// Validate reports a configuration the extractor cannot run with.
func (c Config) Validate() error {
	switch {
	case c.FrameSize < 2:
		return fmt.Errorf("features: frame size %d < 2", c.FrameSize)
	case c.NumCoefficients <= 0 || c.NumFrames <= 0:
		return fmt.Errorf("features: matrix shape %dx%d must be positive", c.NumCoefficients, c.NumFrames)
	case c.MelBins <= 0:
		return fmt.Errorf("features: mel bins %d must be positive", c.MelBins)
	case c.Epsilon <= 0:
		return fmt.Errorf("features: epsilon %g must be positive", c.Epsilon)
	}
	return nil
}

// Matrix is a [NumCoefficients][NumFrames] coefficient matrix.
type Matrix [][]float32

// Rows returns the number of coefficient rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the number of frames per row.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Flatten returns the matrix in row-major order, the layout of a
// [1, rows, cols, 1] model input tensor.
func (m Matrix) Flatten() []float32 {
	cols := m.Cols()
	flat := make([]float32, len(m)*cols)
	for i, row := range m {
		copy(flat[i*cols:], row)
	}
	return flat
}

// Extractor computes coefficient matrices. It is safe for concurrent use;
// all per-call state lives on the stack of Extract.
type Extractor struct {
	cfg    Config
	window []float64 // Hamming window
	bins   []int     // spectrum bin sampled by each coefficient row
	cos    [][]float64
	sin    [][]float64
}

// New creates an Extractor. It panics on an invalid Config.
func New(cfg Config) *Extractor {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	e := &Extractor{cfg: cfg}
	e.window = hammingWindow(cfg.FrameSize)
	e.bins = coefficientBins(cfg.NumCoefficients, cfg.FrameSize/2, cfg.MelBins)

	// Only the sampled bins are ever read, so only their twiddles are kept.
	n := cfg.FrameSize
	e.cos = make([][]float64, len(e.bins))
	e.sin = make([][]float64, len(e.bins))
	for i, k := range e.bins {
		e.cos[i] = make([]float64, n)
		e.sin[i] = make([]float64, n)
		for t := 0; t < n; t++ {
			angle := 2 * math.Pi * float64(k) * float64(t) / float64(n)
			e.cos[i][t] = math.Cos(angle)
			e.sin[i][t] = math.Sin(angle)
		}
	}
	return e
}

// Config returns the extractor configuration.
func (e *Extractor) Config() Config { return e.cfg }

// HopSize returns the frame advance for an input of n samples.
func (e *Extractor) HopSize(n int) int {
	return max(1, n/e.cfg.NumFrames)
}

// Extract computes the coefficient matrix for pcm. The result always has
// NumCoefficients rows of NumFrames columns; frames that do not fit in pcm
// are left at zero.
func (e *Extractor) Extract(pcm []float32) Matrix {
	cfg := e.cfg
	out := make(Matrix, cfg.NumCoefficients)
	for i := range out {
		out[i] = make([]float32, cfg.NumFrames)
	}

	hop := e.HopSize(len(pcm))
	frame := make([]float64, cfg.FrameSize)

	for col, pos := 0, 0; pos+cfg.FrameSize <= len(pcm) && col < cfg.NumFrames; col, pos = col+1, pos+hop {
		for i := range frame {
			frame[i] = float64(pcm[pos+i]) * e.window[i]
		}
		for row := range e.bins {
			out[row][col] = float32(math.Log(e.magnitude(frame, row) + cfg.Epsilon))
		}
	}
	return out
}

// magnitude evaluates |DFT| of frame at the bin sampled by row.
func (e *Extractor) magnitude(frame []float64, row int) float64 {
	var re, im float64
	c, s := e.cos[row], e.sin[row]
	for t, x := range frame {
		re += x * c[t]
		im -= x * s[t]
	}
	return math.Sqrt(re*re + im*im)
}

// hammingWindow returns 0.54 - 0.46*cos(2*pi*i/(n-1)).
func hammingWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// coefficientBins maps row i to clamp(i*spectrumLen/melBins, 0, spectrumLen-1).
func coefficientBins(rows, spectrumLen, melBins int) []int {
	bins := make([]int, rows)
	for i := range bins {
		bins[i] = min(max(i*spectrumLen/melBins, 0), spectrumLen-1)
	}
	return bins
}
