// Package model declares the capabilities the keyword listener and the
// transfer-learning classifier need from an inference engine. Engines are
// owned values: whoever opens one closes it.
package model

import (
	"context"
	"fmt"
)

// KeywordModel maps a flattened feature matrix to class probabilities.
type KeywordModel interface {
	Predict(ctx context.Context, features []float32) ([]float32, error)
	Close() error
}

// TransferModel is a frozen feature extractor plus a trainable head.
type TransferModel interface {
	// Load runs the frozen base over an image and returns its bottleneck.
	Load(ctx context.Context, img Image) ([]float32, error)
	// Train runs one optimization step over a batch and returns its loss.
	Train(ctx context.Context, bottlenecks, labels [][]float32) (float32, error)
	// Infer returns class probabilities for a single bottleneck.
	Infer(ctx context.Context, bottleneck []float32) ([]float32, error)
	Close() error
}

// KeywordOpener opens a keyword model handle.
type KeywordOpener func(ctx context.Context) (KeywordModel, error)

// TransferOpener opens a transfer model handle with a fresh head for
// classCount classes.
type TransferOpener func(ctx context.Context, classCount int) (TransferModel, error)

// Image is a height x width x channels tensor in row-major HWC order.
type Image struct {
	Height   int
	Width    int
	Channels int
	Pixels   []float32
}

// NewImage wraps a flat HWC pixel slice after checking its length.
func NewImage(pixels []float32, height, width, channels int) (Image, error) {
	if want := height * width * channels; len(pixels) != want {
		return Image{}, fmt.Errorf("image: got %d values, want %dx%dx%d = %d", len(pixels), height, width, channels, want)
	}
	return Image{Height: height, Width: width, Channels: channels, Pixels: pixels}, nil
}

// At returns the value at row y, column x, channel c.
func (img Image) At(y, x, c int) float32 {
	return img.Pixels[(y*img.Width+x)*img.Channels+c]
}

// ArgMax returns the index and value of the largest probability, or -1 for
// an empty vector.
func ArgMax(probs []float32) (int, float32) {
	best, bestVal := -1, float32(0)
	for i, p := range probs {
		if best < 0 || p > bestVal {
			best, bestVal = i, p
		}
	}
	return best, bestVal
}
