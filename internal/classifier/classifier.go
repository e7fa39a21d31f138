// Package classifier is the transfer-learning facade: images go through a
// frozen base model into bottlenecks, bottlenecks are stored as labeled
// samples, and a small head is trained on them and used for prediction.
package classifier

import (
	"context"
	"strconv"
	"sync"

	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/model"
	"github.com/robodu/edgeml/internal/syncx"
	"github.com/robodu/edgeml/internal/trace"
	"github.com/robodu/edgeml/internal/training"
)

// Config describes the model's input and head.
type Config struct {
	ImageHeight   int
	ImageWidth    int
	ImageChannels int
	BottleneckDim int
	Naming        training.Naming
	Training      training.Config
	// MaxHashDistance is the pHash Hamming distance at or below which two
	// samples count as the same picture. Negative disables the check.
	MaxHashDistance int
}

// Prediction is the result of Classify.
type Prediction struct {
	Probabilities []float32 `json:"probabilities"`
	Index         int       `json:"index"`
	Class         string    `json:"class"`
	Confidence    float32   `json:"confidence"`
}

// SamplesInfo summarizes the stored training set.
type SamplesInfo struct {
	Ready      bool           `json:"ready"`
	Total      int            `json:"total"`
	PerClass   map[string]int `json:"perClass"`
	ClassCount int            `json:"classCount"`
	Duplicates int            `json:"duplicates"`
	Conflicts  int            `json:"conflicts"`
	Training   bool           `json:"training"`
}

// session is one model handle and the samples collected for it.
type session struct {
	model  model.TransferModel
	store  *training.Store
	hashes *hashIndex
}

// Classifier owns the transfer model handle. Operations share the current
// session under a read lock; Reset swaps in a new one once they finish.
type Classifier struct {
	cfg     Config
	open    model.TransferOpener
	trainer *training.Trainer
	state   *syncx.RWGuard[*session]
	resetMu sync.Mutex
}

// New creates a classifier with no model loaded. Call Reset before use.
func New(cfg Config, open model.TransferOpener) *Classifier {
	return &Classifier{
		cfg:     cfg,
		open:    open,
		trainer: training.NewTrainer(cfg.Training),
		state:   syncx.NewGuard[*session](nil),
	}
}

// Ready reports whether a model is loaded.
func (c *Classifier) Ready() bool {
	return c.state.Get() != nil
}

// Reset drops all samples and opens a model with fresh head weights for
// classCount classes. If the new model cannot be opened the current state
// is kept.
func (c *Classifier) Reset(ctx context.Context, classCount int) error {
	ctx, span := trace.StartSpan(ctx, "classifier_reset")
	defer span.End()
	log := trace.Logger(ctx)

	c.resetMu.Lock()
	defer c.resetMu.Unlock()

	if cur := c.state.Get(); cur != nil && cur.store.Training() {
		return apperrors.New(apperrors.TrainingInProgress, "cannot reset while training")
	}

	if classCount < 2 {
		return apperrors.Newf(apperrors.InvalidArgument, "class count %d must be at least 2", classCount)
	}
	classes, err := training.NewClassMap(c.cfg.Naming, classCount)
	if err != nil {
		return err
	}

	m, err := c.open(ctx, classCount)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ModelLoadFailed, "open transfer model").
			WithMetadata("classes", strconv.Itoa(classCount))
	}

	next := &session{
		model:  m,
		store:  training.NewStore(c.cfg.BottleneckDim, classes),
		hashes: newHashIndex(c.cfg.MaxHashDistance),
	}
	if old := c.state.Swap(next); old != nil {
		if err := old.model.Close(); err != nil {
			log.Warn("close previous transfer model", "error", err)
		}
	}

	span.SetAttr("classes", classCount)
	log.Info("classifier reset", "classes", classCount, "naming", c.cfg.Naming)
	return nil
}

// AddSample embeds an image and stores it under className. It returns the
// new total sample count.
func (c *Classifier) AddSample(ctx context.Context, pixels []float32, className string) (int, error) {
	ctx, span := trace.StartSpan(ctx, "add_sample")
	defer span.End()
	span.SetAttr("class", className)

	return withSession(c, func(s *session) (int, error) {
		if s.store.Training() {
			return 0, apperrors.New(apperrors.TrainingInProgress, "cannot add samples while training")
		}
		if err := s.store.Classes().Accepts(className); err != nil {
			return 0, err
		}
		img, err := c.image(pixels)
		if err != nil {
			return 0, err
		}

		hash, match := s.hashes.check(ctx, img, className)

		emb, err := s.model.Load(ctx, img)
		if err != nil {
			return 0, apperrors.Wrap(err, apperrors.InferenceFailed, "load bottleneck")
		}
		n, err := s.store.Add(emb, className)
		if err != nil {
			return 0, err
		}
		s.hashes.record(hash, className, match)

		trace.Logger(ctx).Debug("sample added", "class", className, "total", n, "bottleneck_mean", mean(emb))
		return n, nil
	})
}

// Train runs epochs of training over the stored samples.
func (c *Classifier) Train(ctx context.Context, epochs int) (training.Result, error) {
	return withSession(c, func(s *session) (training.Result, error) {
		return c.trainer.Train(ctx, s.store, s.model, epochs)
	})
}

// Classify returns class probabilities for an image.
func (c *Classifier) Classify(ctx context.Context, pixels []float32) (Prediction, error) {
	ctx, span := trace.StartSpan(ctx, "classify")
	defer span.End()

	return withSession(c, func(s *session) (Prediction, error) {
		img, err := c.image(pixels)
		if err != nil {
			return Prediction{}, err
		}
		emb, err := s.model.Load(ctx, img)
		if err != nil {
			return Prediction{}, apperrors.Wrap(err, apperrors.InferenceFailed, "load bottleneck")
		}
		probs, err := s.model.Infer(ctx, emb)
		if err != nil {
			return Prediction{}, apperrors.Wrap(err, apperrors.InferenceFailed, "infer")
		}
		classes := s.store.Classes()
		if len(probs) != classes.Size() {
			return Prediction{}, apperrors.Newf(apperrors.InferenceFailed, "got %d probabilities for %d classes", len(probs), classes.Size())
		}

		idx, conf := model.ArgMax(probs)
		p := Prediction{Probabilities: probs, Index: idx, Class: classes.Name(idx), Confidence: conf}
		span.SetAttr("class", p.Class)
		trace.Logger(ctx).Debug("classified", "class", p.Class, "confidence", conf)
		return p, nil
	})
}

// SamplesInfo reports the stored sample counts.
func (c *Classifier) SamplesInfo() SamplesInfo {
	info, _ := syncx.View(c.state, func(s *session) (SamplesInfo, error) {
		if s == nil {
			return SamplesInfo{PerClass: map[string]int{}}, nil
		}
		dup, conflicts := s.hashes.counts()
		return SamplesInfo{
			Ready:      true,
			Total:      s.store.Count(),
			PerClass:   s.store.CountByClass(),
			ClassCount: s.store.Classes().Size(),
			Duplicates: dup,
			Conflicts:  conflicts,
			Training:   s.store.Training(),
		}, nil
	})
	return info
}

// Close releases the model. The classifier can be reopened with Reset.
func (c *Classifier) Close() error {
	c.resetMu.Lock()
	defer c.resetMu.Unlock()
	if old := c.state.Swap(nil); old != nil {
		return old.model.Close()
	}
	return nil
}

func (c *Classifier) image(pixels []float32) (model.Image, error) {
	img, err := model.NewImage(pixels, c.cfg.ImageHeight, c.cfg.ImageWidth, c.cfg.ImageChannels)
	if err != nil {
		return model.Image{}, apperrors.Wrap(err, apperrors.InvalidArgument, "invalid image size").
			WithMetadata("got", strconv.Itoa(len(pixels))).
			WithMetadata("want", strconv.Itoa(c.cfg.ImageHeight*c.cfg.ImageWidth*c.cfg.ImageChannels))
	}
	return img, nil
}

func withSession[R any](c *Classifier, fn func(*session) (R, error)) (R, error) {
	return syncx.View(c.state, func(s *session) (R, error) {
		if s == nil {
			var zero R
			return zero, apperrors.New(apperrors.NotInitialized, "classifier model is not initialized")
		}
		return fn(s)
	})
}

func mean(v []float32) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += float64(x)
	}
	return sum / float64(len(v))
}
