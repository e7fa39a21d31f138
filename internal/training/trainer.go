package training

import (
	"context"
	"math/rand/v2"
	"strconv"
	"sync/atomic"
	"time"

	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/trace"
)

// Result messages.
const (
	MessageSuccess             = "Success"
	MessageNoSamples           = "No samples"
	MessageInsufficientClasses = "Need at least 2 different classes"
)

// BatchTrainer runs one optimization step and returns the batch loss.
type BatchTrainer interface {
	Train(ctx context.Context, bottlenecks, labels [][]float32) (float32, error)
}

// Config controls a training run.
type Config struct {
	MaxBatchSize int
	// ImbalanceRatio triggers a warning when the largest class exceeds
	// ratio times the smallest.
	ImbalanceRatio int
	// ContinueOnBatchError skips failed batches instead of aborting the run.
	ContinueOnBatchError bool
}

// DefaultConfig returns the batch and imbalance settings of the bundled model.
func DefaultConfig() Config {
	return Config{MaxBatchSize: 20, ImbalanceRatio: 3}
}

// Result summarizes a training run.
type Result struct {
	AvgLoss         float32
	Epochs          int
	Batches         int
	FailedBatches   int
	SamplesPerClass map[string]int
	Imbalanced      bool
	Message         string
	Duration        time.Duration
}

// Trainer runs epochs of shuffled mini-batches against a BatchTrainer. At
// most one run is in flight per Trainer.
type Trainer struct {
	cfg     Config
	shuffle func([]int)
	running atomic.Bool
}

// NewTrainer creates a trainer.
func NewTrainer(cfg Config) *Trainer {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = DefaultConfig().MaxBatchSize
	}
	if cfg.ImbalanceRatio <= 0 {
		cfg.ImbalanceRatio = DefaultConfig().ImbalanceRatio
	}
	return &Trainer{
		cfg: cfg,
		shuffle: func(order []int) {
			rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		},
	}
}

// Train runs epochs over the samples in store. The store is held for the
// whole run so samples cannot change underneath it. On a precondition
// failure the returned Result carries AvgLoss -1 and an explanatory Message
// alongside the error.
func (t *Trainer) Train(ctx context.Context, store *Store, m BatchTrainer, epochs int) (Result, error) {
	ctx, span := trace.StartSpan(ctx, "train")
	defer span.End()
	log := trace.Logger(ctx)
	start := time.Now()

	if epochs <= 0 {
		return Result{AvgLoss: -1}, apperrors.Newf(apperrors.InvalidArgument, "epochs %d must be positive", epochs)
	}
	if !t.running.CompareAndSwap(false, true) {
		return Result{AvgLoss: -1}, errTrainingInProgress()
	}
	defer t.running.Store(false)

	release, err := store.hold()
	if err != nil {
		return Result{AvgLoss: -1}, err
	}
	defer release()

	samples := store.Snapshot()
	counts := store.CountByClass()
	res := Result{AvgLoss: -1, Epochs: epochs, SamplesPerClass: counts}

	if len(samples) == 0 {
		log.Warn("no training samples")
		res.Message = MessageNoSamples
		return res, apperrors.New(apperrors.EmptySampleSet, "no training samples")
	}
	if len(counts) < 2 {
		res.Message = MessageInsufficientClasses
		err := apperrors.New(apperrors.InsufficientClasses, "need at least 2 different classes")
		for k, v := range countsAttr(counts) {
			err.WithMetadata(k, v)
		}
		return res, err
	}

	lo, hi := imbalance(counts)
	if hi > lo*t.cfg.ImbalanceRatio {
		res.Imbalanced = true
		log.Warn("class imbalance detected", "min", lo, "max", hi, "samples_per_class", counts)
	}

	size := BatchSize(len(samples), t.cfg.MaxBatchSize)
	span.SetAttr("samples", len(samples))
	span.SetAttr("epochs", epochs)
	span.SetAttr("batch_size", size)
	log.Info("starting training", "samples", len(samples), "epochs", epochs, "batch_size", size, "samples_per_class", counts)

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}

	var total float32
	for epoch := range epochs {
		t.shuffle(order)
		var epochLoss float32
		var epochBatches, index int

		for batch := range Batches(order, size) {
			index++
			if err := ctx.Err(); err != nil {
				res.Duration = time.Since(start)
				return res, apperrors.Wrap(err, apperrors.Cancelled, "training cancelled").
					WithMetadata("epoch", strconv.Itoa(epoch+1))
			}

			bottlenecks := make([][]float32, len(batch))
			labels := make([][]float32, len(batch))
			for i, idx := range batch {
				bottlenecks[i] = samples[idx].Embedding
				labels[i] = samples[idx].Label
			}

			loss, err := trainBatch(ctx, m, epoch+1, index, bottlenecks, labels)
			if err != nil {
				if !t.cfg.ContinueOnBatchError {
					res.Duration = time.Since(start)
					return res, apperrors.Wrap(err, apperrors.TrainingFailed, "train batch").
						WithMetadata("epoch", strconv.Itoa(epoch+1))
				}
				res.FailedBatches++
				log.Warn("training batch failed, skipping", "epoch", epoch+1, "error", err)
				continue
			}
			total += loss
			res.Batches++
			epochLoss += loss
			epochBatches++
		}

		if epoch == 0 || epoch == epochs-1 {
			log.Debug("epoch complete", "epoch", epoch+1, "batches", epochBatches, "loss", avg(epochLoss, epochBatches))
		}
	}

	res.AvgLoss = avg(total, res.Batches)
	res.Message = MessageSuccess
	res.Duration = time.Since(start)
	span.SetAttr("avg_loss", res.AvgLoss)
	log.Info("training complete", "avg_loss", res.AvgLoss, "batches", res.Batches, "failed_batches", res.FailedBatches, "duration", res.Duration)
	return res, nil
}

// trainBatch runs one optimizer step inside a span recording its position.
func trainBatch(ctx context.Context, m BatchTrainer, epoch, index int, bottlenecks, labels [][]float32) (float32, error) {
	ctx, span := trace.StartSpan(ctx, "train_batch")
	defer span.End()
	span.SetAttr("epoch", epoch)
	span.SetAttr("batch", index)
	span.SetAttr("rows", len(bottlenecks))

	loss, err := m.Train(ctx, bottlenecks, labels)
	span.Fail(err)
	if err == nil {
		span.SetAttr("loss", loss)
	}
	return loss, err
}

func avg(total float32, n int) float32 {
	if n == 0 {
		return 0
	}
	return total / float32(n)
}
