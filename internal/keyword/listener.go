package keyword

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/features"
	"github.com/robodu/edgeml/internal/model"
	"github.com/robodu/edgeml/internal/trace"
)

// Config holds listener tuning.
type Config struct {
	SampleRate     int
	Window         time.Duration
	InferInterval  time.Duration
	ConfThreshold  float64
	NoiseThreshold float64
	NormalizeFloor float64
	Debounce       time.Duration
	Labels         []string
}

// WindowSamples is the number of samples classified per cycle.
func (c Config) WindowSamples() int {
	return int(float64(c.SampleRate) * c.Window.Seconds())
}

// Event is a confident, debounced keyword detection.
type Event struct {
	Keyword    string
	Confidence float32
	Latency    time.Duration
	Timestamp  time.Time
}

// Source is an open microphone stream. Read blocks for one chunk.
type Source interface {
	Read() ([]float32, error)
	Close() error
}

// SourceOpener acquires the capture device.
type SourceOpener func(ctx context.Context) (Source, error)

// Listener owns the capture loop. A single goroutine reads the source,
// fills the window buffer and runs classification cycles; it is the only
// caller of the extractor and the model while running.
type Listener struct {
	cfg       Config
	model     model.KeywordModel
	extractor *features.Extractor
	open      SourceOpener
	onEvent   func(Event)
	gate      Gate
	debouncer *Debouncer
	now       func() time.Time

	// loop-owned
	ring      *ring
	lastInfer time.Time

	mu      sync.Mutex
	running bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewListener creates a stopped listener. onEvent is called from the capture
// goroutine and must not block.
func NewListener(cfg Config, m model.KeywordModel, ext *features.Extractor, open SourceOpener, onEvent func(Event)) *Listener {
	return &Listener{
		cfg:       cfg,
		model:     m,
		extractor: ext,
		open:      open,
		onEvent:   onEvent,
		gate:      Gate{Threshold: cfg.NoiseThreshold},
		debouncer: NewDebouncer(cfg.Debounce),
		now:       time.Now,
		ring:      newRing(cfg.WindowSamples()),
	}
}

// Start acquires the device and begins listening. Starting a running
// listener logs a warning and does nothing.
func (l *Listener) Start(ctx context.Context) error {
	log := trace.Logger(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return apperrors.New(apperrors.NotInitialized, "keyword listener is closed")
	}
	if l.running {
		select {
		case <-l.done:
			// loop exited on a device error; restart below
			l.stopLocked()
		default:
			log.Warn("keyword listener already running")
			return nil
		}
	}

	src, err := l.open(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.DeviceUnavailable, "open audio source")
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	l.cancel = cancel
	l.done = make(chan struct{})
	l.running = true
	l.lastInfer = time.Time{}

	go l.run(loopCtx, src, l.done)

	log.Info("keyword listener started",
		"window_samples", l.cfg.WindowSamples(),
		"infer_interval", l.cfg.InferInterval,
		"labels", len(l.cfg.Labels))
	return nil
}

// Stop ends the capture loop, releases the device and clears the window.
// It waits for an in-flight cycle to finish.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		l.stopLocked()
		slog.Info("keyword listener stopped")
	}
}

func (l *Listener) stopLocked() {
	l.cancel()
	<-l.done
	l.ring.Reset()
	l.running = false
}

// Running reports whether the capture loop is active.
func (l *Listener) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

// Close stops the listener and releases the model. Further Start calls fail.
func (l *Listener) Close() error {
	l.Stop()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.model.Close()
}

func (l *Listener) run(ctx context.Context, src Source, done chan struct{}) {
	defer close(done)
	defer func() {
		if err := src.Close(); err != nil {
			slog.Warn("close audio source", "error", err)
		}
	}()

	for {
		chunk, err := src.Read()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			trace.Logger(ctx).Error("audio read failed, listener stopping", "error", err)
			return
		}
		l.feed(ctx, chunk)
	}
}

// feed buffers a chunk and runs a cycle when the interval has elapsed and a
// full window is available.
func (l *Listener) feed(ctx context.Context, chunk []float32) {
	l.ring.Write(chunk)

	now := l.now()
	if now.Sub(l.lastInfer) < l.cfg.InferInterval || l.ring.Len() < l.cfg.WindowSamples() {
		return
	}
	l.lastInfer = now

	if ev, ok := l.cycle(ctx, now); ok && l.onEvent != nil {
		l.onEvent(ev)
	}
}

// cycle classifies the current window. Errors are logged and the cycle is
// skipped.
func (l *Listener) cycle(ctx context.Context, start time.Time) (Event, bool) {
	log := trace.Logger(ctx)

	window := l.ring.Snapshot()
	rms, open := l.gate.Open(window)
	if !open {
		return Event{}, false
	}

	m := l.extractor.Extract(Normalize(window, l.cfg.NormalizeFloor))
	probs, err := l.model.Predict(ctx, m.Flatten())
	if err != nil {
		log.Error("keyword inference failed", "error", err)
		return Event{}, false
	}
	if len(probs) != len(l.cfg.Labels) {
		log.Error("keyword inference failed",
			"error", apperrors.Newf(apperrors.InferenceFailed, "got %d probabilities for %d labels", len(probs), len(l.cfg.Labels)))
		return Event{}, false
	}

	latency := l.now().Sub(start)
	idx, conf := model.ArgMax(probs)
	log.Debug("keyword cycle", "rms", rms, "top", topN(l.cfg.Labels, probs, 3), "latency", latency)

	if conf <= float32(l.cfg.ConfThreshold) {
		return Event{}, false
	}
	kw := l.cfg.Labels[idx]
	if !l.debouncer.Allow(kw, start) {
		return Event{}, false
	}

	log.Info("keyword detected", "keyword", kw, "confidence", conf, "latency", latency)
	return Event{Keyword: kw, Confidence: conf, Latency: latency, Timestamp: start}, true
}

type scored struct {
	Label string  `json:"label"`
	Score float32 `json:"score"`
}

// topN returns the n highest-scoring labels, highest first.
func topN(labels []string, probs []float32, n int) []scored {
	out := make([]scored, len(probs))
	for i, p := range probs {
		out[i] = scored{Label: labels[i], Score: p}
	}
	slices.SortStableFunc(out, func(a, b scored) int { return cmp.Compare(b.Score, a.Score) })
	return out[:min(n, len(out))]
}
