// Package orchestrator binds the keyword listener, the transfer-learning
// classifier and the detection history into the operations the host
// surface calls.
package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/robodu/edgeml/internal/audio"
	"github.com/robodu/edgeml/internal/classifier"
	"github.com/robodu/edgeml/internal/config"
	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/features"
	"github.com/robodu/edgeml/internal/grpcclient"
	"github.com/robodu/edgeml/internal/keyword"
	"github.com/robodu/edgeml/internal/model"
	"github.com/robodu/edgeml/internal/orchestrator/detections"
	"github.com/robodu/edgeml/internal/trace"
	"github.com/robodu/edgeml/internal/training"
)

// Detection re-exported for the server.
type Detection = detections.Detection

// Deps are the backends the manager opens on demand.
type Deps struct {
	Keyword  model.KeywordOpener
	Transfer model.TransferOpener
	Source   keyword.SourceOpener
}

// RuntimeDeps serves both models from the runtime and reads the system
// microphone.
func RuntimeDeps(rt *grpcclient.Client, cfg *config.Config) Deps {
	return Deps{
		Keyword: func(ctx context.Context) (model.KeywordModel, error) {
			m, err := rt.OpenKeyword(ctx)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		Transfer: func(ctx context.Context, classCount int) (model.TransferModel, error) {
			m, err := rt.OpenTransfer(ctx, classCount)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		Source: MicrophoneSource(cfg),
	}
}

// MicrophoneSource opens the best available microphone with one chunk per
// Read.
func MicrophoneSource(cfg *config.Config) keyword.SourceOpener {
	return func(ctx context.Context) (keyword.Source, error) {
		mic, err := audio.Open(audio.Options{
			SampleRate:      cfg.SampleRate,
			FramesPerBuffer: cfg.ChunkSamples(),
			Excluded:        cfg.ExcludedAudioDevices,
		})
		if err != nil {
			return nil, err
		}
		trace.Logger(ctx).Info("microphone opened", "device", mic.Device())
		return mic, nil
	}
}

// Manager owns the keyword listener and the classifier.
type Manager struct {
	cfg        *config.Config
	deps       Deps
	extractor  *features.Extractor
	classifier *classifier.Classifier
	detections *detections.MemoryStore

	mu       sync.Mutex
	listener *keyword.Listener
}

// New creates a manager with no models loaded.
func New(cfg *config.Config, deps Deps) *Manager {
	return &Manager{
		cfg:        cfg,
		deps:       deps,
		extractor:  features.New(FeaturesConfig(cfg)),
		classifier: classifier.New(classifierConfig(cfg), deps.Transfer),
		detections: detections.NewStore(cfg.DetectionHistory, DetectionEventBuffer),
	}
}

// FeaturesConfig maps the configuration onto the extractor settings.
func FeaturesConfig(cfg *config.Config) features.Config {
	fc := features.DefaultConfig()
	fc.SampleRate = cfg.SampleRate
	fc.FrameSize = cfg.FrameSize
	fc.NumCoefficients = cfg.NumCoefficients
	fc.NumFrames = cfg.NumFrames
	fc.MelBins = cfg.MelBins
	return fc
}

func classifierConfig(cfg *config.Config) classifier.Config {
	return classifier.Config{
		ImageHeight:   cfg.ImageHeight,
		ImageWidth:    cfg.ImageWidth,
		ImageChannels: cfg.ImageChannels,
		BottleneckDim: cfg.BottleneckDim,
		Naming:        training.Naming(cfg.ClassNaming),
		Training: training.Config{
			MaxBatchSize:         cfg.MaxBatchSize,
			ImbalanceRatio:       ImbalanceRatio,
			ContinueOnBatchError: cfg.ContinueOnBatchError,
		},
		MaxHashDistance: cfg.MaxHashDistance,
	}
}

func listenerConfig(cfg *config.Config) keyword.Config {
	return keyword.Config{
		SampleRate:     cfg.SampleRate,
		Window:         cfg.WindowDuration,
		InferInterval:  cfg.InferInterval,
		ConfThreshold:  cfg.ConfThreshold,
		NoiseThreshold: cfg.NoiseThreshold,
		NormalizeFloor: cfg.NormalizeFloor,
		Debounce:       cfg.DebounceInterval,
		Labels:         cfg.KeywordLabels,
	}
}

// InitKeywordModel loads the keyword model. A previous listener is
// stopped and replaced.
func (m *Manager) InitKeywordModel(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "init_keyword_model")
	defer span.End()
	log := trace.Logger(ctx)

	km, err := m.deps.Keyword(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ModelLoadFailed, "load keyword model")
	}

	l := keyword.NewListener(listenerConfig(m.cfg), km, m.extractor, m.deps.Source, m.handleDetection)

	m.mu.Lock()
	old := m.listener
	m.listener = l
	m.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			log.Warn("close previous keyword listener", "error", err)
		}
	}
	log.Info("keyword model loaded", "labels", m.cfg.KeywordLabels)
	return nil
}

// StartListening opens the microphone and starts detection.
func (m *Manager) StartListening(ctx context.Context) error {
	l, err := m.currentListener()
	if err != nil {
		return err
	}
	return l.Start(ctx)
}

// StopListening stops detection and releases the microphone. It is a
// no-op when not listening.
func (m *Manager) StopListening() {
	m.mu.Lock()
	l := m.listener
	m.mu.Unlock()
	if l != nil {
		l.Stop()
	}
}

// Listening reports whether the capture loop is running.
func (m *Manager) Listening() bool {
	m.mu.Lock()
	l := m.listener
	m.mu.Unlock()
	return l != nil && l.Running()
}

func (m *Manager) currentListener() (*keyword.Listener, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listener == nil {
		return nil, apperrors.New(apperrors.NotInitialized, "keyword model is not initialized")
	}
	return m.listener, nil
}

// handleDetection runs on the capture goroutine and must not block.
func (m *Manager) handleDetection(ev keyword.Event) {
	d := m.detections.Add(ev)
	m.detections.Emit(d)
}

// KeywordEvents returns the detection stream. There is one stream per
// manager; fan-out is the consumer's job.
func (m *Manager) KeywordEvents() <-chan Detection {
	return m.detections.Events()
}

// RecentDetections returns up to n recorded detections, oldest first.
func (m *Manager) RecentDetections(n int) []Detection {
	return m.detections.Recent(n)
}

// DroppedDetections returns how many detections were not delivered on
// KeywordEvents because the consumer fell behind. They are still recorded.
func (m *Manager) DroppedDetections() int64 {
	return m.detections.Dropped()
}

// InitClassifierModel loads the transfer model for classCount classes,
// or the configured count when classCount is not positive.
func (m *Manager) InitClassifierModel(ctx context.Context, classCount int) error {
	return m.classifier.Reset(ctx, m.classCount(classCount))
}

// ResetModel drops all samples and restores fresh head weights.
func (m *Manager) ResetModel(ctx context.Context, classCount int) error {
	return m.classifier.Reset(ctx, m.classCount(classCount))
}

func (m *Manager) classCount(n int) int {
	if n > 0 {
		return n
	}
	return m.cfg.ClassCount
}

// AddSample stores a labeled image and returns the sample total.
func (m *Manager) AddSample(ctx context.Context, pixels []float32, className string) (int, error) {
	return m.classifier.AddSample(ctx, pixels, className)
}

// Train trains the head for epochs, or the configured default when
// epochs is not positive.
func (m *Manager) Train(ctx context.Context, epochs int) (training.Result, error) {
	if epochs <= 0 {
		epochs = m.cfg.DefaultEpochs
	}
	return m.classifier.Train(ctx, epochs)
}

// Classify predicts the class of an image.
func (m *Manager) Classify(ctx context.Context, pixels []float32) (classifier.Prediction, error) {
	return m.classifier.Classify(ctx, pixels)
}

// SamplesInfo reports the stored training set.
func (m *Manager) SamplesInfo() classifier.SamplesInfo {
	return m.classifier.SamplesInfo()
}

// Close stops listening and releases both models.
func (m *Manager) Close() error {
	m.mu.Lock()
	l := m.listener
	m.listener = nil
	m.mu.Unlock()

	var errs []error
	if l != nil {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.classifier.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return apperrors.Wrap(errors.Join(errs...), apperrors.Internal, "close models")
	}
	return nil
}
