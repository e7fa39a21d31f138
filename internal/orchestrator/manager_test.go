package orchestrator

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robodu/edgeml/internal/config"
	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/keyword"
	"github.com/robodu/edgeml/internal/model"
)

type fakeKeywordModel struct {
	probs  []float32
	closed atomic.Bool
}

func (m *fakeKeywordModel) Predict(context.Context, []float32) ([]float32, error) {
	return append([]float32(nil), m.probs...), nil
}

func (m *fakeKeywordModel) Close() error {
	m.closed.Store(true)
	return nil
}

type toneSource struct {
	chunk  []float32
	closed atomic.Bool
}

func newToneSource(n int) *toneSource {
	chunk := make([]float32, n)
	for i := range chunk {
		chunk[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/16000))
	}
	return &toneSource{chunk: chunk}
}

func (s *toneSource) Read() ([]float32, error) {
	time.Sleep(time.Millisecond)
	return append([]float32(nil), s.chunk...), nil
}

func (s *toneSource) Close() error {
	s.closed.Store(true)
	return nil
}

type fakeTransferModel struct {
	classes int
	closed  atomic.Bool
}

func (m *fakeTransferModel) Load(_ context.Context, img model.Image) ([]float32, error) {
	emb := make([]float32, 8)
	for i := range emb {
		emb[i] = img.Pixels[0]
	}
	return emb, nil
}

func (m *fakeTransferModel) Train(context.Context, [][]float32, [][]float32) (float32, error) {
	return 0.1, nil
}

func (m *fakeTransferModel) Infer(context.Context, []float32) ([]float32, error) {
	out := make([]float32, m.classes)
	out[0] = 1
	return out, nil
}

func (m *fakeTransferModel) Close() error {
	m.closed.Store(true)
	return nil
}

type harness struct {
	keywordModels []*fakeKeywordModel
	keywordErr    error
	sources       []*toneSource
	sourceErr     error
	transfers     []*fakeTransferModel
}

func (h *harness) deps(cfg *config.Config) Deps {
	return Deps{
		Keyword: func(context.Context) (model.KeywordModel, error) {
			if h.keywordErr != nil {
				return nil, h.keywordErr
			}
			probs := make([]float32, len(cfg.KeywordLabels))
			probs[0] = 0.9
			for i := 1; i < len(probs); i++ {
				probs[i] = 0.1 / float32(len(probs)-1)
			}
			m := &fakeKeywordModel{probs: probs}
			h.keywordModels = append(h.keywordModels, m)
			return m, nil
		},
		Transfer: func(_ context.Context, classCount int) (model.TransferModel, error) {
			m := &fakeTransferModel{classes: classCount}
			h.transfers = append(h.transfers, m)
			return m, nil
		},
		Source: func(context.Context) (keyword.Source, error) {
			if h.sourceErr != nil {
				return nil, h.sourceErr
			}
			s := newToneSource(cfg.ChunkSamples())
			h.sources = append(h.sources, s)
			return s, nil
		},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.InferInterval = 20 * time.Millisecond
	cfg.ImageHeight = 2
	cfg.ImageWidth = 2
	cfg.ImageChannels = 3
	cfg.BottleneckDim = 8
	cfg.ClassCount = 2
	cfg.DefaultEpochs = 4
	cfg.MaxHashDistance = -1
	return cfg
}

func image(v float32) []float32 {
	p := make([]float32, 12)
	for i := range p {
		p[i] = v
	}
	return p
}

func TestNotInitialized(t *testing.T) {
	h := &harness{}
	cfg := testConfig()
	m := New(cfg, h.deps(cfg))
	ctx := context.Background()

	if err := m.StartListening(ctx); !apperrors.IsCode(err, apperrors.NotInitialized) {
		t.Errorf("StartListening() = %v, want NOT_INITIALIZED", err)
	}
	m.StopListening()
	if _, err := m.AddSample(ctx, image(0.5), "1"); !apperrors.IsCode(err, apperrors.NotInitialized) {
		t.Errorf("AddSample() = %v, want NOT_INITIALIZED", err)
	}
	if _, err := m.Classify(ctx, image(0.5)); !apperrors.IsCode(err, apperrors.NotInitialized) {
		t.Errorf("Classify() = %v, want NOT_INITIALIZED", err)
	}
	if m.SamplesInfo().Ready {
		t.Error("SamplesInfo().Ready = true before init")
	}
}

func TestInitKeywordModelFailure(t *testing.T) {
	h := &harness{keywordErr: errors.New("model file missing")}
	cfg := testConfig()
	m := New(cfg, h.deps(cfg))

	if err := m.InitKeywordModel(context.Background()); !apperrors.IsCode(err, apperrors.ModelLoadFailed) {
		t.Errorf("InitKeywordModel() = %v, want MODEL_LOAD_FAILED", err)
	}
}

func TestStartListeningDeviceFailure(t *testing.T) {
	h := &harness{sourceErr: errors.New("no input device")}
	cfg := testConfig()
	m := New(cfg, h.deps(cfg))
	ctx := context.Background()

	if err := m.InitKeywordModel(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.StartListening(ctx); !apperrors.IsCode(err, apperrors.DeviceUnavailable) {
		t.Errorf("StartListening() = %v, want DEVICE_UNAVAILABLE", err)
	}
	if m.Listening() {
		t.Error("Listening() = true after device failure")
	}
}

func TestKeywordDetectionFlow(t *testing.T) {
	h := &harness{}
	cfg := testConfig()
	m := New(cfg, h.deps(cfg))
	defer m.Close()
	ctx := context.Background()

	if err := m.InitKeywordModel(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.StartListening(ctx); err != nil {
		t.Fatalf("StartListening() error = %v", err)
	}
	if !m.Listening() {
		t.Error("Listening() = false after start")
	}

	select {
	case d := <-m.KeywordEvents():
		if d.Keyword != cfg.KeywordLabels[0] || d.Confidence != 0.9 || d.ID == "" {
			t.Errorf("detection = %+v", d)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no keyword detected")
	}

	m.StopListening()
	if m.Listening() {
		t.Error("Listening() = true after stop")
	}
	if !h.sources[0].closed.Load() {
		t.Error("stop should release the device")
	}
	// the debouncer holds repeats within a second, so one detection is recorded
	if got := m.RecentDetections(0); len(got) != 1 {
		t.Errorf("RecentDetections() returned %d, want 1", len(got))
	}
}

func TestReinitReplacesListener(t *testing.T) {
	h := &harness{}
	cfg := testConfig()
	m := New(cfg, h.deps(cfg))
	ctx := context.Background()

	if err := m.InitKeywordModel(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.InitKeywordModel(ctx); err != nil {
		t.Fatal(err)
	}
	if !h.keywordModels[0].closed.Load() || h.keywordModels[1].closed.Load() {
		t.Error("re-init should close only the previous model")
	}
}

func TestClassifierOperations(t *testing.T) {
	h := &harness{}
	cfg := testConfig()
	m := New(cfg, h.deps(cfg))
	ctx := context.Background()

	if err := m.InitClassifierModel(ctx, 0); err != nil {
		t.Fatalf("InitClassifierModel() error = %v", err)
	}
	if info := m.SamplesInfo(); !info.Ready || info.ClassCount != cfg.ClassCount {
		t.Errorf("SamplesInfo() = %+v, want %d classes", info, cfg.ClassCount)
	}

	for i, class := range []string{"1", "2", "1", "2"} {
		n, err := m.AddSample(ctx, image(float32(i)/4), class)
		if err != nil || n != i+1 {
			t.Fatalf("AddSample(%q) = (%d, %v)", class, n, err)
		}
	}

	res, err := m.Train(ctx, 0)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if res.Epochs != cfg.DefaultEpochs {
		t.Errorf("Epochs = %d, want default %d", res.Epochs, cfg.DefaultEpochs)
	}

	p, err := m.Classify(ctx, image(0.5))
	if err != nil || p.Class != "1" {
		t.Errorf("Classify() = (%+v, %v), want class 1", p, err)
	}

	if err := m.ResetModel(ctx, 3); err != nil {
		t.Fatal(err)
	}
	if info := m.SamplesInfo(); info.Total != 0 || info.ClassCount != 3 {
		t.Errorf("SamplesInfo() after reset = %+v", info)
	}
	if !h.transfers[0].closed.Load() {
		t.Error("reset should close the previous transfer model")
	}
}

func TestClose(t *testing.T) {
	h := &harness{}
	cfg := testConfig()
	m := New(cfg, h.deps(cfg))
	ctx := context.Background()

	_ = m.InitKeywordModel(ctx)
	_ = m.InitClassifierModel(ctx, 2)
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !h.keywordModels[0].closed.Load() || !h.transfers[0].closed.Load() {
		t.Error("Close should release both models")
	}
	if err := m.StartListening(ctx); !apperrors.IsCode(err, apperrors.NotInitialized) {
		t.Errorf("StartListening() after Close = %v, want NOT_INITIALIZED", err)
	}
}

func TestDroppedDetections(t *testing.T) {
	h := &harness{}
	cfg := testConfig()
	m := New(cfg, h.deps(cfg))
	defer m.Close()

	now := time.Now()
	for i := range DetectionEventBuffer + 3 {
		m.handleDetection(keyword.Event{Keyword: "maju", Confidence: 0.9, Timestamp: now.Add(time.Duration(i) * time.Second)})
	}
	if got := m.DroppedDetections(); got != 3 {
		t.Errorf("DroppedDetections() = %d, want 3", got)
	}
	if got := len(m.RecentDetections(0)); got != min(cfg.DetectionHistory, DetectionEventBuffer+3) {
		t.Errorf("RecentDetections() returned %d", got)
	}
}
