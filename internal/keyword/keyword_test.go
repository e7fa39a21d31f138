package keyword

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/features"
)

// mockModel returns scripted probabilities.
type mockModel struct {
	mu     sync.Mutex
	probs  []float32
	err    error
	calls  int
	closed bool
	inputs int
}

func (m *mockModel) Predict(_ context.Context, in []float32) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.inputs = len(in)
	return m.probs, m.err
}

func (m *mockModel) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (m *mockModel) set(probs []float32) {
	m.mu.Lock()
	m.probs = probs
	m.mu.Unlock()
}

func (m *mockModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockSource yields a constant tone until closed.
type mockSource struct {
	mu     sync.Mutex
	chunk  []float32
	err    error
	closed bool
}

func (s *mockSource) Read() ([]float32, error) {
	time.Sleep(time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunk, s.err
}

func (s *mockSource) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *mockSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

var testLabels = []string{"robodu", "perkenalan", "kanan", "kiri", "maju", "mundur"}

func testConfig() Config {
	return Config{
		SampleRate:     16000,
		Window:         500 * time.Millisecond,
		InferInterval:  200 * time.Millisecond,
		ConfThreshold:  0.6,
		NoiseThreshold: 0.01,
		NormalizeFloor: 0.01,
		Debounce:       time.Second,
		Labels:         testLabels,
	}
}

func tone(n int, amp float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = amp * float32(math.Sin(2*math.Pi*440*float64(i)/16000))
	}
	return out
}

func newTestListener(m *mockModel, events *[]Event) (*Listener, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewListener(testConfig(), m, features.New(features.DefaultConfig()), nil, func(ev Event) {
		*events = append(*events, ev)
	})
	l.now = clock.now
	return l, clock
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    float64
	}{
		{"empty", nil, 0},
		{"silence", make([]float32, 100), 0},
		{"constant", []float32{0.5, -0.5, 0.5, -0.5}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.samples); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RMS() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestGate(t *testing.T) {
	g := Gate{Threshold: 0.01}
	if _, open := g.Open(make([]float32, 8000)); open {
		t.Error("silence should not open the gate")
	}
	if _, open := g.Open([]float32{0.01, -0.01}); open {
		t.Error("RMS equal to threshold should not open the gate")
	}
	if rms, open := g.Open(tone(8000, 0.5)); !open {
		t.Errorf("tone with RMS %f should open the gate", rms)
	}
}

func TestNormalize(t *testing.T) {
	in := []float32{0.1, -0.4, 0.2}
	out := Normalize(in, 0.01)
	if out[1] != -1 {
		t.Errorf("out[1] = %v, want -1", out[1])
	}
	if math.Abs(float64(out[0])-0.25) > 1e-6 {
		t.Errorf("out[0] = %v, want 0.25", out[0])
	}
	if in[1] != -0.4 {
		t.Error("Normalize should not modify its input")
	}

	quiet := []float32{0.005, -0.008}
	got := Normalize(quiet, 0.01)
	if got[0] != quiet[0] || got[1] != quiet[1] {
		t.Errorf("quiet window scaled to %v, want unchanged", got)
	}
}

func TestDebouncer(t *testing.T) {
	base := time.Unix(0, 0)
	d := NewDebouncer(time.Second)

	steps := []struct {
		keyword string
		offset  time.Duration
		want    bool
	}{
		{"robodu", 0, true},
		{"robodu", 500 * time.Millisecond, false},
		{"maju", 600 * time.Millisecond, true},
		{"maju", 1500 * time.Millisecond, false},
		{"maju", 1600 * time.Millisecond, true},
		{"robodu", 1700 * time.Millisecond, true},
	}
	for i, s := range steps {
		if got := d.Allow(s.keyword, base.Add(s.offset)); got != s.want {
			t.Errorf("step %d: Allow(%q, +%v) = %v, want %v", i, s.keyword, s.offset, got, s.want)
		}
	}
}

func TestRing(t *testing.T) {
	r := newRing(4)
	r.Write([]float32{1, 2})
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	r.Write([]float32{3, 4, 5})
	assertSamples(t, r.Snapshot(), []float32{2, 3, 4, 5})

	r.Write([]float32{6})
	assertSamples(t, r.Snapshot(), []float32{3, 4, 5, 6})

	r.Write([]float32{7, 8, 9, 10, 11, 12})
	assertSamples(t, r.Snapshot(), []float32{9, 10, 11, 12})

	r.Reset()
	if r.Len() != 0 || len(r.Snapshot()) != 0 {
		t.Error("Reset should empty the ring")
	}
}

func assertSamples(t *testing.T, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFeedWaitsForFullWindow(t *testing.T) {
	m := &mockModel{probs: []float32{0.9, 0, 0, 0, 0, 0.1}}
	var events []Event
	l, clock := newTestListener(m, &events)

	// 0.5 s window is 8000 samples; feed 10 ms chunks
	for i := 0; i < 49; i++ {
		clock.advance(10 * time.Millisecond)
		l.feed(context.Background(), tone(160, 0.5))
	}
	if m.callCount() != 0 {
		t.Fatalf("model called %d times before window filled", m.callCount())
	}

	clock.advance(10 * time.Millisecond)
	l.feed(context.Background(), tone(160, 0.5))
	if m.callCount() != 1 {
		t.Fatalf("model called %d times, want 1", m.callCount())
	}
	if m.inputs != 13*100 {
		t.Errorf("model input len = %d, want 1300", m.inputs)
	}
	if len(events) != 1 || events[0].Keyword != "robodu" {
		t.Fatalf("events = %+v, want one robodu", events)
	}

	// next cycle only after the infer interval
	clock.advance(100 * time.Millisecond)
	l.feed(context.Background(), tone(160, 0.5))
	if m.callCount() != 1 {
		t.Errorf("model called %d times within interval, want 1", m.callCount())
	}
}

func TestCycleSkipsSilence(t *testing.T) {
	m := &mockModel{probs: []float32{0.9, 0, 0, 0, 0, 0.1}}
	var events []Event
	l, _ := newTestListener(m, &events)

	l.feed(context.Background(), make([]float32, 8000))
	if m.callCount() != 0 {
		t.Errorf("model called %d times on silence, want 0", m.callCount())
	}
	if len(events) != 0 {
		t.Errorf("events = %+v, want none", events)
	}
}

func TestCycleThresholdAndDebounce(t *testing.T) {
	m := &mockModel{}
	var events []Event
	l, clock := newTestListener(m, &events)
	window := tone(8000, 0.3)

	step := func(probs []float32, after time.Duration) {
		m.set(probs)
		clock.advance(after)
		l.feed(context.Background(), window)
	}

	// robodu, then a repeat within 1s
	step([]float32{0.9, 0.02, 0.02, 0.02, 0.02, 0.02}, time.Second)
	step([]float32{0.9, 0.02, 0.02, 0.02, 0.02, 0.02}, 500*time.Millisecond)
	// a different keyword passes immediately
	step([]float32{0.02, 0.02, 0.02, 0.02, 0.9, 0.02}, 200*time.Millisecond)
	// confidence equal to the threshold is rejected
	step([]float32{0.6, 0.08, 0.08, 0.08, 0.08, 0.08}, 200*time.Millisecond)
	// maju again once the interval has passed
	step([]float32{0.02, 0.02, 0.02, 0.02, 0.9, 0.02}, time.Second)

	want := []string{"robodu", "maju", "maju"}
	if len(events) != len(want) {
		t.Fatalf("got %d events %+v, want %v", len(events), events, want)
	}
	for i, kw := range want {
		if events[i].Keyword != kw {
			t.Errorf("events[%d] = %q, want %q", i, events[i].Keyword, kw)
		}
	}
	if events[0].Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", events[0].Confidence)
	}
}

func TestCycleInferenceErrors(t *testing.T) {
	tests := []struct {
		name  string
		probs []float32
		err   error
	}{
		{"predict error", nil, errors.New("runtime gone")},
		{"wrong length", []float32{0.9, 0.1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockModel{probs: tt.probs, err: tt.err}
			var events []Event
			l, _ := newTestListener(m, &events)

			l.feed(context.Background(), tone(8000, 0.5))
			if m.callCount() != 1 {
				t.Errorf("model called %d times, want 1", m.callCount())
			}
			if len(events) != 0 {
				t.Errorf("events = %+v, want none", events)
			}
		})
	}
}

func TestTopN(t *testing.T) {
	got := topN([]string{"a", "b", "c", "d"}, []float32{0.1, 0.4, 0.3, 0.2}, 3)
	want := []string{"b", "c", "d"}
	for i := range want {
		if got[i].Label != want[i] {
			t.Errorf("topN[%d] = %q, want %q", i, got[i].Label, want[i])
		}
	}
	if len(topN([]string{"a"}, []float32{1}, 3)) != 1 {
		t.Error("topN should cap at the number of labels")
	}
}

func TestListenerLifecycle(t *testing.T) {
	m := &mockModel{probs: []float32{0.9, 0.02, 0.02, 0.02, 0.02, 0.02}}
	src := &mockSource{chunk: tone(1600, 0.5)}

	var mu sync.Mutex
	var events []Event
	l := NewListener(testConfig(), m, features.New(features.DefaultConfig()), func(context.Context) (Source, error) {
		return src, nil
	}, func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := l.Start(context.Background()); err != nil {
		t.Errorf("second Start() error = %v, want nil", err)
	}
	if !l.Running() {
		t.Fatal("listener should be running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for m.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if m.callCount() == 0 {
		t.Fatal("listener never ran a cycle")
	}

	l.Stop()
	if l.Running() {
		t.Error("listener should be stopped")
	}
	if !src.isClosed() {
		t.Error("Stop should close the source")
	}
	if l.ring.Len() != 0 {
		t.Errorf("ring len = %d after Stop, want 0", l.ring.Len())
	}

	mu.Lock()
	if len(events) != 1 {
		t.Errorf("got %d events, want 1 (debounced)", len(events))
	}
	mu.Unlock()

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !m.closed {
		t.Error("Close should release the model")
	}
	if err := l.Start(context.Background()); !apperrors.IsCode(err, apperrors.NotInitialized) {
		t.Errorf("Start after Close = %v, want NOT_INITIALIZED", err)
	}
}

func TestListenerStartDeviceFailure(t *testing.T) {
	m := &mockModel{}
	l := NewListener(testConfig(), m, features.New(features.DefaultConfig()), func(context.Context) (Source, error) {
		return nil, errors.New("no input device")
	}, nil)

	err := l.Start(context.Background())
	if !apperrors.IsCode(err, apperrors.DeviceUnavailable) {
		t.Fatalf("Start() = %v, want DEVICE_UNAVAILABLE", err)
	}
	if l.Running() {
		t.Error("listener should not be running after device failure")
	}
}

func TestListenerStopsOnReadError(t *testing.T) {
	src := &mockSource{err: errors.New("device unplugged")}
	l := NewListener(testConfig(), &mockModel{}, features.New(features.DefaultConfig()), func(context.Context) (Source, error) {
		return src, nil
	}, nil)

	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	deadline := time.Now().Add(time.Second)
	for l.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if l.Running() {
		t.Error("listener should stop after a read error")
	}
	if !src.isClosed() {
		t.Error("source should be closed after a read error")
	}
	l.Stop()
}
