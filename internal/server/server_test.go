package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/robodu/edgeml/internal/classifier"
	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/orchestrator"
	"github.com/robodu/edgeml/internal/training"
)

// mockOrchestrator records calls and returns canned results.
type mockOrchestrator struct {
	mu          sync.Mutex
	err         error
	className   string
	pixels      []float32
	epochs      int
	classCount  int
	limit       int
	stopped     bool
	detectionCh chan orchestrator.Detection
}

func newMockOrchestrator() *mockOrchestrator {
	return &mockOrchestrator{detectionCh: make(chan orchestrator.Detection, 10)}
}

func (m *mockOrchestrator) InitKeywordModel(context.Context) error { return m.err }
func (m *mockOrchestrator) StartListening(context.Context) error   { return m.err }
func (m *mockOrchestrator) StopListening()                         { m.stopped = true }
func (m *mockOrchestrator) KeywordEvents() <-chan orchestrator.Detection {
	return m.detectionCh
}

func (m *mockOrchestrator) RecentDetections(n int) []orchestrator.Detection {
	m.limit = n
	return []orchestrator.Detection{{ID: "d1", Keyword: "maju", Confidence: 0.8}}
}

func (m *mockOrchestrator) DroppedDetections() int64 { return 3 }

func (m *mockOrchestrator) InitClassifierModel(_ context.Context, classCount int) error {
	m.classCount = classCount
	return m.err
}

func (m *mockOrchestrator) AddSample(_ context.Context, pixels []float32, className string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pixels, m.className = pixels, className
	if m.err != nil {
		return 0, m.err
	}
	return 1, nil
}

func (m *mockOrchestrator) Train(_ context.Context, epochs int) (training.Result, error) {
	m.epochs = epochs
	if m.err != nil {
		return training.Result{AvgLoss: -1}, m.err
	}
	return training.Result{
		AvgLoss:         0.25,
		Epochs:          10,
		Batches:         30,
		Message:         training.MessageSuccess,
		SamplesPerClass: map[string]int{"1": 3, "2": 3},
	}, nil
}

func (m *mockOrchestrator) Classify(context.Context, []float32) (classifier.Prediction, error) {
	return classifier.Prediction{Probabilities: []float32{0.25, 0.75}, Index: 1, Class: "2", Confidence: 0.75}, m.err
}

func (m *mockOrchestrator) ResetModel(_ context.Context, classCount int) error {
	m.classCount = classCount
	return m.err
}

func (m *mockOrchestrator) SamplesInfo() classifier.SamplesInfo {
	return classifier.SamplesInfo{Ready: true, Total: 6, PerClass: map[string]int{"1": 3, "2": 3}, ClassCount: 2}
}

func newTestServer(t *testing.T, orch Orchestrator) *Server {
	t.Helper()
	s := New(orch)
	t.Cleanup(s.Close)
	return s
}

func post(t *testing.T, h http.Handler, method, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/call/"+method, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s: decode response %q: %v", method, rec.Body.String(), err)
	}
	return rec, out
}

func TestCORSMiddleware(t *testing.T) {
	handler := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/call/train", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS status = %d, want %d", rec.Code, http.StatusOK)
	}
	if v := rec.Header().Get("Access-Control-Allow-Origin"); v != "*" {
		t.Errorf("CORS origin = %q, want %q", v, "*")
	}
	if v := rec.Header().Get("Access-Control-Allow-Methods"); v != "GET, POST, OPTIONS" {
		t.Errorf("CORS methods = %q, want %q", v, "GET, POST, OPTIONS")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := &rateLimiter{}
	for i := range RateLimitMessages {
		if !rl.allow() {
			t.Fatalf("message %d rejected, want allowed", i+1)
		}
	}
	if rl.allow() {
		t.Error("message over the limit allowed")
	}
}

func TestCallAddSample(t *testing.T) {
	orch := newMockOrchestrator()
	h := newTestServer(t, orch).Handler()

	rec, out := post(t, h, MethodAddSample, `{"imageData":[0.25,0.5],"className":"1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", rec.Code, out)
	}
	if out["result"] != float64(1) {
		t.Errorf("result = %v, want 1", out["result"])
	}
	if orch.className != "1" || len(orch.pixels) != 2 || orch.pixels[1] != 0.5 {
		t.Errorf("orchestrator got (%v, %q)", orch.pixels, orch.className)
	}
}

func TestCallTrain(t *testing.T) {
	orch := newMockOrchestrator()
	h := newTestServer(t, orch).Handler()

	rec, out := post(t, h, MethodTrain, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", rec.Code, out)
	}
	if orch.epochs != 0 {
		t.Errorf("epochs = %d, want 0 so the manager applies its default", orch.epochs)
	}
	res := out["result"].(map[string]any)
	if res["message"] != training.MessageSuccess || res["loss"] != 0.25 || res["batches"] != float64(30) {
		t.Errorf("result = %v", res)
	}

	post(t, h, MethodTrain, `{"epochs":3}`)
	if orch.epochs != 3 {
		t.Errorf("epochs = %d, want 3", orch.epochs)
	}
}

func TestCallClassCount(t *testing.T) {
	orch := newMockOrchestrator()
	h := newTestServer(t, orch).Handler()

	post(t, h, MethodInitModel, `{"classCount":4}`)
	if orch.classCount != 4 {
		t.Errorf("initModel classCount = %d, want 4", orch.classCount)
	}
	post(t, h, MethodResetModel, `{}`)
	if orch.classCount != 0 {
		t.Errorf("resetModel classCount = %d, want 0", orch.classCount)
	}
	_, out := post(t, h, MethodStopListening, "")
	if out["result"] != true || !orch.stopped {
		t.Errorf("stopListening result = %v, stopped = %v", out["result"], orch.stopped)
	}
}

func TestCallErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		err        error
		wantStatus int
		wantCode   apperrors.ErrorCode
	}{
		{"unknown method", "fly", "", nil, http.StatusNotFound, apperrors.NotFound},
		{"missing image", MethodAddSample, `{"className":"1"}`, nil, http.StatusBadRequest, apperrors.InvalidArgument},
		{"malformed body", MethodTrain, `{"epochs":`, nil, http.StatusBadRequest, apperrors.InvalidArgument},
		{"wrong arg type", MethodTrain, `{"epochs":"ten"}`, nil, http.StatusBadRequest, apperrors.InvalidArgument},
		{"not initialized", MethodClassify, `{"imageData":[0]}`, apperrors.New(apperrors.NotInitialized, "no model"), http.StatusPreconditionFailed, apperrors.NotInitialized},
		{"empty samples", MethodTrain, "", apperrors.New(apperrors.EmptySampleSet, "no training samples"), http.StatusPreconditionFailed, apperrors.EmptySampleSet},
		{"training", MethodAddSample, `{"imageData":[0],"className":"1"}`, apperrors.New(apperrors.TrainingInProgress, "busy"), http.StatusConflict, apperrors.TrainingInProgress},
		{"device", MethodStartListening, "", apperrors.New(apperrors.DeviceUnavailable, "no mic"), http.StatusServiceUnavailable, apperrors.DeviceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := newMockOrchestrator()
			orch.err = tt.err
			h := newTestServer(t, orch).Handler()

			rec, out := post(t, h, tt.method, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if out["code"] != string(tt.wantCode) {
				t.Errorf("code = %v, want %s", out["code"], tt.wantCode)
			}
		})
	}
}

func TestDetections(t *testing.T) {
	orch := newMockOrchestrator()
	h := newTestServer(t, orch).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/detections?limit=2", http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || orch.limit != 2 {
		t.Errorf("status = %d, limit = %d", rec.Code, orch.limit)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"keyword":"maju"`) || !strings.Contains(body, `"dropped":3`) {
		t.Errorf("body = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/detections", http.NoBody))
	if orch.limit != DefaultDetectionLimit {
		t.Errorf("default limit = %d, want %d", orch.limit, DefaultDetectionLimit)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/detections?limit=x", http.NoBody))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want 400", rec.Code)
	}
}

func dialWS(t *testing.T, h http.Handler) (*websocket.Conn, context.Context) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })
	return conn, ctx
}

func TestWebSocketCall(t *testing.T) {
	orch := newMockOrchestrator()
	conn, ctx := dialWS(t, newTestServer(t, orch).Handler())

	if err := wsjson.Write(ctx, conn, CallMessage{Type: "call", ID: "7", Method: MethodGetSamplesInfo}); err != nil {
		t.Fatal(err)
	}
	var res struct {
		Type   string                `json:"type"`
		ID     string                `json:"id"`
		Result classifier.SamplesInfo `json:"result"`
	}
	if err := wsjson.Read(ctx, conn, &res); err != nil {
		t.Fatal(err)
	}
	if res.Type != "result" || res.ID != "7" || res.Result.Total != 6 {
		t.Errorf("reply = %+v", res)
	}

	if err := wsjson.Write(ctx, conn, CallMessage{Type: "call", ID: "8", Method: "fly"}); err != nil {
		t.Fatal(err)
	}
	var errMsg ErrorMessage
	if err := wsjson.Read(ctx, conn, &errMsg); err != nil {
		t.Fatal(err)
	}
	if errMsg.Type != "error" || errMsg.ID != "8" || errMsg.Code != string(apperrors.NotFound) {
		t.Errorf("error reply = %+v", errMsg)
	}
}

func TestWebSocketKeywordPush(t *testing.T) {
	orch := newMockOrchestrator()
	s := newTestServer(t, orch)
	conn, ctx := dialWS(t, s.Handler())

	// wait until the server has registered the connection
	deadline := time.Now().Add(2 * time.Second)
	for {
		s.mu.RLock()
		n := len(s.conns)
		s.mu.RUnlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("connection never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	orch.detectionCh <- orchestrator.Detection{ID: "d9", Keyword: "robodu", Confidence: 0.95, LatencyMS: 12.5}

	var msg KeywordMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "keyword" || msg.Keyword != "robodu" || msg.Confidence != 0.95 || msg.LatencyMS != 12.5 {
		t.Errorf("push = %+v", msg)
	}
}
