// Package server exposes the manager's operations over HTTP and a
// websocket, and pushes keyword detections to connected clients.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/robodu/edgeml/internal/classifier"
	apperrors "github.com/robodu/edgeml/internal/errors"
	"github.com/robodu/edgeml/internal/orchestrator"
	"github.com/robodu/edgeml/internal/trace"
	"github.com/robodu/edgeml/internal/training"
)

// Orchestrator is the set of operations the server exposes.
type Orchestrator interface {
	InitKeywordModel(ctx context.Context) error
	StartListening(ctx context.Context) error
	StopListening()
	KeywordEvents() <-chan orchestrator.Detection
	RecentDetections(n int) []orchestrator.Detection
	DroppedDetections() int64
	InitClassifierModel(ctx context.Context, classCount int) error
	AddSample(ctx context.Context, pixels []float32, className string) (int, error)
	Train(ctx context.Context, epochs int) (training.Result, error)
	Classify(ctx context.Context, pixels []float32) (classifier.Prediction, error)
	ResetModel(ctx context.Context, classCount int) error
	SamplesInfo() classifier.SamplesInfo
}

// Message types.
type Message struct {
	Type string `json:"type"`
}

// CallMessage invokes a method over the websocket.
type CallMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Args    json.RawMessage `json:"args,omitempty"`
	TraceID string          `json:"trace_id,omitempty"`
}

type ResultMessage struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Result any    `json:"result"`
}

type ErrorMessage struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	ErrorBody
}

type KeywordMessage struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	Keyword    string    `json:"keyword"`
	Confidence float32   `json:"confidence"`
	LatencyMS  float64   `json:"latency_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// rateLimiter tracks message timestamps using a sliding window.
type rateLimiter struct {
	timestamps []time.Time
	mu         sync.Mutex
}

// allow checks if a message is allowed and records the timestamp if so.
func (r *rateLimiter) allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-RateLimitWindow)

	valid := r.timestamps[:0]
	for _, t := range r.timestamps {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	r.timestamps = valid

	if len(r.timestamps) >= RateLimitMessages {
		return false
	}

	r.timestamps = append(r.timestamps, now)
	return true
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	orch  Orchestrator
	mu    sync.RWMutex
	conns map[*websocket.Conn]*rateLimiter
	done  chan struct{}
	once  sync.Once
}

// New creates a server and starts pushing detections to websocket clients.
func New(orch Orchestrator) *Server {
	s := &Server{
		orch:  orch,
		conns: make(map[*websocket.Conn]*rateLimiter),
		done:  make(chan struct{}),
	}
	go s.broadcastDetections()
	return s
}

// Close stops the detection broadcaster.
func (s *Server) Close() {
	s.once.Do(func() { close(s.done) })
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("POST /api/call/{method}", s.handleCall)
	mux.HandleFunc("GET /api/detections", s.handleDetections)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// trace -> CORS
	return corsMiddleware(trace.Middleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	method := r.PathValue("method")
	log := trace.Logger(r.Context())

	var raw json.RawMessage
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, apperrors.Wrap(err, apperrors.InvalidArgument, "malformed request body"))
		return
	}

	result, err := s.call(r.Context(), method, raw)
	if err != nil {
		log.Warn("call failed", "method", method, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (s *Server) handleDetections(w http.ResponseWriter, r *http.Request) {
	limit := DefaultDetectionLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, apperrors.Newf(apperrors.InvalidArgument, "invalid limit %q", v))
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"detections": s.orch.RecentDetections(limit),
		"dropped":    s.orch.DroppedDetections(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	body, status := errorBody(err)
	writeJSON(w, status, body)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("websocket accept error", "error", err)
		return
	}
	conn.SetReadLimit(MaxBodyBytes)
	defer func() { _ = conn.Close(websocket.StatusNormalClosure, "") }()

	rl := &rateLimiter{}
	s.mu.Lock()
	s.conns[conn] = rl
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
	}()

	baseCtx := r.Context()
	log := trace.Logger(baseCtx)
	log.Info("websocket connected", "remote", r.RemoteAddr)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		var msg json.RawMessage
		if err := wsjson.Read(baseCtx, conn, &msg); err != nil {
			log.Debug("websocket read error", "error", err)
			return
		}

		if !rl.allow() {
			log.Warn("rate limit exceeded", "remote", r.RemoteAddr)
			_ = wsjson.Write(baseCtx, conn, ErrorMessage{
				Type:      "error",
				ErrorBody: ErrorBody{Code: "RATE_LIMITED", Message: "rate limit exceeded"},
			})
			continue
		}

		var base Message
		if err := json.Unmarshal(msg, &base); err != nil || base.Type != "call" {
			continue
		}
		var c CallMessage
		if err := json.Unmarshal(msg, &c); err != nil {
			continue
		}

		ctx := baseCtx
		if tc, ok := trace.ExtractFromJSON(msg); ok {
			ctx = trace.WithContext(ctx, tc)
		} else {
			ctx, _ = trace.EnsureContext(ctx)
		}

		// calls run concurrently so a long train does not block stopListening
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handleWSCall(ctx, conn, c)
		}()
	}
}

func (s *Server) handleWSCall(ctx context.Context, conn *websocket.Conn, c CallMessage) {
	result, err := s.call(ctx, c.Method, c.Args)
	if err != nil {
		trace.Logger(ctx).Warn("call failed", "method", c.Method, "error", err)
		body, _ := errorBody(err)
		_ = wsjson.Write(ctx, conn, ErrorMessage{Type: "error", ID: c.ID, ErrorBody: body})
		return
	}
	_ = wsjson.Write(ctx, conn, ResultMessage{Type: "result", ID: c.ID, Result: result})
}

func (s *Server) broadcastDetections() {
	events := s.orch.KeywordEvents()
	for {
		var d orchestrator.Detection
		select {
		case <-s.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			d = ev
		}

		msg := KeywordMessage{
			Type:       "keyword",
			ID:         d.ID,
			Keyword:    d.Keyword,
			Confidence: d.Confidence,
			LatencyMS:  d.LatencyMS,
			Timestamp:  d.Timestamp,
		}

		s.mu.RLock()
		for conn := range s.conns {
			go func(c *websocket.Conn) {
				ctx, cancel := context.WithTimeout(context.Background(), WriteTimeout)
				defer cancel()
				_ = wsjson.Write(ctx, c, msg)
			}(conn)
		}
		s.mu.RUnlock()
	}
}
