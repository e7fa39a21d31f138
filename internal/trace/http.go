package trace

import (
	"encoding/json"
	"net/http"
)

// TraceHeader echoes the request's trace ID on responses.
const TraceHeader = "X-Trace-Id"

// Middleware extracts or creates trace context for HTTP requests.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tc := extractFromHeaders(r)
		w.Header().Set(TraceHeader, tc.TraceID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), tc)))
	})
}

func extractFromHeaders(r *http.Request) Context {
	caller := Context{
		TraceID: r.Header.Get(TraceIDKey),
		SpanID:  r.Header.Get(SpanIDKey),
	}
	return caller.Child()
}

// ExtractFromJSON reads the trace_id field of a websocket message. It
// returns a fresh context and false when the field is absent.
func ExtractFromJSON(data []byte) (Context, bool) {
	var msg struct {
		TraceID string `json:"trace_id"`
	}
	if err := json.Unmarshal(data, &msg); err != nil || msg.TraceID == "" {
		return New(), false
	}
	return Context{
		TraceID: msg.TraceID,
		SpanID:  newID(8),
	}, true
}
