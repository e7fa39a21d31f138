package server

import "time"

// Server configuration constants
const (
	// Per-connection sliding-window rate limit on websocket calls.
	RateLimitMessages = 20
	RateLimitWindow   = time.Second

	// MaxBodyBytes bounds a call body; a 224x224x3 image as JSON numbers
	// fits comfortably.
	MaxBodyBytes = 16 << 20

	// DefaultDetectionLimit is how many detections GET /api/detections
	// returns without a limit parameter.
	DefaultDetectionLimit = 20

	// WriteTimeout bounds a single websocket push.
	WriteTimeout = 5 * time.Second
)

// Call method names, as used by the host app.
const (
	MethodInitKeywordModel = "initKeywordModel"
	MethodStartListening   = "startListening"
	MethodStopListening    = "stopListening"
	MethodInitModel        = "initModel"
	MethodAddSample        = "addSample"
	MethodTrain            = "train"
	MethodClassify         = "classify"
	MethodResetModel       = "resetModel"
	MethodGetSamplesInfo   = "getSamplesInfo"
)
