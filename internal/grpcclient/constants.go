// Package grpcclient talks to the model runtime that executes the keyword
// spotting and transfer-learning models. The protocol lives in
// proto/edgeml/runtime/v1 and its stubs in pkg/pb.
package grpcclient

import "time"

// Client configuration defaults
const (
	DefaultKeepaliveTime    = 10 * time.Second
	DefaultKeepaliveTimeout = 3 * time.Second

	// DefaultMaxMessageBytes bounds a single runtime message in either
	// direction. A full training batch of 20 rows of 62720 bottleneck
	// values is about 5 MB, above gRPC's 4 MiB default.
	DefaultMaxMessageBytes = 64 << 20

	// ReadyTimeout bounds how long opening a model waits for the runtime
	// connection.
	ReadyTimeout = 5 * time.Second
	// CloseTimeout bounds releasing a runtime handle.
	CloseTimeout = 2 * time.Second
)
