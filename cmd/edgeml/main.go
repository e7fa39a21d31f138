// edgeml serves keyword spotting and on-device transfer learning over
// HTTP and WebSocket, backed by a model runtime reached over gRPC.
//
// Usage:
//
//	edgeml serve --config edgeml.yaml
//	edgeml features --format s16le clip.raw
//	edgeml devices
package main

import (
	"fmt"
	"os"

	"github.com/robodu/edgeml/cmd/edgeml/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
