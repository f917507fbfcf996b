// stitchd is the catalog maintenance daemon.
//
// It keeps the entity reference graph tidy: a background sweeper removes
// entities no provider can reach anymore, and an operational HTTP server
// exposes health probes and Prometheus metrics.
package main

import (
	"os"

	"github.com/stitchd-io/stitchd/cmd/stitchd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintErr("Error: %v", err)
		os.Exit(1)
	}
}
