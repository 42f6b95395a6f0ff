package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/namelens/mcname/internal/cmd"
	"github.com/namelens/mcname/internal/server"
)

// Version information set via ldflags during build
// Example: go build -ldflags="-X main.version=1.0.0 -X main.commit=abc123 -X main.buildDate=2025-10-28"
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)
	server.SetVersionInfo(version, commit, buildDate)

	// An interrupt stops outstanding lookups; unresolved names are reported as unknown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		cmd.ExitWithCodeStderr(cmd.ExitCodeFor(err), "Command execution failed", err)
	}
}
