package main

import (
	"context"
	"os"

	"github.com/desertthunder/spotimcp/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "spotimcp",
		Usage:    "MCP tools for Spotify playlists and r/punk band recommendations",
		Version:  shared.AppVersion,
		Flags:    globalFlags(),
		Before:   r.Before,
		Commands: r.register(),
	}
}
