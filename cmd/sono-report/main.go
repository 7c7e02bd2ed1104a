package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/sonoscope/version"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	appl := &cli.Command{
		Name:    "sono-report",
		Usage:   "Generate and summarize sonoscope reports over a music collection",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			reportCommand(),
			digestCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
