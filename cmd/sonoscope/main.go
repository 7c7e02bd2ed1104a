package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/sonoscope/version"
)

const envLogLevel = "SONOSCOPE_LOG_LEVEL"

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	setupLogging()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Experimental audio analysis and remix suggestions",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			analyzeCommand(),
			processCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}

// setupLogging routes slog to stderr, leaving stdout to the formatted output.
func setupLogging() {
	level := slog.LevelInfo

	if raw := os.Getenv(envLogLevel); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			slog.Warn("ignoring invalid log level", "env", envLogLevel, "value", raw)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
