//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/sonoscope"
	"github.com/farcloser/sonoscope/internal/decode"
)

var errProcessArgs = errors.New("expected exactly one argument: file path")

func processCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:  "stream",
			Usage: "Audio stream index (0-based), for files decoded through ffmpeg",
			Value: 0,
		},
	}

	return &cli.Command{
		Name:      "process",
		Usage:     "Decode an audio file and analyze it",
		ArgsUsage: "<file>",
		Flags:     append(flags, analysisFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errProcessArgs, cmd.NArg())
			}

			opts, err := parseOptions(cmd)
			if err != nil {
				return err
			}

			filePath := cmd.Args().First()

			decoded, err := decode.File(ctx, filePath, cmd.Int("stream"))
			if err != nil {
				return err
			}

			result, err := sonoscope.Analyze(ctx, decoded.Buffer, opts)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			return outputResult(filePath, result, cmd.String("format"), cmd.Bool("debug"))
		},
	}
}
