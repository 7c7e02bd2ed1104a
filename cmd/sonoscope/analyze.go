//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/sonoscope"
	"github.com/farcloser/sonoscope/internal/pcm"
	"github.com/farcloser/sonoscope/internal/types"
)

var (
	errInvalidArgCount = errors.New("expected exactly one argument: file path or \"-\" for stdin")
	errInvalidBitDepth = errors.New("must be 16, 24, or 32")
	errInvalidChannels = errors.New("must be at least 1")
)

func analyzeCommand() *cli.Command {
	flags := []cli.Flag{
		// PCMFormat flags.
		&cli.IntFlag{
			Name:     "sample-rate",
			Aliases:  []string{"s"},
			Usage:    "Sample rate in Hz (e.g., 44100, 48000, 96000)",
			Required: true,
		},
		&cli.IntFlag{
			Name:    "bit-depth",
			Aliases: []string{"b"},
			Usage:   "Bit depth (16, 24, or 32)",
			Value:   32,
		},
		&cli.IntFlag{
			Name:    "channels",
			Aliases: []string{"c"},
			Usage:   "Number of channels (1 = mono, 2 = stereo)",
			Value:   2,
		},
	}

	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze raw interleaved little-endian PCM",
		ArgsUsage: "<file | ->",
		Flags:     append(flags, analysisFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			format, err := parsePCMFormat(cmd)
			if err != nil {
				return err
			}

			opts, err := parseOptions(cmd)
			if err != nil {
				return err
			}

			inputPath := cmd.Args().First()

			buf, err := decodeRaw(inputPath, format)
			if err != nil {
				return err
			}

			result, err := sonoscope.Analyze(ctx, buf, opts)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			return outputResult(inputPath, result, cmd.String("format"), cmd.Bool("debug"))
		},
	}
}

func parsePCMFormat(cmd *cli.Command) (types.PCMFormat, error) {
	bitDepth, err := toBitDepth(cmd.Int("bit-depth"))
	if err != nil {
		return types.PCMFormat{}, fmt.Errorf("--bit-depth: %w", err)
	}

	channels := cmd.Int("channels")
	if channels < 1 {
		return types.PCMFormat{}, fmt.Errorf("--channels: %w", errInvalidChannels)
	}

	return types.PCMFormat{
		SampleRate: cmd.Int("sample-rate"),
		BitDepth:   bitDepth,
		Channels:   uint(channels), //nolint:gosec // validated positive value
	}, nil
}

func toBitDepth(v int) (types.BitDepth, error) {
	switch v {
	case 16:
		return types.Depth16, nil
	case 24:
		return types.Depth24, nil
	case 32:
		return types.Depth32, nil
	default:
		return 0, errInvalidBitDepth
	}
}

// decodeRaw decodes a raw PCM file, or stdin when source is "-".
func decodeRaw(source string, format types.PCMFormat) (*types.SampleBuffer, error) {
	var reader io.Reader = os.Stdin

	if source != "-" {
		file, err := os.Open(source) //nolint:gosec // CLI tool opens user-specified audio files
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", source, err)
		}
		defer file.Close()

		reader = file
	}

	return pcm.Decode(reader, format)
}
