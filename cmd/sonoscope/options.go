package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/sonoscope"
)

var errNegativeSeed = errors.New("--seed must not be negative")

// analysisFlags are shared by every command that runs the analyzers.
func analysisFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "analyzers",
			Aliases: []string{"A"},
			Usage:   "Comma-separated analyzers or presets: all, suggest, harmonic, beatgrid, emotion, synaesthesia, fractal, crowd, texture, probability, rift, consciousness",
			Value:   "all",
			Sources: cli.EnvVars("SONOSCOPE_ANALYZERS"),
		},
		&cli.IntFlag{
			Name:    "seed",
			Usage:   "Seed for the stochastic fields (0 = random, reported in the output)",
			Sources: cli.EnvVars("SONOSCOPE_SEED"),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Abort the analysis after this long (0 = no limit)",
			Sources: cli.EnvVars("SONOSCOPE_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "Analyzers running at once (0 = number of CPUs)",
			Sources: cli.EnvVars("SONOSCOPE_WORKERS"),
		},
		&cli.StringFlag{
			Name:    "bands",
			Usage:   "Synaesthesia band intensities: placeholder, spectral",
			Value:   "placeholder",
			Sources: cli.EnvVars("SONOSCOPE_BANDS"),
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: console, json, markdown",
			Value:   "console",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"D"},
			Usage:   "Include all raw analyzer data in output",
		},
	}
}

func parseOptions(cmd *cli.Command) (sonoscope.Options, error) {
	opts := sonoscope.DefaultOptions()

	analyzers, err := sonoscope.ParseAnalyzers(cmd.String("analyzers"))
	if err != nil {
		return opts, err
	}

	bands, err := sonoscope.ParseBandEstimator(cmd.String("bands"))
	if err != nil {
		return opts, err
	}

	seed := cmd.Int("seed")
	if seed < 0 {
		return opts, fmt.Errorf("%w: got %d", errNegativeSeed, seed)
	}

	opts.Analyzers = analyzers
	opts.Bands = bands
	opts.Seed = uint64(seed)
	opts.Timeout = cmd.Duration("timeout")

	if workers := cmd.Int("workers"); workers > 0 {
		opts.Workers = workers
	}

	return opts, nil
}
