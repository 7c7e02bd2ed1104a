package sonoscope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"strings"
	"time"

	"github.com/farcloser/primordium/fault"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/farcloser/sonoscope/internal/preflight"
	"github.com/farcloser/sonoscope/internal/types"
)

/*
Usage:

buf := types.NewSampleBuffer([][]float64{left, right}, 44100)
result, err := sonoscope.Analyze(ctx, buf, sonoscope.DefaultOptions())
for _, s := range sonoscope.Suggest(result) {
    fmt.Printf("[%s] %s\n", s.Impact, s.Name)
}

// Deterministic run, rhythm analyzers only
opts := sonoscope.DefaultOptions()
opts.Seed = 42
opts.Analyzers = sonoscope.AnalyzerBeatGrid | sonoscope.AnalyzerConsciousness
result, err := sonoscope.Analyze(ctx, buf, opts)

// Real band energy instead of the placeholder draw
opts.Bands = sonoscope.BandsSpectral

*/

// ErrInvalidInput is returned when the buffer is missing or has no usable sample rate.
var ErrInvalidInput = errors.New("invalid input")

// Analyzer identifies one of the ten analyzers.
type Analyzer int

const (
	AnalyzerHarmonic Analyzer = 1 << iota
	AnalyzerBeatGrid
	AnalyzerEmotion
	AnalyzerSynaesthesia
	AnalyzerFractal
	AnalyzerCrowd
	AnalyzerTexture
	AnalyzerProbability
	AnalyzerRift
	AnalyzerConsciousness

	// Presets.
	AnalyzersAll = AnalyzerHarmonic | AnalyzerBeatGrid | AnalyzerEmotion |
		AnalyzerSynaesthesia | AnalyzerFractal | AnalyzerCrowd | AnalyzerTexture |
		AnalyzerProbability | AnalyzerRift | AnalyzerConsciousness

	// AnalyzersSuggest is what Suggest needs to evaluate every rule.
	AnalyzersSuggest = AnalyzerHarmonic | AnalyzerEmotion | AnalyzerFractal |
		AnalyzerCrowd | AnalyzerTexture | AnalyzerRift | AnalyzerConsciousness
)

func (a Analyzer) String() string {
	switch a {
	case AnalyzerHarmonic:
		return "harmonic"
	case AnalyzerBeatGrid:
		return "beatgrid"
	case AnalyzerEmotion:
		return "emotion"
	case AnalyzerSynaesthesia:
		return "synaesthesia"
	case AnalyzerFractal:
		return "fractal"
	case AnalyzerCrowd:
		return "crowd"
	case AnalyzerTexture:
		return "texture"
	case AnalyzerProbability:
		return "probability"
	case AnalyzerRift:
		return "rift"
	case AnalyzerConsciousness:
		return "consciousness"
	}

	return "unknown"
}

// Names lists the individual analyzers in a set, in registry order.
func (a Analyzer) Names() []string {
	names := []string{}

	for _, e := range registry {
		if a&e.analyzer != 0 {
			names = append(names, e.analyzer.String())
		}
	}

	return names
}

// ParseAnalyzers converts a comma separated list ("harmonic,crowd") to a set.
// "all" and the empty string select every analyzer.
func ParseAnalyzers(s string) (Analyzer, error) {
	var set Analyzer

	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(strings.ToLower(part))

		switch name {
		case "", "all":
			set |= AnalyzersAll

			continue
		case "suggest":
			set |= AnalyzersSuggest

			continue
		}

		found := false

		for _, e := range registry {
			if e.analyzer.String() == name {
				set |= e.analyzer
				found = true

				break
			}
		}

		if !found {
			return 0, fmt.Errorf("unknown analyzer %q (valid: all, suggest, %s)",
				name, strings.Join(AnalyzersAll.Names(), ", "))
		}
	}

	return set, nil
}

// BandEstimator selects how the synaesthesia mapper gets its band intensities.
type BandEstimator int

const (
	BandsPlaceholder BandEstimator = iota // Random draw per band (default).
	BandsSpectral                         // FFT band energy relative to the loudest band.
)

func (b BandEstimator) String() string {
	switch b {
	case BandsPlaceholder:
		return "placeholder"
	case BandsSpectral:
		return "spectral"
	}

	return "unknown"
}

// ParseBandEstimator converts a string to a BandEstimator value.
func ParseBandEstimator(s string) (BandEstimator, error) {
	switch s {
	case "placeholder", "":
		return BandsPlaceholder, nil
	case "spectral":
		return BandsSpectral, nil
	default:
		return 0, fmt.Errorf("unknown band estimator %q (valid: placeholder, spectral)", s)
	}
}

// Options configures the analysis.
type Options struct {
	Analyzers Analyzer      // which analyzers to run (default: AnalyzersAll)
	Seed      uint64        // randomness seed (0 = pick one, reported in Result.Seed)
	Timeout   time.Duration // overall deadline (0 = none beyond ctx)
	Workers   int           // analyzers running at once (default: NumCPU)
	Bands     BandEstimator // synaesthesia band intensities (default: placeholder)
}

// DefaultOptions runs every analyzer with the placeholder band intensities.
func DefaultOptions() Options {
	return Options{
		Analyzers: AnalyzersAll,
		Workers:   runtime.NumCPU(),
		Bands:     BandsPlaceholder,
	}
}

// Result is the aggregate of every analyzer that ran. Records for analyzers that were
// not selected are nil.
type Result struct {
	ID        string   // unique per run
	Seed      uint64   // reproduces every stochastic field when passed back in Options
	Analyzers []string // analyzers that ran
	Failures  []string // analyzers that panicked and were replaced with their fallback record

	// Signal describes the input across all channels: silence, clipping, DC offset.
	Signal *types.SignalCheck

	Harmonic      *types.HarmonicSignature
	BeatGrid      *types.QuantumBeatGrid
	Emotion       *types.EmotionalDNA
	Synaesthesia  *types.SynaestheticMap
	Fractal       *types.TemporalFractal
	Crowd         *types.CrowdEnergySimulation
	Texture       *types.SonicTexture
	Probability   *types.ProbabilityWave
	Rift          *types.DimensionalRift
	Consciousness *types.ConsciousnessSync
}

// Analyze runs the selected analyzers concurrently over buf. Analyzers only read buf;
// each writes its own record. A panicking analyzer does not abort the run: its fallback
// record is used instead and its name is listed in Result.Failures.
func Analyze(ctx context.Context, buf *types.SampleBuffer, opts Options) (*Result, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", ErrInvalidInput)
	}

	if buf.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidInput, buf.SampleRate)
	}

	applyDefaults(&opts)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	result := &Result{
		ID:        uuid.NewString(),
		Seed:      opts.Seed,
		Analyzers: opts.Analyzers.Names(),
		Signal:    preflight.Inspect(buf, preflight.DefaultOptions()),
	}

	if len(result.Signal.Warnings) > 0 {
		slog.Debug("sonoscope.Analyze", "stage", "preflight", "id", result.ID, "warnings", result.Signal.Warnings)
	}

	slog.Debug("sonoscope.Analyze", "stage", "start", "id", result.ID, "seed", result.Seed,
		"analyzers", result.Analyzers, "frames", buf.Frames(), "sample rate", buf.SampleRate)

	failed := make([]bool, len(registry))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Workers)

	for idx, e := range registry {
		if opts.Analyzers&e.analyzer == 0 {
			continue
		}

		if ctx.Err() != nil {
			return nil, cancelled(ctx)
		}

		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			failed[idx] = !run(e, buf, opts, result)

			return nil
		})
	}

	done := make(chan error, 1)

	go func() {
		done <- group.Wait()
	}()

	select {
	case <-ctx.Done():
		slog.Debug("sonoscope.Analyze", "stage", "cancelled", "id", result.ID)

		return nil, cancelled(ctx)
	case err := <-done:
		if err != nil {
			return nil, cancelled(ctx)
		}
	}

	for idx, e := range registry {
		if failed[idx] {
			result.Failures = append(result.Failures, e.analyzer.String())
		}
	}

	slog.Debug("sonoscope.Analyze", "stage", "done", "id", result.ID, "failures", result.Failures)

	return result, nil
}

// run executes one analyzer, substituting its fallback record on panic.
// It reports whether the analyzer completed normally.
func run(e entry, buf *types.SampleBuffer, opts Options, result *Result) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("analyzer failed, using fallback record",
				"analyzer", e.analyzer.String(), "panic", fmt.Sprint(r))

			e.fallback(buf, result)

			ok = false
		}
	}()

	rng := rand.New(rand.NewPCG(opts.Seed, uint64(e.analyzer))) //nolint:gosec // not security sensitive

	e.analyze(buf, rng, opts, result)

	return true
}

func cancelled(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", fault.ErrTimeout, ctx.Err())
	}

	return ctx.Err()
}

func applyDefaults(opts *Options) {
	defaults := DefaultOptions()

	if opts.Analyzers == 0 {
		opts.Analyzers = defaults.Analyzers
	}

	if opts.Workers <= 0 {
		opts.Workers = defaults.Workers
	}

	for opts.Seed == 0 {
		opts.Seed = rand.Uint64() //nolint:gosec // not security sensitive
	}
}
