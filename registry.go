package sonoscope

import (
	"github.com/farcloser/sonoscope/internal/analysis/beatgrid"
	"github.com/farcloser/sonoscope/internal/analysis/consciousness"
	"github.com/farcloser/sonoscope/internal/analysis/crowd"
	"github.com/farcloser/sonoscope/internal/analysis/emotion"
	"github.com/farcloser/sonoscope/internal/analysis/fractal"
	"github.com/farcloser/sonoscope/internal/analysis/harmonic"
	"github.com/farcloser/sonoscope/internal/analysis/probability"
	"github.com/farcloser/sonoscope/internal/analysis/rift"
	"github.com/farcloser/sonoscope/internal/analysis/synaesthesia"
	"github.com/farcloser/sonoscope/internal/analysis/texture"
	"github.com/farcloser/sonoscope/internal/types"
)

// entry binds an analyzer to the Result slot it owns.
type entry struct {
	analyzer Analyzer
	analyze  func(buf *types.SampleBuffer, rng types.Random, opts Options, res *Result)
	fallback func(buf *types.SampleBuffer, res *Result)
}

//nolint:gochecknoglobals // analyzer table
var registry = []entry{
	{
		analyzer: AnalyzerHarmonic,
		analyze: func(buf *types.SampleBuffer, _ types.Random, _ Options, res *Result) {
			res.Harmonic = harmonic.Analyze(buf)
		},
		fallback: func(_ *types.SampleBuffer, res *Result) { res.Harmonic = harmonic.Empty() },
	},
	{
		analyzer: AnalyzerBeatGrid,
		analyze: func(buf *types.SampleBuffer, _ types.Random, _ Options, res *Result) {
			res.BeatGrid = beatgrid.Analyze(buf)
		},
		fallback: func(_ *types.SampleBuffer, res *Result) { res.BeatGrid = beatgrid.Empty() },
	},
	{
		analyzer: AnalyzerEmotion,
		analyze: func(buf *types.SampleBuffer, _ types.Random, _ Options, res *Result) {
			res.Emotion = emotion.Analyze(buf)
		},
		fallback: func(buf *types.SampleBuffer, res *Result) { res.Emotion = emotion.Empty(buf.Duration) },
	},
	{
		analyzer: AnalyzerSynaesthesia,
		analyze: func(buf *types.SampleBuffer, rng types.Random, opts Options, res *Result) {
			var source synaesthesia.IntensitySource = synaesthesia.Placeholder{Random: rng}
			if opts.Bands == BandsSpectral {
				source = synaesthesia.Spectral{}
			}

			res.Synaesthesia = synaesthesia.Analyze(buf, source)
		},
		fallback: func(_ *types.SampleBuffer, res *Result) { res.Synaesthesia = synaesthesia.Empty() },
	},
	{
		analyzer: AnalyzerFractal,
		analyze: func(buf *types.SampleBuffer, _ types.Random, _ Options, res *Result) {
			res.Fractal = fractal.Analyze(buf)
		},
		fallback: func(_ *types.SampleBuffer, res *Result) { res.Fractal = fractal.Empty() },
	},
	{
		analyzer: AnalyzerCrowd,
		analyze: func(buf *types.SampleBuffer, rng types.Random, _ Options, res *Result) {
			res.Crowd = crowd.Analyze(buf, rng)
		},
		fallback: func(_ *types.SampleBuffer, res *Result) { res.Crowd = crowd.Empty() },
	},
	{
		analyzer: AnalyzerTexture,
		analyze: func(buf *types.SampleBuffer, _ types.Random, _ Options, res *Result) {
			res.Texture = texture.Analyze(buf)
		},
		fallback: func(_ *types.SampleBuffer, res *Result) { res.Texture = texture.Empty() },
	},
	{
		analyzer: AnalyzerProbability,
		analyze: func(buf *types.SampleBuffer, _ types.Random, _ Options, res *Result) {
			res.Probability = probability.Analyze(buf)
		},
		fallback: func(buf *types.SampleBuffer, res *Result) { res.Probability = probability.Generate(buf.Duration) },
	},
	{
		analyzer: AnalyzerRift,
		analyze: func(buf *types.SampleBuffer, rng types.Random, _ Options, res *Result) {
			res.Rift = rift.Analyze(buf, rng)
		},
		fallback: func(_ *types.SampleBuffer, res *Result) { res.Rift = rift.Empty() },
	},
	{
		analyzer: AnalyzerConsciousness,
		analyze: func(buf *types.SampleBuffer, _ types.Random, _ Options, res *Result) {
			res.Consciousness = consciousness.Analyze(buf)
		},
		fallback: func(_ *types.SampleBuffer, res *Result) { res.Consciousness = consciousness.Empty() },
	},
}
