package probability

import (
	"math"

	"github.com/farcloser/sonoscope/internal/types"
)

const (
	wavePoints = 100
	waveSpan   = 4 * math.Pi
	waveDecay  = 10.0
)

//nolint:gochecknoglobals // constant tables
var (
	states = []types.SuperpositionState{
		{ID: "original", Probability: 0.4, AudioVariant: "original"},
		{ID: "reversed", Probability: 0.2, AudioVariant: "reversed"},
		{ID: "pitched", Probability: 0.15, AudioVariant: "pitched"},
		{ID: "stretched", Probability: 0.15, AudioVariant: "stretched"},
		{ID: "granular", Probability: 0.1, AudioVariant: "granular"},
	}

	collapseFractions = []float64{0.25, 0.5, 0.75}

	uncertainty = []types.UncertaintyZone{
		{Start: 0.1, End: 0.2, Entropy: 0.8},
		{Start: 0.4, End: 0.5, Entropy: 0.9},
		{Start: 0.7, End: 0.8, Entropy: 0.7},
	}
)

// Generate builds the synthetic probability wave. Only the duration is used; zones and
// collapse points are fixed fractions of it.
func Generate(duration float64) *types.ProbabilityWave {
	wave := make([]float64, wavePoints)
	for i := range wave {
		x := float64(i) / wavePoints * waveSpan
		s := math.Sin(x)
		wave[i] = s * s * math.Exp(-x/waveDecay)
	}

	collapse := make([]float64, len(collapseFractions))
	for i, f := range collapseFractions {
		collapse[i] = f * duration
	}

	zones := make([]types.UncertaintyZone, len(uncertainty))
	for i, z := range uncertainty {
		zones[i] = types.UncertaintyZone{
			Start:   z.Start * duration,
			End:     z.End * duration,
			Entropy: z.Entropy,
		}
	}

	return &types.ProbabilityWave{
		WaveFunction:        wave,
		SuperpositionStates: append([]types.SuperpositionState(nil), states...),
		CollapsePoints:      collapse,
		UncertaintyZones:    zones,
	}
}

// Analyze adapts Generate to the common analyzer input.
func Analyze(buf *types.SampleBuffer) *types.ProbabilityWave {
	return Generate(buf.Duration)
}
