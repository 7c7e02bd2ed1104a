package harmonic

import (
	"math"

	"github.com/farcloser/sonoscope/internal/analysis/shared"
	"github.com/farcloser/sonoscope/internal/types"
)

const (
	minLag            = 20
	maxLag            = 500 // exclusive
	correlationWindow = 1000
	fallbackFreq      = 440.0
	harmonicCount     = 8
	mapSlices         = 100
)

// simpleRatios is scanned in this order; the first of two equally distant ratios wins.
//
//nolint:gochecknoglobals // constant table
var simpleRatios = []float64{1, 2, 1.5, 1.33, 1.25}

/*
Consonance Interpretation

The ratios fed to the consonance score are harmonics / fundamental, which is exactly
1..8 for any input. Against the simple ratio set the per-harmonic scores are
1, 1, 0, -1, -2, -3, -4, -5, so the score settles at -162.5 whatever the signal.
The value is reported as computed and not clamped.
*/

// Analyze estimates the fundamental by lag autocorrelation and builds the harmonic series.
func Analyze(buf *types.SampleBuffer) *types.HarmonicSignature {
	data := buf.Mono()

	fundamental := fallbackFreq
	if lag := bestLag(data); lag > 0 && buf.SampleRate > 0 {
		fundamental = float64(buf.SampleRate) / float64(lag)
	}

	harmonics := make([]float64, harmonicCount)
	ratios := make([]float64, harmonicCount)

	for i := range harmonicCount {
		harmonics[i] = fundamental * float64(i+1)
		ratios[i] = harmonics[i] / fundamental
	}

	return &types.HarmonicSignature{
		FundamentalFreq: fundamental,
		Harmonics:       harmonics,
		HarmonicRatios:  ratios,
		ConsonanceScore: consonance(ratios) * 100,
		DissonanceMap:   dissonanceMap(data),
	}
}

// Empty is the fallback record: 440 Hz fundamental and a flat dissonance map.
func Empty() *types.HarmonicSignature {
	return Analyze(&types.SampleBuffer{})
}

// bestLag returns the lag with the highest positive correlation, or 0 when none beats 0.
func bestLag(data []float64) int {
	var (
		best    int
		maxCorr float64
	)

	for lag := minLag; lag < maxLag; lag++ {
		if corr := shared.Correlate(data, correlationWindow, lag); corr > maxCorr {
			maxCorr = corr
			best = lag
		}
	}

	return best
}

func consonance(ratios []float64) float64 {
	if len(ratios) == 0 {
		return 0
	}

	var acc float64

	for _, ratio := range ratios {
		closest := simpleRatios[0]
		for _, candidate := range simpleRatios[1:] {
			if math.Abs(candidate-ratio) < math.Abs(closest-ratio) {
				closest = candidate
			}
		}

		acc += 1 - math.Abs(ratio-closest)
	}

	return acc / float64(len(ratios))
}

func dissonanceMap(data []float64) []float64 {
	chunk := shared.ChunkSize(len(data), mapSlices)
	out := make([]float64, mapSlices)

	if chunk == 0 {
		return out
	}

	for i := range mapSlices {
		start := i * chunk
		out[i] = shared.AbsDiffSum(data[start:start+chunk], chunk) / float64(chunk)
	}

	return out
}
