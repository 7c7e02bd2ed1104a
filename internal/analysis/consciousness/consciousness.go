package consciousness

import (
	"math"

	"github.com/farcloser/sonoscope/internal/analysis/shared"
	"github.com/farcloser/sonoscope/internal/types"
)

const (
	minPeriodSeconds = 0.1
	maxPeriodSeconds = 2.0
	periodStep       = 100
	corrWindow       = 1000
	flowWindow       = 10000
	deepMeditation   = 80.0
	lightMeditation  = 40.0
)

// Brainwave bands, upper bounds exclusive.
const (
	deltaCeiling = 4.0
	thetaCeiling = 8.0
	alphaCeiling = 13.0
	betaCeiling  = 30.0
)

//nolint:gochecknoglobals // constant table
var binaural = map[types.Brainwave]float64{
	types.BrainwaveDelta: 1.5,
	types.BrainwaveTheta: 4,
	types.BrainwaveAlpha: 7.83,
	types.BrainwaveBeta:  10,
	types.BrainwaveGamma: 40,
}

// Analyze finds the dominant rhythm between 0.5 and 10 Hz by autocorrelation and maps it
// to a brainwave band. With periods capped at 0.1s, beta and gamma are never reached.
func Analyze(buf *types.SampleBuffer) *types.ConsciousnessSync {
	data := buf.Mono()

	rhythm, best := dominantRhythm(data, buf.SampleRate)
	target := Band(rhythm)

	var consistency float64
	for i := 1; i < min(len(data), flowWindow); i++ {
		consistency += 1 - math.Abs(data[i]-data[i-1])
	}

	depth := lightMeditation
	if target == types.BrainwaveTheta || target == types.BrainwaveAlpha {
		depth = deepMeditation
	}

	return &types.ConsciousnessSync{
		BrainwaveTarget:     target,
		BinauralOffset:      binaural[target],
		IsochronicPulse:     rhythm,
		EntrainmentStrength: math.Min(best*100, 100),
		FlowStateScore:      shared.Clamp(consistency/flowWindow*100, 0, 100),
		MeditationDepth:     depth,
	}
}

// Empty is the fallback record: no rhythm, which reads as delta.
func Empty() *types.ConsciousnessSync {
	return Analyze(&types.SampleBuffer{})
}

// Band maps a rhythm frequency to its brainwave band.
func Band(freq float64) types.Brainwave {
	switch {
	case freq < deltaCeiling:
		return types.BrainwaveDelta
	case freq < thetaCeiling:
		return types.BrainwaveTheta
	case freq < alphaCeiling:
		return types.BrainwaveAlpha
	case freq < betaCeiling:
		return types.BrainwaveBeta
	default:
		return types.BrainwaveGamma
	}
}

// dominantRhythm returns the frequency of the best-correlating period and its
// correlation. Only strict improvements over 0 count, so silence returns 0, 0.
func dominantRhythm(data []float64, sampleRate int) (float64, float64) {
	var freq, best float64

	lo := int(math.Floor(float64(sampleRate) * minPeriodSeconds))
	hi := int(math.Floor(float64(sampleRate) * maxPeriodSeconds))

	for period := max(lo, 1); period < hi; period += periodStep {
		corr := shared.Correlate(data, corrWindow, period)
		if corr > best {
			best = corr
			freq = float64(sampleRate) / float64(period)
		}
	}

	return freq, best
}
