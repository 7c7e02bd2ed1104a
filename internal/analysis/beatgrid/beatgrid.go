package beatgrid

import (
	"math"

	"github.com/farcloser/sonoscope/internal/analysis/shared"
	"github.com/farcloser/sonoscope/internal/types"
)

const (
	frameSeconds    = 0.01
	onsetThreshold  = 0.3
	maxOnsets       = 32
	gridSpacingSec  = 0.5 // 120 BPM
	entanglementMs  = 100.0
	swingScale      = 10.0
	percentCeiling  = 100.0
	grooveFrequency = 0.1
)

//nolint:gochecknoglobals // constant table
var polyrhythmStrides = []int{4, 3, 5}

// Analyze detects energy onsets on 10ms frames and measures how they drift from a 120 BPM grid.
func Analyze(buf *types.SampleBuffer) *types.QuantumBeatGrid {
	onsets := detectOnsets(buf.Mono(), buf.SampleRate)

	timings := make([]float64, 0, min(len(onsets), maxOnsets))
	for i, onset := range onsets[:min(len(onsets), maxOnsets)] {
		timings = append(timings, (onset-float64(i)*gridSpacingSec)*1000)
	}

	groove := make([]float64, len(timings))
	for i, t := range timings {
		groove[i] = math.Sin(t*grooveFrequency)*0.5 + 0.5
	}

	layers := make([][]float64, len(polyrhythmStrides))
	for li, stride := range polyrhythmStrides {
		layers[li] = []float64{}

		for i := 0; i < len(timings); i += stride {
			layers[li] = append(layers[li], timings[i])
		}
	}

	return &types.QuantumBeatGrid{
		MicroTimings:        timings,
		GroovePattern:       groove,
		SwingFactor:         math.Min(swing(timings)*swingScale, percentCeiling),
		SyncopationIndex:    math.Min(meanAbs(timings), percentCeiling),
		PolyrhythmLayers:    layers,
		QuantumEntanglement: entanglement(timings),
	}
}

// Empty is the fallback record: no onsets.
func Empty() *types.QuantumBeatGrid {
	return Analyze(&types.SampleBuffer{})
}

func detectOnsets(data []float64, sampleRate int) []float64 {
	frame := int(float64(sampleRate) * frameSeconds)
	if frame <= 0 {
		return nil
	}

	var (
		onsets     []float64
		prevEnergy float64
	)

	for i := 0; i < len(data)-frame; i += frame {
		var energy float64
		for _, s := range data[i : i+frame] {
			energy += s * s
		}

		energy /= float64(frame)

		if energy-prevEnergy > onsetThreshold {
			onsets = append(onsets, float64(i)/float64(sampleRate))
		}

		prevEnergy = energy
	}

	return onsets
}

// swing is the gap between the mean drift of odd and even onsets.
func swing(timings []float64) float64 {
	var evenSum, oddSum float64

	var evenCount, oddCount int

	for i, t := range timings {
		if i%2 == 0 {
			evenSum += t
			evenCount++
		} else {
			oddSum += t
			oddCount++
		}
	}

	if evenCount == 0 || oddCount == 0 {
		return 0
	}

	return math.Abs(oddSum/float64(oddCount) - evenSum/float64(evenCount))
}

func meanAbs(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += math.Abs(v)
	}

	return shared.Div(sum, float64(len(values)))
}

func entanglement(timings []float64) float64 {
	var acc float64
	for i := 1; i < len(timings); i++ {
		acc += 1 - math.Abs(timings[i]-timings[i-1])/entanglementMs
	}

	return shared.Clamp(shared.Div(acc, float64(len(timings)))*100, 0, percentCeiling)
}
