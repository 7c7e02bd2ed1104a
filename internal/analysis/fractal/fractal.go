package fractal

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/sonoscope/internal/analysis/shared"
	"github.com/farcloser/sonoscope/internal/types"
)

const (
	activeRange     = 0.01
	maxDimension    = 2.0
	patternWindows  = 16
	comparedWindows = 4
	minSimilarity   = 0.6
	zoomSimilarity  = 80.0
)

//nolint:gochecknoglobals // constant tables
var (
	boxScales        = []int{10, 20, 50, 100, 200}
	repetitionScales = []int{2, 4, 8}
)

// Analyze estimates a box-counting dimension and looks for windows repeating at 2x, 4x and 8x offsets.
func Analyze(buf *types.SampleBuffer) *types.TemporalFractal {
	data := buf.Mono()
	patterns := recursivePatterns(data, buf.Duration)

	zoom := []float64{}

	var total float64

	for _, p := range patterns {
		total += p.Similarity

		if p.Similarity > zoomSimilarity {
			zoom = append(zoom, p.StartTime)
		}
	}

	return &types.TemporalFractal{
		FractalDimension:    dimension(data),
		SelfSimilarityScore: shared.Div(total, float64(len(patterns))),
		RecursivePatterns:   patterns,
		InfiniteZoomPoints:  zoom,
	}
}

// Empty is the fallback record: no active boxes, no patterns.
func Empty() *types.TemporalFractal {
	return Analyze(&types.SampleBuffer{})
}

// dimension fits log(active boxes) against log(scale) and returns |slope| clamped to [0, 2].
func dimension(data []float64) float64 {
	logScales := make([]float64, len(boxScales))
	logCounts := make([]float64, len(boxScales))

	for i, scale := range boxScales {
		count := activeBoxes(data, scale)
		if count == 0 {
			count = 1
		}

		logScales[i] = math.Log(float64(scale))
		logCounts[i] = math.Log(float64(count))
	}

	_, slope := stat.LinearRegression(logScales, logCounts, nil, false)

	return shared.Clamp(math.Abs(slope), 0, maxDimension)
}

func activeBoxes(data []float64, scale int) int {
	chunk := shared.ChunkSize(len(data), scale)
	if chunk == 0 {
		return 0
	}

	count := 0

	for i := range scale {
		box := data[i*chunk : (i+1)*chunk]

		lo, hi := box[0], box[0]
		for _, v := range box[1:] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}

		if hi-lo > activeRange {
			count++
		}
	}

	return count
}

func recursivePatterns(data []float64, duration float64) []types.RecursivePattern {
	length := shared.ChunkSize(len(data), patternWindows)
	patterns := []types.RecursivePattern{}

	if length == 0 {
		return patterns
	}

	total := float64(len(data))

	for _, scale := range repetitionScales {
		for i := range comparedWindows {
			start1 := i * length
			start2 := (i + scale) * length

			if start2+length > len(data) {
				continue
			}

			var similarity float64
			for j := range length {
				similarity += 1 - math.Abs(data[start1+j]-data[start2+j])
			}

			similarity /= float64(length)

			if similarity > minSimilarity {
				patterns = append(patterns, types.RecursivePattern{
					StartTime:       float64(start1) / total * duration,
					Duration:        float64(length) / total * duration,
					RepetitionScale: scale,
					Similarity:      similarity * 100,
				})
			}
		}
	}

	return patterns
}
