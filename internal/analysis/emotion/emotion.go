package emotion

import (
	"math"

	"github.com/farcloser/sonoscope/internal/analysis/shared"
	"github.com/farcloser/sonoscope/internal/types"
)

const (
	arcPoints    = 100
	neutralColor = "#888888"
)

//nolint:gochecknoglobals // constant table
var palette = map[types.Emotion]string{
	types.EmotionEuphoric:    "#ff00ff",
	types.EmotionEnergetic:   "#ff4400",
	types.EmotionMelancholic: "#0044ff",
	types.EmotionPeaceful:    "#00ff88",
	types.EmotionTense:       "#ff0000",
}

/*
Chunk Classification

Energy (E) is the mean absolute amplitude of the chunk, brightness (B) the
amplitude-weighted sample position divided by the chunk length (0.5 = centred).
Rules are evaluated top to bottom, first match wins:

| Rule              | Emotion     | Intensity |
|-------------------|-------------|-----------|
| E > 0.5, B > 0.5  | euphoric    | 0.9       |
| E > 0.5, B < 0.3  | tense       | 0.8       |
| E < 0.3, B > 0.5  | peaceful    | 0.6       |
| E < 0.3, B < 0.3  | melancholic | 0.7       |
| E > 0.7           | energetic   | 0.85      |
| otherwise         | neutral     | E         |

The reported intensity is min(2 x intensity, 1).
*/

func classify(energy, brightness float64) (types.Emotion, float64) {
	switch {
	case energy > 0.5 && brightness > 0.5:
		return types.EmotionEuphoric, 0.9
	case energy > 0.5 && brightness < 0.3:
		return types.EmotionTense, 0.8
	case energy < 0.3 && brightness > 0.5:
		return types.EmotionPeaceful, 0.6
	case energy < 0.3 && brightness < 0.3:
		return types.EmotionMelancholic, 0.7
	case energy > 0.7:
		return types.EmotionEnergetic, 0.85
	default:
		return types.EmotionNeutral, energy
	}
}

// Analyze maps 100 slices of the signal onto an emotional arc and summarizes it.
func Analyze(buf *types.SampleBuffer) *types.EmotionalDNA {
	data := buf.Mono()
	chunk := shared.ChunkSize(len(data), arcPoints)
	arc := make([]types.EmotionalPoint, arcPoints)

	var totalBrightness, totalEnergy float64

	for i := range arcPoints {
		var energy, weighted float64

		for j := range chunk {
			v := math.Abs(data[i*chunk+j])
			energy += v
			weighted += v * float64(j)
		}

		centroid := weighted
		if energy != 0 {
			centroid = weighted / energy
		}

		totalBrightness += centroid
		totalEnergy += energy

		emotion, intensity := classify(
			shared.Div(energy, float64(chunk)),
			shared.Div(centroid, float64(chunk)),
		)

		arc[i] = types.EmotionalPoint{
			Time:      float64(i) / arcPoints * buf.Duration,
			Emotion:   emotion,
			Intensity: math.Min(intensity*2, 1),
		}
	}

	valence := (shared.Div(totalBrightness/arcPoints, float64(chunk)) - 0.5) * 2
	arousal := shared.Div(totalEnergy, float64(len(data)))*4 - 0.5
	dominance := math.Abs(valence) + math.Abs(arousal) - 0.5

	tension, release := tensionRelease(arc)

	return &types.EmotionalDNA{
		Valence:        shared.Clamp(valence, -1, 1),
		Arousal:        shared.Clamp(arousal, -1, 1),
		Dominance:      shared.Clamp(dominance, -1, 1),
		Tension:        tension * 100,
		Release:        release * 100,
		EmotionalArc:   arc,
		ColorSignature: colorSignature(arc),
	}
}

// Empty is the fallback record for a signal with no samples.
func Empty(duration float64) *types.EmotionalDNA {
	return Analyze(&types.SampleBuffer{Duration: duration})
}

func tensionRelease(arc []types.EmotionalPoint) (tension, release float64) {
	for i := 1; i < len(arc); i++ {
		diff := arc[i].Intensity - arc[i-1].Intensity
		if diff > 0 {
			tension += diff
		} else {
			release -= diff
		}
	}

	return tension, release
}

// colorSignature picks the emotion with the highest accumulated intensity.
// Ties go to the emotion that appears first along the arc.
func colorSignature(arc []types.EmotionalPoint) string {
	totals := map[types.Emotion]float64{}
	order := []types.Emotion{}

	for _, point := range arc {
		if _, seen := totals[point.Emotion]; !seen {
			order = append(order, point.Emotion)
		}

		totals[point.Emotion] += point.Intensity
	}

	if len(order) == 0 {
		return neutralColor
	}

	top := order[0]
	for _, emotion := range order[1:] {
		if totals[emotion] > totals[top] {
			top = emotion
		}
	}

	if color, ok := palette[top]; ok {
		return color
	}

	return neutralColor
}
