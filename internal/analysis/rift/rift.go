package rift

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/sonoscope/internal/analysis/shared"
	"github.com/farcloser/sonoscope/internal/types"
)

const (
	chunks          = 100
	jumpFloor       = 0.1
	checkpointEvery = 20
	checkpointFloor = 0.3
	intensityScale  = 500.0
	keptRifts       = 10
	maxTimelines    = 7
	stabilityCost   = 5.0
)

//nolint:gochecknoglobals // constant tables
var (
	riftTypes = []string{"temporal", "harmonic", "textural", "spatial"}
	realities = []string{
		"Mirror Universe",
		"Reversed Timeline",
		"Harmonic Dimension",
		"Void Space",
		"Echo Realm",
	}
)

// Analyze flags jumps in mean-absolute chunk energy. Labels are drawn from rng, type
// first then reality, so a seeded source reproduces them.
func Analyze(buf *types.SampleBuffer, rng types.Random) *types.DimensionalRift {
	data := buf.Mono()
	chunk := shared.ChunkSize(len(data), chunks)

	all := []types.RiftPoint{}

	var prev float64

	for i := range chunks {
		var energy float64
		if chunk > 0 {
			energy = floats.Norm(data[i*chunk:(i+1)*chunk], 1) / float64(chunk)
		}

		delta := math.Abs(energy - prev)
		prev = energy

		if delta <= jumpFloor && (i%checkpointEvery != 0 || energy <= checkpointFloor) {
			continue
		}

		kind := riftTypes[rng.IntN(len(riftTypes))]
		reality := realities[rng.IntN(len(realities))]

		all = append(all, types.RiftPoint{
			Time:             float64(i) / chunks * buf.Duration,
			Intensity:        math.Min(delta*intensityScale, 100),
			RiftType:         kind,
			AlternateReality: reality,
		})
	}

	kept := all[:min(len(all), keptRifts)]

	var total float64
	for _, r := range kept {
		total += r.Intensity
	}

	return &types.DimensionalRift{
		RiftPoints:        kept,
		ParallelTimelines: min(len(all), maxTimelines),
		DimensionalBleed:  shared.Div(total, float64(len(kept))),
		RealityStability:  math.Max(0, 100-stabilityCost*float64(len(all))),
	}
}

// Empty is the fallback record: no rifts, full stability.
func Empty() *types.DimensionalRift {
	return &types.DimensionalRift{
		RiftPoints:       []types.RiftPoint{},
		RealityStability: 100,
	}
}
