package crowd

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/sonoscope/internal/analysis/shared"
	"github.com/farcloser/sonoscope/internal/types"
)

const (
	curvePoints     = 200
	peakFloor       = 60.0
	peakReach       = 2
	buildupFloor    = 30.0
	buildupMinRun   = 5
	dropJump        = 20.0
	delayBase       = 0.2
	delaySpread     = 0.3
	moshEnergyScale = 50.0
	moshPeakScale   = 10.0
)

// Analyze simulates a crowd reacting to the RMS energy curve. rng only drives the
// response delay, a presentation value with no analytical meaning.
func Analyze(buf *types.SampleBuffer, rng types.Random) *types.CrowdEnergySimulation {
	curve := energyCurve(buf.Mono())
	peaks := peakMoments(curve, buf.Duration)

	mean := stat.Mean(curve, nil)
	mosh := math.Min((mean/moshEnergyScale)*(float64(len(peaks))/moshPeakScale), 1) * 100

	return &types.CrowdEnergySimulation{
		EnergyCurve:        curve,
		PeakMoments:        peaks,
		BuildupZones:       buildupZones(curve, buf.Duration),
		DropImpact:         dropImpacts(curve, buf.Duration),
		CrowdResponseDelay: delayBase + rng.Float64()*delaySpread,
		MoshPitProbability: mosh,
	}
}

// Empty is the fallback record: a flat curve and the shortest response delay.
func Empty() *types.CrowdEnergySimulation {
	return Analyze(&types.SampleBuffer{}, noJitter{})
}

type noJitter struct{}

func (noJitter) Float64() float64 { return 0 }
func (noJitter) IntN(int) int     { return 0 }

// energyCurve returns per-chunk RMS normalized to 0-100 against the loudest chunk.
func energyCurve(data []float64) []float64 {
	chunk := shared.ChunkSize(len(data), curvePoints)
	curve := make([]float64, curvePoints)

	if chunk == 0 {
		return curve
	}

	for i := range curvePoints {
		part := data[i*chunk : (i+1)*chunk]
		curve[i] = math.Sqrt(floats.Dot(part, part) / float64(chunk))
	}

	peak := floats.Max(curve)
	if peak == 0 {
		return curve
	}

	floats.Scale(100/peak, curve)

	return curve
}

func timeAt(i int, duration float64) float64 {
	return float64(i) / curvePoints * duration
}

func peakMoments(curve []float64, duration float64) []float64 {
	peaks := []float64{}

	for i := peakReach; i < len(curve)-peakReach; i++ {
		v := curve[i]
		if v <= peakFloor {
			continue
		}

		isPeak := true

		for d := 1; d <= peakReach; d++ {
			if v <= curve[i-d] || v <= curve[i+d] {
				isPeak = false

				break
			}
		}

		if isPeak {
			peaks = append(peaks, timeAt(i, duration))
		}
	}

	return peaks
}

// buildupZones records rising runs that start above the floor and last more than
// buildupMinRun chunks. A run still rising at the end of the curve is not reported.
func buildupZones(curve []float64, duration float64) []types.BuildupZone {
	zones := []types.BuildupZone{}
	start := -1

	for i := 1; i < len(curve); i++ {
		rising := curve[i] > curve[i-1]

		switch {
		case rising && start == -1 && curve[i] > buildupFloor:
			start = i
		case !rising && start != -1:
			if i-start > buildupMinRun {
				zones = append(zones, types.BuildupZone{
					Start:     timeAt(start, duration),
					End:       timeAt(i, duration),
					Intensity: curve[i],
				})
			}

			start = -1
		}
	}

	return zones
}

func dropImpacts(curve []float64, duration float64) []float64 {
	drops := []float64{}

	for i := 1; i < len(curve); i++ {
		if curve[i]-curve[i-1] > dropJump {
			drops = append(drops, timeAt(i, duration))
		}
	}

	return drops
}
