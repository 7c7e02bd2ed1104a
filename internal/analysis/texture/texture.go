package texture

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/sonoscope/internal/analysis/shared"
	"github.com/farcloser/sonoscope/internal/types"
)

const (
	window       = 50000
	tiltEpsilon  = 0.001
	tiltScale    = 50.0
	densityScale = 200.0
	motionScale  = 200.0
	threshold    = 70.0
	gritFloor    = 60.0
)

/*
Texture Interpretation

All metrics are time-domain proxies computed over the first 50000 samples:

| Metric     | Proxy                                                   |
|------------|---------------------------------------------------------|
| roughness  | mean absolute sample-to-sample delta                    |
| brightness | energy of samples i%4 in {2,3} over samples i%4 in {0,1}|
| warmth     | 100 - brightness                                        |
| density    | zero-crossing rate                                      |
| movement   | standard deviation around the whole-signal mean         |

Type precedence (raw values, first match wins): roughness > 60 gritty,
brightness > 70 crystalline, warmth > 70 organic, density > 70 metallic,
movement > 70 ethereal, otherwise smooth.

Silence has no spectral tilt: brightness and warmth are both reported as 0.
*/

// Analyze measures the texture proxies and classifies the signal.
func Analyze(buf *types.SampleBuffer) *types.SonicTexture {
	data := buf.Mono()
	limit := min(len(data), window)
	head := data[:limit]

	roughness := shared.AbsDiffSum(head, limit) / window * 100
	brightness, warmth := tilt(head)
	density := math.Min(float64(zeroCrossings(head))/window*densityScale, 100)
	movement := math.Sqrt(sumSquaredDeviation(head, mean(data))/window) * motionScale

	texture := &types.SonicTexture{
		Roughness:   shared.Clamp(roughness, 0, 100),
		Brightness:  shared.Clamp(brightness, 0, 100),
		Warmth:      shared.Clamp(warmth, 0, 100),
		Density:     shared.Clamp(density, 0, 100),
		Movement:    shared.Clamp(movement, 0, 100),
		TextureType: classify(roughness, brightness, warmth, density, movement),
	}

	texture.LayerDepth = (texture.Roughness + texture.Density + texture.Movement) / 3

	return texture
}

// Empty is the fallback record: all zero, smooth.
func Empty() *types.SonicTexture {
	return Analyze(&types.SampleBuffer{})
}

func classify(roughness, brightness, warmth, density, movement float64) types.TextureType {
	switch {
	case roughness > gritFloor:
		return types.TextureGritty
	case brightness > threshold:
		return types.TextureCrystalline
	case warmth > threshold:
		return types.TextureOrganic
	case density > threshold:
		return types.TextureMetallic
	case movement > threshold:
		return types.TextureEthereal
	default:
		return types.TextureSmooth
	}
}

// tilt splits samples by i%4 and compares the two halves.
func tilt(data []float64) (brightness, warmth float64) {
	var low, high float64

	for i, v := range data {
		if i%4 < 2 {
			low += math.Abs(v)
		} else {
			high += math.Abs(v)
		}
	}

	if low == 0 && high == 0 {
		return 0, 0
	}

	brightness = high / (low + tiltEpsilon) * tiltScale

	return brightness, 100 - brightness
}

func zeroCrossings(data []float64) int {
	count := 0

	for i := 1; i < len(data); i++ {
		if (data[i] >= 0) != (data[i-1] >= 0) {
			count++
		}
	}

	return count
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	return stat.Mean(data, nil)
}

func sumSquaredDeviation(data []float64, center float64) float64 {
	var sum float64
	for _, v := range data {
		sum += (v - center) * (v - center)
	}

	return sum
}
