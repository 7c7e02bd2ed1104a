package synaesthesia

import (
	"math"

	"github.com/farcloser/sonoscope/internal/analysis/shared"
	"github.com/farcloser/sonoscope/internal/types"
)

const (
	roughnessWindow = 10000
	synesthesiaType = "chromesthesia"
)

// Band is one of the seven fixed frequency bands.
type Band struct {
	Name  string
	Low   float64 // Hz
	High  float64 // Hz
	Color string
}

// Center is the arithmetic midpoint of the band.
func (b Band) Center() float64 {
	return (b.Low + b.High) / 2
}

// Bands lists the bands from sub-bass to ultra-high.
//
//nolint:gochecknoglobals // constant table
var Bands = []Band{
	{Name: "sub-bass", Low: 20, High: 60, Color: "#1a0033"},
	{Name: "bass", Low: 60, High: 250, Color: "#4400ff"},
	{Name: "low-mid", Low: 250, High: 500, Color: "#00ff88"},
	{Name: "mid", Low: 500, High: 2000, Color: "#ffff00"},
	{Name: "high-mid", Low: 2000, High: 4000, Color: "#ff8800"},
	{Name: "high", Low: 4000, High: 8000, Color: "#ff0044"},
	{Name: "ultra-high", Low: 8000, High: 20000, Color: "#ffffff"},
}

// Indexes into Bands used for the spatial position.
const (
	bandBass = 1
	bandMid  = 3
	bandHigh = 5
)

//nolint:gochecknoglobals // constant table
var textures = []string{"silk", "velvet", "sandpaper", "glass", "water", "lightning"}

// IntensitySource estimates a 0-1 intensity for each band.
type IntensitySource interface {
	Intensities(buf *types.SampleBuffer, bands []Band) []float64
}

// Analyze assigns colors and intensities to the bands and derives a texture and a position.
func Analyze(buf *types.SampleBuffer, source IntensitySource) *types.SynaestheticMap {
	intensities := source.Intensities(buf, Bands)

	colors := make([]types.FrequencyColor, len(Bands))
	for i, band := range Bands {
		colors[i] = types.FrequencyColor{
			Band:      band.Name,
			Freq:      band.Center(),
			Color:     band.Color,
			Intensity: intensities[i],
		}
	}

	return &types.SynaestheticMap{
		FrequencyColors: colors,
		TextureProfile:  textureProfile(buf.Mono()),
		SpatialPosition: types.SpatialPosition{
			X: colors[bandMid].Intensity*2 - 1,
			Y: colors[bandHigh].Intensity*2 - 1,
			Z: colors[bandBass].Intensity*2 - 1,
		},
		SynesthesiaType: synesthesiaType,
	}
}

// Empty is the fallback record: every band at mid intensity, centred position.
func Empty() *types.SynaestheticMap {
	return Analyze(&types.SampleBuffer{}, constant(0.5))
}

func textureProfile(data []float64) string {
	roughness := shared.AbsDiffSum(data, roughnessWindow) / roughnessWindow
	idx := int(math.Floor(roughness*float64(len(textures))*10)) % len(textures)

	return textures[idx]
}

type constant float64

func (c constant) Intensities(_ *types.SampleBuffer, bands []Band) []float64 {
	out := make([]float64, len(bands))
	for i := range out {
		out[i] = float64(c)
	}

	return out
}

// Placeholder draws a random intensity in [0.3, 0.8) for each band. It does not look at
// the signal at all; Spectral is the measured alternative.
type Placeholder struct {
	Random types.Random
}

func (p Placeholder) Intensities(_ *types.SampleBuffer, bands []Band) []float64 {
	out := make([]float64, len(bands))
	for i := range out {
		out[i] = p.Random.Float64()*0.5 + 0.3
	}

	return out
}
