package sonoscope

import (
	"github.com/farcloser/sonoscope/internal/suggest"
	"github.com/farcloser/sonoscope/internal/types"
)

// Suggest derives at most five remix suggestions from a result. Rules whose analyzer
// did not run never fire; a nil result yields none.
func Suggest(result *Result) []types.RemixSuggestion {
	if result == nil {
		return []types.RemixSuggestion{}
	}

	return suggest.Generate(suggest.Records{
		Harmonic:      result.Harmonic,
		Emotion:       result.Emotion,
		Fractal:       result.Fractal,
		Crowd:         result.Crowd,
		Texture:       result.Texture,
		Rift:          result.Rift,
		Consciousness: result.Consciousness,
	})
}

// SuggestionIDs lists every suggestion the rule table can produce, in priority order.
func SuggestionIDs() []string {
	return suggest.IDs()
}
