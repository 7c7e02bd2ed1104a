// Package suggest turns analysis records into remix suggestions through an ordered rule table.
package suggest

import (
	"maps"

	"github.com/farcloser/sonoscope/internal/types"
)

// MaxSuggestions caps the returned list. Rules are evaluated in table order, so the
// earlier rules win when more fire.
const MaxSuggestions = 5

// Records holds the analysis records the rules read. A nil record means the analyzer
// did not run; rules reading it never fire.
type Records struct {
	Harmonic      *types.HarmonicSignature
	Emotion       *types.EmotionalDNA
	Fractal       *types.TemporalFractal
	Crowd         *types.CrowdEnergySimulation
	Texture       *types.SonicTexture
	Rift          *types.DimensionalRift
	Consciousness *types.ConsciousnessSync
}

type rule struct {
	fires      func(r Records) bool
	suggestion types.RemixSuggestion
}

//nolint:gochecknoglobals // rule table
var rules = []rule{
	{
		fires: func(r Records) bool { return r.Emotion != nil && r.Emotion.Valence < 0 },
		suggestion: types.RemixSuggestion{
			ID:          "brighten",
			Name:        "Emotional Brightening",
			Description: "Increase high frequencies and add subtle pitch shift to lift the mood",
			Confidence:  0.85,
			Impact:      types.ImpactModerate,
			Parameters:  map[string]float64{"pitch": 20, "spectral": 40},
			Reasoning:   "Low valence detected, brightening will create a more positive emotional response",
		},
	},
	{
		fires: func(r Records) bool { return r.Crowd != nil && r.Crowd.MoshPitProbability < 50 },
		suggestion: types.RemixSuggestion{
			ID:          "energize",
			Name:        "Crowd Igniter",
			Description: "Add rhythmic intensity and compress dynamics for maximum energy",
			Confidence:  0.9,
			Impact:      types.ImpactDramatic,
			Parameters:  map[string]float64{"dynamics": 70, "rhythm": 50},
			Reasoning:   "Energy simulation suggests the crowd needs more intensity to reach peak response",
		},
	},
	{
		fires: func(r Records) bool { return r.Fractal != nil && r.Fractal.SelfSimilarityScore > 70 },
		suggestion: types.RemixSuggestion{
			ID:          "fractal-break",
			Name:        "Pattern Disruption",
			Description: "Break repetitive patterns at key moments for unexpected drops",
			Confidence:  0.75,
			Impact:      types.ImpactRealityBending,
			Parameters:  map[string]float64{"time": 60, "rhythm": 80},
			Reasoning:   "High self-similarity detected, strategic pattern breaks will create memorable moments",
		},
	},
	{
		fires: func(r Records) bool {
			return r.Consciousness != nil && r.Consciousness.BrainwaveTarget == types.BrainwaveBeta
		},
		suggestion: types.RemixSuggestion{
			ID:          "trance-inducer",
			Name:        "Hypnotic State",
			Description: "Slow down rhythmic elements to induce alpha/theta states",
			Confidence:  0.8,
			Impact:      types.ImpactSubtle,
			Parameters:  map[string]float64{"rhythm": 30, "phase": 40},
			Reasoning:   "Current rhythm promotes alertness, adjusting for deeper engagement",
		},
	},
	{
		fires: func(r Records) bool { return r.Harmonic != nil && r.Harmonic.ConsonanceScore < 60 },
		suggestion: types.RemixSuggestion{
			ID:          "harmonic-heal",
			Name:        "Harmonic Resolution",
			Description: "Smooth dissonant frequencies for more pleasing harmonic relationships",
			Confidence:  0.85,
			Impact:      types.ImpactModerate,
			Parameters:  map[string]float64{"spectral": 50, "pitch": 25},
			Reasoning:   "Detected dissonance that may cause listener fatigue, resolving for better flow",
		},
	},
	{
		fires: func(r Records) bool { return r.Rift != nil && r.Rift.RealityStability < 50 },
		suggestion: types.RemixSuggestion{
			ID:          "stabilize",
			Name:        "Reality Anchor",
			Description: "Reduce chaotic elements to create a stable foundation",
			Confidence:  0.7,
			Impact:      types.ImpactDramatic,
			Parameters:  map[string]float64{"phase": 20, "time": 10, "rhythm": 20},
			Reasoning:   "Multiple energy discontinuities detected, stabilizing for a coherent listening experience",
		},
	},
	{
		fires: func(r Records) bool { return r.Texture != nil && r.Texture.Roughness > 70 },
		suggestion: types.RemixSuggestion{
			ID:          "polish",
			Name:        "Sonic Polish",
			Description: "Smooth harsh frequencies while maintaining energy",
			Confidence:  0.8,
			Impact:      types.ImpactSubtle,
			Parameters:  map[string]float64{"spectral": 30, "dynamics": 40},
			Reasoning:   "Rough texture detected, polishing will improve long-term listenability",
		},
	},
}

// Generate evaluates every rule and returns at most MaxSuggestions, in rule order.
// Each suggestion is a fresh copy: callers may modify it freely.
func Generate(records Records) []types.RemixSuggestion {
	out := []types.RemixSuggestion{}

	for _, r := range rules {
		if !r.fires(records) {
			continue
		}

		s := r.suggestion
		s.Parameters = maps.Clone(r.suggestion.Parameters)
		out = append(out, s)
	}

	return out[:min(len(out), MaxSuggestions)]
}

// IDs lists every suggestion identifier the rule table can produce, in rule order.
func IDs() []string {
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.suggestion.ID
	}

	return ids
}
