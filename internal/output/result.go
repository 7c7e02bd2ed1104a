// Package output provides shared result serialization for sonoscope JSON output.
package output

import (
	"github.com/farcloser/sonoscope"
	"github.com/farcloser/sonoscope/internal/types"
)

// ResultToMap converts an analysis result and its suggestions into the canonical map
// structure used for JSON and JSONL serialization.
func ResultToMap(result *sonoscope.Result, suggestions []types.RemixSuggestion) map[string]any {
	meta := map[string]any{
		"id":          result.ID,
		"seed":        result.Seed,
		"analyzers":   result.Analyzers,
		"suggestions": SuggestionsToList(suggestions),
	}

	if len(result.Failures) > 0 {
		meta["failures"] = result.Failures
	}

	if r := result.Signal; r != nil {
		meta["signal_check"] = SignalToMap(r)
	}

	if r := result.Harmonic; r != nil {
		meta["harmonic_signature"] = map[string]any{
			"fundamental_freq": r.FundamentalFreq,
			"harmonics":        r.Harmonics,
			"harmonic_ratios":  r.HarmonicRatios,
			"consonance_score": r.ConsonanceScore,
			"dissonance_map":   r.DissonanceMap,
		}
	}

	if r := result.BeatGrid; r != nil {
		meta["quantum_beat_grid"] = map[string]any{
			"micro_timings":        r.MicroTimings,
			"groove_pattern":       r.GroovePattern,
			"swing_factor":         r.SwingFactor,
			"syncopation_index":    r.SyncopationIndex,
			"polyrhythm_layers":    r.PolyrhythmLayers,
			"quantum_entanglement": r.QuantumEntanglement,
		}
	}

	if r := result.Emotion; r != nil {
		meta["emotional_dna"] = EmotionToMap(r)
	}

	if r := result.Synaesthesia; r != nil {
		meta["synaesthetic_map"] = SynaesthesiaToMap(r)
	}

	if r := result.Fractal; r != nil {
		patterns := make([]any, 0, len(r.RecursivePatterns))
		for _, p := range r.RecursivePatterns {
			patterns = append(patterns, map[string]any{
				"start_time":       p.StartTime,
				"duration":         p.Duration,
				"repetition_scale": p.RepetitionScale,
				"similarity":       p.Similarity,
			})
		}

		meta["temporal_fractal"] = map[string]any{
			"fractal_dimension":     r.FractalDimension,
			"self_similarity_score": r.SelfSimilarityScore,
			"recursive_patterns":    patterns,
			"infinite_zoom_points":  r.InfiniteZoomPoints,
		}
	}

	if r := result.Crowd; r != nil {
		zones := make([]any, 0, len(r.BuildupZones))
		for _, z := range r.BuildupZones {
			zones = append(zones, map[string]any{"start": z.Start, "end": z.End, "intensity": z.Intensity})
		}

		meta["crowd_energy"] = map[string]any{
			"energy_curve":         r.EnergyCurve,
			"peak_moments":         r.PeakMoments,
			"buildup_zones":        zones,
			"drop_impact":          r.DropImpact,
			"crowd_response_delay": r.CrowdResponseDelay,
			"mosh_pit_probability": r.MoshPitProbability,
		}
	}

	if r := result.Texture; r != nil {
		meta["sonic_texture"] = map[string]any{
			"roughness":    r.Roughness,
			"brightness":   r.Brightness,
			"warmth":       r.Warmth,
			"density":      r.Density,
			"movement":     r.Movement,
			"texture_type": string(r.TextureType),
			"layer_depth":  r.LayerDepth,
		}
	}

	if r := result.Probability; r != nil {
		meta["probability_wave"] = ProbabilityToMap(r)
	}

	if r := result.Rift; r != nil {
		points := make([]any, 0, len(r.RiftPoints))
		for _, p := range r.RiftPoints {
			points = append(points, map[string]any{
				"time":              p.Time,
				"intensity":         p.Intensity,
				"rift_type":         p.RiftType,
				"alternate_reality": p.AlternateReality,
			})
		}

		meta["dimensional_rift"] = map[string]any{
			"rift_points":        points,
			"parallel_timelines": r.ParallelTimelines,
			"dimensional_bleed":  r.DimensionalBleed,
			"reality_stability":  r.RealityStability,
		}
	}

	if r := result.Consciousness; r != nil {
		meta["consciousness_sync"] = map[string]any{
			"brainwave_target":     string(r.BrainwaveTarget),
			"binaural_offset":      r.BinauralOffset,
			"isochronic_pulse":     r.IsochronicPulse,
			"entrainment_strength": r.EntrainmentStrength,
			"flow_state_score":     r.FlowStateScore,
			"meditation_depth":     r.MeditationDepth,
		}
	}

	return meta
}

// SignalToMap converts the preflight record to a map.
func SignalToMap(r *types.SignalCheck) map[string]any {
	channels := make([]any, 0, len(r.Channels))
	for _, c := range r.Channels {
		channels = append(channels, map[string]any{
			"dc_offset":       c.DCOffset,
			"clip_events":     c.ClipEvents,
			"clipped_samples": c.ClippedSamples,
			"longest_clip":    c.LongestClip,
		})
	}

	return map[string]any{
		"frames":               r.Frames,
		"channels":             channels,
		"clip_events":          r.ClipEvents,
		"clipped_samples":      r.ClippedSamples,
		"longest_clip":         r.LongestClip,
		"dc_offset":            r.DCOffset,
		"dc_offset_db":         r.DCOffsetDb,
		"silence_sec":          r.SilenceSec,
		"leading_silence_sec":  r.LeadingSilenceSec,
		"trailing_silence_sec": r.TrailingSilenceSec,
		"warnings":             r.Warnings,
	}
}

// EmotionToMap converts the emotional record to a map.
func EmotionToMap(r *types.EmotionalDNA) map[string]any {
	arc := make([]any, 0, len(r.EmotionalArc))
	for _, p := range r.EmotionalArc {
		arc = append(arc, map[string]any{
			"time":      p.Time,
			"emotion":   string(p.Emotion),
			"intensity": p.Intensity,
		})
	}

	return map[string]any{
		"valence":         r.Valence,
		"arousal":         r.Arousal,
		"dominance":       r.Dominance,
		"tension":         r.Tension,
		"release":         r.Release,
		"emotional_arc":   arc,
		"color_signature": r.ColorSignature,
	}
}

// SynaesthesiaToMap converts the synaesthetic record to a map.
func SynaesthesiaToMap(r *types.SynaestheticMap) map[string]any {
	colors := make([]any, 0, len(r.FrequencyColors))
	for _, c := range r.FrequencyColors {
		colors = append(colors, map[string]any{
			"band":      c.Band,
			"freq":      c.Freq,
			"color":     c.Color,
			"intensity": c.Intensity,
		})
	}

	return map[string]any{
		"frequency_colors": colors,
		"texture_profile":  r.TextureProfile,
		"spatial_position": map[string]any{
			"x": r.SpatialPosition.X,
			"y": r.SpatialPosition.Y,
			"z": r.SpatialPosition.Z,
		},
		"synesthesia_type": r.SynesthesiaType,
	}
}

// ProbabilityToMap converts the probability wave to a map.
func ProbabilityToMap(r *types.ProbabilityWave) map[string]any {
	states := make([]any, 0, len(r.SuperpositionStates))
	for _, s := range r.SuperpositionStates {
		states = append(states, map[string]any{
			"id":            s.ID,
			"probability":   s.Probability,
			"audio_variant": s.AudioVariant,
		})
	}

	zones := make([]any, 0, len(r.UncertaintyZones))
	for _, z := range r.UncertaintyZones {
		zones = append(zones, map[string]any{"start": z.Start, "end": z.End, "entropy": z.Entropy})
	}

	return map[string]any{
		"wave_function":        r.WaveFunction,
		"superposition_states": states,
		"collapse_points":      r.CollapsePoints,
		"uncertainty_zones":    zones,
	}
}

// SuggestionsToList converts suggestions to a list of maps, keeping their order.
func SuggestionsToList(suggestions []types.RemixSuggestion) []any {
	out := make([]any, 0, len(suggestions))

	for _, s := range suggestions {
		params := make(map[string]any, len(s.Parameters))
		for k, v := range s.Parameters {
			params[k] = v
		}

		out = append(out, map[string]any{
			"id":          s.ID,
			"name":        s.Name,
			"description": s.Description,
			"confidence":  s.Confidence,
			"impact":      string(s.Impact),
			"parameters":  params,
			"reasoning":   s.Reasoning,
		})
	}

	return out
}
