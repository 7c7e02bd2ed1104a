//nolint:wrapcheck
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/sonoscope"
	"github.com/farcloser/sonoscope/internal/output"
	"github.com/farcloser/sonoscope/internal/types"
)

func outputResult(filePath string, result *sonoscope.Result, formatName string, debug bool) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	suggestions := sonoscope.Suggest(result)

	var meta map[string]any
	if debug {
		meta = output.ResultToMap(result, suggestions)
	} else {
		meta = buildFriendlyOutput(result, suggestions)
	}

	data := &format.Data{
		Object: filePath,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

// buildFriendlyOutput summarizes each record in a line and lists the suggestions.
func buildFriendlyOutput(result *sonoscope.Result, suggestions []types.RemixSuggestion) map[string]any {
	meta := map[string]any{
		"seed": fmt.Sprintf("%d (pass --seed to reproduce)", result.Seed),
	}

	if len(result.Failures) > 0 {
		meta["failures"] = result.Failures
	}

	if sig := result.Signal; sig != nil {
		meta["signal"] = describeSignal(sig)
	}

	props := buildProperties(result)
	if len(props) > 0 {
		meta["properties"] = props
	}

	lines := []any{}
	for _, s := range suggestions {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s (%.0f%% confidence)",
			s.Impact, s.Name, s.Description, s.Confidence*100))
	}

	meta["suggestions"] = lines

	return meta
}

func describeSignal(sig *types.SignalCheck) string {
	if len(sig.Warnings) == 0 {
		return fmt.Sprintf("ok (%d frames, %d channels)", sig.Frames, len(sig.Channels))
	}

	return fmt.Sprintf("%s (%d frames, %d clip events, DC %.1f dB, %.1fs silent)",
		strings.Join(sig.Warnings, ", "), sig.Frames, sig.ClipEvents, sig.DCOffsetDb, sig.SilenceSec)
}

func buildProperties(result *sonoscope.Result) map[string]any {
	props := make(map[string]any)

	if r := result.Harmonic; r != nil {
		props["fundamental"] = fmt.Sprintf("%.1f Hz (consonance: %.1f)", r.FundamentalFreq, r.ConsonanceScore)
	}

	if r := result.BeatGrid; r != nil {
		props["groove"] = fmt.Sprintf("swing %.0f, syncopation %.0f, %d onsets",
			r.SwingFactor, r.SyncopationIndex, len(r.MicroTimings))
	}

	if r := result.Emotion; r != nil {
		props["emotion"] = fmt.Sprintf("valence %.2f, arousal %.2f, dominance %.2f (%s)",
			r.Valence, r.Arousal, r.Dominance, r.ColorSignature)
	}

	if r := result.Synaesthesia; r != nil {
		props["synaesthesia"] = fmt.Sprintf("%s texture, position (%.2f, %.2f, %.2f)",
			r.TextureProfile, r.SpatialPosition.X, r.SpatialPosition.Y, r.SpatialPosition.Z)
	}

	if r := result.Fractal; r != nil {
		props["fractal"] = fmt.Sprintf("dimension %.2f, self-similarity %.0f%%",
			r.FractalDimension, r.SelfSimilarityScore)
	}

	if r := result.Crowd; r != nil {
		props["crowd"] = fmt.Sprintf("%d peaks, %d drops, mosh pit %.0f%%",
			len(r.PeakMoments), len(r.DropImpact), r.MoshPitProbability)
	}

	if r := result.Texture; r != nil {
		props["texture"] = fmt.Sprintf("%s (roughness %.0f, layer depth %.0f)",
			r.TextureType, r.Roughness, r.LayerDepth)
	}

	if r := result.Probability; r != nil {
		props["probability"] = fmt.Sprintf("%d states, %d collapse points",
			len(r.SuperpositionStates), len(r.CollapsePoints))
	}

	if r := result.Rift; r != nil {
		props["rift"] = fmt.Sprintf("%d rifts, stability %.0f%%", len(r.RiftPoints), r.RealityStability)
	}

	if r := result.Consciousness; r != nil {
		props["consciousness"] = fmt.Sprintf("%s at %.2f Hz (flow %.0f, meditation %.0f)",
			r.BrainwaveTarget, r.IsochronicPulse, r.FlowStateScore, r.MeditationDepth)
	}

	return props
}
