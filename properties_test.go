package sonoscope

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/farcloser/sonoscope/internal/testsignal"
	"github.com/farcloser/sonoscope/internal/types"
)

func propertySignals() map[string]*types.SampleBuffer {
	return map[string]*types.SampleBuffer{
		"noise":   testsignal.Mono(testsignal.Noise(0.8, testsignal.SampleRate, 5)),
		"steps":   testsignal.Mono(testsignal.Steps(4410, 0, 0.9, 0.1, 1, 0, 0.6, 0.05, 0.95, 0, 0.4)),
		"clicks":  testsignal.Mono(testsignal.Clicks(1, testsignal.SampleRate, 22050, 1000, 0)),
		"silence": testsignal.Mono(make([]float64, testsignal.SampleRate)),
		"stereo": types.NewSampleBuffer([][]float64{
			testsignal.Sine(0.7, 440, testsignal.SampleRate),
			testsignal.Square(1, testsignal.SampleRate),
		}, testsignal.SampleRate),
	}
}

func TestAnalyze_SameSeedSameResult(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 7

	for name, buf := range propertySignals() {
		t.Run(name, func(t *testing.T) {
			first, err := Analyze(context.Background(), buf, opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			second, err := Analyze(context.Background(), buf, opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			firstSuggestions := Suggest(first)
			secondSuggestions := Suggest(second)

			if !reflect.DeepEqual(firstSuggestions, secondSuggestions) {
				t.Errorf("suggestions differ:\n%+v\n%+v", firstSuggestions, secondSuggestions)
			}

			first.ID, second.ID = "", ""

			if !reflect.DeepEqual(first, second) {
				t.Errorf("results differ:\n%+v\n%+v", first, second)
			}
		})
	}
}

func TestAnalyze_FieldsFiniteAndInRange(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 99

	for name, buf := range propertySignals() {
		for _, bands := range []BandEstimator{BandsPlaceholder, BandsSpectral} {
			opts.Bands = bands

			t.Run(name+"/"+bands.String(), func(t *testing.T) {
				result, err := Analyze(context.Background(), buf, opts)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				if len(result.Failures) != 0 {
					t.Errorf("Failures: got %v, want none", result.Failures)
				}

				checkResult(t, result)
				checkSuggestions(t, Suggest(result))
			})
		}
	}
}

func inRange(t *testing.T, field string, v, lo, hi float64) {
	t.Helper()

	if math.IsNaN(v) || math.IsInf(v, 0) || v < lo || v > hi {
		t.Errorf("%s: got %g, want finite in [%g, %g]", field, v, lo, hi)
	}
}

func finite(t *testing.T, field string, values ...float64) {
	t.Helper()

	if !testsignal.Finite(values...) {
		t.Errorf("%s: non-finite value in %v", field, values)
	}
}

func checkResult(t *testing.T, r *Result) {
	t.Helper()

	h := r.Harmonic
	inRange(t, "FundamentalFreq", h.FundamentalFreq, math.SmallestNonzeroFloat64, math.MaxFloat64)
	finite(t, "Harmonics", h.Harmonics...)
	finite(t, "HarmonicRatios", h.HarmonicRatios...)
	finite(t, "ConsonanceScore", h.ConsonanceScore)

	for _, v := range h.DissonanceMap {
		inRange(t, "DissonanceMap", v, 0, 2)
	}

	b := r.BeatGrid
	if len(b.MicroTimings) > 32 {
		t.Errorf("MicroTimings: got %d, want at most 32", len(b.MicroTimings))
	}

	finite(t, "MicroTimings", b.MicroTimings...)

	for _, v := range b.GroovePattern {
		inRange(t, "GroovePattern", v, 0, 1)
	}

	inRange(t, "SwingFactor", b.SwingFactor, 0, 100)
	inRange(t, "SyncopationIndex", b.SyncopationIndex, 0, 100)
	inRange(t, "QuantumEntanglement", b.QuantumEntanglement, 0, 100)

	e := r.Emotion
	inRange(t, "Valence", e.Valence, -1, 1)
	inRange(t, "Arousal", e.Arousal, -1, 1)
	inRange(t, "Dominance", e.Dominance, -1, 1)
	inRange(t, "Tension", e.Tension, 0, math.MaxFloat64)
	inRange(t, "Release", e.Release, 0, math.MaxFloat64)

	for _, p := range e.EmotionalArc {
		inRange(t, "EmotionalArc.Intensity", p.Intensity, 0, 1)
		finite(t, "EmotionalArc.Time", p.Time)
	}

	s := r.Synaesthesia
	for _, c := range s.FrequencyColors {
		inRange(t, "FrequencyColors.Intensity", c.Intensity, 0, 1)
	}

	inRange(t, "SpatialPosition.X", s.SpatialPosition.X, -1, 1)
	inRange(t, "SpatialPosition.Y", s.SpatialPosition.Y, -1, 1)
	inRange(t, "SpatialPosition.Z", s.SpatialPosition.Z, -1, 1)

	f := r.Fractal
	inRange(t, "FractalDimension", f.FractalDimension, 0, 2)
	inRange(t, "SelfSimilarityScore", f.SelfSimilarityScore, 0, 100)

	for _, p := range f.RecursivePatterns {
		inRange(t, "RecursivePatterns.Similarity", p.Similarity, 60, 100)
		finite(t, "RecursivePatterns", p.StartTime, p.Duration)
	}

	finite(t, "InfiniteZoomPoints", f.InfiniteZoomPoints...)

	c := r.Crowd
	for _, v := range c.EnergyCurve {
		inRange(t, "EnergyCurve", v, 0, 100)
	}

	finite(t, "PeakMoments", c.PeakMoments...)
	finite(t, "DropImpact", c.DropImpact...)

	for _, z := range c.BuildupZones {
		inRange(t, "BuildupZones.Intensity", z.Intensity, 0, 100)
	}

	inRange(t, "CrowdResponseDelay", c.CrowdResponseDelay, 0.2, 0.5)
	inRange(t, "MoshPitProbability", c.MoshPitProbability, 0, 100)

	x := r.Texture
	inRange(t, "Roughness", x.Roughness, 0, 100)
	inRange(t, "Brightness", x.Brightness, 0, 100)
	inRange(t, "Warmth", x.Warmth, 0, 100)
	inRange(t, "Density", x.Density, 0, 100)
	inRange(t, "Movement", x.Movement, 0, 100)
	inRange(t, "LayerDepth", x.LayerDepth, 0, 100)

	p := r.Probability
	for _, v := range p.WaveFunction {
		inRange(t, "WaveFunction", v, 0, 1)
	}

	var total float64
	for _, st := range p.SuperpositionStates {
		total += st.Probability
	}

	inRange(t, "SuperpositionStates total", total, 1-1e-9, 1+1e-9)
	finite(t, "CollapsePoints", p.CollapsePoints...)

	rf := r.Rift
	for _, pt := range rf.RiftPoints {
		inRange(t, "RiftPoints.Intensity", pt.Intensity, 0, 100)
	}

	if len(rf.RiftPoints) > 10 || rf.ParallelTimelines > 7 {
		t.Errorf("Rift: %d points and %d timelines, want at most 10 and 7", len(rf.RiftPoints), rf.ParallelTimelines)
	}

	inRange(t, "DimensionalBleed", rf.DimensionalBleed, 0, 100)
	inRange(t, "RealityStability", rf.RealityStability, 0, 100)

	k := r.Consciousness
	inRange(t, "IsochronicPulse", k.IsochronicPulse, 0, math.MaxFloat64)
	inRange(t, "EntrainmentStrength", k.EntrainmentStrength, 0, 100)
	inRange(t, "FlowStateScore", k.FlowStateScore, 0, 100)
	finite(t, "BinauralOffset", k.BinauralOffset)

	if k.MeditationDepth != 40 && k.MeditationDepth != 80 {
		t.Errorf("MeditationDepth: got %g, want 40 or 80", k.MeditationDepth)
	}
}

func checkSuggestions(t *testing.T, suggestions []types.RemixSuggestion) {
	t.Helper()

	if len(suggestions) > 5 {
		t.Errorf("got %d suggestions, want at most 5", len(suggestions))
	}

	for _, s := range suggestions {
		inRange(t, s.ID+" confidence", s.Confidence, 0, 1)

		for key, v := range s.Parameters {
			finite(t, s.ID+"."+key, v)
		}
	}
}
