package emotion

import (
	"math"
	"testing"

	"github.com/farcloser/sonoscope/internal/testsignal"
	"github.com/farcloser/sonoscope/internal/types"
)

const tolerance = 1e-9

func TestClassify(t *testing.T) {
	tests := []struct {
		energy, brightness float64
		want               types.Emotion
		intensity          float64
	}{
		{0.6, 0.6, types.EmotionEuphoric, 0.9},
		{0.6, 0.2, types.EmotionTense, 0.8},
		{0.2, 0.6, types.EmotionPeaceful, 0.6},
		{0.2, 0.2, types.EmotionMelancholic, 0.7},
		{0.8, 0.4, types.EmotionEnergetic, 0.85},
		{0.4, 0.4, types.EmotionNeutral, 0.4},
		// Euphoric wins over energetic.
		{0.9, 0.9, types.EmotionEuphoric, 0.9},
	}

	for _, tt := range tests {
		emotion, intensity := classify(tt.energy, tt.brightness)
		if emotion != tt.want || intensity != tt.intensity {
			t.Errorf("classify(%g, %g): got %s/%g, want %s/%g",
				tt.energy, tt.brightness, emotion, intensity, tt.want, tt.intensity)
		}
	}
}

func TestAnalyze_Silence(t *testing.T) {
	dna := Analyze(testsignal.Mono(make([]float64, 10000)))

	if len(dna.EmotionalArc) != 100 {
		t.Fatalf("EmotionalArc: got %d points, want 100", len(dna.EmotionalArc))
	}

	for i, p := range dna.EmotionalArc {
		if p.Emotion != types.EmotionMelancholic || p.Intensity != 1 {
			t.Errorf("EmotionalArc[%d]: got %s/%g, want melancholic/1", i, p.Emotion, p.Intensity)
		}
	}

	if dna.Valence != -1 {
		t.Errorf("Valence: got %g, want -1", dna.Valence)
	}

	if math.Abs(dna.Arousal-(-0.5)) > tolerance {
		t.Errorf("Arousal: got %g, want -0.5", dna.Arousal)
	}

	if dna.Dominance != 1 {
		t.Errorf("Dominance: got %g, want 1", dna.Dominance)
	}

	if dna.Tension != 0 || dna.Release != 0 {
		t.Errorf("Tension/Release: got %g/%g, want 0/0", dna.Tension, dna.Release)
	}

	if dna.ColorSignature != "#0044ff" {
		t.Errorf("ColorSignature: got %s, want #0044ff", dna.ColorSignature)
	}
}

func TestAnalyze_LoudDC(t *testing.T) {
	// Full-scale DC: energy 1 and a centroid just under the middle of each slice.
	dna := Analyze(testsignal.Mono(testsignal.DC(1, 10000)))

	for i, p := range dna.EmotionalArc {
		if p.Emotion != types.EmotionEnergetic {
			t.Fatalf("EmotionalArc[%d]: got %s, want energetic", i, p.Emotion)
		}
	}

	if dna.Arousal != 1 {
		t.Errorf("Arousal: got %g, want 1 (clamped)", dna.Arousal)
	}

	if math.Abs(dna.Valence-(-0.01)) > tolerance {
		t.Errorf("Valence: got %g, want -0.01", dna.Valence)
	}

	if dna.ColorSignature != "#ff4400" {
		t.Errorf("ColorSignature: got %s, want #ff4400", dna.ColorSignature)
	}
}

func TestAnalyze_TensionAndRelease(t *testing.T) {
	// Quiet, then moderate, then quiet, on 100-sample chunk boundaries:
	// intensity goes 1 (melancholic) -> 0.8 (neutral at 0.4) -> 1.
	data := testsignal.Steps(2500, 0, 0.4, 0.4, 0)
	dna := Analyze(testsignal.Mono(data))

	if math.Abs(dna.Tension-20) > 1e-6 {
		t.Errorf("Tension: got %g, want 20", dna.Tension)
	}

	if math.Abs(dna.Release-20) > 1e-6 {
		t.Errorf("Release: got %g, want 20", dna.Release)
	}
}

func TestAnalyze_ArcTimes(t *testing.T) {
	dna := Analyze(testsignal.Mono(testsignal.Noise(0.5, 2*testsignal.SampleRate, 4)))

	for i, p := range dna.EmotionalArc {
		want := float64(i) / 100 * 2
		if math.Abs(p.Time-want) > tolerance {
			t.Errorf("EmotionalArc[%d].Time: got %g, want %g", i, p.Time, want)
		}

		if p.Intensity < 0 || p.Intensity > 1 {
			t.Errorf("EmotionalArc[%d].Intensity: %g outside [0, 1]", i, p.Intensity)
		}
	}

	for _, v := range []float64{dna.Valence, dna.Arousal, dna.Dominance} {
		if v < -1 || v > 1 {
			t.Errorf("value %g outside [-1, 1]", v)
		}
	}
}

func TestColorSignature_TieGoesToFirst(t *testing.T) {
	arc := []types.EmotionalPoint{
		{Emotion: types.EmotionPeaceful, Intensity: 1},
		{Emotion: types.EmotionTense, Intensity: 1},
	}

	if got := colorSignature(arc); got != "#00ff88" {
		t.Errorf("got %s, want #00ff88", got)
	}
}

func TestColorSignature_Neutral(t *testing.T) {
	arc := []types.EmotionalPoint{{Emotion: types.EmotionNeutral, Intensity: 0.5}}

	if got := colorSignature(arc); got != "#888888" {
		t.Errorf("got %s, want #888888", got)
	}

	if got := colorSignature(nil); got != "#888888" {
		t.Errorf("empty arc: got %s, want #888888", got)
	}
}

func TestEmpty(t *testing.T) {
	dna := Empty(3)

	if len(dna.EmotionalArc) != 100 {
		t.Fatalf("EmotionalArc: got %d points, want 100", len(dna.EmotionalArc))
	}

	if got := dna.EmotionalArc[50].Time; math.Abs(got-1.5) > tolerance {
		t.Errorf("EmotionalArc[50].Time: got %g, want 1.5", got)
	}

	if !testsignal.Finite(dna.Valence, dna.Arousal, dna.Dominance, dna.Tension, dna.Release) {
		t.Errorf("non-finite fallback record %+v", dna)
	}
}
