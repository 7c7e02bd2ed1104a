package consciousness

import (
	"math"
	"testing"

	"github.com/farcloser/sonoscope/internal/testsignal"
	"github.com/farcloser/sonoscope/internal/types"
)

const tolerance = 1e-9

func TestBand(t *testing.T) {
	tests := []struct {
		freq float64
		want types.Brainwave
	}{
		{0, types.BrainwaveDelta},
		{3.99, types.BrainwaveDelta},
		{4, types.BrainwaveTheta},
		{7.99, types.BrainwaveTheta},
		{8, types.BrainwaveAlpha},
		{12.99, types.BrainwaveAlpha},
		{13, types.BrainwaveBeta},
		{29.99, types.BrainwaveBeta},
		{30, types.BrainwaveGamma},
		{1000, types.BrainwaveGamma},
	}

	for _, tt := range tests {
		if got := Band(tt.freq); got != tt.want {
			t.Errorf("Band(%g): got %s, want %s", tt.freq, got, tt.want)
		}
	}
}

func TestAnalyze_ConstantSignalLocksShortestPeriod(t *testing.T) {
	// Every period correlates equally; the first (0.1s, 10 Hz) wins.
	c := Analyze(testsignal.Mono(testsignal.DC(1, 100000)))

	if c.BrainwaveTarget != types.BrainwaveAlpha {
		t.Errorf("BrainwaveTarget: got %s, want alpha", c.BrainwaveTarget)
	}

	if math.Abs(c.IsochronicPulse-10) > tolerance {
		t.Errorf("IsochronicPulse: got %g, want 10", c.IsochronicPulse)
	}

	if c.BinauralOffset != 7.83 {
		t.Errorf("BinauralOffset: got %g, want 7.83", c.BinauralOffset)
	}

	if c.EntrainmentStrength != 100 {
		t.Errorf("EntrainmentStrength: got %g, want 100", c.EntrainmentStrength)
	}

	if c.MeditationDepth != 80 {
		t.Errorf("MeditationDepth: got %g, want 80", c.MeditationDepth)
	}

	if math.Abs(c.FlowStateScore-99.99) > tolerance {
		t.Errorf("FlowStateScore: got %g, want 99.99", c.FlowStateScore)
	}
}

func TestAnalyze_OneSecondPulse(t *testing.T) {
	// 1000-sample bursts every 0.5s. The 44110-sample period overlaps the burst at 1s
	// for 990 samples, more than any other candidate.
	c := Analyze(testsignal.Mono(testsignal.Clicks(1, 100000, 22050, 1000, 0)))

	want := float64(testsignal.SampleRate) / 44110
	if math.Abs(c.IsochronicPulse-want) > tolerance {
		t.Errorf("IsochronicPulse: got %g, want %g", c.IsochronicPulse, want)
	}

	if c.BrainwaveTarget != types.BrainwaveDelta || c.BinauralOffset != 1.5 {
		t.Errorf("got %s/%g, want delta/1.5", c.BrainwaveTarget, c.BinauralOffset)
	}

	if c.MeditationDepth != 40 {
		t.Errorf("MeditationDepth: got %g, want 40", c.MeditationDepth)
	}
}

func TestAnalyze_Silence(t *testing.T) {
	c := Analyze(testsignal.Mono(make([]float64, 50000)))

	if c.BrainwaveTarget != types.BrainwaveDelta || c.IsochronicPulse != 0 || c.EntrainmentStrength != 0 {
		t.Errorf("unexpected record %+v", c)
	}

	if math.Abs(c.FlowStateScore-99.99) > tolerance {
		t.Errorf("FlowStateScore: got %g, want 99.99", c.FlowStateScore)
	}
}

func TestAnalyze_FlowIsClamped(t *testing.T) {
	c := Analyze(testsignal.Mono(testsignal.Square(1, 20000)))

	if c.FlowStateScore != 0 {
		t.Errorf("FlowStateScore: got %g, want 0", c.FlowStateScore)
	}
}

func TestEmpty(t *testing.T) {
	c := Empty()

	if c.BrainwaveTarget != types.BrainwaveDelta || c.FlowStateScore != 0 || c.MeditationDepth != 40 {
		t.Errorf("unexpected fallback record %+v", c)
	}
}
