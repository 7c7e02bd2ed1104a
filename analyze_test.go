package sonoscope

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/sonoscope/internal/testsignal"
	"github.com/farcloser/sonoscope/internal/types"
)

func TestAnalyze_InvalidInput(t *testing.T) {
	tests := map[string]*types.SampleBuffer{
		"nil":       nil,
		"zero rate": types.NewSampleBuffer([][]float64{{0, 1}}, 0),
		"negative":  {Channels: [][]float64{{0}}, SampleRate: -1},
	}

	for name, buf := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Analyze(context.Background(), buf, DefaultOptions())
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAnalyze_AllRecordsPresent(t *testing.T) {
	buf := testsignal.Mono(testsignal.Noise(0.5, testsignal.SampleRate, 11))

	result, err := Analyze(context.Background(), buf, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ID == "" || result.Seed == 0 {
		t.Errorf("ID %q and Seed %d should both be set", result.ID, result.Seed)
	}

	if !slices.Equal(result.Analyzers, AnalyzersAll.Names()) {
		t.Errorf("Analyzers: got %v, want %v", result.Analyzers, AnalyzersAll.Names())
	}

	if len(result.Failures) != 0 {
		t.Errorf("Failures: got %v, want none", result.Failures)
	}

	if result.Harmonic == nil || result.BeatGrid == nil || result.Emotion == nil ||
		result.Synaesthesia == nil || result.Fractal == nil || result.Crowd == nil ||
		result.Texture == nil || result.Probability == nil || result.Rift == nil ||
		result.Consciousness == nil || result.Signal == nil {
		t.Errorf("missing record in %+v", result)
	}
}

func TestAnalyze_EmptySignal(t *testing.T) {
	result, err := Analyze(context.Background(), testsignal.Mono(nil), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Failures) != 0 {
		t.Errorf("Failures: got %v, want none", result.Failures)
	}

	if result.Harmonic.FundamentalFreq != 440 {
		t.Errorf("FundamentalFreq: got %g, want 440", result.Harmonic.FundamentalFreq)
	}

	if result.Signal == nil || !slices.Equal(result.Signal.Warnings, []string{types.WarningEmpty}) {
		t.Errorf("Signal: got %+v, want the empty warning", result.Signal)
	}
}

func TestAnalyze_SubsetLeavesOthersNil(t *testing.T) {
	opts := DefaultOptions()
	opts.Analyzers = AnalyzerTexture | AnalyzerRift

	result, err := Analyze(context.Background(), testsignal.Mono(testsignal.Square(0.5, 20000)), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Texture == nil || result.Rift == nil {
		t.Fatalf("selected records missing: %+v", result)
	}

	if result.Harmonic != nil || result.Crowd != nil || result.Consciousness != nil {
		t.Errorf("unselected records present: %+v", result)
	}

	if !slices.Equal(result.Analyzers, []string{"texture", "rift"}) {
		t.Errorf("Analyzers: got %v, want [texture rift]", result.Analyzers)
	}
}

func TestAnalyze_SeedReproducesStochasticFields(t *testing.T) {
	buf := testsignal.Mono(testsignal.Steps(2000, 0, 0.9, 0, 0.9, 0.1, 0.7, 0, 0.5, 0, 1))

	opts := DefaultOptions()
	opts.Seed = 42
	opts.Workers = 3

	first, err := Analyze(context.Background(), buf, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := Analyze(context.Background(), buf, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Seed != 42 || second.Seed != 42 {
		t.Errorf("Seed: got %d and %d, want 42", first.Seed, second.Seed)
	}

	if first.ID == second.ID {
		t.Errorf("ID should differ between runs, both are %s", first.ID)
	}

	if !reflect.DeepEqual(first.Synaesthesia, second.Synaesthesia) {
		t.Errorf("Synaesthesia differs:\n%+v\n%+v", first.Synaesthesia, second.Synaesthesia)
	}

	if first.Crowd.CrowdResponseDelay != second.Crowd.CrowdResponseDelay {
		t.Errorf("CrowdResponseDelay: %g vs %g", first.Crowd.CrowdResponseDelay, second.Crowd.CrowdResponseDelay)
	}

	if !reflect.DeepEqual(first.Rift, second.Rift) {
		t.Errorf("Rift differs:\n%+v\n%+v", first.Rift, second.Rift)
	}

	// The seeded stream for one analyzer does not depend on which others run.
	opts.Analyzers = AnalyzerCrowd

	alone, err := Analyze(context.Background(), buf, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if alone.Crowd.CrowdResponseDelay != first.Crowd.CrowdResponseDelay {
		t.Errorf("CrowdResponseDelay alone: %g, with others: %g",
			alone.Crowd.CrowdResponseDelay, first.Crowd.CrowdResponseDelay)
	}
}

func TestAnalyze_PanicUsesFallback(t *testing.T) {
	saved := registry
	registry = slices.Clone(registry)

	t.Cleanup(func() { registry = saved })

	for i := range registry {
		if registry[i].analyzer == AnalyzerTexture {
			registry[i].analyze = func(*types.SampleBuffer, types.Random, Options, *Result) {
				panic("texture exploded")
			}
		}
	}

	result, err := Analyze(context.Background(), testsignal.Mono(testsignal.Square(1, 60000)), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(result.Failures, []string{"texture"}) {
		t.Errorf("Failures: got %v, want [texture]", result.Failures)
	}

	if result.Texture == nil || result.Texture.TextureType != types.TextureSmooth || result.Texture.Roughness != 0 {
		t.Errorf("Texture: got %+v, want the smooth fallback", result.Texture)
	}

	if result.Harmonic == nil || result.Rift == nil {
		t.Errorf("other analyzers should still report: %+v", result)
	}
}

func TestRun_ReportsFailure(t *testing.T) {
	e := entry{
		analyzer: AnalyzerRift,
		analyze: func(*types.SampleBuffer, types.Random, Options, *Result) {
			panic("out of range")
		},
		fallback: func(_ *types.SampleBuffer, res *Result) { res.Rift = &types.DimensionalRift{RealityStability: 100} },
	}

	result := &Result{}
	if run(e, testsignal.Mono(nil), Options{Seed: 1}, result) {
		t.Error("run reported success for a panicking analyzer")
	}

	if result.Rift == nil || result.Rift.RealityStability != 100 {
		t.Errorf("Rift: got %+v, want the fallback record", result.Rift)
	}
}

func TestAnalyze_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Analyze(ctx, testsignal.Mono(make([]float64, 1000)), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestAnalyze_DeadlinePassed(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := Analyze(ctx, testsignal.Mono(make([]float64, 1000)), DefaultOptions())
	if !errors.Is(err, fault.ErrTimeout) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v, want a timeout wrapping context.DeadlineExceeded", err)
	}
}

func TestSuggest_Silence(t *testing.T) {
	result, err := Analyze(context.Background(), testsignal.Mono(make([]float64, testsignal.SampleRate)), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, 0)
	for _, s := range Suggest(result) {
		got = append(got, s.ID)
	}

	// Negative valence, no crowd energy, perfectly self-similar, constant consonance.
	want := []string{"brighten", "energize", "fractal-break", "harmonic-heal"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if len(Suggest(nil)) != 0 {
		t.Error("Suggest(nil) should return no suggestions")
	}
}

func TestParseAnalyzers(t *testing.T) {
	tests := []struct {
		in      string
		want    Analyzer
		wantErr bool
	}{
		{"", AnalyzersAll, false},
		{"all", AnalyzersAll, false},
		{"suggest", AnalyzersSuggest, false},
		{"harmonic", AnalyzerHarmonic, false},
		{" Crowd , texture", AnalyzerCrowd | AnalyzerTexture, false},
		{"beatgrid,beatgrid", AnalyzerBeatGrid, false},
		{"vibes", 0, true},
		{"harmonic,vibes", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseAnalyzers(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAnalyzers(%q): error %v, wantErr %v", tt.in, err, tt.wantErr)

			continue
		}

		if got != tt.want {
			t.Errorf("ParseAnalyzers(%q): got %b, want %b", tt.in, got, tt.want)
		}
	}
}

func TestAnalyzerNames(t *testing.T) {
	if got := len(AnalyzersAll.Names()); got != 10 {
		t.Errorf("AnalyzersAll.Names: got %d names, want 10", got)
	}

	if got := AnalyzersSuggest.Names(); slices.Contains(got, "beatgrid") || slices.Contains(got, "probability") {
		t.Errorf("AnalyzersSuggest.Names: got %v, should not include beatgrid or probability", got)
	}

	if got := Analyzer(0).String(); got != "unknown" {
		t.Errorf("Analyzer(0).String: got %s, want unknown", got)
	}
}

func TestParseBandEstimator(t *testing.T) {
	for in, want := range map[string]BandEstimator{"": BandsPlaceholder, "placeholder": BandsPlaceholder, "spectral": BandsSpectral} {
		got, err := ParseBandEstimator(in)
		if err != nil || got != want {
			t.Errorf("ParseBandEstimator(%q): got %v, %v, want %v", in, got, err, want)
		}

		if got.String() != want.String() {
			t.Errorf("String: got %s, want %s", got, want)
		}
	}

	if _, err := ParseBandEstimator("fft"); err == nil {
		t.Error("ParseBandEstimator(fft): expected an error")
	}
}
