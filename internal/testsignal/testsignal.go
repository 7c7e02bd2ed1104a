// Package testsignal generates deterministic signals for analyzer tests.
package testsignal

import (
	"math"
	"math/rand/v2"

	"github.com/farcloser/sonoscope/internal/types"
)

const SampleRate = 44100

// Mono wraps a single channel into a buffer at SampleRate.
func Mono(data []float64) *types.SampleBuffer {
	return types.NewSampleBuffer([][]float64{data}, SampleRate)
}

// PeriodicSine repeats one cycle of period samples, so every period is bit-identical.
func PeriodicSine(amplitude float64, period, length int) []float64 {
	cycle := make([]float64, period)
	for i := range cycle {
		cycle[i] = amplitude * math.Sin(2*math.Pi*float64(i)/float64(period))
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = cycle[i%period]
	}

	return out
}

// Sine is a plain sine at freq Hz.
func Sine(amplitude, freq float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/SampleRate)
	}

	return out
}

// DC is a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Square alternates +value and -value every sample.
func Square(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i%2 == 0 {
			out[i] = value
		} else {
			out[i] = -value
		}
	}

	return out
}

// Noise is seeded uniform noise in [-amplitude, amplitude).
func Noise(amplitude float64, length int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // test signal

	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (rng.Float64()*2 - 1)
	}

	return out
}

// Clicks places bursts of burst samples at value every spacing samples, starting at offset.
func Clicks(value float64, length, spacing, burst, offset int) []float64 {
	out := make([]float64, length)

	for start := offset; start < length; start += spacing {
		for i := start; i < min(start+burst, length); i++ {
			out[i] = value
		}
	}

	return out
}

// Steps holds each value for hold samples, one after the other.
func Steps(hold int, values ...float64) []float64 {
	out := make([]float64, 0, hold*len(values))
	for _, v := range values {
		for range hold {
			out = append(out, v)
		}
	}

	return out
}

// Finite reports whether every value is a real number.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
