package synaesthesia

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/sonoscope/internal/types"
)

const (
	defaultFFTSize    = 4096
	defaultMaxWindows = 32
)

// Spectral measures band energy with a Hann-windowed FFT averaged over evenly spaced
// windows. Intensities are relative to the loudest band, so the result is 0-1 with the
// dominant band at 1. Silence or a signal shorter than one window yields zeros.
type Spectral struct {
	FFTSize    int // default 4096
	MaxWindows int // default 32
}

func (s Spectral) Intensities(buf *types.SampleBuffer, bands []Band) []float64 {
	out := make([]float64, len(bands))

	size := s.FFTSize
	if size <= 0 {
		size = defaultFFTSize
	}

	maxWindows := s.MaxWindows
	if maxWindows <= 0 {
		maxWindows = defaultMaxWindows
	}

	data := buf.Mono()
	if len(bands) == 0 || len(data) < size || buf.SampleRate <= 0 {
		return out
	}

	window := hann(size)
	fft := fourier.NewFFT(size)
	seq := make([]float64, size)
	magnitude := make([]float64, size/2+1)

	var coeffs []complex128

	for _, pos := range positions(len(data), size, maxWindows) {
		for i := range size {
			seq[i] = data[pos+i] * window[i]
		}

		coeffs = fft.Coefficients(coeffs, seq)
		for i, c := range coeffs {
			magnitude[i] += math.Hypot(real(c), imag(c))
		}
	}

	binHz := float64(buf.SampleRate) / float64(size)

	for bi, band := range bands {
		lo := int(math.Ceil(band.Low / binHz))
		hi := min(int(band.High/binHz), len(magnitude)-1)

		if lo > hi {
			continue
		}

		out[bi] = floats.Sum(magnitude[lo : hi+1])
	}

	peak := floats.Max(out)
	if peak <= 0 {
		return make([]float64, len(bands))
	}

	floats.Scale(1/peak, out)

	return out
}

func hann(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}

	return w
}

// positions spreads at most maxWindows window starts evenly over the signal.
func positions(total, size, maxWindows int) []int {
	span := total - size
	if span < 0 {
		return nil
	}

	count := min(maxWindows, span/size+1)
	if count <= 1 {
		return []int{0}
	}

	out := make([]int, count)
	for i := range count {
		out[i] = i * span / (count - 1)
	}

	return out
}
