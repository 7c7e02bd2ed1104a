package types

type BitDepth uint

const (
	Depth16 BitDepth = 16
	Depth24 BitDepth = 24
	Depth32 BitDepth = 32
)

// PCMFormat describes raw interleaved little-endian PCM handed to the decoder.
type PCMFormat struct {
	SampleRate int
	BitDepth   BitDepth
	Channels   uint
}

// SampleBuffer is a decoded signal: one float slice per channel, normalized to [-1, 1].
// It is read-only once built; analyzers never write to it.
type SampleBuffer struct {
	Channels   [][]float64
	SampleRate int
	Duration   float64 // seconds
}

// NewSampleBuffer builds a buffer and derives its duration from the first channel.
func NewSampleBuffer(channels [][]float64, sampleRate int) *SampleBuffer {
	buf := &SampleBuffer{
		Channels:   channels,
		SampleRate: sampleRate,
	}

	if sampleRate > 0 {
		buf.Duration = float64(buf.Frames()) / float64(sampleRate)
	}

	return buf
}

// Mono returns channel 0. Every analyzer reads this channel only: other channels are
// carried along but never mixed in.
func (b *SampleBuffer) Mono() []float64 {
	if b == nil || len(b.Channels) == 0 {
		return nil
	}

	return b.Channels[0]
}

// Frames is the number of samples in channel 0.
func (b *SampleBuffer) Frames() int {
	return len(b.Mono())
}

func (b *SampleBuffer) NumChannels() int {
	if b == nil {
		return 0
	}

	return len(b.Channels)
}

// Random is the randomness source handed to the stochastic analyzers.
// *math/rand/v2.Rand satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}
