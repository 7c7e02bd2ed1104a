// Package pcm decodes raw interleaved little-endian signed PCM into a SampleBuffer.
package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/sonoscope/internal/types"
)

const (
	MaxValue16 = 32768.0      // 2^15, 16-bit signed PCM normalization divisor
	MaxValue24 = 8388608.0    // 2^23, 24-bit signed PCM normalization divisor
	MaxValue32 = 2147483648.0 // 2^31, 32-bit signed PCM normalization divisor

	readFrames = 4096
)

var (
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrInvalidFormat       = errors.New("invalid PCM format")
)

// Decode reads the whole stream and splits it into per-channel float samples in [-1, 1).
// A trailing partial frame is ignored.
func Decode(reader io.Reader, format types.PCMFormat) (*types.SampleBuffer, error) {
	if format.Channels == 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFormat, format.Channels, format.SampleRate)
	}

	bytesPerSample := int(format.BitDepth / 8) //nolint:gosec // bit depth is a small constant
	numChannels := int(format.Channels)        //nolint:gosec // channel count is small

	var sample func(b []byte) float64

	switch format.BitDepth {
	case types.Depth16:
		sample = decode16
	case types.Depth24:
		sample = decode24
	case types.Depth32:
		sample = decode32
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, format.BitDepth)
	}

	frameSize := bytesPerSample * numChannels
	buf := make([]byte, frameSize*readFrames)
	channels := make([][]float64, numChannels)

	pending := 0

	for {
		n, err := reader.Read(buf[pending:])
		n += pending

		completeFrames := (n / frameSize) * frameSize
		data := buf[:completeFrames]

		for i := 0; i < len(data); i += bytesPerSample {
			channel := (i / bytesPerSample) % numChannels
			channels[channel] = append(channels[channel], sample(data[i:]))
		}

		pending = copy(buf, buf[completeFrames:n])

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
		}
	}

	return types.NewSampleBuffer(channels, format.SampleRate), nil
}

func decode16(b []byte) float64 {
	return float64(int16(binary.LittleEndian.Uint16(b))) / MaxValue16 //nolint:gosec // two's complement conversion for signed PCM samples
}

func decode24(b []byte) float64 {
	raw := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if raw&0x800000 != 0 {
		raw |= ^0xFFFFFF
	}

	return float64(raw) / MaxValue24
}

func decode32(b []byte) float64 {
	return float64(int32(binary.LittleEndian.Uint32(b))) / MaxValue32 //nolint:gosec // two's complement conversion for signed PCM samples
}
