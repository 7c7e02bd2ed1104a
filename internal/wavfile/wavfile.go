// Package wavfile decodes integer PCM WAV files into a SampleBuffer without shelling out.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/farcloser/primordium/fault"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/farcloser/sonoscope/internal/pcm"
	"github.com/farcloser/sonoscope/internal/types"
)

const formatPCM = 1

var (
	ErrNotWAV         = errors.New("not a WAV file")
	ErrUnsupportedWAV = errors.New("unsupported WAV encoding")
)

// Open decodes the WAV file at path.
func Open(path string) (*types.SampleBuffer, error) {
	slog.Debug("wavfile.Open", "file path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	return Read(file)
}

// Read decodes a WAV stream. Only integer PCM (format tag 1) at 8, 16, 24 or 32 bits is
// accepted; floating point and compressed WAVs go through ffmpeg instead.
func Read(reader io.ReadSeeker) (*types.SampleBuffer, error) {
	decoder := wav.NewDecoder(reader)
	if !decoder.IsValidFile() {
		return nil, ErrNotWAV
	}

	if decoder.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWAV, decoder.WavAudioFormat)
	}

	intBuf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	return fromIntBuffer(intBuf, int(decoder.BitDepth))
}

// IsWAV reports whether the file at path carries a RIFF/WAVE header.
func IsWAV(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	return wav.NewDecoder(file).IsValidFile()
}

func fromIntBuffer(intBuf *audio.IntBuffer, bitDepth int) (*types.SampleBuffer, error) {
	if intBuf.Format == nil || intBuf.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: missing channel layout", ErrUnsupportedWAV)
	}

	var scale, offset float64

	switch bitDepth {
	case 8:
		// 8-bit WAV samples are unsigned.
		scale, offset = 128, 128
	case 16:
		scale = pcm.MaxValue16
	case 24:
		scale = pcm.MaxValue24
	case 32:
		scale = pcm.MaxValue32
	default:
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedWAV, bitDepth)
	}

	numChannels := intBuf.Format.NumChannels
	frames := len(intBuf.Data) / numChannels

	channels := make([][]float64, numChannels)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}

	for i := range frames * numChannels {
		channels[i%numChannels][i/numChannels] = (float64(intBuf.Data[i]) - offset) / scale
	}

	return types.NewSampleBuffer(channels, intBuf.Format.SampleRate), nil
}

// Write encodes buf as integer PCM at the given bit depth. Samples outside [-1, 1] are clipped.
// It builds WAV fixtures for the wavfile and decode tests.
func Write(w io.WriteSeeker, buf *types.SampleBuffer, bitDepth int) error {
	var scale float64

	switch bitDepth {
	case 16:
		scale = pcm.MaxValue16
	case 24:
		scale = pcm.MaxValue24
	case 32:
		scale = pcm.MaxValue32
	default:
		return fmt.Errorf("%w: %d-bit", ErrUnsupportedWAV, bitDepth)
	}

	numChannels := buf.NumChannels()
	frames := buf.Frames()

	data := make([]int, 0, frames*numChannels)

	for i := range frames {
		for _, ch := range buf.Channels {
			v := 0.0
			if i < len(ch) {
				v = ch[i]
			}

			data = append(data, int(max(-scale, min(scale-1, v*scale))))
		}
	}

	encoder := wav.NewEncoder(w, buf.SampleRate, bitDepth, numChannels, formatPCM)

	err := encoder.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return err
	}

	return encoder.Close()
}
