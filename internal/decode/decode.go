// Package decode turns an audio file into a SampleBuffer, natively for integer PCM WAV
// and through ffprobe/ffmpeg for everything else.
package decode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/farcloser/sonoscope/internal/integration/ffmpeg"
	"github.com/farcloser/sonoscope/internal/integration/ffprobe"
	"github.com/farcloser/sonoscope/internal/types"
	"github.com/farcloser/sonoscope/internal/wavfile"
)

// Decoder names the path a file went through.
type Decoder string

const (
	DecoderWAV    Decoder = "wav"
	DecoderFFmpeg Decoder = "ffmpeg"
)

// Decoded is a buffer plus what was learned while decoding it.
type Decoded struct {
	Buffer  *types.SampleBuffer
	Decoder Decoder
	Probe   *ffprobe.Result // nil when the file was read natively
}

// File decodes the streamIndex-th audio stream of filePath. Stream 0 of an integer PCM
// WAV is read without external tools; other WAV encodings fall back to ffmpeg.
func File(ctx context.Context, filePath string, streamIndex int) (*Decoded, error) {
	if streamIndex == 0 && wavfile.IsWAV(filePath) {
		buf, err := wavfile.Open(filePath)
		if err == nil {
			return &Decoded{Buffer: buf, Decoder: DecoderWAV}, nil
		}

		if !errors.Is(err, wavfile.ErrUnsupportedWAV) {
			return nil, fmt.Errorf("decoding WAV: %w", err)
		}

		slog.Debug("decode.File", "file path", filePath, "stage", "fallback to ffmpeg", "error", err)
	}

	probeResult, err := ffprobe.Probe(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("probing file: %w", err)
	}

	stream, err := probeResult.AudioStream(streamIndex)
	if err != nil {
		return nil, err
	}

	format, err := stream.PCMFormat(types.Depth32)
	if err != nil {
		return nil, err
	}

	buf, err := ffmpeg.DecodeFile(ctx, filePath, streamIndex, format)
	if err != nil {
		return nil, fmt.Errorf("extracting PCM: %w", err)
	}

	return &Decoded{Buffer: buf, Decoder: DecoderFFmpeg, Probe: probeResult}, nil
}
