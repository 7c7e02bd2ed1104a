//nolint:tagliatelle
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/sonoscope/internal/integration/binary"
	"github.com/farcloser/sonoscope/internal/types"
)

var (
	ErrStreamNotFound = errors.New("audio stream not found")
	ErrInvalidStream  = errors.New("invalid audio stream")
)

// Result contains the marshalled output of ffprobe.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream holds the stream properties needed to decode and describe audio.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`               // flac
	CodecType     string `json:"codec_type"`               // audio
	SampleRate    string `json:"sample_rate,omitempty"`    // 44100
	Channels      int    `json:"channels,omitempty"`       // 2
	ChannelLayout string `json:"channel_layout,omitempty"` // stereo
	Duration      string `json:"duration,omitempty"`       // 310.666667
	SampleFmt     string `json:"sample_fmt,omitempty"`     // s16, the format ffmpeg uses internally
}

// Format is the container-level information.
type Format struct {
	Filename   string `json:"filename"`
	NbStreams  int    `json:"nb_streams"`
	FormatName string `json:"format_name"`        // e.g. "flac", "mov,mp4,m4a,3gp,3g2,mj2"
	Duration   string `json:"duration,omitempty"` // seconds as float string
}

// AudioStream returns the index-th audio stream (0-based, counting audio streams only).
func (r *Result) AudioStream(index int) (*Stream, error) {
	audioCount := 0

	for i := range r.Streams {
		if r.Streams[i].CodecType != codecTypeAudio {
			continue
		}

		if audioCount == index {
			return &r.Streams[i], nil
		}

		audioCount++
	}

	return nil, fmt.Errorf("%w: index %d (file has %d audio streams)", ErrStreamNotFound, index, audioCount)
}

// PCMFormat is the layout of this stream once ffmpeg decodes it at bitDepth.
func (s *Stream) PCMFormat(bitDepth types.BitDepth) (types.PCMFormat, error) {
	sampleRate, err := strconv.Atoi(s.SampleRate)
	if err != nil || sampleRate <= 0 {
		return types.PCMFormat{}, fmt.Errorf("%w: sample rate %q", ErrInvalidStream, s.SampleRate)
	}

	if s.Channels <= 0 {
		return types.PCMFormat{}, fmt.Errorf("%w: %d channels", ErrInvalidStream, s.Channels)
	}

	return types.PCMFormat{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Channels:   uint(s.Channels), //nolint:gosec // validated positive value
	}, nil
}

// Probe runs ffprobe on the given file path and returns parsed metadata.
// It requires ffprobe to be available in the system PATH.
func Probe(ctx context.Context, filePath string) (*Result, error) {
	slog.Debug("ffprobe.Probe", "file path", filePath)

	ffprobePath, err := binary.Require(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for probing media files
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	return parse(output)
}

func parse(output []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return &result, nil
}
