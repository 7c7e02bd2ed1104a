package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/sonoscope/internal/integration/binary"
	"github.com/farcloser/sonoscope/internal/types"
)

// Extract decodes the streamIndex-th audio stream of filePath to raw little-endian PCM at
// bitDepth and writes it to output. Sample rate and channel layout stay as in the source.
// ffmpeg opens the file itself: MP4 files with a trailing moov atom need to seek.
func Extract(
	ctx context.Context,
	filePath string,
	output io.Writer,
	streamIndex int,
	bitDepth types.BitDepth,
) error {
	slog.Debug("ffmpeg.Extract", "file path", filePath, "stream index", streamIndex, "stage", "start")

	ffmpegPath, err := binary.Require(name)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-v", "quiet",
		"-i", filePath,
		"-map", "0:a:"+strconv.Itoa(streamIndex),
		"-f", bitDepthToSpec(bitDepth),
		"-acodec", bitDepthToCodec(bitDepth),
		"-",
	)

	cmd.Stdout = output

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			slog.Debug("ffmpeg.Extract", "file path", filePath, "stage", "timeout")

			return fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		slog.Debug("ffmpeg.Extract", "file path", filePath, "stage", "error")

		return fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	slog.Debug("ffmpeg.Extract", "file path", filePath, "stage", "done")

	return nil
}
