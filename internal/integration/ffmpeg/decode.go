package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/sonoscope/internal/pcm"
	"github.com/farcloser/sonoscope/internal/types"
)

// DecodeFile extracts one audio stream of filePath and decodes it into a SampleBuffer while
// ffmpeg is still writing. format must describe the stream as ffprobe reported it, at the
// bit depth to extract.
func DecodeFile(
	ctx context.Context,
	filePath string,
	streamIndex int,
	format types.PCMFormat,
) (*types.SampleBuffer, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	reader, writer := io.Pipe()
	extracted := make(chan error, 1)

	go func() {
		err := Extract(ctx, filePath, writer, streamIndex, format.BitDepth)
		// A nil error closes the pipe with io.EOF.
		writer.CloseWithError(err)
		extracted <- err
	}()

	buf, decodeErr := pcm.Decode(reader, format)
	// Unblocks ffmpeg if decoding stopped early.
	reader.Close()

	if err := <-extracted; err != nil {
		return nil, err
	}

	if decodeErr != nil {
		return nil, decodeErr
	}

	return buf, nil
}
