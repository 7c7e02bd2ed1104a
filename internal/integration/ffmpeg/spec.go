package ffmpeg

import (
	"strconv"
	"time"

	"github.com/farcloser/sonoscope/internal/types"
)

const (
	name = "ffmpeg"
	// Decoding a long track from a slow disk can take a while.
	timeout = 5 * time.Minute
)

// bitDepthToSpec maps a bit depth to the raw sample format ffmpeg writes: s16le, s24le, s32le.
func bitDepthToSpec(bitDepth types.BitDepth) string {
	//nolint:gosec // bit depth is a small constant
	return "s" + strconv.Itoa(int(bitDepth)) + "le"
}

func bitDepthToCodec(bitDepth types.BitDepth) string {
	return "pcm_" + bitDepthToSpec(bitDepth)
}
