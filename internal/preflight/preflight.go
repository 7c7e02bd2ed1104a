// Package preflight checks the input signal for conditions that make the analysis records
// degenerate: no samples, digital silence, clipping and DC offset.
package preflight

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/sonoscope/internal/types"
)

const floorDb = -120.0

type Options struct {
	SilenceThresholdDb float64 // below this = silence (default -60)
	MinSilenceMs       int     // minimum silence run to report (default 1000)
	WindowMs           int     // RMS window size (default 50)
	ClipLevel          float64 // |sample| at or above this is full scale (default 32767/32768)
	DCThresholdDb      float64 // offset above this is reported (default -40)
}

func DefaultOptions() Options {
	return Options{
		SilenceThresholdDb: -60.0,
		MinSilenceMs:       1000,
		WindowMs:           50,
		ClipLevel:          32767.0 / 32768.0,
		DCThresholdDb:      -40.0,
	}
}

// Inspect runs every check over buf.
func Inspect(buf *types.SampleBuffer, opts Options) *types.SignalCheck {
	defaults := DefaultOptions()

	if opts.SilenceThresholdDb == 0 {
		opts.SilenceThresholdDb = defaults.SilenceThresholdDb
	}

	if opts.MinSilenceMs == 0 {
		opts.MinSilenceMs = defaults.MinSilenceMs
	}

	if opts.WindowMs == 0 {
		opts.WindowMs = defaults.WindowMs
	}

	if opts.ClipLevel == 0 {
		opts.ClipLevel = defaults.ClipLevel
	}

	if opts.DCThresholdDb == 0 {
		opts.DCThresholdDb = defaults.DCThresholdDb
	}

	check := &types.SignalCheck{
		Frames:     buf.Frames(),
		Channels:   make([]types.ChannelCheck, buf.NumChannels()),
		DCOffsetDb: floorDb,
		Warnings:   []string{},
	}

	if check.Frames == 0 {
		check.Warnings = append(check.Warnings, types.WarningEmpty)

		return check
	}

	clipping(buf, opts.ClipLevel, check)
	dcOffset(buf, check)

	allSilent := silence(buf, opts, check)

	if allSilent {
		check.Warnings = append(check.Warnings, types.WarningSilent)
	}

	if check.ClipEvents > 0 {
		check.Warnings = append(check.Warnings, types.WarningClipped)
	}

	if check.DCOffsetDb > opts.DCThresholdDb {
		check.Warnings = append(check.Warnings, types.WarningDCOffset)
	}

	return check
}

func toDb(v float64) float64 {
	db := 20 * math.Log10(v)
	if math.IsInf(db, -1) || math.IsNaN(db) {
		return floorDb
	}

	return db
}

func clipping(buf *types.SampleBuffer, level float64, check *types.SignalCheck) {
	for c, data := range buf.Channels {
		ch := &check.Channels[c]

		var run uint64

		flush := func() {
			if run >= 2 {
				ch.ClipEvents++
				ch.ClippedSamples += run
				ch.LongestClip = max(ch.LongestClip, run)
			}

			run = 0
		}

		for _, v := range data {
			if math.Abs(v) >= level {
				run++
			} else {
				flush()
			}
		}

		flush()

		check.ClipEvents += ch.ClipEvents
		check.ClippedSamples += ch.ClippedSamples
		check.LongestClip = max(check.LongestClip, ch.LongestClip)
	}
}

func dcOffset(buf *types.SampleBuffer, check *types.SignalCheck) {
	var total float64

	for c, data := range buf.Channels {
		if len(data) == 0 {
			continue
		}

		check.Channels[c].DCOffset = floats.Sum(data) / float64(len(data))
		total += math.Abs(check.Channels[c].DCOffset)
	}

	check.DCOffset = total / float64(len(buf.Channels))
	check.DCOffsetDb = toDb(check.DCOffset)
}

// silence walks RMS windows averaged over channels and records runs below threshold.
// It reports whether every window was silent.
func silence(buf *types.SampleBuffer, opts Options, check *types.SignalCheck) bool {
	if buf.SampleRate <= 0 {
		return false
	}

	frames := check.Frames
	rate := float64(buf.SampleRate)
	windowFrames := max(buf.SampleRate*opts.WindowMs/1000, 1)
	minFrames := buf.SampleRate * opts.MinSilenceMs / 1000
	threshold := math.Pow(10, opts.SilenceThresholdDb/20)

	allSilent := true
	start := -1

	closeRun := func(end int) {
		if start < 0 {
			return
		}

		if end-start >= minFrames {
			seconds := float64(end-start) / rate
			check.SilenceSec += seconds

			if start == 0 {
				check.LeadingSilenceSec = seconds
			}

			if end == frames {
				check.TrailingSilenceSec = seconds
			}
		}

		start = -1
	}

	for pos := 0; pos < frames; pos += windowFrames {
		end := min(pos+windowFrames, frames)

		var sumSq float64

		for _, data := range buf.Channels {
			if pos >= len(data) {
				continue
			}

			for _, v := range data[pos:min(end, len(data))] {
				sumSq += v * v
			}
		}

		rms := math.Sqrt(sumSq / float64((end-pos)*len(buf.Channels)))

		if rms < threshold {
			if start < 0 {
				start = pos
			}

			continue
		}

		allSilent = false

		closeRun(pos)
	}

	closeRun(frames)

	return allSilent
}
