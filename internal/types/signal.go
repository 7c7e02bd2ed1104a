package types

// Signal warnings reported by the preflight check.
const (
	WarningEmpty    = "empty"     // no samples at all
	WarningSilent   = "silent"    // every window below the silence threshold
	WarningClipped  = "clipped"   // at least one run of consecutive full-scale samples
	WarningDCOffset = "dc-offset" // mean offset above the DC threshold
)

// SignalCheck describes the input signal itself, across every channel. Analyzers only
// read channel 0; this record tells whether their output is worth reading.
type SignalCheck struct {
	Frames   int
	Channels []ChannelCheck

	// Clipping (runs of at least two consecutive full-scale samples)
	ClipEvents     uint64
	ClippedSamples uint64
	LongestClip    uint64

	// DC offset, mean of |per-channel offset|
	DCOffset   float64
	DCOffsetDb float64 // -120 when there is no offset

	// Silence (RMS windows below threshold, runs of at least the minimum duration)
	SilenceSec         float64
	LeadingSilenceSec  float64
	TrailingSilenceSec float64

	Warnings []string
}

// ChannelCheck holds the per-channel part of a SignalCheck.
type ChannelCheck struct {
	DCOffset       float64
	ClipEvents     uint64
	ClippedSamples uint64
	LongestClip    uint64
}
