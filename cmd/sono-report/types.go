//nolint:tagliatelle
package main

import "encoding/json"

// Record is a single line in the JSONL report file.
type Record struct {
	File       string          `json:"file,omitempty"`
	Decoder    string          `json:"decoder,omitempty"`
	Analysis   map[string]any  `json:"analysis,omitempty"`
	Probe      json.RawMessage `json:"probe,omitempty"`
	ProbeError string          `json:"probe_error,omitempty"`
	Error      string          `json:"error,omitempty"`
	Timing     *RecordTiming   `json:"timing,omitempty"`
}

// RecordTiming captures per-file processing durations in milliseconds.
type RecordTiming struct {
	DecodeMs  float64 `json:"decode_ms"`
	AnalyzeMs float64 `json:"analyze_ms"`
	TotalMs   float64 `json:"total_ms"`
}

// digestRecord holds the typed fields needed by the digest command.
type digestRecord struct {
	File     string          `json:"file,omitempty"`
	Analysis *digestAnalysis `json:"analysis,omitempty"`
	Error    string          `json:"error,omitempty"`
}

type digestAnalysis struct {
	Failures      []string             `json:"failures,omitempty"`
	Signal        *digestSignal        `json:"signal_check,omitempty"`
	Suggestions   []digestSuggestion   `json:"suggestions"`
	Texture       *digestTexture       `json:"sonic_texture,omitempty"`
	Consciousness *digestConsciousness `json:"consciousness_sync,omitempty"`
	Emotion       *digestEmotion       `json:"emotional_dna,omitempty"`
}

type digestSuggestion struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Impact     string  `json:"impact"`
	Reasoning  string  `json:"reasoning"`
}

type digestSignal struct {
	Warnings []string `json:"warnings"`
}

type digestTexture struct {
	TextureType string `json:"texture_type"`
}

type digestConsciousness struct {
	BrainwaveTarget string `json:"brainwave_target"`
}

type digestEmotion struct {
	ColorSignature string `json:"color_signature"`
}
