package main

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/sonoscope"
	"github.com/farcloser/sonoscope/internal/suggest"
)

var (
	errDigestArgs        = errors.New("expected exactly one argument: path to report.jsonl")
	errUnknownSuggestion = errors.New("unknown suggestion")
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Produce a summary digest from a sonoscope JSONL report",
		ArgsUsage: "<report.jsonl>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "suggestion",
				Usage: "Show files that received a specific suggestion (e.g., energize, polish)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errDigestArgs
			}

			filter := cmd.String("suggestion")
			if filter != "" && !slices.Contains(sonoscope.SuggestionIDs(), filter) {
				return fmt.Errorf("%w %q (valid: %v)", errUnknownSuggestion, filter, sonoscope.SuggestionIDs())
			}

			return runDigest(cmd.Args().First(), filter)
		},
	}
}

func runDigest(reportPath, suggestionFilter string) error {
	records, err := readRecords(reportPath)
	if err != nil {
		return err
	}

	printDigest(records)

	if suggestionFilter != "" {
		printSuggestionDetail(records, suggestionFilter)
	}

	return nil
}

func readRecords(path string) ([]digestRecord, error) {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified report files
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer file.Close()

	var records []digestRecord

	scanner := bufio.NewScanner(file)

	const maxLineSize = 4 * 1024 * 1024 // energy curves and dissonance maps make long lines
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)

	for scanner.Scan() {
		var rec digestRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			records = append(records, digestRecord{Error: "parse error"})

			continue
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	return records, nil
}

type tally struct {
	key   string
	count int
}

func sortedTallies(counts map[string]int) []tally {
	out := make([]tally, 0, len(counts))
	for k, v := range counts {
		out = append(out, tally{key: k, count: v})
	}

	slices.SortFunc(out, func(a, b tally) int {
		if a.count != b.count {
			return b.count - a.count
		}

		return cmp.Compare(a.key, b.key)
	})

	return out
}

func printDigest(records []digestRecord) {
	total := len(records)
	failed := 0
	degraded := 0
	suggestionDist := map[string]int{}
	suggestionsPerTrack := map[int]int{}
	textures := map[string]int{}
	brainwaves := map[string]int{}
	colors := map[string]int{}
	warnings := map[string]int{}

	for _, rec := range records {
		if rec.Error != "" || rec.Analysis == nil {
			failed++

			continue
		}

		if len(rec.Analysis.Failures) > 0 {
			degraded++
		}

		if sig := rec.Analysis.Signal; sig != nil {
			for _, w := range sig.Warnings {
				warnings[w]++
			}
		}

		suggestionsPerTrack[len(rec.Analysis.Suggestions)]++

		for _, s := range rec.Analysis.Suggestions {
			suggestionDist[s.ID]++
		}

		if t := rec.Analysis.Texture; t != nil {
			textures[t.TextureType]++
		}

		if c := rec.Analysis.Consciousness; c != nil {
			brainwaves[c.BrainwaveTarget]++
		}

		if e := rec.Analysis.Emotion; e != nil {
			colors[e.ColorSignature]++
		}
	}

	fmt.Println("=== Sonoscope Report Digest ===")
	fmt.Println()
	fmt.Printf("Total tracks:  %d\n", total)
	fmt.Printf("Failed:        %d\n", failed)
	fmt.Printf("Analyzed:      %d\n", total-failed)
	fmt.Printf("Degraded:      %d (an analyzer fell back to its neutral record)\n", degraded)
	fmt.Println()

	fmt.Println("--- Suggestions Per Track ---")

	for i := range suggest.MaxSuggestions + 1 {
		if count := suggestionsPerTrack[i]; count > 0 {
			fmt.Printf("  %d suggestions:  %d tracks\n", i, count)
		}
	}

	fmt.Println()
	fmt.Println("--- Suggestions By Type ---")

	for _, id := range sonoscope.SuggestionIDs() {
		fmt.Printf("  %-16s %d\n", id, suggestionDist[id])
	}

	printTallies("Signal Warnings", warnings)
	printTallies("Texture Types", textures)
	printTallies("Brainwave Targets", brainwaves)
	printTallies("Color Signatures", colors)
}

func printTallies(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("--- %s ---\n", title)

	for _, t := range sortedTallies(counts) {
		fmt.Printf("  %-16s %d\n", t.key, t.count)
	}
}

type suggestionEntry struct {
	file       string
	confidence float64
	impact     string
	reasoning  string
}

func printSuggestionDetail(records []digestRecord, id string) {
	fmt.Println()

	var entries []suggestionEntry

	for _, rec := range records {
		if rec.Error != "" || rec.Analysis == nil {
			continue
		}

		for _, s := range rec.Analysis.Suggestions {
			if s.ID != id {
				continue
			}

			entry := suggestionEntry{
				file:       rec.File,
				confidence: s.Confidence,
				impact:     s.Impact,
				reasoning:  s.Reasoning,
			}

			if entry.file == "" {
				entry.file = "(redacted)"
			}

			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		fmt.Printf("No tracks received %s\n", id)

		return
	}

	slices.SortFunc(entries, func(a, b suggestionEntry) int {
		return cmp.Compare(a.file, b.file)
	})

	fmt.Printf("=== %s: %d tracks ===\n\n", id, len(entries))

	for _, entry := range entries {
		fmt.Printf("  %s\n", entry.file)
		fmt.Printf("    impact: %s  confidence: %.0f%%\n", entry.impact, entry.confidence*100)
		fmt.Printf("    %s\n", entry.reasoning)
		fmt.Println()
	}
}
