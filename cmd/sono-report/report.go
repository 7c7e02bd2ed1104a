//nolint:wrapcheck
package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/farcloser/sonoscope"
	"github.com/farcloser/sonoscope/internal/decode"
	"github.com/farcloser/sonoscope/internal/output"
)

const defaultOutputFile = "sonoscope-report.jsonl"

var (
	errNotDirectory = errors.New("not a directory")
	errNoAudioFiles = errors.New("no audio files found")
	errReportArgs   = errors.New("expected exactly one argument: folder path")
)

//nolint:gochecknoglobals // configuration data, effectively const
var audioExtensions = []string{".flac", ".m4a", ".wav", ".mp3", ".ogg", ".aiff"}

type reportConfig struct {
	folder  string
	output  string
	redact  bool
	workers int
	opts    sonoscope.Options
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Scan a music collection and write a sonoscope JSONL report",
		ArgsUsage: "<folder>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "redact-path",
				Usage: "Strip file paths from the report",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of files analyzed at once",
				Value:   runtime.NumCPU(),
				Sources: cli.EnvVars("SONOSCOPE_WORKERS"),
			},
			&cli.IntFlag{
				Name:    "seed",
				Usage:   "Seed applied to every file (0 = a random seed per file, recorded in the report)",
				Sources: cli.EnvVars("SONOSCOPE_SEED"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Per-file analysis deadline (0 = no limit)",
				Sources: cli.EnvVars("SONOSCOPE_TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report file (a .gz copy is written next to it)",
				Value:   defaultOutputFile,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errReportArgs
			}

			opts := sonoscope.DefaultOptions()
			opts.Seed = uint64(max(cmd.Int("seed"), 0))
			opts.Timeout = cmd.Duration("timeout")
			// Files are already processed in parallel.
			opts.Workers = 1

			return runReport(ctx, reportConfig{
				folder:  cmd.Args().First(),
				output:  cmd.String("output"),
				redact:  cmd.Bool("redact-path"),
				workers: max(cmd.Int("workers"), 1),
				opts:    opts,
			})
		},
	}
}

func runReport(ctx context.Context, cfg reportConfig) error {
	info, err := os.Stat(cfg.folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%q: %w", cfg.folder, errNotDirectory)
	}

	files, err := collectAudioFiles(cfg.folder)
	if err != nil {
		return fmt.Errorf("scanning folder: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("%q: %w", cfg.folder, errNoAudioFiles)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to analyze (%d workers)\n", len(files), cfg.workers)

	startTime := time.Now()
	results := make([]Record, len(files))

	var progress atomic.Int64

	group := &errgroup.Group{}
	group.SetLimit(cfg.workers)

	for idx, filePath := range files {
		group.Go(func() error {
			results[idx] = processFile(ctx, filePath, cfg.opts)

			done := progress.Add(1)
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", done, len(files), filePath)

			return nil
		})
	}

	_ = group.Wait()

	out, err := os.Create(cfg.output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	failed := 0

	var totalDecode, totalAnalyze time.Duration

	for idx := range results {
		record := &results[idx]

		if record.Error != "" {
			failed++
		}

		if record.Timing != nil {
			totalDecode += millisToDuration(record.Timing.DecodeMs)
			totalAnalyze += millisToDuration(record.Timing.AnalyzeMs)
		}

		if cfg.redact {
			record.File = ""
			record.Probe = redactProbe(record.Probe)
		}

		if err := enc.Encode(record); err != nil {
			slog.Error("writing record", "file", files[idx], "error", err)
		}
	}

	out.Close()

	if err := compressFile(cfg.output); err != nil {
		slog.Error("compressing report", "error", err)
	}

	elapsed := time.Since(startTime)

	fmt.Fprintf(os.Stderr, "\nDone: %d files in %s (%d failed)\n", len(files), elapsed.Truncate(time.Second), failed)
	fmt.Fprintf(os.Stderr, "Report written to %s (and %s.gz)\n", cfg.output, cfg.output)

	analyzed := len(files) - failed
	fmt.Fprintf(os.Stderr, "\n--- Timing ---\n")
	fmt.Fprintf(os.Stderr, "  Wall clock:  %s\n", elapsed.Truncate(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  decode:      %s (cumulative)\n", totalDecode.Truncate(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  analysis:    %s (cumulative)\n", totalAnalyze.Truncate(time.Millisecond))

	if analyzed > 0 {
		fmt.Fprintf(os.Stderr, "  avg/file:    %s (decode: %s, analyze: %s)\n",
			(totalDecode+totalAnalyze)/time.Duration(analyzed),
			totalDecode/time.Duration(analyzed),
			totalAnalyze/time.Duration(analyzed),
		)
	}

	fmt.Fprintln(os.Stderr)

	return runDigest(cfg.output, "")
}

func processFile(ctx context.Context, filePath string, opts sonoscope.Options) Record {
	fileStart := time.Now()
	timing := &RecordTiming{}

	decoded, err := decode.File(ctx, filePath, 0)

	timing.DecodeMs = durationMs(time.Since(fileStart))

	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("decode failed: %v", err), Timing: timing}
	}

	analyzeStart := time.Now()

	result, err := sonoscope.Analyze(ctx, decoded.Buffer, opts)

	timing.AnalyzeMs = durationMs(time.Since(analyzeStart))
	timing.TotalMs = durationMs(time.Since(fileStart))

	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("analysis failed: %v", err), Timing: timing}
	}

	record := Record{
		File:     filePath,
		Decoder:  string(decoded.Decoder),
		Analysis: output.ResultToMap(result, sonoscope.Suggest(result)),
		Timing:   timing,
	}

	if decoded.Probe != nil {
		probeJSON, err := json.Marshal(decoded.Probe)
		if err == nil {
			record.Probe = probeJSON
		} else {
			record.ProbeError = "probe serialization failed"
		}
	}

	return record
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func millisToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func collectAudioFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if slices.Contains(audioExtensions, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)

	return files, nil
}

func compressFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // reading our own output file
	if err != nil {
		return err
	}

	gzFile, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer gzFile.Close()

	gzWriter := gzip.NewWriter(gzFile)

	if _, err := gzWriter.Write(data); err != nil {
		return err
	}

	return gzWriter.Close()
}

func redactProbe(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}

	var probe map[string]any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return raw
	}

	// Strip format.filename.
	if format, ok := probe["format"].(map[string]any); ok {
		delete(format, "filename")
	}

	redacted, err := json.Marshal(probe)
	if err != nil {
		return raw
	}

	return redacted
}
