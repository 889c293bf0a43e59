// Package convert drives the per-file conversion pipeline: read
// metadata, build the filter plan, invoke the transcoder. Files are
// processed strictly sequentially and a failure in one never stops the
// batch.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kruithne/webp/internal/exiftool"
	"github.com/Kruithne/webp/internal/ffmpeg"
	"github.com/Kruithne/webp/internal/filtergraph"
	"github.com/Kruithne/webp/internal/options"
	"github.com/Kruithne/webp/internal/output"
	"github.com/Kruithne/webp/internal/scan"
)

// Result records the outcome of one file's conversion.
type Result struct {
	Input  string
	Output string
	Size   int64 // output file size in bytes, 0 when unknown
	Err    error
}

// Config wires the runner's collaborators.
type Config struct {
	Options    *options.Options
	Reader     exiftool.Reader
	Transcoder ffmpeg.Transcoder
	Printer    *output.Printer
	Logger     *slog.Logger
}

// Runner executes a conversion batch.
type Runner struct {
	opts       *options.Options
	reader     exiftool.Reader
	transcoder ffmpeg.Transcoder
	printer    *output.Printer
	logger     *slog.Logger
}

// New creates a batch runner.
func New(cfg Config) *Runner {
	return &Runner{
		opts:       cfg.Options,
		reader:     cfg.Reader,
		transcoder: cfg.Transcoder,
		printer:    cfg.Printer,
		logger:     cfg.Logger,
	}
}

// Run enumerates the input and converts each file in order. The
// returned error is non-nil only for fatal conditions (unreadable
// input path); per-file failures are reported in the results.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	files, err := scan.Files(r.opts.Input, r.opts.Extensions)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		r.printer.Warning("No matching files in %s", r.opts.Input)
		return nil, nil
	}

	results := make([]Result, 0, len(files))
	for _, file := range files {
		results = append(results, r.convertOne(ctx, file))
	}

	return results, nil
}

// convertOne runs the full pipeline for a single file.
func (r *Runner) convertOne(ctx context.Context, input string) Result {
	outPath := OutputPath(input, r.opts.OutDir)
	r.printer.Info("Converting %s -> %s", input, outPath)

	meta, err := r.reader.Read(ctx, input)
	if err != nil {
		// Without metadata the filter plan is skipped entirely:
		// orientation cannot be corrected and geometry filters are
		// deliberately withheld with it.
		r.printer.Warning("Metadata read failed for %s, converting without filters: %v", input, err)
		r.logger.Debug("metadata unavailable", "file", input, "error", err)
		meta = nil
	}

	job := ffmpeg.Job{
		Input:       input,
		Output:      outPath,
		Lossless:    r.opts.Lossless,
		Compression: r.opts.Compression,
		Quality:     r.opts.Quality,
		Verbose:     r.opts.Verbose,
	}
	if meta != nil {
		job.FilterGraph = filtergraph.Build(meta, r.opts).String()
	}

	if cl, ok := r.transcoder.(interface{ CommandLine(ffmpeg.Job) string }); ok {
		r.printer.Info("  %s", cl.CommandLine(job))
	}

	if err := r.transcoder.Transcode(ctx, job); err != nil {
		r.printer.Error("Failed to convert %s: %v", input, err)
		return Result{Input: input, Output: outPath, Err: fmt.Errorf("transcoding %s: %w", input, err)}
	}

	res := Result{Input: input, Output: outPath}
	if info, err := os.Stat(outPath); err == nil {
		res.Size = info.Size()
	}
	return res
}

// OutputPath derives the output file for an input: the basename with
// its extension replaced by .webp, placed in outDir when given or
// alongside the input otherwise.
func OutputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".webp"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}
