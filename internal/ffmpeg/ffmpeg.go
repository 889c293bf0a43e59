// Package ffmpeg converts images to WebP through the ffmpeg binary.
package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Kruithne/webp/internal/subprocess"
)

// Job describes one transcoder invocation.
type Job struct {
	Input       string
	Output      string
	Lossless    bool
	Compression int    // lossless effort, 0-6
	Quality     int    // lossy quality, 0-100
	FilterGraph string // comma-joined filter expression, empty for none
	Verbose     bool   // inherit ffmpeg's own output instead of discarding it
}

// Transcoder is the conversion capability used by the batch loop.
type Transcoder interface {
	Transcode(ctx context.Context, job Job) error
}

// CLI implements Transcoder by invoking ffmpeg.
type CLI struct {
	binary   string
	executor subprocess.Executor
	logger   *slog.Logger
}

// NewCLI creates an ffmpeg-backed transcoder.
func NewCLI(binary string, executor subprocess.Executor, logger *slog.Logger) *CLI {
	return &CLI{
		binary:   binary,
		executor: executor,
		logger:   logger,
	}
}

// BuildArgs constructs the ffmpeg argument list for a job. Rotation is
// disabled in ffmpeg itself because the filter graph already encodes
// the EXIF orientation.
func BuildArgs(job Job) []string {
	args := []string{
		"-noautorotate",
		"-i", job.Input,
		"-y",
		"-vcodec", "webp",
	}

	if job.Lossless {
		args = append(args, "-lossless", "1", "-compression_level", strconv.Itoa(job.Compression))
	} else {
		args = append(args, "-lossless", "0", "-q:v", strconv.Itoa(job.Quality))
	}

	if job.FilterGraph != "" {
		args = append(args, "-vf", job.FilterGraph)
	}

	return append(args, job.Output)
}

// CommandLine renders the full invocation for display.
func (c *CLI) CommandLine(job Job) string {
	return c.binary + " " + strings.Join(BuildArgs(job), " ")
}

// Transcode runs one conversion, creating the output directory first.
// Tool output is discarded unless the job is verbose.
func (c *CLI) Transcode(ctx context.Context, job Job) error {
	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	args := BuildArgs(job)
	c.logger.Debug("transcoding",
		"input", job.Input,
		"output", job.Output,
		"lossless", job.Lossless,
	)

	if job.Verbose {
		return c.executor.Run(ctx, c.binary, args)
	}
	return c.executor.RunWithPipes(ctx, c.binary, args, io.Discard, io.Discard)
}
