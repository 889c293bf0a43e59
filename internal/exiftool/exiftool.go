// Package exiftool reads image metadata through the exiftool binary.
package exiftool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Kruithne/webp/internal/subprocess"
)

// Metadata is the per-file record returned by the metadata tool. Only
// the fields the converter acts on are decoded; Orientation follows
// the EXIF convention (1-8, 0 when the tag is absent).
type Metadata struct {
	SourceFile  string `json:"SourceFile"`
	Orientation int    `json:"Orientation"`
	ImageWidth  int    `json:"ImageWidth"`
	ImageHeight int    `json:"ImageHeight"`
}

// Reader is the metadata capability used by the batch loop. Tests
// substitute a stub so no binary is needed.
type Reader interface {
	Read(ctx context.Context, path string) (*Metadata, error)
}

// CLI implements Reader by invoking exiftool.
type CLI struct {
	binary   string
	executor subprocess.Executor
	logger   *slog.Logger
}

// NewCLI creates an exiftool-backed metadata reader.
func NewCLI(binary string, executor subprocess.Executor, logger *slog.Logger) *CLI {
	return &CLI{
		binary:   binary,
		executor: executor,
		logger:   logger,
	}
}

// Read extracts metadata for one file. The -n flag requests numeric
// tag values so Orientation arrives as an integer code rather than a
// description string.
func (c *CLI) Read(ctx context.Context, path string) (*Metadata, error) {
	out, err := c.executor.RunWithOutput(ctx, c.binary, []string{"-json", "-n", path})
	if err != nil {
		return nil, fmt.Errorf("reading metadata for %s: %w", path, err)
	}
	if len(out) == 0 {
		// Dry-run mode produces no output; treat as absent metadata
		return nil, nil
	}

	var records []Metadata
	if err := json.Unmarshal(out, &records); err != nil {
		return nil, fmt.Errorf("parsing metadata for %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no metadata returned for %s", path)
	}

	c.logger.Debug("metadata read",
		"file", path,
		"orientation", records[0].Orientation,
	)
	return &records[0], nil
}
