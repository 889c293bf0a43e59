// Package options resolves the CLI's key=value argument surface into a
// typed, immutable options record.
package options

import (
	"fmt"
	"strconv"
	"strings"
)

// DimensionMode selects how a target width or height is resolved.
type DimensionMode int

const (
	// DimensionAuto lets the transcoder compute the axis to preserve
	// the aspect ratio.
	DimensionAuto DimensionMode = iota
	// DimensionSource keeps the original pixel size for the axis.
	DimensionSource
	// DimensionExact uses an explicit pixel value.
	DimensionExact
)

// Dimension is one axis of a resize or crop target.
type Dimension struct {
	Mode  DimensionMode
	Value int // meaningful only for DimensionExact
}

// Defaults carries the configured fallback values applied when the
// corresponding key is not given on the command line.
type Defaults struct {
	Quality     int
	Compression int
	Lossless    bool
}

// Options is the resolved argument record. It is read-only after Parse
// returns; the batch loop shares a single instance across all files.
type Options struct {
	Input       string
	Extensions  []string // lowercase, no leading dot; nil accepts everything
	OutDir      string
	Lossless    bool
	Compression int // 0-6, used only when Lossless
	Quality     int // 0-100, used only when lossy
	Scale       float64
	HasScale    bool
	Width       *Dimension // nil when the key was not given
	Height      *Dimension
	Crop        bool
	CenterH     bool
	CenterV     bool
	Verbose     bool

	// Unknown holds unrecognized keys verbatim. They are never acted
	// on; accepting them keeps old invocations working when newer
	// builds add keys.
	Unknown map[string]string
}

// Parse consumes the raw argument list. The first token is the
// mandatory input path; the rest are case-insensitive key or key=value
// pairs.
func Parse(args []string, defaults Defaults) (*Options, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing input path")
	}

	opts := &Options{
		Input:       args[0],
		Quality:     defaults.Quality,
		Compression: defaults.Compression,
		Lossless:    defaults.Lossless,
		Unknown:     make(map[string]string),
	}

	for _, token := range args[1:] {
		key, value, _ := strings.Cut(token, "=")
		key = strings.ToLower(key)

		switch key {
		case "ext":
			opts.Extensions = parseExtensions(value)
		case "out":
			opts.OutDir = value
		case "quality":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || n > 100 {
				return nil, fmt.Errorf("invalid quality %q: must be an integer between 0 and 100", value)
			}
			opts.Quality = n
		case "compression":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || n > 6 {
				return nil, fmt.Errorf("invalid compression %q: must be an integer between 0 and 6", value)
			}
			opts.Compression = n
		case "scale":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f <= 0 {
				return nil, fmt.Errorf("invalid scale %q: must be a positive number", value)
			}
			opts.Scale = f
			opts.HasScale = true
		case "width":
			d, err := parseDimension(value)
			if err != nil {
				return nil, fmt.Errorf("invalid width %q: %w", value, err)
			}
			opts.Width = d
		case "height":
			d, err := parseDimension(value)
			if err != nil {
				return nil, fmt.Errorf("invalid height %q: %w", value, err)
			}
			opts.Height = d
		case "lossless":
			opts.Lossless = true
		case "crop":
			opts.Crop = true
		case "centerh":
			opts.CenterH = true
		case "centerv":
			opts.CenterV = true
		case "center":
			opts.CenterH = true
			opts.CenterV = true
		case "verbose":
			opts.Verbose = true
		default:
			opts.Unknown[key] = value
		}
	}

	return opts, nil
}

// parseExtensions normalizes a comma-separated extension list to
// lowercase entries without a leading dot.
func parseExtensions(value string) []string {
	var exts []string
	for _, e := range strings.Split(value, ",") {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			exts = append(exts, e)
		}
	}
	return exts
}

// parseDimension resolves one axis value: an explicit positive pixel
// count, or the literals "source" and "auto".
func parseDimension(value string) (*Dimension, error) {
	switch strings.ToLower(value) {
	case "source":
		return &Dimension{Mode: DimensionSource}, nil
	case "auto", "":
		return &Dimension{Mode: DimensionAuto}, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("must be a positive integer, \"source\" or \"auto\"")
	}
	return &Dimension{Mode: DimensionExact, Value: n}, nil
}

// HasResize reports whether a width or height target was given.
func (o *Options) HasResize() bool {
	return o.Width != nil || o.Height != nil
}
