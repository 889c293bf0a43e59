// Package filtergraph builds the ffmpeg -vf expression for one
// conversion: orientation correction first, then proportional scaling,
// then the width/height resize or crop.
package filtergraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Kruithne/webp/internal/exiftool"
	"github.com/Kruithne/webp/internal/options"
)

// Plan is the ordered filter operation list. Order matters: rotation
// and flips must run before geometry changes or the axes are wrong.
type Plan []string

// Empty reports whether the plan contains no operations.
func (p Plan) Empty() bool {
	return len(p) == 0
}

// String renders the plan as a single comma-joined filter-graph
// expression.
func (p Plan) String() string {
	return strings.Join(p, ",")
}

// Build produces the filter plan for one file from its metadata and
// the resolved options.
func Build(meta *exiftool.Metadata, opts *options.Options) Plan {
	var plan Plan

	if meta != nil {
		plan = append(plan, orientationOps(meta.Orientation)...)
	}

	if opts.HasScale {
		factor := strconv.FormatFloat(opts.Scale, 'f', -1, 64)
		plan = append(plan, fmt.Sprintf("scale=iw*%s:ih*%s", factor, factor))
	}

	if opts.HasResize() {
		if opts.Crop {
			plan = append(plan, cropOp(opts))
		} else {
			w := scaleToken(opts.Width, "iw")
			h := scaleToken(opts.Height, "ih")
			plan = append(plan, fmt.Sprintf("scale=%s:%s", w, h))
		}
	}

	return plan
}

// orientationOps maps an EXIF orientation code to the transforms that
// display the image upright. transpose=1 is a 90° clockwise rotation,
// transpose=2 counter-clockwise, transpose=3 clockwise plus vertical
// flip. Code 1, absent (0) and out-of-range codes need nothing.
func orientationOps(code int) []string {
	switch code {
	case 2:
		return []string{"hflip"}
	case 3:
		return []string{"transpose=1", "transpose=1"}
	case 4:
		return []string{"vflip"}
	case 5:
		return []string{"transpose=3"}
	case 6:
		return []string{"transpose=1"}
	case 7:
		return []string{"transpose=1", "hflip"}
	case 8:
		return []string{"transpose=2"}
	}
	return nil
}

// cropOp renders the crop operation. The crop keeps the source size on
// an auto axis since cropping has no aspect-ratio convention to defer
// to.
func cropOp(opts *options.Options) string {
	w := cropToken(opts.Width, "iw")
	h := cropToken(opts.Height, "ih")

	x := "0"
	if opts.CenterH {
		x = fmt.Sprintf("(iw-%s)/2", w)
	}
	y := "0"
	if opts.CenterV {
		y = fmt.Sprintf("(ih-%s)/2", h)
	}

	return fmt.Sprintf("crop=%s:%s:%s:%s", w, h, x, y)
}

// scaleToken renders one axis for a scale operation; -1 asks ffmpeg to
// preserve the aspect ratio.
func scaleToken(d *options.Dimension, source string) string {
	if d == nil {
		return "-1"
	}
	switch d.Mode {
	case options.DimensionExact:
		return strconv.Itoa(d.Value)
	case options.DimensionSource:
		return source
	}
	return "-1"
}

// cropToken renders one axis for a crop operation.
func cropToken(d *options.Dimension, source string) string {
	if d != nil && d.Mode == options.DimensionExact {
		return strconv.Itoa(d.Value)
	}
	return source
}
