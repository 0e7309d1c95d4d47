package shape

import (
	"math"

	"github.com/wudi/layoutkit/coords"
	"github.com/wudi/layoutkit/optional"
)

// DefaultDPI is assumed when no resolution is specified.
const DefaultDPI = 96.0

// guardDPI replaces a resolution of exactly zero. Unreachable under normal
// input; kept as a guarded edge case.
const guardDPI = 72.0

// FallbackSize is the edge length, in points, of the square shown when a
// failed shape has no explicit user dimensions (2.5 inches).
const FallbackSize = 2.5 * coords.PointsPerInch

// Sizing is the user-specified sizing of an embedded content shape. Every
// field is tri-state: unset fields fall back to intrinsic values, while an
// explicit value (including zero) is honored as given.
type Sizing struct {
	Width           optional.Float64 // points
	Height          optional.Float64 // points
	Resolution      optional.Float64 // DPI
	ScaleWidth      optional.Float64 // factor
	ScaleHeight     optional.Float64 // factor
	LockAspectRatio optional.Bool    // default true
}

// Crop specifies margins, in points, trimmed from the source content.
type Crop struct {
	Left   optional.Float64
	Right  optional.Float64
	Top    optional.Float64
	Bottom optional.Float64
}

// Layout is the computed on-page placement of an embedded content shape.
// It is recomputed from scratch on every Format call.
type Layout struct {
	Width  float64 // points
	Height float64 // points

	// Crop window in source pixel space. CropX/CropY is the top-left
	// offset; CropW/CropH the window size.
	CropX float64
	CropY float64
	CropW float64
	CropH float64

	Failure Failure
	Path    string
}

// ComputeDimensions computes the final display size and crop window from the
// intrinsic pixel size of the source content, the user sizing spec and an
// optional crop spec.
//
// With the aspect lock engaged (the default) a single specified axis derives
// the other from the intrinsic proportion, and a single scale factor scales
// both axes uniformly regardless of which axis named it. With the lock off,
// or with both scale factors given, each axis is sized and scaled
// independently.
func ComputeDimensions(pixelWidth, pixelHeight int, sz Sizing, crop *Crop) Layout {
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return failedLayout(FailureNotRead, sz)
	}

	dpi := sz.Resolution.Or(DefaultDPI)
	if dpi == 0 {
		dpi = guardDPI
	}
	inherentW := coords.PixelsToPoints(float64(pixelWidth), dpi)
	inherentH := coords.PixelsToPoints(float64(pixelHeight), dpi)

	bothScales := sz.ScaleWidth.IsSet() && sz.ScaleHeight.IsSet()
	locked := sz.LockAspectRatio.Or(true) && !bothScales

	var width, height float64
	if locked {
		w, wSet := sz.Width.Get()
		h, hSet := sz.Height.Get()
		switch {
		case wSet && hSet:
			width, height = w, h
		case wSet:
			width = w
			height = inherentH / inherentW * w
		case hSet:
			height = h
			width = inherentW / inherentH * h
		default:
			width, height = inherentW, inherentH
		}
		if s, ok := sz.ScaleHeight.Get(); ok {
			width *= s
			height *= s
		}
		if s, ok := sz.ScaleWidth.Get(); ok {
			width *= s
			height *= s
		}
	} else {
		width = sz.Width.Or(inherentW)
		if s, ok := sz.ScaleWidth.Get(); ok {
			width *= s
		}
		height = sz.Height.Or(inherentH)
		if s, ok := sz.ScaleHeight.Get(); ok {
			height *= s
		}
	}

	layout := Layout{
		CropW: float64(pixelWidth),
		CropH: float64(pixelHeight),
	}

	if crop != nil {
		left := crop.Left.Or(0)
		right := crop.Right.Or(0)
		top := crop.Top.Or(0)
		bottom := crop.Bottom.Or(0)

		layout.CropX = coords.PointsToPixels(left, dpi)
		layout.CropY = coords.PointsToPixels(top, dpi)
		layout.CropW -= coords.PointsToPixels(left+right, dpi)
		layout.CropH -= coords.PointsToPixels(top+bottom, dpi)

		xScale := width / inherentW
		yScale := height / inherentH
		width -= xScale * (left + right)
		height -= yScale * (top + bottom)
	}

	if math.IsNaN(width) || math.IsInf(width, 0) || math.IsNaN(height) || math.IsInf(height, 0) {
		return failedLayout(FailureNotRead, sz)
	}
	if width <= 0 || height <= 0 {
		layout.Failure = FailureEmptySize
		layout.Width = FallbackSize
		layout.Height = FallbackSize
		return layout
	}

	layout.Width = width
	layout.Height = height
	return layout
}

// failedLayout builds the layout recorded for a failed shape: explicit user
// dimensions if set, otherwise the fallback square.
func failedLayout(f Failure, sz Sizing) Layout {
	return Layout{
		Width:   sz.Width.Or(FallbackSize),
		Height:  sz.Height.Or(FallbackSize),
		Failure: f,
	}
}
