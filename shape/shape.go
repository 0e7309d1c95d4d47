// Package shape implements the content shapes placed by the layout engine.
// Its centerpiece is ImageShape, which embeds raster images and fixed-page
// documents: it resolves the reference, computes on-page placement honoring
// sizing and cropping, transcodes fixed-page content into a drawing form,
// and renders a diagnostic placeholder instead of failing the page when
// anything goes wrong.
package shape

import (
	"github.com/wudi/layoutkit/canvas"
	"github.com/wudi/layoutkit/coords"
)

// Failure categorizes why a shape's content could not be embedded. The
// categories are mutually exclusive; the first detected failure wins.
type Failure int

const (
	FailureNone Failure = iota
	FailureFileNotFound
	FailureInvalidType
	FailureNotRead
	FailureEmptySize
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureFileNotFound:
		return "file-not-found"
	case FailureInvalidType:
		return "invalid-type"
	case FailureNotRead:
		return "not-read"
	case FailureEmptySize:
		return "empty-size"
	default:
		return "unknown"
	}
}

// Message returns the user-visible placeholder text for the category.
func (f Failure) Message() string {
	switch f {
	case FailureFileNotFound:
		return "file not found"
	case FailureInvalidType:
		return "invalid document type"
	case FailureEmptySize:
		return "empty content size"
	default:
		return "cannot read content"
	}
}

// Frame is the decorative behavior shared by all shapes: an optional fill
// behind the content and an optional border around it. Border and padding
// widths are added on top of the computed content dimensions.
type Frame struct {
	FillColor   *canvas.Color
	BorderColor *canvas.Color
	BorderWidth float64
	Padding     float64
}

// ExtraWidth returns the horizontal size added by the frame.
func (f *Frame) ExtraWidth() float64 { return 2 * (f.BorderWidth + f.Padding) }

// ExtraHeight returns the vertical size added by the frame.
func (f *Frame) ExtraHeight() float64 { return 2 * (f.BorderWidth + f.Padding) }

// DrawBackground fills the frame rectangle. Drawn before the content.
func (f *Frame) DrawBackground(page canvas.Page, r coords.Rect) {
	if f.FillColor == nil {
		return
	}
	page.DrawRectangle(r, canvas.RectOptions{FillColor: f.FillColor})
}

// DrawBorder strokes the frame rectangle. Drawn after content or placeholder.
func (f *Frame) DrawBorder(page canvas.Page, r coords.Rect) {
	if f.BorderColor == nil || f.BorderWidth <= 0 {
		return
	}
	page.DrawRectangle(r, canvas.RectOptions{StrokeColor: f.BorderColor, LineWidth: f.BorderWidth})
}

// ContentRect returns the content area inside the frame rectangle.
func (f *Frame) ContentRect(frame coords.Rect) coords.Rect {
	inset := f.BorderWidth + f.Padding
	return coords.Rect{
		X: frame.X + inset,
		Y: frame.Y + inset,
		W: frame.W - 2*inset,
		H: frame.H - 2*inset,
	}
}
