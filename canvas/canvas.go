// Package canvas defines the drawing surface the layout engine renders onto.
// A Page accepts rectangles, centered text, raster images and drawing forms;
// the stream-backed implementation serializes everything to an operator
// content stream.
package canvas

import (
	"errors"

	"github.com/wudi/layoutkit/coords"
)

// Color is an RGB color with components in [0, 1].
type Color struct{ R, G, B float64 }

var (
	Black     = Color{0, 0, 0}
	White     = Color{1, 1, 1}
	LightGray = Color{0.85, 0.85, 0.85}
	// WarningRed is the color used for diagnostic placeholder text.
	WarningRed = Color{0.8, 0.1, 0.1}
)

// RectOptions configures rectangle drawing.
type RectOptions struct {
	FillColor   *Color
	StrokeColor *Color
	LineWidth   float64
}

// TextOptions configures text drawing. Text is rendered in the built-in
// fixed-pitch face; FontSize defaults to 10 when zero.
type TextOptions struct {
	FontSize float64
	Color    Color
}

// Page is the drawing surface for a single output page.
type Page interface {
	DrawRectangle(r coords.Rect, opts RectOptions)
	DrawCenteredText(text string, r coords.Rect, opts TextOptions)
	DrawForm(f *Form, dst, src coords.Rect) error
	DrawImage(img *Image, dst, src coords.Rect) error
}

// Image is an encoded raster image together with its intrinsic pixel size.
type Image struct {
	PixelWidth  int
	PixelHeight int
	Format      string // "png", "jpeg", ...
	Data        []byte
}

// Form is a reusable, explicitly sized container of drawing instructions.
// It can be composited onto a page at a destination rectangle with an
// optional source crop window, like a nested page.
type Form struct {
	Width  float64 // points
	Height float64 // points
	ops    []string
}

// ErrEmptyForm is returned when a form with a non-positive size is created.
var ErrEmptyForm = errors.New("canvas: form must have positive width and height")

// NewForm creates a drawing form with the given size in points.
func NewForm(width, height float64) (*Form, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyForm
	}
	return &Form{Width: width, Height: height}, nil
}

// AppendRaw appends raw drawing instructions to the form, order-preserving.
// The instructions are not reinterpreted.
func (f *Form) AppendRaw(ops []string) {
	f.ops = append(f.ops, ops...)
}

// Ops returns the form's instruction sequence.
func (f *Form) Ops() []string { return f.ops }
