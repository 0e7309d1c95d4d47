package shape

import (
	"github.com/wudi/layoutkit/canvas"
	"github.com/wudi/layoutkit/coords"
	"github.com/wudi/layoutkit/fixedpage"
)

// Transcode composites a source fixed page onto the destination page. A
// drawing form is sized to the source page's full intrinsic point dimensions
// and the page's instruction sequence is copied into it verbatim,
// order-preserving; individual instructions are not reinterpreted. The form
// is then drawn at dst, sampling from the srcWin crop window (form
// coordinates, points).
//
// Composition is all-or-nothing: any validation failure aborts before a
// single operator reaches the destination page.
func Transcode(page canvas.Page, src *fixedpage.Page, dst, srcWin coords.Rect) error {
	form, err := canvas.NewForm(src.PointWidth(), src.PointHeight())
	if err != nil {
		return err
	}
	form.AppendRaw(src.Ops)
	return page.DrawForm(form, dst, srcWin)
}

// SourceWindow converts a pixel-space crop window into the source page's
// point coordinate system (origin bottom-left).
func SourceWindow(src *fixedpage.Page, l Layout) coords.Rect {
	res := src.Resolution
	return coords.Rect{
		X: coords.PixelsToPoints(l.CropX, res),
		Y: src.PointHeight() - coords.PixelsToPoints(l.CropY+l.CropH, res),
		W: coords.PixelsToPoints(l.CropW, res),
		H: coords.PixelsToPoints(l.CropH, res),
	}
}
