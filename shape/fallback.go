package shape

import (
	"github.com/wudi/layoutkit/canvas"
	"github.com/wudi/layoutkit/coords"
)

// placeholderFontSize is the fixed-pitch size of the diagnostic message.
const placeholderFontSize = 8.0

// DrawPlaceholder draws the diagnostic stand-in for failed content: a flat
// box across the full target area with a centered, category-specific message
// in a warning color.
func DrawPlaceholder(page canvas.Page, r coords.Rect, f Failure) {
	page.DrawRectangle(r, canvas.RectOptions{FillColor: &canvas.LightGray})
	page.DrawCenteredText(f.Message(), r, canvas.TextOptions{
		FontSize: placeholderFontSize,
		Color:    canvas.WarningRed,
	})
}
