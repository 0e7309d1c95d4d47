// Package layout paginates a structured document model into an output
// document. The engine keeps a vertical cursor per page and delegates image
// and fixed-page embedding to the shape package; markdown and HTML front
// ends build the document model from source text.
package layout

import (
	"strings"

	"github.com/wudi/layoutkit/canvas"
	"github.com/wudi/layoutkit/coords"
	"github.com/wudi/layoutkit/observability"
	"github.com/wudi/layoutkit/shape"
)

// Margins defines page margins in points.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// Engine handles the layout and rendering of structured content into pages.
type Engine struct {
	// Configuration
	DefaultFontSize float64
	LineHeight      float64 // multiplier, e.g. 1.2
	Margins         Margins

	// State
	doc         *canvas.Document
	pass        *shape.Pass
	ownPass     bool
	currentPage *canvas.StreamPage
	cursorY     float64
	pageWidth   float64
	pageHeight  float64
}

// Option defines a configuration option for the Engine.
type Option func(*Engine)

// WithDefaultFontSize sets the default font size.
func WithDefaultFontSize(size float64) Option {
	return func(e *Engine) { e.DefaultFontSize = size }
}

// WithLineHeight sets the line height multiplier.
func WithLineHeight(height float64) Option {
	return func(e *Engine) { e.LineHeight = height }
}

// WithMargins sets the page margins.
func WithMargins(margins Margins) Option {
	return func(e *Engine) { e.Margins = margins }
}

// WithPageSize sets the page dimensions in points.
func WithPageSize(width, height float64) Option {
	return func(e *Engine) {
		e.pageWidth = width
		e.pageHeight = height
	}
}

// WithPass attaches an externally owned rendering-pass context. The caller
// remains responsible for closing it.
func WithPass(pass *shape.Pass) Option {
	return func(e *Engine) {
		e.pass = pass
		e.ownPass = false
	}
}

// NewEngine creates a new layout engine with optional configuration. Unless
// WithPass is used, the engine owns a default pass context which is torn
// down by Close.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		DefaultFontSize: 12,
		LineHeight:      1.2,
		Margins: Margins{
			Top:    50,
			Bottom: 50,
			Left:   50,
			Right:  50,
		},
		doc:        canvas.NewDocument(),
		pageWidth:  612, // US Letter
		pageHeight: 792,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pass == nil {
		e.pass = shape.NewPass()
		e.ownPass = true
	}
	return e
}

// Document returns the output document built so far.
func (e *Engine) Document() *canvas.Document { return e.doc }

// Pass returns the engine's rendering-pass context.
func (e *Engine) Pass() *shape.Pass { return e.pass }

// Close ends the rendering pass, releasing all cached fixed-page handles.
// The pass itself is left open when it is externally owned.
func (e *Engine) Close() error {
	e.pass.Log.Debug("document complete",
		observability.Int(observability.MetricPageCount, len(e.doc.Pages)))
	if !e.ownPass {
		return nil
	}
	return e.pass.Close()
}

// ensurePage makes sure there is a current page and the cursor is valid.
func (e *Engine) ensurePage() {
	if e.currentPage == nil {
		e.newPage()
	}
}

// newPage starts a new page and resets the cursor.
func (e *Engine) newPage() {
	e.currentPage = e.doc.NewPage(e.pageWidth, e.pageHeight)
	e.cursorY = e.pageHeight - e.Margins.Top
}

// checkPageBreak checks if there is enough space for height; if not, starts
// a new page.
func (e *Engine) checkPageBreak(height float64) {
	if e.currentPage == nil {
		e.newPage()
		return
	}
	if e.cursorY-height < e.Margins.Bottom {
		e.newPage()
	}
}

// AddHeading adds a heading of the given level (1 is largest).
func (e *Engine) AddHeading(level int, text string) {
	fontSize := e.DefaultFontSize * 2.0
	if level == 2 {
		fontSize = e.DefaultFontSize * 1.5
	} else if level >= 3 {
		fontSize = e.DefaultFontSize * 1.25
	}
	e.ensurePage()
	lineHeight := fontSize * e.LineHeight
	e.checkPageBreak(lineHeight)
	e.currentPage.DrawText(text, coords.Point{X: e.Margins.Left, Y: e.cursorY - fontSize}, canvas.TextOptions{FontSize: fontSize})
	e.cursorY -= lineHeight
}

// AddParagraph adds a word-wrapped paragraph of body text.
func (e *Engine) AddParagraph(text string) {
	e.ensurePage()
	size := e.DefaultFontSize
	lineHeight := size * e.LineHeight
	maxWidth := e.pageWidth - e.Margins.Left - e.Margins.Right

	var line strings.Builder
	lineWidth := 0.0
	flush := func() {
		if line.Len() == 0 {
			return
		}
		e.checkPageBreak(lineHeight)
		e.currentPage.DrawText(line.String(), coords.Point{X: e.Margins.Left, Y: e.cursorY - size}, canvas.TextOptions{FontSize: size})
		e.cursorY -= lineHeight
		line.Reset()
		lineWidth = 0
	}

	spaceW := canvas.MeasureText(" ", size)
	for _, word := range strings.Fields(text) {
		w := canvas.MeasureText(word, size)
		if line.Len() > 0 && lineWidth+spaceW+w > maxWidth {
			flush()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
			lineWidth += spaceW
		}
		line.WriteString(word)
		lineWidth += w
	}
	flush()
	e.cursorY -= lineHeight * 0.5 // paragraph spacing
}

// AddImage formats and renders an image shape at the cursor. When the shape
// does not fit the remaining page space it moves to a fresh page and is
// re-formatted there.
func (e *Engine) AddImage(sh *shape.ImageShape) error {
	e.ensurePage()

	area := e.remainingArea()
	if err := sh.Format(e.pass, area); err != nil {
		return err
	}
	_, h := sh.Size()
	if e.cursorY-h < e.Margins.Bottom && e.cursorY < e.pageHeight-e.Margins.Top {
		e.newPage()
		// Reflow: Format runs again against the fresh page area.
		if err := sh.Format(e.pass, e.remainingArea()); err != nil {
			return err
		}
		_, h = sh.Size()
	}
	if err := sh.Render(e.pass, e.currentPage); err != nil {
		return err
	}
	e.cursorY -= h + e.DefaultFontSize*e.LineHeight*0.5
	return nil
}

// remainingArea returns the free region between the cursor and the bottom
// margin.
func (e *Engine) remainingArea() coords.Rect {
	return coords.Rect{
		X: e.Margins.Left,
		Y: e.Margins.Bottom,
		W: e.pageWidth - e.Margins.Left - e.Margins.Right,
		H: e.cursorY - e.Margins.Bottom,
	}
}
