package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/wudi/layoutkit/coords"
)

// Document is an ordered collection of stream-backed pages.
type Document struct {
	Pages []*StreamPage
}

// NewDocument creates an empty output document.
func NewDocument() *Document { return &Document{} }

// NewPage appends a page of the given size in points and returns it.
func (d *Document) NewPage(width, height float64) *StreamPage {
	p := &StreamPage{
		Width:  width,
		Height: height,
		forms:  make(map[string]*Form),
		images: make(map[string]*Image),
	}
	d.Pages = append(d.Pages, p)
	return p
}

// StreamPage is a Page implementation that serializes drawing calls into an
// operator content stream. Forms and images become named resources referenced
// by Do operators.
type StreamPage struct {
	Width  float64
	Height float64

	buf    bytes.Buffer
	forms  map[string]*Form
	images map[string]*Image
	nForm  int
	nImage int
}

var _ Page = (*StreamPage)(nil)

// Content returns the page's content stream.
func (p *StreamPage) Content() []byte { return p.buf.Bytes() }

// Forms returns the page's form resources by name.
func (p *StreamPage) Forms() map[string]*Form { return p.forms }

// Images returns the page's image resources by name.
func (p *StreamPage) Images() map[string]*Image { return p.images }

// DrawRectangle draws a filled and/or stroked rectangle.
func (p *StreamPage) DrawRectangle(r coords.Rect, opts RectOptions) {
	if r.IsEmpty() {
		return
	}
	var b strings.Builder
	b.WriteString("q\n")
	paint := ""
	if opts.FillColor != nil {
		c := *opts.FillColor
		fmt.Fprintf(&b, "%s %s %s rg\n", ftoa(c.R), ftoa(c.G), ftoa(c.B))
		paint = "f"
	}
	if opts.StrokeColor != nil {
		c := *opts.StrokeColor
		fmt.Fprintf(&b, "%s %s %s RG\n", ftoa(c.R), ftoa(c.G), ftoa(c.B))
		lw := opts.LineWidth
		if lw <= 0 {
			lw = 1
		}
		fmt.Fprintf(&b, "%s w\n", ftoa(lw))
		if paint == "f" {
			paint = "B"
		} else {
			paint = "S"
		}
	}
	if paint == "" {
		paint = "f"
	}
	fmt.Fprintf(&b, "%s %s %s %s re %s\nQ\n", ftoa(r.X), ftoa(r.Y), ftoa(r.W), ftoa(r.H), paint)
	p.buf.WriteString(b.String())
}

// monoAdvance is the advance width of the built-in fixed-pitch face,
// expressed as a fraction of the font size.
const monoAdvance = 0.6

// DrawCenteredText draws a single line of text centered in the rectangle.
func (p *StreamPage) DrawCenteredText(text string, r coords.Rect, opts TextOptions) {
	if text == "" || r.IsEmpty() {
		return
	}
	size := opts.FontSize
	if size <= 0 {
		size = 10
	}
	width := MeasureText(text, size)
	c := r.Center()
	x := c.X - width/2
	y := c.Y - size/2
	var b strings.Builder
	b.WriteString("q\nBT\n")
	fmt.Fprintf(&b, "/F0 %s Tf\n", ftoa(size))
	fmt.Fprintf(&b, "%s %s %s rg\n", ftoa(opts.Color.R), ftoa(opts.Color.G), ftoa(opts.Color.B))
	fmt.Fprintf(&b, "%s %s Td\n", ftoa(x), ftoa(y))
	fmt.Fprintf(&b, "(%s) Tj\n", escapeString(text))
	b.WriteString("ET\nQ\n")
	p.buf.WriteString(b.String())
}

// DrawText draws a single line of text with its baseline origin at p.
func (p *StreamPage) DrawText(text string, at coords.Point, opts TextOptions) {
	if text == "" {
		return
	}
	size := opts.FontSize
	if size <= 0 {
		size = 10
	}
	var b strings.Builder
	b.WriteString("q\nBT\n")
	fmt.Fprintf(&b, "/F0 %s Tf\n", ftoa(size))
	fmt.Fprintf(&b, "%s %s %s rg\n", ftoa(opts.Color.R), ftoa(opts.Color.G), ftoa(opts.Color.B))
	fmt.Fprintf(&b, "%s %s Td\n", ftoa(at.X), ftoa(at.Y))
	fmt.Fprintf(&b, "(%s) Tj\n", escapeString(text))
	b.WriteString("ET\nQ\n")
	p.buf.WriteString(b.String())
}

// MeasureText returns the width of text at the given size in the built-in
// fixed-pitch face.
func MeasureText(text string, size float64) float64 {
	return float64(len([]rune(text))) * monoAdvance * size
}

// ErrBadWindow is returned when a destination or source rectangle is empty.
var ErrBadWindow = errors.New("canvas: empty destination or source rectangle")

// DrawForm composites a form onto the page, mapping the source window src
// (form coordinates, points) onto the destination rectangle dst (page
// coordinates, points). The output is clipped to dst. Nothing is written to
// the page if validation fails.
func (p *StreamPage) DrawForm(f *Form, dst, src coords.Rect) error {
	if f == nil {
		return errors.New("canvas: nil form")
	}
	if dst.IsEmpty() || src.IsEmpty() {
		return ErrBadWindow
	}
	name := fmt.Sprintf("Fm%d", p.nForm)
	ops := composited(name, dst, src)
	p.nForm++
	p.forms[name] = f
	p.buf.WriteString(ops)
	return nil
}

// DrawImage composites a raster image onto the page. The source window src is
// in image pixel coordinates; dst is in page points.
func (p *StreamPage) DrawImage(img *Image, dst, src coords.Rect) error {
	if img == nil {
		return errors.New("canvas: nil image")
	}
	if dst.IsEmpty() || src.IsEmpty() {
		return ErrBadWindow
	}
	// Image space is the unit square, so express the crop window as a
	// fraction of the pixel size. src.Y is a top-edge offset in pixel
	// space; unit space has a bottom-left origin.
	pw, ph := float64(img.PixelWidth), float64(img.PixelHeight)
	if pw <= 0 || ph <= 0 {
		return errors.New("canvas: image has no pixels")
	}
	unitSrc := coords.Rect{
		X: src.X / pw,
		Y: (ph - src.Y - src.H) / ph,
		W: src.W / pw,
		H: src.H / ph,
	}
	name := fmt.Sprintf("Im%d", p.nImage)
	ops := composited(name, dst, unitSrc)
	p.nImage++
	p.images[name] = img
	p.buf.WriteString(ops)
	return nil
}

// composited builds the operator sequence that clips to dst and maps the
// source window onto it: q, clip, cm, Do, Q.
func composited(name string, dst, src coords.Rect) string {
	sx := dst.W / src.W
	sy := dst.H / src.H
	m := coords.Scale(sx, sy).Multiply(coords.Translate(dst.X-sx*src.X, dst.Y-sy*src.Y))
	var b strings.Builder
	b.WriteString("q\n")
	fmt.Fprintf(&b, "%s %s %s %s re W n\n", ftoa(dst.X), ftoa(dst.Y), ftoa(dst.W), ftoa(dst.H))
	fmt.Fprintf(&b, "%s %s %s %s %s %s cm\n",
		ftoa(m[0]), ftoa(m[1]), ftoa(m[2]), ftoa(m[3]), ftoa(m[4]), ftoa(m[5]))
	fmt.Fprintf(&b, "/%s Do\nQ\n", name)
	return b.String()
}

// WriteTo writes a plain-text dump of the document: each page's size,
// resources and content stream. The format is stable and intended for
// inspection and golden tests.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, p := range d.Pages {
		n, err := fmt.Fprintf(w, "%% page %d (%s x %s pt)\n", i+1, ftoa(p.Width), ftoa(p.Height))
		total += int64(n)
		if err != nil {
			return total, err
		}
		for _, name := range sortedKeys(p.forms) {
			f := p.forms[name]
			n, err = fmt.Fprintf(w, "%% form /%s (%s x %s pt)\n%s\n",
				name, ftoa(f.Width), ftoa(f.Height), strings.Join(f.ops, "\n"))
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		for _, name := range sortedKeys(p.images) {
			img := p.images[name]
			n, err = fmt.Fprintf(w, "%% image /%s (%dx%d px, %s, %d bytes)\n",
				name, img.PixelWidth, img.PixelHeight, img.Format, len(img.Data))
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err = w.Write(p.Content())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ftoa(f float64) string {
	s := strconv.FormatFloat(f, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

func escapeString(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return r.Replace(s)
}
