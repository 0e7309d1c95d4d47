package canvas

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wudi/layoutkit/coords"
)

func TestNewFormValidation(t *testing.T) {
	if _, err := NewForm(0, 100); err != ErrEmptyForm {
		t.Errorf("err = %v, want ErrEmptyForm", err)
	}
	if _, err := NewForm(100, -1); err != ErrEmptyForm {
		t.Errorf("err = %v, want ErrEmptyForm", err)
	}
	f, err := NewForm(10, 20)
	if err != nil {
		t.Fatal(err)
	}
	f.AppendRaw([]string{"q", "Q"})
	if len(f.Ops()) != 2 {
		t.Errorf("ops = %v", f.Ops())
	}
}

func TestDrawRectangle(t *testing.T) {
	doc := NewDocument()
	page := doc.NewPage(612, 792)
	page.DrawRectangle(coords.Rect{X: 10, Y: 20, W: 100, H: 50}, RectOptions{FillColor: &Black})

	content := string(page.Content())
	if !strings.Contains(content, "10 20 100 50 re f") {
		t.Errorf("content = %q", content)
	}
	if !strings.Contains(content, "0 0 0 rg") {
		t.Errorf("missing fill color: %q", content)
	}
}

func TestDrawRectangleStroked(t *testing.T) {
	doc := NewDocument()
	page := doc.NewPage(612, 792)
	page.DrawRectangle(coords.Rect{X: 0, Y: 0, W: 10, H: 10}, RectOptions{
		FillColor:   &White,
		StrokeColor: &Black,
		LineWidth:   2,
	})
	content := string(page.Content())
	if !strings.Contains(content, "re B") {
		t.Errorf("fill+stroke must paint with B: %q", content)
	}
	if !strings.Contains(content, "2 w") {
		t.Errorf("missing line width: %q", content)
	}
}

func TestDrawCenteredText(t *testing.T) {
	doc := NewDocument()
	page := doc.NewPage(612, 792)
	r := coords.Rect{X: 0, Y: 0, W: 200, H: 100}
	page.DrawCenteredText("hi", r, TextOptions{FontSize: 10})

	content := string(page.Content())
	if !strings.Contains(content, "(hi) Tj") {
		t.Errorf("content = %q", content)
	}
	// 2 chars at advance 0.6*10 = 12 pt wide, centered at x=100.
	if !strings.Contains(content, "94 45 Td") {
		t.Errorf("text not centered: %q", content)
	}
}

func TestDrawTextEscaping(t *testing.T) {
	doc := NewDocument()
	page := doc.NewPage(612, 792)
	page.DrawText("a(b)c\\", coords.Point{X: 0, Y: 0}, TextOptions{})
	content := string(page.Content())
	if !strings.Contains(content, `(a\(b\)c\\) Tj`) {
		t.Errorf("unescaped text: %q", content)
	}
}

func TestDrawFormComposite(t *testing.T) {
	doc := NewDocument()
	page := doc.NewPage(612, 792)
	form, err := NewForm(720, 540)
	if err != nil {
		t.Fatal(err)
	}
	form.AppendRaw([]string{"1 0 0 rg"})

	dst := coords.Rect{X: 100, Y: 200, W: 360, H: 270}
	src := coords.Rect{X: 0, Y: 0, W: 720, H: 540}
	if err := page.DrawForm(form, dst, src); err != nil {
		t.Fatal(err)
	}

	content := string(page.Content())
	if !strings.Contains(content, "/Fm0 Do") {
		t.Errorf("missing Do: %q", content)
	}
	// half scale, translated to the destination origin
	if !strings.Contains(content, "0.5 0 0 0.5 100 200 cm") {
		t.Errorf("wrong matrix: %q", content)
	}
	if !strings.Contains(content, "100 200 360 270 re W n") {
		t.Errorf("missing clip: %q", content)
	}
	if page.Forms()["Fm0"] != form {
		t.Error("form resource not registered")
	}
}

func TestDrawFormValidation(t *testing.T) {
	doc := NewDocument()
	page := doc.NewPage(612, 792)
	form, _ := NewForm(10, 10)

	if err := page.DrawForm(nil, coords.Rect{W: 1, H: 1}, coords.Rect{W: 1, H: 1}); err == nil {
		t.Error("nil form accepted")
	}
	if err := page.DrawForm(form, coords.Rect{}, coords.Rect{W: 1, H: 1}); err != ErrBadWindow {
		t.Errorf("err = %v, want ErrBadWindow", err)
	}
	if err := page.DrawForm(form, coords.Rect{W: 1, H: 1}, coords.Rect{}); err != ErrBadWindow {
		t.Errorf("err = %v, want ErrBadWindow", err)
	}
	if len(page.Content()) != 0 {
		t.Error("failed DrawForm must not emit operators")
	}
}

func TestDrawImageUnitWindow(t *testing.T) {
	doc := NewDocument()
	page := doc.NewPage(612, 792)
	img := &Image{PixelWidth: 100, PixelHeight: 50, Format: "png", Data: []byte{1}}

	dst := coords.Rect{X: 0, Y: 0, W: 200, H: 100}
	src := coords.Rect{X: 0, Y: 0, W: 100, H: 50} // full image, pixel space
	if err := page.DrawImage(img, dst, src); err != nil {
		t.Fatal(err)
	}
	content := string(page.Content())
	if !strings.Contains(content, "/Im0 Do") {
		t.Errorf("missing Do: %q", content)
	}
	// unit image space: scale 200x100 over the unit square
	if !strings.Contains(content, "200 0 0 100 0 0 cm") {
		t.Errorf("wrong matrix: %q", content)
	}
}

func TestDrawImageVerticalCrop(t *testing.T) {
	doc := NewDocument()
	page := doc.NewPage(612, 792)
	img := &Image{PixelWidth: 100, PixelHeight: 100, Format: "png", Data: []byte{1}}

	// Top-edge offset 10 px, window 50 px tall. In bottom-origin unit
	// space the window is y [0.4, 0.9], so mapping it onto a 50 pt tall
	// destination at y=0 shifts the full image down by 40 pt.
	dst := coords.Rect{X: 0, Y: 0, W: 100, H: 50}
	src := coords.Rect{X: 0, Y: 10, W: 100, H: 50}
	if err := page.DrawImage(img, dst, src); err != nil {
		t.Fatal(err)
	}
	content := string(page.Content())
	if !strings.Contains(content, "100 0 0 100 0 -40 cm") {
		t.Errorf("wrong matrix for top-edge crop: %q", content)
	}
}

func TestDocumentWriteTo(t *testing.T) {
	doc := NewDocument()
	page := doc.NewPage(612, 792)
	page.DrawRectangle(coords.Rect{X: 0, Y: 0, W: 10, H: 10}, RectOptions{FillColor: &Black})

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "% page 1 (612 x 792 pt)") {
		t.Errorf("missing page header: %q", out)
	}
	if !strings.Contains(out, "re f") {
		t.Errorf("missing content: %q", out)
	}
}

func TestFtoa(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{0.5, "0.5"},
		{-2.25, "-2.25"},
		{1.00004, "1"},
		{612, "612"},
	}
	for _, tt := range tests {
		if got := ftoa(tt.in); got != tt.want {
			t.Errorf("ftoa(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
