package raster

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encode(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	default:
		t.Fatalf("unsupported test format %q", format)
	}
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	tests := []struct {
		format string
		w, h   int
	}{
		{"png", 96, 48},
		{"jpeg", 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			img, err := Decode(encode(t, tt.format, tt.w, tt.h))
			if err != nil {
				t.Fatal(err)
			}
			if img.PixelWidth != tt.w || img.PixelHeight != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", img.PixelWidth, img.PixelHeight, tt.w, tt.h)
			}
			if img.Format != tt.format {
				t.Errorf("format = %q, want %q", img.Format, tt.format)
			}
			if len(img.Data) == 0 {
				t.Error("original bytes must be retained")
			}
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected decode error")
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	if err := os.WriteFile(path, encode(t, "png", 5, 7), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := DecodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.PixelWidth != 5 || img.PixelHeight != 7 {
		t.Errorf("size = %dx%d, want 5x7", img.PixelWidth, img.PixelHeight)
	}

	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
