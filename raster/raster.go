// Package raster decodes raster image headers for embedding. PNG, JPEG and
// GIF come from the standard library; TIFF, BMP and WebP are registered via
// golang.org/x/image. Only the intrinsic pixel size and the raw encoded bytes
// participate in embedding; pixel data is never re-encoded.
package raster

import (
	"bytes"
	"image"
	"os"

	_ "image/gif"  // register decoders
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/wudi/layoutkit/canvas"
)

// Decode parses the image header and returns a canvas image holding the
// original encoded bytes together with the intrinsic pixel size.
func Decode(data []byte) (*canvas.Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &canvas.Image{
		PixelWidth:  cfg.Width,
		PixelHeight: cfg.Height,
		Format:      format,
		Data:        data,
	}, nil
}

// DecodeFile reads and decodes an image file from disk.
func DecodeFile(path string) (*canvas.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
