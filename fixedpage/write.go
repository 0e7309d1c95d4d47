package fixedpage

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Write serializes the given pages as a fixed-page package. It is the
// counterpart of OpenBytes and is mainly used by tools and tests.
func Write(w io.Writer, pages []*Page) error {
	if len(pages) == 0 {
		return fmt.Errorf("fixedpage: cannot write a package with no pages")
	}
	zw := zip.NewWriter(w)

	pkg := xmlPackage{}
	for i := range pages {
		pkg.PageRefs = append(pkg.PageRefs, xmlPageRef{Target: fmt.Sprintf("pages/page%d.xml", i+1)})
	}
	if err := writePart(zw, "package.xml", &pkg); err != nil {
		return err
	}

	for i, p := range pages {
		res := p.Resolution
		if res <= 0 {
			res = DefaultResolution
		}
		xp := xmlFixedPage{
			PixelWidth:  p.PixelWidth,
			PixelHeight: p.PixelHeight,
			Resolution:  res,
			Ops:         p.Ops,
		}
		if err := writePart(zw, fmt.Sprintf("pages/page%d.xml", i+1), &xp); err != nil {
			return err
		}
	}
	return zw.Close()
}

// WriteFile serializes the given pages to a .fpx file on disk.
func WriteFile(path string, pages []*Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, pages); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePart(zw *zip.Writer, name string, v interface{}) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("fixedpage: create part %s: %w", name, err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("fixedpage: encode part %s: %w", name, err)
	}
	return enc.Close()
}
