// Package fixedpage reads .fpx fixed-page packages: ZIP containers holding a
// package.xml manifest and one XML part per page. Every page has known pixel
// dimensions, a native resolution and an ordered sequence of raw drawing
// instructions.
package fixedpage

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Extension is the file extension of fixed-page packages, including the dot.
const Extension = ".fpx"

// DefaultResolution is assumed when a page does not declare one.
const DefaultResolution = 96.0

const (
	// maxEntries bounds the number of parts accepted in a package.
	maxEntries = 10000
	// maxPartSize bounds a single decompressed part. This prevents zip
	// bomb attacks; 50 MB is generous for any legitimate page part.
	maxPartSize = 50 * 1024 * 1024
)

// OpenError reports that a package could not be located or parsed.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("fixedpage: open: %v", e.Err)
	}
	return fmt.Sprintf("fixedpage: open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Page is a single decoded fixed page.
type Page struct {
	PixelWidth  int
	PixelHeight int
	Resolution  float64 // native DPI
	Ops         []string
}

// PointWidth returns the page width in points at its native resolution.
func (p *Page) PointWidth() float64 {
	return float64(p.PixelWidth) / p.Resolution * 72
}

// PointHeight returns the page height in points at its native resolution.
func (p *Page) PointHeight() float64 {
	return float64(p.PixelHeight) / p.Resolution * 72
}

// Document is an opened fixed-page package. It is decoded eagerly at open
// time; Close releases the decoded pages.
type Document struct {
	path   string
	pages  []*Page
	closed bool
}

// Open opens and decodes a fixed-page package from disk.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	doc, err := OpenBytes(data)
	if err != nil {
		if oe, ok := err.(*OpenError); ok {
			oe.Path = path
		}
		return nil, err
	}
	doc.path = path
	return doc, nil
}

// OpenBytes decodes a fixed-page package held in memory.
func OpenBytes(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &OpenError{Err: fmt.Errorf("not a package container: %w", err)}
	}
	if len(zr.File) > maxEntries {
		return nil, &OpenError{Err: fmt.Errorf("package contains too many parts (%d > %d)", len(zr.File), maxEntries)}
	}

	index := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		index[f.Name] = f
	}

	manifest, err := readPart(index, "package.xml")
	if err != nil {
		return nil, &OpenError{Err: err}
	}
	var pkg xmlPackage
	if err := xml.Unmarshal(manifest, &pkg); err != nil {
		return nil, &OpenError{Err: fmt.Errorf("parse package.xml: %w", err)}
	}
	if len(pkg.PageRefs) == 0 {
		return nil, &OpenError{Err: fmt.Errorf("package.xml declares no pages")}
	}

	doc := &Document{pages: make([]*Page, 0, len(pkg.PageRefs))}
	for _, ref := range pkg.PageRefs {
		part, err := readPart(index, ref.Target)
		if err != nil {
			return nil, &OpenError{Err: err}
		}
		page, err := parsePage(part)
		if err != nil {
			return nil, &OpenError{Err: fmt.Errorf("parse %s: %w", ref.Target, err)}
		}
		doc.pages = append(doc.pages, page)
	}
	return doc, nil
}

// IsArchive reports whether data starts with the ZIP container magic.
func IsArchive(data []byte) bool {
	return len(data) >= 2 && data[0] == 'P' && data[1] == 'K'
}

// Path returns the file the document was opened from, if any.
func (d *Document) Path() string { return d.path }

// PageCount returns the number of pages in the package.
func (d *Document) PageCount() int { return len(d.pages) }

// Page returns the page at the given zero-based index.
func (d *Document) Page(index int) (*Page, error) {
	if d.closed {
		return nil, fmt.Errorf("fixedpage: document is closed")
	}
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("fixedpage: page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// Close releases the decoded pages. The document cannot be used afterwards.
func (d *Document) Close() error {
	d.pages = nil
	d.closed = true
	return nil
}

type xmlPackage struct {
	XMLName  xml.Name     `xml:"Package"`
	PageRefs []xmlPageRef `xml:"PageRef"`
}

type xmlPageRef struct {
	Target string `xml:"Target,attr"`
}

type xmlFixedPage struct {
	XMLName     xml.Name `xml:"FixedPage"`
	PixelWidth  int      `xml:"PixelWidth,attr"`
	PixelHeight int      `xml:"PixelHeight,attr"`
	Resolution  float64  `xml:"Resolution,attr"`
	Ops         []string `xml:"Op"`
}

func parsePage(data []byte) (*Page, error) {
	var xp xmlFixedPage
	if err := xml.Unmarshal(data, &xp); err != nil {
		return nil, err
	}
	if xp.PixelWidth <= 0 || xp.PixelHeight <= 0 {
		return nil, fmt.Errorf("page has invalid pixel size %dx%d", xp.PixelWidth, xp.PixelHeight)
	}
	res := xp.Resolution
	if res <= 0 {
		res = DefaultResolution
	}
	return &Page{
		PixelWidth:  xp.PixelWidth,
		PixelHeight: xp.PixelHeight,
		Resolution:  res,
		Ops:         xp.Ops,
	}, nil
}

func readPart(index map[string]*zip.File, name string) ([]byte, error) {
	f, ok := index[name]
	if !ok {
		return nil, fmt.Errorf("part not found in package: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open part %s: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("read part %s: %w", name, err)
	}
	if len(data) > maxPartSize {
		return nil, fmt.Errorf("part %s exceeds size limit", name)
	}
	return data, nil
}
