package shape

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wudi/layoutkit/canvas"
	"github.com/wudi/layoutkit/coords"
	"github.com/wudi/layoutkit/fixedpage"
	"github.com/wudi/layoutkit/observability"
	"github.com/wudi/layoutkit/raster"
	"github.com/wudi/layoutkit/recovery"
)

type state int

const (
	stateUnformatted state = iota
	stateFormatted
	stateRendered
)

// ImageShape embeds a raster image or a fixed-page document into the output.
// It is a two-phase shape: Format resolves the reference and computes the
// placement geometry; Render composites the content (or a diagnostic
// placeholder) onto a page. Format may run more than once under reflow; each
// run fully recomputes the layout.
type ImageShape struct {
	Name   string // display name for diagnostics
	Ref    string // content reference, see ParseRef
	Sizing Sizing
	Crop   *Crop
	Frame  Frame

	ref       Ref
	layout    Layout
	img       *canvas.Image // raster content, decoded at Format time
	fixed     bool          // content is a fixed-page document
	inline    []byte        // decoded inline payload, when Ref is inline
	frameRect coords.Rect
	state     state
}

// Layout returns the placement computed by the last Format call.
func (s *ImageShape) Layout() Layout { return s.layout }

// Size returns the shape's total on-page size including frame decoration.
func (s *ImageShape) Size() (w, h float64) {
	return s.layout.Width + s.Frame.ExtraWidth(), s.layout.Height + s.Frame.ExtraHeight()
}

// Format resolves the shape's reference, determines the intrinsic content
// size and computes the final placement within area (the shape anchors at
// the top-left corner of area). Failures are recorded in the layout and
// surface as a placeholder at Render time; Format returns an error only
// when the pass strategy demands fail-fast behavior.
func (s *ImageShape) Format(pass *Pass, area coords.Rect) error {
	start := time.Now()
	_, span := pass.Tracer.StartSpan(context.Background(), "shape.format")
	span.SetTag("shape", s.Name)
	defer func() {
		span.SetTag(observability.MetricFormatTime, time.Since(start))
		span.Finish()
	}()

	s.state = stateFormatted
	s.img = nil
	s.inline = nil
	s.fixed = false
	s.ref = ParseRef(s.Ref)

	err := s.format(pass)
	s.place(area)
	if err == nil {
		return nil
	}

	span.SetError(err)
	pass.Log.Warn("content format failed",
		observability.String("shape", s.Name),
		observability.String("path", s.layout.Path),
		observability.String("failure", s.layout.Failure.String()),
		observability.Error("err", err))
	loc := recovery.Location{Shape: s.Name, Path: s.layout.Path, Phase: "format"}
	if pass.Strategy.OnFailure(err, loc) == recovery.ActionFail {
		return err
	}
	return nil
}

// format performs reference resolution and dimension computation. On failure
// it records the category plus fallback dimensions in s.layout and returns
// the underlying error.
func (s *ImageShape) format(pass *Pass) error {
	if s.ref.Inline {
		return s.formatInline()
	}

	path := pass.ResolvePath(s.ref.Base)
	if _, err := os.Stat(path); err != nil {
		s.layout = failedLayout(FailureFileNotFound, s.Sizing)
		s.layout.Path = path
		return err
	}

	if strings.EqualFold(filepath.Ext(path), fixedpage.Extension) {
		s.fixed = true
		doc, err := pass.Cache.GetOrOpen(path)
		if err != nil {
			s.layout = failedLayout(FailureInvalidType, s.Sizing)
			s.layout.Path = path
			return err
		}
		page, err := doc.Page(s.ref.Page)
		if err != nil {
			s.layout = failedLayout(FailureNotRead, s.Sizing)
			s.layout.Path = path
			return err
		}
		s.layout = ComputeDimensions(page.PixelWidth, page.PixelHeight, s.Sizing, s.Crop)
		s.layout.Path = path
		return nil
	}

	img, err := raster.DecodeFile(path)
	if err != nil {
		s.layout = failedLayout(FailureNotRead, s.Sizing)
		s.layout.Path = path
		return err
	}
	s.img = img
	s.layout = ComputeDimensions(img.PixelWidth, img.PixelHeight, s.Sizing, s.Crop)
	s.layout.Path = path
	return nil
}

// formatInline handles the base64 inline-encoded case. The payload is
// sniffed: a ZIP container is treated as fixed-page bytes, anything else as
// a raster image. Inline fixed-page documents are opened per use and closed
// immediately; the pass cache holds path-keyed handles only.
func (s *ImageShape) formatInline() error {
	data, err := base64.StdEncoding.DecodeString(s.ref.Base)
	if err != nil {
		s.layout = failedLayout(FailureNotRead, s.Sizing)
		return err
	}

	if fixedpage.IsArchive(data) {
		s.fixed = true
		s.inline = data
		doc, err := fixedpage.OpenBytes(data)
		if err != nil {
			s.layout = failedLayout(FailureInvalidType, s.Sizing)
			return err
		}
		defer doc.Close()
		page, err := doc.Page(s.ref.Page)
		if err != nil {
			s.layout = failedLayout(FailureNotRead, s.Sizing)
			return err
		}
		s.layout = ComputeDimensions(page.PixelWidth, page.PixelHeight, s.Sizing, s.Crop)
		return nil
	}

	img, err := raster.Decode(data)
	if err != nil {
		s.layout = failedLayout(FailureNotRead, s.Sizing)
		return err
	}
	s.img = img
	s.inline = data
	s.layout = ComputeDimensions(img.PixelWidth, img.PixelHeight, s.Sizing, s.Crop)
	return nil
}

// place anchors the frame rectangle at the top-left corner of area.
func (s *ImageShape) place(area coords.Rect) {
	w, h := s.Size()
	s.frameRect = coords.Rect{X: area.X, Y: area.Y + area.H - h, W: w, H: h}
}

// Render draws the shape onto the page: frame fill first, then the embedded
// content or a placeholder, then the border decoration last. A failure
// during the content fetch/transcode step never propagates under the
// default lenient strategy; it is converted into placeholder output at this
// boundary.
func (s *ImageShape) Render(pass *Pass, page canvas.Page) error {
	if s.state == stateUnformatted {
		return errors.New("shape: Render called before Format")
	}

	start := time.Now()
	_, span := pass.Tracer.StartSpan(context.Background(), "shape.render")
	span.SetTag("shape", s.Name)
	defer func() {
		span.SetTag(observability.MetricRenderTime, time.Since(start))
		span.Finish()
	}()

	content := s.Frame.ContentRect(s.frameRect)
	s.Frame.DrawBackground(page, s.frameRect)

	placeholder := FailureNone
	if s.layout.Failure == FailureNone {
		if err := s.renderContent(pass, page, content); err != nil {
			span.SetError(err)
			pass.Log.Warn("content render failed",
				observability.String("shape", s.Name),
				observability.String("path", s.layout.Path),
				observability.Error("err", err))
			loc := recovery.Location{Shape: s.Name, Path: s.layout.Path, Phase: "render"}
			if pass.Strategy.OnFailure(err, loc) == recovery.ActionFail {
				return err
			}
			placeholder = FailureNotRead
		}
	} else {
		placeholder = s.layout.Failure
	}
	if placeholder != FailureNone {
		span.SetTag(observability.MetricPlaceholderCount, 1)
		DrawPlaceholder(page, content, placeholder)
	}

	s.Frame.DrawBorder(page, s.frameRect)
	s.state = stateRendered
	return nil
}

// renderContent composites the resolved content at the content rectangle.
func (s *ImageShape) renderContent(pass *Pass, page canvas.Page, content coords.Rect) error {
	if s.fixed {
		src, closeSrc, err := s.fetchFixedPage(pass)
		if err != nil {
			return err
		}
		defer closeSrc()
		return Transcode(page, src, content, SourceWindow(src, s.layout))
	}

	if s.img == nil {
		return fmt.Errorf("shape: no content resolved for %q", s.Ref)
	}
	srcWin := coords.Rect{X: s.layout.CropX, Y: s.layout.CropY, W: s.layout.CropW, H: s.layout.CropH}
	return page.DrawImage(s.img, content, srcWin)
}

// fetchFixedPage returns the source page and a release function. Path-keyed
// documents come from the pass cache and are released at pass teardown;
// inline documents are reopened and closed per use.
func (s *ImageShape) fetchFixedPage(pass *Pass) (*fixedpage.Page, func(), error) {
	if s.inline != nil {
		doc, err := fixedpage.OpenBytes(s.inline)
		if err != nil {
			return nil, nil, err
		}
		page, err := doc.Page(s.ref.Page)
		if err != nil {
			doc.Close()
			return nil, nil, err
		}
		return page, func() { doc.Close() }, nil
	}

	doc, err := pass.Cache.GetOrOpen(s.layout.Path)
	if err != nil {
		return nil, nil, err
	}
	page, err := doc.Page(s.ref.Page)
	if err != nil {
		return nil, nil, err
	}
	return page, func() {}, nil
}
