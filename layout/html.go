package layout

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/wudi/layoutkit/shape"
)

// RenderHTML renders an HTML string into the output document. Supported
// elements: h1-h6, p, li and img. Width and height attributes on img are
// CSS pixels and are converted to points at 96 DPI.
func (e *Engine) RenderHTML(source string) error {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return err
	}
	return e.walkHTML(doc)
}

func (e *Engine) walkHTML(n *html.Node) error {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			e.AddHeading(int(n.Data[1]-'0'), extractText(n))
			return nil
		case atom.P:
			if img := singleImageChild(n); img != nil {
				return e.renderHTMLImage(img)
			}
			e.AddParagraph(extractText(n))
			return nil
		case atom.Li:
			e.AddParagraph("• " + extractText(n))
			return nil
		case atom.Img:
			return e.renderHTMLImage(n)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := e.walkHTML(c); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) renderHTMLImage(n *html.Node) error {
	var src, alt string
	var width, height string
	for _, a := range n.Attr {
		switch a.Key {
		case "src":
			src = a.Val
		case "alt":
			alt = a.Val
		case "width":
			width = a.Val
		case "height":
			height = a.Val
		}
	}
	if src == "" {
		return nil
	}
	sh := imageShapeFromRef(src, alt)
	if v, err := strconv.ParseFloat(width, 64); err == nil {
		sh.Sizing.Width.Set(v * 72 / 96)
	}
	if v, err := strconv.ParseFloat(height, 64); err == nil {
		sh.Sizing.Height.Set(v * 72 / 96)
	}
	return e.AddImage(sh)
}

// singleImageChild returns the img element if it is the only meaningful
// child of n, else nil.
func singleImageChild(n *html.Node) *html.Node {
	var img *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.Img:
			if img != nil {
				return nil
			}
			img = c
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			// ignore whitespace
		default:
			return nil
		}
	}
	return img
}

func extractText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// imageShapeFromRef builds an image shape for a front-end content reference.
func imageShapeFromRef(ref, name string) *shape.ImageShape {
	if name == "" {
		name = ref
	}
	return &shape.ImageShape{Name: name, Ref: ref}
}
