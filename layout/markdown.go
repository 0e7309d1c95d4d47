package layout

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// RenderMarkdown renders a markdown string into the output document using
// goldmark. Image nodes become embedded content shapes; a missing or broken
// image renders as a diagnostic placeholder without failing the document.
func (e *Engine) RenderMarkdown(source string) error {
	md := goldmark.New()
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))
	return e.walkMarkdown(doc, src)
}

func (e *Engine) walkMarkdown(node ast.Node, source []byte) error {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			e.AddHeading(n.Level, string(n.Text(source)))
		case *ast.Paragraph:
			if err := e.renderMarkdownParagraph(n, source); err != nil {
				return err
			}
		case *ast.List:
			if err := e.walkMarkdown(n, source); err != nil {
				return err
			}
		case *ast.ListItem:
			e.AddParagraph("• " + string(n.Text(source)))
		}
	}
	return nil
}

// renderMarkdownParagraph renders a paragraph block. A paragraph whose only
// child is an image becomes an image shape; otherwise the paragraph's text
// content is flowed.
func (e *Engine) renderMarkdownParagraph(n *ast.Paragraph, source []byte) error {
	if img, ok := n.FirstChild().(*ast.Image); ok && n.ChildCount() == 1 {
		return e.AddImage(imageShapeFromRef(string(img.Destination), string(img.Text(source))))
	}
	e.AddParagraph(string(n.Text(source)))
	return nil
}
