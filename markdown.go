package tplpack

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// headingSizes maps Markdown heading levels to text sizes in points.
var headingSizes = map[int]float64{
	1: 24,
	2: 20,
	3: 17,
	4: 15,
	5: 13,
	6: 12,
}

// monoFontFamily is used for code blocks converted from Markdown.
const monoFontFamily = "Courier"

// FromMarkdown converts a Markdown document to a template tree rooted
// at a Column. Headings become bold sized text, GFM tables become
// Table nodes, images become Image nodes and thematic breaks become
// Line nodes. The result can be packed or imported like any other
// tree.
func FromMarkdown(src []byte) (*Node, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks
		),
	)

	doc := md.Parser().Parse(text.NewReader(src))

	c := &mdConverter{src: src}
	root := NewColumn()
	root.Spacing = 12
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if n := c.convertBlock(child); n != nil {
			root.Children = append(root.Children, n)
		}
	}
	return root, nil
}

// mdConverter holds source bytes during the AST walk.
type mdConverter struct {
	src []byte
}

// convertBlock converts one top-level Markdown block. Unhandled block
// kinds degrade to their plain text content rather than being dropped.
func (c *mdConverter) convertBlock(n ast.Node) *Node {
	switch b := n.(type) {
	case *ast.Heading:
		t := NewText(c.inlineText(b))
		t.Bold = true
		if size, ok := headingSizes[b.Level]; ok {
			t.Size = size
		}
		return t

	case *ast.Paragraph:
		// A paragraph holding a single image becomes an Image node.
		if img := singleImage(b); img != nil {
			return c.convertImage(img)
		}
		if link := singleLink(b); link != nil {
			return c.convertLink(link)
		}
		return NewText(c.inlineText(b))

	case *ast.ThematicBreak:
		return NewLine()

	case *ast.FencedCodeBlock:
		t := NewText(c.blockLines(b))
		t.FontFamily = monoFontFamily
		t.Size = 10
		return t

	case *ast.CodeBlock:
		t := NewText(c.blockLines(b))
		t.FontFamily = monoFontFamily
		t.Size = 10
		return t

	case *ast.Blockquote:
		inner := make([]*Node, 0, b.ChildCount())
		for child := b.FirstChild(); child != nil; child = child.NextSibling() {
			if cn := c.convertBlock(child); cn != nil {
				if cn.Type == NodeText {
					cn.Italic = true
				}
				inner = append(inner, cn)
			}
		}
		quote := NewContainer(groupConverted(inner))
		quote.Padding = 8
		quote.BorderWidth = 2
		return quote

	case *ast.List:
		return c.convertList(b)

	case *east.Table:
		return c.convertTable(b)

	default:
		if s := c.inlineText(n); s != "" {
			return NewText(s)
		}
		return nil
	}
}

// convertList flattens a Markdown list into a Column of bulleted or
// numbered text lines. Nested lists indent by repeating the marker.
func (c *mdConverter) convertList(list *ast.List) *Node {
	items := make([]*Node, 0, list.ChildCount())
	index := list.Start
	if index == 0 {
		index = 1
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = strconv.Itoa(index) + ". "
			index++
		}
		items = append(items, NewText(marker+c.inlineText(item)))
	}
	col := NewColumn(items...)
	col.Spacing = 4
	return col
}

// convertTable maps a GFM table to a Table node. Header cells come
// from the table header row; alignment and widths stay at defaults.
func (c *mdConverter) convertTable(table *east.Table) *Node {
	var columns []TableColumn
	var rows [][]string

	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				columns = append(columns, TableColumn{Header: c.inlineText(cell)})
			}
		case *east.TableRow:
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, c.inlineText(cell))
			}
			rows = append(rows, cells)
		}
	}
	return NewTable(columns, rows)
}

func (c *mdConverter) convertImage(img *ast.Image) *Node {
	node := NewImage(string(img.Destination))
	return node
}

func (c *mdConverter) convertLink(link *ast.Link) *Node {
	return NewHyperlink(c.inlineText(link), string(link.Destination))
}

// singleImage returns the image when the paragraph contains exactly
// one inline child and it is an image.
func singleImage(p *ast.Paragraph) *ast.Image {
	if p.ChildCount() != 1 {
		return nil
	}
	img, _ := p.FirstChild().(*ast.Image)
	return img
}

// singleLink returns the link when the paragraph contains exactly one
// inline child and it is a link.
func singleLink(p *ast.Paragraph) *ast.Link {
	if p.ChildCount() != 1 {
		return nil
	}
	link, _ := p.FirstChild().(*ast.Link)
	return link
}

// inlineText collects the plain text content of a node's inline
// children, with soft line breaks flattened to spaces.
func (c *mdConverter) inlineText(n ast.Node) string {
	var sb strings.Builder
	c.collectText(n, &sb)
	return strings.TrimSpace(sb.String())
}

func (c *mdConverter) collectText(n ast.Node, sb *strings.Builder) {
	switch t := n.(type) {
	case *ast.Text:
		sb.Write(t.Segment.Value(c.src))
		if t.SoftLineBreak() || t.HardLineBreak() {
			sb.WriteByte(' ')
		}
		return
	case *ast.CodeSpan:
		for child := t.FirstChild(); child != nil; child = child.NextSibling() {
			if txt, ok := child.(*ast.Text); ok {
				sb.Write(txt.Segment.Value(c.src))
			}
		}
		return
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.collectText(child, sb)
	}
}

// blockLines joins the raw lines of a code block.
func (c *mdConverter) blockLines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.src))
	}
	return strings.TrimRight(sb.String(), "\n")
}
