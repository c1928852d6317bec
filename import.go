package tplpack

import (
	"fmt"
	"strings"

	"github.com/rvalk/go-tplpack/internal/cssutil"
	"github.com/rvalk/go-tplpack/internal/htmlutil"
)

// The importer turns a template tree into live-tree markup. Every
// fragment carries a data-node-type marker alongside its visual
// presentation, so a later export recovers the identical template node.
// The dialect, shared with the exporter:
//
//	data-page        page wrapper (live surface only, never exported)
//	data-node-type   semantic type tag
//	data-asset-name  logical asset name on embedded images
//	data-src         retained reference on placeholder images
//	data-format      page number display format
//	data-binding     dynamic text binding
//	data-striped     table zebra flag
//
// All presentation travels in inline style attributes in px units.

// zebraRow is the background applied to odd body rows of striped tables.
var zebraRow = RGB(248.0/255, 250.0/255, 252.0/255)

// ImportResult is a fresh live tree plus non-fatal degradations
// encountered while building it.
type ImportResult struct {
	// Markup is the page-wrapper fragment for the live editing surface.
	Markup string

	// Warnings collects subtree-local issues: *UnsupportedTypeError for
	// unknown tags, ErrAssetUnresolved wraps for placeholder images.
	// The tree is complete regardless.
	Warnings []error
}

// Import converts a template tree into live-tree markup rooted in a
// page wrapper sized and padded per settings. assets maps logical asset
// names to resolved, embeddable references (data: URLs or addressable
// URLs); images that resolve to nothing degrade to placeholders that
// retain the original reference.
func Import(root *Node, settings *PageSettings, assets map[string]string) (*ImportResult, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	imp := &importer{assets: assets}
	var b strings.Builder

	width, height := settings.Dimensions()
	m := settings.EffectiveMargins()
	style := (&cssutil.Style{}).
		SetPx("width", width).
		SetPx("min-height", height).
		Set("padding", fmt.Sprintf("%s %s %s %s",
			cssutil.Px(m.Top), cssutil.Px(m.Right), cssutil.Px(m.Bottom), cssutil.Px(m.Left))).
		Set("position", "relative").
		Set("box-sizing", "border-box")
	if settings != nil && settings.Background != nil {
		style.Set("background-color", settings.Background.CSS())
	}

	b.WriteString(`<div data-page="true" style="` + htmlutil.EscapeAttr(style.String()) + `">`)
	imp.writeNode(&b, root)
	b.WriteString(`</div>`)

	return &ImportResult{Markup: b.String(), Warnings: imp.warnings}, nil
}

type importer struct {
	assets   map[string]string
	warnings []error
}

// writeNode emits the markup fragment for one node. Unknown variants
// degrade to nothing; siblings are unaffected.
func (imp *importer) writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch n.Type {
	case NodeColumn, NodeRow:
		imp.writeGroup(b, n)
	case NodeHeader, NodeFooter:
		imp.writeHeaderFooter(b, n)
	case NodeContainer:
		imp.writeContainer(b, n)
	case NodeText:
		imp.writeText(b, n)
	case NodeImage:
		imp.writeImage(b, n)
	case NodeTable:
		imp.writeTable(b, n)
	case NodeRectangle, NodeCircle:
		imp.writeShape(b, n)
	case NodeLine:
		style := (&cssutil.Style{}).
			SetPx("width", n.Width).
			SetPx("height", n.Thickness).
			Set("background-color", n.Color.CSS())
		openDiv(b, NodeLine, style)
		b.WriteString("</div>")
	case NodePageNumber:
		style := (&cssutil.Style{}).
			SetPx("font-size", n.Size).
			Set("text-align", n.Align)
		b.WriteString(`<div data-node-type="PageNumber" data-format="` +
			htmlutil.EscapeAttr(n.Format) + `" style="` +
			htmlutil.EscapeAttr(style.String()) + `">`)
		b.WriteString(htmlutil.EscapeText(n.Format))
		b.WriteString("</div>")
	case NodeDynamicText:
		// Literal placeholder; data substitution happens at render time.
		style := (&cssutil.Style{}).SetPx("font-size", n.Size)
		b.WriteString(`<div data-node-type="DynamicText" data-binding="` +
			htmlutil.EscapeAttr(n.Binding) + `" style="` +
			htmlutil.EscapeAttr(style.String()) + `">`)
		b.WriteString(htmlutil.EscapeText("{{" + n.Binding + "}}"))
		b.WriteString("</div>")
	case NodeHyperlink:
		style := (&cssutil.Style{}).SetPx("font-size", n.Size)
		b.WriteString(`<a data-node-type="Hyperlink" href="` +
			htmlutil.EscapeAttr(n.Target) + `" style="` +
			htmlutil.EscapeAttr(style.String()) + `">`)
		b.WriteString(htmlutil.EscapeText(n.Content))
		b.WriteString("</a>")
	case NodePageBreak:
		// Emitted only when explicitly authored; export drops it again.
		b.WriteString(`<div data-node-type="PageBreak" style="page-break-after: always"></div>`)
	default:
		imp.warnings = append(imp.warnings, &UnsupportedTypeError{Type: string(n.Type)})
	}
}

func (imp *importer) writeGroup(b *strings.Builder, n *Node) {
	dir := "column"
	if n.Type == NodeRow {
		dir = "row"
	}
	style := (&cssutil.Style{}).
		Set("display", "flex").
		Set("flex-direction", dir)
	if n.Spacing != 0 {
		style.SetPx("gap", n.Spacing)
	}
	openDiv(b, n.Type, style)
	for _, c := range n.Children {
		imp.writeNode(b, c)
	}
	b.WriteString("</div>")
}

func (imp *importer) writeHeaderFooter(b *strings.Builder, n *Node) {
	tag := "header"
	if n.Type == NodeFooter {
		tag = "footer"
	}
	b.WriteString(`<` + tag + ` data-node-type="` + string(n.Type) + `">`)
	for _, c := range n.Children {
		imp.writeNode(b, c)
	}
	b.WriteString(`</` + tag + `>`)
}

func (imp *importer) writeContainer(b *strings.Builder, n *Node) {
	style := &cssutil.Style{}
	if n.Padding != 0 {
		style.SetPx("padding", n.Padding)
	}
	if n.BorderWidth != 0 {
		style.SetPx("border-width", n.BorderWidth)
		style.Set("border-style", "solid")
	}
	if n.BorderColor != nil {
		style.Set("border-color", n.BorderColor.CSS())
	}
	openDiv(b, NodeContainer, style)
	imp.writeNode(b, n.Child)
	b.WriteString("</div>")
}

func (imp *importer) writeText(b *strings.Builder, n *Node) {
	style := (&cssutil.Style{}).
		SetPx("font-size", n.Size).
		Set("color", n.Color.CSS()).
		Set("font-family", n.FontFamily).
		Set("line-height", cssutil.Num(n.LineHeight)).
		Set("text-align", n.Align)
	if n.Background != nil {
		style.Set("background-color", n.Background.CSS())
	}
	if n.MaxWidth != 0 {
		style.SetPx("max-width", n.MaxWidth)
	}
	if n.Bold {
		style.Set("font-weight", "bold")
	}
	if n.Italic {
		style.Set("font-style", "italic")
	}
	if n.LetterSpacing != 0 {
		style.SetPx("letter-spacing", n.LetterSpacing)
	}
	if n.Opacity != 1 {
		style.Set("opacity", cssutil.Num(n.Opacity))
	}
	if n.Rotation != 0 {
		style.Set("transform", cssutil.Rotation(n.Rotation))
	}
	if n.Padding != 0 {
		style.SetPx("padding", n.Padding)
	}
	setBorder(style, n.BorderWidth, n.BorderColor)
	openDiv(b, NodeText, style)
	b.WriteString(htmlutil.EscapeText(n.Content))
	b.WriteString("</div>")
}

// writeImage embeds the image when its reference resolves to an
// embeddable form, and otherwise renders a placeholder that keeps the
// original reference so export does not lose it.
func (imp *importer) writeImage(b *strings.Builder, n *Node) {
	style := (&cssutil.Style{}).
		SetPx("width", n.Width).
		SetPx("height", n.Height)
	if n.Opacity != 1 {
		style.Set("opacity", cssutil.Num(n.Opacity))
	}
	if n.Rotation != 0 {
		style.Set("transform", cssutil.Rotation(n.Rotation))
	}
	setBorder(style, n.BorderWidth, n.BorderColor)

	if isEmbeddable(n.Src) {
		b.WriteString(`<img data-node-type="Image" src="` + htmlutil.EscapeAttr(n.Src) +
			`" style="` + htmlutil.EscapeAttr(style.String()) + `"/>`)
		return
	}
	if resolved, ok := imp.assets[n.Src]; ok && isEmbeddable(resolved) {
		b.WriteString(`<img data-node-type="Image" data-asset-name="` +
			htmlutil.EscapeAttr(n.Src) + `" src="` + htmlutil.EscapeAttr(resolved) +
			`" style="` + htmlutil.EscapeAttr(style.String()) + `"/>`)
		return
	}

	// Unresolved: placeholder fragment retaining the reference. The
	// frame is an outline so it never collides with an authored border.
	imp.warnings = append(imp.warnings, fmt.Errorf("%w: %q", ErrAssetUnresolved, n.Src))
	style.Set("display", "flex").
		Set("align-items", "center").
		Set("justify-content", "center").
		Set("outline", "1px dashed "+DefaultTableBorder.CSS())
	b.WriteString(`<div data-node-type="Image" data-src="` + htmlutil.EscapeAttr(n.Src) +
		`" style="` + htmlutil.EscapeAttr(style.String()) + `">`)
	b.WriteString(htmlutil.EscapeText(n.Src))
	b.WriteString("</div>")
}

func (imp *importer) writeTable(b *strings.Builder, n *Node) {
	s := n.TableStyle
	tableStyle := (&cssutil.Style{}).
		Set("border-collapse", "collapse").
		SetPx("font-size", s.FontSize).
		Set("border", "1px solid "+s.BorderColor.CSS())

	b.WriteString(`<table data-node-type="Table"`)
	if s.Striped {
		b.WriteString(` data-striped="true"`)
	}
	b.WriteString(` style="` + htmlutil.EscapeAttr(tableStyle.String()) + `">`)

	b.WriteString("<thead><tr>")
	for _, col := range n.Columns {
		th := (&cssutil.Style{}).
			Set("background-color", s.HeaderBackground.CSS()).
			Set("color", s.HeaderColor.CSS()).
			SetPx("padding", s.CellPadding).
			Set("border", "1px solid "+s.BorderColor.CSS()).
			Set("text-align", AlignLeft)
		if col.Width != nil {
			th.SetPx("width", *col.Width)
		}
		b.WriteString(`<th style="` + htmlutil.EscapeAttr(th.String()) + `">`)
		b.WriteString(htmlutil.EscapeText(col.Header))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	for i, row := range n.Rows {
		// Zebra on every odd 0-based index when striping is enabled.
		if s.Striped && i%2 == 1 {
			b.WriteString(`<tr style="` +
				htmlutil.EscapeAttr("background-color: "+zebraRow.CSS()) + `">`)
		} else {
			b.WriteString("<tr>")
		}
		for _, cell := range row {
			td := (&cssutil.Style{}).
				SetPx("padding", s.CellPadding).
				Set("border", "1px solid "+s.BorderColor.CSS())
			b.WriteString(`<td style="` + htmlutil.EscapeAttr(td.String()) + `">`)
			b.WriteString(htmlutil.EscapeText(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
}

func (imp *importer) writeShape(b *strings.Builder, n *Node) {
	style := (&cssutil.Style{}).
		SetPx("width", n.Width).
		SetPx("height", n.Height).
		Set("background-color", n.Fill.CSS())
	if n.StrokeWidth != 0 {
		style.Set("border", cssutil.Px(n.StrokeWidth)+" solid "+n.Stroke.CSS())
	} else if !n.Stroke.Equal(DefaultTextColor) {
		// A zero-width stroke is invisible but its color is authored
		// state; carry it so export recovers it.
		style.Set("border-color", n.Stroke.CSS())
	}
	if n.Type == NodeCircle {
		style.Set("border-radius", "50%")
	} else if n.CornerRadius != 0 {
		style.SetPx("border-radius", n.CornerRadius)
	}
	if n.Opacity != 1 {
		style.Set("opacity", cssutil.Num(n.Opacity))
	}
	if n.Rotation != 0 {
		style.Set("transform", cssutil.Rotation(n.Rotation))
	}
	openDiv(b, n.Type, style)
	b.WriteString("</div>")
}

// openDiv writes an opening div with the type marker and style.
func openDiv(b *strings.Builder, t NodeType, style *cssutil.Style) {
	b.WriteString(`<div data-node-type="` + string(t) + `"`)
	if s := style.String(); s != "" {
		b.WriteString(` style="` + htmlutil.EscapeAttr(s) + `"`)
	}
	b.WriteString(`>`)
}

// setBorder emits a border for Text and Image nodes. A set width
// becomes a solid shorthand, falling back to the default text color
// when no color is set; a color with zero width travels as a lone
// border-color longhand so export recovers it.
func setBorder(style *cssutil.Style, width float64, color *Color) {
	if width != 0 {
		c := DefaultTextColor
		if color != nil {
			c = *color
		}
		style.Set("border", cssutil.Px(width)+" solid "+c.CSS())
		return
	}
	if color != nil {
		style.Set("border-color", color.CSS())
	}
}

// isEmbeddable reports whether a reference can be placed directly into
// an img src: inline data URLs and addressable URLs qualify; bare
// logical names do not.
func isEmbeddable(ref string) bool {
	return strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://")
}
