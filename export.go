package tplpack

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/rvalk/go-tplpack/internal/cssutil"
	"github.com/rvalk/go-tplpack/internal/htmlutil"
)

// ExportResult is a freshly built template tree plus the page settings
// inferred from the live tree's page wrapper.
type ExportResult struct {
	Root     *Node
	Settings *PageSettings

	// Warnings collects subtree-local degradations (unsupported type
	// tags). Siblings of a degraded subtree convert normally.
	Warnings []error
}

// Export walks a live tree and produces a template tree plus inferred
// page settings. It is a pure read: the live tree is never mutated, and
// the returned tree has no identity beyond this call.
//
// The synthetic page wrapper (data-page) never appears in the produced
// tree; when no wrapper is present, margins default to 40 points per
// side and all top-level children are exported directly.
func Export(doc *html.Node) (*ExportResult, error) {
	if doc == nil {
		return nil, ErrNilRoot
	}

	ex := &exporter{}
	settings := &PageSettings{}
	scope := doc

	if wrapper := findPageWrapper(doc); wrapper != nil {
		settings = settingsFromWrapper(wrapper)
		scope = wrapper
	} else {
		m := UniformMargins(DefaultMargin)
		settings.Margins = &m
	}

	var converted []*Node
	for _, el := range htmlutil.ChildElements(scope) {
		if n := ex.convert(el); n != nil {
			converted = append(converted, n)
		}
	}

	root := groupConverted(converted)
	return &ExportResult{Root: root, Settings: settings, Warnings: ex.warnings}, nil
}

// ExportHTML parses markup and exports it. Convenience for callers that
// hold the live tree as serialized markup rather than a parsed handle.
func ExportHTML(markup string) (*ExportResult, error) {
	body, err := htmlutil.Parse(markup)
	if err != nil {
		return nil, err
	}
	return Export(body)
}

// groupConverted applies the untyped-wrapper rule at the top level:
// one result passes through, several are grouped in a Column in
// document order, none yields an empty Column.
func groupConverted(nodes []*Node) *Node {
	switch len(nodes) {
	case 0:
		return NewColumn()
	case 1:
		return nodes[0]
	default:
		return NewColumn(nodes...)
	}
}

type exporter struct {
	warnings []error
}

// convert maps one live element to a template node, or nil when the
// element contributes nothing (page breaks, empty wrappers, unsupported
// tags).
func (ex *exporter) convert(n *html.Node) *Node {
	if n.Type != html.ElementNode {
		return nil
	}

	tag := htmlutil.Attr(n, "data-node-type")
	if tag == "" {
		// Untyped editor grouping: a single typed descendant collapses
		// transparently; several are grouped as a Column.
		var converted []*Node
		for _, el := range htmlutil.ChildElements(n) {
			if c := ex.convert(el); c != nil {
				converted = append(converted, c)
			}
		}
		switch len(converted) {
		case 0:
			return nil
		case 1:
			return converted[0]
		default:
			return NewColumn(converted...)
		}
	}

	props := cssutil.Parse(htmlutil.Attr(n, "style"))

	switch NodeType(tag) {
	case NodeColumn, NodeRow:
		out := &Node{Type: NodeType(tag)}
		out.Spacing, _ = cssutil.ParsePx(props["gap"])
		out.Children = ex.convertChildren(n)
		return out
	case NodeHeader, NodeFooter:
		return &Node{Type: NodeType(tag), Children: ex.convertChildren(n)}
	case NodeContainer:
		out := NewContainer(nil)
		out.Padding = pxProp(props, "padding", 0)
		out.BorderWidth, out.BorderColor = borderOf(props)
		out.Child = groupContainerChild(ex.convertChildren(n))
		return out
	case NodeText:
		return ex.convertText(n, props)
	case NodeImage:
		return ex.convertImage(n, props)
	case NodeTable:
		return ex.convertTable(n, props)
	case NodeRectangle, NodeCircle:
		return ex.convertShape(n, props)
	case NodeLine:
		out := NewLine()
		out.Width = pxProp(props, "width", DefaultLineWidth)
		out.Thickness = pxProp(props, "height", DefaultLineThickness)
		out.Color = colorProp(props, "background-color", DefaultTextColor)
		return out
	case NodePageNumber:
		out := NewPageNumber()
		if f := htmlutil.Attr(n, "data-format"); f != "" {
			out.Format = f
		}
		out.Size = pxProp(props, "font-size", DefaultPageNumberSize)
		if a := props["text-align"]; a != "" {
			out.Align = a
		}
		return out
	case NodeDynamicText:
		out := NewDynamicText(htmlutil.Attr(n, "data-binding"))
		out.Size = pxProp(props, "font-size", DefaultTextSize)
		return out
	case NodeHyperlink:
		out := NewHyperlink(htmlutil.TextContent(n), htmlutil.Attr(n, "href"))
		out.Size = pxProp(props, "font-size", DefaultTextSize)
		return out
	case NodePageBreak:
		// Page breaks never survive an export.
		return nil
	}

	ex.warnings = append(ex.warnings, &UnsupportedTypeError{Type: tag})
	return nil
}

func (ex *exporter) convertChildren(n *html.Node) []*Node {
	var out []*Node
	for _, el := range htmlutil.ChildElements(n) {
		if c := ex.convert(el); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// groupContainerChild reduces a container's converted children to its
// single child slot.
func groupContainerChild(nodes []*Node) *Node {
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	default:
		return NewColumn(nodes...)
	}
}

func (ex *exporter) convertText(n *html.Node, props map[string]string) *Node {
	out := NewText(htmlutil.TextContent(n))
	out.Size = pxProp(props, "font-size", DefaultTextSize)
	out.Color = colorProp(props, "color", DefaultTextColor)
	out.Background = colorPropPtr(props, "background-color")
	out.MaxWidth = pxProp(props, "max-width", 0)
	out.Bold = isBoldWeight(props["font-weight"])
	out.Italic = props["font-style"] == "italic"
	if a := props["text-align"]; a != "" {
		out.Align = a
	}
	if f := props["font-family"]; f != "" {
		out.FontFamily = f
	}
	if lh, ok := cssutil.ParseFloat(props["line-height"]); ok {
		out.LineHeight = lh
	}
	out.LetterSpacing = pxProp(props, "letter-spacing", 0)
	out.Opacity = floatProp(props, "opacity", 1)
	out.Rotation, _ = cssutil.ParseRotation(props["transform"])
	out.Padding = pxProp(props, "padding", 0)
	out.BorderWidth, out.BorderColor = borderOf(props)
	return out
}

// convertImage recovers the original reference wherever it was stashed:
// data-asset-name on embedded images, data-src on placeholders, and the
// src attribute on directly addressable images. The reference is never
// silently dropped.
func (ex *exporter) convertImage(n *html.Node, props map[string]string) *Node {
	src := htmlutil.Attr(n, "data-asset-name")
	if src == "" {
		src = htmlutil.Attr(n, "data-src")
	}
	if src == "" {
		src = htmlutil.Attr(n, "src")
	}
	out := NewImage(src)
	out.Width = pxProp(props, "width", DefaultImageSize)
	out.Height = pxProp(props, "height", DefaultImageSize)
	out.Opacity = floatProp(props, "opacity", 1)
	out.Rotation, _ = cssutil.ParseRotation(props["transform"])
	out.BorderWidth, out.BorderColor = borderOf(props)
	return out
}

// convertTable reads the realized header and body cells rather than
// declared intent: column widths may be computed, so the concrete th
// styles are the source of truth. A table missing its header row
// degrades to an empty, defaulted table.
func (ex *exporter) convertTable(n *html.Node, props map[string]string) *Node {
	out := NewTable(nil, nil)
	out.TableStyle.FontSize = pxProp(props, "font-size", DefaultTableFontSize)
	if _, c := borderOf(props); c != nil {
		out.TableStyle.BorderColor = *c
	}
	out.TableStyle.Striped = htmlutil.Attr(n, "data-striped") == "true"

	thead := htmlutil.FindElement(n, "thead")
	if thead != nil {
		if headRow := htmlutil.FindElement(thead, "tr"); headRow != nil {
			for i, th := range htmlutil.ChildElements(headRow) {
				if th.Data != "th" && th.Data != "td" {
					continue
				}
				thProps := cssutil.Parse(htmlutil.Attr(th, "style"))
				col := TableColumn{Header: htmlutil.TextContent(th)}
				if w, ok := cssutil.ParsePx(thProps["width"]); ok {
					col.Width = &w
				}
				out.Columns = append(out.Columns, col)
				if i == 0 {
					out.TableStyle.HeaderBackground = colorProp(thProps, "background-color", DefaultTableHeaderBG)
					out.TableStyle.HeaderColor = colorProp(thProps, "color", DefaultTextColor)
					out.TableStyle.CellPadding = pxProp(thProps, "padding", DefaultTableCellPad)
				}
			}
		}
	}

	if tbody := htmlutil.FindElement(n, "tbody"); tbody != nil {
		for _, tr := range htmlutil.ChildElements(tbody) {
			if tr.Data != "tr" {
				continue
			}
			var row []string
			for _, td := range htmlutil.ChildElements(tr) {
				if td.Data == "td" || td.Data == "th" {
					row = append(row, htmlutil.TextContent(td))
				}
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func (ex *exporter) convertShape(n *html.Node, props map[string]string) *Node {
	out := NewRectangle()
	out.Type = NodeType(htmlutil.Attr(n, "data-node-type"))
	out.Width = pxProp(props, "width", DefaultShapeSize)
	out.Height = pxProp(props, "height", DefaultShapeSize)
	out.Fill = colorProp(props, "background-color", DefaultShapeFill)
	w, c := borderOf(props)
	out.StrokeWidth = w
	if c != nil {
		out.Stroke = *c
	}
	if out.Type == NodeRectangle {
		// "50%" is the circle marker, not a radius.
		out.CornerRadius = pxProp(props, "border-radius", 0)
	} else {
		out.CornerRadius = 0
	}
	out.Opacity = floatProp(props, "opacity", 1)
	out.Rotation, _ = cssutil.ParseRotation(props["transform"])
	return out
}

// findPageWrapper locates the synthetic page wrapper, if any.
func findPageWrapper(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && htmlutil.HasAttr(n, "data-page") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findPageWrapper(c); found != nil {
			return found
		}
	}
	return nil
}

// settingsFromWrapper infers page settings from the wrapper's geometry:
// padding becomes margins, known point dimensions become a size class,
// anything else stays custom.
func settingsFromWrapper(wrapper *html.Node) *PageSettings {
	props := cssutil.Parse(htmlutil.Attr(wrapper, "style"))
	settings := &PageSettings{}

	m := parsePaddingShorthand(props["padding"])
	settings.Margins = &m

	w, wok := cssutil.ParsePx(props["width"])
	h, hok := cssutil.ParsePx(props["min-height"])
	if !hok {
		h, hok = cssutil.ParsePx(props["height"])
	}
	if wok && hok {
		if size, orientation, ok := matchSizeClass(w, h); ok {
			settings.Size = size
			settings.Orientation = orientation
		} else {
			settings.Width = w
			settings.Height = h
		}
	}
	settings.Background = colorPropPtr(props, "background-color")
	return settings
}

// parsePaddingShorthand reads 1- or 4-value padding into margins,
// defaulting every side to 40 points.
func parsePaddingShorthand(s string) Margins {
	fields := strings.Fields(s)
	vals := make([]float64, 0, 4)
	for _, f := range fields {
		if v, ok := cssutil.ParsePx(f); ok {
			vals = append(vals, v)
		}
	}
	switch len(vals) {
	case 1:
		return UniformMargins(vals[0])
	case 4:
		return Margins{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
	}
	return UniformMargins(DefaultMargin)
}

// matchSizeClass maps point dimensions back to a size class and
// orientation, within 1-unit rounding.
func matchSizeClass(w, h float64) (size, orientation string, ok bool) {
	for name, dims := range pageDimensions {
		if approx(w, dims[0]) && approx(h, dims[1]) {
			return name, OrientationPortrait, true
		}
		if approx(w, dims[1]) && approx(h, dims[0]) {
			return name, OrientationLandscape, true
		}
	}
	return "", "", false
}

// Style property readers with documented defaults.

func pxProp(props map[string]string, key string, def float64) float64 {
	if v, ok := cssutil.ParsePx(props[key]); ok {
		return v
	}
	return def
}

func floatProp(props map[string]string, key string, def float64) float64 {
	if v, ok := cssutil.ParseFloat(props[key]); ok {
		return v
	}
	return def
}

func colorProp(props map[string]string, key string, def Color) Color {
	if c, ok := ParseColor(props[key]); ok {
		return c
	}
	return def
}

func colorPropPtr(props map[string]string, key string) *Color {
	if c, ok := ParseColor(props[key]); ok {
		return &c
	}
	return nil
}

// borderOf reads border width and color from the longhand
// border-width/border-color pair, the border shorthand, or a lone
// border-color marking a zero-width authored color. Dashed borders are
// synthetic placeholder frames, not authored borders, and read as none.
func borderOf(props map[string]string) (float64, *Color) {
	if v, ok := cssutil.ParsePx(props["border-width"]); ok {
		return v, colorPropPtr(props, "border-color")
	}
	if shorthand, ok := props["border"]; ok && !strings.Contains(shorthand, "dashed") {
		return parseBorderShorthand(shorthand)
	}
	return 0, colorPropPtr(props, "border-color")
}

// parseBorderShorthand splits "2px solid rgba(...)" into width and
// color. The color is everything from the first color-looking token.
func parseBorderShorthand(s string) (float64, *Color) {
	var width float64
	if fields := strings.Fields(s); len(fields) > 0 {
		if v, ok := cssutil.ParsePx(fields[0]); ok {
			width = v
		}
	}
	for _, marker := range []string{"rgba(", "rgb(", "#"} {
		if idx := strings.Index(s, marker); idx != -1 {
			if c, ok := ParseColor(s[idx:]); ok {
				return width, &c
			}
		}
	}
	return width, nil
}

// isBoldWeight treats the bold keyword and weights of 600+ as bold.
func isBoldWeight(v string) bool {
	if v == "bold" || v == "bolder" {
		return true
	}
	if w, ok := cssutil.ParseFloat(v); ok {
		return w >= 600
	}
	return false
}
