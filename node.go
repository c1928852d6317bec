package tplpack

import (
	"encoding/json"
	"fmt"
	"math"
)

// NodeType identifies a template node variant. The set is closed: every
// operation over the tree (export, import, asset scan) switches over it
// exhaustively and treats anything else as unsupported.
type NodeType string

// Template node variants.
const (
	NodeColumn      NodeType = "Column"
	NodeRow         NodeType = "Row"
	NodeContainer   NodeType = "Container"
	NodeText        NodeType = "Text"
	NodeImage       NodeType = "Image"
	NodeTable       NodeType = "Table"
	NodeRectangle   NodeType = "Rectangle"
	NodeCircle      NodeType = "Circle"
	NodeLine        NodeType = "Line"
	NodeHeader      NodeType = "Header"
	NodeFooter      NodeType = "Footer"
	NodePageNumber  NodeType = "PageNumber"
	NodeDynamicText NodeType = "DynamicText"
	NodeHyperlink   NodeType = "Hyperlink"
	NodePageBreak   NodeType = "PageBreak"
)

// Text alignment values.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Documented defaults applied whenever a field is absent on import or
// unset on export. All dimensions are in PDF points.
const (
	DefaultTextSize         = 12.0
	DefaultLineHeight       = 1.2
	DefaultFontFamily       = "Helvetica"
	DefaultImageSize        = 100.0
	DefaultShapeSize        = 100.0
	DefaultLineWidth        = 100.0
	DefaultLineThickness    = 1.0
	DefaultPageNumberSize   = 10.0
	DefaultPageNumberFormat = "Page {page} of {total}"
	DefaultTableFontSize    = 10.0
	DefaultTableCellPad     = 4.0
)

// Documented default colors.
var (
	// DefaultTextColor is slate-800 (#1e293b), the editor's text default.
	DefaultTextColor = RGB(30.0/255, 41.0/255, 59.0/255)

	// DefaultShapeFill is slate-200 (#e2e8f0).
	DefaultShapeFill = RGB(226.0/255, 232.0/255, 240.0/255)

	// DefaultTableHeaderBG is slate-100 (#f1f5f9).
	DefaultTableHeaderBG = RGB(241.0/255, 245.0/255, 249.0/255)

	// DefaultTableBorder is slate-200 (#e2e8f0).
	DefaultTableBorder = RGB(226.0/255, 232.0/255, 240.0/255)
)

// Node is one template tree node. Which fields are meaningful depends on
// Type; constructors populate the relevant ones with documented defaults
// and the JSON codec only reads/writes the fields of the tagged variant.
//
// A tree is finite and acyclic, produced fresh on every export and
// discarded on every import; nodes carry no identity beyond the tree
// they belong to.
type Node struct {
	Type NodeType

	// Column, Row, Header, Footer
	Children []*Node
	Spacing  float64

	// Container
	Child *Node

	// Text, DynamicText, PageNumber, Hyperlink
	Content       string
	Size          float64
	Color         Color
	Background    *Color
	MaxWidth      float64
	Bold          bool
	Italic        bool
	Align         string
	FontFamily    string
	LineHeight    float64
	LetterSpacing float64

	// Text, Image, Rectangle, Circle
	Opacity  float64
	Rotation float64

	// Container, Text
	Padding     float64
	BorderWidth float64
	BorderColor *Color

	// Image
	Src    string
	Width  float64
	Height float64

	// Table
	Columns    []TableColumn
	Rows       [][]string
	TableStyle TableStyle

	// Rectangle, Circle
	Fill         Color
	StrokeWidth  float64
	Stroke       Color
	CornerRadius float64

	// Line
	Thickness float64

	// PageNumber
	Format string

	// DynamicText
	Binding string

	// Hyperlink
	Target string
}

// TableColumn describes one table column: its header label and an
// optional authored width. Width is nil when the editor computed the
// column width instead of the author fixing it.
type TableColumn struct {
	Header string   `json:"header"`
	Width  *float64 `json:"width,omitempty"`
}

// TableStyle is the table's presentation block.
type TableStyle struct {
	HeaderBackground Color   `json:"headerBackground"`
	HeaderColor      Color   `json:"headerColor"`
	BorderColor      Color   `json:"borderColor"`
	CellPadding      float64 `json:"cellPadding"`
	FontSize         float64 `json:"fontSize"`
	Striped          bool    `json:"striped"`
}

// DefaultTableStyle returns the documented table style defaults.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		HeaderBackground: DefaultTableHeaderBG,
		HeaderColor:      DefaultTextColor,
		BorderColor:      DefaultTableBorder,
		CellPadding:      DefaultTableCellPad,
		FontSize:         DefaultTableFontSize,
	}
}

// NewColumn creates a vertical container with default spacing 0.
func NewColumn(children ...*Node) *Node {
	return &Node{Type: NodeColumn, Children: children}
}

// NewRow creates a horizontal container with default spacing 0.
func NewRow(children ...*Node) *Node {
	return &Node{Type: NodeRow, Children: children}
}

// NewContainer wraps exactly one child with default padding and border 0.
func NewContainer(child *Node) *Node {
	return &Node{Type: NodeContainer, Child: child}
}

// NewText creates a text node with the documented defaults.
func NewText(content string) *Node {
	return &Node{
		Type:       NodeText,
		Content:    content,
		Size:       DefaultTextSize,
		Color:      DefaultTextColor,
		Align:      AlignLeft,
		FontFamily: DefaultFontFamily,
		LineHeight: DefaultLineHeight,
		Opacity:    1,
	}
}

// NewImage creates an image node referencing src, which is either a
// logical asset name or an externally addressable source.
func NewImage(src string) *Node {
	return &Node{
		Type:    NodeImage,
		Src:     src,
		Width:   DefaultImageSize,
		Height:  DefaultImageSize,
		Opacity: 1,
	}
}

// NewTable creates a table node with the documented style defaults.
func NewTable(columns []TableColumn, rows [][]string) *Node {
	return &Node{
		Type:       NodeTable,
		Columns:    columns,
		Rows:       rows,
		TableStyle: DefaultTableStyle(),
	}
}

// NewRectangle creates a rectangle with the documented shape defaults.
func NewRectangle() *Node {
	return &Node{
		Type:    NodeRectangle,
		Width:   DefaultShapeSize,
		Height:  DefaultShapeSize,
		Fill:    DefaultShapeFill,
		Stroke:  DefaultTextColor,
		Opacity: 1,
	}
}

// NewCircle creates a circle with the documented shape defaults.
func NewCircle() *Node {
	n := NewRectangle()
	n.Type = NodeCircle
	return n
}

// NewLine creates a horizontal rule with the documented defaults.
func NewLine() *Node {
	return &Node{
		Type:      NodeLine,
		Width:     DefaultLineWidth,
		Thickness: DefaultLineThickness,
		Color:     DefaultTextColor,
	}
}

// NewHeader creates a page header block.
func NewHeader(children ...*Node) *Node {
	return &Node{Type: NodeHeader, Children: children}
}

// NewFooter creates a page footer block.
func NewFooter(children ...*Node) *Node {
	return &Node{Type: NodeFooter, Children: children}
}

// NewPageNumber creates a page number marker with the default format.
func NewPageNumber() *Node {
	return &Node{
		Type:   NodePageNumber,
		Format: DefaultPageNumberFormat,
		Size:   DefaultPageNumberSize,
		Align:  AlignCenter,
	}
}

// NewDynamicText creates a data-bound text node. Content is resolved
// from external data at render time and never stored literally.
func NewDynamicText(binding string) *Node {
	return &Node{Type: NodeDynamicText, Binding: binding, Size: DefaultTextSize}
}

// NewHyperlink creates a link node.
func NewHyperlink(text, target string) *Node {
	return &Node{Type: NodeHyperlink, Content: text, Target: target, Size: DefaultTextSize}
}

// NewPageBreak creates a page break marker. It carries no content and is
// dropped whenever a live tree is exported back to a template tree.
func NewPageBreak() *Node {
	return &Node{Type: NodePageBreak}
}

// Wire-form shadow structs, one per variant. Field order here fixes the
// member byte layout, which the package codec relies on for idempotent
// re-packing.

type wireGroup struct {
	Type     NodeType          `json:"type"`
	Children []json.RawMessage `json:"children"`
	Spacing  float64           `json:"spacing,omitempty"`
}

type wireContainer struct {
	Type        NodeType        `json:"type"`
	Child       json.RawMessage `json:"child"`
	Padding     float64         `json:"padding,omitempty"`
	BorderWidth float64         `json:"borderWidth,omitempty"`
}

type wireText struct {
	Type          NodeType `json:"type"`
	Content       string   `json:"content"`
	Size          float64  `json:"size"`
	Color         Color    `json:"color"`
	Background    *Color   `json:"backgroundColor,omitempty"`
	MaxWidth      float64  `json:"maxWidth,omitempty"`
	Bold          bool     `json:"bold,omitempty"`
	Italic        bool     `json:"italic,omitempty"`
	Align         string   `json:"align"`
	FontFamily    string   `json:"fontFamily"`
	LineHeight    float64  `json:"lineHeight"`
	LetterSpacing float64  `json:"letterSpacing,omitempty"`
	Opacity       float64  `json:"opacity"`
	Rotation      float64  `json:"rotation,omitempty"`
	Padding       float64  `json:"padding,omitempty"`
	BorderWidth   float64  `json:"borderWidth,omitempty"`
	BorderColor   *Color   `json:"borderColor,omitempty"`
}

type wireImage struct {
	Type        NodeType `json:"type"`
	Src         string   `json:"src"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Opacity     float64  `json:"opacity"`
	Rotation    float64  `json:"rotation,omitempty"`
	BorderWidth float64  `json:"borderWidth,omitempty"`
	BorderColor *Color   `json:"borderColor,omitempty"`
}

type wireTable struct {
	Type    NodeType      `json:"type"`
	Columns []TableColumn `json:"columns"`
	Rows    [][]string    `json:"rows"`
	Style   TableStyle    `json:"style"`
}

type wireShape struct {
	Type         NodeType `json:"type"`
	Width        float64  `json:"width"`
	Height       float64  `json:"height"`
	Fill         Color    `json:"fill"`
	StrokeWidth  float64  `json:"strokeWidth,omitempty"`
	Stroke       Color    `json:"stroke"`
	CornerRadius float64  `json:"cornerRadius,omitempty"`
	Opacity      float64  `json:"opacity"`
	Rotation     float64  `json:"rotation,omitempty"`
}

type wireLine struct {
	Type      NodeType `json:"type"`
	Width     float64  `json:"width"`
	Thickness float64  `json:"thickness"`
	Color     Color    `json:"color"`
}

type wirePageNumber struct {
	Type   NodeType `json:"type"`
	Format string   `json:"format"`
	Size   float64  `json:"size"`
	Align  string   `json:"align"`
}

type wireDynamicText struct {
	Type    NodeType `json:"type"`
	Binding string   `json:"binding"`
	Size    float64  `json:"size"`
}

type wireHyperlink struct {
	Type   NodeType `json:"type"`
	Text   string   `json:"text"`
	Target string   `json:"target"`
	Size   float64  `json:"size"`
}

// MarshalJSON writes the tagged wire form for the node's variant.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Type {
	case NodeColumn, NodeRow, NodeHeader, NodeFooter:
		children, err := marshalChildren(n.Children)
		if err != nil {
			return nil, err
		}
		return json.Marshal(wireGroup{Type: n.Type, Children: children, Spacing: n.Spacing})
	case NodeContainer:
		child, err := json.Marshal(n.Child)
		if err != nil {
			return nil, err
		}
		return json.Marshal(wireContainer{
			Type: n.Type, Child: child,
			Padding: n.Padding, BorderWidth: n.BorderWidth,
		})
	case NodeText:
		return json.Marshal(wireText{
			Type: n.Type, Content: n.Content, Size: n.Size, Color: n.Color,
			Background: n.Background, MaxWidth: n.MaxWidth,
			Bold: n.Bold, Italic: n.Italic, Align: n.Align,
			FontFamily: n.FontFamily, LineHeight: n.LineHeight,
			LetterSpacing: n.LetterSpacing, Opacity: n.Opacity,
			Rotation: n.Rotation, Padding: n.Padding,
			BorderWidth: n.BorderWidth, BorderColor: n.BorderColor,
		})
	case NodeImage:
		return json.Marshal(wireImage{
			Type: n.Type, Src: n.Src, Width: n.Width, Height: n.Height,
			Opacity: n.Opacity, Rotation: n.Rotation,
			BorderWidth: n.BorderWidth, BorderColor: n.BorderColor,
		})
	case NodeTable:
		return json.Marshal(wireTable{
			Type: n.Type, Columns: n.Columns, Rows: n.Rows, Style: n.TableStyle,
		})
	case NodeRectangle, NodeCircle:
		return json.Marshal(wireShape{
			Type: n.Type, Width: n.Width, Height: n.Height, Fill: n.Fill,
			StrokeWidth: n.StrokeWidth, Stroke: n.Stroke,
			CornerRadius: n.CornerRadius, Opacity: n.Opacity, Rotation: n.Rotation,
		})
	case NodeLine:
		return json.Marshal(wireLine{
			Type: n.Type, Width: n.Width, Thickness: n.Thickness, Color: n.Color,
		})
	case NodePageNumber:
		return json.Marshal(wirePageNumber{
			Type: n.Type, Format: n.Format, Size: n.Size, Align: n.Align,
		})
	case NodeDynamicText:
		return json.Marshal(wireDynamicText{Type: n.Type, Binding: n.Binding, Size: n.Size})
	case NodeHyperlink:
		return json.Marshal(wireHyperlink{
			Type: n.Type, Text: n.Content, Target: n.Target, Size: n.Size,
		})
	case NodePageBreak:
		return json.Marshal(struct {
			Type NodeType `json:"type"`
		}{Type: n.Type})
	}
	return nil, &UnsupportedTypeError{Type: string(n.Type)}
}

func marshalChildren(children []*Node) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(children))
	for _, c := range children {
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// nodeIn is the permissive decode form: every numeric field is a pointer
// so an absent key can fall back to its documented default.
type nodeIn struct {
	Type          string            `json:"type"`
	Children      []json.RawMessage `json:"children"`
	Spacing       *float64          `json:"spacing"`
	Child         json.RawMessage   `json:"child"`
	Content       string            `json:"content"`
	Text          string            `json:"text"`
	Size          *float64          `json:"size"`
	Color         *Color            `json:"color"`
	Background    *Color            `json:"backgroundColor"`
	MaxWidth      *float64          `json:"maxWidth"`
	Bold          bool              `json:"bold"`
	Italic        bool              `json:"italic"`
	Align         string            `json:"align"`
	FontFamily    string            `json:"fontFamily"`
	LineHeight    *float64          `json:"lineHeight"`
	LetterSpacing *float64          `json:"letterSpacing"`
	Opacity       *float64          `json:"opacity"`
	Rotation      *float64          `json:"rotation"`
	Padding       *float64          `json:"padding"`
	BorderWidth   *float64          `json:"borderWidth"`
	BorderColor   *Color            `json:"borderColor"`
	Src           string            `json:"src"`
	Width         *float64          `json:"width"`
	Height        *float64          `json:"height"`
	Columns       []TableColumn     `json:"columns"`
	Rows          [][]string        `json:"rows"`
	Style         *tableStyleIn     `json:"style"`
	Fill          *Color            `json:"fill"`
	StrokeWidth   *float64          `json:"strokeWidth"`
	Stroke        *Color            `json:"stroke"`
	CornerRadius  *float64          `json:"cornerRadius"`
	Thickness     *float64          `json:"thickness"`
	Format        string            `json:"format"`
	Binding       string            `json:"binding"`
	Target        string            `json:"target"`
}

type tableStyleIn struct {
	HeaderBackground *Color   `json:"headerBackground"`
	HeaderColor      *Color   `json:"headerColor"`
	BorderColor      *Color   `json:"borderColor"`
	CellPadding      *float64 `json:"cellPadding"`
	FontSize         *float64 `json:"fontSize"`
	Striped          bool     `json:"striped"`
}

// UnmarshalJSON decodes the tagged wire form, applying documented
// defaults for absent fields. An unrecognized type tag does not fail the
// decode: the node is kept with its raw tag so a later walk can degrade
// it to a no-op instead of aborting the whole tree.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeIn
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Type == "" {
		return fmt.Errorf("node missing type tag")
	}

	switch NodeType(in.Type) {
	case NodeColumn, NodeRow, NodeHeader, NodeFooter:
		out := &Node{Type: NodeType(in.Type), Spacing: orDefault(in.Spacing, 0)}
		for _, raw := range in.Children {
			child := &Node{}
			if err := json.Unmarshal(raw, child); err != nil {
				return err
			}
			out.Children = append(out.Children, child)
		}
		*n = *out
	case NodeContainer:
		out := NewContainer(nil)
		out.Padding = orDefault(in.Padding, 0)
		out.BorderWidth = orDefault(in.BorderWidth, 0)
		if len(in.Child) > 0 {
			child := &Node{}
			if err := json.Unmarshal(in.Child, child); err != nil {
				return err
			}
			out.Child = child
		}
		*n = *out
	case NodeText:
		out := NewText(in.Content)
		out.Size = orDefault(in.Size, DefaultTextSize)
		if in.Color != nil {
			out.Color = *in.Color
		}
		out.Background = in.Background
		out.MaxWidth = orDefault(in.MaxWidth, 0)
		out.Bold = in.Bold
		out.Italic = in.Italic
		if in.Align != "" {
			out.Align = in.Align
		}
		if in.FontFamily != "" {
			out.FontFamily = in.FontFamily
		}
		out.LineHeight = orDefault(in.LineHeight, DefaultLineHeight)
		out.LetterSpacing = orDefault(in.LetterSpacing, 0)
		out.Opacity = orDefault(in.Opacity, 1)
		out.Rotation = orDefault(in.Rotation, 0)
		out.Padding = orDefault(in.Padding, 0)
		out.BorderWidth = orDefault(in.BorderWidth, 0)
		out.BorderColor = in.BorderColor
		*n = *out
	case NodeImage:
		out := NewImage(in.Src)
		out.Width = orDefault(in.Width, DefaultImageSize)
		out.Height = orDefault(in.Height, DefaultImageSize)
		out.Opacity = orDefault(in.Opacity, 1)
		out.Rotation = orDefault(in.Rotation, 0)
		out.BorderWidth = orDefault(in.BorderWidth, 0)
		out.BorderColor = in.BorderColor
		*n = *out
	case NodeTable:
		out := NewTable(in.Columns, in.Rows)
		if in.Style != nil {
			s := DefaultTableStyle()
			if in.Style.HeaderBackground != nil {
				s.HeaderBackground = *in.Style.HeaderBackground
			}
			if in.Style.HeaderColor != nil {
				s.HeaderColor = *in.Style.HeaderColor
			}
			if in.Style.BorderColor != nil {
				s.BorderColor = *in.Style.BorderColor
			}
			s.CellPadding = orDefault(in.Style.CellPadding, DefaultTableCellPad)
			s.FontSize = orDefault(in.Style.FontSize, DefaultTableFontSize)
			s.Striped = in.Style.Striped
			out.TableStyle = s
		}
		*n = *out
	case NodeRectangle, NodeCircle:
		out := NewRectangle()
		out.Type = NodeType(in.Type)
		out.Width = orDefault(in.Width, DefaultShapeSize)
		out.Height = orDefault(in.Height, DefaultShapeSize)
		if in.Fill != nil {
			out.Fill = *in.Fill
		}
		out.StrokeWidth = orDefault(in.StrokeWidth, 0)
		if in.Stroke != nil {
			out.Stroke = *in.Stroke
		}
		if out.Type == NodeRectangle {
			out.CornerRadius = orDefault(in.CornerRadius, 0)
		}
		out.Opacity = orDefault(in.Opacity, 1)
		out.Rotation = orDefault(in.Rotation, 0)
		*n = *out
	case NodeLine:
		out := NewLine()
		out.Width = orDefault(in.Width, DefaultLineWidth)
		out.Thickness = orDefault(in.Thickness, DefaultLineThickness)
		if in.Color != nil {
			out.Color = *in.Color
		}
		*n = *out
	case NodePageNumber:
		out := NewPageNumber()
		if in.Format != "" {
			out.Format = in.Format
		}
		out.Size = orDefault(in.Size, DefaultPageNumberSize)
		if in.Align != "" {
			out.Align = in.Align
		}
		*n = *out
	case NodeDynamicText:
		out := NewDynamicText(in.Binding)
		out.Size = orDefault(in.Size, DefaultTextSize)
		*n = *out
	case NodeHyperlink:
		out := NewHyperlink(in.Text, in.Target)
		if in.Content != "" {
			out.Content = in.Content
		}
		out.Size = orDefault(in.Size, DefaultTextSize)
		*n = *out
	case NodePageBreak:
		*n = *NewPageBreak()
	default:
		// Unknown tag: keep it so the walk can degrade this subtree.
		*n = Node{Type: NodeType(in.Type)}
	}
	return nil
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

// Equal reports whether two trees are equivalent: same type tags, same
// string and boolean fields, numeric fields equal within 1-unit
// rounding and colors within one 8-bit step.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type {
		return false
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	if !n.Child.Equal(o.Child) {
		return false
	}
	if n.Content != o.Content || n.Align != o.Align || n.FontFamily != o.FontFamily ||
		n.Src != o.Src || n.Format != o.Format || n.Binding != o.Binding ||
		n.Target != o.Target {
		return false
	}
	if n.Bold != o.Bold || n.Italic != o.Italic || n.TableStyle.Striped != o.TableStyle.Striped {
		return false
	}
	if !colorPtrEqual(n.Background, o.Background) || !borderColorEqual(n.BorderColor, o.BorderColor) {
		return false
	}
	if !n.Color.Equal(o.Color) || !n.Fill.Equal(o.Fill) || !n.Stroke.Equal(o.Stroke) {
		return false
	}
	if !n.TableStyle.HeaderBackground.Equal(o.TableStyle.HeaderBackground) ||
		!n.TableStyle.HeaderColor.Equal(o.TableStyle.HeaderColor) ||
		!n.TableStyle.BorderColor.Equal(o.TableStyle.BorderColor) {
		return false
	}
	if !tableDataEqual(n, o) {
		return false
	}
	nums := [][2]float64{
		{n.Spacing, o.Spacing}, {n.Size, o.Size}, {n.MaxWidth, o.MaxWidth},
		{n.LetterSpacing, o.LetterSpacing}, {n.Rotation, o.Rotation},
		{n.Padding, o.Padding}, {n.BorderWidth, o.BorderWidth},
		{n.Width, o.Width}, {n.Height, o.Height},
		{n.StrokeWidth, o.StrokeWidth}, {n.CornerRadius, o.CornerRadius},
		{n.Thickness, o.Thickness},
		{n.TableStyle.CellPadding, o.TableStyle.CellPadding},
		{n.TableStyle.FontSize, o.TableStyle.FontSize},
	}
	for _, p := range nums {
		if !approx(p[0], p[1]) {
			return false
		}
	}
	// Unit-scale fields get a tighter tolerance than point dimensions.
	return approxUnit(n.Opacity, o.Opacity) && approxUnit(n.LineHeight, o.LineHeight)
}

func tableDataEqual(n, o *Node) bool {
	if len(n.Columns) != len(o.Columns) || len(n.Rows) != len(o.Rows) {
		return false
	}
	for i := range n.Columns {
		if n.Columns[i].Header != o.Columns[i].Header {
			return false
		}
		a, b := n.Columns[i].Width, o.Columns[i].Width
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && !approx(*a, *b) {
			return false
		}
	}
	for i := range n.Rows {
		if len(n.Rows[i]) != len(o.Rows[i]) {
			return false
		}
		for j := range n.Rows[i] {
			if n.Rows[i][j] != o.Rows[i][j] {
				return false
			}
		}
	}
	return true
}

func colorPtrEqual(a, b *Color) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || a.Equal(*b)
}

// borderColorEqual compares border colors. An absent border color
// renders as the default text color, so nil and an explicit default are
// the same border.
func borderColorEqual(a, b *Color) bool {
	ac, bc := DefaultTextColor, DefaultTextColor
	if a != nil {
		ac = *a
	}
	if b != nil {
		bc = *b
	}
	return ac.Equal(bc)
}

// Clone returns a deep copy of the tree. Conversions that rewrite
// nodes (render-time binding resolution) work on a clone so the input
// tree stays immutable.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Child = n.Child.Clone()
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	if n.Background != nil {
		bg := *n.Background
		out.Background = &bg
	}
	if n.BorderColor != nil {
		bc := *n.BorderColor
		out.BorderColor = &bc
	}
	if n.Columns != nil {
		out.Columns = make([]TableColumn, len(n.Columns))
		for i, c := range n.Columns {
			out.Columns[i] = c
			if c.Width != nil {
				w := *c.Width
				out.Columns[i].Width = &w
			}
		}
	}
	if n.Rows != nil {
		out.Rows = make([][]string, len(n.Rows))
		for i, r := range n.Rows {
			out.Rows[i] = append([]string(nil), r...)
		}
	}
	return &out
}

// approx compares point dimensions within 1-unit rounding.
func approx(a, b float64) bool { return math.Abs(a-b) <= 1 }

// approxUnit compares 0..1-scale values within rounding noise.
func approxUnit(a, b float64) bool { return math.Abs(a-b) <= 0.05 }
