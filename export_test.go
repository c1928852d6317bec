package tplpack

// Notes:
// - Untyped wrappers collapse (one child) or group as a Column (many)
// - Page wrapper geometry maps back to settings; no wrapper means 40-point margins
// - Image references are recovered from data-asset-name, data-src, or src
// - Tables read realized header/body cells; missing header degrades
// - Unknown type tags degrade to warnings without harming siblings

import (
	"errors"
	"strings"
	"testing"
)

func TestExportHTML_Text(t *testing.T) {
	t.Parallel()

	markup := `<div data-node-type="Text" style="font-size: 18px; color: rgba(30, 41, 59, 1); ` +
		`font-family: Georgia; line-height: 1.5; text-align: right; font-weight: bold; ` +
		`font-style: italic; letter-spacing: 2px; opacity: 0.8">Hi &amp; Bye</div>`

	result, err := ExportHTML(markup)
	if err != nil {
		t.Fatalf("ExportHTML() error = %v", err)
	}
	n := result.Root

	if n.Type != NodeText {
		t.Fatalf("Type = %q, want Text", n.Type)
	}
	if n.Content != "Hi & Bye" {
		t.Errorf("Content = %q, want unescaped text", n.Content)
	}
	if n.Size != 18 {
		t.Errorf("Size = %v, want 18", n.Size)
	}
	if !n.Bold || !n.Italic {
		t.Errorf("Bold/Italic = %v/%v, want true/true", n.Bold, n.Italic)
	}
	if n.Align != AlignRight {
		t.Errorf("Align = %q, want right", n.Align)
	}
	if n.FontFamily != "Georgia" {
		t.Errorf("FontFamily = %q, want Georgia", n.FontFamily)
	}
	if n.LineHeight != 1.5 {
		t.Errorf("LineHeight = %v, want 1.5", n.LineHeight)
	}
	if n.LetterSpacing != 2 {
		t.Errorf("LetterSpacing = %v, want 2", n.LetterSpacing)
	}
	if n.Opacity != 0.8 {
		t.Errorf("Opacity = %v, want 0.8", n.Opacity)
	}
}

func TestExportHTML_NumericFontWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		weight   string
		wantBold bool
	}{
		{name: "weight 700", weight: "700", wantBold: true},
		{name: "weight 600", weight: "600", wantBold: true},
		{name: "weight 400", weight: "400", wantBold: false},
		{name: "keyword bold", weight: "bold", wantBold: true},
		{name: "keyword normal", weight: "normal", wantBold: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			markup := `<div data-node-type="Text" style="font-weight: ` + tt.weight + `">x</div>`
			result, err := ExportHTML(markup)
			if err != nil {
				t.Fatalf("ExportHTML() error = %v", err)
			}
			if result.Root.Bold != tt.wantBold {
				t.Errorf("Bold = %v, want %v", result.Root.Bold, tt.wantBold)
			}
		})
	}
}

func TestExportHTML_WrapperCollapsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		check  func(t *testing.T, root *Node)
	}{
		{
			name:   "single child collapses through untyped wrapper",
			markup: `<div><div data-node-type="Text">x</div></div>`,
			check: func(t *testing.T, root *Node) {
				if root.Type != NodeText {
					t.Errorf("Type = %q, want Text", root.Type)
				}
			},
		},
		{
			name: "multiple children group as Column in document order",
			markup: `<div><div data-node-type="Text">a</div>` +
				`<div data-node-type="Text">b</div></div>`,
			check: func(t *testing.T, root *Node) {
				if root.Type != NodeColumn {
					t.Fatalf("Type = %q, want Column", root.Type)
				}
				if len(root.Children) != 2 ||
					root.Children[0].Content != "a" || root.Children[1].Content != "b" {
					t.Errorf("children wrong: %+v", root.Children)
				}
			},
		},
		{
			name:   "empty document yields empty Column",
			markup: ``,
			check: func(t *testing.T, root *Node) {
				if root.Type != NodeColumn || len(root.Children) != 0 {
					t.Errorf("root = %+v, want empty Column", root)
				}
			},
		},
		{
			name:   "deeply nested wrappers collapse transparently",
			markup: `<div><div><div><div data-node-type="Line"></div></div></div></div>`,
			check: func(t *testing.T, root *Node) {
				if root.Type != NodeLine {
					t.Errorf("Type = %q, want Line", root.Type)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ExportHTML(tt.markup)
			if err != nil {
				t.Fatalf("ExportHTML() error = %v", err)
			}
			tt.check(t, result.Root)
		})
	}
}

func TestExportHTML_PageWrapperSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		check  func(t *testing.T, s *PageSettings)
	}{
		{
			name: "a4 portrait with four value padding",
			markup: `<div data-page="true" style="width: 595px; min-height: 842px; ` +
				`padding: 10px 20px 30px 40px"></div>`,
			check: func(t *testing.T, s *PageSettings) {
				if s.Size != PageSizeA4 || s.Orientation != OrientationPortrait {
					t.Errorf("size = %q/%q, want a4/portrait", s.Size, s.Orientation)
				}
				want := Margins{Top: 10, Right: 20, Bottom: 30, Left: 40}
				if s.Margins == nil || *s.Margins != want {
					t.Errorf("Margins = %+v, want %+v", s.Margins, want)
				}
			},
		},
		{
			name: "letter landscape",
			markup: `<div data-page="true" style="width: 792px; min-height: 612px; ` +
				`padding: 40px"></div>`,
			check: func(t *testing.T, s *PageSettings) {
				if s.Size != PageSizeLetter || s.Orientation != OrientationLandscape {
					t.Errorf("size = %q/%q, want letter/landscape", s.Size, s.Orientation)
				}
			},
		},
		{
			name: "unmatched dimensions stay custom",
			markup: `<div data-page="true" style="width: 400px; min-height: 300px; ` +
				`padding: 40px"></div>`,
			check: func(t *testing.T, s *PageSettings) {
				if s.Size != "" || s.Width != 400 || s.Height != 300 {
					t.Errorf("settings = %+v, want custom 400x300", s)
				}
			},
		},
		{
			name:   "no wrapper defaults margins to 40",
			markup: `<div data-node-type="Text">x</div>`,
			check: func(t *testing.T, s *PageSettings) {
				if s.Margins == nil || *s.Margins != UniformMargins(DefaultMargin) {
					t.Errorf("Margins = %+v, want uniform 40", s.Margins)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ExportHTML(tt.markup)
			if err != nil {
				t.Fatalf("ExportHTML() error = %v", err)
			}
			tt.check(t, result.Settings)
		})
	}
}

func TestExportHTML_ImageReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		markup  string
		wantSrc string
	}{
		{
			name: "asset name wins over src",
			markup: `<img data-node-type="Image" data-asset-name="logo.png" ` +
				`src="data:image/png;base64,AAAA" style="width: 50px; height: 60px"/>`,
			wantSrc: "logo.png",
		},
		{
			name: "placeholder keeps data-src",
			markup: `<div data-node-type="Image" data-src="missing.png" ` +
				`style="width: 100px; height: 100px">missing.png</div>`,
			wantSrc: "missing.png",
		},
		{
			name:    "direct url from src",
			markup:  `<img data-node-type="Image" src="https://example.com/a.png"/>`,
			wantSrc: "https://example.com/a.png",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ExportHTML(tt.markup)
			if err != nil {
				t.Fatalf("ExportHTML() error = %v", err)
			}
			if result.Root.Type != NodeImage {
				t.Fatalf("Type = %q, want Image", result.Root.Type)
			}
			if result.Root.Src != tt.wantSrc {
				t.Errorf("Src = %q, want %q", result.Root.Src, tt.wantSrc)
			}
		})
	}
}

func TestExportHTML_Table(t *testing.T) {
	t.Parallel()

	markup := `<table data-node-type="Table" data-striped="true" ` +
		`style="border-collapse: collapse; font-size: 10px; border: 1px solid rgba(226, 232, 240, 1)">` +
		`<thead><tr>` +
		`<th style="background-color: rgba(241, 245, 249, 1); color: rgba(30, 41, 59, 1); padding: 4px; width: 150px">Name</th>` +
		`<th style="background-color: rgba(241, 245, 249, 1); color: rgba(30, 41, 59, 1); padding: 4px">Qty</th>` +
		`</tr></thead><tbody>` +
		`<tr><td>a</td><td>1</td></tr>` +
		`<tr><td>b</td><td>2</td></tr>` +
		`</tbody></table>`

	result, err := ExportHTML(markup)
	if err != nil {
		t.Fatalf("ExportHTML() error = %v", err)
	}
	n := result.Root

	if n.Type != NodeTable {
		t.Fatalf("Type = %q, want Table", n.Type)
	}
	if len(n.Columns) != 2 || n.Columns[0].Header != "Name" || n.Columns[1].Header != "Qty" {
		t.Errorf("Columns = %+v", n.Columns)
	}
	if n.Columns[0].Width == nil || *n.Columns[0].Width != 150 {
		t.Errorf("first column width = %v, want 150", n.Columns[0].Width)
	}
	if n.Columns[1].Width != nil {
		t.Errorf("second column width = %v, want nil", *n.Columns[1].Width)
	}
	if len(n.Rows) != 2 || n.Rows[0][0] != "a" || n.Rows[1][1] != "2" {
		t.Errorf("Rows = %+v", n.Rows)
	}
	if !n.TableStyle.Striped {
		t.Error("striped marker lost")
	}
	if !n.TableStyle.HeaderBackground.Equal(DefaultTableHeaderBG) {
		t.Errorf("HeaderBackground = %+v", n.TableStyle.HeaderBackground)
	}
	if n.TableStyle.CellPadding != 4 {
		t.Errorf("CellPadding = %v, want 4", n.TableStyle.CellPadding)
	}
}

func TestExportHTML_TableWithoutHeader(t *testing.T) {
	t.Parallel()

	markup := `<table data-node-type="Table"><tbody><tr><td>x</td></tr></tbody></table>`
	result, err := ExportHTML(markup)
	if err != nil {
		t.Fatalf("ExportHTML() error = %v", err)
	}
	n := result.Root
	if n.Type != NodeTable {
		t.Fatalf("Type = %q, want Table", n.Type)
	}
	if len(n.Columns) != 0 {
		t.Errorf("Columns = %+v, want none", n.Columns)
	}
	if len(n.Rows) != 1 {
		t.Errorf("Rows = %+v, want body preserved", n.Rows)
	}
}

func TestExportHTML_UnknownTypeDegrades(t *testing.T) {
	t.Parallel()

	markup := `<div><div data-node-type="Hologram"><div data-node-type="Text">inner</div></div>` +
		`<div data-node-type="Text">kept</div></div>`

	result, err := ExportHTML(markup)
	if err != nil {
		t.Fatalf("ExportHTML() error = %v", err)
	}
	if result.Root.Type != NodeText || result.Root.Content != "kept" {
		t.Errorf("root = %+v, want the surviving sibling", result.Root)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one entry", result.Warnings)
	}
	var unsupported *UnsupportedTypeError
	if !errors.As(result.Warnings[0], &unsupported) || unsupported.Type != "Hologram" {
		t.Errorf("warning = %v, want UnsupportedTypeError for Hologram", result.Warnings[0])
	}
}

func TestExportHTML_PageBreakDropped(t *testing.T) {
	t.Parallel()

	markup := `<div><div data-node-type="Text">a</div>` +
		`<div data-node-type="PageBreak" style="page-break-after: always"></div>` +
		`<div data-node-type="Text">b</div></div>`

	result, err := ExportHTML(markup)
	if err != nil {
		t.Fatalf("ExportHTML() error = %v", err)
	}
	if result.Root.Type != NodeColumn || len(result.Root.Children) != 2 {
		t.Errorf("root = %+v, want Column of two text nodes", result.Root)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("page breaks drop silently, got warnings %v", result.Warnings)
	}
}

func TestExportHTML_Shapes(t *testing.T) {
	t.Parallel()

	markup := `<div><div data-node-type="Rectangle" style="width: 80px; height: 40px; ` +
		`background-color: #ff0000; border: 2px solid #00ff00; border-radius: 6px"></div>` +
		`<div data-node-type="Circle" style="width: 50px; height: 50px; ` +
		`background-color: #0000ff; border-radius: 50%"></div></div>`

	result, err := ExportHTML(markup)
	if err != nil {
		t.Fatalf("ExportHTML() error = %v", err)
	}
	rect, circle := result.Root.Children[0], result.Root.Children[1]

	if rect.Type != NodeRectangle || rect.Width != 80 || rect.Height != 40 {
		t.Errorf("rect = %+v", rect)
	}
	if !rect.Fill.Equal(RGB(1, 0, 0)) {
		t.Errorf("rect fill = %+v, want red", rect.Fill)
	}
	if rect.StrokeWidth != 2 || !rect.Stroke.Equal(RGB(0, 1, 0)) {
		t.Errorf("rect stroke = %v/%+v", rect.StrokeWidth, rect.Stroke)
	}
	if rect.CornerRadius != 6 {
		t.Errorf("rect corner radius = %v, want 6", rect.CornerRadius)
	}

	if circle.Type != NodeCircle {
		t.Fatalf("circle type = %q", circle.Type)
	}
	if circle.CornerRadius != 0 {
		t.Errorf("circle corner radius = %v, want 0 (50%% is the shape marker)", circle.CornerRadius)
	}
}

func TestExport_NilDocument(t *testing.T) {
	t.Parallel()

	if _, err := Export(nil); !errors.Is(err, ErrNilRoot) {
		t.Errorf("Export(nil) error = %v, want ErrNilRoot", err)
	}
}

func TestExportHTML_TextWhitespaceTrimmed(t *testing.T) {
	t.Parallel()

	markup := "<div data-node-type=\"Text\">\n  padded  \n</div>"
	result, err := ExportHTML(markup)
	if err != nil {
		t.Fatalf("ExportHTML() error = %v", err)
	}
	if !strings.Contains(result.Root.Content, "padded") || result.Root.Content != strings.TrimSpace(result.Root.Content) {
		t.Errorf("Content = %q, want trimmed", result.Root.Content)
	}
}
