package tplpack

// Notes:
// - Exporting imported markup yields a tree equivalent to the original
// - Page settings survive the same trip through the wrapper
// - Embedded asset bytes survive import -> collect unchanged

import (
	"bytes"
	"testing"
)

func TestRoundTrip_Tree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		root *Node
	}{
		{name: "plain text", root: NewText("Hi & Bye")},
		{name: "styled text", root: func() *Node {
			n := NewText("styled")
			n.Bold = true
			n.Italic = true
			n.Size = 18
			n.Align = AlignCenter
			n.LetterSpacing = 1.5
			n.Opacity = 0.8
			n.Rotation = 45
			n.Padding = 6
			n.BorderWidth = 2
			bg := RGB(1, 1, 0)
			n.Background = &bg
			return n
		}()},
		{name: "container", root: func() *Node {
			c := NewContainer(NewText("inner"))
			c.Padding = 12
			c.BorderWidth = 1
			return c
		}()},
		{name: "groups with spacing", root: func() *Node {
			r := NewRow(NewText("a"), NewText("b"))
			r.Spacing = 8
			col := NewColumn(r, NewLine())
			col.Spacing = 16
			return col
		}()},
		{name: "striped table", root: func() *Node {
			w := 150.0
			tbl := NewTable(
				[]TableColumn{{Header: "Name & Co", Width: &w}, {Header: "Qty"}},
				[][]string{{"a <1>", "2"}, {"b", "3"}, {"c", "4"}},
			)
			tbl.TableStyle.Striped = true
			return tbl
		}()},
		{name: "shapes", root: func() *Node {
			rect := NewRectangle()
			rect.CornerRadius = 6
			rect.StrokeWidth = 2
			rect.Width = 80
			rect.Height = 40
			circle := NewCircle()
			circle.Opacity = 0.5
			return NewColumn(rect, circle)
		}()},
		{name: "container with border color", root: func() *Node {
			c := NewContainer(NewText("inner"))
			c.BorderWidth = 3
			bc := RGB(0, 0, 1)
			c.BorderColor = &bc
			return c
		}()},
		{name: "zero width stroke keeps color", root: func() *Node {
			rect := NewRectangle()
			rect.StrokeWidth = 0
			rect.Stroke = RGB(1, 0, 0)
			rect.Fill = RGB(1, 1, 1)
			return rect
		}()},
		{name: "zero width border keeps color", root: func() *Node {
			n := NewText("faint")
			bc := RGB(1, 0, 0)
			n.BorderColor = &bc
			return n
		}()},
		{name: "unresolved image placeholder", root: NewImage("logo.png")},
		{name: "bordered image placeholder", root: func() *Node {
			n := NewImage("logo.png")
			n.BorderWidth = 2
			bc := RGB(0, 1, 0)
			n.BorderColor = &bc
			return n
		}()},
		{name: "direct url image", root: NewImage("https://example.com/a.png")},
		{name: "header and footer", root: NewColumn(
			NewHeader(NewText("head")),
			NewText("body"),
			NewFooter(NewPageNumber()),
		)},
		{name: "dynamic text", root: NewDynamicText("customer.name")},
		{name: "hyperlink", root: NewHyperlink("Docs", "https://example.com")},
		{name: "page number custom format", root: func() *Node {
			n := NewPageNumber()
			n.Format = "{page}/{total}"
			return n
		}()},
		{name: "line", root: func() *Node {
			n := NewLine()
			n.Width = 200
			n.Thickness = 3
			return n
		}()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			imported, err := Import(tt.root, nil, nil)
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			exported, err := ExportHTML(imported.Markup)
			if err != nil {
				t.Fatalf("ExportHTML() error = %v", err)
			}
			if !tt.root.Equal(exported.Root) {
				t.Errorf("round trip changed the tree\nmarkup: %s\ngot: %+v\nwant: %+v",
					imported.Markup, exported.Root, tt.root)
			}
		})
	}
}

func TestRoundTrip_Settings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings *PageSettings
	}{
		{name: "a4 defaults", settings: DefaultPageSettings()},
		{name: "letter landscape", settings: func() *PageSettings {
			m := Margins{Top: 10, Right: 20, Bottom: 30, Left: 40}
			return &PageSettings{Size: PageSizeLetter, Orientation: OrientationLandscape, Margins: &m}
		}()},
		{name: "custom dimensions", settings: func() *PageSettings {
			m := UniformMargins(25)
			return &PageSettings{Width: 400, Height: 300, Margins: &m}
		}()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			imported, err := Import(NewText("x"), tt.settings, nil)
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			exported, err := ExportHTML(imported.Markup)
			if err != nil {
				t.Fatalf("ExportHTML() error = %v", err)
			}
			s := exported.Settings

			wantW, wantH := tt.settings.Dimensions()
			gotW, gotH := s.Dimensions()
			if gotW != wantW || gotH != wantH {
				t.Errorf("dimensions = %vx%v, want %vx%v", gotW, gotH, wantW, wantH)
			}
			if s.EffectiveMargins() != tt.settings.EffectiveMargins() {
				t.Errorf("margins = %+v, want %+v", s.EffectiveMargins(), tt.settings.EffectiveMargins())
			}
		})
	}
}

func TestRoundTrip_AssetBytes(t *testing.T) {
	t.Parallel()

	blob := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3, 4}
	assets := map[string][]byte{"logo.png": blob}

	imported, err := Import(NewImage("logo.png"), nil, ResolveAssets(assets))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	collected, err := CollectAssetsHTML(imported.Markup)
	if err != nil {
		t.Fatalf("CollectAssetsHTML() error = %v", err)
	}
	if !bytes.Equal(collected["logo.png"], blob) {
		t.Errorf("asset bytes changed: %v -> %v", blob, collected["logo.png"])
	}

	exported, err := ExportHTML(imported.Markup)
	if err != nil {
		t.Fatalf("ExportHTML() error = %v", err)
	}
	if exported.Root.Src != "logo.png" {
		t.Errorf("Src = %q, want logical name preserved", exported.Root.Src)
	}
}
