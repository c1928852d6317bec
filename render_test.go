package tplpack

// Notes:
// - Binding resolution walks dotted paths, stringifies non-strings and
//   never mutates the input tree
// - The document wrapper escapes the untrusted template name
// - Print options map page geometry to inches with zero printer margins
// - Service delegates to the configured engine and validates up front

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestResolveBindings(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"customer": map[string]any{
			"name":    "ACME",
			"balance": 42.5,
		},
		"count": 3,
	}

	tests := []struct {
		name    string
		binding string
		want    string
	}{
		{name: "nested string", binding: "customer.name", want: "ACME"},
		{name: "top-level int", binding: "count", want: "3"},
		{name: "non-string leaf", binding: "customer.balance", want: "42.5"},
		{name: "missing path", binding: "customer.email", want: ""},
		{name: "path through non-map", binding: "count.sub", want: ""},
		{name: "empty binding", binding: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			orig := NewDynamicText(tt.binding)
			resolved := ResolveBindings(orig, data)

			if resolved.Type != NodeText {
				t.Fatalf("Type = %q, want Text", resolved.Type)
			}
			if resolved.Content != tt.want {
				t.Errorf("Content = %q, want %q", resolved.Content, tt.want)
			}
			if orig.Type != NodeDynamicText || orig.Binding != tt.binding {
				t.Errorf("input tree mutated: %+v", orig)
			}
		})
	}
}

func TestResolveBindings_PreservesSize(t *testing.T) {
	t.Parallel()

	n := NewDynamicText("customer.name")
	n.Size = 20

	resolved := ResolveBindings(n, map[string]any{
		"customer": map[string]any{"name": "ACME"},
	})
	if resolved.Size != 20 {
		t.Errorf("Size = %v, want 20", resolved.Size)
	}
}

func TestResolveBindings_WalksTree(t *testing.T) {
	t.Parallel()

	root := NewColumn(
		NewText("static"),
		NewContainer(NewDynamicText("a")),
		NewRow(NewDynamicText("b")),
	)
	resolved := ResolveBindings(root, map[string]any{"a": "one", "b": "two"})

	if got := resolved.Children[1].Child.Content; got != "one" {
		t.Errorf("container child = %q, want one", got)
	}
	if got := resolved.Children[2].Children[0].Content; got != "two" {
		t.Errorf("row child = %q, want two", got)
	}
	if resolved.Children[0].Content != "static" {
		t.Error("static text disturbed")
	}
}

func TestResolveBindings_NilRoot(t *testing.T) {
	t.Parallel()

	if got := ResolveBindings(nil, nil); got != nil {
		t.Errorf("ResolveBindings(nil) = %+v, want nil", got)
	}
}

func TestWrapDocument_EscapesTitle(t *testing.T) {
	t.Parallel()

	doc := wrapDocument("Q3 <Report> & Notes</title>", "<div>body</div>")
	if strings.Contains(doc, "<title>Q3 <R") || strings.Contains(doc, "</title></title>") {
		t.Errorf("title not escaped:\n%s", doc)
	}
	if !strings.Contains(doc, "<title>Q3 &lt;Report&gt; &amp; Notes&lt;/title&gt;</title>") {
		t.Errorf("escaped title missing:\n%s", doc)
	}
	if !strings.Contains(doc, "<div>body</div>") {
		t.Errorf("markup not embedded verbatim:\n%s", doc)
	}
}

func TestBuildPrintOptions(t *testing.T) {
	t.Parallel()

	opts := buildPrintOptions(DefaultPageSettings())
	if got := *opts.PaperWidth; got != 595.0/72 {
		t.Errorf("PaperWidth = %v, want %v", got, 595.0/72)
	}
	if got := *opts.PaperHeight; got != 842.0/72 {
		t.Errorf("PaperHeight = %v, want %v", got, 842.0/72)
	}
	// The page wrapper carries margins as padding; the printer adds none.
	for _, m := range []*float64{opts.MarginTop, opts.MarginBottom, opts.MarginLeft, opts.MarginRight} {
		if m == nil || *m != 0 {
			t.Errorf("printer margin = %v, want 0", m)
		}
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground = false, want true")
	}
}

// fakeEngine records the render call and returns canned output.
type fakeEngine struct {
	pdf    []byte
	err    error
	pkg    *Package
	data   map[string]any
	closed bool
}

func (f *fakeEngine) Render(_ context.Context, pkg *Package, data map[string]any) ([]byte, error) {
	f.pkg = pkg
	f.data = data
	return f.pdf, f.err
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

func TestService_Render(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{pdf: []byte("%PDF-1.7")}
	svc := New(WithEngine(engine), WithTimeout(5*time.Second))

	pkg := &Package{Root: NewText("x"), Manifest: DefaultManifest()}
	data := map[string]any{"k": "v"}

	pdf, err := svc.Render(context.Background(), pkg, data)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(pdf) != "%PDF-1.7" {
		t.Errorf("pdf = %q, want engine output", pdf)
	}
	if engine.pkg != pkg {
		t.Error("engine did not receive the package")
	}
	if engine.data["k"] != "v" {
		t.Error("engine did not receive the data object")
	}
}

func TestService_RenderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pkg     *Package
		engine  *fakeEngine
		wantErr error
	}{
		{
			name:    "nil package",
			pkg:     nil,
			engine:  &fakeEngine{},
			wantErr: ErrNilRoot,
		},
		{
			name:    "package without root",
			pkg:     &Package{},
			engine:  &fakeEngine{},
			wantErr: ErrNilRoot,
		},
		{
			name:    "invalid settings",
			pkg:     &Package{Root: NewText("x"), Settings: &PageSettings{Size: "tabloid"}},
			engine:  &fakeEngine{},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "engine failure wrapped",
			pkg:     &Package{Root: NewText("x")},
			engine:  &fakeEngine{err: ErrRenderFailed},
			wantErr: ErrRenderFailed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := New(WithEngine(tt.engine))
			_, err := svc.Render(context.Background(), tt.pkg, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_Close(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	svc := New(WithEngine(engine))
	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !engine.closed {
		t.Error("engine not closed")
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("WithTimeout(%v) did not panic", d)
				}
			}()
			WithTimeout(d)
		}()
	}
}
