package tplpack

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/rvalk/go-tplpack/internal/fileutil"
	"github.com/rvalk/go-tplpack/internal/htmlutil"
)

// RenderEngine is the boundary to the external rendering engine: it
// accepts a package plus a data object and produces output bytes. The
// converter's sole contract with this boundary is handing it a valid
// template tree and a consistent asset map; the engine's internals are
// opaque.
type RenderEngine interface {
	Render(ctx context.Context, pkg *Package, data map[string]any) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ RenderEngine = (*chromeEngine)(nil)

// pointsPerInch converts page geometry for Chrome's print API.
const pointsPerInch = 72.0

// htmlShell wraps the imported page markup in a complete HTML5 document.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>html, body { margin: 0; padding: 0; }</style>
</head>
<body>
%s
</body>
</html>`

// ResolveBindings returns a copy of the tree with every DynamicText
// node replaced by a plain Text node holding the value looked up in
// data. Binding names are dotted paths into nested maps; an unmatched
// path resolves to the empty string.
func ResolveBindings(root *Node, data map[string]any) *Node {
	if root == nil {
		return nil
	}
	out := root.Clone()
	resolveBindings(out, data)
	return out
}

func resolveBindings(n *Node, data map[string]any) {
	if n == nil {
		return
	}
	if n.Type == NodeDynamicText {
		text := NewText(lookupPath(data, n.Binding))
		text.Size = n.Size
		*n = *text
		return
	}
	resolveBindings(n.Child, data)
	for _, c := range n.Children {
		resolveBindings(c, data)
	}
}

// lookupPath resolves a dotted path ("customer.name") in nested maps.
func lookupPath(data map[string]any, path string) string {
	if path == "" {
		return ""
	}
	var cur any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = m[part]
		if !ok {
			return ""
		}
	}
	if cur == nil {
		return ""
	}
	if s, ok := cur.(string); ok {
		return s
	}
	return fmt.Sprint(cur)
}

// wrapDocument builds the complete HTML document handed to the
// browser. The title is untrusted manifest data and gets escaped.
func wrapDocument(title, markup string) string {
	return fmt.Sprintf(htmlShell, htmlutil.EscapeText(title), markup)
}

// chromeEngine renders packages to PDF with headless Chrome via go-rod:
// the template is imported to live markup, loaded as a local file, and
// printed with the package's page geometry.
type chromeEngine struct {
	browser *rod.Browser
	timeout time.Duration
}

// newChromeEngine creates a Chrome engine with the given timeout.
// The browser launches lazily on first render.
func newChromeEngine(timeout time.Duration) *chromeEngine {
	return &chromeEngine{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (e *chromeEngine) ensureBrowser() error {
	if e.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (containerized environments).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.browser = rod.New().ControlURL(u)
	if err := e.browser.Connect(); err != nil {
		e.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Render resolves data bindings, imports the template to markup and
// prints it to PDF bytes.
func (e *chromeEngine) Render(ctx context.Context, pkg *Package, data map[string]any) ([]byte, error) {
	if pkg == nil || pkg.Root == nil {
		return nil, ErrNilRoot
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := ResolveBindings(pkg.Root, data)
	result, err := Import(resolved, pkg.Settings, ResolveAssets(pkg.Assets))
	if err != nil {
		return nil, err
	}

	doc := wrapDocument(pkg.Manifest.Name, result.Markup)
	tmpPath, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.printFile(ctx, tmpPath, pkg.Settings)
}

// printFile loads a local HTML file in headless Chrome and prints it.
func (e *chromeEngine) printFile(ctx context.Context, filePath string, settings *PageSettings) ([]byte, error) {
	if err := e.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := e.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(settings))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrRenderFailed, err)
	}
	return pdf, nil
}

// buildPrintOptions maps page settings to Chrome's print API. Margins
// stay zero: the page wrapper already carries them as padding, so the
// printed page matches the editing surface exactly.
func buildPrintOptions(settings *PageSettings) *proto.PagePrintToPDF {
	width, height := settings.Dimensions()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width / pointsPerInch),
		PaperHeight:     floatPtr(height / pointsPerInch),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	}
}

// Close releases browser resources.
func (e *chromeEngine) Close() error {
	if e.browser != nil {
		err := e.browser.Close()
		e.browser = nil
		return err
	}
	return nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
