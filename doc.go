// Package tplpack converts between a live HTML editing tree and a
// portable, versioned document-template representation, and packs
// templates into self-contained zip archives.
//
// # Quick Start
//
// Turn a template tree into editable page markup and back:
//
//	result, err := tplpack.Import(root, settings, assets)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// ... user edits result.Markup in a browser ...
//	exported, err := tplpack.ExportHTML(editedMarkup)
//
// Import and Export are inverses: exporting imported markup yields a
// tree equal to the original, and importing an exported tree produces
// markup whose semantics survive another export.
//
// # Packages
//
// A Package bundles a template tree, page settings, a manifest and
// binary assets into one archive:
//
//	var buf bytes.Buffer
//	err := tplpack.Pack(&buf, &tplpack.Package{
//	    Root:     root,
//	    Settings: tplpack.DefaultPageSettings(),
//	    Assets:   map[string][]byte{"logo.png": logoBytes},
//	})
//
//	pkg, err := tplpack.UnpackBytes(buf.Bytes())
//
// Packing is deterministic: packing an unpacked package reproduces the
// archive's semantic content byte for byte, member by member.
//
// # Rendering
//
// A Service renders packages to PDF via headless Chrome:
//
//	svc := tplpack.New(tplpack.WithTimeout(time.Minute))
//	defer svc.Close()
//
//	pdf, err := svc.Render(ctx, pkg, map[string]any{
//	    "customer": map[string]any{"name": "Acme"},
//	})
//
// DynamicText nodes resolve their dotted binding paths against the
// data object before rendering; unmatched bindings render empty.
//
// # Markdown
//
// FromMarkdown builds a template tree from a Markdown document
// (headings, paragraphs, GFM tables, images, lists):
//
//	root, err := tplpack.FromMarkdown(source)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run
// (~/.cache/rod/browser/). Use ROD_BROWSER_BIN to point at an existing
// Chrome binary; in CI the sandbox is disabled automatically.
package tplpack
