package tplpack

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Reserved archive member names. Everything else is an asset.
const (
	memberLayout   = "layout.json"
	memberManifest = "manifest.json"
	memberStyles   = "styles.json"
	assetPrefix    = "assets/"
)

// Package is the unit exchanged with the archive codec: a template
// tree, optional page settings, metadata, opaque styles, optional query
// definitions and named binary assets. A package is immutable once
// serialized; unpacking always builds a fresh value.
type Package struct {
	Root     *Node
	Settings *PageSettings
	Manifest Manifest

	// Styles is carried through byte-for-byte and never interpreted.
	Styles json.RawMessage

	// Queries is carried through byte-for-byte and never processed here.
	Queries json.RawMessage

	// Assets maps logical asset names to raw binary blobs.
	Assets map[string][]byte
}

// layoutMember is the wire form of layout.json.
type layoutMember struct {
	Root     *Node           `json:"root"`
	Settings *PageSettings   `json:"settings,omitempty"`
	Queries  json.RawMessage `json:"queries,omitempty"`
}

// Pack serializes the package into archive bytes on w. Member layout:
// layout.json, manifest.json and styles.json, plus one assets/<name>
// entry per blob. Asset entries are written in name order so repeated
// packs of the same package are byte-identical.
func Pack(w io.Writer, pkg *Package) error {
	if pkg == nil || pkg.Root == nil {
		return ErrNilRoot
	}

	zw := zip.NewWriter(w)

	layout, err := json.Marshal(layoutMember{
		Root:     pkg.Root,
		Settings: pkg.Settings,
		Queries:  pkg.Queries,
	})
	if err != nil {
		return &ParseError{Member: memberLayout, Err: err}
	}
	if err := writeMember(zw, memberLayout, layout); err != nil {
		return err
	}

	manifest := pkg.Manifest
	manifest.normalize()
	manifestBytes, err := json.Marshal(manifest)
	if err != nil {
		return &ParseError{Member: memberManifest, Err: err}
	}
	if err := writeMember(zw, memberManifest, manifestBytes); err != nil {
		return err
	}

	styles := pkg.Styles
	if len(styles) == 0 {
		styles = json.RawMessage("{}")
	}
	if err := writeMember(zw, memberStyles, styles); err != nil {
		return err
	}

	names := make([]string, 0, len(pkg.Assets))
	for name := range pkg.Assets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writeMember(zw, assetPrefix+name, pkg.Assets[name]); err != nil {
			return err
		}
	}

	return zw.Close()
}

// PackBytes serializes the package into a byte slice.
func PackBytes(pkg *Package) ([]byte, error) {
	var buf bytes.Buffer
	if err := Pack(&buf, pkg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unpack reads a package archive. The layout member is mandatory;
// manifest and styles default to empty when absent. Every non-reserved
// member becomes an asset keyed by its path with the assets/ prefix
// stripped.
func Unpack(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	pkg := &Package{
		Manifest: DefaultManifest(),
		Assets:   map[string][]byte{},
	}
	var sawLayout bool

	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		data, err := readMember(f)
		if err != nil {
			return nil, err
		}

		switch f.Name {
		case memberLayout:
			sawLayout = true
			var layout layoutMember
			if err := json.Unmarshal(data, &layout); err != nil {
				return nil, &ParseError{Member: memberLayout, Err: err}
			}
			pkg.Root = layout.Root
			pkg.Settings = layout.Settings
			pkg.Queries = layout.Queries
		case memberManifest:
			var m Manifest
			if err := json.Unmarshal(data, &m); err != nil {
				return nil, &ParseError{Member: memberManifest, Err: err}
			}
			m.normalize()
			pkg.Manifest = m
		case memberStyles:
			if !json.Valid(data) {
				return nil, &ParseError{Member: memberStyles, Err: fmt.Errorf("invalid JSON")}
			}
			pkg.Styles = json.RawMessage(data)
		default:
			pkg.Assets[strings.TrimPrefix(f.Name, assetPrefix)] = data
		}
	}

	if !sawLayout {
		return nil, ErrMissingLayout
	}
	return pkg, nil
}

// UnpackBytes reads a package archive from a byte slice.
func UnpackBytes(data []byte) (*Package, error) {
	return Unpack(bytes.NewReader(data), int64(len(data)))
}

// ParseLayout decodes a standalone layout.json document: a root
// template node with optional settings and query passthrough.
func ParseLayout(data []byte) (*Node, *PageSettings, error) {
	var layout layoutMember
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, nil, &ParseError{Member: memberLayout, Err: err}
	}
	if layout.Root == nil {
		return nil, nil, ErrNoRoot
	}
	return layout.Root, layout.Settings, nil
}

func writeMember(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating member %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing member %s: %w", name, err)
	}
	return nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrInvalidArchive, f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidArchive, f.Name, err)
	}
	return data, nil
}
