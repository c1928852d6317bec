package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tplpack "github.com/rvalk/go-tplpack"
)

// runPack bundles a template directory into a package archive.
func runPack(args []string, env *Environment) error {
	flags, positional, err := parsePackFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(positional) == 0 {
		printPackUsage(env.Stderr)
		return ErrNoInput
	}
	dir := positional[0]

	pkg, err := readPackageDir(dir)
	if err != nil {
		return err
	}
	applyManifestFlags(&pkg.Manifest, &flags.manifest, env)

	archive, err := tplpack.PackBytes(pkg)
	if err != nil {
		return err
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(filepath.Clean(dir), string(filepath.Separator)) + ".tpkg"
	}
	if err := writeOutput(outputPath, archive); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%d assets)\n", outputPath, len(pkg.Assets))
	}
	return nil
}

// readPackageDir builds a Package from an unpacked template directory.
// layout.json is mandatory; manifest.json, styles.json and assets/ are
// optional.
func readPackageDir(dir string) (*tplpack.Package, error) {
	layoutData, err := os.ReadFile(filepath.Join(dir, "layout.json")) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tplpack.ErrMissingLayout
		}
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	root, settings, err := tplpack.ParseLayout(layoutData)
	if err != nil {
		return nil, err
	}

	pkg := &tplpack.Package{
		Root:     root,
		Settings: settings,
		Manifest: tplpack.DefaultManifest(),
	}

	if data, err := os.ReadFile(filepath.Join(dir, "manifest.json")); err == nil { // #nosec G304
		var m tplpack.Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing manifest.json: %w", err)
		}
		pkg.Manifest = m
	}

	if data, err := os.ReadFile(filepath.Join(dir, "styles.json")); err == nil { // #nosec G304
		if !json.Valid(data) {
			return nil, fmt.Errorf("styles.json: invalid JSON")
		}
		pkg.Styles = json.RawMessage(data)
	}

	assetsDir := filepath.Join(dir, "assets")
	if info, err := os.Stat(assetsDir); err == nil && info.IsDir() {
		pkg.Assets = map[string][]byte{}
		err := filepath.WalkDir(assetsDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			data, err := os.ReadFile(path) // #nosec G304 -- discovered path
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(assetsDir, path)
			if err != nil {
				return err
			}
			pkg.Assets[filepath.ToSlash(rel)] = data
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
	}

	return pkg, nil
}

// applyManifestFlags merges manifest flags into the manifest. CLI wins.
func applyManifestFlags(m *tplpack.Manifest, f *manifestFlags, env *Environment) {
	if f.name != "" {
		m.Name = f.name
	}
	if f.author != "" {
		m.Author = f.author
	}
	if f.version != "" {
		m.Version = f.version
	}
	if m.CreatedAt == nil {
		now := env.Now().UTC()
		m.CreatedAt = &now
	}
}
