package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	tplpack "github.com/rvalk/go-tplpack"
	"github.com/rvalk/go-tplpack/internal/fileutil"
)

// runUnpack extracts a package archive into a directory.
func runUnpack(args []string, env *Environment) error {
	flags, positional, err := parseUnpackFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(positional) == 0 {
		printUnpackUsage(env.Stderr)
		return ErrNoInput
	}
	archivePath := positional[0]

	pkg, err := loadPackage(archivePath)
	if err != nil {
		return err
	}

	outputDir := flags.output
	if outputDir == "" {
		base := filepath.Base(archivePath)
		outputDir = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if err := writePackageDir(outputDir, pkg); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Extracted %s to %s\n", archivePath, outputDir)
	}
	return nil
}

// writePackageDir lays out a package as a directory: layout.json,
// manifest.json, styles.json and assets/<name>. Asset names pass
// through a traversal guard since they come from the archive.
func writePackageDir(dir string, pkg *tplpack.Package) error {
	if err := fileutil.EnsureDir(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	layout := map[string]any{"root": pkg.Root}
	if pkg.Settings != nil {
		layout["settings"] = pkg.Settings
	}
	if len(pkg.Queries) > 0 {
		layout["queries"] = pkg.Queries
	}
	layoutData, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding layout.json: %w", err)
	}
	if err := writeOutput(filepath.Join(dir, "layout.json"), layoutData); err != nil {
		return err
	}

	manifestData, err := json.MarshalIndent(pkg.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest.json: %w", err)
	}
	if err := writeOutput(filepath.Join(dir, "manifest.json"), manifestData); err != nil {
		return err
	}

	styles := pkg.Styles
	if len(styles) == 0 {
		styles = json.RawMessage("{}")
	}
	if err := writeOutput(filepath.Join(dir, "styles.json"), styles); err != nil {
		return err
	}

	for name, data := range pkg.Assets {
		path, err := fileutil.SafeChild(filepath.Join(dir, "assets"), name)
		if err != nil {
			return fmt.Errorf("%w: %v", tplpack.ErrInvalidArchive, err)
		}
		if err := writeOutput(path, data); err != nil {
			return err
		}
	}

	return nil
}
