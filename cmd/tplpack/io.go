package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tplpack "github.com/rvalk/go-tplpack"
	"github.com/rvalk/go-tplpack/internal/config"
	"github.com/rvalk/go-tplpack/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadInput        = errors.New("failed to read input file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrInvalidExtension = errors.New("unrecognized input extension")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// archiveExtensions are recognized package archive suffixes.
var archiveExtensions = map[string]bool{
	".tpkg": true,
	".zip":  true,
}

// loadConfigFor loads the config named by the flag, or defaults.
func loadConfigFor(f *commonFlags) (*config.Config, error) {
	if f.config == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(f.config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// loadPackage reads a package from an archive or a standalone layout
// document, depending on the input extension.
func loadPackage(path string) (*tplpack.Package, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case archiveExtensions[ext]:
		return tplpack.UnpackBytes(data)
	case ext == ".json":
		root, settings, err := tplpack.ParseLayout(data)
		if err != nil {
			return nil, err
		}
		return &tplpack.Package{
			Root:     root,
			Settings: settings,
			Manifest: tplpack.DefaultManifest(),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want .tpkg, .zip, or .json)", ErrInvalidExtension, ext)
	}
}

// loadData reads a YAML or JSON data file for dynamic bindings.
// YAML is a superset of JSON, so one decoder covers both.
func loadData(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	var data map[string]any
	if err := yamlutil.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}
	return data, nil
}

// replaceExt swaps the input path's extension.
func replaceExt(path, newExt string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + newExt
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	// #nosec G306 -- outputs are meant to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
