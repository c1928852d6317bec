package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tplpack "github.com/rvalk/go-tplpack"
	"github.com/rvalk/go-tplpack/internal/config"
)

// runConvert converts a Markdown document to a template layout or
// package, depending on the output extension.
func runConvert(args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(positional) == 0 {
		printConvertUsage(env.Stderr)
		return ErrNoInput
	}
	inputPath := positional[0]

	if ext := filepath.Ext(inputPath); ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: %q (want .md or .markdown)", ErrInvalidExtension, ext)
	}

	cfg, err := loadConfigFor(&flags.common)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	root, err := tplpack.FromMarkdown(source)
	if err != nil {
		return err
	}
	if cfg.Text.FontFamily != "" {
		applyFontFamily(root, cfg.Text.FontFamily)
	}

	settings, err := buildPageSettings(&flags.page, cfg)
	if err != nil {
		return err
	}

	manifest := tplpack.DefaultManifest()
	manifest.Name = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if cfg.Manifest.Author != "" {
		manifest.Author = cfg.Manifest.Author
	}
	if cfg.Manifest.Version != "" {
		manifest.Version = cfg.Manifest.Version
	}
	applyManifestFlags(&manifest, &flags.manifest, env)

	outputPath := flags.output
	if outputPath == "" {
		outputPath = replaceExt(inputPath, ".json")
	}

	var output []byte
	switch ext := strings.ToLower(filepath.Ext(outputPath)); {
	case archiveExtensions[ext]:
		output, err = tplpack.PackBytes(&tplpack.Package{
			Root:     root,
			Settings: settings,
			Manifest: manifest,
		})
		if err != nil {
			return err
		}
	case ext == ".json":
		layout := map[string]any{"root": root}
		if settings != nil {
			layout["settings"] = settings
		}
		output, err = json.MarshalIndent(layout, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding layout: %w", err)
		}
	default:
		return fmt.Errorf("%w: output %q (want .json or .tpkg)", ErrInvalidExtension, ext)
	}

	if err := writeOutput(outputPath, output); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
	}
	return nil
}

// buildPageSettings creates page settings from flags and config. CLI
// flags override config values.
func buildPageSettings(flags *pageFlags, cfg *config.Config) (*tplpack.PageSettings, error) {
	ps := tplpack.DefaultPageSettings()

	if cfg.Page.Size != "" {
		ps.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin > 0 {
		m := tplpack.UniformMargins(cfg.Page.Margin)
		ps.Margins = &m
	}

	if flags.size != "" {
		ps.Size = strings.ToLower(flags.size)
	}
	if flags.orientation != "" {
		ps.Orientation = strings.ToLower(flags.orientation)
	}
	if flags.margin > 0 {
		m := tplpack.UniformMargins(flags.margin)
		ps.Margins = &m
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// applyFontFamily overrides the default font on every text node that
// kept it.
func applyFontFamily(n *tplpack.Node, family string) {
	if n == nil {
		return
	}
	if n.Type == tplpack.NodeText && n.FontFamily == tplpack.DefaultFontFamily {
		n.FontFamily = family
	}
	applyFontFamily(n.Child, family)
	for _, c := range n.Children {
		applyFontFamily(c, family)
	}
}
