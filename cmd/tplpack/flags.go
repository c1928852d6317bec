package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page geometry flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// manifestFlags holds manifest metadata flags.
type manifestFlags struct {
	name    string
	author  string
	version string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	output  string
	data    string
	timeout string
}

// packFlags holds all flags for the pack command.
type packFlags struct {
	common   commonFlags
	output   string
	manifest manifestFlags
}

// unpackFlags holds all flags for the unpack command.
type unpackFlags struct {
	common commonFlags
	output string
}

// validateFlags holds all flags for the validate command.
type validateFlags struct {
	common commonFlags
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	page     pageFlags
	manifest manifestFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addPageFlags adds page geometry flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in points")
}

// addManifestFlags adds manifest metadata flags to a FlagSet.
func addManifestFlags(fs *flag.FlagSet, f *manifestFlags) {
	fs.StringVar(&f.name, "name", "", "template name")
	fs.StringVar(&f.author, "author", "", "template author")
	fs.StringVar(&f.version, "template-version", "", "template version string")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.StringVarP(&f.data, "data", "d", "", "data file (YAML or JSON) for dynamic bindings")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePackFlags parses pack command flags and returns positional args.
func parsePackFlags(args []string) (*packFlags, []string, error) {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	f := &packFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output archive path")
	addManifestFlags(fs, &f.manifest)
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printPackUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseUnpackFlags parses unpack command flags and returns positional args.
func parseUnpackFlags(args []string) (*unpackFlags, []string, error) {
	fs := flag.NewFlagSet("unpack", flag.ContinueOnError)
	f := &unpackFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printUnpackUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseValidateFlags parses validate command flags and returns positional args.
func parseValidateFlags(args []string) (*validateFlags, []string, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	f := &validateFlags{}

	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printValidateUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output path (.json or .tpkg)")
	addPageFlags(fs, &f.page)
	addManifestFlags(fs, &f.manifest)
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
