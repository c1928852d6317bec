package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tplpack <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a template package or layout to PDF")
	fmt.Fprintln(w, "  pack       Bundle a template directory into a package archive")
	fmt.Fprintln(w, "  unpack     Extract a package archive into a directory")
	fmt.Fprintln(w, "  validate   Check a package or layout for structural problems")
	fmt.Fprintln(w, "  convert    Convert a Markdown document to a template")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tplpack help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tplpack render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a template package (.tpkg) or layout (.json) to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>    Output PDF path (default: input name with .pdf)")
	fmt.Fprintln(w, "  -d, --data <path>      Data file (YAML or JSON) for dynamic bindings")
	fmt.Fprintln(w, "  -t, --timeout <dur>    Render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
	fmt.Fprintln(w, "  -v, --verbose          Show detailed progress")
}

// printPackUsage prints usage for the pack command.
func printPackUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tplpack pack <dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bundle a template directory into a package archive.")
	fmt.Fprintln(w, "The directory must contain layout.json; manifest.json, styles.json")
	fmt.Fprintln(w, "and assets/ are picked up when present.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>        Output archive path (default: <dir>.tpkg)")
	fmt.Fprintln(w, "      --name <s>             Template name")
	fmt.Fprintln(w, "      --author <s>           Template author")
	fmt.Fprintln(w, "      --template-version <s> Template version string")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
}

// printUnpackUsage prints usage for the unpack command.
func printUnpackUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tplpack unpack <archive> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Extract a package archive into a directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>     Output directory (default: archive name)")
}

// printValidateUsage prints usage for the validate command.
func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tplpack validate <input>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check a package (.tpkg) or layout (.json) for structural problems.")
	fmt.Fprintln(w, "Exits 0 when valid, 2 when the content is invalid.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tplpack convert <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown document to a template layout or package.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>        Output path: .json layout or .tpkg package")
	fmt.Fprintln(w, "  -p, --page-size <s>        Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>      Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>           Margin in points")
	fmt.Fprintln(w, "      --name <s>             Template name")
	fmt.Fprintln(w, "      --author <s>           Template author")
	fmt.Fprintln(w, "      --template-version <s> Template version string")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "pack":
		printPackUsage(env.Stdout)
	case "unpack":
		printUnpackUsage(env.Stdout)
	case "validate":
		printValidateUsage(env.Stdout)
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: tplpack version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: tplpack help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
