package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tplpack "github.com/rvalk/go-tplpack"
)

// runRender renders a package or layout to PDF.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(positional) == 0 {
		printRenderUsage(env.Stderr)
		return ErrNoInput
	}
	inputPath := positional[0]

	cfg, err := loadConfigFor(&flags.common)
	if err != nil {
		return err
	}

	pkg, err := loadPackage(inputPath)
	if err != nil {
		return err
	}

	data, err := loadData(flags.data)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, cfg.Render.TimeoutSeconds)
	if err != nil {
		return err
	}

	// The engine reads ROD_BROWSER_BIN when launching.
	if cfg.Render.BrowserBin != "" {
		if err := os.Setenv("ROD_BROWSER_BIN", cfg.Render.BrowserBin); err != nil {
			return fmt.Errorf("setting browser binary: %w", err)
		}
	}

	svc := tplpack.New(tplpack.WithTimeout(timeout))
	defer svc.Close()

	start := env.Now()
	pdf, err := svc.Render(ctx, pkg, data)
	if err != nil {
		return err
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = replaceExt(inputPath, ".pdf")
	}
	if err := writeOutput(outputPath, pdf); err != nil {
		return err
	}

	if !flags.common.quiet {
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", inputPath, outputPath, env.Now().Sub(start).Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
		}
	}
	return nil
}

// resolveTimeout picks the flag value over the config value.
func resolveTimeout(flagValue string, configSeconds int) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: invalid timeout %q", errUsage, flagValue)
		}
		return d, nil
	}
	if configSeconds > 0 {
		return time.Duration(configSeconds) * time.Second, nil
	}
	return 30 * time.Second, nil
}
