package main

import (
	"fmt"
)

// runValidate checks a package or layout for structural problems.
func runValidate(args []string, env *Environment) error {
	flags, positional, err := parseValidateFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(positional) == 0 {
		printValidateUsage(env.Stderr)
		return ErrNoInput
	}
	inputPath := positional[0]

	pkg, err := loadPackage(inputPath)
	if err != nil {
		return err
	}
	if err := pkg.Settings.Validate(); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%s: OK (%s %s, %d assets)\n",
			inputPath, pkg.Manifest.Name, pkg.Manifest.Version, len(pkg.Assets))
	}
	return nil
}
