package main

import (
	"context"
	"fmt"
)

// run dispatches the top-level command.
func run(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return errUsage
	}

	ctx := context.Background()

	switch args[0] {
	case "render":
		return runRender(ctx, args[1:], env)
	case "pack":
		return runPack(args[1:], env)
	case "unpack":
		return runUnpack(args[1:], env)
	case "validate":
		return runValidate(args[1:], env)
	case "convert":
		return runConvert(args[1:], env)
	case "version":
		fmt.Fprintf(env.Stdout, "tplpack %s\n", Version)
		return nil
	case "help", "--help", "-h":
		runHelp(args[1:], env)
		return nil
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return errUsage
	}
}
