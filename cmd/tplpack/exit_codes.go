package main

import (
	"errors"
	"os"

	tplpack "github.com/rvalk/go-tplpack"
	"github.com/rvalk/go-tplpack/internal/config"
)

// Exit codes for the tplpack CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful operation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or template content
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// errUsage signals a bad invocation whose message was already printed.
var errUsage = errors.New("usage error")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, tplpack.ErrBrowserConnect) ||
		errors.Is(err, tplpack.ErrPageCreate) ||
		errors.Is(err, tplpack.ErrPageLoad) ||
		errors.Is(err, tplpack.ErrRenderFailed) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/content errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, tplpack.ErrInvalidArchive) ||
		errors.Is(err, tplpack.ErrMissingLayout) ||
		errors.Is(err, tplpack.ErrMemberParse) ||
		errors.Is(err, tplpack.ErrNoRoot) ||
		errors.Is(err, tplpack.ErrNilRoot) ||
		errors.Is(err, tplpack.ErrInvalidPageSize) ||
		errors.Is(err, tplpack.ErrInvalidOrientation) ||
		errors.Is(err, tplpack.ErrInvalidMargin) {
		return ExitUsage
	}

	return ExitGeneral
}
