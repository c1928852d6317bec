package tplpack

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	// ErrNilRoot is returned when a conversion is asked to run without a tree.
	ErrNilRoot = errors.New("template root cannot be nil")

	// ErrInvalidArchive marks an unreadable or corrupt package archive.
	ErrInvalidArchive = errors.New("invalid or corrupt package archive")

	// ErrMissingLayout marks an archive without the mandatory layout member.
	ErrMissingLayout = errors.New("package is missing layout.json")

	// ErrNoRoot marks a layout document that declares no root node.
	ErrNoRoot = errors.New("layout declares no root node")

	// ErrMemberParse marks a JSON decode failure on a package member.
	// The concrete error is a *ParseError naming the member.
	ErrMemberParse = errors.New("package member failed to parse")

	// ErrAssetUnresolved marks an image reference with no matching asset.
	// Non-fatal: the importer degrades the node to a placeholder.
	ErrAssetUnresolved = errors.New("asset reference unresolved")

	// ErrUnsupportedType marks an unrecognized node type tag. Non-fatal:
	// the affected subtree degrades to an empty result.
	ErrUnsupportedType = errors.New("unsupported node type")

	// Render engine errors.
	ErrRenderFailed   = errors.New("render failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)

// ParseError reports a JSON decode failure on a named package member.
// It matches ErrMemberParse under errors.Is and unwraps to the decode
// error itself.
type ParseError struct {
	Member string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Member, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrMemberParse }

// UnsupportedTypeError reports an unrecognized node type tag seen during
// import or export. The subtree was skipped, not the whole conversion.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported node type %q", e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }
