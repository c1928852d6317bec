// Package yamlutil is the single seam to the YAML library. The CLI
// feeds it two kinds of documents: config files (strict, unknown keys
// rejected) and binding-data files for rendering (lenient, and since
// YAML is a superset of JSON the one decoder covers both notations).
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize caps decoded documents. Configs and binding data are
// small by nature; anything near this limit is a mistake or an attack.
const MaxDocumentSize = 1 << 20

var (
	ErrEmptyDocument    = errors.New("yamlutil: empty document")
	ErrNilDestination   = errors.New("yamlutil: nil destination pointer")
	ErrDocumentTooLarge = errors.New("yamlutil: document exceeds size limit")
)

// Unmarshal decodes a YAML or JSON document into v, tolerating keys v
// does not declare.
func Unmarshal(data []byte, v any) error {
	return unmarshal(data, v)
}

// UnmarshalStrict decodes like Unmarshal but rejects unknown keys.
// Used for config files, where a typoed key silently doing nothing is
// worse than an error.
func UnmarshalStrict(data []byte, v any) error {
	return unmarshal(data, v, yaml.Strict())
}

func unmarshal(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrEmptyDocument
	case len(data) > MaxDocumentSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(data), MaxDocumentSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
