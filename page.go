package tplpack

import (
	"fmt"
	"strings"
)

// Page size classes.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation values.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// DefaultMargin is applied to every side when a live tree carries no
// page wrapper, and when settings omit margins. In PDF points.
const DefaultMargin = 40.0

// Page dimensions in points, portrait.
var pageDimensions = map[string][2]float64{
	PageSizeA4:     {595, 842},
	PageSizeLetter: {612, 792},
	PageSizeLegal:  {612, 1008},
}

// Margins holds per-side page margins in points.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// UniformMargins returns margins with the same value on every side.
func UniformMargins(v float64) Margins {
	return Margins{Top: v, Right: v, Bottom: v, Left: v}
}

// PageSettings configures page geometry for a template.
type PageSettings struct {
	Size        string   `json:"size,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	Width       float64  `json:"width,omitempty"`  // custom, overrides Size
	Height      float64  `json:"height,omitempty"` // custom, overrides Size
	Margins     *Margins `json:"margins,omitempty"`
	Background  *Color   `json:"background,omitempty"`
}

// DefaultPageSettings returns A4 portrait with 40-point margins.
func DefaultPageSettings() *PageSettings {
	m := UniformMargins(DefaultMargin)
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margins:     &m,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.Size != "" && !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if p.Orientation != "" && !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margins != nil {
		for _, v := range []float64{p.Margins.Top, p.Margins.Right, p.Margins.Bottom, p.Margins.Left} {
			if v < 0 {
				return fmt.Errorf("%w: %.2f (must not be negative)", ErrInvalidMargin, v)
			}
		}
	}
	return nil
}

// Dimensions returns the page width and height in points, honoring
// custom width/height first, then the size class and orientation.
func (p *PageSettings) Dimensions() (width, height float64) {
	if p != nil && p.Width > 0 && p.Height > 0 {
		return p.Width, p.Height
	}
	size := PageSizeA4
	orientation := OrientationPortrait
	if p != nil {
		if p.Size != "" {
			size = strings.ToLower(p.Size)
		}
		if p.Orientation != "" {
			orientation = strings.ToLower(p.Orientation)
		}
	}
	dims, ok := pageDimensions[size]
	if !ok {
		dims = pageDimensions[PageSizeA4]
	}
	if orientation == OrientationLandscape {
		return dims[1], dims[0]
	}
	return dims[0], dims[1]
}

// EffectiveMargins returns the configured margins or the 40-point
// default on every side.
func (p *PageSettings) EffectiveMargins() Margins {
	if p == nil || p.Margins == nil {
		return UniformMargins(DefaultMargin)
	}
	return *p.Margins
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	_, ok := pageDimensions[strings.ToLower(size)]
	return ok
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}
