package tplpack

// Notes:
// - Validate: size/orientation keywords, negative margins, nil settings
// - Dimensions: size classes, orientation swap, custom dimensions
// - EffectiveMargins: 40-point default when unset

import (
	"errors"
	"testing"
)

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ps      *PageSettings
		wantErr error
	}{
		{
			name:    "nil is valid (use defaults)",
			ps:      nil,
			wantErr: nil,
		},
		{
			name:    "empty is valid (use defaults)",
			ps:      &PageSettings{},
			wantErr: nil,
		},
		{
			name:    "valid a4 portrait",
			ps:      DefaultPageSettings(),
			wantErr: nil,
		},
		{
			name:    "valid letter landscape",
			ps:      &PageSettings{Size: PageSizeLetter, Orientation: OrientationLandscape},
			wantErr: nil,
		},
		{
			name:    "case insensitive size",
			ps:      &PageSettings{Size: "A4"},
			wantErr: nil,
		},
		{
			name:    "case insensitive orientation",
			ps:      &PageSettings{Orientation: "LANDSCAPE"},
			wantErr: nil,
		},
		{
			name:    "invalid page size",
			ps:      &PageSettings{Size: "tabloid"},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "invalid orientation",
			ps:      &PageSettings{Orientation: "diagonal"},
			wantErr: ErrInvalidOrientation,
		},
		{
			name: "negative margin",
			ps: &PageSettings{
				Margins: &Margins{Top: -1, Right: 40, Bottom: 40, Left: 40},
			},
			wantErr: ErrInvalidMargin,
		},
		{
			name: "zero margins valid",
			ps: &PageSettings{
				Margins: &Margins{},
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.ps.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettings_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		ps         *PageSettings
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "nil defaults to a4 portrait",
			ps:         nil,
			wantWidth:  595,
			wantHeight: 842,
		},
		{
			name:       "a4 portrait",
			ps:         &PageSettings{Size: PageSizeA4},
			wantWidth:  595,
			wantHeight: 842,
		},
		{
			name:       "a4 landscape swaps",
			ps:         &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape},
			wantWidth:  842,
			wantHeight: 595,
		},
		{
			name:       "letter portrait",
			ps:         &PageSettings{Size: PageSizeLetter},
			wantWidth:  612,
			wantHeight: 792,
		},
		{
			name:       "legal portrait",
			ps:         &PageSettings{Size: PageSizeLegal},
			wantWidth:  612,
			wantHeight: 1008,
		},
		{
			name:       "custom dimensions win over size class",
			ps:         &PageSettings{Size: PageSizeA4, Width: 400, Height: 300},
			wantWidth:  400,
			wantHeight: 300,
		},
		{
			name:       "unknown size falls back to a4",
			ps:         &PageSettings{Size: "tabloid"},
			wantWidth:  595,
			wantHeight: 842,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h := tt.ps.Dimensions()
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("Dimensions() = (%v, %v), want (%v, %v)", w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestPageSettings_EffectiveMargins(t *testing.T) {
	t.Parallel()

	var nilSettings *PageSettings
	if got := nilSettings.EffectiveMargins(); got != UniformMargins(DefaultMargin) {
		t.Errorf("nil settings margins = %+v, want uniform 40", got)
	}

	m := Margins{Top: 10, Right: 20, Bottom: 30, Left: 40}
	ps := &PageSettings{Margins: &m}
	if got := ps.EffectiveMargins(); got != m {
		t.Errorf("EffectiveMargins() = %+v, want %+v", got, m)
	}
}
