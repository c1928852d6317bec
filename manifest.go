package tplpack

import "time"

// Manifest defaults applied when the member omits them.
const (
	DefaultManifestName    = "untitled"
	DefaultManifestVersion = "1.0.0"
)

// Manifest is the package metadata member. Everything is optional;
// name and version fall back to documented defaults when absent.
type Manifest struct {
	Name          string     `json:"name"`
	Version       string     `json:"version"`
	Author        string     `json:"author,omitempty"`
	EngineVersion string     `json:"engineVersion,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	ModifiedAt    *time.Time `json:"modifiedAt,omitempty"`
}

// DefaultManifest returns a manifest with the documented defaults.
func DefaultManifest() Manifest {
	return Manifest{Name: DefaultManifestName, Version: DefaultManifestVersion}
}

// normalize fills absent name/version with their defaults.
func (m *Manifest) normalize() {
	if m.Name == "" {
		m.Name = DefaultManifestName
	}
	if m.Version == "" {
		m.Version = DefaultManifestVersion
	}
}
