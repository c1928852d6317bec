// Package config loads CLI configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rvalk/go-tplpack/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for multi-tenant safety.
const (
	MaxNameLength        = 100  // Template or author name
	MaxVersionLength     = 50   // Semver-ish version string
	MaxPageSizeLength    = 10   // "letter", "a4", "legal", "custom"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxPathLength        = 2048 // File system path
	MaxFontLength        = 100  // Font family name
)

// Config holds all configuration for the CLI.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Page     PageConfig     `yaml:"page"`
	Render   RenderConfig   `yaml:"render"`
	Manifest ManifestConfig `yaml:"manifest"`
	Text     TextConfig     `yaml:"text"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// PageConfig defines default page geometry for new templates.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "a4")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // points, applied to all four sides (default: 40)
}

// RenderConfig defines PDF rendering options.
type RenderConfig struct {
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // Per-render timeout (default: 30)
	BrowserBin     string `yaml:"browserBin"`     // Chrome binary path (empty = managed download)
}

// ManifestConfig defines defaults stamped into new package manifests.
type ManifestConfig struct {
	Author  string `yaml:"author"`
	Version string `yaml:"version"` // Default "1.0.0"
}

// TextConfig defines default text styling for Markdown conversion.
type TextConfig struct {
	FontFamily string `yaml:"fontFamily"` // Empty = Helvetica
}

// Validate checks field values and lengths. Called automatically by
// LoadConfig, but available for consumers who construct Config
// manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal", "custom":
			// valid
		default:
			return fmt.Errorf("page.size: invalid value %q (must be letter, a4, legal, or custom)", c.Page.Size)
		}
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
			// valid
		default:
			return fmt.Errorf("page.orientation: invalid value %q (must be portrait or landscape)", c.Page.Orientation)
		}
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("page.margin: must be non-negative, got %.2f", c.Page.Margin)
	}

	if c.Render.TimeoutSeconds < 0 {
		return fmt.Errorf("render.timeoutSeconds: must be non-negative, got %d", c.Render.TimeoutSeconds)
	}
	if err := validateFieldLength("render.browserBin", c.Render.BrowserBin, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("manifest.author", c.Manifest.Author, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("manifest.version", c.Manifest.Version, MaxVersionLength); err != nil {
		return err
	}

	if err := validateFieldLength("text.fontFamily", c.Text.FontFamily, MaxFontLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Page:   PageConfig{Size: "a4", Orientation: "portrait", Margin: 40},
		Render: RenderConfig{TimeoutSeconds: 30},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/tplpack/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "tplpack", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
