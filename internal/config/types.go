// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cluelessplus/maketar/pkg/version"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the effective maketar configuration.
	Config struct {
		// Name is the product display name, e.g. "CluelessPlus".
		Name string `json:"name" mapstructure:"name"`
		// VersionFile is the file scanned for the version declaration.
		VersionFile string `json:"version_file" mapstructure:"version_file"`
		// Identifier is the constant holding the version.
		Identifier string `json:"identifier" mapstructure:"identifier"`
		// Include lists release file patterns.
		Include []string `json:"include" mapstructure:"include"`
		// OutputDir receives the archive; empty means the working directory.
		OutputDir string `json:"output_dir" mapstructure:"output_dir"`
		// AllowMissing skips absent named release files.
		AllowMissing bool `json:"allow_missing" mapstructure:"allow_missing"`
		// UI holds presentation settings.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Style is the glamour style used for remediation notes.
		Style string `json:"style" mapstructure:"style"`
	}

	// InvalidConfigError reports a configuration value that cannot be used.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Field  string
		Reason string
	}
)

// DefaultConfig returns the configuration used when nothing else is set.
// It reproduces the CluelessPlus release layout.
func DefaultConfig() *Config {
	return &Config{
		Name:        "CluelessPlus",
		VersionFile: version.DefaultSource,
		Identifier:  version.DefaultIdentifier,
		Include:     []string{"*.nut", "readme.txt", "changelog.txt", "license.txt"},
		UI: UIConfig{
			Style: "auto",
		},
	}
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfig.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks the constraints flags and environment can break after
// the CUE schema has been applied to the file.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &InvalidConfigError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.VersionFile) == "" {
		return &InvalidConfigError{Field: "version_file", Reason: "must not be empty"}
	}
	if _, err := version.Pattern(c.Identifier); err != nil {
		return &InvalidConfigError{Field: "identifier", Reason: err.Error()}
	}
	if len(c.Include) == 0 {
		return &InvalidConfigError{Field: "include", Reason: "at least one pattern is required"}
	}
	for i, p := range c.Include {
		if strings.TrimSpace(p) == "" {
			return &InvalidConfigError{Field: fmt.Sprintf("include[%d]", i), Reason: "must not be empty"}
		}
	}
	return nil
}
