// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// FormatText, FormatJSON and FormatTOML are the accepted list formats.
	FormatText = "text"
	FormatJSON = "json"
	FormatTOML = "toml"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds spit's settings.
	Config struct {
		// Defaults seeds flag values when the flag is not given.
		Defaults DefaultsConfig `json:"defaults" mapstructure:"defaults"`
		// UI configures diagnostics output.
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// SourcePath is the settings file that was read, empty when none was.
		SourcePath string `json:"-" mapstructure:"-"`
	}

	// DefaultsConfig holds defaults for lookup and listing flags.
	DefaultsConfig struct {
		Sep    string `json:"sep" mapstructure:"sep"`
		Warn   bool   `json:"warn" mapstructure:"warn"`
		Pass   bool   `json:"pass" mapstructure:"pass"`
		Format string `json:"format" mapstructure:"format"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging and extended error output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme selects the style used for rendered help.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Sep:    "",
			Warn:   false,
			Pass:   false,
			Format: FormatText,
		},
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid checks values that can bypass the CUE schema, i.e. those coming
// from environment variables.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	switch c.Defaults.Format {
	case FormatText, FormatJSON, FormatTOML:
	default:
		errs = append(errs, fmt.Errorf("invalid list format %q (valid: text, json, toml)", c.Defaults.Format))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", errors.Join(e.FieldErrors...))
}

// Unwrap exposes ErrInvalidConfig and every field error to errors.Is().
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
