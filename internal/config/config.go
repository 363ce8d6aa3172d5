// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/spit-cli/spit/internal/issue"
	"github.com/spit-cli/spit/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "spit"
	// ConfigFileName is the name of the settings file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the settings file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variable overrides (SPIT_DEFAULTS_SEP, ...).
	EnvPrefix = "SPIT"

	// maxSettingsFileSize bounds the settings file read before CUE parsing.
	maxSettingsFileSize = 64 << 10
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the spit configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// newViper returns a Viper instance carrying built-in defaults and the
// SPIT_* environment bindings.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("defaults.sep", defaults.Defaults.Sep)
	v.SetDefault("defaults.warn", defaults.Defaults.Warn)
	v.SetDefault("defaults.pass", defaults.Defaults.Pass)
	v.SetDefault("defaults.format", defaults.Defaults.Format)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// loadWithOptions layers defaults, the settings file and environment
// variables. A missing default settings file is not an error; a missing
// explicit one is.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	path := opts.ConfigFilePath
	explicit := path != ""
	if !explicit {
		cfgDir := opts.ConfigDirPath
		if cfgDir == "" {
			// Without a home directory there is no settings file; defaults and env still apply.
			if dir, err := ConfigDir(); err == nil {
				cfgDir = dir
			}
		}
		if cfgDir != "" {
			path = filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		}
	}

	resolvedPath := ""
	if path != "" {
		err := loadCUEIntoViper(v, path)
		switch {
		case err == nil:
			resolvedPath = path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// optional
		default:
			return nil, issue.NewErrorContext().
				WithOperation("load settings").
				WithResource(path).
				WithIssue(issue.SettingsInvalidId).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the values match the settings schema").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	cfg.SourcePath = resolvedPath

	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate settings").
			WithIssue(issue.SettingsInvalidId).
			WithSuggestion("Check the SPIT_* environment variables").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, nil
}

// loadCUEIntoViper validates a settings file against #Config and merges it
// into v, leaving defaults and environment overrides in place.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	res, err := cueutil.ParseAndDecode[map[string]any](
		configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithMaxFileSize(maxSettingsFileSize),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*res.Value); err != nil {
		return fmt.Errorf("failed to merge settings: %w", err)
	}
	return nil
}
