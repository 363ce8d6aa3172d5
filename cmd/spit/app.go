// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/spit-cli/spit/internal/config"
	"github.com/spit-cli/spit/internal/store"
)

type (
	// App wires CLI services and shared dependencies for one invocation.
	App struct {
		Config  ConfigProvider
		Locator store.Locator
		stdout  io.Writer
		stderr  io.Writer
		styles  stderrStyles

		// Set while running; read by the error handler.
		verbose     bool
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Zero
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config  ConfigProvider
		Locator *store.Locator
		Stdout  io.Writer
		Stderr  io.Writer
	}

	// ConfigProvider loads settings using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp builds an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	loc := store.NewLocator()
	if deps.Locator != nil {
		loc = *deps.Locator
	}

	return &App{
		Config:      deps.Config,
		Locator:     loc,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		styles:      newStderrStyles(deps.Stderr),
		colorScheme: config.ColorSchemeAuto,
	}
}

// newLogger returns the per-invocation logger. Logs never go to stdout.
func (a *App) newLogger() *log.Logger {
	level := log.WarnLevel
	if a.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// loadSettings returns the settings for this invocation. A settings problem
// is reported as a warning and the built-in defaults are used.
func (a *App) loadSettings(ctx context.Context, settingsPath string) *config.Config {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: settingsPath})
	if err != nil {
		writeLine(a.stderr, a.styles.warning.Render("warning:")+" "+formatErrorForDisplay(err, a.verbose))
		return config.DefaultConfig()
	}
	return cfg
}
