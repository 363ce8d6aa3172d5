// SPDX-License-Identifier: MPL-2.0

// Package config loads spit's own settings using Viper with CUE as the file format.
//
// Settings live in ~/.config/spit/config.cue ($XDG_CONFIG_HOME on Linux,
// ~/Library/Application Support/spit/config.cue on macOS, %APPDATA%\spit\config.cue
// on Windows) and supply defaults for lookup and listing flags. SPIT_* environment
// variables override the file; explicit command-line flags override both.
//
// Settings never affect where abbreviation files are stored.
package config
