// SPDX-License-Identifier: MPL-2.0

// Package listing renders a whole mapping for the --list mode.
//
// Entries are always emitted sorted by name in byte order. The default text
// format prints one "name: text" line per entry; json and toml formats print
// the mapping as a single document for scripting.
package listing
