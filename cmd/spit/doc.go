// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the spit command line: a single root command whose
// flags select one of the init, copy, add, list or lookup modes.
package cmd
