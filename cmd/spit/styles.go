// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all CLI output, tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple, used for titles.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for subtitles and secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, used for names and flags.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray, used for verbose output.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle is for fatal error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warnings and non-fatal diagnostics.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for abbreviation names and example invocations.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for the error chain and other verbose details.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)
)

// stderrStyles holds the diagnostic styles bound to the stderr writer, so
// color decisions follow stderr and not stdout.
type stderrStyles struct {
	warning lipgloss.Style
	err     lipgloss.Style
	verbose lipgloss.Style
}

func newStderrStyles(w io.Writer) stderrStyles {
	r := lipgloss.NewRenderer(w)
	return stderrStyles{
		warning: WarningStyle.Renderer(r),
		err:     ErrorStyle.Renderer(r),
		verbose: VerboseStyle.Renderer(r),
	}
}
