// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestStderrStylesFollowStderr(t *testing.T) {
	// Not parallel: switches the default renderer, which tracks stdout, to
	// full color as if stdout were a terminal.
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	if !strings.Contains(WarningStyle.Render("x"), "\x1b[") {
		t.Fatal("default renderer should emit colors")
	}

	var buf bytes.Buffer
	styles := newStderrStyles(&buf)
	for name, got := range map[string]string{
		"warning": styles.warning.Render("couldn't find nope"),
		"error":   styles.err.Render("couldn't find nope"),
		"verbose": styles.verbose.Render("couldn't find nope"),
	} {
		if got != "couldn't find nope" {
			t.Errorf("%s style on a plain writer = %q, want no escapes", name, got)
		}
	}

	h := newHarness(t)
	h.writeLocal(`{"hi": "hello"}`)

	res := h.mustRun("-w", "nope", "hi")
	if res.stdout != "hello" {
		t.Errorf("stdout = %q, want hello", res.stdout)
	}
	if !strings.Contains(res.stderr, "couldn't find nope") || strings.Contains(res.stderr, "\x1b[") {
		t.Errorf("diagnostic on redirected stderr = %q, want plain text", res.stderr)
	}

	h.settings = stubConfig{err: errors.New("config.cue: broken")}
	res = h.mustRun("hi")
	if !strings.Contains(res.stderr, "warning: config.cue: broken") || strings.Contains(res.stderr, "\x1b[") {
		t.Errorf("settings warning on redirected stderr = %q, want plain text", res.stderr)
	}

	res = h.mustFail("nope")
	if strings.Contains(res.stderr, "\x1b[") {
		t.Errorf("fatal error on redirected stderr = %q, want plain text", res.stderr)
	}
}
