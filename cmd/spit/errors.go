// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"golang.org/x/term"

	"github.com/spit-cli/spit/internal/issue"
	"github.com/spit-cli/spit/internal/listing"
	"github.com/spit-cli/spit/internal/resolve"
	"github.com/spit-cli/spit/internal/store"
	"github.com/spit-cli/spit/pkg/types"
)

// ErrConflictingFlags is returned when --init and --copy are both given.
var ErrConflictingFlags = errors.New("conflicting flags")

// conflictingFlagsError reports the pre-check failure before any store I/O.
func conflictingFlagsError() error {
	return issue.NewErrorContext().
		WithIssue(issue.ConflictingFlagsId).
		WithSuggestion("Use either --init or --copy").
		Wrap(fmt.Errorf("%w: --%s and --%s cannot be used together", ErrConflictingFlags, flagInit, flagCopy)).
		BuildError()
}

// annotate attaches a catalog entry and remediation hints to errors coming
// out of the store, resolve and types packages. The message is unchanged.
func annotate(err error, scope store.Scope) error {
	var ae *issue.ActionableError
	if err == nil || errors.As(err, &ae) {
		return err
	}

	initCmd := "spit --init"
	listCmd := "spit --list"
	if scope == store.ScopeGlobal {
		initCmd += " --global"
		listCmd += " --global"
	}

	ctx := issue.NewErrorContext().Wrap(err)
	var storeErr *store.Error
	switch {
	case errors.Is(err, resolve.ErrNameNotFound):
		ctx.WithIssue(issue.NameNotFoundId).
			WithSuggestion("See what is defined with '" + listCmd + "'").
			WithSuggestion("Use --pass to print unknown names or --warn to skip them")
	case errors.Is(err, types.ErrInvalidName):
		ctx.WithIssue(issue.InvalidNameId)
	case errors.Is(err, listing.ErrInvalidFormat):
		ctx.WithSuggestion("Use --format text, json or toml")
	case errors.As(err, &storeErr) && storeErr.Op == store.OpLocate:
		ctx.WithIssue(issue.HomeNotFoundId).
			WithSuggestion("Set HOME, or drop --global to use the local store")
	case store.IsKind(err, store.ErrAlreadyExists):
		ctx.WithIssue(issue.StoreExistsId)
	case store.IsKind(err, store.ErrNotFound):
		ctx.WithIssue(issue.StoreNotFoundId).
			WithSuggestion("Run '" + initCmd + "' to create one")
	case store.IsKind(err, store.ErrCorruptData):
		ctx.WithIssue(issue.StoreCorruptId).
			WithSuggestion("The file must be a JSON object of non-empty names to strings")
	case store.IsKind(err, store.ErrIO):
		ctx.WithIssue(issue.StoreWriteFailedId)
	}
	return ctx.BuildError()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// handleError prints a fatal error to stderr. In verbose mode it also
// prints the catalog entry linked to the error.
func (a *App) handleError(w io.Writer, _ fang.Styles, err error) {
	head, tail, _ := strings.Cut(formatErrorForDisplay(err, a.verbose), "\n")
	out := a.styles.err.Render(head)
	if tail != "" {
		out += "\n" + a.styles.verbose.Render(tail)
	}
	writeLine(w, out)

	if !a.verbose {
		return
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue == 0 {
		return
	}
	entry := issue.Get(ae.Issue)
	if entry == nil {
		return
	}
	rendered, rerr := entry.Render(a.helpStyle())
	if rerr != nil {
		return
	}
	_, _ = io.WriteString(w, rendered)
}

// helpStyle picks the glamour style for catalog entries.
func (a *App) helpStyle() string {
	if !isTerminal(a.stderr) {
		return "notty"
	}
	return a.colorScheme.String()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeLine(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}
