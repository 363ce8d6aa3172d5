// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/spit-cli/spit/internal/config"
	"github.com/spit-cli/spit/internal/issue"
	"github.com/spit-cli/spit/internal/listing"
	"github.com/spit-cli/spit/internal/resolve"
	"github.com/spit-cli/spit/internal/store"
	"github.com/spit-cli/spit/pkg/types"
)

// run selects and executes the single terminal mode of an invocation:
// copy or init first, then add, else list, else lookup.
func (a *App) run(cmd *cobra.Command, opts *options, names []string) error {
	if opts.completion != "" {
		return fatal(writeCompletion(cmd.Root(), opts.completion, a.stdout))
	}

	// Checked before anything touches the filesystem.
	if opts.init && opts.copySet {
		return fatal(conflictingFlagsError())
	}

	a.verbose = opts.verbose
	cfg := a.loadSettings(cmd.Context(), opts.settings)
	applySettings(cmd, opts, cfg)
	a.verbose = opts.verbose
	a.colorScheme = cfg.UI.ColorScheme

	logger := a.newLogger()
	if cfg.SourcePath != "" {
		logger.Debug("settings loaded", "path", cfg.SourcePath)
	}

	scope := store.ScopeLocal
	if opts.global {
		scope = store.ScopeGlobal
	}

	if err := opts.validate(names); err != nil {
		return fatal(annotate(err, scope))
	}

	path, err := a.Locator.Path(scope)
	if err != nil {
		return fatal(annotate(err, scope))
	}
	logger = logger.With("scope", scope, "path", path)

	created, err := a.prepare(logger, opts, path)
	if err != nil {
		return fatal(annotate(err, scope))
	}

	switch {
	case opts.addSet:
		logger.Debug("adding", "names", len(names))
		err = a.add(created, path, names, opts.add)
	case opts.list:
		if created != nil {
			_ = created.Close()
		}
		logger.Debug("listing", "format", opts.format)
		err = a.list(path, listing.Format(opts.format))
	default:
		if created != nil {
			_ = created.Close()
		}
		logger.Debug("looking up", "names", len(names))
		err = a.lookup(logger, scope, path, names, opts)
	}
	return fatal(annotate(err, scope))
}

// prepare runs the optional copy or init step. A store created by init is
// returned still open so a following add can write to it.
func (a *App) prepare(logger *log.Logger, opts *options, path string) (*store.Handle, error) {
	switch {
	case opts.copySet:
		// An empty FOLDER names the current directory.
		src := store.InFolder(opts.copyFrom)
		logger.Debug("copying store", "from", src)
		if err := store.CopyRaw(src, path); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, issue.NewErrorContext().
					WithIssue(issue.StoreNotFoundId).
					WithSuggestion("Check that '" + opts.copyFrom + "' contains a " + store.FileName + " file").
					Wrap(err).
					BuildError()
			}
			return nil, err
		}
	case opts.init:
		logger.Debug("creating store")
		return store.Create(path)
	}
	return nil, nil
}

// add assigns text to every name and rewrites the store. Later duplicates
// overwrite earlier ones; existing entries are replaced silently.
func (a *App) add(created *store.Handle, path string, names []string, text string) error {
	var (
		m   store.Mapping
		h   = created
		err error
	)
	if h != nil {
		m = store.NewMapping()
	} else {
		if m, err = store.Load(path); err != nil {
			return err
		}
		if h, err = store.OpenForWrite(path); err != nil {
			return err
		}
	}

	for _, name := range names {
		m.Set(name, text)
	}
	return h.Persist(m)
}

// list prints the primary store. The fallback is never consulted.
func (a *App) list(path string, format listing.Format) error {
	m, err := store.Load(path)
	if err != nil {
		return err
	}

	opts := listing.Options{Format: format}
	if isTerminal(a.stdout) {
		opts.KeyRender = CmdStyle.Render
	}
	return listing.Render(a.stdout, m, opts)
}

// lookup resolves names against the primary store and, for the local
// scope, the global one. Output is written once, after every name resolved.
func (a *App) lookup(logger *log.Logger, scope store.Scope, path string, names []string, opts *options) error {
	primary, err := store.Load(path)
	if err != nil {
		return err
	}

	fallback, reason := store.LoadFallback(a.Locator, scope)
	if reason != nil {
		logger.Debug("fallback store unavailable, using an empty one", "err", reason)
	}

	res, err := resolve.Resolve(primary, fallback, resolve.Request{
		Names:  names,
		Sep:    opts.sep,
		Policy: resolve.Policy{Warn: opts.warn, Pass: opts.pass},
	})
	if err != nil {
		return err
	}

	for _, d := range res.Diagnostics {
		writeLine(a.stderr, a.styles.warning.Render(d.Message()))
	}
	for _, r := range res.Resolutions {
		logger.Debug("resolved", "name", r.Name, "source", r.Source)
	}

	_, err = io.WriteString(a.stdout, res.Output)
	return err
}

// applySettings fills options whose flag was not given from cfg.
func applySettings(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed(flagSep) {
		opts.sep = cfg.Defaults.Sep
	}
	if !flags.Changed(flagWarn) {
		opts.warn = cfg.Defaults.Warn
	}
	if !flags.Changed(flagPass) {
		opts.pass = cfg.Defaults.Pass
	}
	if !flags.Changed(flagFormat) {
		opts.format = cfg.Defaults.Format
	}
	if !flags.Changed(flagVerbose) {
		opts.verbose = cfg.UI.Verbose
	}
}

// validate checks option values that do not need the filesystem.
func (o *options) validate(names []string) error {
	if err := listing.Format(o.format).Validate(); err != nil {
		return err
	}
	if o.addSet {
		return validateNames(names)
	}
	return nil
}

// validateNames rejects names that cannot be stored.
func validateNames(names []string) error {
	var errs []error
	for _, n := range names {
		if err := types.Name(n).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
