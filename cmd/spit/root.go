// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/spit-cli/spit/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// Flag names.
const (
	flagInit       = "init"
	flagCopy       = "copy"
	flagGlobal     = "global"
	flagAdd        = "add"
	flagSep        = "sep"
	flagList       = "list"
	flagWarn       = "warn"
	flagPass       = "pass"
	flagFormat     = "format"
	flagVerbose    = "verbose"
	flagSettings   = "settings"
	flagCompletion = "completion"
)

// options holds the parsed flag values of one invocation.
type options struct {
	init       bool
	copyFrom   string
	copySet    bool
	global     bool
	add        string
	addSet     bool
	sep        string
	list       bool
	warn       bool
	pass       bool
	format     string
	verbose    bool
	settings   string
	completion string
}

func newRootCommand(app *App) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "spit [flags] [NAME...]",
		Short: "Expand short names into stored text",
		Long: TitleStyle.Render("spit") + SubtitleStyle.Render(" - an abbreviation manager") + `

spit maps short names to longer text. Mappings live in a '.spitconfig' JSON
file in the current directory (local) or in your home directory (global).
Local lookups fall back to the global file.

` + SubtitleStyle.Render("Examples:") + `
  spit --init                    Create an empty local store
  spit --add "hello there" hi    Map 'hi' to "hello there"
  spit hi                        Print "hello there"
  spit --sep , --pass hi bye     Print "hello there,bye,"
  spit --list                    Show every local entry
  spit --copy ~/project          Seed the local store from another folder`,
		Args:                  cobra.ArbitraryArgs,
		DisableFlagsInUseLine: true,
		ValidArgsFunction:     app.completeNames(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.addSet = cmd.Flags().Changed(flagAdd)
			opts.copySet = cmd.Flags().Changed(flagCopy)
			return app.run(cmd, opts, args)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&opts.init, flagInit, "i", false, "create an empty store in the selected scope")
	flags.StringVarP(&opts.copyFrom, flagCopy, "c", "", "copy the store found in `FOLDER` into the selected scope")
	flags.BoolVarP(&opts.global, flagGlobal, "g", false, "use the global store instead of the local one")
	flags.StringVarP(&opts.add, flagAdd, "a", "", "assign `TEXT` to every given name")
	flags.StringVarP(&opts.sep, flagSep, "s", "", "separator appended after each emitted text")
	flags.BoolVarP(&opts.list, flagList, "l", false, "print every entry of the selected store")
	flags.BoolVarP(&opts.warn, flagWarn, "w", false, "report unknown names and keep going")
	flags.BoolVarP(&opts.pass, flagPass, "p", false, "print unknown names as they are")
	flags.StringVar(&opts.format, flagFormat, "text", "list output format: text, json or toml")
	flags.BoolVarP(&opts.verbose, flagVerbose, "v", false, "enable verbose output")
	flags.StringVar(&opts.settings, flagSettings, "", "settings file (default is $HOME/.config/spit/config.cue)")
	flags.StringVar(&opts.completion, flagCompletion, "", "print the completion script for `SHELL` (bash, zsh, fish, powershell)")

	_ = root.RegisterFlagCompletionFunc(flagFormat, cobra.FixedCompletions(
		[]string{"text", "json", "toml"}, cobra.ShellCompDirectiveNoFileComp))
	_ = root.RegisterFlagCompletionFunc(flagCompletion, cobra.FixedCompletions(
		completionShells, cobra.ShellCompDirectiveNoFileComp))
	_ = root.MarkFlagDirname(flagCopy)

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Run executes spit with args and returns the process exit code.
func Run(ctx context.Context, args []string, deps Dependencies) types.ExitCode {
	app := NewApp(deps)
	root := newRootCommand(app)
	if args == nil {
		// cobra reads os.Args when no args are set.
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithErrorHandler(app.handleError),
	)
	return exitCodeOf(err)
}

// exitCodeOf maps the error returned by the command to a process exit code.
// An error never exits successfully, whatever code it carries.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return types.ExitFailure
	}
	if exitErr.Code.IsSuccess() || exitErr.Code.Validate() != nil {
		return types.ExitFailure
	}
	return exitErr.Code
}

// Execute runs spit against the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(int(Run(context.Background(), os.Args[1:], Dependencies{})))
}
