// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/spit-cli/spit/internal/store"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// writeCompletion prints the completion script for shell.
//
// Enable it with, for example:
//
//	eval "$(spit --completion bash)"           # ~/.bashrc
//	spit --completion zsh > "${fpath[1]}/_spit"
//	spit --completion fish > ~/.config/fish/completions/spit.fish
//	spit --completion powershell | Out-String | Invoke-Expression
func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q (valid: %s)", shell, strings.Join(completionShells, ", "))
	}
}

// completeNames offers the names a lookup could resolve: the selected store
// plus, for the local scope, the global fallback. Store errors yield nothing.
func (a *App) completeNames(opts *options) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		scope := store.ScopeLocal
		if opts.global {
			scope = store.ScopeGlobal
		}

		names := make(map[string]struct{})
		if path, err := a.Locator.Path(scope); err == nil {
			if m, err := store.Load(path); err == nil {
				for _, n := range m.Names() {
					names[n] = struct{}{}
				}
			}
		}
		fallback, _ := store.LoadFallback(a.Locator, scope)
		for _, n := range fallback.Names() {
			names[n] = struct{}{}
		}

		out := make([]cobra.Completion, 0, len(names))
		for _, n := range maps.Keys(names) {
			if strings.HasPrefix(n, toComplete) {
				out = append(out, n)
			}
		}
		slices.Sort(out)
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
