package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCompletionsCmd creates the completions subcommand.
func newCompletionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completions <bash|zsh|fish|powershell>",
		Short: "Generate shell completions",
		Long: `Generate a shell completion script. Aliases are completed from the
configuration file at completion time.

Examples:
  dbjump completions zsh > "${fpath[1]}/_dbjump"
  dbjump completions bash > /etc/bash_completion.d/dbjump
  dbjump completions fish > ~/.config/fish/completions/dbjump.fish`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()

			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell %q (expected one of: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
}
