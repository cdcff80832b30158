package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/shell"
)

// newShellInitCmd creates the shell-init subcommand.
func newShellInitCmd() *cobra.Command {
	var cmdName string

	cmd := &cobra.Command{
		Use:     "shell-init <zsh|bash|fish>",
		Aliases: []string{"shell"},
		Short:   "Generate shell integration code",
		Long: `Print a shell function for quick connections. With no arguments the
function opens the picker; otherwise it connects to the given alias.

Examples:
  eval "$(dbjump shell-init zsh)"
  eval "$(dbjump shell-init bash --cmd dbj)"
  dbjump shell-init fish | source`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: shell.Shells(),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := shell.Init(args[0], cmdName, "dbjump")
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		},
	}

	cmd.Flags().StringVar(&cmdName, "cmd", shell.DefaultCommand, "custom command name for quick connect")

	return cmd
}
