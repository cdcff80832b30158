package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/picker"
)

// newPickCmd creates the pick subcommand.
func newPickCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a database interactively and connect",
		Long: `Open an interactive list of databases, most recently used first. Type to
filter, use the arrow keys to move, enter to connect and esc to cancel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}

			alias, err := picker.Run(cfg.Databases, recentAliases(cfg, 0))
			if errors.Is(err, picker.ErrCancelled) {
				return nil
			}
			if err != nil {
				return err
			}

			return runConnect(cmd, alias, nil, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt for profiles with confirm = true")

	return cmd
}
