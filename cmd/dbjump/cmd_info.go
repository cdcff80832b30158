package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/connector"
)

// newInfoCmd creates the info subcommand.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "info <alias>",
		Short:             "Show connection information for a database",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeAliases,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			profile, err := cfg.FindByAlias(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, profile.FormatInfo(true))

			// Report where the client binary resolves without failing the command.
			built, err := connector.For(profile.Engine).BuildCommand(profile)
			if err != nil {
				fmt.Fprintf(out, "  Client: %s\n", err)
			} else {
				fmt.Fprintf(out, "  Client: %s\n", built.Path)
			}
			return nil
		},
	}
}
