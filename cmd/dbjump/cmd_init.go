package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/logger"
	"github.com/willibrandon/dbjump/internal/render"
)

// newInitCmd creates the init subcommand.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(configPath)
			if err != nil {
				return err
			}

			if err := config.InitFile(path, force); err != nil {
				return err
			}
			logger.Info("configuration initialized", "path", path, "force", force)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", render.Success("Configuration file created at:"), path)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Edit the file to add your database connections.")
			fmt.Fprintln(out, "Then run 'dbjump validate' to check your configuration.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing configuration")

	return cmd
}
