package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/clip"
	"github.com/willibrandon/dbjump/internal/connector"
	"github.com/willibrandon/dbjump/internal/render"
)

// newCommandCmd creates the command subcommand.
func newCommandCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "command <alias> [-- args...]",
		Short: "Print the client command line for a database",
		Long: `Print the command dbjump would run for an alias, with every secret masked.

Examples:
  dbjump command prod-pg
  dbjump command --copy prod-pg
  dbjump command prod-pg -- -c 'select 1'`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeAliases,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig()
			if err != nil {
				return err
			}

			profile, err := cfg.FindByAlias(args[0])
			if err != nil {
				return err
			}

			built, err := connector.For(profile.Engine).BuildCommand(profile)
			if err != nil {
				return err
			}

			var w *clip.Writer
			if copyToClipboard {
				w = clip.NewWriter()
				if !w.IsAvailable() {
					return fmt.Errorf("cannot copy to clipboard: %s", w.Error())
				}
			}

			line := built.WithArgs(passthroughArgs(args[1:])...).String()
			fmt.Fprintln(cmd.OutOrStdout(), line)

			if w != nil {
				if err := w.Write(line); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), render.Muted("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "copy the command line to the clipboard")
	cmd.Flags().SetInterspersed(false)

	return cmd
}
