package main

import (
	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/render"
)

// newListCmd creates the list subcommand.
func newListCmd() *cobra.Command {
	var (
		format        string
		showPasswords bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all configured databases",
		Long: `List all configured databases.

The text format prints one alias per line for scripts and shell completion.
Passwords are masked in every format unless --show-passwords is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return render.List(cmd.OutOrStdout(), cfg.Databases, f, showPasswords)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatText), "output format: text, json, yaml, table, tree")
	cmd.Flags().BoolVar(&showPasswords, "show-passwords", false, "print literal passwords instead of masking them")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return render.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
