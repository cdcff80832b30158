package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/render"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(
		newConfigPathCmd(),
		newConfigShowCmd(),
	)

	return cmd
}

// newConfigPathCmd prints the resolved configuration path.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// newConfigShowCmd prints the effective configuration as TOML.
func newConfigShowCmd() *cobra.Command {
	var showPasswords bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration, including defaults and environment
overrides, as TOML. Passwords are masked unless --show-passwords is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := config.Marshal(cfg, !showPasswords)
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}

			text := string(data)
			if isTerminal(cmd) {
				text = render.HighlightTOML(text)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&showPasswords, "show-passwords", false, "print literal passwords instead of masking them")

	return cmd
}

// isTerminal reports whether the command writes straight to a terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
