package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/logger"
	"github.com/willibrandon/dbjump/internal/render"
)

// newValidateCmd creates the validate subcommand.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the configuration file: unique aliases, alias format, non-empty
fields, port range and at most one password source per profile.

History entries for aliases that no longer exist are pruned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Success("Configuration is valid!"))
			fmt.Fprintf(out, "  File:      %s (%s)\n", cfg.Path(), render.FileSummary(cfg.Path()))
			fmt.Fprintf(out, "  Databases: %s\n", engineSummary(cfg.Databases))

			if pruned := pruneHistory(cfg); pruned > 0 {
				fmt.Fprintf(out, "  History:   removed %d stale %s\n", pruned, plural(pruned, "entry", "entries"))
			}
			return nil
		},
	}
}

// engineSummary renders "3 (2 PostgreSQL, 1 MySQL)".
func engineSummary(profiles []config.Profile) string {
	counts := make(map[config.Engine]int)
	for _, p := range profiles {
		counts[p.Engine]++
	}

	var parts []string
	for _, e := range config.Engines() {
		if n := counts[e]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, e.DisplayName()))
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (%s)", len(profiles), strings.Join(parts, ", "))
}

// pruneHistory drops history rows for aliases no longer configured.
// A missing history file is left alone.
func pruneHistory(cfg *config.Config) int64 {
	if !cfg.Settings.History {
		return 0
	}
	if _, err := os.Stat(historyPath(cfg)); err != nil {
		return 0
	}

	store, closeFn, err := openHistory(cfg)
	defer closeFn()
	if err != nil {
		logger.Warn("failed to open history", "error", err)
		return 0
	}

	n, err := store.Prune(context.Background(), cfg.Aliases())
	if err != nil {
		logger.Warn("failed to prune history", "error", err)
		return 0
	}
	return n
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
