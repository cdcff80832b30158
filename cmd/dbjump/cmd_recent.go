package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/render"
)

// newRecentCmd creates the recent subcommand.
func newRecentCmd() *cobra.Command {
	var (
		limit  int
		forget string
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recently used databases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !cfg.Settings.History {
				fmt.Fprintln(out, render.Muted("History is disabled (settings.history = false)."))
				return nil
			}

			store, closeFn, err := openHistory(cfg)
			defer closeFn()
			if err != nil {
				return err
			}

			ctx := context.Background()
			if forget != "" {
				if err := store.Forget(ctx, forget); err != nil {
					return fmt.Errorf("failed to update history: %w", err)
				}
				fmt.Fprintf(out, "%s Removed '%s' from history\n", render.Success("✓"), forget)
				return nil
			}

			entries, err := store.Recent(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, render.Muted("No connections recorded yet."))
				return nil
			}

			fmt.Fprintf(out, "%-24s %-12s %6s  %s\n", "ALIAS", "ENGINE", "USES", "LAST USED")
			for _, e := range entries {
				fmt.Fprintf(out, "%-24s %-12s %6d  %s\n", e.Alias, e.Engine, e.UseCount, render.Ago(e.LastUsed))
			}

			if total, err := store.Count(ctx); err == nil && total > len(entries) {
				fmt.Fprintln(out, render.Muted(fmt.Sprintf("Showing %d of %d aliases (use --limit to see more).", len(entries), total)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries to show")
	cmd.Flags().StringVar(&forget, "forget", "", "remove an alias from the history")

	return cmd
}
