package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/connector"
	"github.com/willibrandon/dbjump/internal/launcher"
	"github.com/willibrandon/dbjump/internal/logger"
	"github.com/willibrandon/dbjump/internal/secret"
)

// newConnectCmd creates the connect subcommand.
func newConnectCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "connect <alias> [-- args...]",
		Short: "Connect to a database",
		Long: `Connect to a database by alias. The client tool replaces dbjump so it owns
the terminal. Anything after the alias is passed to the client unchanged.

Examples:
  dbjump connect prod-pg
  dbjump connect prod-pg -- -c 'select 1'
  dbjump connect analytics --query 'show tables'`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeAliases,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(cmd, args[0], passthroughArgs(args[1:]), yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt for profiles with confirm = true")
	// Flags after the alias belong to the client tool.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// passthroughArgs drops the separator between the alias and client arguments.
func passthroughArgs(args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		return args[1:]
	}
	return args
}

func runConnect(cmd *cobra.Command, alias string, passthrough []string, yes bool) error {
	cfg, err := loadValidConfig()
	if err != nil {
		return err
	}

	profile, err := cfg.FindByAlias(alias)
	if err != nil {
		return err
	}

	// A missing client fails before any prompt or password_command runs.
	if err := connector.CheckTool(profile); err != nil {
		return err
	}

	if profile.Confirm && !yes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), profile)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
			return nil
		}
	}

	resolved, err := secret.NewResolver().Resolve(context.Background(), profile)
	if err != nil {
		return err
	}

	built, err := connector.For(resolved.Engine).BuildCommand(resolved)
	if err != nil {
		return err
	}

	strategy, err := launcher.ParseStrategy(cfg.Settings.Launch)
	if err != nil {
		return err
	}

	recordHistory(cfg, resolved)

	logger.Info("connecting", "alias", resolved.Alias, "engine", string(resolved.Engine))
	logger.Debug("client command", "command", built.String())

	return launcher.Launch(built, passthrough,
		launcher.WithStrategy(strategy),
		launcher.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()),
		launcher.BeforeLaunch(logger.Close),
	)
}

// confirm shows the masked preview and asks before connecting.
func confirm(in io.Reader, out io.Writer, p *config.Profile) (bool, error) {
	fmt.Fprintln(out, connector.For(p.Engine).FormatPreview(p))
	fmt.Fprintf(out, "Connect to %s? [y/N] ", p.Alias)

	line, err := readLine(in)
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine reads up to and including the next newline one byte at a time,
// leaving anything typed after it for the client.
func readLine(in io.Reader) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return b.String(), nil
			}
			b.WriteByte(buf[0])
		}
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// completeAliases offers configured aliases for the first argument.
func completeAliases(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	for _, p := range cfg.Databases {
		if strings.HasPrefix(p.Alias, toComplete) {
			out = append(out, p.Alias+"\t"+p.Engine.DisplayName())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
