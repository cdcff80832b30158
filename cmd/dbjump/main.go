package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/jumperr"
	"github.com/willibrandon/dbjump/internal/logger"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool

	// loaded caches the configuration for the current invocation.
	loaded    *config.Config
	loadErr   error
	loadTried bool
)

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// newRootCmd builds the command tree. Flag state is reset on each call.
func newRootCmd() *cobra.Command {
	configPath = ""
	debug = false
	loaded, loadErr, loadTried = nil, nil, false

	rootCmd := &cobra.Command{
		Use:   "dbjump",
		Short: "Quick database connection manager",
		Long: `dbjump helps you quickly connect to databases using short aliases instead of
remembering connection parameters.

Profiles live in ~/.config/dbjump/config.toml (override with DBJUMP_CONFIG or
--config). Run 'dbjump init' to create a commented starter file.

Examples:
  dbjump connect prod-pg
  dbjump connect prod-pg -c 'select now()'
  dbjump list --format table
  eval "$(dbjump shell-init zsh)"`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/dbjump/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(
		newConnectCmd(),
		newInitCmd(),
		newListCmd(),
		newInfoCmd(),
		newValidateCmd(),
		newCompletionsCmd(),
		newShellInitCmd(),
		newCommandCmd(),
		newPickCmd(),
		newRecentCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// setupLogging starts the file logger using the configured level and path.
// Completion requests stay silent and never touch the filesystem.
func setupLogging(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == cobra.ShellCompRequestCmd || cmd.Name() == cobra.ShellCompNoDescRequestCmd ||
		(cmd.Parent() != nil && cmd.Parent().Name() == "completions") || cmd.Name() == "completions" {
		logger.InitDiscard()
		return nil
	}

	level := logger.LevelInfo
	logPath := ""
	if cfg, err := loadConfig(); err == nil {
		level = logger.ParseLevel(cfg.Settings.LogLevel)
		logPath = cfg.Settings.LogFile
	} else if path, err := config.ResolvePath(configPath); err == nil {
		logPath = config.DefaultLogFile(path)
	}
	if debug {
		level = logger.LevelDebug
	}

	logger.InitLogger(level, logPath)
	logger.Debug("command started", "command", cmd.CommandPath(), "version", version)
	return nil
}

// loadConfig resolves and reads the configuration once per invocation.
func loadConfig() (*config.Config, error) {
	if loadTried {
		return loaded, loadErr
	}
	loadTried = true

	path, err := config.ResolvePath(configPath)
	if err != nil {
		loadErr = err
		return nil, err
	}
	loaded, loadErr = config.Load(path)
	return loaded, loadErr
}

// loadValidConfig loads the configuration and rejects it if invalid.
func loadValidConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// reportError prints err and returns the process exit status.
// A client that exited non-zero hands its own status back to the shell.
func reportError(w io.Writer, err error) int {
	red := color.New(color.FgHiRed).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", red("Error:"), err)

	var e *jumperr.Error
	if errors.As(err, &e) && e.Kind == jumperr.KindExecution && e.Code > 0 {
		return e.Code
	}
	return 1
}
