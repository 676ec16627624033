package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"mboard/cmd/mboard/output"
	"mboard/internal/application/usecase/board"
	"mboard/internal/daemon"
	"mboard/internal/di"
	"mboard/internal/infrastructure/config"
	"mboard/internal/infrastructure/logging"
)

const annotationNoBackend = "mboard/no-backend"

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	outputFormat string
	configPath   string
	remote       bool
	quiet        bool

	// Shared instances
	cfg       *config.Config
	loader    *config.Loader
	backend   board.Backend
	container *di.Container
	printer   *output.Printer
	formatter *output.Formatter
	cleanups  []func()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mboard",
	Short: "Terminal Kanban board with undo/redo",
	Long: `mboard is a single-board Kanban tool for the terminal.

Features:
  - Columns and tasks with drag-style reordering
  - Linear undo/redo history of the whole board
  - File, Redis or in-memory storage
  - Optional daemon so several terminals share one live board
  - Interactive TUI and scriptable CLI

Examples:
  # Launch interactive TUI
  mboard
  mboard tui

  # Add a column and a task
  mboard column add "Todo"
  mboard task add Todo "Buy milk"

  # Undo the last change
  mboard undo

  # Talk to a running mboardd instead of the local store
  mboard --remote board show`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeResources()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeResources()

	if err != nil {
		output.NewPrinter(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml, fzf")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default $MBOARD_CONFIG or ~/.config/mboard/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&remote, "remote", "r", false, "Operate on the board served by mboardd")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	rootCmd.PersistentPreRunE = setupCommand

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			printVersion(cmd)
			return nil
		}
		return tuiCmd.RunE(cmd, args)
	}
}

// setupCommand loads config, logging and the board backend for every command
func setupCommand(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	formatter = output.NewFormatter(format, cmd.OutOrStdout())
	printer = output.NewPrinter(cmd.OutOrStdout())

	loader, err = config.NewLoader(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config loader: %w", err)
	}

	cfg, err = loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Logging
	if isTUICommand(cmd) && logCfg.File == "" {
		logCfg.File = filepath.Join(cfg.Storage.DataPath, "mboard.log")
	}
	logCleanup, err := logging.Setup(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	cleanups = append(cleanups, logCleanup)

	if skipsBackend(cmd) {
		return nil
	}
	return openBackend(getContext(cmd))
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "mboard version %s\n", Version)
	fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(out, "  Built:      %s\n", BuildDate)
}

// getContext returns a context for command execution
func getContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openBackend connects to the daemon with --remote, otherwise builds the local store
func openBackend(ctx context.Context) error {
	if remote {
		client := daemon.NewClient(cfg.Daemon.SocketPath())
		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("mboardd is not reachable at %s: %w", cfg.Daemon.SocketPath(), err)
		}
		backend = client
		return nil
	}

	c, cleanup, err := di.InitializeContainer(ctx, di.ConfigPath(loader.GetConfigPath()))
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	container = c
	backend = c.BoardUseCase
	cleanups = append(cleanups, cleanup)
	return nil
}

// closeResources runs registered cleanups in reverse order, once
func closeResources() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func skipsBackend(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoBackend] == "true" {
			return true
		}
	}
	return false
}

func isTUICommand(cmd *cobra.Command) bool {
	return cmd == tuiCmd || cmd == rootCmd
}

func noBackend() map[string]string {
	return map[string]string{annotationNoBackend: "true"}
}
