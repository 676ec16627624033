package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mboard/internal/daemon"
	"mboard/internal/di"
	"mboard/internal/infrastructure/config"
	"mboard/internal/infrastructure/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mboardd",
	Short: "Serve one board over a unix socket",
	Long: `mboardd owns the board and its undo/redo history and serves it to
mboard --remote clients over a unix socket. Every change is pushed to
subscribed TUIs.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default $MBOARD_CONFIG or ~/.config/mboard/config.yml)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mboardd: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	loader, err := config.NewLoader(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config loader: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCleanup, err := logging.Setup(cfg.Logging, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logCleanup()

	container, cleanup, err := di.InitializeContainer(ctx, di.ConfigPath(loader.GetConfigPath()))
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer cleanup()

	server := daemon.NewServer(container.BoardUseCase, cfg.Daemon.SocketPath())
	if err := server.Listen(); err != nil {
		return err
	}

	watcher, err := container.WatchState()
	if err != nil {
		return fmt.Errorf("failed to watch board state: %w", err)
	}
	if watcher != nil {
		defer watcher.Close()
		go watchState(ctx, server, watcher.Changes())
	}

	log.Info().
		Str("socket", server.GetSocketPath()).
		Str("backend", cfg.Storage.Backend).
		Msg("mboardd started")

	err = server.Serve(ctx)
	log.Info().Msg("shutting down")
	return err
}

// watchState reloads the board when another process rewrites the state file
func watchState(ctx context.Context, server *daemon.Server, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			result, err := server.Reload()
			if err != nil {
				log.Error().Err(err).Msg("failed to reload board")
				continue
			}
			if result.Changed {
				log.Info().Msg("board reloaded from disk")
			}
		}
	}
}
