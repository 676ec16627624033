package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mboard/internal/daemon"
	"mboard/tui"
	"mboard/tui/style"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal user interface",
	Long: `Launch the interactive TUI (Terminal User Interface) for the board.

Keyboard shortcuts (defaults, see the keybindings section of the config):
  ←/h →/l  - Move between columns
  ↑/k ↓/j  - Move between tasks; above the first task selects the column
  space    - Grab the selected task or column; arrows then drag it
  space    - Drop (enter works too)
  esc      - Cancel the drag
  a / A    - Add task / column
  e        - Edit task content or column title
  d / D    - Delete task / column
  u        - Undo
  ctrl+r   - Redo
  q        - Quit

Examples:
  # Launch TUI on the local store
  mboard tui

  # Launch TUI on the board served by mboardd
  mboard --remote`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(getContext(cmd))
		defer cancel()

		style.InitStyles(cfg)

		board, err := backend.GetBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		opts, stop, err := changeSource(ctx)
		if err != nil {
			return err
		}
		defer stop()

		m := tui.NewModel(backend, board, cfg.Keybindings, opts)

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		return nil
	},
}

// changeSource wires external board changes into the TUI: daemon
// notifications with --remote, the state file watcher otherwise. The
// returned func releases the source.
func changeSource(ctx context.Context) (tui.Options, func(), error) {
	if client, ok := backend.(*daemon.Client); ok {
		notifications, err := client.Subscribe(ctx)
		if err != nil {
			return tui.Options{}, nil, fmt.Errorf("failed to subscribe to mboardd: %w", err)
		}

		changes := make(chan struct{}, 1)
		go func() {
			defer close(changes)
			for range notifications {
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}()
		return tui.Options{Changes: changes}, func() {}, nil
	}

	if container == nil {
		return tui.Options{}, func() {}, nil
	}
	watcher, err := container.WatchState()
	if err != nil {
		return tui.Options{}, nil, fmt.Errorf("failed to watch board state: %w", err)
	}
	if watcher == nil {
		return tui.Options{}, func() {}, nil
	}
	stop := func() {
		if err := watcher.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close state watcher")
		}
	}
	return tui.Options{Changes: watcher.Changes(), Reload: true}, stop, nil
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
