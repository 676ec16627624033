package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mboard/internal/application/dto"
	"mboard/internal/infrastructure/persistence/mapper"
	"mboard/pkg/filesystem"
	"mboard/pkg/slug"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show, export and import the board",
	Long: `Work with the board as a whole.

Examples:
  # Show all columns and tasks
  mboard board show

  # Export to a markdown document with YAML frontmatter
  mboard board export --file board.md

  # Import a previously exported document (recorded as one undoable step)
  mboard board import board.md

  # Clear the board
  mboard board reset --yes`,
}

// boardShowCmd prints the whole board
var boardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all columns and tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := backend.GetBoard(getContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}
		return printBoard(board)
	},
}

// boardExportCmd writes the board as a document
var boardExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board to a document",
	Long: `Export the board as markdown with a YAML frontmatter block.

The frontmatter holds the exact board state; the body is a readable checklist.
Without --file or --dir the document is written to stdout. --dir names the
file after the state key, e.g. kanban-state.md.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := backend.GetBoard(getContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}

		data, err := mapper.SnapshotToDocument(dto.BoardDTOToSnapshot(*board), cfg.Storage.StateKey, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to export board: %w", err)
		}

		file, _ := cmd.Flags().GetString("file")
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" && file == "" {
			if exists, _ := filesystem.Exists(dir); exists {
				if isDir, err := filesystem.IsDir(dir); err != nil || !isDir {
					return fmt.Errorf("%s is not a directory", dir)
				}
			}
			file = filepath.Join(dir, slug.Generate(cfg.Storage.StateKey)+".md")
		}
		if file == "" || file == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := filesystem.SafeWrite(file, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		if !quiet {
			printer.Success("Exported %s and %s to %s",
				plural(len(board.Columns), "column"), plural(len(board.Tasks), "task"), file)
		}
		return nil
	},
}

// boardImportCmd replaces the board with a document
var boardImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the board with an exported document",
	Long: `Replace the board with the contents of an exported document or a raw JSON state.

Use "-" to read from stdin. The import is a single undoable step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		snapshot, err := mapper.SnapshotFromDocument(data)
		if err != nil {
			return err
		}

		board, err := backend.Replace(getContext(cmd), dto.SnapshotToBoardDTO(snapshot, dto.HistoryDTO{}))
		if err != nil {
			return fmt.Errorf("failed to import board: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}
		if !quiet {
			printer.Success("Imported %s and %s",
				plural(len(board.Columns), "column"), plural(len(board.Tasks), "task"))
		}
		return nil
	},
}

// boardResetCmd clears the board
var boardResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every column and task",
	Long:  `Remove every column and task. The reset can be undone like any other change.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to clear the board without --yes")
		}

		board, err := backend.Replace(getContext(cmd), dto.BoardDTO{})
		if err != nil {
			return fmt.Errorf("failed to reset board: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}
		if !quiet {
			printer.Success("Board cleared")
		}
		return nil
	},
}

func init() {
	boardExportCmd.Flags().StringP("file", "f", "", "Write the document to this file instead of stdout")
	boardExportCmd.Flags().String("dir", "", "Write the document into this directory, named after the state key")
	boardResetCmd.Flags().Bool("yes", false, "Confirm clearing the board")

	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardExportCmd)
	boardCmd.AddCommand(boardImportCmd)
	boardCmd.AddCommand(boardResetCmd)
	rootCmd.AddCommand(boardCmd)
}
