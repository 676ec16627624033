package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mboard/cmd/mboard/output"
)

// columnCmd represents the column command
var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage board columns",
	Long: `Manage the columns of the board - list, add, rename, delete and reorder.

Columns can be referenced by id, unique id prefix or title.

Examples:
  # List columns
  mboard column list

  # Add a column (without a title it is named "Column no. N")
  mboard column add "In Review"

  # Rename a column
  mboard column rename "In Review" "Review"

  # Delete a column and all of its tasks
  mboard column delete Review

  # Move a column to the first position
  mboard column move Done 0`,
}

// columnListCmd lists all columns
var columnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := backend.GetBoard(getContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}

		switch formatter.Format() {
		case output.FormatJSON, output.FormatYAML:
			return formatter.Print(board.Columns)
		case output.FormatFZF:
			for _, col := range board.Columns {
				if err := formatter.Record(col.ID, col.Title); err != nil {
					return err
				}
			}
			return nil
		default:
			if len(board.Columns) == 0 {
				printer.Info("No columns yet. Create one with: mboard column add <title>")
				return nil
			}
			printer.Table([]string{"#", "ID", "Title", "Tasks"}, columnRows(board))
			return nil
		}
	},
}

// columnAddCmd appends a column
var columnAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a column",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := backend.AddColumn(getContext(cmd), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(col)
		}
		if formatter.Format() == output.FormatFZF {
			return formatter.Record(col.ID, col.Title)
		}
		printer.Success("Added column %q (%s)", col.Title, shortID(col.ID))
		return nil
	},
}

// columnRenameCmd changes a column title
var columnRenameCmd = &cobra.Command{
	Use:   "rename <column> <title>",
	Short: "Rename a column",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext(cmd)

		board, err := backend.GetBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}
		columnID, err := resolveColumnID(board, args[0])
		if err != nil {
			return err
		}

		title := strings.Join(args[1:], " ")
		board, err = backend.RenameColumn(ctx, columnID, title)
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}
		printer.Success("Renamed column to %q", title)
		return nil
	},
}

// columnDeleteCmd removes a column with its tasks
var columnDeleteCmd = &cobra.Command{
	Use:   "delete <column>",
	Short: "Delete a column and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext(cmd)

		board, err := backend.GetBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}
		columnID, err := resolveColumnID(board, args[0])
		if err != nil {
			return err
		}
		title := columnTitle(board, columnID)
		removed := len(board.TasksIn(columnID))

		board, err = backend.DeleteColumn(ctx, columnID)
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}
		printer.Success("Deleted column %q and %s", title, plural(removed, "task"))
		return nil
	},
}

// columnMoveCmd moves a column to a new index
var columnMoveCmd = &cobra.Command{
	Use:   "move <column> <index>",
	Short: "Move a column to a zero-based position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext(cmd)

		toIndex, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[1], err)
		}

		board, err := backend.GetBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}
		columnID, err := resolveColumnID(board, args[0])
		if err != nil {
			return err
		}

		result, err := backend.MoveColumn(ctx, columnID, toIndex)
		if err != nil {
			return err
		}
		return printChange(result, fmt.Sprintf("Moved column %q to position %d", columnTitle(board, columnID), toIndex))
	},
}

func init() {
	columnCmd.AddCommand(columnListCmd)
	columnCmd.AddCommand(columnAddCmd)
	columnCmd.AddCommand(columnRenameCmd)
	columnCmd.AddCommand(columnDeleteCmd)
	columnCmd.AddCommand(columnMoveCmd)
	rootCmd.AddCommand(columnCmd)
}
