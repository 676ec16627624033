package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mboard/cmd/mboard/output"
	"mboard/internal/application/dto"
)

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long: `Manage tasks - list, add, edit, delete, move between columns and reorder.

Tasks are referenced by id or unique id prefix; columns by id, id prefix or title.

Examples:
  # List all tasks, or only those of one column
  mboard task list
  mboard task list --column Todo

  # Add a task (without content it is named "Task N")
  mboard task add Todo "Buy milk"

  # Edit a task
  mboard task edit 3f2a "Buy oat milk"

  # Move a task to the end of another column
  mboard task move 3f2a Done

  # Drop a task onto another task, taking its place
  mboard task reorder 3f2a 9c1b

  # Pipe ids from a picker
  mboard task list -o fzf | fzf | mboard task delete`,
}

// taskListCmd lists tasks
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks in board order.

Output formats:
  text - Human-readable table (default)
  json - JSON output for scripting
  yaml - YAML output
  fzf  - Task ID, column and content (tab-separated)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := backend.GetBoard(getContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}

		tasks := board.Tasks
		if column, _ := cmd.Flags().GetString("column"); column != "" {
			columnID, err := resolveColumnID(board, column)
			if err != nil {
				return err
			}
			tasks = board.TasksIn(columnID)
		}

		switch formatter.Format() {
		case output.FormatJSON, output.FormatYAML:
			return formatter.Print(tasks)
		case output.FormatFZF:
			for _, task := range tasks {
				if err := formatter.Record(task.ID, columnTitle(board, task.ColumnID), singleLine(task.Content)); err != nil {
					return err
				}
			}
			return nil
		default:
			if len(tasks) == 0 {
				printer.Info("No tasks found")
				return nil
			}
			printer.Table([]string{"ID", "Column", "Content"}, taskRows(board, tasks))
			return nil
		}
	},
}

// taskAddCmd appends a task to a column
var taskAddCmd = &cobra.Command{
	Use:   "add <column> [content]",
	Short: "Add a task to a column",
	Args:  cobra.MinimumNArgs(1),
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

		task, err := backend.AddTask(ctx, columnID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(task)
		}
		if formatter.Format() == output.FormatFZF {
			return formatter.Record(task.ID, columnTitle(board, columnID), singleLine(task.Content))
		}
		printer.Success("Added task %q to %s (%s)", task.Content, columnTitle(board, columnID), shortID(task.ID))
		return nil
	},
}

// taskEditCmd replaces a task's content
var taskEditCmd = &cobra.Command{
	Use:   "edit <task> <content>",
	Short: "Replace the content of a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext(cmd)

		taskID, _, err := lookupTask(cmd, args[0])
		if err != nil {
			return err
		}

		board, err := backend.UpdateTask(ctx, taskID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}
		printer.Success("Updated task %s", shortID(taskID))
		return nil
	},
}

// taskDeleteCmd removes a task
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task>",
	Short: "Delete a task",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}

		taskID, task, err := lookupTask(cmd, args[0])
		if err != nil {
			return err
		}

		board, err := backend.DeleteTask(getContext(cmd), taskID)
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}
		printer.Success("Deleted task %q", singleLine(task.Content))
		return nil
	},
}

// taskMoveCmd moves a task to the end of another column
var taskMoveCmd = &cobra.Command{
	Use:   "move <task> <column>",
	Short: "Move a task to another column",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext(cmd)

		board, err := backend.GetBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}
		taskID, err := resolveTaskID(board, args[0])
		if err != nil {
			return err
		}
		columnID, err := resolveColumnID(board, args[1])
		if err != nil {
			return err
		}

		board, err = backend.MoveTask(ctx, taskID, columnID)
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}
		printer.Success("Moved task %s to %s", shortID(taskID), columnTitle(board, columnID))
		return nil
	},
}

// taskReorderCmd drops a task onto another one
var taskReorderCmd = &cobra.Command{
	Use:   "reorder <task> <over-task>",
	Short: "Move a task to the position of another task",
	Long: `Move a task to the position of another task, adopting that task's column.

This is the keyboard equivalent of dragging one card over another.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext(cmd)

		board, err := backend.GetBoard(ctx)
		if err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}
		taskID, err := resolveTaskID(board, args[0])
		if err != nil {
			return err
		}
		overID, err := resolveTaskID(board, args[1])
		if err != nil {
			return err
		}

		result, err := backend.ReorderTask(ctx, taskID, overID)
		if err != nil {
			return err
		}
		return printChange(result, fmt.Sprintf("Moved task %s to the place of %s", shortID(taskID), shortID(overID)))
	},
}

// lookupTask resolves a task reference against the live board
func lookupTask(cmd *cobra.Command, ref string) (string, dto.TaskDTO, error) {
	board, err := backend.GetBoard(getContext(cmd))
	if err != nil {
		return "", dto.TaskDTO{}, fmt.Errorf("failed to get board: %w", err)
	}
	taskID, err := resolveTaskID(board, ref)
	if err != nil {
		return "", dto.TaskDTO{}, err
	}
	task, _ := board.FindTask(taskID)
	return taskID, task, nil
}

func init() {
	taskListCmd.Flags().String("column", "", "Only list tasks of this column")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskReorderCmd)
	rootCmd.AddCommand(taskCmd)
}
