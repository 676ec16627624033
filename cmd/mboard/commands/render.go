package commands

import (
	"fmt"
	"strconv"
	"strings"

	"mboard/internal/application/dto"
)

// printBoard renders the board in the selected format
func printBoard(board *dto.BoardDTO) error {
	if formatter.Structured() {
		return formatter.Print(board)
	}

	if len(board.Columns) == 0 {
		printer.Info("The board is empty. Add a column with: mboard column add <title>")
		return nil
	}

	for i, col := range board.Columns {
		if i > 0 {
			printer.Blank()
		}
		tasks := board.TasksIn(col.ID)
		printer.Header("%s", col.Title)
		printer.Subtle("%s · %d task(s)", shortID(col.ID), len(tasks))
		for _, task := range tasks {
			printer.Println("  • %s  %s", singleLine(task.Content), shortID(task.ID))
		}
	}

	printer.Blank()
	printHistorySummary(board.History)
	return nil
}

func printHistorySummary(history dto.HistoryDTO) {
	printer.Subtle("history %d/%d · undo: %s · redo: %s",
		history.Cursor+1, history.Length, yesNo(history.CanUndo), yesNo(history.CanRedo))
}

// printChange reports the outcome of an operation that may be a no-op
func printChange(result *dto.ChangeResult, message string) error {
	if formatter.Structured() {
		return formatter.Print(result)
	}
	if !result.Changed {
		if !quiet {
			printer.Info("Nothing to change")
		}
		return nil
	}
	if !quiet {
		printer.Success("%s", message)
	}
	return nil
}

func columnRows(board *dto.BoardDTO) [][]string {
	rows := make([][]string, 0, len(board.Columns))
	for i, col := range board.Columns {
		rows = append(rows, []string{
			strconv.Itoa(i),
			shortID(col.ID),
			col.Title,
			strconv.Itoa(len(board.TasksIn(col.ID))),
		})
	}
	return rows
}

func taskRows(board *dto.BoardDTO, tasks []dto.TaskDTO) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			shortID(task.ID),
			columnTitle(board, task.ColumnID),
			singleLine(task.Content),
		})
	}
	return rows
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
