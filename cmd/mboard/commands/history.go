package commands

import (
	"github.com/spf13/cobra"
)

// undoCmd steps back one history entry
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := backend.Undo(getContext(cmd))
		if err != nil {
			return err
		}
		return printChange(result, "Undone")
	},
}

// redoCmd steps forward one history entry
var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := backend.Redo(getContext(cmd))
		if err != nil {
			return err
		}
		return printChange(result, "Redone")
	},
}

// historyCmd shows the history position
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the undo/redo position",
	Long: `Show where the board sits in its undo/redo history.

History lives in the process that owns the board: run mboardd and use
--remote to keep it across CLI invocations.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := backend.History(getContext(cmd))
		if err != nil {
			return err
		}

		if formatter.Structured() {
			return formatter.Print(history)
		}
		printer.Println("Entries:  %d", history.Length)
		printer.Println("Position: %d", history.Cursor+1)
		if history.Capacity > 0 {
			printer.Println("Capacity: %d", history.Capacity)
		} else {
			printer.Println("Capacity: unlimited")
		}
		printer.Println("Undo:     %s", yesNo(history.CanUndo))
		printer.Println("Redo:     %s", yesNo(history.CanRedo))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
	rootCmd.AddCommand(historyCmd)
}
