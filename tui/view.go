package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"mboard/internal/application/dto"
	"mboard/tui/style"
)

// cardHeight is the rendered height of a one-line task card
const cardHeight = 3

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.renderBoard()}
	if m.mode == modeInput {
		sections = append(sections, m.input.View())
	}
	sections = append(sections, m.renderStatus(), m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderBoard() string {
	if len(m.board.Columns) == 0 {
		return style.TaskStyle.Render("The board is empty. Press " + m.keys.AddColumn.Help().Key + " to add a column.")
	}

	outer := style.ColumnWidth + style.ColumnStyle.GetHorizontalFrameSize()
	visible := m.width / outer
	if visible < 1 {
		visible = 1
	}

	// Subtract: status, help, input (1 line each), column title and spacing (2 lines), borders (2 lines)
	viewportHeight := (m.height - 8) / cardHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	// View works on a copy; scrolling state only lives for this frame
	m.updateHorizontalScroll(visible)
	m.updateScroll(viewportHeight)

	end := m.horizontalScrollOffset + visible
	if end > len(m.board.Columns) {
		end = len(m.board.Columns)
	}

	columns := make([]string, 0, end-m.horizontalScrollOffset)
	for i := m.horizontalScrollOffset; i < end; i++ {
		columns = append(columns, m.renderColumn(m.board.Columns[i], i, viewportHeight))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// renderColumn renders a single column with scrolling support
func (m Model) renderColumn(col dto.ColumnDTO, colIndex int, maxVisibleTasks int) string {
	isFocused := colIndex == m.focusedColumn
	tasks := m.board.TasksIn(col.ID)

	titleText := fmt.Sprintf("%s (%d)", col.Title, len(tasks))
	titleStyle := style.ColumnTitleStyle.Width(style.ColumnWidth)
	if isFocused && m.focusedTask == headerFocus {
		titleStyle = titleStyle.Reverse(true)
	}
	title := titleStyle.Render(truncate(titleText, style.ColumnWidth))

	scrollOffset := 0
	if colIndex < len(m.scrollOffsets) {
		scrollOffset = m.scrollOffsets[colIndex]
	}
	endIdx := scrollOffset + maxVisibleTasks
	if endIdx > len(tasks) {
		endIdx = len(tasks)
	}

	var cards []string
	if scrollOffset > 0 {
		cards = append(cards, indicator("▲ more above ▲"))
	}
	for i := scrollOffset; i < endIdx; i++ {
		selected := isFocused && i == m.focusedTask
		cards = append(cards, m.renderTaskCard(tasks[i], selected))
	}
	if endIdx < len(tasks) {
		cards = append(cards, indicator("▼ more below ▼"))
	}
	if len(tasks) == 0 {
		cards = append(cards, style.TaskStyle.Width(style.ColumnWidth).Faint(true).Render("(empty)"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(cards, "\n"))

	columnStyle := style.ColumnStyle
	switch {
	case m.isDropTarget(col, colIndex):
		columnStyle = style.DropTargetColumnStyle
	case isFocused:
		columnStyle = style.FocusedColumnStyle
	}
	if m.height > 6 {
		columnStyle = columnStyle.Height(m.height - 6)
	}
	return columnStyle.Render(content)
}

// isDropTarget reports whether the column is highlighted by the current drag
func (m Model) isDropTarget(col dto.ColumnDTO, colIndex int) bool {
	if m.mode != modeGrab {
		return false
	}
	if m.grabbed.Kind == kindColumn {
		return colIndex == m.dropTarget
	}
	task, ok := m.board.FindTask(m.grabbed.ID)
	return ok && task.ColumnID == col.ID
}

func (m Model) renderTaskCard(task dto.TaskDTO, selected bool) string {
	card := style.TaskCardStyle
	switch {
	case m.mode == modeGrab && task.ID == m.grabbed.ID:
		card = style.GrabbedTaskCardStyle
	case selected:
		card = style.SelectedTaskCardStyle
	}

	width := style.ColumnWidth - card.GetHorizontalBorderSize()
	text := truncate(strings.Join(strings.Fields(task.Content), " "), width-card.GetHorizontalPadding())
	return card.Width(width).Render(style.TaskStyle.UnsetPadding().Render(text))
}

// renderStatus renders mode, history position and the last message
func (m Model) renderStatus() string {
	history := m.board.History
	parts := []string{
		fmt.Sprintf("history %d/%d", history.Cursor+1, history.Length),
		"undo " + mark(history.CanUndo),
		"redo " + mark(history.CanRedo),
	}

	switch m.mode {
	case modeGrab:
		parts = append([]string{"GRAB"}, parts...)
	case modeInput:
		parts = append([]string{"EDIT"}, parts...)
	}

	line := style.StatusStyle.Render(strings.Join(parts, " · "))
	if m.err != nil {
		return line + "  " + style.ErrorStyle.Render(m.err.Error())
	}
	if m.status != "" {
		return line + "  " + style.StatusStyle.Render(m.status)
	}
	return line
}

// renderHelp renders the help text at the bottom
func (m Model) renderHelp() string {
	var bindings []key.Binding
	switch m.mode {
	case modeGrab:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Grab, m.keys.Cancel}
	case modeInput:
		return style.HelpStyle.Render("enter save  •  " + m.keys.Cancel.Help().Key + " cancel")
	default:
		bindings = []key.Binding{
			m.keys.Grab, m.keys.AddTask, m.keys.AddColumn, m.keys.Edit,
			m.keys.DeleteTask, m.keys.DeleteColumn, m.keys.Undo, m.keys.Redo, m.keys.Quit,
		}
	}

	help := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	return style.HelpStyle.Render(strings.Join(help, "  •  "))
}

func indicator(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Width(style.ColumnWidth).
		Align(lipgloss.Center).
		Render(text)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
