package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mboard/internal/application/dto"
	"mboard/internal/domain/entity"
	"mboard/internal/domain/valueobject"
)

const (
	kindTask   = string(valueobject.KindTask)
	kindColumn = string(valueobject.KindColumn)
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case externalChangeMsg:
		m.refresh()
		return m, m.waitForChange()

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeGrab:
			m.updateGrab(msg)
			return m, nil
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		m.moveLeft()

	case key.Matches(msg, m.keys.Right):
		m.moveRight()

	case key.Matches(msg, m.keys.Up):
		m.moveUp()

	case key.Matches(msg, m.keys.Down):
		m.moveDown()

	case key.Matches(msg, m.keys.Grab):
		m.grab()

	case key.Matches(msg, m.keys.AddTask):
		if col, ok := m.currentColumn(); ok {
			return m, m.openInput(inputAddTask, col.ID, "", "New task")
		}
		m.status = "Add a column first"

	case key.Matches(msg, m.keys.AddColumn):
		return m, m.openInput(inputAddColumn, "", "", "Column title")

	case key.Matches(msg, m.keys.Edit):
		if task, ok := m.currentTask(); ok {
			return m, m.openInput(inputEditTask, task.ID, task.Content, "Task content")
		}
		if col, ok := m.currentColumn(); ok {
			return m, m.openInput(inputRenameColumn, col.ID, col.Title, "Column title")
		}

	case key.Matches(msg, m.keys.DeleteTask):
		m.deleteTask()

	case key.Matches(msg, m.keys.DeleteColumn):
		m.deleteColumn()

	case key.Matches(msg, m.keys.Undo):
		m.undo()

	case key.Matches(msg, m.keys.Redo):
		m.redo()

	case key.Matches(msg, m.keys.Cancel):
		m.status = ""
	}

	return m, nil
}

// moveLeft moves focus to the left column
func (m *Model) moveLeft() {
	if m.focusedColumn > 0 {
		m.focusedColumn--
		m.focusedTask = 0
		m.clampTaskFocus()
	}
}

// moveRight moves focus to the right column
func (m *Model) moveRight() {
	if m.focusedColumn < len(m.board.Columns)-1 {
		m.focusedColumn++
		m.focusedTask = 0
		m.clampTaskFocus()
	}
}

// moveUp moves focus to the task above, then to the column title
func (m *Model) moveUp() {
	if m.focusedTask > headerFocus {
		m.focusedTask--
	}
}

// moveDown moves focus to the task below
func (m *Model) moveDown() {
	if m.focusedTask < m.currentColumnTaskCount()-1 {
		m.focusedTask++
	}
}

// grab starts dragging the focused task, or the column when its title is focused
func (m *Model) grab() {
	if task, ok := m.currentTask(); ok {
		m.startDrag(dto.DescriptorDTO{Kind: kindTask, ID: task.ID})
		return
	}
	if col, ok := m.currentColumn(); ok {
		m.startDrag(dto.DescriptorDTO{Kind: kindColumn, ID: col.ID})
	}
}

func (m *Model) startDrag(active dto.DescriptorDTO) {
	if err := m.backend.DragStart(m.ctx(), active); err != nil {
		m.err = err
		return
	}
	m.mode = modeGrab
	m.grabbed = active
	m.dropTarget = m.focusedColumn
	m.status = ""
}

func (m *Model) updateGrab(msg tea.KeyMsg) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Grab):
		m.drop()
	case key.Matches(msg, m.keys.Cancel):
		m.cancelDrag()
	case key.Matches(msg, m.keys.Quit):
		m.cancelDrag()
	case m.grabbed.Kind == kindColumn:
		m.dragColumn(msg)
	default:
		m.dragTask(msg)
	}
}

// dragTask sends the grabbed task over its neighbour in the pressed direction
func (m *Model) dragTask(msg tea.KeyMsg) {
	tasks := m.columnTasks(m.focusedColumn)

	var over dto.DescriptorDTO
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.focusedTask <= 0 {
			return
		}
		over = dto.DescriptorDTO{Kind: kindTask, ID: tasks[m.focusedTask-1].ID}
	case key.Matches(msg, m.keys.Down):
		if m.focusedTask >= len(tasks)-1 {
			return
		}
		over = dto.DescriptorDTO{Kind: kindTask, ID: tasks[m.focusedTask+1].ID}
	case key.Matches(msg, m.keys.Left):
		if m.focusedColumn == 0 {
			return
		}
		over = dto.DescriptorDTO{Kind: kindColumn, ID: m.board.Columns[m.focusedColumn-1].ID}
	case key.Matches(msg, m.keys.Right):
		if m.focusedColumn >= len(m.board.Columns)-1 {
			return
		}
		over = dto.DescriptorDTO{Kind: kindColumn, ID: m.board.Columns[m.focusedColumn+1].ID}
	default:
		return
	}

	result, err := m.backend.DragOver(m.ctx(), m.grabbed, over)
	if err != nil {
		m.dragFailed(err)
		return
	}
	m.setBoard(&result.Board)
	m.focusTask(m.grabbed.ID)
}

// dragColumn moves the drop target of the grabbed column
func (m *Model) dragColumn(msg tea.KeyMsg) {
	target := m.dropTarget
	switch {
	case key.Matches(msg, m.keys.Left):
		target--
	case key.Matches(msg, m.keys.Right):
		target++
	default:
		return
	}
	if target < 0 || target >= len(m.board.Columns) || target == m.dropTarget {
		return
	}

	if target == m.board.ColumnIndex(m.grabbed.ID) {
		// back over itself: restart so no stale target survives
		if err := m.backend.DragStart(m.ctx(), m.grabbed); err != nil {
			m.err = err
			return
		}
	} else {
		over := dto.DescriptorDTO{Kind: kindColumn, ID: m.board.Columns[target].ID}
		if _, err := m.backend.DragOver(m.ctx(), m.grabbed, over); err != nil {
			m.dragFailed(err)
			return
		}
	}
	m.dropTarget = target
}

func (m *Model) drop() {
	grabbed := m.grabbed
	m.endGrab()

	result, err := m.backend.DragEnd(m.ctx())
	if err != nil {
		m.err = err
		m.refresh()
		return
	}
	m.setBoard(&result.Board)

	if grabbed.Kind == kindColumn {
		m.focusColumn(grabbed.ID)
	} else {
		m.focusTask(grabbed.ID)
	}
	if result.Changed {
		m.status = "Moved"
	} else {
		m.status = "Nothing moved"
	}
}

func (m *Model) cancelDrag() {
	grabbed := m.grabbed
	m.endGrab()

	board, err := m.backend.DragCancel(m.ctx())
	if err != nil {
		m.err = err
		m.refresh()
		return
	}
	m.setBoard(board)
	if grabbed.Kind == kindTask {
		m.focusTask(grabbed.ID)
	}
	m.status = "Drag cancelled"
}

// dragFailed leaves grab mode when the drag was abandoned by another change
func (m *Model) dragFailed(err error) {
	if !errors.Is(err, entity.ErrNoActiveDrag) {
		m.err = err
		return
	}
	m.endGrab()
	m.refresh()
	m.status = "Drag ended: the board was changed elsewhere"
}

func (m *Model) endGrab() {
	m.mode = modeBrowse
	m.grabbed = dto.DescriptorDTO{}
	m.dropTarget = m.focusedColumn
}

// openInput switches to the inline editor
func (m *Model) openInput(action inputAction, id, value, placeholder string) tea.Cmd {
	m.mode = modeInput
	m.action = action
	m.editingID = id
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.submitInput()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.editingID = ""
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) submitInput() {
	value := strings.TrimSpace(m.input.Value())
	action, id := m.action, m.editingID
	m.closeInput()

	ctx := m.ctx()
	switch action {
	case inputAddTask:
		task, err := m.backend.AddTask(ctx, id, value)
		if err != nil {
			m.err = err
			return
		}
		m.refresh()
		m.focusTask(task.ID)
		m.status = "Task added"

	case inputAddColumn:
		col, err := m.backend.AddColumn(ctx, value)
		if err != nil {
			m.err = err
			return
		}
		m.refresh()
		m.focusColumn(col.ID)
		m.status = "Column added"

	case inputEditTask:
		board, err := m.backend.UpdateTask(ctx, id, value)
		if err != nil {
			m.err = err
			return
		}
		m.setBoard(board)
		m.focusTask(id)
		m.status = "Task updated"

	case inputRenameColumn:
		board, err := m.backend.RenameColumn(ctx, id, value)
		if err != nil {
			m.err = err
			return
		}
		m.setBoard(board)
		m.status = "Column renamed"
	}
}

// deleteTask removes the currently focused task
func (m *Model) deleteTask() {
	task, ok := m.currentTask()
	if !ok {
		return
	}

	board, err := m.backend.DeleteTask(m.ctx(), task.ID)
	if err != nil {
		m.err = err
		return
	}
	m.setBoard(board)
	m.status = "Task deleted"
}

// deleteColumn removes the focused column with its tasks
func (m *Model) deleteColumn() {
	col, ok := m.currentColumn()
	if !ok {
		return
	}

	board, err := m.backend.DeleteColumn(m.ctx(), col.ID)
	if err != nil {
		m.err = err
		return
	}
	m.setBoard(board)
	m.status = "Column deleted"
}

func (m *Model) undo() {
	result, err := m.backend.Undo(m.ctx())
	if err != nil {
		m.err = err
		return
	}
	m.setBoard(&result.Board)
	if result.Changed {
		m.status = "Undone"
	} else {
		m.status = "Nothing to undo"
	}
}

func (m *Model) redo() {
	result, err := m.backend.Redo(m.ctx())
	if err != nil {
		m.err = err
		return
	}
	m.setBoard(&result.Board)
	if result.Changed {
		m.status = "Redone"
	} else {
		m.status = "Nothing to redo"
	}
}

// refresh fetches the board again, re-reading storage when configured to
func (m *Model) refresh() {
	if m.opts.Reload {
		result, err := m.backend.Reload(m.ctx())
		if err != nil {
			m.err = err
			return
		}
		if result.Changed {
			if m.mode == modeGrab {
				m.endGrab()
			}
			m.status = "Board changed on disk"
		}
		m.setBoard(&result.Board)
		return
	}

	board, err := m.backend.GetBoard(m.ctx())
	if err != nil {
		m.err = err
		return
	}
	m.setBoard(board)
}
