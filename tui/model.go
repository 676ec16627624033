package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mboard/internal/application/dto"
	"mboard/internal/application/usecase/board"
	"mboard/internal/infrastructure/config"
)

type mode int

const (
	modeBrowse mode = iota
	modeGrab
	modeInput
)

type inputAction int

const (
	inputAddTask inputAction = iota
	inputAddColumn
	inputEditTask
	inputRenameColumn
)

// headerFocus is the task index used when the column title is focused
const headerFocus = -1

// Options configures how the model learns about changes made elsewhere
type Options struct {
	// Changes fires when the board may have changed outside this model
	Changes <-chan struct{}
	// Reload re-reads persisted state on change instead of only fetching the board
	Reload bool
}

// Model represents the TUI state
type Model struct {
	backend board.Backend
	board   *dto.BoardDTO
	keys    keyMap
	opts    Options

	focusedColumn          int
	focusedTask            int   // headerFocus selects the column itself
	scrollOffsets          []int // scroll offset for each column (vertical)
	horizontalScrollOffset int
	width                  int
	height                 int

	mode       mode
	grabbed    dto.DescriptorDTO
	dropTarget int // column index a grabbed column would land on

	input     textinput.Model
	action    inputAction
	editingID string

	status string
	err    error
}

// externalChangeMsg is sent when the board changed outside this model
type externalChangeMsg struct{}

// NewModel creates a new TUI model
func NewModel(backend board.Backend, initial *dto.BoardDTO, keys config.KeybindingsConfig, opts Options) Model {
	input := textinput.New()
	input.CharLimit = 512

	m := Model{
		backend: backend,
		keys:    newKeyMap(keys),
		opts:    opts,
		input:   input,
	}
	m.setBoard(initial)
	return m
}

// Init starts listening for external changes
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	if m.opts.Changes == nil {
		return nil
	}
	changes := m.opts.Changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return externalChangeMsg{}
	}
}

func (m Model) ctx() context.Context {
	return context.Background()
}

// setBoard adopts a new board and keeps focus and scrolling in range
func (m *Model) setBoard(b *dto.BoardDTO) {
	if b == nil {
		b = &dto.BoardDTO{}
	}
	m.board = b

	offsets := make([]int, len(b.Columns))
	copy(offsets, m.scrollOffsets)
	m.scrollOffsets = offsets

	if m.focusedColumn >= len(b.Columns) {
		m.focusedColumn = len(b.Columns) - 1
	}
	if m.focusedColumn < 0 {
		m.focusedColumn = 0
	}
	m.clampTaskFocus()
}

// Helper to get the tasks of a column by index
func (m Model) columnTasks(index int) []dto.TaskDTO {
	if index < 0 || index >= len(m.board.Columns) {
		return nil
	}
	return m.board.TasksIn(m.board.Columns[index].ID)
}

// Helper to get task count in current column
func (m Model) currentColumnTaskCount() int {
	return len(m.columnTasks(m.focusedColumn))
}

// Helper to get the current column
func (m Model) currentColumn() (dto.ColumnDTO, bool) {
	if m.focusedColumn < 0 || m.focusedColumn >= len(m.board.Columns) {
		return dto.ColumnDTO{}, false
	}
	return m.board.Columns[m.focusedColumn], true
}

// Helper to get current task
func (m Model) currentTask() (dto.TaskDTO, bool) {
	tasks := m.columnTasks(m.focusedColumn)
	if m.focusedTask < 0 || m.focusedTask >= len(tasks) {
		return dto.TaskDTO{}, false
	}
	return tasks[m.focusedTask], true
}

// focusTask moves focus to the task wherever it now lives
func (m *Model) focusTask(taskID string) {
	for ci, col := range m.board.Columns {
		for ti, task := range m.board.TasksIn(col.ID) {
			if task.ID == taskID {
				m.focusedColumn = ci
				m.focusedTask = ti
				return
			}
		}
	}
	m.clampTaskFocus()
}

// focusColumn moves focus to the column header
func (m *Model) focusColumn(columnID string) {
	if i := m.board.ColumnIndex(columnID); i >= 0 {
		m.focusedColumn = i
	}
	m.focusedTask = headerFocus
}

// clampTaskFocus ensures the task focus is within valid bounds
func (m *Model) clampTaskFocus() {
	taskCount := m.currentColumnTaskCount()
	switch {
	case taskCount == 0:
		m.focusedTask = headerFocus
	case m.focusedTask >= taskCount:
		m.focusedTask = taskCount - 1
	case m.focusedTask < headerFocus:
		m.focusedTask = headerFocus
	}
}

// Helper to update scroll position to keep focused task visible
func (m *Model) updateScroll(viewportHeight int) {
	if m.focusedColumn < 0 || m.focusedColumn >= len(m.scrollOffsets) {
		return
	}

	taskCount := m.currentColumnTaskCount()
	if taskCount == 0 || viewportHeight <= 0 {
		m.scrollOffsets[m.focusedColumn] = 0
		return
	}

	focused := m.focusedTask
	if focused < 0 {
		focused = 0
	}

	scrollOffset := m.scrollOffsets[m.focusedColumn]
	if focused < scrollOffset {
		m.scrollOffsets[m.focusedColumn] = focused
	} else if focused >= scrollOffset+viewportHeight {
		m.scrollOffsets[m.focusedColumn] = focused - viewportHeight + 1
	}

	maxScroll := taskCount - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scrollOffsets[m.focusedColumn] > maxScroll {
		m.scrollOffsets[m.focusedColumn] = maxScroll
	}
	if m.scrollOffsets[m.focusedColumn] < 0 {
		m.scrollOffsets[m.focusedColumn] = 0
	}
}

// Helper to update horizontal scroll to keep focused column visible
func (m *Model) updateHorizontalScroll(visibleColumns int) {
	if visibleColumns <= 0 {
		visibleColumns = 1
	}

	totalColumns := len(m.board.Columns)
	if totalColumns == 0 {
		m.horizontalScrollOffset = 0
		return
	}

	target := m.focusedColumn
	if m.mode == modeGrab && m.grabbed.Kind == kindColumn {
		target = m.dropTarget
	}

	if target < m.horizontalScrollOffset {
		m.horizontalScrollOffset = target
	} else if target >= m.horizontalScrollOffset+visibleColumns {
		m.horizontalScrollOffset = target - visibleColumns + 1
	}

	maxScroll := totalColumns - visibleColumns
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.horizontalScrollOffset > maxScroll {
		m.horizontalScrollOffset = maxScroll
	}
	if m.horizontalScrollOffset < 0 {
		m.horizontalScrollOffset = 0
	}
}
