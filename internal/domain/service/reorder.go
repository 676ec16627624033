package service

import (
	"mboard/internal/domain/entity"
	"mboard/internal/domain/valueobject"
)

// ArrayMove returns a copy of items with the element at from removed and
// reinserted at to. Every other element keeps its relative order.
// Out-of-range indexes yield an unchanged copy.
func ArrayMove[T any](items []T, from, to int) []T {
	out := make([]T, len(items))
	copy(out, items)

	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}

// MoveTaskSameCol repositions the active task onto the over task's slot and
// adopts the over task's column. The bool reports whether anything changed.
func MoveTaskSameCol(tasks []entity.Task, activeID, overID valueobject.ID) ([]entity.Task, bool) {
	if activeID == overID {
		return tasks, false
	}

	activeIndex := entity.TaskIndex(tasks, activeID)
	overIndex := entity.TaskIndex(tasks, overID)
	if activeIndex < 0 || overIndex < 0 {
		return tasks, false
	}

	next := entity.CloneTasks(tasks)
	next[activeIndex] = next[activeIndex].WithColumn(tasks[overIndex].ColumnID)
	next = ArrayMove(next, activeIndex, overIndex)

	return next, true
}

// MoveTaskDiffCol reassigns the active task to another column without
// touching its sequence position
func MoveTaskDiffCol(tasks []entity.Task, activeID, overColumnID valueobject.ID) ([]entity.Task, bool) {
	activeIndex := entity.TaskIndex(tasks, activeID)
	if activeIndex < 0 || tasks[activeIndex].ColumnID == overColumnID {
		return tasks, false
	}

	next := entity.CloneTasks(tasks)
	next[activeIndex] = next[activeIndex].WithColumn(overColumnID)
	return next, true
}

// MoveColumn removes the column at fromIndex and reinserts it at toIndex
func MoveColumn(columns []entity.Column, fromIndex, toIndex int) ([]entity.Column, bool) {
	if fromIndex < 0 || fromIndex >= len(columns) || toIndex < 0 || toIndex >= len(columns) {
		return columns, false
	}
	if fromIndex == toIndex {
		return columns, false
	}
	return ArrayMove(columns, fromIndex, toIndex), true
}

// MoveTask reassigns a task to another column, keeping its position.
// Unknown ids leave the copy equal to the input.
func MoveTask(tasks []entity.Task, taskID, newColumnID valueobject.ID) []entity.Task {
	next := entity.CloneTasks(tasks)
	for i, task := range next {
		if task.ID == taskID {
			next[i] = task.WithColumn(newColumnID)
		}
	}
	return next
}
