package commands

import (
	"fmt"
	"strings"

	"mboard/internal/application/dto"
	"mboard/internal/domain/entity"
)

const shortIDLength = 8

// resolveColumnID accepts an id, a unique id prefix or a unique title
func resolveColumnID(board *dto.BoardDTO, ref string) (string, error) {
	ref = strings.TrimSpace(ref)

	var prefixMatches, titleMatches []string
	for _, col := range board.Columns {
		if col.ID == ref {
			return col.ID, nil
		}
		if strings.HasPrefix(col.ID, ref) {
			prefixMatches = append(prefixMatches, col.ID)
		}
		if strings.EqualFold(col.Title, ref) {
			titleMatches = append(titleMatches, col.ID)
		}
	}

	if ref != "" {
		if len(titleMatches) == 1 {
			return titleMatches[0], nil
		}
		if len(prefixMatches) == 1 {
			return prefixMatches[0], nil
		}
		if len(titleMatches) > 1 || len(prefixMatches) > 1 {
			return "", fmt.Errorf("column %q is ambiguous, use its id", ref)
		}
	}
	return "", fmt.Errorf("%w: %s", entity.ErrColumnNotFound, ref)
}

// resolveTaskID accepts an id or a unique id prefix
func resolveTaskID(board *dto.BoardDTO, ref string) (string, error) {
	ref = strings.TrimSpace(ref)

	var matches []string
	for _, task := range board.Tasks {
		if task.ID == ref {
			return task.ID, nil
		}
		if ref != "" && strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: %s", entity.ErrTaskNotFound, ref)
	default:
		return "", fmt.Errorf("task id %q is ambiguous", ref)
	}
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

func columnTitle(board *dto.BoardDTO, columnID string) string {
	if i := board.ColumnIndex(columnID); i >= 0 {
		return board.Columns[i].Title
	}
	return "(none)"
}
