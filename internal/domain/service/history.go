package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"mboard/internal/domain/entity"
	"mboard/internal/domain/repository"
)

// History keeps a linear log of board snapshots and a cursor into it.
// Recording after an undo discards the redo branch. The snapshot under the
// cursor is always the one persisted through the repository.
type History struct {
	repo     repository.SnapshotRepository
	entries  []entity.Snapshot
	cursor   int
	capacity int
}

// NewHistory creates an empty history. capacity <= 0 keeps every entry.
func NewHistory(repo repository.SnapshotRepository, capacity int) *History {
	return &History{
		repo:     repo,
		cursor:   -1,
		capacity: capacity,
	}
}

// Load reads the persisted snapshot and makes it the sole history entry.
// Absent or malformed state leaves the history empty and returns an empty
// snapshot; any other storage error is returned.
func (h *History) Load(ctx context.Context) (entity.Snapshot, bool, error) {
	snapshot, found, err := h.Peek(ctx)
	if err != nil {
		return entity.Snapshot{}, false, err
	}

	h.entries = nil
	h.cursor = -1
	if !found {
		return snapshot, false, nil
	}

	h.entries = []entity.Snapshot{snapshot.Clone()}
	h.cursor = 0
	return snapshot.Clone(), true, nil
}

// Peek reads the persisted snapshot without touching the log
func (h *History) Peek(ctx context.Context) (entity.Snapshot, bool, error) {
	snapshot, err := h.repo.Load(ctx)
	switch {
	case err == nil:
		return snapshot, true, nil
	case errors.Is(err, entity.ErrStateNotFound):
		return entity.NewSnapshot(nil, nil), false, nil
	case errors.Is(err, entity.ErrStateMalformed):
		log.Warn().Err(err).Msg("ignoring malformed board state")
		return entity.NewSnapshot(nil, nil), false, nil
	default:
		return entity.Snapshot{}, false, fmt.Errorf("failed to load board state: %w", err)
	}
}

// Record persists the snapshot, drops any redo entries and appends it
func (h *History) Record(ctx context.Context, snapshot entity.Snapshot) error {
	snapshot = snapshot.Clone()
	if err := h.repo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save board state: %w", err)
	}

	h.entries = append(h.entries[:h.cursor+1:h.cursor+1], snapshot)
	h.cursor = len(h.entries) - 1

	if h.capacity > 0 && len(h.entries) > h.capacity {
		drop := len(h.entries) - h.capacity
		h.entries = append([]entity.Snapshot(nil), h.entries[drop:]...)
		h.cursor -= drop
	}

	log.Debug().
		Int("cursor", h.cursor).
		Int("entries", len(h.entries)).
		Msg("history recorded")
	return nil
}

// Undo steps back one entry and returns the snapshot to restore.
// ok is false when there is nothing to undo.
func (h *History) Undo(ctx context.Context) (entity.Snapshot, bool, error) {
	if !h.CanUndo() {
		return entity.Snapshot{}, false, nil
	}
	return h.moveTo(ctx, h.cursor-1)
}

// Redo steps forward one entry and returns the snapshot to restore.
// ok is false when there is nothing to redo.
func (h *History) Redo(ctx context.Context) (entity.Snapshot, bool, error) {
	if !h.CanRedo() {
		return entity.Snapshot{}, false, nil
	}
	return h.moveTo(ctx, h.cursor+1)
}

func (h *History) moveTo(ctx context.Context, index int) (entity.Snapshot, bool, error) {
	target := h.entries[index]
	if err := h.repo.Save(ctx, target); err != nil {
		return entity.Snapshot{}, false, fmt.Errorf("failed to save board state: %w", err)
	}
	h.cursor = index

	log.Debug().
		Int("cursor", h.cursor).
		Int("entries", len(h.entries)).
		Msg("history moved")
	return target.Clone(), true, nil
}

// Current returns the snapshot under the cursor, which is the persisted one.
// An empty history yields an empty snapshot.
func (h *History) Current() entity.Snapshot {
	if h.cursor < 0 {
		return entity.NewSnapshot(nil, nil)
	}
	return h.entries[h.cursor].Clone()
}

// CanUndo reports whether an older entry exists
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a newer entry exists
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Cursor returns the index of the current entry, -1 when empty
func (h *History) Cursor() int {
	return h.cursor
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the configured bound, 0 when unbounded
func (h *History) Capacity() int {
	if h.capacity < 0 {
		return 0
	}
	return h.capacity
}

// Entries returns copies of every recorded snapshot, oldest first
func (h *History) Entries() []entity.Snapshot {
	out := make([]entity.Snapshot, len(h.entries))
	for i, entry := range h.entries {
		out[i] = entry.Clone()
	}
	return out
}
