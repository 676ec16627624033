package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"mboard/internal/domain/entity"
	"mboard/internal/domain/valueobject"
)

// DragSession turns drag lifecycle events into reorder operations.
//
// With recordTicks set every effective drag-over produces a history entry.
// Otherwise the board is updated live during the drag and a single entry is
// recorded on End when the board differs from its pre-drag state.
type DragSession struct {
	store       *BoardStore
	recordTicks bool

	active     *valueobject.Descriptor
	overColumn *valueobject.Descriptor
	before     entity.Snapshot
}

// NewDragSession creates a DragSession bound to the store
func NewDragSession(store *BoardStore, recordTicks bool) *DragSession {
	return &DragSession{
		store:       store,
		recordTicks: recordTicks,
	}
}

// Active returns the dragged entity, if a drag is in progress
func (d *DragSession) Active() (valueobject.Descriptor, bool) {
	if d.active == nil {
		return valueobject.Descriptor{}, false
	}
	return *d.active, true
}

// Start begins a drag. Starting again replaces the current drag without
// committing it.
func (d *DragSession) Start(active valueobject.Descriptor) error {
	if err := active.Validate(); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidDescriptor, err)
	}

	d.active = &active
	d.overColumn = nil
	d.before = d.store.Snapshot()

	log.Debug().Str("active", active.String()).Msg("drag started")
	return nil
}

// Over handles one drag-over tick. Only (Task, Task) and (Task, Column)
// pairings reorder the board; a column hovering another column is
// remembered for End. The bool reports whether the live board changed.
// Ticks for a drag that is not the active one, for example after another
// change abandoned it, fail with entity.ErrNoActiveDrag.
func (d *DragSession) Over(ctx context.Context, active, over valueobject.Descriptor) (bool, error) {
	if err := active.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", entity.ErrInvalidDescriptor, err)
	}
	if err := over.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", entity.ErrInvalidDescriptor, err)
	}

	if d.active == nil || *d.active != active {
		return false, fmt.Errorf("%w: %s", entity.ErrNoActiveDrag, active)
	}
	if active == over {
		return false, nil
	}

	switch {
	case active.IsTask() && over.IsTask():
		return d.store.moveTaskSameCol(ctx, active.ID, over.ID, d.recordTicks)
	case active.IsTask() && over.IsColumn():
		return d.store.moveTaskDiffCol(ctx, active.ID, over.ID, d.recordTicks)
	case active.IsColumn() && over.IsColumn():
		d.overColumn = &over
	}
	return false, nil
}

// End finishes the drag and commits its result. The bool reports whether a
// history entry was recorded.
func (d *DragSession) End(ctx context.Context) (bool, error) {
	if d.active == nil {
		return false, nil
	}
	active, overColumn, before := *d.active, d.overColumn, d.before
	d.reset()

	if active.IsColumn() {
		if overColumn == nil {
			return false, nil
		}
		columns := d.store.Columns()
		return d.store.MoveColumn(ctx,
			entity.ColumnIndex(columns, active.ID),
			entity.ColumnIndex(columns, overColumn.ID),
		)
	}

	if d.recordTicks {
		return false, nil
	}

	current := d.store.Snapshot()
	if current.Equal(before) {
		return false, nil
	}
	if err := d.store.commit(ctx, current.Columns, current.Tasks); err != nil {
		d.store.publish(before)
		return false, err
	}

	log.Debug().Str("active", active.String()).Msg("drag committed")
	return true, nil
}

// Cancel abandons the drag. In buffered mode the pre-drag board is
// restored; ticks already recorded stay in history.
func (d *DragSession) Cancel() {
	if d.active == nil {
		return
	}
	if !d.recordTicks {
		d.store.publish(d.before)
	}
	d.reset()
}

func (d *DragSession) reset() {
	d.active = nil
	d.overColumn = nil
	d.before = entity.Snapshot{}
}
