package editor

import (
	"slices"
	"strings"

	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
)

// ChangeKind names the committing operation behind a Change.
type ChangeKind string

const (
	ChangeAdd          ChangeKind = "add"
	ChangeDelete       ChangeKind = "delete"
	ChangeMove         ChangeKind = "move"
	ChangeRotate       ChangeKind = "rotate"
	ChangeUpdate       ChangeKind = "update"
	ChangeOccupancy    ChangeKind = "occupancy"
	ChangeAvailability ChangeKind = "availability"
	ChangeImport       ChangeKind = "import"
)

// Change describes what a committing operation did to the collection.
// When Replaced is set the whole collection should be written back.
type Change struct {
	Kind     ChangeKind            `json:"kind"`
	Upserted []furniture.Furniture `json:"upserted,omitempty"`
	Removed  []string              `json:"removed,omitempty"`
	Replaced bool                  `json:"replaced,omitempty"`
}

// StartAdd creates the pending item from d.
func (e *Editor) StartAdd(d Draft) bool {
	if !e.idle() {
		return false
	}
	f := e.build(d, e.committed)
	e.pending = &f
	e.sub = SubAddPending
	return true
}

// UpdatePending edits the pending item. Moving it to another floor
// re-derives its ordinal and id.
func (e *Editor) UpdatePending(p Patch) bool {
	if e.sub != SubAddPending || e.pending == nil {
		return false
	}
	floor := e.pending.FloorID
	e.apply(e.pending, p)
	if e.pending.FloorID != floor {
		e.pending.Index, e.pending.ID = allocate(e.committed, e.pending.FloorID, e.pending.IsSeat())
	}
	return true
}

// CanConfirmAdd reports whether the pending item fits without overlap.
func (e *Editor) CanConfirmAdd() bool {
	if e.sub != SubAddPending || e.pending == nil {
		return false
	}
	return !geometry.OverlapsAny(e.grid, e.pending.Rect(), e.committed.Rects())
}

// ConfirmAdd commits the pending item.
func (e *Editor) ConfirmAdd() (Change, bool) {
	if !e.CanConfirmAdd() {
		return Change{}, false
	}
	f := e.pending.Clone()
	e.committed = append(e.committed, f)
	e.pending = nil
	e.drag = nil
	e.sub = SubIdle
	return Change{Kind: ChangeAdd, Upserted: []furniture.Furniture{f.Clone()}}, true
}

// CancelAdd discards the pending item.
func (e *Editor) CancelAdd() bool {
	if e.sub != SubAddPending {
		return false
	}
	e.pending = nil
	e.drag = nil
	e.sub = SubIdle
	return true
}

// StartDelete enters multi-select delete with an empty pick list.
func (e *Editor) StartDelete() bool {
	if !e.idle() {
		return false
	}
	e.picks = nil
	e.sub = SubDeleteSelecting
	return true
}

// TogglePick adds or removes a committed item from the pick list.
func (e *Editor) TogglePick(id string) bool {
	if e.sub != SubDeleteSelecting || e.committed.Find(id) < 0 {
		return false
	}
	if i := slices.Index(e.picks, id); i >= 0 {
		e.picks = slices.Delete(e.picks, i, i+1)
	} else {
		e.picks = append(e.picks, id)
	}
	return true
}

// CanConfirmDelete reports whether anything is picked.
func (e *Editor) CanConfirmDelete() bool {
	return e.sub == SubDeleteSelecting && len(e.picks) > 0
}

// ConfirmDelete removes every picked item at once.
func (e *Editor) ConfirmDelete() (Change, bool) {
	if !e.CanConfirmDelete() {
		return Change{}, false
	}
	removed := slices.Clone(e.picks)
	e.committed = slices.DeleteFunc(e.committed, func(f furniture.Furniture) bool {
		return slices.Contains(removed, f.ID)
	})
	e.picks = nil
	e.sub = SubIdle
	return Change{Kind: ChangeDelete, Removed: removed}, true
}

// CancelDelete clears the pick list without deleting anything.
func (e *Editor) CancelDelete() bool {
	if e.sub != SubDeleteSelecting {
		return false
	}
	e.picks = nil
	e.sub = SubIdle
	return true
}

// StartMove takes a deep backup of the layout and enters move selection.
func (e *Editor) StartMove() bool {
	if !e.idle() {
		return false
	}
	e.backup = e.committed.Clone()
	e.hasBackup = true
	e.mover = ""
	e.sub = SubMoveSelecting
	return true
}

// SelectMover picks the committed item to drag.
func (e *Editor) SelectMover(id string) bool {
	if e.sub != SubMoveSelecting || e.committed.Find(id) < 0 {
		return false
	}
	e.mover = id
	return true
}

// CanConfirmMove reports whether the live layout is free of overlaps.
func (e *Editor) CanConfirmMove() bool {
	return e.sub == SubMoveSelecting && !geometry.AnyOverlap(e.grid, e.committed.Rects())
}

// ConfirmMove keeps the moved positions and discards the backup.
func (e *Editor) ConfirmMove() (Change, bool) {
	if !e.CanConfirmMove() {
		return Change{}, false
	}
	var moved []furniture.Furniture
	for _, f := range e.committed {
		before, ok := e.backup.Get(f.ID)
		if !ok || before.Position != f.Position {
			moved = append(moved, f.Clone())
		}
	}
	e.endMove()
	return Change{Kind: ChangeMove, Upserted: moved}, true
}

// CancelMove restores the layout from the backup.
func (e *Editor) CancelMove() bool {
	if e.sub != SubMoveSelecting {
		return false
	}
	e.committed = e.backup
	e.endMove()
	return true
}

func (e *Editor) endMove() {
	e.backup = nil
	e.hasBackup = false
	e.mover = ""
	e.drag = nil
	e.sub = SubIdle
}

// Rotate turns the whole committed layout a quarter.
func (e *Editor) Rotate() (Change, bool) {
	if !e.idle() {
		return Change{}, false
	}
	e.committed = e.committed.Rotated()
	e.rotation = e.rotation.Next()
	return Change{Kind: ChangeRotate, Upserted: e.committed.Clone()}, true
}

// AdjustOccupancy adds delta guests to an item in business mode, clamped to
// its maximum. Seating guests stamps the last-occupied time.
func (e *Editor) AdjustOccupancy(id string, delta int) (Change, bool) {
	if e.mode != ModeBusiness {
		return Change{}, false
	}
	i := e.committed.Find(id)
	if i < 0 {
		return Change{}, false
	}
	f := &e.committed[i]
	limit := f.MaxOccupancy()
	delta = max(-limit, min(limit, delta))
	next := max(0, min(limit, f.Occupied+delta))
	if next == f.Occupied {
		return Change{}, false
	}
	f.Occupied = next
	if delta > 0 {
		ts := e.now().UTC()
		f.LastOccupiedAt = &ts
	}
	return Change{Kind: ChangeOccupancy, Upserted: []furniture.Furniture{f.Clone()}}, true
}

// SetAvailable flips walk-in availability outside of any edit flow.
func (e *Editor) SetAvailable(id string, available bool) (Change, bool) {
	if e.mode == ModeView || e.flowActive() {
		return Change{}, false
	}
	i := e.committed.Find(id)
	if i < 0 || e.committed[i].Available == available {
		return Change{}, false
	}
	e.committed[i].Available = available
	return Change{Kind: ChangeAvailability, Upserted: []furniture.Furniture{e.committed[i].Clone()}}, true
}

// UpdateFurniture commits edit-form changes to a committed item. The id
// never changes. Moving to a floor whose ordinal is taken assigns the next
// free ordinal there.
func (e *Editor) UpdateFurniture(id string, p Patch) (Change, bool) {
	if !e.idle() {
		return Change{}, false
	}
	i := e.committed.Find(id)
	if i < 0 {
		return Change{}, false
	}
	f := e.committed[i].Clone()
	floor := f.FloorID
	e.apply(&f, p)
	if f.FloorID != floor {
		others := slices.Delete(e.committed.Clone(), i, i+1)
		for _, o := range others {
			if o.FloorID == f.FloorID && o.Index == f.Index {
				f.Index = others.NextIndex(f.FloorID)
				break
			}
		}
	}
	e.committed[i] = f
	return Change{Kind: ChangeUpdate, Upserted: []furniture.Furniture{f.Clone()}}, true
}

// ImportResult reports what a batch import did.
type ImportResult struct {
	Change  Change
	Skipped []string
}

// Import replaces the committed layout with records. Records repeating an
// earlier id are skipped. Missing floors take the default floor and missing
// or clashing ordinals and ids are assigned.
func (e *Editor) Import(records []furniture.Record) (ImportResult, bool) {
	if e.mode == ModeView || e.flowActive() {
		return ImportResult{}, false
	}
	var (
		next    furniture.Collection
		skipped []string
		seen    = make(map[string]bool)
	)
	for _, rec := range records {
		f := furniture.FromRecord(rec)
		if strings.TrimSpace(rec.Floor) == "" {
			f.FloorID = e.defaultFloor
		}
		if f.ID != "" && seen[f.ID] {
			skipped = append(skipped, f.ID)
			continue
		}
		if f.Index < 1 || indexTaken(next, f.FloorID, f.Index) {
			f.Index = next.NextIndex(f.FloorID)
		}
		if f.ID == "" {
			f.ID = furniture.MakeID(f.FloorID, f.Index)
			if seen[f.ID] {
				skipped = append(skipped, f.ID)
				continue
			}
		}
		if strings.TrimSpace(f.Name) == "" && !f.IsSeat() {
			f.Name = furniture.DefaultName(f.Index)
		}
		seen[f.ID] = true
		next = append(next, f)
	}

	var removed []string
	for _, f := range e.committed {
		if !seen[f.ID] {
			removed = append(removed, f.ID)
		}
	}
	e.committed = next
	return ImportResult{
		Change: Change{
			Kind:     ChangeImport,
			Upserted: next.Clone(),
			Removed:  removed,
			Replaced: true,
		},
		Skipped: skipped,
	}, true
}

func indexTaken(c furniture.Collection, floor string, index int) bool {
	for _, f := range c {
		if f.FloorID == floor && f.Index == index {
			return true
		}
	}
	return false
}

// Export returns the committed layout as records ordered by floor and ordinal.
func (e *Editor) Export() []furniture.Record {
	sorted := e.committed.SortedByIndex()
	out := make([]furniture.Record, len(sorted))
	for i, f := range sorted {
		out[i] = furniture.ToRecord(f)
	}
	return out
}
