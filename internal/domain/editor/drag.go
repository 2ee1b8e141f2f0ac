package editor

import "github.com/rpggio/seatmap/internal/domain/geometry"

// PointerDown starts dragging id from canvas point at. The pending item can
// always be dragged; committed items only while selecting a move, in which
// case the item also becomes the mover.
func (e *Editor) PointerDown(id string, at geometry.Point) bool {
	if e.pending != nil && e.pending.ID == id {
		e.drag = &dragState{id: id, pending: true, offset: at.Sub(e.pending.Position)}
		return true
	}
	if e.sub != SubMoveSelecting {
		return false
	}
	i := e.committed.Find(id)
	if i < 0 {
		return false
	}
	e.mover = id
	e.drag = &dragState{id: id, offset: at.Sub(e.committed[i].Position)}
	return true
}

// PointerMove drags the active target so that it keeps its grab offset from
// the pointer. The new position is snapped and clamped.
func (e *Editor) PointerMove(at geometry.Point) bool {
	if e.drag == nil {
		return false
	}
	pos := e.grid.Place(at.Sub(e.drag.offset))
	if e.drag.pending {
		if e.pending == nil {
			e.drag = nil
			return false
		}
		e.pending.Position = pos
		return true
	}
	i := e.committed.Find(e.drag.id)
	if i < 0 || e.sub != SubMoveSelecting {
		e.drag = nil
		return false
	}
	e.committed[i].Position = pos
	return true
}

// PointerUp ends the active drag.
func (e *Editor) PointerUp() bool {
	if e.drag == nil {
		return false
	}
	e.drag = nil
	return true
}

// Dragging returns the id being dragged, if any.
func (e *Editor) Dragging() (string, bool) {
	if e.drag == nil {
		return "", false
	}
	return e.drag.id, true
}
