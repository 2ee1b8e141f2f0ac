package editor

import (
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
)

// Snapshot is everything a renderer needs to draw the current state.
type Snapshot struct {
	Mode             Mode                  `json:"mode"`
	SubState         SubState              `json:"sub_state"`
	Grid             geometry.Grid         `json:"grid"`
	Rotation         int                   `json:"rotation"`
	Items            []furniture.Furniture `json:"items"`
	Pending          *furniture.Furniture  `json:"pending,omitempty"`
	Picks            []string              `json:"picks,omitempty"`
	Mover            string                `json:"mover,omitempty"`
	HasBackup        bool                  `json:"has_backup"`
	Dragging         string                `json:"dragging,omitempty"`
	CanConfirmAdd    bool                  `json:"can_confirm_add"`
	CanConfirmDelete bool                  `json:"can_confirm_delete"`
	CanConfirmMove   bool                  `json:"can_confirm_move"`
	Overlaps         [][2]string           `json:"overlaps,omitempty"`
}

// Snapshot captures the current state. In view mode items are turned by the
// configured view rotation; the committed layout itself is not changed.
func (e *Editor) Snapshot() Snapshot {
	items := e.Committed()
	if e.mode == ModeView && e.viewRotation != 0 {
		for i := range items {
			r := e.viewRotation.Apply(items[i].Rect())
			items[i].Position = r.Center
			items[i].Size = r.Size
		}
	}
	dragging, _ := e.Dragging()
	return Snapshot{
		Mode:             e.mode,
		SubState:         e.sub,
		Grid:             e.grid,
		Rotation:         int(e.rotation),
		Items:            items,
		Pending:          e.Pending(),
		Picks:            e.Picks(),
		Mover:            e.mover,
		HasBackup:        e.hasBackup,
		Dragging:         dragging,
		CanConfirmAdd:    e.CanConfirmAdd(),
		CanConfirmDelete: e.CanConfirmDelete(),
		CanConfirmMove:   e.CanConfirmMove(),
		Overlaps:         e.overlaps(),
	}
}

// overlaps lists intersecting id pairs across committed items and the
// pending item.
func (e *Editor) overlaps() [][2]string {
	all := e.committed
	if e.pending != nil {
		all = append(e.committed.Clone(), *e.pending)
	}
	var out [][2]string
	for _, p := range geometry.OverlappingPairs(e.grid, all.Rects()) {
		out = append(out, [2]string{all[p[0]].ID, all[p[1]].ID})
	}
	return out
}
