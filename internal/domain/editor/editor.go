// Package editor holds the floor-plan store and its edit-mode state machine.
//
// An Editor owns the committed layout plus all transient edit state: the
// pending item of an add, the pick list of a delete, the backup taken by a
// move, and the active pointer drag. Every operation is synchronous. Calls
// that are not allowed in the current state do nothing and report false.
// An Editor is not safe for concurrent use.
package editor

import (
	"fmt"
	"slices"
	"time"

	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
)

// Mode is the top-level interaction mode.
type Mode string

const (
	ModeBusiness Mode = "business"
	ModeEdit     Mode = "edit"
	ModeView     Mode = "view"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeBusiness, ModeEdit, ModeView:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// SubState is the active edit flow. Only meaningful in ModeEdit.
type SubState string

const (
	SubIdle            SubState = "idle"
	SubAddPending      SubState = "add_pending"
	SubDeleteSelecting SubState = "delete_selecting"
	SubMoveSelecting   SubState = "move_selecting"
)

// Options configures a new Editor.
type Options struct {
	Grid         geometry.Grid
	DefaultFloor string
	// ViewRotation is applied to snapshots taken in ModeView.
	ViewRotation geometry.Rotation
	Mode         Mode
	Now          func() time.Time
}

type dragState struct {
	id      string
	pending bool
	offset  geometry.Point
}

type state struct {
	committed furniture.Collection
	pending   *furniture.Furniture
	mode      Mode
	sub       SubState
	picks     []string
	backup    furniture.Collection
	hasBackup bool
	mover     string
	rotation  geometry.Rotation
	drag      *dragState
}

func (s state) clone() state {
	out := s
	out.committed = s.committed.Clone()
	if s.pending != nil {
		p := s.pending.Clone()
		out.pending = &p
	}
	out.picks = slices.Clone(s.picks)
	out.backup = s.backup.Clone()
	if s.drag != nil {
		d := *s.drag
		out.drag = &d
	}
	return out
}

// Editor is the floor-plan store.
type Editor struct {
	grid         geometry.Grid
	defaultFloor string
	viewRotation geometry.Rotation
	now          func() time.Time

	state
}

// New creates an empty Editor.
func New(opts Options) *Editor {
	if opts.Grid.Validate() != nil {
		opts.Grid = geometry.DefaultGrid
	}
	if opts.DefaultFloor == "" {
		opts.DefaultFloor = furniture.DefaultFloor
	}
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		opts.Mode = ModeBusiness
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Editor{
		grid:         opts.Grid,
		defaultFloor: opts.DefaultFloor,
		viewRotation: geometry.NormalizeRotation(int(opts.ViewRotation)),
		now:          opts.Now,
		state: state{
			mode: opts.Mode,
			sub:  SubIdle,
		},
	}
}

// Checkpoint is an opaque copy of the full editor state.
type Checkpoint struct {
	st state
}

// Checkpoint captures the current state.
func (e *Editor) Checkpoint() Checkpoint {
	return Checkpoint{st: e.state.clone()}
}

// Restore rewinds the editor to a checkpoint.
func (e *Editor) Restore(cp Checkpoint) {
	e.state = cp.st.clone()
}

// Grid returns the grid in use.
func (e *Editor) Grid() geometry.Grid { return e.grid }

// DefaultFloor returns the floor used when none is given.
func (e *Editor) DefaultFloor() string { return e.defaultFloor }

// Mode returns the current mode.
func (e *Editor) Mode() Mode { return e.mode }

// SubState returns the active edit flow.
func (e *Editor) SubState() SubState { return e.sub }

// Rotation returns the layout rotation count.
func (e *Editor) Rotation() geometry.Rotation { return e.rotation }

// Committed returns a deep copy of the committed collection.
func (e *Editor) Committed() furniture.Collection {
	if e.committed == nil {
		return furniture.Collection{}
	}
	return e.committed.Clone()
}

// Pending returns a copy of the pending item, or nil.
func (e *Editor) Pending() *furniture.Furniture {
	if e.pending == nil {
		return nil
	}
	p := e.pending.Clone()
	return &p
}

// Picks returns the delete pick list in pick order.
func (e *Editor) Picks() []string { return slices.Clone(e.picks) }

// Mover returns the item selected for moving, if any.
func (e *Editor) Mover() string { return e.mover }

// HasBackup reports whether a move backup is held.
func (e *Editor) HasBackup() bool { return e.hasBackup }

// SetMode switches the top-level mode. Leaving ModeEdit cancels the active
// flow through its cancel path.
func (e *Editor) SetMode(m Mode) bool {
	if _, err := ParseMode(string(m)); err != nil || m == e.mode {
		return false
	}
	if e.mode == ModeEdit {
		e.cancelActive()
	}
	e.mode = m
	e.sub = SubIdle
	return true
}

// Load replaces the committed collection with persisted items. Items are
// normalized and repeated ids after the first are dropped and returned.
// Refused while an edit flow is active.
func (e *Editor) Load(items []furniture.Furniture) ([]string, bool) {
	if e.flowActive() {
		return nil, false
	}
	loaded, dropped := furniture.Collection(items).Dedupe()
	e.committed = loaded
	return dropped, true
}

// idle reports whether a new edit flow may start.
func (e *Editor) idle() bool {
	return e.mode == ModeEdit && e.sub == SubIdle && e.pending == nil
}

func (e *Editor) flowActive() bool {
	return e.sub != SubIdle || e.pending != nil
}

func (e *Editor) cancelActive() {
	switch e.sub {
	case SubAddPending:
		e.CancelAdd()
	case SubDeleteSelecting:
		e.CancelDelete()
	case SubMoveSelecting:
		e.CancelMove()
	}
	e.pending = nil
	e.drag = nil
}
