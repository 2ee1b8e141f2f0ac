package session

import "errors"

var (
	// ErrNotOpen indicates the layout has not been loaded yet.
	ErrNotOpen = errors.New("layout not loaded")
	// ErrEditInProgress indicates a reload while an edit flow is active.
	ErrEditInProgress = errors.New("edit in progress")
	// ErrPersistFailed indicates the store rejected a commit; the layout
	// was rolled back.
	ErrPersistFailed = errors.New("layout change not persisted")
	// ErrInvalidLayout indicates a commit left the layout breaking its
	// invariants; the layout was rolled back.
	ErrInvalidLayout = errors.New("layout change rejected")
)
