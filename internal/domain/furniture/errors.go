package furniture

import "errors"

var (
	// ErrMissingID indicates an item without an id.
	ErrMissingID = errors.New("furniture id required")
	// ErrDuplicateID indicates two items share an id.
	ErrDuplicateID = errors.New("duplicate furniture id")
	// ErrOutOfCanvas indicates a position outside [0,100].
	ErrOutOfCanvas = errors.New("position outside canvas")
	// ErrInvalidSize indicates a non-positive width or height.
	ErrInvalidSize = errors.New("size must be positive")
	// ErrInvalidOccupancy indicates occupancy outside [0, capacity+extra].
	ErrInvalidOccupancy = errors.New("occupancy out of range")
)
