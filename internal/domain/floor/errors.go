package floor

import "errors"

var (
	// ErrInvalidSettings indicates settings that fail validation.
	ErrInvalidSettings = errors.New("invalid floor settings")
	// ErrMissingFloor indicates an empty floor id.
	ErrMissingFloor = errors.New("floor id is required")
)
