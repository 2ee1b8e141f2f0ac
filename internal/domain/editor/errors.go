package editor

import "errors"

// ErrUnknownMode indicates a mode name that is not business, edit or view.
var ErrUnknownMode = errors.New("unknown mode")
