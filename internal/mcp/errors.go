package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/editor"
	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/session"
	"github.com/rpggio/seatmap/internal/exchange"
)

// ErrUnknownMethod is returned for tool names the handler does not serve.
var ErrUnknownMethod = errors.New("unknown method")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, session.ErrNotOpen):
		return &APIError{Code: "LAYOUT_NOT_LOADED", Message: "layout has not been loaded", RecoveryHint: "Restart the server; the layout loads at startup"}
	case errors.Is(err, session.ErrPersistFailed):
		return &APIError{Code: "PERSIST_FAILED", Message: err.Error(), RecoveryHint: "The change was rolled back; retry once the store is reachable"}
	case errors.Is(err, session.ErrInvalidLayout):
		return &APIError{Code: "INVALID_LAYOUT", Message: err.Error(), RecoveryHint: "The change was rolled back; check sizes, positions and occupancy"}
	case errors.Is(err, session.ErrEditInProgress):
		return &APIError{Code: "EDIT_IN_PROGRESS", Message: "an edit flow is active", RecoveryHint: "Confirm or cancel the active flow first"}
	case errors.Is(err, editor.ErrUnknownMode):
		return &APIError{Code: "UNKNOWN_MODE", Message: err.Error(), RecoveryHint: "Use business, edit or view"}
	case errors.Is(err, floor.ErrInvalidSettings), errors.Is(err, floor.ErrMissingFloor):
		return &APIError{Code: "INVALID_FLOOR_SETTINGS", Message: err.Error(), RecoveryHint: "Rotation is 0..3, zoom is positive, crop values are not negative"}
	case errors.Is(err, exchange.ErrEmptyFile), errors.Is(err, exchange.ErrMissingHeader):
		return &APIError{Code: "INVALID_FILE", Message: err.Error(), RecoveryHint: "Export a layout to see the expected file shape"}
	case errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error()}
	case errors.Is(err, ErrUnknownMethod):
		return &APIError{Code: "UNKNOWN_METHOD", Message: err.Error(), RecoveryHint: "Call tools/list for available tools"}
	default:
		return nil
	}
}
