package mcp

import (
	"time"

	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/editor"
	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
)

// ToolDefinition describes a callable tool
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type SetModeParams struct {
	Mode string `json:"mode"`
}

type StartAddParams struct {
	Kind           editor.Kind     `json:"kind,omitempty"`
	FloorID        string          `json:"floor_id,omitempty"`
	Name           string          `json:"name,omitempty"`
	Position       *geometry.Point `json:"position,omitempty"`
	Size           *geometry.Size  `json:"size,omitempty"`
	Capacity       *int            `json:"capacity,omitempty"`
	ExtraSeatLimit int             `json:"extra_seat_limit,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	Description    string          `json:"description,omitempty"`
	Available      *bool           `json:"available,omitempty"`
}

// PatchParams carries edit-form fields; omitted fields are left unchanged.
type PatchParams struct {
	Name           *string         `json:"name,omitempty"`
	FloorID        *string         `json:"floor_id,omitempty"`
	Position       *geometry.Point `json:"position,omitempty"`
	Size           *geometry.Size  `json:"size,omitempty"`
	Capacity       *int            `json:"capacity,omitempty"`
	ExtraSeatLimit *int            `json:"extra_seat_limit,omitempty"`
	Occupied       *int            `json:"occupied,omitempty"`
	Tags           *[]string       `json:"tags,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Available      *bool           `json:"available,omitempty"`
}

type UpdateFurnitureParams struct {
	ID string `json:"id"`
	PatchParams
}

type IDParams struct {
	ID string `json:"id"`
}

// PointerParams locates the pointer either directly in canvas percent or in
// client pixels relative to a viewport.
type PointerParams struct {
	ID       string             `json:"id,omitempty"`
	X        *float64           `json:"x,omitempty"`
	Y        *float64           `json:"y,omitempty"`
	ClientX  float64            `json:"client_x,omitempty"`
	ClientY  float64            `json:"client_y,omitempty"`
	Viewport *geometry.Viewport `json:"viewport,omitempty"`
}

type AdjustOccupancyParams struct {
	ID    string `json:"id"`
	Delta int    `json:"delta"`
}

type SetAvailableParams struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
}

type ImportRecordsParams struct {
	Records []furniture.Record `json:"records,omitempty"`
	CSV     string             `json:"csv,omitempty"`
}

type ExportRecordsParams struct {
	Format string `json:"format,omitempty"`
}

type FloorParams struct {
	FloorID string `json:"floor_id,omitempty"`
}

type SaveFloorSettingsParams struct {
	FloorID          string     `json:"floor_id"`
	Crop             floor.Crop `json:"crop"`
	Zoom             float64    `json:"zoom,omitempty"`
	Rotation         int        `json:"rotation,omitempty"`
	BackgroundHidden bool       `json:"background_hidden,omitempty"`
	GridHidden       bool       `json:"grid_hidden,omitempty"`
	ShowSeatIndex    bool       `json:"show_seat_index,omitempty"`
	Title            string     `json:"title,omitempty"`
	Logo             string     `json:"logo,omitempty"`
}

type GetRecentActivityParams struct {
	FurnitureID  *string                `json:"furniture_id,omitempty"`
	SessionID    *string                `json:"session_id,omitempty"`
	ActivityType *activity.ActivityType `json:"type,omitempty"`
	Limit        int                    `json:"limit,omitempty"`
	Offset       int                    `json:"offset,omitempty"`
}

type LayoutResponse struct {
	SessionID string          `json:"session_id"`
	Layout    editor.Snapshot `json:"layout"`
}

type ExportRecordsResponse struct {
	Records []furniture.Record `json:"records,omitempty"`
	CSV     string             `json:"csv,omitempty"`
}

type ImportRecordsResponse struct {
	Applied  bool            `json:"applied"`
	Imported int             `json:"imported"`
	Removed  int             `json:"removed"`
	Skipped  []string        `json:"skipped,omitempty"`
	Crop     *floor.Crop     `json:"crop,omitempty"`
	Layout   editor.Snapshot `json:"layout"`
}

type AvailableResponse struct {
	Count  int                   `json:"count"`
	Tables []furniture.Furniture `json:"tables"`
}

type ActivityEntryResponse struct {
	Timestamp   time.Time             `json:"timestamp"`
	Type        activity.ActivityType `json:"type"`
	SessionID   string                `json:"session_id,omitempty"`
	FurnitureID *string               `json:"furniture_id,omitempty"`
	Summary     string                `json:"summary"`
	Details     string                `json:"details,omitempty"`
}

func (p StartAddParams) draft() editor.Draft {
	return editor.Draft{
		Kind:           p.Kind,
		FloorID:        p.FloorID,
		Name:           p.Name,
		Position:       p.Position,
		Size:           p.Size,
		Capacity:       p.Capacity,
		ExtraSeatLimit: p.ExtraSeatLimit,
		Tags:           p.Tags,
		Description:    p.Description,
		Available:      p.Available,
	}
}

func (p PatchParams) patch() editor.Patch {
	return editor.Patch{
		Name:           p.Name,
		FloorID:        p.FloorID,
		Position:       p.Position,
		Size:           p.Size,
		Capacity:       p.Capacity,
		ExtraSeatLimit: p.ExtraSeatLimit,
		Occupied:       p.Occupied,
		Tags:           p.Tags,
		Description:    p.Description,
		Available:      p.Available,
	}
}

func (p SaveFloorSettingsParams) settings() floor.Settings {
	return floor.Settings{
		FloorID:          p.FloorID,
		Crop:             p.Crop,
		Zoom:             p.Zoom,
		Rotation:         p.Rotation,
		BackgroundHidden: p.BackgroundHidden,
		GridHidden:       p.GridHidden,
		ShowSeatIndex:    p.ShowSeatIndex,
		Title:            p.Title,
		Logo:             p.Logo,
	}
}
