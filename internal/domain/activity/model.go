package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeFurnitureAdded      ActivityType = "furniture_added"
	TypeFurnitureRemoved    ActivityType = "furniture_removed"
	TypeFurnitureUpdated    ActivityType = "furniture_updated"
	TypeLayoutMoved         ActivityType = "layout_moved"
	TypeLayoutRotated       ActivityType = "layout_rotated"
	TypeOccupancyChanged    ActivityType = "occupancy_changed"
	TypeAvailabilityChanged ActivityType = "availability_changed"
	TypeLayoutImported      ActivityType = "layout_imported"
	TypeFloorSettingsSaved  ActivityType = "floor_settings_saved"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	SessionID    *string      `json:"session_id,omitempty"`
	FurnitureID  *string      `json:"furniture_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
