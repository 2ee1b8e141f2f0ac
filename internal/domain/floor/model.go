package floor

import "time"

const (
	// DefaultTitle is shown above the layout when no title is configured.
	DefaultTitle = "Seats Viewer"
	// DefaultLogo is the logo path used when none is configured.
	DefaultLogo = "/img/logo.png"
)

// Crop is the background image crop rectangle in source pixels.
type Crop struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// IsZero reports whether no crop has been chosen.
func (c Crop) IsZero() bool {
	return c == Crop{}
}

// Settings holds per-floor background and display preferences.
type Settings struct {
	FloorID          string    `json:"floor_id"`
	Crop             Crop      `json:"crop"`
	Zoom             float64   `json:"zoom"`
	Rotation         int       `json:"rotation"`
	BackgroundHidden bool      `json:"background_hidden"`
	GridHidden       bool      `json:"grid_hidden"`
	ShowSeatIndex    bool      `json:"show_seat_index"`
	Title            string    `json:"title"`
	Logo             string    `json:"logo"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Defaults returns the settings used for a floor that has none stored.
func Defaults(floorID string) Settings {
	return Settings{
		FloorID: floorID,
		Zoom:    1,
		Title:   DefaultTitle,
		Logo:    DefaultLogo,
	}
}
