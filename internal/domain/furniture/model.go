package furniture

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/seatmap/internal/domain/geometry"
)

// DefaultFloor is used when an item carries no floor.
const DefaultFloor = "1F"

// Status summarizes how full an item is.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusPartial Status = "partial"
	StatusFull    Status = "full"
)

// Furniture is a table or seat placed on the floor plan.
// Seats are identified by an id starting with "s" and carry no capacity.
type Furniture struct {
	ID             string         `json:"id"`
	FloorID        string         `json:"floor_id"`
	Index          int            `json:"index"`
	Name           string         `json:"name"`
	Position       geometry.Point `json:"position"`
	Size           geometry.Size  `json:"size"`
	Capacity       int            `json:"capacity"`
	ExtraSeatLimit int            `json:"extra_seat_limit"`
	Occupied       int            `json:"occupied"`
	Tags           []string       `json:"tags,omitempty"`
	Description    string         `json:"description,omitempty"`
	Available      bool           `json:"available"`
	LastOccupiedAt *time.Time     `json:"last_occupied_at,omitempty"`
}

// IsSeat reports whether the item is a seat rather than a table.
func (f Furniture) IsSeat() bool {
	return IsSeatID(f.ID)
}

// IsSeatID reports whether id names a seat.
func IsSeatID(id string) bool {
	return id != "" && (id[0] == 's' || id[0] == 'S')
}

// MaxOccupancy is the regular capacity plus the extra seats allowed.
func (f Furniture) MaxOccupancy() int {
	return f.Capacity + f.ExtraSeatLimit
}

// Status classifies current occupancy against MaxOccupancy.
func (f Furniture) Status() Status {
	switch {
	case f.Occupied <= 0:
		return StatusEmpty
	case f.Occupied >= f.MaxOccupancy():
		return StatusFull
	default:
		return StatusPartial
	}
}

// Rect returns the item's footprint.
func (f Furniture) Rect() geometry.Rect {
	return geometry.Rect{Center: f.Position, Size: f.Size}
}

// Clone returns a deep copy.
func (f Furniture) Clone() Furniture {
	out := f
	if f.Tags != nil {
		out.Tags = slices.Clone(f.Tags)
	}
	if f.LastOccupiedAt != nil {
		ts := *f.LastOccupiedAt
		out.LastOccupiedAt = &ts
	}
	return out
}

// Rotated returns the item after one quarter-turn of the layout.
func (f Furniture) Rotated() Furniture {
	out := f.Clone()
	r := geometry.RotateRect(f.Rect())
	out.Position = r.Center
	out.Size = r.Size
	return out
}

// MakeID builds the canonical table id for a floor ordinal, e.g. "1F_01".
func MakeID(floor string, index int) string {
	return fmt.Sprintf("%s_%02d", floor, index)
}

// SeatID builds the canonical seat id for a floor ordinal, e.g. "s_1F_01".
func SeatID(floor string, index int) string {
	return "s_" + MakeID(floor, index)
}

// DefaultName is the letter name cycling A..Z by ordinal.
func DefaultName(index int) string {
	if index < 1 {
		index = 1
	}
	return string(rune('A' + (index-1)%26))
}

// NormalizeTags trims, de-duplicates and sorts tags. Empty input yields nil.
func NormalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}
