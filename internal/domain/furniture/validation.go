package furniture

import (
	"fmt"
	"math"
	"strings"

	"github.com/rpggio/seatmap/internal/domain/geometry"
)

// DefaultSize replaces a non-positive width or height.
const DefaultSize = 1.0

// MaxSeats bounds capacity and extra seats so their sum cannot overflow.
const MaxSeats = math.MaxInt32

// Validate checks a single item against the layout invariants.
func (f Furniture) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return ErrMissingID
	}
	if f.Position.X < geometry.CanvasMin || f.Position.X > geometry.CanvasMax ||
		f.Position.Y < geometry.CanvasMin || f.Position.Y > geometry.CanvasMax {
		return fmt.Errorf("%s: %w", f.ID, ErrOutOfCanvas)
	}
	if !(f.Size.W > 0) || !(f.Size.H > 0) {
		return fmt.Errorf("%s: %w", f.ID, ErrInvalidSize)
	}
	if f.Capacity < 0 || f.ExtraSeatLimit < 0 || f.Occupied < 0 || f.Occupied > f.MaxOccupancy() {
		return fmt.Errorf("%s: %w", f.ID, ErrInvalidOccupancy)
	}
	return nil
}

// Normalize coerces the item into the layout invariants in place. Seats
// never hold guests.
func (f *Furniture) Normalize() {
	f.ID = strings.TrimSpace(f.ID)
	f.FloorID = strings.TrimSpace(f.FloorID)
	if f.FloorID == "" {
		f.FloorID = DefaultFloor
	}
	f.Position.X = geometry.Clamp(f.Position.X)
	f.Position.Y = geometry.Clamp(f.Position.Y)
	if !(f.Size.W > 0) {
		f.Size.W = DefaultSize
	}
	if !(f.Size.H > 0) {
		f.Size.H = DefaultSize
	}
	if f.IsSeat() {
		f.Capacity = 0
		f.ExtraSeatLimit = 0
	}
	f.Capacity = clampInt(f.Capacity, 0, MaxSeats)
	f.ExtraSeatLimit = clampInt(f.ExtraSeatLimit, 0, MaxSeats)
	f.Occupied = clampInt(f.Occupied, 0, f.MaxOccupancy())
	f.Tags = NormalizeTags(f.Tags)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
