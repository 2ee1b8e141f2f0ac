package furniture

import (
	"cmp"
	"slices"
)

// Stats aggregates occupancy over the tables of a layout. Seats are ignored.
type Stats struct {
	Tables        int `json:"tables"`
	Capacity      int `json:"capacity"`
	Occupied      int `json:"occupied"`
	OccupancyRate int `json:"occupancy_rate"`
	Empty         int `json:"empty"`
	Partial       int `json:"partial"`
	Full          int `json:"full"`
}

// Summarize computes Stats for items. OccupancyRate is a whole percentage.
func Summarize(items []Furniture) Stats {
	var s Stats
	for _, f := range items {
		if f.IsSeat() {
			continue
		}
		s.Tables++
		s.Capacity += f.MaxOccupancy()
		s.Occupied += f.Occupied
		switch f.Status() {
		case StatusEmpty:
			s.Empty++
		case StatusPartial:
			s.Partial++
		case StatusFull:
			s.Full++
		}
	}
	if s.Capacity > 0 {
		s.OccupancyRate = (s.Occupied*100 + s.Capacity/2) / s.Capacity
	}
	return s
}

// AvailableTables lists tables open to walk-ins, ordered by name.
func AvailableTables(items []Furniture) []Furniture {
	var out []Furniture
	for _, f := range items {
		if f.Available && f.Capacity > 0 && !f.IsSeat() {
			out = append(out, f.Clone())
		}
	}
	slices.SortStableFunc(out, func(a, b Furniture) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
