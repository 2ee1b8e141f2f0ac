package editor

import (
	"strconv"
	"strings"

	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
)

// Kind selects what an add flow creates.
type Kind string

const (
	KindTable Kind = "table"
	KindSeat  Kind = "seat"
)

// Defaults for new items.
var (
	defaultTablePosition = geometry.Point{X: 50, Y: 50}
	defaultTableSize     = geometry.Size{W: 2, H: 2}
	defaultSeatSize      = geometry.Size{W: 0.75, H: 0.75}
)

const defaultTableCapacity = 4

// Draft describes an item to add. Nil fields take the kind's defaults.
type Draft struct {
	Kind           Kind
	FloorID        string
	Name           string
	Position       *geometry.Point
	Size           *geometry.Size
	Capacity       *int
	ExtraSeatLimit int
	Tags           []string
	Description    string
	Available      *bool
}

// Patch carries edit-form changes. Nil fields are left untouched.
type Patch struct {
	Name           *string
	FloorID        *string
	Position       *geometry.Point
	Size           *geometry.Size
	Capacity       *int
	ExtraSeatLimit *int
	Occupied       *int
	Tags           *[]string
	Description    *string
	Available      *bool
}

func (e *Editor) build(d Draft, taken furniture.Collection) furniture.Furniture {
	floor := strings.TrimSpace(d.FloorID)
	if floor == "" {
		floor = e.defaultFloor
	}
	seat := d.Kind == KindSeat
	index, id := allocate(taken, floor, seat)

	f := furniture.Furniture{
		FloorID:        floor,
		Index:          index,
		Position:       defaultTablePosition,
		Size:           defaultTableSize,
		Capacity:       defaultTableCapacity,
		ExtraSeatLimit: d.ExtraSeatLimit,
		Tags:           d.Tags,
		Description:    d.Description,
		Available:      true,
	}
	f.ID = id
	if seat {
		f.Name = seatName(index)
		f.Size = defaultSeatSize
		f.Capacity = 0
		f.ExtraSeatLimit = 0
	} else {
		f.Name = furniture.DefaultName(index)
	}
	if name := strings.TrimSpace(d.Name); name != "" {
		f.Name = name
	}
	if d.Position != nil {
		f.Position = *d.Position
	}
	if d.Size != nil {
		if d.Size.W > 0 {
			f.Size.W = d.Size.W
		}
		if d.Size.H > 0 {
			f.Size.H = d.Size.H
		}
	}
	if d.Capacity != nil && !seat {
		f.Capacity = *d.Capacity
	}
	if d.Available != nil {
		f.Available = *d.Available
	}
	f.Position = e.grid.Place(f.Position)
	f.Normalize()
	return f
}

// allocate picks the lowest free ordinal on floor whose derived id is also
// unused.
func allocate(taken furniture.Collection, floor string, seat bool) (int, string) {
	index := taken.NextIndex(floor)
	for {
		id := furniture.MakeID(floor, index)
		if seat {
			id = furniture.SeatID(floor, index)
		}
		if taken.Find(id) < 0 && !indexTaken(taken, floor, index) {
			return index, id
		}
		index++
	}
}

func seatName(index int) string {
	return strconv.Itoa(index)
}

// apply writes p onto f. An empty name or a non-positive dimension keeps the
// current value, and positions go through the grid.
func (e *Editor) apply(f *furniture.Furniture, p Patch) {
	if p.Name != nil {
		if name := strings.TrimSpace(*p.Name); name != "" {
			f.Name = name
		}
	}
	if p.FloorID != nil {
		if floor := strings.TrimSpace(*p.FloorID); floor != "" {
			f.FloorID = floor
		}
	}
	if p.Position != nil {
		f.Position = e.grid.Place(*p.Position)
	}
	if p.Size != nil {
		if p.Size.W > 0 {
			f.Size.W = p.Size.W
		}
		if p.Size.H > 0 {
			f.Size.H = p.Size.H
		}
	}
	if p.Capacity != nil {
		f.Capacity = *p.Capacity
	}
	if p.ExtraSeatLimit != nil {
		f.ExtraSeatLimit = *p.ExtraSeatLimit
	}
	if p.Occupied != nil {
		f.Occupied = *p.Occupied
	}
	if p.Tags != nil {
		f.Tags = *p.Tags
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Available != nil {
		f.Available = *p.Available
	}
	f.Normalize()
}
