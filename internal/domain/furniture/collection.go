package furniture

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/rpggio/seatmap/internal/domain/geometry"
)

// Collection is an ordered set of furniture keyed by id.
type Collection []Furniture

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, f := range c {
		out[i] = f.Clone()
	}
	return out
}

// Find returns the position of id, or -1.
func (c Collection) Find(id string) int {
	for i, f := range c {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the item with id.
func (c Collection) Get(id string) (Furniture, bool) {
	if i := c.Find(id); i >= 0 {
		return c[i].Clone(), true
	}
	return Furniture{}, false
}

// IDs lists the ids in collection order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, f := range c {
		ids[i] = f.ID
	}
	return ids
}

// Rects returns the footprints in collection order.
func (c Collection) Rects() []geometry.Rect {
	rects := make([]geometry.Rect, len(c))
	for i, f := range c {
		rects[i] = f.Rect()
	}
	return rects
}

// NextIndex returns the lowest unused ordinal on floor, starting at 1.
func (c Collection) NextIndex(floor string) int {
	used := make(map[int]bool)
	for _, f := range c {
		if f.FloorID == floor {
			used[f.Index] = true
		}
	}
	next := 1
	for used[next] {
		next++
	}
	return next
}

// OnFloor returns the items on floor.
func (c Collection) OnFloor(floor string) Collection {
	var out Collection
	for _, f := range c {
		if f.FloorID == floor {
			out = append(out, f.Clone())
		}
	}
	return out
}

// Rotated returns the collection after one quarter-turn of the layout.
func (c Collection) Rotated() Collection {
	out := make(Collection, len(c))
	for i, f := range c {
		out[i] = f.Rotated()
	}
	return out
}

// SortedByIndex returns a copy ordered by floor, then ordinal, then id.
func (c Collection) SortedByIndex() Collection {
	out := c.Clone()
	slices.SortStableFunc(out, func(a, b Furniture) int {
		return cmp.Or(
			cmp.Compare(a.FloorID, b.FloorID),
			cmp.Compare(a.Index, b.Index),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return out
}

// Validate checks every item and id uniqueness.
func (c Collection) Validate() error {
	seen := make(map[string]bool, len(c))
	for _, f := range c {
		if err := f.Validate(); err != nil {
			return err
		}
		if seen[f.ID] {
			return fmt.Errorf("%s: %w", f.ID, ErrDuplicateID)
		}
		seen[f.ID] = true
	}
	return nil
}

// Dedupe normalizes every item and drops repeated ids after the first,
// returning the dropped ids.
func (c Collection) Dedupe() (Collection, []string) {
	out := make(Collection, 0, len(c))
	var dropped []string
	seen := make(map[string]bool, len(c))
	for _, f := range c {
		f = f.Clone()
		f.Normalize()
		if f.ID == "" || seen[f.ID] {
			dropped = append(dropped, f.ID)
			continue
		}
		seen[f.ID] = true
		out = append(out, f)
	}
	return out, dropped
}
