package geometry

import (
	"errors"
	"math"
)

// Canvas bounds in percent.
const (
	CanvasMin = 0.0
	CanvasMax = 100.0
)

// ErrInvalidGrid indicates a grid with a non-positive unit.
var ErrInvalidGrid = errors.New("grid units must be positive")

// Point is a position on the canvas in percent.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair measured in grid units.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Rect is a rectangle anchored at its center.
type Rect struct {
	Center Point `json:"center"`
	Size   Size  `json:"size"`
}

// Grid holds the per-axis grid units used for snapping and extents.
type Grid struct {
	UnitX float64 `json:"unit_x" yaml:"unit_x"`
	UnitY float64 `json:"unit_y" yaml:"unit_y"`
}

// DefaultGrid is the grid the floor plan ships with.
var DefaultGrid = Grid{UnitX: 2, UnitY: 3.125}

// Validate checks that both units are positive.
func (g Grid) Validate() error {
	if !(g.UnitX > 0) || !(g.UnitY > 0) {
		return ErrInvalidGrid
	}
	return nil
}

// Snap rounds raw to the nearest multiple of unit.
func Snap(raw, unit float64) float64 {
	return math.Round(raw/unit) * unit
}

// Clamp bounds v to the canvas. NaN clamps to the origin.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return CanvasMin
	}
	return math.Max(CanvasMin, math.Min(CanvasMax, v))
}

// Place snaps a raw position to the grid and clamps it to the canvas.
func (g Grid) Place(raw Point) Point {
	return Point{
		X: Clamp(Snap(raw.X, g.UnitX)),
		Y: Clamp(Snap(raw.Y, g.UnitY)),
	}
}

// HalfExtent returns the half width and half height of size in percent.
func (g Grid) HalfExtent(size Size) (float64, float64) {
	return size.W * g.UnitX, size.H * g.UnitY
}
