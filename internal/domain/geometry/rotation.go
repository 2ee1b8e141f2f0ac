package geometry

// Rotation counts clockwise quarter-turns of the layout, always in [0,3].
type Rotation int

// NormalizeRotation folds any turn count into [0,3].
func NormalizeRotation(n int) Rotation {
	n %= 4
	if n < 0 {
		n += 4
	}
	return Rotation(n)
}

// Next returns the rotation after one more quarter-turn.
func (r Rotation) Next() Rotation {
	return NormalizeRotation(int(r) + 1)
}

// Apply rotates rect by r quarter-turns.
func (r Rotation) Apply(rect Rect) Rect {
	for i := 0; i < int(NormalizeRotation(int(r))); i++ {
		rect = RotateRect(rect)
	}
	return rect
}

// RotateRect turns a rectangle a quarter about the canvas center.
// The center maps (x, y) -> (100-y, x) and the size swaps its axes.
func RotateRect(r Rect) Rect {
	return Rect{
		Center: Point{X: CanvasMax - r.Center.Y, Y: r.Center.X},
		Size:   Size{W: r.Size.H, H: r.Size.W},
	}
}
