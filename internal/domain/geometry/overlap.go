package geometry

import "math"

// Overlaps reports whether two center-anchored rectangles intersect.
// Touching edges do not count as overlap.
func Overlaps(g Grid, a, b Rect) bool {
	aw, ah := g.HalfExtent(a.Size)
	bw, bh := g.HalfExtent(b.Size)
	if math.Abs(a.Center.X-b.Center.X) >= aw+bw {
		return false
	}
	if math.Abs(a.Center.Y-b.Center.Y) >= ah+bh {
		return false
	}
	return true
}

// OverlapsAny reports whether r intersects any rectangle in rects.
func OverlapsAny(g Grid, r Rect, rects []Rect) bool {
	for _, other := range rects {
		if Overlaps(g, r, other) {
			return true
		}
	}
	return false
}

// AnyOverlap reports whether any two rectangles in rects intersect.
func AnyOverlap(g Grid, rects []Rect) bool {
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if Overlaps(g, rects[i], rects[j]) {
				return true
			}
		}
	}
	return false
}

// OverlappingPairs returns the index pairs (i < j) of intersecting rectangles.
func OverlappingPairs(g Grid, rects []Rect) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if Overlaps(g, rects[i], rects[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
