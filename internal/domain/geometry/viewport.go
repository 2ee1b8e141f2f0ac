package geometry

// Viewport is the on-screen pixel box the canvas is drawn into.
type Viewport struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToCanvas converts client pixel coordinates into canvas percent.
// A degenerate viewport maps everything to the origin.
func (v Viewport) ToCanvas(clientX, clientY float64) Point {
	if v.Width <= 0 || v.Height <= 0 {
		return Point{}
	}
	return Point{
		X: (clientX - v.Left) / v.Width * CanvasMax,
		Y: (clientY - v.Top) / v.Height * CanvasMax,
	}
}
