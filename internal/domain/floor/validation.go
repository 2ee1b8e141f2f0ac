package floor

import (
	"fmt"
	"math"
	"strings"
)

// Normalize trims text fields and fills defaults for empty ones.
func (s *Settings) Normalize() {
	s.FloorID = strings.TrimSpace(s.FloorID)
	s.Title = strings.TrimSpace(s.Title)
	s.Logo = strings.TrimSpace(s.Logo)
	if s.Title == "" {
		s.Title = DefaultTitle
	}
	if s.Logo == "" {
		s.Logo = DefaultLogo
	}
	if s.Zoom == 0 {
		s.Zoom = 1
	}
}

// Validate checks settings after normalization.
func (s Settings) Validate() error {
	if s.FloorID == "" {
		return ErrMissingFloor
	}
	if s.Rotation < 0 || s.Rotation > 3 {
		return fmt.Errorf("%w: rotation %d not in 0..3", ErrInvalidSettings, s.Rotation)
	}
	if s.Zoom <= 0 || math.IsNaN(s.Zoom) || math.IsInf(s.Zoom, 0) {
		return fmt.Errorf("%w: zoom must be positive", ErrInvalidSettings)
	}
	c := s.Crop
	if c.X < 0 || c.Y < 0 || c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: crop values must not be negative", ErrInvalidSettings)
	}
	return nil
}
