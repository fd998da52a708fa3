package geometry

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Point is a position on the town map.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox is an axis-aligned rectangle anchored at its top-left corner.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate rejects boxes without a positive extent.
func (b BoundingBox) Validate() error {
	el := errors.NewErrorList()

	if b.Width <= 0 {
		el.Add(fmt.Errorf("width must be positive"))
	}
	if b.Height <= 0 {
		el.Add(fmt.Errorf("height must be positive"))
	}

	return el.Err()
}

// Contains reports whether p lies inside the box. The near edges are
// inclusive and the far edges exclusive, so adjacent boxes never share a point.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.X && p.X < b.X+b.Width &&
		p.Y >= b.Y && p.Y < b.Y+b.Height
}

// Overlaps reports whether the two boxes share any interior area.
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	return b.X < o.X+o.Width && o.X < b.X+b.Width &&
		b.Y < o.Y+o.Height && o.Y < b.Y+b.Height
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", b.X, b.Y, b.Width, b.Height)
}
