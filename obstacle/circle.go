package obstacle

import (
	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/vmath"
)

// Circle is a disc obstacle
type Circle struct {
	Center core.Point
	Radius float64
}

// NewCircle creates a circle obstacle
func NewCircle(x, y, radius float64) Circle {
	return Circle{Center: core.Pt(x, y), Radius: radius}
}

// IntersectsRect compares the closest point of r against the radius
// Strict comparison: a disc tangent to a cell does not claim it
func (c Circle) IntersectsRect(r core.Rect) bool {
	closest := r.ClampPoint(c.Center)
	return vmath.DistanceSq(c.Center, closest) < c.Radius*c.Radius
}

// CoversRect requires all four corners inside the disc
// The disc is convex, so covered corners imply a covered rect
func (c Circle) CoversRect(r core.Rect) bool {
	r2 := c.Radius * c.Radius
	for _, v := range r.Vertices() {
		if vmath.DistanceSq(c.Center, v) > r2 {
			return false
		}
	}
	return true
}

// Bounds returns the square enclosing the disc
func (c Circle) Bounds() core.Rect {
	return core.RectFromCenter(c.Center, c.Radius, c.Radius)
}

// Moved returns the circle translated by (dx, dy)
func (c Circle) Moved(dx, dy float64) Circle {
	return Circle{Center: c.Center.Add(core.Pt(dx, dy)), Radius: c.Radius}
}
