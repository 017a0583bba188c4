package obstacle

import "github.com/luis-herasme/pathfinding/core"

// Box is an axis-aligned rectangular obstacle
type Box struct {
	Rect core.Rect
}

// NewBox creates a box obstacle from corner coordinates
func NewBox(minX, minY, maxX, maxY float64) Box {
	return Box{Rect: core.NewRect(minX, minY, maxX, maxY)}
}

// IntersectsRect is true on positive-area overlap, edge contact does not count
func (b Box) IntersectsRect(r core.Rect) bool {
	return b.Rect.Overlaps(r)
}

// CoversRect is true when r lies inside the box, shared edges allowed
func (b Box) CoversRect(r core.Rect) bool {
	return b.Rect.Contains(r)
}

// Bounds returns the box extent
func (b Box) Bounds() core.Rect {
	return b.Rect
}

// Moved returns the box translated by (dx, dy)
func (b Box) Moved(dx, dy float64) Box {
	return Box{Rect: b.Rect.Translated(dx, dy)}
}
