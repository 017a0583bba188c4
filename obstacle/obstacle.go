// Package obstacle defines the capability contract the decomposition consumes and the
// stock shapes that satisfy it
package obstacle

import (
	"github.com/luis-herasme/pathfinding/core"
)

// Obstacle is any shape the quadtree can classify cells against
// Implementations must be pure: same rect, same answer, for the duration of a query
type Obstacle interface {
	// IntersectsRect reports whether the shape overlaps r with positive area
	IntersectsRect(r core.Rect) bool
	// CoversRect reports whether the shape contains every point of r
	CoversRect(r core.Rect) bool
}

// Set is a union of obstacles
// Intersects if any member intersects; covers only if a single member covers,
// coverage by several members combined is resolved by subdivision instead
type Set []Obstacle

func (s Set) IntersectsRect(r core.Rect) bool {
	for _, o := range s {
		if o.IntersectsRect(r) {
			return true
		}
	}
	return false
}

func (s Set) CoversRect(r core.Rect) bool {
	for _, o := range s {
		if o.CoversRect(r) {
			return true
		}
	}
	return false
}

// Bounds returns the smallest rect enclosing every member that reports its own bounds
// Members without a Bounds method are skipped; ok is false when none report
func (s Set) Bounds() (core.Rect, bool) {
	var out core.Rect
	found := false
	for _, o := range s {
		b, ok := o.(interface{ Bounds() core.Rect })
		if !ok {
			continue
		}
		r := b.Bounds()
		if !found {
			out, found = r, true
			continue
		}
		out = core.NewRect(
			min(out.MinX(), r.MinX()), min(out.MinY(), r.MinY()),
			max(out.MaxX(), r.MaxX()), max(out.MaxY(), r.MaxY()),
		)
	}
	return out, found
}
