package core

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Rect is a closed axis-aligned box with MinX <= MaxX and MinY <= MaxY
// Value type, never mutated after construction
type Rect struct {
	b r2.Rect
}

// NewRect creates a rect from two opposite corners, swapped coordinates are normalized
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{b: r2.RectFromPoints(r2.Point{X: minX, Y: minY}, r2.Point{X: maxX, Y: maxY})}
}

// RectFromOrigin creates a rect from its lower-left corner and size
func RectFromOrigin(x, y, width, height float64) Rect {
	return NewRect(x, y, x+width, y+height)
}

// RectFromCenter creates a rect centered on c with the given half extents
func RectFromCenter(c Point, halfW, halfH float64) Rect {
	return NewRect(c.X-halfW, c.Y-halfH, c.X+halfW, c.Y+halfH)
}

func (r Rect) MinX() float64 { return r.b.X.Lo }
func (r Rect) MinY() float64 { return r.b.Y.Lo }
func (r Rect) MaxX() float64 { return r.b.X.Hi }
func (r Rect) MaxY() float64 { return r.b.Y.Hi }

// Width returns the horizontal extent
func (r Rect) Width() float64 { return r.b.X.Length() }

// Height returns the vertical extent
func (r Rect) Height() float64 { return r.b.Y.Length() }

// Center returns the midpoint of the rect
func (r Rect) Center() Point { return r.b.Center() }

// Lo returns the (MinX, MinY) corner
func (r Rect) Lo() Point { return r.b.Lo() }

// Hi returns the (MaxX, MaxY) corner
func (r Rect) Hi() Point { return r.b.Hi() }

// Vertices returns the four corners counter-clockwise from the lower-left
func (r Rect) Vertices() [4]Point { return r.b.Vertices() }

// Area returns width * height
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// IsDegenerate reports a rect with zero or undefined area
func (r Rect) IsDegenerate() bool {
	w, h := r.Width(), r.Height()
	return !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0)
}

// ContainsPoint reports whether p lies inside or on the boundary
func (r Rect) ContainsPoint(p Point) bool {
	return r.b.ContainsPoint(p)
}

// Contains reports whether o lies entirely inside r, boundaries included
func (r Rect) Contains(o Rect) bool {
	return r.b.Contains(o.b)
}

// Intersects reports whether r and o share any point, touching edges included
func (r Rect) Intersects(o Rect) bool {
	return r.b.Intersects(o.b)
}

// Overlaps reports whether r and o share a region of positive area
// Rects that only touch along an edge or corner do not overlap
func (r Rect) Overlaps(o Rect) bool {
	x := r.b.X.Intersection(o.b.X)
	y := r.b.Y.Intersection(o.b.Y)
	return x.Lo < x.Hi && y.Lo < y.Hi
}

// Intersection returns the common region, empty intervals collapse to zero size
func (r Rect) Intersection(o Rect) (Rect, bool) {
	x := r.b.X.Intersection(o.b.X)
	y := r.b.Y.Intersection(o.b.Y)
	if x.IsEmpty() || y.IsEmpty() {
		return Rect{}, false
	}
	return Rect{b: r2.Rect{X: x, Y: y}}, true
}

// Expanded grows the rect by margin on every side, negative margin shrinks it
func (r Rect) Expanded(margin float64) Rect {
	out := r.b.ExpandedByMargin(margin)
	if out.IsEmpty() {
		c := r.Center()
		return Rect{b: r2.Rect{X: r1.IntervalFromPoint(c.X), Y: r1.IntervalFromPoint(c.Y)}}
	}
	return Rect{b: out}
}

// Translated returns the rect moved by (dx, dy)
// Repositioning helper for moving bodies, the receiver is unchanged
func (r Rect) Translated(dx, dy float64) Rect {
	return NewRect(r.MinX()+dx, r.MinY()+dy, r.MaxX()+dx, r.MaxY()+dy)
}

// ClampPoint returns the point of r closest to p
func (r Rect) ClampPoint(p Point) Point {
	return r.b.ClampPoint(p)
}

// Quadrant returns one of the four equal sub-rects
// q: 0=SW, 1=SE, 2=NW, 3=NE in a y-up frame
func (r Rect) Quadrant(q int) Rect {
	c := r.Center()
	minX, minY, maxX, maxY := r.MinX(), r.MinY(), c.X, c.Y
	if q&1 != 0 {
		minX, maxX = c.X, r.MaxX()
	}
	if q&2 != 0 {
		minY, maxY = c.Y, r.MaxY()
	}
	return NewRect(minX, minY, maxX, maxY)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g]-[%g,%g]", r.MinX(), r.MinY(), r.MaxX(), r.MaxY())
}
