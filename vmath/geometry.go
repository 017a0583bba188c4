package vmath

import (
	"math"

	"github.com/luis-herasme/pathfinding/core"
)

// TriArea2 returns twice the signed area of triangle (a, b, c)
// Positive when c lies counter-clockwise (left) of the ray a->b in a y-up frame
func TriArea2(a, b, c core.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// ApproxEqual compares points per axis within eps
func ApproxEqual(a, b core.Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// Distance returns the Euclidean distance between a and b
func Distance(a, b core.Point) float64 {
	return b.Sub(a).Norm()
}

// DistanceSq returns the squared Euclidean distance, no sqrt
func DistanceSq(a, b core.Point) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// Lerp interpolates from a to b, t in [0,1]
func Lerp(a, b core.Point, t float64) core.Point {
	return a.Add(b.Sub(a).Mul(t))
}

// PolylineLength sums segment lengths, zero for fewer than two points
func PolylineLength(pts []core.Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += Distance(pts[i-1], pts[i])
	}
	return total
}

// RelativeEpsilon scales the base tolerance to the magnitude of a domain
// Keeps comparisons meaningful for both unit-sized and kilometre-sized worlds
func RelativeEpsilon(base float64, r core.Rect) float64 {
	extent := math.Max(r.Width(), r.Height())
	extent = math.Max(extent, math.Abs(r.MinX()))
	extent = math.Max(extent, math.Abs(r.MinY()))
	if extent < 1 {
		extent = 1
	}
	return base * extent
}
