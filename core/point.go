package core

import "github.com/golang/geo/r2"

// Point is a location in the plane
// Alias of r2.Point so Add, Sub, Mul, Cross, Dot and Norm come with it
type Point = r2.Point

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}
