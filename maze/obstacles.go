package maze

import (
	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/obstacle"
)

// Layout places a grid in the plane: column x spans [Origin.X+x*Unit, Origin.X+(x+1)*Unit],
// row y likewise upward from Origin.Y
type Layout struct {
	Origin core.Point
	Unit   float64
}

// Fit returns the largest square-unit layout of r anchored at the lower-left of bounds
func Fit(r Result, bounds core.Rect) Layout {
	unit := bounds.Width() / float64(r.Cols())
	if h := bounds.Height() / float64(r.Rows()); h < unit {
		unit = h
	}
	return Layout{Origin: bounds.Lo(), Unit: unit}
}

// Rect returns the square occupied by grid point p
func (l Layout) Rect(p Point) core.Rect {
	return core.RectFromOrigin(l.Origin.X+float64(p.X)*l.Unit, l.Origin.Y+float64(p.Y)*l.Unit, l.Unit, l.Unit)
}

// Center returns the midpoint of grid point p
func (l Layout) Center(p Point) core.Point {
	return l.Rect(p).Center()
}

// Extent returns the rect covered by the whole grid
func (l Layout) Extent(r Result) core.Rect {
	return core.RectFromOrigin(l.Origin.X, l.Origin.Y, float64(r.Cols())*l.Unit, float64(r.Rows())*l.Unit)
}

// Obstacles converts walls into boxes, merging horizontal runs within a row
func (l Layout) Obstacles(r Result) []obstacle.Obstacle {
	var out []obstacle.Obstacle
	for y, row := range r.Grid {
		for x := 0; x < len(row); {
			if row[x] != Wall {
				x++
				continue
			}
			run := x
			for run < len(row) && row[run] == Wall {
				run++
			}
			lo := l.Rect(Point{x, y})
			hi := l.Rect(Point{run - 1, y})
			out = append(out, obstacle.Box{Rect: core.NewRect(lo.MinX(), lo.MinY(), hi.MaxX(), hi.MaxY())})
			x = run
		}
	}
	return out
}
