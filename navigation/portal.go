package navigation

import (
	"fmt"
	"math"

	"github.com/luis-herasme/pathfinding/core"
)

// Portal is the shared edge segment between consecutive path cells, oriented for a
// walker moving from the first cell into the second: Left is on the walker's
// counter-clockwise side
type Portal struct {
	Left, Right core.Point
}

// Width returns the portal length
func (p Portal) Width() float64 {
	return math.Hypot(p.Right.X-p.Left.X, p.Right.Y-p.Left.Y)
}

// SharedEdge returns the oriented portal crossed walking from a into b
// Fails with ErrTopology when the cells do not share an edge longer than eps
func SharedEdge(a, b Cell, eps float64) (Portal, error) {
	ra, rb := a.Rect, b.Rect

	// Vertical contact: overlap along y
	ylo, yhi := math.Max(ra.MinY(), rb.MinY()), math.Min(ra.MaxY(), rb.MaxY())
	if yhi-ylo > eps {
		if x := ra.MaxX(); math.Abs(x-rb.MinX()) <= eps {
			// East
			return Portal{Left: core.Pt(x, yhi), Right: core.Pt(x, ylo)}, nil
		}
		if x := ra.MinX(); math.Abs(x-rb.MaxX()) <= eps {
			// West
			return Portal{Left: core.Pt(x, ylo), Right: core.Pt(x, yhi)}, nil
		}
	}

	// Horizontal contact: overlap along x
	xlo, xhi := math.Max(ra.MinX(), rb.MinX()), math.Min(ra.MaxX(), rb.MaxX())
	if xhi-xlo > eps {
		if y := ra.MaxY(); math.Abs(y-rb.MinY()) <= eps {
			// North
			return Portal{Left: core.Pt(xlo, y), Right: core.Pt(xhi, y)}, nil
		}
		if y := ra.MinY(); math.Abs(y-rb.MaxY()) <= eps {
			// South
			return Portal{Left: core.Pt(xhi, y), Right: core.Pt(xlo, y)}, nil
		}
	}

	return Portal{}, fmt.Errorf("%v -> %v: %w", a.ID, b.ID, ErrTopology)
}

// Portals returns the n-1 portals along a cell sequence
func Portals(cells []Cell, eps float64) ([]Portal, error) {
	if len(cells) < 2 {
		return nil, nil
	}
	out := make([]Portal, 0, len(cells)-1)
	for i := 1; i < len(cells); i++ {
		p, err := SharedEdge(cells[i-1], cells[i], eps)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
