package navigation

import (
	"fmt"
	"math"

	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/obstacle"
	"github.com/luis-herasme/pathfinding/parameter"
)

// Cell is a read-only snapshot of a quadtree node
type Cell struct {
	ID       CellID
	Rect     core.Rect
	Depth    int
	Occupied bool
	Divided  bool
}

// IsLeaf reports an undivided cell
func (c Cell) IsLeaf() bool { return !c.Divided }

// IsFree reports an undivided, unoccupied cell, the only kind usable as a path node
func (c Cell) IsFree() bool { return !c.Divided && !c.Occupied }

// Center returns the rect midpoint
func (c Cell) Center() core.Point { return c.Rect.Center() }

// cell is the arena record; children are arena indices ordered SW, SE, NW, NE
type cell struct {
	id       CellID
	rect     core.Rect
	ix, iy   uint32
	depth    uint8
	occupied bool
	divided  bool
	children [4]int32
}

func (c *cell) snapshot() Cell {
	return Cell{ID: c.id, Rect: c.rect, Depth: int(c.depth), Occupied: c.occupied, Divided: c.divided}
}

// Decomposition is an adaptive quadtree classifying a rectangular domain into free and
// occupied leaves
// Cells live in an arena; the id table maps every cell ever created to its slot
// Built per query and discarded afterwards, not safe for concurrent mutation
type Decomposition struct {
	bounds   core.Rect
	maxDepth int
	cells    []cell
	index    map[CellID]int32
}

// NewDecomposition creates a tree holding only the free root cell
func NewDecomposition(bounds core.Rect, maxDepth int) (*Decomposition, error) {
	if bounds.IsDegenerate() {
		return nil, fmt.Errorf("%w: degenerate bounds %v", ErrInvalidConfig, bounds)
	}
	if maxDepth < 1 || maxDepth > parameter.NavMaxAllowedDepth {
		return nil, fmt.Errorf("%w: max depth %d outside [1,%d]", ErrInvalidConfig, maxDepth, parameter.NavMaxAllowedDepth)
	}

	d := &Decomposition{
		bounds:   bounds,
		maxDepth: maxDepth,
		cells:    make([]cell, 0, 64),
		index:    make(map[CellID]int32, 64),
	}
	d.addCell(RootID, 0, 0, 0)
	return d, nil
}

// Bounds returns the root rect
func (d *Decomposition) Bounds() core.Rect { return d.bounds }

// MaxDepth returns the subdivision limit
func (d *Decomposition) MaxDepth() int { return d.maxDepth }

// Len returns the number of cells created so far, leaves and interior nodes
func (d *Decomposition) Len() int { return len(d.cells) }

// Root returns the root cell
func (d *Decomposition) Root() Cell { return d.cells[0].snapshot() }

// MinCellSize returns the extent of a cell at max depth
func (d *Decomposition) MinCellSize() (w, h float64) {
	return math.Ldexp(d.bounds.Width(), -d.maxDepth), math.Ldexp(d.bounds.Height(), -d.maxDepth)
}

// Cell resolves an id through the side table
func (d *Decomposition) Cell(id CellID) (Cell, bool) {
	idx, ok := d.index[id]
	if !ok {
		return Cell{}, false
	}
	return d.cells[idx].snapshot(), true
}

// Insert marks every cell the obstacle claims, subdividing where it is ambiguous
// Occupancy is a union: an occupied cell never becomes free again within a build
func (d *Decomposition) Insert(o obstacle.Obstacle) {
	d.insert(0, o)
}

func (d *Decomposition) insert(idx int32, o obstacle.Obstacle) {
	c := &d.cells[idx]
	if c.occupied {
		return
	}

	// Resolution floor: partial overlap counts as occupied
	if int(c.depth) >= d.maxDepth {
		if o.IntersectsRect(c.rect) {
			c.occupied = true
		}
		return
	}

	if !o.IntersectsRect(c.rect) {
		return
	}

	if !c.divided && o.CoversRect(c.rect) {
		c.occupied = true
		return
	}

	if !c.divided {
		d.subdivide(idx)
	}

	// Arena may have grown, re-read children by index
	children := d.cells[idx].children
	for _, child := range children {
		d.insert(child, o)
	}
}

// subdivide splits a leaf into four quadrants registered in the side table
func (d *Decomposition) subdivide(idx int32) {
	parent := d.cells[idx]
	depth := int(parent.depth) + 1

	var children [4]int32
	for q := 0; q < 4; q++ {
		ix := parent.ix<<1 | uint32(q&1)
		iy := parent.iy<<1 | uint32(q>>1)
		children[q] = d.addCell(parent.id.Child(q), depth, ix, iy)
	}

	p := &d.cells[idx]
	p.children = children
	p.divided = true
}

func (d *Decomposition) addCell(id CellID, depth int, ix, iy uint32) int32 {
	idx := int32(len(d.cells))
	d.cells = append(d.cells, cell{
		id:    id,
		rect:  d.gridRect(depth, ix, iy),
		ix:    ix,
		iy:    iy,
		depth: uint8(depth),
	})
	d.index[id] = idx
	return idx
}

// gridRect derives cell geometry from grid position
// Shared edges evaluate identically from either side: scaling by powers of two is exact
func (d *Decomposition) gridRect(depth int, ix, iy uint32) core.Rect {
	n := uint32(1) << uint(depth)
	w := math.Ldexp(d.bounds.Width(), -depth)
	h := math.Ldexp(d.bounds.Height(), -depth)

	edge := func(lo, hi, size float64, i uint32) float64 {
		switch i {
		case 0:
			return lo
		case n:
			return hi
		}
		return lo + float64(i)*size
	}

	return core.NewRect(
		edge(d.bounds.MinX(), d.bounds.MaxX(), w, ix),
		edge(d.bounds.MinY(), d.bounds.MaxY(), h, iy),
		edge(d.bounds.MinX(), d.bounds.MaxX(), w, ix+1),
		edge(d.bounds.MinY(), d.bounds.MaxY(), h, iy+1),
	)
}

// --- Queries ---

// Leaf returns the unique leaf containing p
// Interior edges resolve half-open: a point on a split line belongs to the east/north
// child; the outer domain boundary is closed
func (d *Decomposition) Leaf(p core.Point) (Cell, bool) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || !d.bounds.ContainsPoint(p) {
		return Cell{}, false
	}

	idx := int32(0)
	for d.cells[idx].divided {
		children := d.cells[idx].children
		q := 0
		// SE and NW children hold the split lines
		if p.X >= d.cells[children[1]].rect.MinX() {
			q |= 1
		}
		if p.Y >= d.cells[children[2]].rect.MinY() {
			q |= 2
		}
		idx = children[q]
	}
	return d.cells[idx].snapshot(), true
}

// Leaves returns every undivided cell, free and occupied, in depth-first order
func (d *Decomposition) Leaves() []Cell {
	out := make([]Cell, 0, len(d.cells))
	stack := []int32{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := &d.cells[idx]
		if !c.divided {
			out = append(out, c.snapshot())
			continue
		}
		// Reverse push keeps SW, SE, NW, NE pop order
		for q := 3; q >= 0; q-- {
			stack = append(stack, c.children[q])
		}
	}
	return out
}

// Region appends to dst every free leaf overlapping query with positive area
// Subtrees whose rect does not overlap query are pruned without descending
func (d *Decomposition) Region(query core.Rect, dst []Cell) []Cell {
	return d.region(0, query, dst)
}

func (d *Decomposition) region(idx int32, query core.Rect, dst []Cell) []Cell {
	c := &d.cells[idx]
	if !c.rect.Overlaps(query) {
		return dst
	}
	if !c.divided {
		if !c.occupied {
			dst = append(dst, c.snapshot())
		}
		return dst
	}
	for _, child := range c.children {
		dst = d.region(child, query, dst)
	}
	return dst
}

// Stats counts leaves by state
func (d *Decomposition) Stats() (leaves, free, occupied int) {
	for i := range d.cells {
		c := &d.cells[i]
		if c.divided {
			continue
		}
		leaves++
		if c.occupied {
			occupied++
		} else {
			free++
		}
	}
	return leaves, free, occupied
}
