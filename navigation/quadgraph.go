package navigation

import (
	"math"

	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/parameter"
	"github.com/luis-herasme/pathfinding/search"
	"github.com/luis-herasme/pathfinding/vmath"
)

// QuadGraph adapts a Decomposition to search.Graph
// Nodes are free leaves positioned at their centers, edges join leaves sharing a
// positive-length edge, weighted by center distance
// Nodes are built on first request and memoised for the graph's lifetime
type QuadGraph struct {
	decomp *Decomposition
	strip  float64
	nodes  map[CellID]search.Node[CellID, core.Point]
	buf    []Cell
}

// NewQuadGraph wraps d; d must not be mutated while the graph is in use
func NewQuadGraph(d *Decomposition) *QuadGraph {
	w, h := d.MinCellSize()
	return &QuadGraph{
		decomp: d,
		strip:  math.Min(w, h) * parameter.NavStripFactor,
		nodes:  make(map[CellID]search.Node[CellID, core.Point]),
	}
}

// Node returns the free leaf id with its neighbours
// Unknown, divided and occupied cells are not nodes
func (g *QuadGraph) Node(id CellID) (search.Node[CellID, core.Point], bool) {
	if n, ok := g.nodes[id]; ok {
		return n, true
	}

	c, ok := g.decomp.Cell(id)
	if !ok || !c.IsFree() {
		return search.Node[CellID, core.Point]{}, false
	}

	center := c.Center()
	neighbors := g.neighbors(c)
	edges := make([]search.Edge[CellID], len(neighbors))
	for i, nb := range neighbors {
		edges[i] = search.Edge[CellID]{To: nb.ID, Weight: vmath.Distance(center, nb.Center())}
	}

	n := search.Node[CellID, core.Point]{Position: center, Edges: edges}
	g.nodes[id] = n
	return n, true
}

// Cached returns the number of memoised nodes
func (g *QuadGraph) Cached() int {
	return len(g.nodes)
}

// neighbors probes four thin strips hugging c's edges
// Strips are thinner than any leaf, so a leaf overlapping one with positive area shares
// a positive-length edge with c; corner-only contacts have zero overlap and drop out
func (g *QuadGraph) neighbors(c Cell) []Cell {
	r, t := c.Rect, g.strip
	strips := [4]core.Rect{
		core.NewRect(r.MinX()-t, r.MinY(), r.MinX(), r.MaxY()), // left
		core.NewRect(r.MaxX(), r.MinY(), r.MaxX()+t, r.MaxY()), // right
		core.NewRect(r.MinX(), r.MinY()-t, r.MaxX(), r.MinY()), // bottom
		core.NewRect(r.MinX(), r.MaxY(), r.MaxX(), r.MaxY()+t), // top
	}

	var out []Cell
	seen := map[CellID]struct{}{c.ID: {}}
	for _, s := range strips {
		g.buf = g.decomp.Region(s, g.buf[:0])
		for _, nb := range g.buf {
			if _, dup := seen[nb.ID]; dup {
				continue
			}
			seen[nb.ID] = struct{}{}
			out = append(out, nb)
		}
	}
	return out
}
