package search

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNodeNotFound is returned when start or end is not part of the graph
	ErrNodeNotFound = errors.New("node not found in graph")
	// ErrExcluded is returned when start or end is in the exclusion set
	ErrExcluded = errors.New("node is excluded")
	// ErrNoPath is returned when the open set empties before reaching end
	ErrNoPath = errors.New("no path found")
	// ErrBudgetExceeded is returned when the expansion cap is hit
	ErrBudgetExceeded = errors.New("expansion budget exceeded")
)

// Edge is a weighted connection to another node
type Edge[ID comparable] struct {
	To     ID
	Weight float64
}

// Node is a graph vertex: its position for the heuristic and its outgoing edges
type Node[ID comparable, P any] struct {
	Position P
	Edges    []Edge[ID]
}

// Graph resolves node ids lazily
// Node must return identical results for repeated calls within a search
type Graph[ID comparable, P any] interface {
	Node(id ID) (Node[ID, P], bool)
}

// Heuristic estimates the remaining cost between two positions
type Heuristic[P any] func(from, to P) float64

// Result is the outcome of a successful search
type Result[ID comparable] struct {
	Path     []ID    // Start to end inclusive
	Cost     float64 // Sum of edge weights along Path
	Expanded int     // Nodes popped and expanded
}

// Options tunes a search
type Options[ID comparable] struct {
	Excluded      map[ID]struct{}
	MaxExpansions int
}

// Option modifies Options
type Option[ID comparable] func(*Options[ID])

// WithExcluded marks nodes that may never be entered
func WithExcluded[ID comparable](ids ...ID) Option[ID] {
	return func(o *Options[ID]) {
		if o.Excluded == nil {
			o.Excluded = make(map[ID]struct{}, len(ids))
		}
		for _, id := range ids {
			o.Excluded[id] = struct{}{}
		}
	}
}

// WithMaxExpansions aborts the search after n expansions, 0 means unlimited
func WithMaxExpansions[ID comparable](n int) Option[ID] {
	return func(o *Options[ID]) { o.MaxExpansions = n }
}

// AStar finds the cheapest path from start to end
// The heuristic must be deterministic; with an inadmissible heuristic the path is
// valid but may not be the cheapest
func AStar[ID comparable, P any](
	graph Graph[ID, P],
	start, end ID,
	heuristic Heuristic[P],
	options ...Option[ID],
) (Result[ID], error) {
	var opts Options[ID]
	for _, option := range options {
		option(&opts)
	}

	startNode, ok := graph.Node(start)
	if !ok {
		return Result[ID]{}, fmt.Errorf("start %v: %w", start, ErrNodeNotFound)
	}
	endNode, ok := graph.Node(end)
	if !ok {
		return Result[ID]{}, fmt.Errorf("end %v: %w", end, ErrNodeNotFound)
	}
	if _, bad := opts.Excluded[start]; bad {
		return Result[ID]{}, fmt.Errorf("start %v: %w", start, ErrExcluded)
	}
	if _, bad := opts.Excluded[end]; bad {
		return Result[ID]{}, fmt.Errorf("end %v: %w", end, ErrExcluded)
	}

	if start == end {
		return Result[ID]{Path: []ID{start}}, nil
	}

	goal := endNode.Position
	hCache := make(map[ID]float64)
	gScore := map[ID]float64{start: 0}
	fScore := make(map[ID]float64)
	previous := make(map[ID]ID)

	h0 := heuristic(startNode.Position, goal)
	hCache[start] = h0
	fScore[start] = h0

	open := NewHeap[ID](64)
	open.Push(start, h0)

	expanded := 0
	found := false
	for open.Len() > 0 {
		item, _ := open.Pop()
		current := item.Value

		// Stale entry, a cheaper one was pushed after it
		if item.Priority > fScore[current] {
			continue
		}
		if current == end {
			found = true
			break
		}

		if opts.MaxExpansions > 0 && expanded >= opts.MaxExpansions {
			return Result[ID]{Expanded: expanded}, ErrBudgetExceeded
		}
		expanded++

		node, ok := graph.Node(current)
		if !ok {
			return Result[ID]{Expanded: expanded}, fmt.Errorf("expanding %v: %w", current, ErrNodeNotFound)
		}

		currentG := gScore[current]
		for _, edge := range node.Edges {
			if _, bad := opts.Excluded[edge.To]; bad {
				continue
			}

			tentative := currentG + edge.Weight
			if old, seen := gScore[edge.To]; seen && tentative >= old {
				continue
			}

			h, cached := hCache[edge.To]
			if !cached {
				neighbor, ok := graph.Node(edge.To)
				if !ok {
					return Result[ID]{Expanded: expanded}, fmt.Errorf("neighbor %v: %w", edge.To, ErrNodeNotFound)
				}
				h = heuristic(neighbor.Position, goal)
				hCache[edge.To] = h
			}

			previous[edge.To] = current
			gScore[edge.To] = tentative
			f := tentative + h
			fScore[edge.To] = f
			open.Push(edge.To, f)
		}
	}

	if !found {
		return Result[ID]{Expanded: expanded}, ErrNoPath
	}

	path, ok := reconstructPath(previous, start, end)
	if !ok {
		return Result[ID]{Expanded: expanded}, ErrNoPath
	}
	return Result[ID]{Path: path, Cost: gScore[end], Expanded: expanded}, nil
}

// reconstructPath walks predecessors back from end and reverses
// ok is false if the chain does not terminate at start
func reconstructPath[ID comparable](previous map[ID]ID, start, end ID) ([]ID, bool) {
	path := []ID{end}
	current := end
	for current != start {
		prev, exists := previous[current]
		if !exists || len(path) > len(previous)+1 {
			return nil, false
		}
		path = append(path, prev)
		current = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// --- Heuristics ---

// Point2 is the position shape the stock heuristics accept
type Point2 interface {
	~struct{ X, Y float64 }
}

// Euclidean is the straight-line distance; admissible for Euclidean edge weights
func Euclidean[P Point2](from, to P) float64 {
	a, b := struct{ X, Y float64 }(from), struct{ X, Y float64 }(to)
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// SquaredEuclidean is the squared distance; not admissible for Euclidean edge weights,
// trades path optimality for fewer expansions
func SquaredEuclidean[P Point2](from, to P) float64 {
	a, b := struct{ X, Y float64 }(from), struct{ X, Y float64 }(to)
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx*dx + dy*dy
}
