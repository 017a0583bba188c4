package navigation

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/obstacle"
	"github.com/luis-herasme/pathfinding/parameter"
	"github.com/luis-herasme/pathfinding/search"
	"github.com/luis-herasme/pathfinding/status"
	"github.com/luis-herasme/pathfinding/vmath"
)

// HeuristicKind selects the A* distance estimate
type HeuristicKind int

const (
	// HeuristicEuclidean is admissible, paths are shortest over cell centers
	HeuristicEuclidean HeuristicKind = iota
	// HeuristicSquared overestimates, expands fewer cells at the cost of optimality
	HeuristicSquared
)

func (k HeuristicKind) String() string {
	switch k {
	case HeuristicEuclidean:
		return "euclidean"
	case HeuristicSquared:
		return "squared"
	default:
		return fmt.Sprintf("heuristic(%d)", int(k))
	}
}

// ParseHeuristic accepts the names produced by String, case-insensitive
func ParseHeuristic(s string) (HeuristicKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "euclidean":
		return HeuristicEuclidean, nil
	case "squared", "squared_euclidean":
		return HeuristicSquared, nil
	}
	return 0, fmt.Errorf("%w: unknown heuristic %q", ErrInvalidConfig, s)
}

// Func returns the search heuristic for k
func (k HeuristicKind) Func() search.Heuristic[core.Point] {
	if k == HeuristicSquared {
		return search.SquaredEuclidean[core.Point]
	}
	return search.Euclidean[core.Point]
}

// Config describes the search domain
type Config struct {
	Bounds    core.Rect
	MaxDepth  int
	Heuristic HeuristicKind
}

// DefaultConfig returns a config over bounds with default depth and the admissible heuristic
func DefaultConfig(bounds core.Rect) Config {
	return Config{
		Bounds:    bounds,
		MaxDepth:  parameter.NavDefaultMaxDepth,
		Heuristic: HeuristicEuclidean,
	}
}

// Validate rejects configs no query could succeed with
func (c Config) Validate() error {
	if c.Bounds.IsDegenerate() {
		return fmt.Errorf("%w: degenerate bounds %v", ErrInvalidConfig, c.Bounds)
	}
	if c.MaxDepth < 1 || c.MaxDepth > parameter.NavMaxAllowedDepth {
		return fmt.Errorf("%w: max depth %d outside [1,%d]", ErrInvalidConfig, c.MaxDepth, parameter.NavMaxAllowedDepth)
	}
	if c.Heuristic != HeuristicEuclidean && c.Heuristic != HeuristicSquared {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Heuristic)
	}
	return nil
}

// Result carries every artifact of a query
// On a no-route failure only Leaves is set
type Result struct {
	Leaves    []Cell       // All leaves of the query's tree
	Path      []core.Point // Path cell centers
	Smoothed  []core.Point // Start, funnel corners, end
	Portals   []Portal     // One per consecutive path cell pair
	PathCells []Cell

	Cost     float64 // Center path cost as seen by the search
	Expanded int
	Duration time.Duration
}

// Option configures a Pathfinder
type Option func(*Pathfinder)

// WithRegistry publishes query metrics into reg
func WithRegistry(reg *status.Registry) Option {
	return func(p *Pathfinder) { p.registry = reg }
}

// WithMaxExpansions caps search expansions per query, 0 means unlimited
func WithMaxExpansions(n int) Option {
	return func(p *Pathfinder) { p.maxExpansions = n }
}

// Pathfinder answers point-to-point queries against an obstacle list
// Every query builds its own tree, so concurrent FindPath calls are safe
type Pathfinder struct {
	cfg           Config
	eps           float64
	maxExpansions int

	mu        sync.RWMutex
	obstacles []obstacle.Obstacle

	registry *status.Registry
	stats    *pathStats
}

// pathStats caches registry pointers; fail counters are resolved per reason
type pathStats struct {
	queries   *atomic.Int64
	found     *atomic.Int64
	leaves    *atomic.Int64
	expanded  *atomic.Int64
	buildNs   *atomic.Int64
	queryMs   *status.AtomicFloat
	peakMs    *status.AtomicFloat
	lastError *status.AtomicString
}

// NewPathfinder validates cfg and takes the obstacle list, which the caller must not
// mutate while queries run
func NewPathfinder(cfg Config, obstacles []obstacle.Obstacle, opts ...Option) (*Pathfinder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pathfinder{
		cfg:           cfg,
		eps:           vmath.RelativeEpsilon(parameter.NavEpsilon, cfg.Bounds),
		maxExpansions: parameter.NavMaxExpansions,
		obstacles:     obstacles,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.registry != nil {
		p.stats = &pathStats{
			queries:   p.registry.Ints.Get("nav.queries"),
			found:     p.registry.Ints.Get("nav.found"),
			leaves:    p.registry.Ints.Get("nav.leaves"),
			expanded:  p.registry.Ints.Get("nav.expanded"),
			buildNs:   p.registry.Ints.Get("nav.build.ns"),
			queryMs:   p.registry.Floats.Get("nav.query_ms"),
			peakMs:    p.registry.Floats.Get("nav.query_ms_max"),
			lastError: p.registry.Strings.Get("nav.last_error"),
		}
	}
	return p, nil
}

// Config returns the validated config
func (p *Pathfinder) Config() Config { return p.cfg }

// Epsilon returns the geometric tolerance derived from the domain extent
func (p *Pathfinder) Epsilon() float64 { return p.eps }

// SetObstacles replaces the obstacle list for subsequent queries
func (p *Pathfinder) SetObstacles(obstacles []obstacle.Obstacle) {
	p.mu.Lock()
	p.obstacles = obstacles
	p.mu.Unlock()
}

// Decompose builds a fresh tree with every obstacle inserted
func (p *Pathfinder) Decompose() (*Decomposition, error) {
	d, err := NewDecomposition(p.cfg.Bounds, p.cfg.MaxDepth)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	obstacles := p.obstacles
	p.mu.RUnlock()

	for _, o := range obstacles {
		if o == nil {
			continue
		}
		d.Insert(o)
	}
	return d, nil
}

// FindPath runs one query from start to end
// No-route failures return a Result holding Leaves along with an error matching
// ErrNoRoute; topology defects return a nil Result
func (p *Pathfinder) FindPath(start, end core.Point) (*Result, error) {
	began := time.Now()
	res, err := p.findPath(start, end)
	elapsed := time.Since(began)
	if res != nil {
		res.Duration = elapsed
	}
	p.record(res, err, elapsed)
	return res, err
}

func (p *Pathfinder) findPath(start, end core.Point) (*Result, error) {
	built := time.Now()
	d, err := p.Decompose()
	if err != nil {
		return nil, err
	}
	if p.stats != nil {
		p.stats.buildNs.Store(int64(time.Since(built)))
	}
	res := &Result{Leaves: d.Leaves()}

	startCell, ok := d.Leaf(start)
	if !ok {
		return res, ErrStartOutOfBounds
	}
	endCell, ok := d.Leaf(end)
	if !ok {
		return res, ErrEndOutOfBounds
	}
	if startCell.Occupied {
		return res, ErrStartBlocked
	}
	if endCell.Occupied {
		return res, ErrEndBlocked
	}

	var opts []search.Option[CellID]
	if p.maxExpansions > 0 {
		opts = append(opts, search.WithMaxExpansions[CellID](p.maxExpansions))
	}

	graph := NewQuadGraph(d)
	found, err := search.AStar(graph, startCell.ID, endCell.ID, p.cfg.Heuristic.Func(), opts...)
	res.Expanded = found.Expanded
	switch {
	case errors.Is(err, search.ErrBudgetExceeded):
		return res, fmt.Errorf("%w after %d expansions", ErrSearchBudget, found.Expanded)
	case errors.Is(err, search.ErrNoPath):
		return res, ErrNoPath
	case err != nil:
		return nil, fmt.Errorf("search %v -> %v: %w", startCell.ID, endCell.ID, err)
	}

	cells := make([]Cell, len(found.Path))
	centers := make([]core.Point, len(found.Path))
	for i, id := range found.Path {
		c, ok := d.Cell(id)
		if !ok {
			return nil, fmt.Errorf("path cell %v missing: %w", id, ErrTopology)
		}
		cells[i] = c
		centers[i] = c.Center()
	}

	portals, err := Portals(cells, p.eps)
	if err != nil {
		log.Printf("navigation: %v", err)
		return nil, err
	}

	corners := StringPull(start, end, portals, p.eps)
	smoothed := make([]core.Point, 0, len(corners)+2)
	smoothed = append(smoothed, start)
	smoothed = append(smoothed, corners...)
	smoothed = append(smoothed, end)

	res.Path = centers
	res.Smoothed = smoothed
	res.Portals = portals
	res.PathCells = cells
	res.Cost = found.Cost
	return res, nil
}

// record publishes one query outcome, no-op without a registry
func (p *Pathfinder) record(res *Result, err error, elapsed time.Duration) {
	if p.stats == nil {
		return
	}
	p.stats.queries.Add(1)
	ms := float64(elapsed.Microseconds()) / 1000
	p.stats.queryMs.Set(ms)
	p.stats.peakMs.Max(ms)
	if res != nil {
		p.stats.leaves.Store(int64(len(res.Leaves)))
		p.stats.expanded.Add(int64(res.Expanded))
	}
	if err != nil {
		p.registry.Ints.Get("nav.fail." + failureReason(err)).Add(1)
		p.stats.lastError.Store(failureReason(err))
		return
	}
	p.stats.found.Add(1)
}
