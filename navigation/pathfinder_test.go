package navigation

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/obstacle"
	"github.com/luis-herasme/pathfinding/status"
	"github.com/luis-herasme/pathfinding/vmath"
)

func newTestPathfinder(t *testing.T, bounds core.Rect, depth int, obstacles []obstacle.Obstacle, opts ...Option) *Pathfinder {
	t.Helper()
	cfg := DefaultConfig(bounds)
	cfg.MaxDepth = depth
	pf, err := NewPathfinder(cfg, obstacles, opts...)
	if err != nil {
		t.Fatalf("NewPathfinder failed: %v", err)
	}
	return pf
}

// checkRoute asserts the structural properties every successful query must hold
func checkRoute(t *testing.T, res *Result, start, end core.Point, eps float64) {
	t.Helper()
	if res == nil {
		t.Fatal("Expected result, got nil")
	}
	if len(res.PathCells) == 0 || len(res.Path) != len(res.PathCells) {
		t.Fatalf("Expected matching path and cells, got %d/%d", len(res.Path), len(res.PathCells))
	}
	if len(res.Portals) != len(res.PathCells)-1 {
		t.Errorf("Expected %d portals, got %d", len(res.PathCells)-1, len(res.Portals))
	}

	n := len(res.Smoothed)
	if n < 2 || res.Smoothed[0] != start || res.Smoothed[n-1] != end {
		t.Fatalf("Expected smoothed path from %v to %v, got %v", start, end, res.Smoothed)
	}

	for i, c := range res.PathCells {
		if !c.IsFree() {
			t.Errorf("Path cell %v is not a free leaf", c.ID)
		}
		if i > 0 {
			if _, err := SharedEdge(res.PathCells[i-1], c, eps); err != nil {
				t.Errorf("Consecutive path cells not adjacent: %v", err)
			}
		}
	}

	raw := append([]core.Point{start}, res.Path...)
	raw = append(raw, end)
	if smooth, rough := vmath.PolylineLength(res.Smoothed), vmath.PolylineLength(raw); smooth > rough+1e-9 {
		t.Errorf("Expected smoothed length %v <= raw length %v", smooth, rough)
	}

	for i := 1; i < n; i++ {
		for k := 0; k <= 20; k++ {
			p := vmath.Lerp(res.Smoothed[i-1], res.Smoothed[i], float64(k)/20)
			inside := false
			for _, c := range res.PathCells {
				if c.Rect.Expanded(1e-7).ContainsPoint(p) {
					inside = true
					break
				}
			}
			if !inside {
				t.Errorf("Smoothed point %v outside path cells", p)
			}
		}
	}
}

// TestFindPathEmptyDomain verifies an open domain yields a straight route in one cell
func TestFindPathEmptyDomain(t *testing.T) {
	pf := newTestPathfinder(t, core.NewRect(0, 0, 1024, 1024), 4, nil)
	start, end := core.Pt(10, 10), core.Pt(1000, 1000)

	res, err := pf.FindPath(start, end)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	checkRoute(t, res, start, end, pf.Epsilon())

	if len(res.Leaves) != 1 {
		t.Errorf("Expected 1 leaf, got %d", len(res.Leaves))
	}
	if len(res.Smoothed) != 2 {
		t.Errorf("Expected straight route, got %v", res.Smoothed)
	}
	if res.Cost != 0 {
		t.Errorf("Expected zero cost, got %v", res.Cost)
	}
}

// TestFindPathRootCovered verifies a fully covered domain blocks the start
func TestFindPathRootCovered(t *testing.T) {
	pf := newTestPathfinder(t, core.NewRect(0, 0, 100, 100), 5,
		[]obstacle.Obstacle{obstacle.NewBox(-10, -10, 110, 110)})

	res, err := pf.FindPath(core.Pt(10, 10), core.Pt(90, 90))
	if !errors.Is(err, ErrStartBlocked) || !errors.Is(err, ErrNoRoute) {
		t.Fatalf("Expected ErrStartBlocked, got %v", err)
	}
	if res == nil || len(res.Leaves) != 1 || !res.Leaves[0].Occupied {
		t.Fatalf("Expected single occupied leaf, got %+v", res)
	}
	if res.Path != nil || res.Smoothed != nil || res.Portals != nil || res.PathCells != nil {
		t.Errorf("Expected no route artifacts, got %+v", res)
	}
}

// TestFindPathWall verifies a full-height wall disconnects the domain
func TestFindPathWall(t *testing.T) {
	pf := newTestPathfinder(t, core.NewRect(0, 0, 8, 8), 3,
		[]obstacle.Obstacle{obstacle.NewBox(3.5, 0, 4.5, 8)})

	res, err := pf.FindPath(core.Pt(1, 1), core.Pt(7, 7))
	if !errors.Is(err, ErrNoPath) || !errors.Is(err, ErrNoRoute) {
		t.Fatalf("Expected ErrNoPath, got %v", err)
	}
	if res == nil || len(res.Leaves) == 0 {
		t.Fatal("Expected leaves on failure")
	}
	if res.Path != nil || res.Smoothed != nil {
		t.Errorf("Expected no path, got %v", res.Smoothed)
	}
}

// TestFindPathWallGap verifies the route threads a gap above the wall
func TestFindPathWallGap(t *testing.T) {
	pf := newTestPathfinder(t, core.NewRect(0, 0, 8, 8), 3,
		[]obstacle.Obstacle{obstacle.NewBox(3.5, 0, 4.5, 6)})
	start, end := core.Pt(1, 1), core.Pt(7, 1)

	res, err := pf.FindPath(start, end)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	checkRoute(t, res, start, end, pf.Epsilon())

	top := 0.0
	for _, p := range res.Smoothed {
		top = math.Max(top, p.Y)
	}
	if top < 6 {
		t.Errorf("Expected route over the wall at y>=6, peak %v", top)
	}
	if len(res.Smoothed) < 4 {
		t.Errorf("Expected at least two corners, got %v", res.Smoothed)
	}
}

// TestFindPathCircle verifies the route bends around a round obstacle
func TestFindPathCircle(t *testing.T) {
	circle := obstacle.NewCircle(50, 50, 20)
	pf := newTestPathfinder(t, core.NewRect(0, 0, 100, 100), 6, []obstacle.Obstacle{circle})
	start, end := core.Pt(10, 50), core.Pt(90, 50)

	res, err := pf.FindPath(start, end)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	checkRoute(t, res, start, end, pf.Epsilon())

	for i := 1; i < len(res.Smoothed); i++ {
		for k := 0; k <= 20; k++ {
			p := vmath.Lerp(res.Smoothed[i-1], res.Smoothed[i], float64(k)/20)
			if d := vmath.Distance(p, circle.Center); d < circle.Radius-1e-6 {
				t.Errorf("Point %v inside circle (distance %v)", p, d)
			}
		}
	}
}

// TestFindPathEndpoints verifies out-of-domain and blocked endpoints are reported separately
func TestFindPathEndpoints(t *testing.T) {
	pf := newTestPathfinder(t, core.NewRect(0, 0, 100, 100), 5,
		[]obstacle.Obstacle{obstacle.NewBox(60, 60, 80, 80)})

	cases := []struct {
		name       string
		start, end core.Point
		want       error
	}{
		{"start outside", core.Pt(-1, 50), core.Pt(50, 50), ErrStartOutOfBounds},
		{"end outside", core.Pt(50, 50), core.Pt(50, 101), ErrEndOutOfBounds},
		{"end blocked", core.Pt(10, 10), core.Pt(70, 70), ErrEndBlocked},
		{"start blocked", core.Pt(70, 70), core.Pt(10, 10), ErrStartBlocked},
		{"start nan", core.Pt(math.NaN(), 1), core.Pt(10, 10), ErrStartOutOfBounds},
	}
	for _, c := range cases {
		res, err := pf.FindPath(c.start, c.end)
		if !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
		if res == nil || len(res.Leaves) == 0 {
			t.Errorf("%s: expected leaves on failure", c.name)
		}
	}
}

// TestFindPathBoundaryPoints verifies points on the domain edge and split lines resolve
func TestFindPathBoundaryPoints(t *testing.T) {
	pf := newTestPathfinder(t, core.NewRect(0, 0, 100, 100), 5,
		[]obstacle.Obstacle{obstacle.NewBox(40, 0, 45, 70)})

	start, end := core.Pt(0, 0), core.Pt(100, 50)
	res, err := pf.FindPath(start, end)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	checkRoute(t, res, start, end, pf.Epsilon())
}

// TestFindPathSameCell verifies endpoints sharing a leaf give a direct segment
func TestFindPathSameCell(t *testing.T) {
	pf := newTestPathfinder(t, core.NewRect(0, 0, 100, 100), 4,
		[]obstacle.Obstacle{obstacle.NewBox(90, 90, 100, 100)})

	start, end := core.Pt(5, 5), core.Pt(20, 30)
	res, err := pf.FindPath(start, end)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(res.PathCells) != 1 || len(res.Portals) != 0 {
		t.Errorf("Expected one cell and no portals, got %d/%d", len(res.PathCells), len(res.Portals))
	}
	expectPoints(t, res.Smoothed, []core.Point{start, end})
}

// TestFindPathIdempotent verifies repeated queries produce identical artifacts
func TestFindPathIdempotent(t *testing.T) {
	for _, kind := range []HeuristicKind{HeuristicEuclidean, HeuristicSquared} {
		cfg := DefaultConfig(core.NewRect(0, 0, 100, 100))
		cfg.Heuristic = kind
		pf, err := NewPathfinder(cfg, mixedObstacles())
		if err != nil {
			t.Fatalf("NewPathfinder failed: %v", err)
		}

		start, end := core.Pt(5, 5), core.Pt(95, 50)
		first, err := pf.FindPath(start, end)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", kind, err)
		}
		checkRoute(t, first, start, end, pf.Epsilon())
		second, _ := pf.FindPath(start, end)

		if len(first.Leaves) != len(second.Leaves) {
			t.Fatalf("%v: leaf count changed %d -> %d", kind, len(first.Leaves), len(second.Leaves))
		}
		for i := range first.Leaves {
			if first.Leaves[i] != second.Leaves[i] {
				t.Errorf("%v: leaf %d differs", kind, i)
			}
		}
		expectPoints(t, second.Smoothed, first.Smoothed)
		if first.Cost != second.Cost {
			t.Errorf("%v: cost changed %v -> %v", kind, first.Cost, second.Cost)
		}
	}
}

// TestFindPathEuclideanOptimal verifies the admissible heuristic never costs more than the squared one
func TestFindPathEuclideanOptimal(t *testing.T) {
	bounds := core.NewRect(0, 0, 100, 100)
	start, end := core.Pt(5, 5), core.Pt(95, 50)

	costs := make(map[HeuristicKind]float64)
	for _, kind := range []HeuristicKind{HeuristicEuclidean, HeuristicSquared} {
		cfg := DefaultConfig(bounds)
		cfg.Heuristic = kind
		pf, err := NewPathfinder(cfg, mixedObstacles())
		if err != nil {
			t.Fatalf("NewPathfinder failed: %v", err)
		}
		res, err := pf.FindPath(start, end)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", kind, err)
		}
		costs[kind] = res.Cost
	}
	if costs[HeuristicEuclidean] > costs[HeuristicSquared]+1e-9 {
		t.Errorf("Expected euclidean cost %v <= squared cost %v", costs[HeuristicEuclidean], costs[HeuristicSquared])
	}
}

// TestFindPathBudget verifies the expansion cap surfaces as a no-route error
func TestFindPathBudget(t *testing.T) {
	pf := newTestPathfinder(t, core.NewRect(0, 0, 8, 8), 3,
		[]obstacle.Obstacle{obstacle.NewBox(3.5, 0, 4.5, 6)}, WithMaxExpansions(1))

	res, err := pf.FindPath(core.Pt(1, 1), core.Pt(7, 1))
	if !errors.Is(err, ErrSearchBudget) || !errors.Is(err, ErrNoRoute) {
		t.Fatalf("Expected ErrSearchBudget, got %v", err)
	}
	if res == nil || res.Expanded != 1 {
		t.Errorf("Expected 1 expansion, got %+v", res)
	}
}

// TestSetObstacles verifies replacing obstacles affects the next query
func TestSetObstacles(t *testing.T) {
	pf := newTestPathfinder(t, core.NewRect(0, 0, 8, 8), 3, nil)
	start, end := core.Pt(1, 1), core.Pt(7, 7)

	if _, err := pf.FindPath(start, end); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	pf.SetObstacles([]obstacle.Obstacle{obstacle.NewBox(3.5, 0, 4.5, 8)})
	if _, err := pf.FindPath(start, end); !errors.Is(err, ErrNoPath) {
		t.Errorf("Expected ErrNoPath after adding wall, got %v", err)
	}

	wall := obstacle.NewBox(3.5, 0, 4.5, 8).Moved(0, 2)
	pf.SetObstacles([]obstacle.Obstacle{wall})
	res, err := pf.FindPath(start, core.Pt(7, 1))
	if err != nil {
		t.Fatalf("Expected route under moved wall, got %v", err)
	}
	checkRoute(t, res, start, core.Pt(7, 1), pf.Epsilon())
}

// TestFindPathConcurrent verifies parallel queries against a shared pathfinder
func TestFindPathConcurrent(t *testing.T) {
	reg := status.NewRegistry()
	cfg := DefaultConfig(core.NewRect(0, 0, 100, 100))
	pf, err := NewPathfinder(cfg, mixedObstacles(), WithRegistry(reg))
	if err != nil {
		t.Fatalf("NewPathfinder failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := pf.FindPath(core.Pt(5, 5), core.Pt(95, float64(40+i))); err != nil {
				t.Errorf("Query %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if got := reg.Ints.Get("nav.queries").Load(); got != 8 {
		t.Errorf("Expected 8 queries, got %d", got)
	}
}

// TestPathfinderMetrics verifies outcomes are published to the registry
func TestPathfinderMetrics(t *testing.T) {
	reg := status.NewRegistry()
	pf := newTestPathfinder(t, core.NewRect(0, 0, 100, 100), 5,
		[]obstacle.Obstacle{obstacle.NewBox(60, 60, 80, 80)}, WithRegistry(reg))

	pf.FindPath(core.Pt(10, 10), core.Pt(90, 90))
	pf.FindPath(core.Pt(70, 70), core.Pt(10, 10))

	if got := reg.Ints.Get("nav.queries").Load(); got != 2 {
		t.Errorf("Expected 2 queries, got %d", got)
	}
	if got := reg.Ints.Get("nav.found").Load(); got != 1 {
		t.Errorf("Expected 1 found, got %d", got)
	}
	if got := reg.Ints.Get("nav.fail.start_blocked").Load(); got != 1 {
		t.Errorf("Expected 1 start_blocked, got %d", got)
	}
	if got := reg.Strings.Get("nav.last_error").Load(); got != "start_blocked" {
		t.Errorf("Expected last error start_blocked, got %q", got)
	}
	if got := reg.Ints.Get("nav.leaves").Load(); got == 0 {
		t.Error("Expected leaf count")
	}
}

// TestConfigValidate verifies construction rejects unusable configs
func TestConfigValidate(t *testing.T) {
	good := DefaultConfig(core.NewRect(0, 0, 10, 10))
	if err := good.Validate(); err != nil {
		t.Errorf("Expected default config valid, got %v", err)
	}

	bad := []Config{
		{Bounds: core.NewRect(0, 0, 10, 0), MaxDepth: 4},
		{Bounds: core.NewRect(0, 0, 10, 10), MaxDepth: 0},
		{Bounds: core.NewRect(0, 0, 10, 10), MaxDepth: 30},
		{Bounds: core.NewRect(0, 0, 10, 10), MaxDepth: 4, Heuristic: HeuristicKind(7)},
	}
	for i, cfg := range bad {
		if _, err := NewPathfinder(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Config %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}

// TestParseHeuristic verifies names round-trip and unknown names fail
func TestParseHeuristic(t *testing.T) {
	for _, kind := range []HeuristicKind{HeuristicEuclidean, HeuristicSquared} {
		got, err := ParseHeuristic(kind.String())
		if err != nil || got != kind {
			t.Errorf("Expected %v, got %v (%v)", kind, got, err)
		}
	}
	if got, err := ParseHeuristic(" Squared "); err != nil || got != HeuristicSquared {
		t.Errorf("Expected squared, got %v (%v)", got, err)
	}
	if _, err := ParseHeuristic("manhattan"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

// TestFailureReason verifies metric keys for each error
func TestFailureReason(t *testing.T) {
	cases := map[error]string{
		ErrStartOutOfBounds: "start_oob",
		ErrEndOutOfBounds:   "end_oob",
		ErrStartBlocked:     "start_blocked",
		ErrEndBlocked:       "end_blocked",
		ErrNoPath:           "disconnected",
		ErrSearchBudget:     "budget",
		ErrTopology:         "topology",
		errors.New("boom"):  "internal",
	}
	for err, want := range cases {
		if got := failureReason(err); got != want {
			t.Errorf("Expected %q for %v, got %q", want, err, got)
		}
	}
}
