package main

import (
	"math/rand"
	"testing"

	"github.com/luis-herasme/pathfinding/config"
	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/navigation"
	"github.com/luis-herasme/pathfinding/parameter"
	"github.com/luis-herasme/pathfinding/status"
)

// newHeadlessSandbox builds a sandbox without a screen for view and input tests
func newHeadlessSandbox(t *testing.T) *Sandbox {
	t.Helper()
	env := &config.Config{MaxDepth: 5, Heuristic: "euclidean", MazeSize: 7, Braiding: 0, Seed: 11}
	sb := &Sandbox{
		width:     40,
		height:    21,
		depth:     env.MaxDepth,
		heuristic: env.HeuristicKind(),
		registry:  status.NewRegistry(),
		rng:       rand.New(rand.NewSource(1)),
	}
	sb.scene = sb.mazeScene(env)
	if err := sb.scene.Validate(); err != nil {
		t.Fatalf("maze scene invalid: %v", err)
	}
	sb.start, sb.end = sb.scene.Endpoints()
	sb.query()
	return sb
}

// TestViewRoundTrip verifies screen cells map to world points inside the domain and back
func TestViewRoundTrip(t *testing.T) {
	sb := newHeadlessSandbox(t)
	b := sb.bounds()

	for row := 0; row < sb.viewRows(); row++ {
		for col := 0; col < sb.width; col++ {
			p := sb.toWorld(col, row)
			if !b.ContainsPoint(p) {
				t.Fatalf("Cell (%d,%d) maps outside bounds: %v", col, row, p)
			}
			if x, y := sb.toScreen(p); x != col || y != row {
				t.Fatalf("Expected (%d,%d), got (%d,%d)", col, row, x, y)
			}
		}
	}
}

// TestToScreenClamps verifies the outer boundary lands on the last cell
func TestToScreenClamps(t *testing.T) {
	sb := newHeadlessSandbox(t)
	b := sb.bounds()

	x, y := sb.toScreen(core.Pt(b.MaxX(), b.MinY()))
	if x != sb.width-1 || y != sb.viewRows()-1 {
		t.Errorf("Expected bottom-right cell, got (%d,%d)", x, y)
	}
	x, y = sb.toScreen(core.Pt(b.MinX(), b.MaxY()))
	if x != 0 || y != 0 {
		t.Errorf("Expected top-left cell, got (%d,%d)", x, y)
	}
}

// TestMazeSceneRoutes verifies the default scene yields a route between the maze rooms
func TestMazeSceneRoutes(t *testing.T) {
	sb := newHeadlessSandbox(t)
	if sb.err != nil {
		t.Fatalf("Expected route, got %v", sb.err)
	}
	if !sb.hadPath || len(sb.result.Smoothed) < 2 {
		t.Errorf("Expected smoothed route, got %+v", sb.result)
	}
	if got := sb.registry.Ints.Get("nav.queries").Load(); got != 1 {
		t.Errorf("Expected 1 query recorded, got %d", got)
	}
}

// TestHandleRune verifies depth clamping and heuristic toggling
func TestHandleRune(t *testing.T) {
	sb := newHeadlessSandbox(t)

	for i := 0; i < parameter.NavMaxAllowedDepth+2; i++ {
		sb.handleRune('-')
	}
	if sb.depth != 1 {
		t.Errorf("Expected depth 1, got %d", sb.depth)
	}
	sb.handleRune('+')
	if sb.depth != 2 {
		t.Errorf("Expected depth 2, got %d", sb.depth)
	}

	sb.handleRune('h')
	if sb.heuristic != navigation.HeuristicSquared {
		t.Errorf("Expected squared heuristic, got %v", sb.heuristic)
	}
	sb.handleRune('h')
	if sb.heuristic != navigation.HeuristicEuclidean {
		t.Errorf("Expected euclidean heuristic, got %v", sb.heuristic)
	}

	queries := sb.registry.Ints.Get("nav.queries").Load()
	sb.handleRune('p')
	if !sb.showPortals {
		t.Error("Expected portals shown")
	}
	if got := sb.registry.Ints.Get("nav.queries").Load(); got != queries {
		t.Errorf("Portal toggle should not query, got %d queries after %d", got, queries)
	}
}

// TestPlaceEndpoints verifies s and e take the cursor's world position
func TestPlaceEndpoints(t *testing.T) {
	sb := newHeadlessSandbox(t)
	sb.cursorX, sb.cursorY = 3, 4

	sb.handleRune('s')
	if sb.start != sb.toWorld(3, 4) {
		t.Errorf("Expected start %v, got %v", sb.toWorld(3, 4), sb.start)
	}
	sb.cursorX = 10
	sb.handleRune('e')
	if sb.end != sb.toWorld(10, 4) {
		t.Errorf("Expected end %v, got %v", sb.toWorld(10, 4), sb.end)
	}
}
