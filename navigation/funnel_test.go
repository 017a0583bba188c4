package navigation

import (
	"testing"

	"github.com/luis-herasme/pathfinding/core"
)

func mustPortals(t *testing.T, cells ...Cell) []Portal {
	t.Helper()
	p, err := Portals(cells, 1e-9)
	if err != nil {
		t.Fatalf("Portals failed: %v", err)
	}
	return p
}

func expectPoints(t *testing.T, got, want []core.Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

// TestStringPullNoPortals verifies a single-cell route has no corners
func TestStringPullNoPortals(t *testing.T) {
	got := StringPull(core.Pt(1, 1), core.Pt(5, 3), nil, 1e-9)
	expectPoints(t, got, nil)
}

// TestStringPullStraight verifies a straight corridor collapses to no corners
func TestStringPullStraight(t *testing.T) {
	portals := mustPortals(t,
		testCell(0, 0, 1, 1), testCell(1, 0, 2, 1), testCell(2, 0, 3, 1), testCell(3, 0, 4, 1))
	got := StringPull(core.Pt(0.5, 0.5), core.Pt(3.5, 0.5), portals, 1e-9)
	expectPoints(t, got, nil)
}

// TestStringPullLeftTurn verifies a counter-clockwise bend commits the inner corner
func TestStringPullLeftTurn(t *testing.T) {
	portals := mustPortals(t, testCell(0, 0, 1, 1), testCell(1, 0, 2, 1), testCell(1, 1, 2, 2))
	got := StringPull(core.Pt(0.5, 0.5), core.Pt(1.5, 1.8), portals, 1e-9)
	expectPoints(t, got, []core.Point{core.Pt(1, 1)})
}

// TestStringPullRightTurn verifies a clockwise bend commits the inner corner
func TestStringPullRightTurn(t *testing.T) {
	portals := mustPortals(t, testCell(0, 1, 1, 2), testCell(1, 1, 2, 2), testCell(1, 0, 2, 1))
	got := StringPull(core.Pt(0.5, 1.5), core.Pt(1.5, 0.2), portals, 1e-9)
	expectPoints(t, got, []core.Point{core.Pt(1, 1)})
}

// TestStringPullVisibleAcrossBend verifies a bend with line of sight needs no corner
func TestStringPullVisibleAcrossBend(t *testing.T) {
	portals := mustPortals(t, testCell(0, 0, 1, 1), testCell(1, 0, 2, 1), testCell(1, 1, 2, 2))
	got := StringPull(core.Pt(0.5, 0.2), core.Pt(1.8, 1.5), portals, 1e-9)
	expectPoints(t, got, nil)
}

// TestStringPullZigzag verifies an S-shaped corridor commits both corners in order
func TestStringPullZigzag(t *testing.T) {
	// Up the left column, across the top, down the right column
	portals := mustPortals(t,
		testCell(0, 0, 1, 1), testCell(0, 1, 1, 2), testCell(1, 1, 2, 2),
		testCell(2, 1, 3, 2), testCell(2, 0, 3, 1))
	got := StringPull(core.Pt(0.5, 0.5), core.Pt(2.5, 0.5), portals, 1e-9)
	expectPoints(t, got, []core.Point{core.Pt(1, 1), core.Pt(2, 1)})
}
