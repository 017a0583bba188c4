package navigation

import (
	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/vmath"
)

// StringPull runs the simple stupid funnel over a portal corridor
// Returns the interior turning points only; start and end are not included
// Every returned point is a portal endpoint, so the path hugs cell corners
func StringPull(start, end core.Point, portals []Portal, eps float64) []core.Point {
	corridor := make([]Portal, 0, len(portals)+2)
	corridor = append(corridor, Portal{Left: start, Right: start})
	corridor = append(corridor, portals...)
	corridor = append(corridor, Portal{Left: end, Right: end})

	apex, left, right := start, start, start
	apexIndex, leftIndex, rightIndex := 0, 0, 0

	var out []core.Point
	last := start

	for i := 1; i < len(corridor); i++ {
		l, r := corridor[i].Left, corridor[i].Right

		// Right side: r must not swing outward past the current right
		if vmath.TriArea2(apex, right, r) >= 0 {
			if vmath.ApproxEqual(apex, right, eps) || vmath.TriArea2(apex, left, r) < 0 {
				right, rightIndex = r, i
			} else {
				// r crossed the left side, left becomes a corner
				apex, apexIndex = left, leftIndex
				if !vmath.ApproxEqual(apex, last, eps) {
					out = append(out, apex)
					last = apex
				}
				left, right = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}

		// Left side, mirrored
		if vmath.TriArea2(apex, left, l) <= 0 {
			if vmath.ApproxEqual(apex, left, eps) || vmath.TriArea2(apex, right, l) > 0 {
				left, leftIndex = l, i
			} else {
				apex, apexIndex = right, rightIndex
				if !vmath.ApproxEqual(apex, last, eps) {
					out = append(out, apex)
					last = apex
				}
				left, right = apex, apex
				leftIndex, rightIndex = apexIndex, apexIndex
				i = apexIndex
				continue
			}
		}
	}

	// A corner coinciding with end is dropped, the caller appends end itself
	if n := len(out); n > 0 && vmath.ApproxEqual(out[n-1], end, eps) {
		out = out[:n-1]
	}
	return out
}
