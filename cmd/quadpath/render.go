package main

import (
	"math"
	"strings"

	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/navigation"
	"github.com/luis-herasme/pathfinding/vmath"
)

// Map glyphs
const (
	glyphFree     = '.'
	glyphOccupied = '#'
	glyphCorridor = ':'
	glyphRoute    = '*'
	glyphStart    = 'S'
	glyphEnd      = 'E'
)

// asciiMap rasterizes a query result, top row is the maximum y
// Terminal cells are twice as tall as wide, so rows are half the columns scaled by aspect
func asciiMap(res *navigation.Result, bounds core.Rect, start, end core.Point, cols int) []string {
	if cols < 2 {
		return nil
	}
	rows := int(math.Round(float64(cols) * bounds.Height() / bounds.Width() / 2))
	if rows < 1 {
		rows = 1
	}

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(string(glyphFree), cols))
	}

	sx := float64(cols) / bounds.Width()
	sy := float64(rows) / bounds.Height()
	toCell := func(p core.Point) (int, int, bool) {
		c := int((p.X - bounds.MinX()) * sx)
		r := rows - 1 - int((p.Y-bounds.MinY())*sy)
		c = min(max(c, 0), cols-1)
		r = min(max(r, 0), rows-1)
		return c, r, bounds.ContainsPoint(p)
	}

	// A char is occupied if its center lies in an occupied leaf
	fill := func(cells []navigation.Cell, glyph rune, onlyOccupied bool) {
		for _, leaf := range cells {
			if onlyOccupied && !leaf.Occupied {
				continue
			}
			c0 := int(math.Ceil((leaf.Rect.MinX()-bounds.MinX())*sx - 0.5))
			c1 := int(math.Ceil((leaf.Rect.MaxX()-bounds.MinX())*sx - 0.5))
			r0 := int(math.Ceil((leaf.Rect.MinY()-bounds.MinY())*sy - 0.5))
			r1 := int(math.Ceil((leaf.Rect.MaxY()-bounds.MinY())*sy - 0.5))
			for y := max(r0, 0); y < min(r1, rows); y++ {
				for x := max(c0, 0); x < min(c1, cols); x++ {
					grid[rows-1-y][x] = glyph
				}
			}
		}
	}

	if res != nil {
		fill(res.Leaves, glyphOccupied, true)
		fill(res.PathCells, glyphCorridor, false)

		step := math.Min(bounds.Width()/float64(cols), bounds.Height()/float64(rows)) / 2
		for i := 1; i < len(res.Smoothed); i++ {
			a, b := res.Smoothed[i-1], res.Smoothed[i]
			n := int(vmath.Distance(a, b)/step) + 1
			for k := 0; k <= n; k++ {
				c, r, _ := toCell(vmath.Lerp(a, b, float64(k)/float64(n)))
				grid[r][c] = glyphRoute
			}
		}
	}

	if c, r, ok := toCell(start); ok {
		grid[r][c] = glyphStart
	}
	if c, r, ok := toCell(end); ok {
		grid[r][c] = glyphEnd
	}

	out := make([]string, rows)
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}
