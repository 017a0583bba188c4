package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/luis-herasme/pathfinding/maze"
	"github.com/luis-herasme/pathfinding/parameter"
	"github.com/luis-herasme/pathfinding/scenario"
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n=== MAZE SCENARIO GENERATOR ===")

		cols := getInt(reader, "Columns [Odd prefered] (default 15): ", 15)
		rows := getInt(reader, "Rows [Odd prefered] (default 15): ", 15)
		braid := getFloat(reader, "Braiding Factor [0.0 - 1.0] (default 0.2): ", 0.2)
		size := float64(getInt(reader, "Domain size (default 1024): ", 1024))
		depth := getInt(reader, fmt.Sprintf("Max depth (default %d): ", parameter.NavDefaultMaxDepth), parameter.NavDefaultMaxDepth)

		fmt.Println("\nGenerating...")
		startT := time.Now()
		res := maze.Generate(maze.Config{Cols: cols, Rows: rows, Braiding: braid})
		dur := time.Since(startT)

		fmt.Printf("Done in %v (seed %d)\n", dur, res.Seed)
		fmt.Printf("Grid Dimensions: %dx%d\n", res.Cols(), res.Rows())

		if solution := res.Solve(); solution != nil {
			fmt.Printf("Solution Path Length: %d steps\n", len(solution))
			draw(os.Stdout, res, solution)
		} else {
			fmt.Println("Status: Unsolvable (Isolated Start/End)")
			draw(os.Stdout, res, nil)
		}

		fmt.Print("\nSave scenario to file (empty skips): ")
		path, _ := reader.ReadString('\n')
		if path = strings.TrimSpace(path); path != "" {
			sc := newScenario(res, cols, rows, braid, size, depth)
			if err := save(path, sc); err != nil {
				fmt.Printf("Save failed: %v\n", err)
			} else {
				fmt.Printf("Wrote %s\n", path)
			}
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// newScenario pins the generated seed so the file reproduces the maze on screen
func newScenario(res maze.Result, cols, rows int, braid, size float64, depth int) *scenario.Scenario {
	return &scenario.Scenario{
		Name:     fmt.Sprintf("maze-%d", res.Seed),
		MaxDepth: depth,
		Bounds:   scenario.RectSpec{MaxX: size, MaxY: size},
		Maze:     &scenario.MazeSpec{Cols: cols, Rows: rows, Braiding: braid, Seed: res.Seed},
	}
}

func save(path string, sc *scenario.Scenario) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sc.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// draw prints row 0 last so the picture matches the plane's y-up layout
func draw(w io.Writer, res maze.Result, solution []maze.Point) {
	pathMap := make(map[maze.Point]bool)
	for _, p := range solution {
		pathMap[p] = true
	}

	var sb strings.Builder
	for y := res.Rows() - 1; y >= 0; y-- {
		for x, isWall := range res.Grid[y] {
			p := maze.Point{X: x, Y: y}

			switch {
			case p == res.Start:
				sb.WriteString("S")
			case p == res.End:
				sb.WriteString("E")
			case isWall:
				sb.WriteString("█")
			case pathMap[p]:
				sb.WriteString("•")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	// Clamp
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
