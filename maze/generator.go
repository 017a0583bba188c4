package maze

import (
	"math/rand"
	"time"
)

// Grid values
const (
	Wall    = true
	Passage = false
)

// Point is a grid coordinate, X is the column and Y the row
// Row 0 is the bottom row once placed in the plane
type Point struct {
	X, Y int
}

// Config controls maze shape
type Config struct {
	Cols, Rows int

	// Braiding in [0,1]: 0 keeps a perfect maze, higher values open loops at dead ends
	Braiding float64

	Seed int64 // 0 picks a time-based seed
}

// Result is a generated wall grid with its entry and exit rooms
type Result struct {
	Grid       [][]bool // Grid[row][col]
	Start, End Point
	Seed       int64
}

// Cols returns the grid width
func (r Result) Cols() int { return len(r.Grid[0]) }

// Rows returns the grid height
func (r Result) Rows() int { return len(r.Grid) }

// Generate builds a maze with a recursive backtracker, then braids dead ends
// Dimensions round down to odd values of at least 3; start is the bottom-left room,
// end the top-right room
func Generate(cfg Config) Result {
	rows, cols := oddAtLeast3(cfg.Rows), oddAtLeast3(cfg.Cols)

	grid := make([][]bool, rows)
	for y := range grid {
		grid[y] = make([]bool, cols)
		for x := range grid[y] {
			grid[y][x] = Wall
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := Point{1, 1}
	end := Point{cols - 2, rows - 2}

	carve(grid, start, rng)
	if cfg.Braiding > 0 {
		braid(grid, cfg.Braiding, rng)
	}

	return Result{Grid: grid, Start: start, End: end, Seed: seed}
}

// --- Core Algorithms ---

var (
	steps = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	jumps = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
)

// carve opens a spanning tree over the odd rooms
func carve(grid [][]bool, start Point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	grid[start.Y][start.X] = Passage
	stack := []Point{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var open [4]Point
		n := 0
		for _, j := range jumps {
			nx, ny := cur.X+j.X, cur.Y+j.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == Wall {
				open[n] = j
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		j := open[rng.Intn(n)]
		grid[cur.Y+j.Y/2][cur.X+j.X/2] = Passage
		next := Point{cur.X + j.X, cur.Y + j.Y}
		grid[next.Y][next.X] = Passage
		stack = append(stack, next)
	}
}

// braid knocks through one wall at a dead end with the given probability
// Walls whose removal would open a 2x2 room are kept
func braid(grid [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if exits(grid, x, y) != 1 || rng.Float64() >= probability {
				continue
			}

			var walls [4]Point
			n := 0
			for _, j := range jumps {
				nx, ny := x+j.X, y+j.Y
				wx, wy := x+j.X/2, y+j.Y/2
				if nx <= 0 || nx >= cols-1 || ny <= 0 || ny >= rows-1 {
					continue
				}
				if grid[ny][nx] == Passage && grid[wy][wx] == Wall && !opensPlaza(grid, wx, wy) {
					walls[n] = Point{wx, wy}
					n++
				}
			}
			if n > 0 {
				w := walls[rng.Intn(n)]
				grid[w.Y][w.X] = Passage
			}
		}
	}
}

func exits(grid [][]bool, x, y int) int {
	n := 0
	for _, s := range steps {
		if grid[y+s.Y][x+s.X] == Passage {
			n++
		}
	}
	return n
}

// opensPlaza reports whether clearing (x, y) completes any 2x2 block of passages
func opensPlaza(grid [][]bool, x, y int) bool {
	open := func(tx, ty int) bool {
		if ty < 0 || ty >= len(grid) || tx < 0 || tx >= len(grid[0]) {
			return false
		}
		return grid[ty][tx] == Passage
	}
	for _, dx := range [2]int{-1, 1} {
		for _, dy := range [2]int{-1, 1} {
			if open(x+dx, y) && open(x, y+dy) && open(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

// Solve returns the shortest grid route from Start to End by breadth-first search,
// nil when they are not connected
func (r Result) Solve() []Point {
	rows, cols := r.Rows(), r.Cols()
	if r.Grid[r.Start.Y][r.Start.X] == Wall || r.Grid[r.End.Y][r.End.X] == Wall {
		return nil
	}

	from := map[Point]Point{r.Start: r.Start}
	queue := []Point{r.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == r.End {
			break
		}
		for _, s := range steps {
			next := Point{cur.X + s.X, cur.Y + s.Y}
			if next.X < 0 || next.X >= cols || next.Y < 0 || next.Y >= rows || r.Grid[next.Y][next.X] == Wall {
				continue
			}
			if _, seen := from[next]; !seen {
				from[next] = cur
				queue = append(queue, next)
			}
		}
	}

	if _, ok := from[r.End]; !ok {
		return nil
	}
	var path []Point
	for cur := r.End; cur != r.Start; cur = from[cur] {
		path = append(path, cur)
	}
	path = append(path, r.Start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// --- Helpers ---

func oddAtLeast3(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
