// quadpath runs one pathfinding query from a scenario file or a generated maze
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/luis-herasme/pathfinding/config"
	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/navigation"
	"github.com/luis-herasme/pathfinding/scenario"
	"github.com/luis-herasme/pathfinding/status"
	"github.com/luis-herasme/pathfinding/vmath"
)

// Exit codes
const (
	exitOK      = 0
	exitNoRoute = 1
	exitError   = 2
)

// mazeExtent is the side of the square domain used for generated mazes
const mazeExtent = 1024

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	fs := flag.NewFlagSet("quadpath", flag.ContinueOnError)
	scenarioPath := fs.String("scenario", env.Scenario, "scenario TOML file")
	depth := fs.Int("depth", 0, "max subdivision depth (0 keeps the scenario value)")
	heuristic := fs.String("heuristic", "", "euclidean or squared (empty keeps the scenario value)")
	mazeSize := fs.Int("maze", env.MazeSize, "maze size used when no scenario is given")
	seed := fs.Int64("seed", env.Seed, "maze seed, 0 for random")
	asciiCols := fs.Int("ascii", 64, "ASCII map width, 0 disables the map")
	debug := fs.Bool("debug", env.Debug, "write logs to "+logFileName)
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	logDir = env.LogDir
	if f := setupLogging(*debug); f != nil {
		defer f.Close()
	}

	s, err := loadScenario(*scenarioPath, *mazeSize, env.Braiding, *seed, env)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	if *depth > 0 {
		s.MaxDepth = *depth
	}
	if *heuristic != "" {
		s.Heuristic = *heuristic
	}

	cfg, err := s.Config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	reg := status.NewRegistry()
	pf, err := navigation.NewPathfinder(cfg, s.Obstacles(), navigation.WithRegistry(reg))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	start, end := s.Endpoints()
	log.Printf("quadpath: %q depth=%d heuristic=%v start=%v end=%v", s.Name, cfg.MaxDepth, cfg.Heuristic, start, end)

	res, err := pf.FindPath(start, end)
	report(stdout, s.Name, cfg, res, start, end, err)
	for _, line := range reg.Lines("nav.") {
		fmt.Fprintln(stdout, "  "+line)
	}
	if *asciiCols > 0 {
		fmt.Fprintln(stdout)
		for _, line := range asciiMap(res, cfg.Bounds, start, end, *asciiCols) {
			fmt.Fprintln(stdout, line)
		}
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, navigation.ErrNoRoute):
		log.Printf("quadpath: no route: %v", err)
		return exitNoRoute
	default:
		log.Printf("quadpath: query failed: %v", err)
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
}

// loadScenario reads path, or builds a maze scenario when path is empty
func loadScenario(path string, size int, braiding float64, seed int64, env *config.Config) (*scenario.Scenario, error) {
	if path != "" {
		return scenario.Load(path)
	}

	s := &scenario.Scenario{
		Name:      fmt.Sprintf("maze-%d", size),
		MaxDepth:  env.MaxDepth,
		Heuristic: env.Heuristic,
		Bounds:    scenario.RectSpec{MaxX: mazeExtent, MaxY: mazeExtent},
		Maze:      &scenario.MazeSpec{Cols: size, Rows: size, Braiding: braiding, Seed: seed},
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func report(w io.Writer, name string, cfg navigation.Config, res *navigation.Result, start, end core.Point, err error) {
	fmt.Fprintf(w, "scenario:  %s\n", name)
	fmt.Fprintf(w, "domain:    %v depth %d, heuristic %v\n", cfg.Bounds, cfg.MaxDepth, cfg.Heuristic)
	fmt.Fprintf(w, "query:     (%g,%g) -> (%g,%g)\n", start.X, start.Y, end.X, end.Y)

	if res != nil {
		free, occupied := 0, 0
		for _, c := range res.Leaves {
			if c.Occupied {
				occupied++
			} else {
				free++
			}
		}
		fmt.Fprintf(w, "leaves:    %d (%d free, %d occupied)\n", len(res.Leaves), free, occupied)
	}
	if err != nil {
		fmt.Fprintf(w, "result:    %v\n", err)
		return
	}

	raw := append([]core.Point{start}, res.Path...)
	raw = append(raw, end)
	fmt.Fprintf(w, "result:    %d cells, %d portals, %d expanded in %v\n",
		len(res.PathCells), len(res.Portals), res.Expanded, res.Duration)
	fmt.Fprintf(w, "length:    raw %.3f, smoothed %.3f\n", vmath.PolylineLength(raw), vmath.PolylineLength(res.Smoothed))
	fmt.Fprint(w, "smoothed: ")
	for _, p := range res.Smoothed {
		fmt.Fprintf(w, " (%.2f,%.2f)", p.X, p.Y)
	}
	fmt.Fprintln(w)
}
