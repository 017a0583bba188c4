// Package scenario decodes TOML scenario files into pathfinder inputs
package scenario

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/luis-herasme/pathfinding/core"
	"github.com/luis-herasme/pathfinding/maze"
	"github.com/luis-herasme/pathfinding/navigation"
	"github.com/luis-herasme/pathfinding/obstacle"
	"github.com/luis-herasme/pathfinding/parameter"
)

// ErrInvalidScenario reports a scenario that decodes but cannot be run
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is one query setup: domain, obstacles and endpoints
type Scenario struct {
	Name      string       `toml:"name,omitempty"`
	MaxDepth  int          `toml:"max_depth"`
	Heuristic string       `toml:"heuristic,omitempty"`
	Bounds    RectSpec     `toml:"bounds"`
	Start     *PointSpec   `toml:"start,omitempty"`
	End       *PointSpec   `toml:"end,omitempty"`
	Boxes     []RectSpec   `toml:"boxes,omitempty"`
	Circles   []CircleSpec `toml:"circles,omitempty"`
	Maze      *MazeSpec    `toml:"maze,omitempty"`

	generated *maze.Result
}

type RectSpec struct {
	MinX float64 `toml:"min_x"`
	MinY float64 `toml:"min_y"`
	MaxX float64 `toml:"max_x"`
	MaxY float64 `toml:"max_y"`
}

func (r RectSpec) Rect() core.Rect {
	return core.NewRect(r.MinX, r.MinY, r.MaxX, r.MaxY)
}

type PointSpec struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

func (p PointSpec) Point() core.Point {
	return core.Pt(p.X, p.Y)
}

type CircleSpec struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Radius float64 `toml:"radius"`
}

// MazeSpec generates wall boxes fitted into the lower-left of the bounds
// Scenario endpoints default to the maze entry and exit
type MazeSpec struct {
	Cols     int     `toml:"cols"`
	Rows     int     `toml:"rows"`
	Braiding float64 `toml:"braiding"`
	Seed     int64   `toml:"seed"`
}

// Load reads and parses a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes TOML, rejects unknown keys and validates the result
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidScenario, strings.Join(keys, ", "))
	}

	if s.MaxDepth == 0 {
		s.MaxDepth = parameter.NavDefaultMaxDepth
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes the scenario as TOML that Parse accepts
func (s *Scenario) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	return nil
}

// Validate checks everything a query needs, generating the maze if one is requested
func (s *Scenario) Validate() error {
	if _, err := s.Config(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	for i, b := range s.Boxes {
		if b.Rect().IsDegenerate() {
			return fmt.Errorf("%w: box %d is degenerate", ErrInvalidScenario, i)
		}
	}
	for i, c := range s.Circles {
		if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
			return fmt.Errorf("%w: circle %d has radius %v", ErrInvalidScenario, i, c.Radius)
		}
	}

	if s.Maze != nil {
		if s.Maze.Cols < 3 || s.Maze.Rows < 3 {
			return fmt.Errorf("%w: maze needs at least 3x3, got %dx%d", ErrInvalidScenario, s.Maze.Cols, s.Maze.Rows)
		}
		if s.Maze.Braiding < 0 || s.Maze.Braiding > 1 {
			return fmt.Errorf("%w: maze braiding %v outside [0,1]", ErrInvalidScenario, s.Maze.Braiding)
		}
		s.mazeResult()
	}

	if (s.Start == nil || s.End == nil) && s.Maze == nil {
		return fmt.Errorf("%w: start and end are required without a maze", ErrInvalidScenario)
	}
	return nil
}

// Config returns the pathfinder config the scenario describes
func (s *Scenario) Config() (navigation.Config, error) {
	kind, err := navigation.ParseHeuristic(s.Heuristic)
	if err != nil {
		return navigation.Config{}, err
	}
	cfg := navigation.Config{
		Bounds:    s.Bounds.Rect(),
		MaxDepth:  s.MaxDepth,
		Heuristic: kind,
	}
	if err := cfg.Validate(); err != nil {
		return navigation.Config{}, err
	}
	return cfg, nil
}

// Obstacles returns boxes, circles and maze walls in declaration order
func (s *Scenario) Obstacles() []obstacle.Obstacle {
	out := make([]obstacle.Obstacle, 0, len(s.Boxes)+len(s.Circles))
	for _, b := range s.Boxes {
		out = append(out, obstacle.Box{Rect: b.Rect()})
	}
	for _, c := range s.Circles {
		out = append(out, obstacle.NewCircle(c.X, c.Y, c.Radius))
	}
	if r := s.mazeResult(); r != nil {
		out = append(out, maze.Fit(*r, s.Bounds.Rect()).Obstacles(*r)...)
	}
	return out
}

// Endpoints returns start and end, falling back to the maze rooms
func (s *Scenario) Endpoints() (start, end core.Point) {
	r := s.mazeResult()
	if r != nil {
		layout := maze.Fit(*r, s.Bounds.Rect())
		start, end = layout.Center(r.Start), layout.Center(r.End)
	}
	if s.Start != nil {
		start = s.Start.Point()
	}
	if s.End != nil {
		end = s.End.Point()
	}
	return start, end
}

// Regenerate rebuilds the maze with a new seed, no-op without a maze
func (s *Scenario) Regenerate(seed int64) {
	if s.Maze == nil {
		return
	}
	s.Maze.Seed = seed
	s.generated = nil
	s.mazeResult()
}

// mazeResult generates once so unseeded mazes stay stable for the scenario's lifetime
func (s *Scenario) mazeResult() *maze.Result {
	if s.Maze == nil {
		return nil
	}
	if s.generated == nil {
		r := maze.Generate(maze.Config{
			Cols:     s.Maze.Cols,
			Rows:     s.Maze.Rows,
			Braiding: s.Maze.Braiding,
			Seed:     s.Maze.Seed,
		})
		s.generated = &r
	}
	return s.generated
}

// MazeResult returns the generated grid, nil without a maze
func (s *Scenario) MazeResult() *maze.Result {
	return s.mazeResult()
}
