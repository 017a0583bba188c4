// Package config reads tool defaults from QUADPATH_* environment variables
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/luis-herasme/pathfinding/navigation"
	"github.com/luis-herasme/pathfinding/parameter"
)

// Prefix namespaces every variable, e.g. QUADPATH_MAX_DEPTH
const Prefix = "QUADPATH"

type Config struct {
	MaxDepth  int     `envconfig:"MAX_DEPTH" default:"6"`
	Heuristic string  `envconfig:"HEURISTIC" default:"euclidean"`
	Scenario  string  `envconfig:"SCENARIO"`
	Debug     bool    `envconfig:"DEBUG" default:"false"`
	LogDir    string  `envconfig:"LOG_DIR" default:"logs"`
	MazeSize  int     `envconfig:"MAZE_SIZE" default:"15"`
	Braiding  float64 `envconfig:"BRAIDING" default:"0.2"`
	Seed      int64   `envconfig:"SEED" default:"0"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the environment cannot constrain by type alone
func (c *Config) Validate() error {
	if c.MaxDepth < 1 || c.MaxDepth > parameter.NavMaxAllowedDepth {
		return fmt.Errorf("%w: %s_MAX_DEPTH=%d outside [1,%d]",
			navigation.ErrInvalidConfig, Prefix, c.MaxDepth, parameter.NavMaxAllowedDepth)
	}
	if _, err := navigation.ParseHeuristic(c.Heuristic); err != nil {
		return err
	}
	if c.MazeSize < 3 {
		return fmt.Errorf("%w: %s_MAZE_SIZE=%d below 3", navigation.ErrInvalidConfig, Prefix, c.MazeSize)
	}
	if c.Braiding < 0 || c.Braiding > 1 {
		return fmt.Errorf("%w: %s_BRAIDING=%v outside [0,1]", navigation.ErrInvalidConfig, Prefix, c.Braiding)
	}
	return nil
}

// HeuristicKind returns the parsed heuristic, Euclidean if unparseable
func (c *Config) HeuristicKind() navigation.HeuristicKind {
	kind, err := navigation.ParseHeuristic(c.Heuristic)
	if err != nil {
		return navigation.HeuristicEuclidean
	}
	return kind
}
