package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig rejects degenerate bounds or an out-of-range depth at construction
	ErrInvalidConfig = errors.New("invalid pathfinder config")

	// ErrNoRoute is the umbrella for every "no path" outcome; match with errors.Is
	ErrNoRoute = errors.New("no route")

	ErrStartOutOfBounds = fmt.Errorf("start outside domain: %w", ErrNoRoute)
	ErrEndOutOfBounds   = fmt.Errorf("end outside domain: %w", ErrNoRoute)
	ErrStartBlocked     = fmt.Errorf("start cell occupied: %w", ErrNoRoute)
	ErrEndBlocked       = fmt.Errorf("end cell occupied: %w", ErrNoRoute)
	ErrNoPath           = fmt.Errorf("start and end not connected: %w", ErrNoRoute)
	ErrSearchBudget     = fmt.Errorf("search budget exhausted: %w", ErrNoRoute)

	// ErrTopology is an invariant violation: cells adjacent in the graph without a shared edge
	ErrTopology = errors.New("cells do not share an edge")
)

// failureReason maps a query error to a short metric key
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrStartOutOfBounds):
		return "start_oob"
	case errors.Is(err, ErrEndOutOfBounds):
		return "end_oob"
	case errors.Is(err, ErrStartBlocked):
		return "start_blocked"
	case errors.Is(err, ErrEndBlocked):
		return "end_blocked"
	case errors.Is(err, ErrSearchBudget):
		return "budget"
	case errors.Is(err, ErrNoPath):
		return "disconnected"
	case errors.Is(err, ErrTopology):
		return "topology"
	default:
		return "internal"
	}
}
