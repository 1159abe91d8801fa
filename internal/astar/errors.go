package astar

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-pathfinder/internal/grid"
)

var (
	// ErrInvalidPosition is returned when start or goal is outside the
	// grid or on a wall.
	ErrInvalidPosition = errors.New("astar: invalid position")

	// ErrInvalidGrid is returned for a nil grid or one without cells.
	ErrInvalidGrid = errors.New("astar: invalid grid")
)

// PositionError describes which endpoint was rejected and why.
type PositionError struct {
	Role   string // "start" or "goal"
	Pos    grid.Position
	Reason string
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("astar: %s %v %s", e.Role, e.Pos, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidPosition.
func (e *PositionError) Unwrap() error {
	return ErrInvalidPosition
}

func checkEndpoint(g *grid.Grid, role string, p grid.Position) error {
	if !g.InBounds(p) {
		return &PositionError{Role: role, Pos: p, Reason: fmt.Sprintf("is outside the %dx%d grid", g.Rows(), g.Cols())}
	}
	if g.IsWall(p) {
		return &PositionError{Role: role, Pos: p, Reason: "is on a wall"}
	}
	return nil
}
