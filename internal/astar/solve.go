package astar

import "github.com/vovakirdan/tui-pathfinder/internal/grid"

// Result contains the outcome of a drained search.
type Result struct {
	Path  []grid.Position
	Cost  float64
	Found bool
	Stats Stats
}

// Solve constructs an engine and drains it.
// A missing path is not an error; it is reported with Found=false.
func Solve(g *grid.Grid, start, goal grid.Position, options ...Option) (Result, error) {
	e, err := New(g, start, goal, options...)
	if err != nil {
		return Result{}, err
	}

	final := e.Drain()
	stats := e.Stats()
	return Result{
		Path:  final.Path,
		Cost:  stats.PathCost,
		Found: final.Found,
		Stats: stats,
	}, nil
}
