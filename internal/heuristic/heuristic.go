// Package heuristic provides the distance estimates the A* engine uses to
// order its frontier. Every function is pure and returns a non-negative
// value.
package heuristic

import (
	"math"

	"github.com/vovakirdan/tui-pathfinder/internal/grid"
)

// Func estimates the remaining cost from a to goal.
type Func func(a, goal grid.Position) float64

// Manhattan is |Δrow| + |Δcol|. Admissible and consistent for
// 4-directional unit-cost movement.
func Manhattan(a, b grid.Position) float64 {
	return float64(absDiff(a.Row, b.Row) + absDiff(a.Col, b.Col))
}

// Euclidean is the straight-line distance. Admissible for any movement
// model but loose on a grid.
func Euclidean(a, b grid.Position) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// Diagonal is the Chebyshev distance max(|Δrow|, |Δcol|).
// It is exact only when a diagonal step costs 1. With the engine's √2
// diagonal cost it underestimates, so treat it as an approximation.
func Diagonal(a, b grid.Position) float64 {
	return float64(max(absDiff(a.Row, b.Row), absDiff(a.Col, b.Col)))
}

// Octile is exact on an open grid where axis steps cost 1 and diagonal
// steps cost √2: max + (√2-1)·min.
func Octile(a, b grid.Position) float64 {
	dr := absDiff(a.Row, b.Row)
	dc := absDiff(a.Col, b.Col)
	return float64(max(dr, dc)) + (math.Sqrt2-1)*float64(min(dr, dc))
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
