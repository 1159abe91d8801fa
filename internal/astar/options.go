package astar

import (
	"fmt"

	"github.com/vovakirdan/tui-pathfinder/internal/heuristic"
)

// TieBreak selects how cells with equal f-scores leave the open set.
type TieBreak string

const (
	// TieBreakHeap leaves equal-f order to heap structure and insertion
	// order. Paths stay optimal but which of several equal paths is found
	// depends on those mechanics.
	TieBreakHeap TieBreak = "heap"
	// TieBreakFIFO pops the cell that entered the open set first.
	TieBreakFIFO TieBreak = "fifo"
	// TieBreakLowerH pops the cell closer to the goal by heuristic, then
	// the one that entered first.
	TieBreakLowerH TieBreak = "lower-h"
)

// TieBreaks lists the supported policies in display order.
func TieBreaks() []TieBreak {
	return []TieBreak{TieBreakHeap, TieBreakFIFO, TieBreakLowerH}
}

// ParseTieBreak validates a tie-break name. Empty selects TieBreakHeap.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(s) {
	case "", TieBreakHeap:
		return TieBreakHeap, nil
	case TieBreakFIFO, TieBreakLowerH:
		return TieBreak(s), nil
	}
	return "", fmt.Errorf("astar: unknown tie-break %q", s)
}

// Next returns the policy after t, wrapping around.
func (t TieBreak) Next() TieBreak {
	all := TieBreaks()
	for i, tb := range all {
		if tb == t {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Options defines parameters for a search.
type Options struct {
	Heuristic     heuristic.Kind
	HeuristicFunc heuristic.Func // overrides Heuristic when set
	AllowDiagonal bool
	TieBreak      TieBreak
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions returns manhattan, 4-directional, heap tie-break.
func DefaultOptions() Options {
	return Options{
		Heuristic: heuristic.KindManhattan,
		TieBreak:  TieBreakHeap,
	}
}

// WithHeuristic selects a registered heuristic by kind.
func WithHeuristic(kind heuristic.Kind) Option {
	return func(o *Options) { o.Heuristic = kind }
}

// WithHeuristicFunc supplies a custom heuristic.
func WithHeuristicFunc(fn heuristic.Func) Option {
	return func(o *Options) { o.HeuristicFunc = fn }
}

// WithDiagonal enables 8-directional movement with √2 diagonal cost.
func WithDiagonal(allow bool) Option {
	return func(o *Options) { o.AllowDiagonal = allow }
}

// WithTieBreak sets the equal-f ordering policy.
func WithTieBreak(t TieBreak) Option {
	return func(o *Options) { o.TieBreak = t }
}
