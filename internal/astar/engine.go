// Package astar implements a resumable A* search over a grid.
//
// An Engine can be advanced one pop-and-relax round at a time with Step,
// which suits animation, or drained to completion with Drain. The engine is
// single-threaded and synchronous: Step does a bounded amount of work and
// returns, and pacing is entirely up to the caller. Each Engine owns a
// private copy of the grid taken at construction, so edits to the caller's
// grid never reach a search in flight; run a new search with a new Engine.
//
// Closed cells are never reopened. That keeps paths optimal for consistent
// heuristics (manhattan on 4-way grids, octile on 8-way grids). An
// inconsistent combination, such as euclidean with √2 diagonals in some
// layouts, can return a longer path than necessary.
package astar

import (
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/tui-pathfinder/internal/grid"
	"github.com/vovakirdan/tui-pathfinder/internal/heuristic"
	"github.com/vovakirdan/tui-pathfinder/internal/pqueue"
)

// State is the lifecycle stage of a search.
type State int

const (
	Ready     State = iota // constructed, open set holds only the start
	Running                // at least one round done, not finished
	Found                  // goal popped, path available
	Exhausted              // open set emptied without reaching the goal
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the search has finished.
func (s State) Terminal() bool {
	return s == Found || s == Exhausted
}

// StepResult is returned by every Step call.
type StepResult struct {
	Current    grid.Position   // cell popped this round; valid when HasCurrent
	HasCurrent bool            // false when the open set was already empty
	Path       []grid.Position // start-to-goal path, set only when Found
	Finished   bool
	Found      bool
}

// Stats counts the work a search has done so far.
type Stats struct {
	Steps       int     // pop rounds performed
	Expanded    int     // cells moved to the closed set
	MaxFrontier int     // largest open-set size seen
	PathCost    float64 // g of the goal once found
	PathLength  int     // cells on the path, endpoints included
}

// Engine is a steppable A* search over a private grid snapshot.
type Engine struct {
	grid      *grid.Grid
	start     grid.Position
	goal      grid.Position
	heuristic heuristic.Func
	opts      Options
	records   *grid.Records
	parents   *grid.Parents
	open      *pqueue.Queue[grid.Position, grid.Key]
	closed    map[grid.Key]struct{}
	state     State
	terminal  StepResult
	stats     Stats
}

// New validates the endpoints, copies g and seeds the open set with start.
func New(g *grid.Grid, start, goal grid.Position, options ...Option) (*Engine, error) {
	if g == nil || g.Size() == 0 {
		return nil, ErrInvalidGrid
	}

	opts := DefaultOptions()
	for _, option := range options {
		option(&opts)
	}

	h := opts.HeuristicFunc
	if h == nil {
		fn, err := heuristic.Lookup(opts.Heuristic)
		if err != nil {
			return nil, fmt.Errorf("astar: %w", err)
		}
		h = fn
	}
	tb, err := ParseTieBreak(string(opts.TieBreak))
	if err != nil {
		return nil, err
	}
	opts.TieBreak = tb

	if err := checkEndpoint(g, "start", start); err != nil {
		return nil, err
	}
	if err := checkEndpoint(g, "goal", goal); err != nil {
		return nil, err
	}

	e := &Engine{
		grid:      g.Clone(),
		start:     start,
		goal:      goal,
		heuristic: h,
		opts:      opts,
		records:   grid.NewRecords(),
		parents:   grid.NewParents(),
		closed:    make(map[grid.Key]struct{}),
		state:     Ready,
	}
	e.open = pqueue.New(e.priority, grid.Position.Key, e.queueOptions()...)

	startH := h(start, goal)
	e.records.Set(start, grid.SearchRecord{G: 0, H: startH, F: startH})
	e.open.Insert(start)
	e.stats.MaxFrontier = 1

	return e, nil
}

// priority reads the current f-score, so it must be looked up on every
// comparison rather than cached at insertion.
func (e *Engine) priority(p grid.Position) float64 {
	return e.records.Get(p).F
}

func (e *Engine) queueOptions() []pqueue.Option[grid.Position] {
	switch e.opts.TieBreak {
	case TieBreakFIFO:
		return []pqueue.Option[grid.Position]{pqueue.WithInsertionOrder[grid.Position]()}
	case TieBreakLowerH:
		return []pqueue.Option[grid.Position]{
			pqueue.WithTieBreak(func(a, b grid.Position) bool {
				return e.records.Get(a).H < e.records.Get(b).H
			}),
			pqueue.WithInsertionOrder[grid.Position](),
		}
	}
	return nil
}

// Step performs one pop-and-relax round.
// Once the search has finished, Step returns the terminal result again
// without touching any state.
func (e *Engine) Step() StepResult {
	if e.state.Terminal() {
		return e.terminalResult()
	}

	current, ok := e.open.DeleteMin()
	if !ok {
		e.state = Exhausted
		e.terminal = StepResult{Finished: true}
		return e.terminalResult()
	}
	e.state = Running
	e.stats.Steps++

	if current == e.goal {
		path := e.parents.Path(current)
		e.state = Found
		e.stats.PathCost = e.records.Get(current).G
		e.stats.PathLength = len(path)
		e.terminal = StepResult{
			Current:    current,
			HasCurrent: true,
			Path:       path,
			Finished:   true,
			Found:      true,
		}
		return e.terminalResult()
	}

	e.closed[current.Key()] = struct{}{}
	e.stats.Expanded++

	currentG := e.records.Get(current).G
	for _, nb := range grid.Neighbors(e.grid, current, e.opts.AllowDiagonal) {
		k := nb.Key()
		if _, done := e.closed[k]; done {
			continue
		}

		moveCost := 1.0
		if e.opts.AllowDiagonal && current.Manhattan(nb) == 2 {
			moveCost = math.Sqrt2
		}
		tentativeG := currentG + moveCost

		if !e.open.ContainsKey(k) {
			e.relax(current, nb, tentativeG)
			e.open.Insert(nb)
		} else if tentativeG < e.records.Get(nb).G {
			e.relax(current, nb, tentativeG)
			e.open.DecreaseKey(nb)
		}
	}

	if n := e.open.Len(); n > e.stats.MaxFrontier {
		e.stats.MaxFrontier = n
	}

	return StepResult{Current: current, HasCurrent: true}
}

// relax records parent as the best known predecessor of p.
func (e *Engine) relax(parent, p grid.Position, g float64) {
	h := e.heuristic(p, e.goal)
	e.parents.Set(p, parent)
	e.records.Set(p, grid.SearchRecord{G: g, H: h, F: g + h})
}

func (e *Engine) terminalResult() StepResult {
	r := e.terminal
	r.Path = slices.Clone(r.Path)
	return r
}

// Drain steps until the search finishes and returns the final result.
func (e *Engine) Drain() StepResult {
	for {
		if r := e.Step(); r.Finished {
			return r
		}
	}
}

// State returns the lifecycle stage.
func (e *Engine) State() State {
	return e.state
}

// Finished reports whether the search reached a terminal state.
func (e *Engine) Finished() bool {
	return e.state.Terminal()
}

// Found reports whether the goal was reached.
func (e *Engine) Found() bool {
	return e.state == Found
}

// Path returns the found path, or nil.
func (e *Engine) Path() []grid.Position {
	return slices.Clone(e.terminal.Path)
}

// Start returns the start position.
func (e *Engine) Start() grid.Position {
	return e.start
}

// Goal returns the goal position.
func (e *Engine) Goal() grid.Position {
	return e.goal
}

// Options returns the resolved search options.
func (e *Engine) Options() Options {
	return e.opts
}

// Grid returns a copy of the topology the engine searches.
func (e *Engine) Grid() *grid.Grid {
	return e.grid.Clone()
}

// Stats returns the work counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// IsOpen reports whether p is on the frontier.
func (e *Engine) IsOpen(p grid.Position) bool {
	return e.open.ContainsKey(p.Key())
}

// IsClosed reports whether p has been finalized.
func (e *Engine) IsClosed(p grid.Position) bool {
	_, ok := e.closed[p.Key()]
	return ok
}

// OpenSet returns the frontier cells in row-major order.
func (e *Engine) OpenSet() []grid.Position {
	out := e.open.Items()
	sortRowMajor(out)
	return out
}

// ClosedSet returns the finalized cells in row-major order.
func (e *Engine) ClosedSet() []grid.Position {
	out := make([]grid.Position, 0, len(e.closed))
	for k := range e.closed {
		out = append(out, k.Position())
	}
	sortRowMajor(out)
	return out
}

// Record returns the search metadata of p.
func (e *Engine) Record(p grid.Position) grid.SearchRecord {
	return e.records.Get(p)
}

// Parent returns the predecessor of p on its best known path.
func (e *Engine) Parent(p grid.Position) (grid.Position, bool) {
	return e.parents.Get(p)
}

func sortRowMajor(ps []grid.Position) {
	slices.SortFunc(ps, func(a, b grid.Position) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
}
