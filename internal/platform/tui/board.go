package tui

import (
	"github.com/vovakirdan/tui-pathfinder/internal/astar"
	"github.com/vovakirdan/tui-pathfinder/internal/core"
	"github.com/vovakirdan/tui-pathfinder/internal/grid"
)

// Board layout: a one-line header, then a box whose cells are two columns wide.
const (
	boardTop  = 1
	cellWidth = 2
)

// CellState is the visual state of a board cell.
type CellState int

const (
	CellEmpty CellState = iota
	CellWall
	CellStart
	CellEnd
	CellOpen
	CellClosed
	CellCurrent
	CellPath
)

// String returns a human-readable name for the state.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellStart:
		return "start"
	case CellEnd:
		return "end"
	case CellOpen:
		return "open"
	case CellClosed:
		return "closed"
	case CellCurrent:
		return "current"
	case CellPath:
		return "path"
	default:
		return "unknown"
	}
}

// boardView is a read-only snapshot of what the board shows.
// The engine may be nil while the maze is being edited.
type boardView struct {
	grid       *grid.Grid
	start      grid.Position
	end        grid.Position
	engine     *astar.Engine
	current    grid.Position
	hasCurrent bool
	path       map[grid.Key]struct{}
}

func newBoardView(g *grid.Grid, start, end grid.Position, engine *astar.Engine, last astar.StepResult) boardView {
	v := boardView{
		grid:       g,
		start:      start,
		end:        end,
		engine:     engine,
		current:    last.Current,
		hasCurrent: engine != nil && last.HasCurrent && !last.Finished,
		path:       make(map[grid.Key]struct{}, len(last.Path)),
	}
	if engine != nil {
		for _, p := range last.Path {
			v.path[p.Key()] = struct{}{}
		}
	}
	return v
}

// State classifies a cell. Endpoints win over search state, and the
// current cell and path win over the open and closed sets.
func (v boardView) State(p grid.Position) CellState {
	switch {
	case p == v.start:
		return CellStart
	case p == v.end:
		return CellEnd
	case v.hasCurrent && p == v.current:
		return CellCurrent
	}
	if _, ok := v.path[p.Key()]; ok {
		return CellPath
	}
	if v.grid.IsWall(p) {
		return CellWall
	}
	if v.engine != nil {
		if v.engine.IsClosed(p) {
			return CellClosed
		}
		if v.engine.IsOpen(p) {
			return CellOpen
		}
	}
	return CellEmpty
}

// glyph returns the theme glyph for a state.
func (t Theme) glyph(s CellState) Glyph {
	switch s {
	case CellWall:
		return t.Wall
	case CellStart:
		return t.Start
	case CellEnd:
		return t.End
	case CellOpen:
		return t.Open
	case CellClosed:
		return t.Closed
	case CellCurrent:
		return t.Current
	case CellPath:
		return t.Path
	default:
		return t.Empty
	}
}

// boardSize returns the screen size of the framed board.
func boardSize(rows, cols int) (w, h int) {
	return cols*cellWidth + 2, rows + 2
}

// cellOrigin returns the position of a cell's left column inside the board box.
func cellOrigin(p grid.Position) (x, y int) {
	return 1 + p.Col*cellWidth, 1 + p.Row
}

// cellAt maps a view position back to a cell. The board box starts
// boardTop rows below the top of the view.
func cellAt(g *grid.Grid, x, y int) (grid.Position, bool) {
	y -= boardTop
	if x < 1 || y < 1 {
		return grid.Position{}, false
	}
	p := grid.P(y-1, (x-1)/cellWidth)
	return p, g.InBounds(p)
}

// drawBoard draws the framed board. The cursor is shown only when showCursor is set.
func drawBoard(dst *core.Screen, v boardView, theme Theme, cursor grid.Position, showCursor bool) {
	w, h := boardSize(v.grid.Rows(), v.grid.Cols())
	dst.DrawBox(core.NewRect(0, 0, w, h), theme.Border)

	v.grid.Each(func(p grid.Position, _ grid.CellType) {
		x, y := cellOrigin(p)
		g := theme.glyph(v.State(p))
		dst.SetColored(x, y, g.Runes[0], g.Color)
		dst.SetColored(x+1, y, g.Runes[1], g.Color)
	})

	if showCursor && v.grid.InBounds(cursor) {
		x, y := cellOrigin(cursor)
		dst.SetColored(x, y, '[', theme.Cursor)
		dst.SetColored(x+1, y, ']', theme.Cursor)
	}
}
