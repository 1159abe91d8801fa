package tui

import (
	"testing"

	"github.com/vovakirdan/tui-pathfinder/internal/astar"
	"github.com/vovakirdan/tui-pathfinder/internal/core"
	"github.com/vovakirdan/tui-pathfinder/internal/grid"
)

func TestCellMapping(t *testing.T) {
	g := grid.New(3, 5)

	g.Each(func(p grid.Position, _ grid.CellType) {
		x, y := cellOrigin(p)
		for dx := 0; dx < cellWidth; dx++ {
			got, ok := cellAt(g, x+dx, y+boardTop)
			if !ok || got != p {
				t.Errorf("Column %d of %v mapped to %v (ok=%v)", dx, p, got, ok)
			}
		}
	})

	outside := []struct {
		name string
		x, y int
	}{
		{"header", 3, 0},
		{"top border", 3, boardTop},
		{"left border", 0, boardTop + 1},
		{"right border", 11, boardTop + 1},
		{"bottom border", 3, boardTop + 4},
	}
	for _, tt := range outside {
		if p, ok := cellAt(g, tt.x, tt.y); ok {
			t.Errorf("%s: expected no cell, got %v", tt.name, p)
		}
	}
}

func TestBoardSize(t *testing.T) {
	w, h := boardSize(20, 35)
	if w != 72 || h != 22 {
		t.Errorf("Expected 72x22, got %dx%d", w, h)
	}
}

func TestCellStatePrecedence(t *testing.T) {
	g := grid.New(3, 5)
	start, end := grid.P(1, 0), grid.P(1, 4)
	g.Set(grid.P(0, 3), grid.Wall)

	// Without an engine only walls and endpoints show
	v := newBoardView(g, start, end, nil, astar.StepResult{})
	editing := map[grid.Position]CellState{
		start:        CellStart,
		end:          CellEnd,
		grid.P(0, 3): CellWall,
		grid.P(2, 2): CellEmpty,
	}
	for p, want := range editing {
		if got := v.State(p); got != want {
			t.Errorf("Editing %v: expected %s, got %s", p, want, got)
		}
	}

	e, err := astar.New(g, start, end)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var last astar.StepResult
	for i := 0; i < 3; i++ {
		last = e.Step()
	}
	if !last.HasCurrent || last.Current != grid.P(1, 2) {
		t.Fatalf("Expected the third step to expand (1,2), got %+v", last)
	}

	v = newBoardView(g, start, end, e, last)
	running := map[grid.Position]CellState{
		start:        CellStart, // closed, but endpoints win
		grid.P(1, 1): CellClosed,
		grid.P(1, 2): CellCurrent,
		grid.P(0, 0): CellOpen,
		grid.P(1, 3): CellOpen,
		grid.P(0, 3): CellWall,
		grid.P(2, 4): CellEmpty,
	}
	for p, want := range running {
		if got := v.State(p); got != want {
			t.Errorf("Running %v: expected %s, got %s", p, want, got)
		}
	}

	last = e.Drain()
	v = newBoardView(g, start, end, e, last)
	if !last.Found {
		t.Fatal("Expected a path")
	}
	for _, p := range last.Path[1 : len(last.Path)-1] {
		if got := v.State(p); got != CellPath {
			t.Errorf("Path cell %v: expected path, got %s", p, got)
		}
	}
	if got := v.State(end); got != CellEnd {
		t.Errorf("Goal should keep its endpoint state once found, got %s", got)
	}
}

func TestDrawBoard(t *testing.T) {
	g := grid.New(2, 3)
	g.Set(grid.P(0, 1), grid.Wall)
	start, end := grid.P(0, 0), grid.P(1, 2)
	theme := DefaultTheme()

	w, h := boardSize(g.Rows(), g.Cols())
	screen := core.NewScreen(w, h)
	v := newBoardView(g, start, end, nil, astar.StepResult{})
	drawBoard(screen, v, theme, grid.P(1, 0), true)

	checks := []struct {
		name  string
		p     grid.Position
		glyph Glyph
	}{
		{"start", start, theme.Start},
		{"wall", grid.P(0, 1), theme.Wall},
		{"empty", grid.P(0, 2), theme.Empty},
		{"end", end, theme.End},
	}
	for _, c := range checks {
		x, y := cellOrigin(c.p)
		for i := 0; i < cellWidth; i++ {
			cell := screen.GetCell(x+i, y)
			if cell.Rune != c.glyph.Runes[i] || cell.Color != c.glyph.Color {
				t.Errorf("%s column %d: expected %q, got %q", c.name, i, c.glyph.Runes[i], cell.Rune)
			}
		}
	}

	x, y := cellOrigin(grid.P(1, 0))
	if screen.Get(x, y) != '[' || screen.Get(x+1, y) != ']' {
		t.Errorf("Expected cursor brackets, got %q%q", screen.Get(x, y), screen.Get(x+1, y))
	}
	if screen.GetCell(x, y).Color != theme.Cursor {
		t.Error("Cursor should use the theme cursor color")
	}

	// Hidden cursor leaves the cell glyph
	screen.Clear()
	drawBoard(screen, v, theme, grid.P(1, 0), false)
	if screen.Get(x, y) != theme.Empty.Runes[0] {
		t.Errorf("Expected empty glyph under a hidden cursor, got %q", screen.Get(x, y))
	}
}

func TestMonochromeThemeUsesShapes(t *testing.T) {
	theme := MonochromeTheme()
	glyphs := []Glyph{theme.Start, theme.End, theme.Current, theme.Path, theme.Wall, theme.Open, theme.Closed}

	seen := make(map[rune]bool)
	for _, g := range glyphs {
		if g.Color != core.ColorDefault {
			t.Errorf("Expected uncolored glyph %q", g.Runes[0])
		}
		if seen[g.Runes[0]] {
			t.Errorf("Glyph %q is ambiguous without color", g.Runes[0])
		}
		seen[g.Runes[0]] = true
	}
}
