package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyLayout is returned when a layout has no rows or no columns.
var ErrEmptyLayout = errors.New("grid: empty layout")

// Layout is a parsed text board together with its marked endpoints.
type Layout struct {
	Grid     *Grid
	Start    Position
	End      Position
	HasStart bool
	HasEnd   bool
}

// ParseLayout builds a grid from text rows using '.' for empty cells,
// '#' for walls, 'S' for the start and 'E' for the end.
// Rows shorter than the widest row are padded with empty cells.
// Blank leading and trailing rows are ignored.
func ParseLayout(lines []string) (Layout, error) {
	lines = trimBlank(lines)
	if len(lines) == 0 {
		return Layout{}, ErrEmptyLayout
	}

	cols := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > cols {
			cols = n
		}
	}
	if cols == 0 {
		return Layout{}, ErrEmptyLayout
	}

	g := New(len(lines), cols)
	var out Layout
	for row, line := range lines {
		for col, r := range []rune(line) {
			cell, ok := ParseCellType(r)
			if !ok {
				return Layout{}, fmt.Errorf("grid: invalid character %q at %d,%d", r, row, col)
			}
			p := Position{Row: row, Col: col}
			switch cell {
			case Start:
				if out.HasStart {
					return Layout{}, fmt.Errorf("grid: second start at %v (first at %v)", p, out.Start)
				}
				out.Start, out.HasStart = p, true
			case End:
				if out.HasEnd {
					return Layout{}, fmt.Errorf("grid: second end at %v (first at %v)", p, out.End)
				}
				out.End, out.HasEnd = p, true
			}
			g.Set(p, cell)
		}
	}
	out.Grid = g
	return out, nil
}

// ParseLayoutString splits text on newlines and parses it.
func ParseLayoutString(text string) (Layout, error) {
	return ParseLayout(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
}

// Format renders a grid back into layout text, one row per line.
func Format(g *Grid) string {
	var sb strings.Builder
	sb.Grow(g.rows*g.cols + g.rows)
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < g.cols; col++ {
			sb.WriteRune(g.At(Position{Row: row, Col: col}).Rune())
		}
	}
	return sb.String()
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
