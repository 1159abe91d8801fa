package grid

// direction is a single-step offset.
type direction struct {
	dRow, dCol int
}

// Enumeration order matters: it fixes heap insertion order and with it the
// tie-break outcome between equal-f cells.
var (
	axisDirections = []direction{
		{-1, 0}, // up
		{0, -1}, // left
		{1, 0},  // down
		{0, 1},  // right
	}
	diagonalDirections = []direction{
		{-1, -1}, // up-left
		{1, -1},  // down-left
		{-1, 1},  // up-right
		{1, 1},   // down-right
	}
)

// Neighbors returns the in-bounds, non-wall cells adjacent to pos in the
// order up, left, down, right, then up-left, down-left, up-right, down-right
// when diagonal movement is allowed.
func Neighbors(g *Grid, pos Position, allowDiagonal bool) []Position {
	capacity := len(axisDirections)
	if allowDiagonal {
		capacity += len(diagonalDirections)
	}
	out := make([]Position, 0, capacity)

	out = appendPassable(out, g, pos, axisDirections)
	if allowDiagonal {
		out = appendPassable(out, g, pos, diagonalDirections)
	}
	return out
}

func appendPassable(out []Position, g *Grid, pos Position, dirs []direction) []Position {
	for _, d := range dirs {
		next := pos.Add(d.dRow, d.dCol)
		if g.InBounds(next) && g.At(next).Passable() {
			out = append(out, next)
		}
	}
	return out
}

// IsDiagonalStep reports whether a and b are diagonally adjacent.
func IsDiagonalStep(a, b Position) bool {
	return a.Manhattan(b) == 2 && a.Row != b.Row && a.Col != b.Col
}
