package grid

// CellType is the static topology of a single cell.
type CellType uint8

const (
	Empty CellType = iota
	Wall
	Start
	End
)

// String returns a human-readable name for the cell type.
func (c CellType) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Rune returns the layout character for the cell type.
func (c CellType) Rune() rune {
	switch c {
	case Wall:
		return '#'
	case Start:
		return 'S'
	case End:
		return 'E'
	default:
		return '.'
	}
}

// Passable reports whether a search may enter the cell.
func (c CellType) Passable() bool {
	return c != Wall
}

// ParseCellType maps a layout character to a cell type.
func ParseCellType(r rune) (CellType, bool) {
	switch r {
	case '.', ' ':
		return Empty, true
	case '#':
		return Wall, true
	case 'S', 's':
		return Start, true
	case 'E', 'e':
		return End, true
	}
	return Empty, false
}

// Grid is a rectangular board of cell types.
// Cells are stored in row-major order: index = row*cols + col.
type Grid struct {
	rows  int
	cols  int
	cells []CellType
}

// New creates a grid with every cell empty.
func New(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]CellType, rows*cols),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Size returns the total number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

func (g *Grid) index(p Position) int {
	return p.Row*g.cols + p.Col
}

// InBounds returns true if p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the cell type at p. Out-of-bounds positions read as walls.
func (g *Grid) At(p Position) CellType {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[g.index(p)]
}

// Set changes the cell type at p. Out-of-bounds positions are ignored.
func (g *Grid) Set(p Position, c CellType) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = c
	}
}

// IsWall reports whether p is a wall or outside the grid.
func (g *Grid) IsWall(p Position) bool {
	return !g.At(p).Passable()
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]CellType, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: cells,
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Position, c CellType)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			p := Position{Row: row, Col: col}
			fn(p, g.cells[g.index(p)])
		}
	}
}

// Find returns the first position holding the given cell type.
func (g *Grid) Find(c CellType) (Position, bool) {
	for i, cell := range g.cells {
		if cell == c {
			return Position{Row: i / g.cols, Col: i % g.cols}, true
		}
	}
	return Position{}, false
}

// CountWalls returns the number of wall cells.
func (g *Grid) CountWalls() int {
	n := 0
	for _, cell := range g.cells {
		if cell == Wall {
			n++
		}
	}
	return n
}

// ToggleWall flips an empty cell to a wall and back.
// Start and end cells are never changed. Returns true if the cell changed.
func (g *Grid) ToggleWall(p Position) bool {
	switch g.At(p) {
	case Empty:
		g.Set(p, Wall)
		return true
	case Wall:
		if !g.InBounds(p) {
			return false
		}
		g.Set(p, Empty)
		return true
	}
	return false
}

// PaintWall turns an empty cell into a wall, as a drag stroke does.
// Returns true if the cell changed.
func (g *Grid) PaintWall(p Position) bool {
	if !g.InBounds(p) || g.At(p) != Empty {
		return false
	}
	g.Set(p, Wall)
	return true
}

// ClearWalls turns every wall back into an empty cell.
func (g *Grid) ClearWalls() {
	for i, cell := range g.cells {
		if cell == Wall {
			g.cells[i] = Empty
		}
	}
}
