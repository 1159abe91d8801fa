// Package grid provides the rectangular board the pathfinder searches over:
// cell topology, neighbor enumeration, position keys and the per-cell
// search metadata the engine keeps alongside it.
//
// It has no external dependencies so search logic stays pure and testable.
package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a cell coordinate. Row increases downward, Col to the right.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns the canonical "row,col" form.
func (p Position) String() string {
	return strconv.Itoa(p.Row) + "," + strconv.Itoa(p.Col)
}

// Equal returns true if both positions name the same cell.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// Add returns p offset by (dRow, dCol).
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// Key returns the identity key of p.
func (p Position) Key() Key {
	return Encode(p.Row, p.Col)
}

// Key is a collision-free integer identity for a Position.
// The row occupies the high 32 bits and the column the low 32 bits, so any
// pair of int32 coordinates round-trips through Encode and Decode.
type Key uint64

// Encode packs (row, col) into a Key.
func Encode(row, col int) Key {
	return Key(uint64(uint32(int32(row)))<<32 | uint64(uint32(int32(col))))
}

// Decode unpacks a Key back into (row, col).
func (k Key) Decode() (row, col int) {
	return int(int32(uint32(k >> 32))), int(int32(uint32(k)))
}

// Position returns the position this key was encoded from.
func (k Key) Position() Position {
	row, col := k.Decode()
	return Position{Row: row, Col: col}
}

// String returns the "row,col" form of the decoded position.
func (k Key) String() string {
	return k.Position().String()
}

// ParseKey parses the "row,col" form produced by Position.String.
func ParseKey(s string) (Key, error) {
	rowStr, colStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, fmt.Errorf("grid: malformed key %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return 0, fmt.Errorf("grid: malformed row in key %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return 0, fmt.Errorf("grid: malformed col in key %q: %w", s, err)
	}
	return Encode(row, col), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
