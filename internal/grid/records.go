package grid

import "math"

// SearchRecord is the per-cell search metadata.
type SearchRecord struct {
	G float64 // Cost of the best known path from start
	H float64 // Heuristic estimate to the goal
	F float64 // G + H
}

// NewRecord returns the record of a cell no search has reached yet.
func NewRecord() SearchRecord {
	return SearchRecord{G: math.Inf(1), H: 0, F: math.Inf(1)}
}

// Reached reports whether the record holds a finite cost.
func (r SearchRecord) Reached() bool {
	return !math.IsInf(r.G, 1)
}

// Records maps positions to their search metadata. It lives apart from the
// grid topology so a search can be reset without copying walls.
type Records struct {
	m map[Position]SearchRecord
}

// NewRecords creates an empty record table.
func NewRecords() *Records {
	return &Records{m: make(map[Position]SearchRecord)}
}

// Get returns the record for p, or the unreached record if none is stored.
func (r *Records) Get(p Position) SearchRecord {
	if rec, ok := r.m[p]; ok {
		return rec
	}
	return NewRecord()
}

// Set stores the record for p.
func (r *Records) Set(p Position, rec SearchRecord) {
	r.m[p] = rec
}

// Len returns the number of cells with a stored record.
func (r *Records) Len() int {
	return len(r.m)
}

// Reset drops every stored record.
func (r *Records) Reset() {
	clear(r.m)
}

// Parents is the back-reference table used for path reconstruction.
// Each entry points a cell at its predecessor on the best known path.
type Parents struct {
	m map[Position]Position
}

// NewParents creates an empty parent table.
func NewParents() *Parents {
	return &Parents{m: make(map[Position]Position)}
}

// Set records parent as the predecessor of p.
func (t *Parents) Set(p, parent Position) {
	t.m[p] = parent
}

// Get returns the predecessor of p.
func (t *Parents) Get(p Position) (Position, bool) {
	parent, ok := t.m[p]
	return parent, ok
}

// Len returns the number of cells with a predecessor.
func (t *Parents) Len() int {
	return len(t.m)
}

// Reset drops every entry.
func (t *Parents) Reset() {
	clear(t.m)
}

// Path follows predecessors from end back to a cell without one and
// returns the cells in start-to-end order. The walk is bounded by the
// table size so a corrupted table cannot loop forever.
func (t *Parents) Path(end Position) []Position {
	path := []Position{end}
	cur := end
	for range len(t.m) {
		prev, ok := t.m[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Acyclic reports whether following predecessors from every cell always
// reaches a root.
func (t *Parents) Acyclic() bool {
	// 0 = unvisited, 1 = on current walk, 2 = known to reach a root
	state := make(map[Position]uint8, len(t.m))
	for start := range t.m {
		if state[start] == 2 {
			continue
		}
		var walk []Position
		cur := start
		for {
			if state[cur] == 1 {
				return false
			}
			if state[cur] == 2 {
				break
			}
			state[cur] = 1
			walk = append(walk, cur)
			next, ok := t.m[cur]
			if !ok {
				break
			}
			cur = next
		}
		for _, p := range walk {
			state[p] = 2
		}
	}
	return true
}
