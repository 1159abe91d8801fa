package heuristic

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Kind names a registered heuristic.
type Kind string

const (
	KindManhattan Kind = "manhattan"
	KindEuclidean Kind = "euclidean"
	KindDiagonal  Kind = "diagonal"
	KindOctile    Kind = "octile"
)

// ErrUnknown is returned when a heuristic name is not registered.
var ErrUnknown = errors.New("heuristic: unknown heuristic")

// Info describes a registered heuristic.
type Info struct {
	Kind        Kind
	Title       string
	Description string
}

type entry struct {
	info Info
	fn   Func
}

var (
	entries = make(map[Kind]entry)
	mu      sync.RWMutex
)

func init() {
	Register(Info{KindManhattan, "Manhattan", "|dr|+|dc|, exact for 4-way moves"}, Manhattan)
	Register(Info{KindEuclidean, "Euclidean", "straight-line distance"}, Euclidean)
	Register(Info{KindDiagonal, "Diagonal", "max(|dr|,|dc|), approximate with sqrt2 diagonals"}, Diagonal)
	Register(Info{KindOctile, "Octile", "exact for 8-way moves with sqrt2 diagonals"}, Octile)
}

// Register adds a heuristic under info.Kind.
// Panics if the kind is already registered.
func Register(info Info, fn Func) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.Kind]; exists {
		panic(fmt.Sprintf("heuristic: %q already registered", info.Kind))
	}
	entries[info.Kind] = entry{info: info, fn: fn}
}

// Lookup returns the heuristic registered under kind.
func Lookup(kind Kind) (Func, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, kind)
	}
	return e.fn, nil
}

// Exists reports whether kind is registered.
func Exists(kind Kind) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[kind]
	return ok
}

// List returns every registered heuristic, sorted by kind.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})
	return result
}

// ParseKind normalizes a user-supplied name and checks it is registered.
func ParseKind(s string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !Exists(kind) {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return kind, nil
}

// Next returns the kind after k in List order, wrapping around.
func Next(k Kind) Kind {
	infos := List()
	if len(infos) == 0 {
		return k
	}
	for i, info := range infos {
		if info.Kind == k {
			return infos[(i+1)%len(infos)].Kind
		}
	}
	return infos[0].Kind
}
