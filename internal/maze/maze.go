// Package maze provides maze loading for the pathfinder.
// This package depends on grid but grid does not depend on maze.
package maze

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-pathfinder/internal/grid"
	"github.com/vovakirdan/tui-pathfinder/internal/maze/formats"
)

// ErrNotFound is returned when no maze has the requested ID.
var ErrNotFound = errors.New("maze: not found")

// BlankID is the ID given to boards built from the grid configuration.
const BlankID = "blank"

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Maze represents a complete maze definition.
type Maze struct {
	ID          string
	Name        string
	Description string
	Rows        int
	Cols        int
	Start       grid.Position
	End         grid.Position
	Heuristic   string // suggested heuristic, may be empty
	Diagonal    *bool  // suggested movement, nil when unset
	Metadata    map[string]string
	FilePath    string // empty for built-ins
	Builtin     bool

	layout *grid.Grid
}

// Grid returns a fresh copy of the maze layout.
func (m *Maze) Grid() *grid.Grid {
	return m.layout.Clone()
}

// Walls returns the number of wall cells in the layout.
func (m *Maze) Walls() int {
	return m.layout.CountWalls()
}

// Export encodes the maze in the YAML file format.
func (m *Maze) Export() ([]byte, error) {
	return formats.MarshalYAML(formats.Maze{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Layout:      grid.Layout{Grid: m.layout, Start: m.Start, End: m.End, HasStart: true, HasEnd: true},
		Heuristic:   m.Heuristic,
		Diagonal:    m.Diagonal,
		Metadata:    m.Metadata,
	})
}

// Blank creates an empty rows x cols maze with the given endpoints.
func Blank(rows, cols int, start, end grid.Position) Maze {
	g := grid.New(rows, cols)
	g.Set(start, grid.Start)
	g.Set(end, grid.End)
	return Maze{
		ID:     BlankID,
		Name:   "Blank",
		Rows:   rows,
		Cols:   cols,
		Start:  start,
		End:    end,
		layout: g,
	}
}

func fromParsed(parsed formats.Maze, path string) Maze {
	g := parsed.Layout.Grid
	return Maze{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Description: parsed.Description,
		Rows:        g.Rows(),
		Cols:        g.Cols(),
		Start:       parsed.Layout.Start,
		End:         parsed.Layout.End,
		Heuristic:   parsed.Heuristic,
		Diagonal:    parsed.Diagonal,
		Metadata:    parsed.Metadata,
		FilePath:    path,
		layout:      g,
	}
}

// Loader handles loading mazes from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new maze loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all maze files.
// Returns mazes sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Maze, error) {
	var mazes []Maze

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		m, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		mazes = append(mazes, m)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(mazes)
	return mazes, nil
}

// LoadFile loads a single maze file.
func (l *Loader) LoadFile(path string) (Maze, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Maze{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Maze{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return fromParsed(parsed, path), nil
}

// LoadByID loads a specific maze by ID.
func (l *Loader) LoadByID(id string) (Maze, error) {
	mazes, err := l.LoadAll()
	if err != nil {
		return Maze{}, err
	}

	for _, m := range mazes {
		if m.ID == id {
			return m, nil
		}
	}

	return Maze{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all maze IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	mazes, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(mazes))
	for i, m := range mazes {
		ids[i] = m.ID
	}
	return ids, nil
}

// Builtins returns the embedded mazes sorted by ID.
func Builtins() []Maze {
	var mazes []Maze
	entries, _ := fs.ReadDir(builtinFS, "builtin")
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			continue
		}
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			continue
		}
		m := fromParsed(parsed, "")
		m.Builtin = true
		mazes = append(mazes, m)
	}
	sortByID(mazes)
	return mazes
}

// All returns the mazes found in dir followed by the built-ins whose IDs
// the directory does not override. An empty or missing dir yields only
// the built-ins.
func All(dir string) ([]Maze, error) {
	var mazes []Maze
	seen := make(map[string]bool)
	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			found, err := NewLoader(dir).LoadAll()
			if err != nil {
				return nil, err
			}
			for _, m := range found {
				seen[m.ID] = true
				mazes = append(mazes, m)
			}
		}
	}
	for _, m := range Builtins() {
		if !seen[m.ID] {
			mazes = append(mazes, m)
		}
	}
	sortByID(mazes)
	return mazes, nil
}

// Find looks a maze up in dir first, then among the built-ins.
func Find(id, dir string) (Maze, error) {
	mazes, err := All(dir)
	if err != nil {
		return Maze{}, err
	}
	for _, m := range mazes {
		if m.ID == id {
			return m, nil
		}
	}
	return Maze{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func sortByID(mazes []Maze) {
	sort.Slice(mazes, func(i, j int) bool {
		return mazes[i].ID < mazes[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Maze, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Maze{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
