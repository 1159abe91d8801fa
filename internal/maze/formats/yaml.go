// Package formats provides pluggable maze file format parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pathfinder/internal/grid"
)

var (
	// ErrMissingID is returned when a maze file has no id.
	ErrMissingID = errors.New("formats: maze id is required")
	// ErrMissingEndpoint is returned when a layout lacks an S or an E.
	ErrMissingEndpoint = errors.New("formats: layout needs one S and one E")
)

// YAMLMaze represents the YAML structure for a maze file.
type YAMLMaze struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Hints       YAMLHints         `yaml:"hints,omitempty"`
	Layout      string            `yaml:"layout"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLHints are optional search settings suggested by the maze author.
type YAMLHints struct {
	Heuristic string `yaml:"heuristic,omitempty"`
	Diagonal  *bool  `yaml:"diagonal,omitempty"`
}

// Maze represents a parsed maze ready for use.
type Maze struct {
	ID          string
	Name        string
	Description string
	Layout      grid.Layout
	Heuristic   string
	Diagonal    *bool
	Metadata    map[string]string
}

// ParseYAML parses a YAML maze file.
func ParseYAML(data []byte) (Maze, error) {
	var ym YAMLMaze
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Maze{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ym.ID == "" {
		return Maze{}, ErrMissingID
	}

	layout, err := grid.ParseLayoutString(ym.Layout)
	if err != nil {
		return Maze{}, fmt.Errorf("maze %s: %w", ym.ID, err)
	}
	if !layout.HasStart || !layout.HasEnd {
		return Maze{}, fmt.Errorf("maze %s: %w", ym.ID, ErrMissingEndpoint)
	}

	name := ym.Name
	if name == "" {
		name = ym.ID
	}

	return Maze{
		ID:          ym.ID,
		Name:        name,
		Description: ym.Description,
		Layout:      layout,
		Heuristic:   ym.Hints.Heuristic,
		Diagonal:    ym.Hints.Diagonal,
		Metadata:    ym.Metadata,
	}, nil
}

// MarshalYAML encodes a maze back into the file format.
func MarshalYAML(m Maze) ([]byte, error) {
	ym := YAMLMaze{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Hints: YAMLHints{
			Heuristic: m.Heuristic,
			Diagonal:  m.Diagonal,
		},
		Layout:   grid.Format(m.Layout.Grid) + "\n",
		Metadata: m.Metadata,
	}
	return yaml.Marshal(ym)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
