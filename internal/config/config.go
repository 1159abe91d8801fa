// Package config provides YAML-based configuration loading and speed
// presets for the pathfinder visualizer and CLI.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pathfinder/internal/astar"
	"github.com/vovakirdan/tui-pathfinder/internal/grid"
	"github.com/vovakirdan/tui-pathfinder/internal/heuristic"
)

// Config contains all configuration for the pathfinder.
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Search   SearchConfig   `yaml:"search"`
	Playback PlaybackConfig `yaml:"playback"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// GridConfig defines the blank board used when no maze is selected.
type GridConfig struct {
	Rows  int         `yaml:"rows"`
	Cols  int         `yaml:"cols"`
	Start PointConfig `yaml:"start"`
	End   PointConfig `yaml:"end"`
	Maze  string      `yaml:"maze"` // maze ID to open instead of the blank board
}

// PointConfig is a row/column pair.
type PointConfig struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Position converts the point to a grid position.
func (p PointConfig) Position() grid.Position {
	return grid.P(p.Row, p.Col)
}

// SearchConfig defines the default search options.
type SearchConfig struct {
	Heuristic string `yaml:"heuristic"`
	Diagonal  bool   `yaml:"diagonal"`
	TieBreak  string `yaml:"tie_break"`
}

// PlaybackConfig defines animation pacing.
type PlaybackConfig struct {
	StepMS    int         `yaml:"step_ms"`
	MinStepMS int         `yaml:"min_step_ms"`
	MaxStepMS int         `yaml:"max_step_ms"`
	Preset    SpeedPreset `yaml:"preset"` // overrides step_ms when set
}

// StorageConfig defines where run history is kept.
type StorageConfig struct {
	DBPath   string `yaml:"db_path"`
	Disabled bool   `yaml:"disabled"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks that the configuration describes a usable board and
// search. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return invalid("grid must be at least 1x1, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	bounds := grid.New(c.Grid.Rows, c.Grid.Cols)
	if !bounds.InBounds(c.Grid.Start.Position()) {
		return invalid("grid start %v is outside %dx%d", c.Grid.Start.Position(), c.Grid.Rows, c.Grid.Cols)
	}
	if !bounds.InBounds(c.Grid.End.Position()) {
		return invalid("grid end %v is outside %dx%d", c.Grid.End.Position(), c.Grid.Rows, c.Grid.Cols)
	}

	if _, err := heuristic.ParseKind(c.Search.Heuristic); err != nil {
		return invalid("search heuristic: %v", err)
	}
	if _, err := astar.ParseTieBreak(c.Search.TieBreak); err != nil {
		return invalid("search tie_break: %v", err)
	}

	p := c.Playback
	if p.MinStepMS <= 0 || p.MaxStepMS < p.MinStepMS {
		return invalid("playback range [%d, %d] ms is empty", p.MinStepMS, p.MaxStepMS)
	}
	if p.StepMS < p.MinStepMS || p.StepMS > p.MaxStepMS {
		return invalid("playback step_ms %d outside [%d, %d]", p.StepMS, p.MinStepMS, p.MaxStepMS)
	}
	if p.Preset != "" && !IsSpeedPreset(p.Preset) {
		return invalid("unknown playback preset %q", p.Preset)
	}

	if !c.Storage.Disabled && c.Storage.DBPath == "" {
		return invalid("storage db_path is empty")
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return invalid("log level %q", c.Log.Level)
		}
	}
	return nil
}

// SearchOptions converts the search section into engine options.
func (c Config) SearchOptions() []astar.Option {
	return c.Search.Options()
}

// Options converts the search settings into engine options.
// Unknown names are passed through and rejected when the engine is built.
func (s SearchConfig) Options() []astar.Option {
	kind, err := heuristic.ParseKind(s.Heuristic)
	if err != nil {
		kind = heuristic.Kind(s.Heuristic)
	}
	tb, err := astar.ParseTieBreak(s.TieBreak)
	if err != nil {
		tb = astar.TieBreak(s.TieBreak)
	}
	return []astar.Option{
		astar.WithHeuristic(kind),
		astar.WithDiagonal(s.Diagonal),
		astar.WithTieBreak(tb),
	}
}

// LogLevel returns the configured level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
