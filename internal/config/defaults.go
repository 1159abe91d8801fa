package config

import (
	_ "embed"
)

//go:embed defaults/pathfinder.yaml
var defaultYAML []byte

// Default returns the built-in configuration: a 20x35 board with the start
// at 10,5 and the end at 10,30, manhattan search and 50ms steps.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Rows:  20,
			Cols:  35,
			Start: PointConfig{Row: 10, Col: 5},
			End:   PointConfig{Row: 10, Col: 30},
		},
		Search: SearchConfig{
			Heuristic: "manhattan",
			Diagonal:  false,
			TieBreak:  "heap",
		},
		Playback: PlaybackConfig{
			StepMS:    50,
			MinStepMS: 5,
			MaxStepMS: 1000,
		},
		Storage: StorageConfig{
			DBPath: "~/.pathfinder/runs.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
