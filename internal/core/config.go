package core

import "time"

// RuntimeConfig contains the settings a visualizer session starts with.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	StepInterval time.Duration // Delay between animated search steps
	Session      string        // SSH user name, empty for local sessions
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		StepInterval: 50 * time.Millisecond,
	}
}
