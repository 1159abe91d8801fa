package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/core"
	"github.com/vovakirdan/tui-pathfinder/internal/maze"
	"github.com/vovakirdan/tui-pathfinder/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a maze interactively",
	Long: `Start pathfinder in interactive menu mode.

Pick a maze, choose the heuristic and movement, then watch the search.
Leaving the visualizer with Esc returns to the picker.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Run history
  Q            - Quit

Examples:
  pathfinder menu
  pathfinder menu --mazes ./mazes
  pathfinder menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, os.Stderr)

	mazes, err := maze.All(config.ExpandHome(flagMazeDir))
	if err != nil {
		fail("loading mazes: %v", err)
	}

	store := openStore(cfg, logger)
	defer closeStore(store, logger)

	sessionLog, closeLog := sessionLogger(cfg)
	defer closeLog()

	width, height := terminalSize()
	rt := core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		StepInterval: cfg.Playback.Interval(),
	}

	// Menu loop
	for {
		result, err := tui.RunPicker(mazes, rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rt = result.Config

		if result.Quit {
			break
		}

		if result.WantsHistory {
			goBack, histErr := tui.RunHistory(runStore(store), mazes, rt.ScreenW, rt.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from history
		}

		if result.Maze == nil {
			break
		}
		m := *result.Maze

		search, setupErr := tui.RunSetup(m.Name, tui.SearchFor(cfg.Search, m), rt)
		if setupErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", setupErr)
			continue
		}

		// User pressed back or quit
		if search == nil {
			continue
		}

		goBack, runErr := tui.Run(tui.Settings{
			Maze:     m,
			Search:   *search,
			Playback: cfg.Playback,
			Runtime:  rt,
			Store:    runStore(store),
			Logger:   sessionLog,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running visualizer: %v\n", runErr)
		}
		if !goBack {
			break
		}
	}
}
