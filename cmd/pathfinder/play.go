package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/core"
	"github.com/vovakirdan/tui-pathfinder/internal/platform/tui"
)

var (
	playSearch searchFlags
	flagSpeed  string
	flagMono   bool
)

var playCmd = &cobra.Command{
	Use:   "play [maze]",
	Short: "Open a maze in the visualizer",
	Long: `Open the given maze, or the blank board from the config, in the
search visualizer.

Controls:
  Space        - Play/pause the search
  N            - Single step
  Enter        - Solve instantly
  R / X        - Reset the maze / clear the search
  H / D / T    - Cycle heuristic / toggle diagonals / cycle tie-break
  + / -        - Faster / slower
  Arrows, W    - Move the cursor, toggle a wall (or click and drag)
  Tab          - Run history
  Q/Ctrl+C     - Quit

Speed options:
  slow   - 200ms per step
  normal - 50ms per step
  fast   - 10ms per step

Examples:
  pathfinder play
  pathfinder play classic
  pathfinder play spiral --heuristic euclidean --speed slow
  pathfinder play open --diagonal --tie-break lower-h`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playSearch.register(playCmd)
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
	playCmd.Flags().BoolVar(&flagMono, "mono", false, "Use glyphs only, no colors")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, os.Stderr)

	m := mustResolveMaze(cfg, args)

	search, err := playSearch.apply(cmd, tui.SearchFor(cfg.Search, m))
	if err != nil {
		fail("%v", err)
	}

	if flagSpeed != "" {
		preset := config.SpeedPreset(flagSpeed)
		if !config.IsSpeedPreset(preset) {
			fail("unknown speed %q (use slow, normal or fast)", flagSpeed)
		}
		config.ApplySpeedPreset(&cfg, preset)
	}

	width, height := terminalSize()

	// Open run history - the visualizer works without it
	store := openStore(cfg, logger)
	sessionLog, closeLog := sessionLogger(cfg)

	_, runErr := tui.Run(tui.Settings{
		Maze:     m,
		Search:   search,
		Playback: cfg.Playback,
		Runtime: core.RuntimeConfig{
			ScreenW:      width,
			ScreenH:      height,
			StepInterval: cfg.Playback.Interval(),
		},
		Store:      runStore(store),
		Logger:     sessionLog,
		Monochrome: flagMono,
	})

	// Close store before potential exit
	closeLog()
	closeStore(store, logger)

	if runErr != nil {
		fail("running visualizer: %v", runErr)
	}
}
