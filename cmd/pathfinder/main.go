// pathfinder is a terminal visualizer for A* search on grid mazes.
//
// Usage:
//
//	pathfinder list              - List available mazes
//	pathfinder play [maze]       - Open a maze in the visualizer
//	pathfinder menu              - Pick a maze and search settings interactively
//	pathfinder solve [maze]      - Solve a maze without the UI and print the path
//	pathfinder runs [maze]       - Show recorded runs
//	pathfinder serve             - Start SSH server for remote sessions
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.pathfinder/config.yaml)
//	--db <path>         - Run history database (default: ~/.pathfinder/runs.db)
//	--mazes <dir>       - Directory of maze files, searched before the built-ins
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination for the full-screen commands
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/maze"
	"github.com/vovakirdan/tui-pathfinder/internal/platform/tui"
	"github.com/vovakirdan/tui-pathfinder/internal/storage"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagMazeDir    string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "Pathfinder - Watch A* search a maze in your terminal",
	Long: `Pathfinder animates the A* search algorithm on grid mazes.

Open a maze, draw walls, then step through the search and watch the
frontier grow until the path is found.

Available commands:
  list     - Show all available mazes
  play     - Open a maze directly
  menu     - Interactive maze picker
  solve    - Solve a maze and print the result
  runs     - View recorded runs
  serve    - Start SSH server for remote sessions

Examples:
  pathfinder list
  pathfinder play classic
  pathfinder play spiral --heuristic euclidean
  pathfinder solve classic --trace
  pathfinder serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagMazeDir, "mazes", "", "Directory of maze files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for the full-screen commands")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		fail("%v", err)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
		cfg.Storage.Disabled = false
	}
	if flagLogLevel != "" {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			fail("invalid log level %q", flagLogLevel)
		}
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}

func newLogger(cfg config.Config, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pathfinder",
		Level:           cfg.LogLevel(),
	})
}

// sessionLogger returns the logger handed to full-screen programs.
// Stderr shares the terminal with the UI, so without --log-file the
// output is dropped.
func sessionLogger(cfg config.Config) (*log.Logger, func()) {
	if flagLogFile == "" {
		return nil, func() {}
	}
	f, err := os.OpenFile(config.ExpandHome(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fail("cannot open log file: %v", err)
	}
	return newLogger(cfg, f), func() { _ = f.Close() }
}

// openStore opens the run history. Failures are logged and disable history.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	if cfg.Storage.Disabled {
		return nil
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run history database", "path", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close run history database", "error", err)
	}
}

// runStore hands a store to the UI without wrapping a nil pointer.
func runStore(store *storage.Store) tui.RunStore {
	if store == nil {
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, defaulting to 80x24.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// resolveMaze finds the maze named by args. Without an argument it opens
// the configured maze, or the blank board from the grid section.
func resolveMaze(cfg config.Config, args []string) (maze.Maze, error) {
	id := cfg.Grid.Maze
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" || id == maze.BlankID {
		g := cfg.Grid
		return maze.Blank(g.Rows, g.Cols, g.Start.Position(), g.End.Position()), nil
	}
	return maze.Find(id, config.ExpandHome(flagMazeDir))
}

// mustResolveMaze is resolveMaze for commands that cannot continue without one.
func mustResolveMaze(cfg config.Config, args []string) maze.Maze {
	m, err := resolveMaze(cfg, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pathfinder list' to see available mazes.")
		os.Exit(1)
	}
	return m
}
