package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfinder/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
	flagRunID     string
)

var runsCmd = &cobra.Command{
	Use:   "runs [maze]",
	Short: "Show recorded runs",
	Long: `Display recorded search runs.

Without a maze, lists the most recent runs of every maze followed by a
per-maze summary. With a maze, lists that maze's runs best first and
shows its best run.

Examples:
  pathfinder runs
  pathfinder runs classic --limit 5
  pathfinder runs --id 0b6f0c1e-...
  pathfinder runs classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Maximum number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the runs of the maze, or all runs")
	runsCmd.Flags().StringVar(&flagRunID, "id", "", "Show a single run")
}

func runRuns(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	if cfg.Storage.Disabled {
		fail("run history is disabled in the config")
	}

	// Open run storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fail("opening run history: %v", err)
	}
	defer store.Close()

	mazeID := ""
	if len(args) > 0 {
		mazeID = args[0]
	}

	switch {
	case flagRunsClear:
		clearRuns(store, mazeID)
	case flagRunID != "":
		showRun(store, flagRunID)
	case mazeID != "":
		showMazeRuns(store, mazeID)
	default:
		showRecentRuns(store)
	}
}

func clearRuns(store *storage.Store, mazeID string) {
	n, err := store.ClearRuns(mazeID)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if mazeID == "" {
		fmt.Printf("Deleted %d runs.\n", n)
		return
	}
	fmt.Printf("Deleted %d runs of %s.\n", n, mazeID)
}

func showRun(store *storage.Store, id string) {
	run, err := store.RunByID(id)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if run == nil {
		store.Close()
		fail("no run with id %q", id)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Println()
	fmt.Printf("  Maze:      %s\n", run.MazeID)
	fmt.Printf("  When:      %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("  Mode:      %s\n", run.Mode)
	if run.Session != "" {
		fmt.Printf("  Session:   %s\n", run.Session)
	}
	fmt.Printf("  Search:    %s, %s, tie-break %s\n", run.Heuristic, movement(run.Diagonal), run.TieBreak)
	fmt.Printf("  Walls:     %d\n", run.Walls)
	fmt.Printf("  Result:    %s\n", result(*run))
	fmt.Printf("  Expanded:  %d cells in %d steps, frontier peaked at %d\n", run.Expanded, run.Steps, run.MaxFrontier)
}

func showMazeRuns(store *storage.Store, mazeID string) {
	runs, err := store.RunsForMaze(mazeID, flagRunsLimit)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Printf("Runs - %s\n", mazeID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'pathfinder solve %s --save' to record one.\n", mazeID)
		return
	}

	printRuns(runs)

	stats, err := store.GetMazeStats(mazeID)
	if err == nil {
		fmt.Println()
		fmt.Printf("%d runs, %d solved, avg %.1f expanded\n", stats.Runs, stats.Solved, stats.AvgExpanded)
	}

	best, err := store.BestRun(mazeID)
	if err == nil && best != nil && best.Found {
		fmt.Printf("Best: cost %.2f with %s, %d expanded (%s)\n",
			best.PathCost, best.Heuristic, best.Expanded, best.ID)
	}
}

func showRecentRuns(store *storage.Store) {
	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		store.Close()
		fail("%v", err)
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	printRuns(runs)

	all, err := store.GetAllMazeStats()
	if err != nil || len(all) == 0 {
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println()
	fmt.Printf("  %-12s  %-5s  %-6s  %-9s  %s\n", "Maze", "Runs", "Solved", "Best cost", "Last run")
	fmt.Printf("  %-12s  %-5s  %-6s  %-9s  %s\n", "----", "----", "------", "---------", "--------")
	for _, id := range ids {
		s := all[id]
		best := "-"
		if s.Solved > 0 {
			best = fmt.Sprintf("%.2f", s.BestCost)
		}
		fmt.Printf("  %-12s  %-5d  %-6d  %-9s  %s\n",
			id, s.Runs, s.Solved, best, s.LastRun.Local().Format("2006-01-02 15:04"))
	}
}

// printRuns prints a run table.
func printRuns(runs []storage.Run) {
	fmt.Printf("  %-16s  %-10s  %-9s  %-5s  %-22s  %-8s  %-8s  %s\n",
		"Date", "Maze", "Heuristic", "Moves", "Result", "Expanded", "Mode", "ID")
	fmt.Printf("  %-16s  %-10s  %-9s  %-5s  %-22s  %-8s  %-8s  %s\n",
		"----", "----", "---------", "-----", "------", "--------", "----", "--")

	for _, r := range runs {
		fmt.Printf("  %-16s  %-10s  %-9s  %-5s  %-22s  %-8d  %-8s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.MazeID,
			r.Heuristic,
			movement(r.Diagonal),
			result(r),
			r.Expanded,
			r.Mode,
			r.ID,
		)
	}
}

// result describes a run's outcome.
func result(r storage.Run) string {
	if !r.Found {
		return "no path"
	}
	return fmt.Sprintf("%d cells, cost %.2f", r.PathLength, r.PathCost)
}
