package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfinder/internal/astar"
	"github.com/vovakirdan/tui-pathfinder/internal/grid"
	"github.com/vovakirdan/tui-pathfinder/internal/platform/tui"
	"github.com/vovakirdan/tui-pathfinder/internal/storage"
)

var (
	solveSearch searchFlags
	flagTrace   bool
	flagSave    bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [maze]",
	Short: "Solve a maze and print the path",
	Long: `Run the search to completion without the visualizer and print the
maze with the path marked as '*', followed by the distance and search
statistics.

Examples:
  pathfinder solve classic
  pathfinder solve spiral --heuristic manhattan --diagonal=false
  pathfinder solve open --trace
  pathfinder solve classic --save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSolve,
}

func init() {
	solveSearch.register(solveCmd)
	solveCmd.Flags().BoolVar(&flagTrace, "trace", false, "Log every search step")
	solveCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the history database")
}

func runSolve(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, os.Stderr)
	if flagTrace {
		logger.SetLevel(log.DebugLevel)
	}

	m := mustResolveMaze(cfg, args)

	search, err := solveSearch.apply(cmd, tui.SearchFor(cfg.Search, m))
	if err != nil {
		fail("%v", err)
	}

	engine, err := astar.New(m.Grid(), m.Start, m.End, search.Options()...)
	if err != nil {
		fail("%v", err)
	}

	final := drain(engine, logger, flagTrace)
	stats := engine.Stats()
	opts := engine.Options()

	fmt.Printf("%s (%dx%d)\n", m.Name, m.Rows, m.Cols)
	fmt.Println()
	fmt.Println(renderSolution(engine.Grid(), final.Path))
	fmt.Println()

	if final.Found {
		fmt.Printf("Distance:  %.2f (%d cells)\n", stats.PathCost, stats.PathLength)
	} else {
		fmt.Println("Distance:  none, the goal is unreachable")
	}
	fmt.Printf("Search:    %s, %s, tie-break %s\n", opts.Heuristic, movement(opts.AllowDiagonal), opts.TieBreak)
	fmt.Printf("Expanded:  %d cells in %d steps\n", stats.Expanded, stats.Steps)
	fmt.Printf("Frontier:  peaked at %d\n", stats.MaxFrontier)

	if !flagSave {
		return
	}

	store := openStore(cfg, logger)
	if store == nil {
		fail("run history is unavailable")
	}
	defer closeStore(store, logger)

	id, err := store.SaveRun(storage.Run{
		MazeID:      m.ID,
		Heuristic:   string(opts.Heuristic),
		Diagonal:    opts.AllowDiagonal,
		TieBreak:    string(opts.TieBreak),
		Found:       final.Found,
		PathLength:  stats.PathLength,
		PathCost:    stats.PathCost,
		Expanded:    stats.Expanded,
		Steps:       stats.Steps,
		MaxFrontier: stats.MaxFrontier,
		Walls:       engine.Grid().CountWalls(),
		Mode:        storage.ModeBatch,
	})
	if err != nil {
		logger.Error("could not save run", "error", err)
		return
	}
	fmt.Printf("Saved run %s\n", id)
}

// drain runs the engine to completion. With trace set, every expansion is
// logged at debug level.
func drain(engine *astar.Engine, logger *log.Logger, trace bool) astar.StepResult {
	if !trace {
		return engine.Drain()
	}

	var r astar.StepResult
	for !engine.Finished() {
		r = engine.Step()
		if !r.HasCurrent {
			continue
		}
		rec := engine.Record(r.Current)
		logger.Debug("expand",
			"step", engine.Stats().Steps,
			"cell", r.Current,
			"g", rec.G,
			"f", rec.F,
			"open", len(engine.OpenSet()),
		)
	}
	if !r.Finished {
		r = engine.Step()
	}
	return r
}

// renderSolution draws the layout with path cells marked '*'. Endpoints
// keep their own characters.
func renderSolution(g *grid.Grid, path []grid.Position) string {
	onPath := make(map[grid.Key]bool, len(path))
	for _, p := range path {
		onPath[p.Key()] = true
	}

	var b strings.Builder
	for row := 0; row < g.Rows(); row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < g.Cols(); col++ {
			p := grid.P(row, col)
			cell := g.At(p)
			if onPath[p.Key()] && cell == grid.Empty {
				b.WriteRune('*')
				continue
			}
			b.WriteRune(cell.Rune())
		}
	}
	return b.String()
}

func movement(diagonal bool) string {
	if diagonal {
		return "8-way"
	}
	return "4-way"
}
