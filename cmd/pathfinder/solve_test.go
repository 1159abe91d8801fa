package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfinder/internal/astar"
	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/grid"
	"github.com/vovakirdan/tui-pathfinder/internal/maze"
)

func TestRenderSolution(t *testing.T) {
	layout, err := grid.ParseLayoutString("S.#.\n..#E\n....")
	if err != nil {
		t.Fatalf("ParseLayoutString: %v", err)
	}

	res, err := astar.Solve(layout.Grid, layout.Start, layout.End)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !res.Found || len(res.Path) != 7 {
		t.Fatalf("Expected a 7-cell path, got %+v", res)
	}

	got := renderSolution(layout.Grid, res.Path)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0][0] != 'S' || lines[1][3] != 'E' {
		t.Errorf("Endpoints should keep their characters:\n%s", got)
	}
	if strings.Count(got, "*") != 5 {
		t.Errorf("Expected 5 path marks, got:\n%s", got)
	}
	if strings.Count(got, "#") != 2 {
		t.Errorf("Walls should be unchanged:\n%s", got)
	}
}

func TestRenderSolutionWithoutPath(t *testing.T) {
	m := maze.Blank(2, 3, grid.P(0, 0), grid.P(1, 2))
	if got := renderSolution(m.Grid(), nil); got != "S..\n..E" {
		t.Errorf("Expected the bare layout, got %q", got)
	}
}

func TestDrainTraceMatchesDrain(t *testing.T) {
	m := maze.Blank(5, 7, grid.P(0, 0), grid.P(4, 6))
	cfg := config.Default()

	plain, err := astar.New(m.Grid(), m.Start, m.End)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	traced, err := astar.New(m.Grid(), m.Start, m.End)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := drain(plain, newLogger(cfg, &strings.Builder{}), false)
	var out strings.Builder
	logger := newLogger(cfg, &out)
	logger.SetLevel(log.DebugLevel)
	got := drain(traced, logger, true)

	if !got.Found || len(got.Path) != len(want.Path) {
		t.Errorf("Traced drain should match, got %d cells want %d", len(got.Path), len(want.Path))
	}
	if plain.Stats() != traced.Stats() {
		t.Errorf("Expected equal stats, got %+v and %+v", traced.Stats(), plain.Stats())
	}
	if n := strings.Count(out.String(), "expand"); n != traced.Stats().Steps {
		t.Errorf("Expected one trace line per step (%d), got %d", traced.Stats().Steps, n)
	}
}

func TestSearchFlagsApply(t *testing.T) {
	base := config.SearchConfig{Heuristic: "octile", Diagonal: true, TieBreak: "heap"}

	tests := []struct {
		name    string
		args    []string
		want    config.SearchConfig
		wantErr bool
	}{
		{"no flags keep base", nil, base, false},
		{"heuristic override", []string{"--heuristic", "Euclidean"}, config.SearchConfig{Heuristic: "euclidean", Diagonal: true, TieBreak: "heap"}, false},
		{"explicit false diagonal", []string{"--diagonal=false"}, config.SearchConfig{Heuristic: "octile", TieBreak: "heap"}, false},
		{"tie-break override", []string{"--tie-break", "fifo"}, config.SearchConfig{Heuristic: "octile", Diagonal: true, TieBreak: "fifo"}, false},
		{"unknown heuristic", []string{"--heuristic", "chebyshev"}, base, true},
		{"unknown tie-break", []string{"--tie-break", "random"}, base, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f searchFlags
			cmd := &cobra.Command{Use: "test"}
			f.register(cmd)
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}

			got, err := f.apply(cmd, base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}
