package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfinder/internal/astar"
	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/heuristic"
)

// searchFlags are the search overrides shared by play and solve.
type searchFlags struct {
	heuristic string
	diagonal  bool
	tieBreak  string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.heuristic, "heuristic", "", "Heuristic: diagonal, euclidean, manhattan, octile")
	cmd.Flags().BoolVar(&f.diagonal, "diagonal", false, "Allow diagonal moves")
	cmd.Flags().StringVar(&f.tieBreak, "tie-break", "", "Tie-break on equal f: heap, fifo, lower-h")
}

// apply layers the flags the user set over base. Flags win over maze
// hints, which win over the config.
func (f *searchFlags) apply(cmd *cobra.Command, base config.SearchConfig) (config.SearchConfig, error) {
	if cmd.Flags().Changed("heuristic") {
		kind, err := heuristic.ParseKind(f.heuristic)
		if err != nil {
			return base, err
		}
		base.Heuristic = string(kind)
	}
	if cmd.Flags().Changed("diagonal") {
		base.Diagonal = f.diagonal
	}
	if cmd.Flags().Changed("tie-break") {
		tb, err := astar.ParseTieBreak(f.tieBreak)
		if err != nil {
			return base, err
		}
		base.TieBreak = string(tb)
	}
	return base, nil
}
