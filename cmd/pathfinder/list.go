package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/maze"
)

var flagExport string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available mazes",
	Long: `Shows the built-in mazes and those found in --mazes.

With --export, prints the named maze as a YAML file that can be edited
and loaded back through --mazes.

Examples:
  pathfinder list
  pathfinder list --mazes ./mazes
  pathfinder list --export spiral > mazes/my-spiral.yaml`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagExport, "export", "", "Print the maze with this ID as YAML")
}

func runList(_ *cobra.Command, _ []string) {
	dir := config.ExpandHome(flagMazeDir)

	if flagExport != "" {
		m, err := maze.Find(flagExport, dir)
		if err != nil {
			fail("%v", err)
		}
		data, err := m.Export()
		if err != nil {
			fail("exporting %s: %v", m.ID, err)
		}
		_, _ = os.Stdout.Write(data)
		return
	}

	mazes, err := maze.All(dir)
	if err != nil {
		fail("loading mazes: %v", err)
	}

	if len(mazes) == 0 {
		fmt.Println("No mazes available.")
		return
	}

	fmt.Println("Available mazes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range mazes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %-5s  %-16s  %s\n", maxIDLen, "ID", "Size", "Walls", "Hints", "Name")
	fmt.Printf("  %-*s  %-7s  %-5s  %-16s  %s\n", maxIDLen, "--", "----", "-----", "-----", "----")

	// Print mazes
	for _, m := range mazes {
		name := m.Name
		if !m.Builtin {
			name += " (" + m.FilePath + ")"
		}
		size := fmt.Sprintf("%dx%d", m.Rows, m.Cols)
		fmt.Printf("  %-*s  %-7s  %-5d  %-16s  %s\n", maxIDLen, m.ID, size, m.Walls(), hints(m), name)
	}

	fmt.Println()
	fmt.Println("Run 'pathfinder play <id>' to open a maze.")
}

// hints summarizes a maze's suggested search settings.
func hints(m maze.Maze) string {
	h := m.Heuristic
	if h == "" {
		h = "-"
	}
	if m.Diagonal != nil {
		h += ", " + movement(*m.Diagonal)
	}
	return h
}
