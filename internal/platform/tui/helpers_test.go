package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/core"
	"github.com/vovakirdan/tui-pathfinder/internal/maze"
	"github.com/vovakirdan/tui-pathfinder/internal/storage"
)

// fakeStore keeps runs in memory.
type fakeStore struct {
	runs []storage.Run
	err  error
}

func (s *fakeStore) SaveRun(run storage.Run) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	run.ID = fmt.Sprintf("run-%d", len(s.runs)+1)
	s.runs = append(s.runs, run)
	return run.ID, nil
}

func (s *fakeStore) RunsForMaze(mazeID string, limit int) ([]storage.Run, error) {
	var out []storage.Run
	for _, r := range s.runs {
		if r.MazeID == mazeID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) RecentRuns(limit int) ([]storage.Run, error) {
	var out []storage.Run
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

func (s *fakeStore) GetMazeStats(mazeID string) (*storage.MazeStats, error) {
	stats := &storage.MazeStats{MazeID: mazeID}
	expanded := 0
	for _, r := range s.runs {
		if r.MazeID != mazeID {
			continue
		}
		stats.Runs++
		expanded += r.Expanded
		if r.Found {
			stats.Solved++
			if stats.BestCost == 0 || r.PathCost < stats.BestCost {
				stats.BestCost = r.PathCost
			}
		}
	}
	if stats.Runs > 0 {
		stats.AvgExpanded = float64(expanded) / float64(stats.Runs)
	}
	return stats, nil
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func builtin(t *testing.T, id string) maze.Maze {
	t.Helper()
	for _, m := range maze.Builtins() {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("built-in maze %q not found", id)
	return maze.Maze{}
}

func wideRuntime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW = 140
	cfg.ScreenH = 40
	return cfg
}

func newTestModel(t *testing.T, m maze.Maze, store RunStore) Model {
	t.Helper()
	return NewModel(Settings{
		Maze:    m,
		Search:  SearchFor(config.Default().Search, m),
		Runtime: wideRuntime(),
		Store:   store,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	vm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return vm, cmd
}
