package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pathfinder/internal/astar"
	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/grid"
	"github.com/vovakirdan/tui-pathfinder/internal/heuristic"
	"github.com/vovakirdan/tui-pathfinder/internal/maze"
	"github.com/vovakirdan/tui-pathfinder/internal/storage"
)

// corridor is a 3x5 open board with the endpoints on the middle row.
func corridor() maze.Maze {
	return maze.Blank(3, 5, grid.P(1, 0), grid.P(1, 4))
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Settings{})

	if m.grid.Rows() != 20 || m.grid.Cols() != 35 {
		t.Errorf("Expected default 20x35 board, got %dx%d", m.grid.Rows(), m.grid.Cols())
	}
	if m.heuristic != heuristic.KindManhattan {
		t.Errorf("Expected manhattan heuristic, got %s", m.heuristic)
	}
	if m.tieBreak != astar.TieBreakHeap {
		t.Errorf("Expected heap tie-break, got %s", m.tieBreak)
	}
	if m.stepMS != 50 {
		t.Errorf("Expected 50ms steps, got %d", m.stepMS)
	}
	if m.engine != nil {
		t.Error("Engine should not exist before the first play")
	}
	if m.cursor != m.maze.Start {
		t.Errorf("Cursor should start on the start cell, got %v", m.cursor)
	}
}

func TestPlayRunsToCompletionAndSavesOnce(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(t, corridor(), store)

	m, cmd := update(t, m, keySpace)
	if cmd == nil {
		t.Fatal("Play should schedule a tick")
	}
	if m.engine == nil || !m.playing {
		t.Fatal("Play should create the engine and start playing")
	}

	gen := m.gen
	for i := 0; i < 100 && m.playing; i++ {
		m, cmd = update(t, m, TickMsg{Gen: gen})
		if m.playing && cmd == nil {
			t.Fatal("A running search should schedule the next tick")
		}
	}

	if m.playing {
		t.Fatal("Search should finish within 100 ticks")
	}
	if !m.engine.Found() {
		t.Fatal("Expected a path on an open board")
	}
	if len(store.runs) != 1 {
		t.Fatalf("Expected 1 saved run, got %d", len(store.runs))
	}

	run := store.runs[0]
	if run.MazeID != maze.BlankID || run.Mode != storage.ModeAnimated || run.PathLength != 5 {
		t.Errorf("Unexpected run: %+v", run)
	}
	if m.lastRunID != "run-1" {
		t.Errorf("Expected last run ID run-1, got %q", m.lastRunID)
	}

	// A late tick from the finished session changes nothing
	m, cmd = update(t, m, TickMsg{Gen: gen})
	if cmd != nil {
		t.Error("No tick should be scheduled after the search finished")
	}
	if len(store.runs) != 1 {
		t.Errorf("Run should be saved once, got %d", len(store.runs))
	}
}

func TestPauseDropsStaleTicks(t *testing.T) {
	m := newTestModel(t, corridor(), nil)

	m, _ = update(t, m, keySpace)
	staleGen := m.gen

	m, _ = update(t, m, keySpace) // pause
	if m.playing {
		t.Fatal("Second space should pause")
	}

	steps := m.engine.Stats().Steps
	m, cmd := update(t, m, TickMsg{Gen: staleGen})
	if cmd != nil {
		t.Error("Stale tick should not schedule another")
	}
	if m.engine.Stats().Steps != steps {
		t.Error("Stale tick should not advance the search")
	}

	m, _ = update(t, m, keySpace) // resume
	if !m.playing || m.gen == staleGen {
		t.Fatal("Resume should start a new tick generation")
	}

	m, cmd = update(t, m, TickMsg{Gen: m.gen})
	if cmd == nil {
		t.Error("Current tick should schedule the next one")
	}
	if m.engine.Stats().Steps != steps+1 {
		t.Errorf("Expected %d steps, got %d", steps+1, m.engine.Stats().Steps)
	}
}

func TestSingleStep(t *testing.T) {
	m := newTestModel(t, corridor(), nil)

	m, cmd := update(t, m, keyRunes("n"))
	if cmd != nil {
		t.Error("Single step should not schedule ticks")
	}
	if m.engine == nil || m.playing {
		t.Fatal("Step should create an engine without playing")
	}
	if m.engine.Stats().Steps != 1 {
		t.Errorf("Expected 1 step, got %d", m.engine.Stats().Steps)
	}
	if !m.last.HasCurrent || m.last.Current != m.maze.Start {
		t.Errorf("First step should expand the start, got %+v", m.last)
	}

	// Stepping while playing pauses first
	m, _ = update(t, m, keySpace)
	m, _ = update(t, m, keyRunes("n"))
	if m.playing {
		t.Error("Step should pause playback")
	}
}

func TestSolveDrainsAndSavesOnce(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(t, builtin(t, "classic"), store)

	m, _ = update(t, m, keyEnter)
	if m.engine == nil || !m.engine.Finished() || !m.engine.Found() {
		t.Fatal("Solve should finish with a path")
	}
	if len(m.last.Path) != 13 {
		t.Errorf("Expected 13-cell path, got %d", len(m.last.Path))
	}
	if !strings.Contains(m.status, "path found") {
		t.Errorf("Unexpected status %q", m.status)
	}

	m, _ = update(t, m, keyEnter)
	if len(store.runs) != 1 {
		t.Fatalf("Expected 1 saved run, got %d", len(store.runs))
	}
	if store.runs[0].Mode != storage.ModeInstant || store.runs[0].MazeID != "classic" {
		t.Errorf("Unexpected run: %+v", store.runs[0])
	}
	if !strings.Contains(m.status, "finished") {
		t.Errorf("Second solve should report the finished search, got %q", m.status)
	}
}

func TestSolveEnclosedRecordsNoPath(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(t, builtin(t, "enclosed"), store)

	m, _ = update(t, m, keyEnter)
	if m.engine.Found() || m.engine.State() != astar.Exhausted {
		t.Fatalf("Expected exhausted search, got %s", m.engine.State())
	}
	if len(store.runs) != 1 || store.runs[0].Found {
		t.Fatalf("Expected one unsolved run, got %+v", store.runs)
	}
	if m.stateLabel() != "no path" {
		t.Errorf("Expected state label 'no path', got %q", m.stateLabel())
	}
}

func TestPlayAfterFinishReplays(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(t, corridor(), store)

	m, _ = update(t, m, keyEnter)
	finished := m.engine

	m, cmd := update(t, m, keySpace)
	if cmd == nil || !m.playing {
		t.Fatal("Play after finishing should start a new search")
	}
	if m.engine == finished {
		t.Error("Replay should use a fresh engine")
	}
	if m.engine.Stats().Steps != 0 {
		t.Errorf("Fresh engine should have no steps, got %d", m.engine.Stats().Steps)
	}
}

func TestWallEditing(t *testing.T) {
	m := newTestModel(t, corridor(), nil)
	target := grid.P(1, 1)

	m, _ = update(t, m, keyRight)
	if m.cursor != target {
		t.Fatalf("Expected cursor at %v, got %v", target, m.cursor)
	}

	m, _ = update(t, m, keyRunes("w"))
	if !m.grid.IsWall(target) {
		t.Fatal("w should place a wall while editing")
	}

	// Walls are locked while a search exists
	m, _ = update(t, m, keyEnter)
	if !m.engine.Found() || len(m.last.Path) != 7 {
		t.Fatalf("Expected a 7-cell detour, got %d cells", len(m.last.Path))
	}
	m, _ = update(t, m, keyRunes("w"))
	if !m.grid.IsWall(target) {
		t.Error("Edit should be refused while a search exists")
	}
	if !strings.Contains(m.status, "clear the search") {
		t.Errorf("Unexpected status %q", m.status)
	}

	// Clearing keeps the walls and unlocks editing
	m, _ = update(t, m, keyRunes("x"))
	if m.engine != nil {
		t.Fatal("x should drop the search")
	}
	if !m.grid.IsWall(target) {
		t.Error("Clearing the search should keep walls")
	}
	m, _ = update(t, m, keyRunes("w"))
	if m.grid.IsWall(target) {
		t.Error("w should remove the wall after clearing")
	}
}

func TestEndpointsCannotBeWalled(t *testing.T) {
	m := newTestModel(t, corridor(), nil)

	m, _ = update(t, m, keyRunes("w")) // cursor is on the start
	if m.grid.IsWall(m.maze.Start) {
		t.Error("Start cell should never become a wall")
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	m := newTestModel(t, corridor(), nil)

	for range 10 {
		m, _ = update(t, m, keyUp)
		m, _ = update(t, m, keyLeft)
	}
	if m.cursor != grid.P(0, 0) {
		t.Errorf("Expected cursor at 0,0, got %v", m.cursor)
	}

	for range 10 {
		m, _ = update(t, m, keyDown)
		m, _ = update(t, m, keyRight)
	}
	if m.cursor != grid.P(2, 4) {
		t.Errorf("Expected cursor at 2,4, got %v", m.cursor)
	}
}

func TestResetRestoresMaze(t *testing.T) {
	m := newTestModel(t, builtin(t, "classic"), nil)
	walls := m.grid.CountWalls()

	m, _ = update(t, m, keyRight)
	m, _ = update(t, m, keyRunes("w"))
	if m.grid.CountWalls() != walls+1 {
		t.Fatalf("Expected %d walls after edit, got %d", walls+1, m.grid.CountWalls())
	}

	m, _ = update(t, m, keyEnter)
	m, _ = update(t, m, keyRunes("r"))

	if m.engine != nil {
		t.Error("Reset should drop the engine")
	}
	if m.grid.CountWalls() != walls {
		t.Errorf("Reset should restore %d walls, got %d", walls, m.grid.CountWalls())
	}
}

func TestSettingsChangesClearSearch(t *testing.T) {
	tests := []struct {
		name  string
		key   tea.KeyMsg
		check func(m Model) bool
	}{
		{"heuristic", keyRunes("h"), func(m Model) bool { return m.heuristic == heuristic.KindOctile }},
		{"diagonal", keyRunes("d"), func(m Model) bool { return m.diagonal }},
		{"tie-break", keyRunes("t"), func(m Model) bool { return m.tieBreak == astar.TieBreakFIFO }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t, corridor(), nil)
			m, _ = update(t, m, keyRunes("n"))

			m, _ = update(t, m, tc.key)
			if !tc.check(m) {
				t.Errorf("Setting %s did not change", tc.name)
			}
			if m.engine != nil {
				t.Error("Changing a setting should clear the search")
			}
			if !strings.Contains(m.status, "search cleared") {
				t.Errorf("Unexpected status %q", m.status)
			}

			// The next search uses the new setting
			m, _ = update(t, m, keyRunes("n"))
			if got := m.engine.Options(); got.Heuristic != m.heuristic || got.AllowDiagonal != m.diagonal || got.TieBreak != m.tieBreak {
				t.Errorf("Engine options %+v do not match the model", got)
			}
		})
	}
}

func TestSpeedControls(t *testing.T) {
	m := NewModel(Settings{
		Maze:     corridor(),
		Playback: config.PlaybackConfig{StepMS: 50, MinStepMS: 10, MaxStepMS: 100},
		Runtime:  wideRuntime(),
	})

	m, _ = update(t, m, keyRunes("+"))
	if m.stepMS != 33 {
		t.Errorf("Expected 33ms after faster, got %d", m.stepMS)
	}

	for range 10 {
		m, _ = update(t, m, keyRunes("+"))
	}
	if m.stepMS != 10 {
		t.Errorf("Expected clamp to 10ms, got %d", m.stepMS)
	}

	for range 10 {
		m, _ = update(t, m, keyRunes("-"))
	}
	if m.stepMS != 100 {
		t.Errorf("Expected clamp to 100ms, got %d", m.stepMS)
	}
	if m.interval().Milliseconds() != 100 {
		t.Errorf("Expected 100ms interval, got %v", m.interval())
	}
}

func TestMouseEditing(t *testing.T) {
	m := newTestModel(t, corridor(), nil)

	press := func(p grid.Position) tea.MouseMsg {
		x, y := cellOrigin(p)
		return tea.MouseMsg{X: x, Y: y + boardTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}
	motion := func(p grid.Position) tea.MouseMsg {
		x, y := cellOrigin(p)
		return tea.MouseMsg{X: x + 1, Y: y + boardTop, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	}

	m, _ = update(t, m, press(grid.P(0, 2)))
	if !m.grid.IsWall(grid.P(0, 2)) {
		t.Fatal("Click should toggle a wall")
	}
	if m.cursor != grid.P(0, 2) {
		t.Errorf("Click should move the cursor, got %v", m.cursor)
	}

	m, _ = update(t, m, motion(grid.P(1, 2)))
	m, _ = update(t, m, motion(grid.P(2, 2)))
	if !m.grid.IsWall(grid.P(1, 2)) || !m.grid.IsWall(grid.P(2, 2)) {
		t.Error("Drag should paint walls")
	}

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, motion(grid.P(2, 3)))
	if m.grid.IsWall(grid.P(2, 3)) {
		t.Error("Motion after release should not paint")
	}

	// Clicking the same cell again removes the wall
	m, _ = update(t, m, press(grid.P(0, 2)))
	if m.grid.IsWall(grid.P(0, 2)) {
		t.Error("Second click should clear the wall")
	}

	// Clicks outside the board are ignored
	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.grid.CountWalls() != 2 {
		t.Errorf("Expected 2 walls, got %d", m.grid.CountWalls())
	}

	m, _ = update(t, m, keyRunes("r"))
	m, _ = update(t, m, keyRunes("n"))
	m, _ = update(t, m, press(grid.P(0, 3)))
	if m.grid.IsWall(grid.P(0, 3)) {
		t.Error("Click should be refused while a search exists")
	}
	if m.dragging {
		t.Error("Refused click should not start a drag")
	}
}

func TestLiveSearchIgnoresEdits(t *testing.T) {
	m := newTestModel(t, corridor(), nil)

	m, _ = update(t, m, keyRunes("n"))
	// Mutate the caller-held grid behind the model's back
	m.grid.Set(grid.P(1, 2), grid.Wall)

	m, _ = update(t, m, keyEnter)
	if len(m.last.Path) != 5 {
		t.Errorf("Engine should search its own snapshot, got %d-cell path", len(m.last.Path))
	}
}

func TestSaveFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	m := newTestModel(t, corridor(), store)

	m, _ = update(t, m, keyEnter)
	if !m.saved {
		t.Error("Run should be marked as handled even if saving failed")
	}
	if m.lastRunID != "" {
		t.Errorf("Expected no run ID, got %q", m.lastRunID)
	}
	if !m.engine.Found() {
		t.Error("Search result should not depend on storage")
	}
}

func TestHistoryOpensAndCloses(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(t, builtin(t, "classic"), store)
	m, _ = update(t, m, keyEnter)

	m, _ = update(t, m, keyTab)
	if m.history == nil {
		t.Fatal("Tab should open the run history")
	}
	view := m.View()
	if !strings.Contains(view, "RUN HISTORY - Classic") {
		t.Errorf("History view should name the maze:\n%s", view)
	}

	m, cmd := update(t, m, keyEsc)
	if m.history != nil {
		t.Fatal("Esc should close the run history")
	}
	if cmd != nil || m.IsQuitting() || m.BackToMenu() {
		t.Error("Closing the history should return to the visualizer")
	}
}

func TestBackAndQuit(t *testing.T) {
	m := newTestModel(t, corridor(), nil)

	back, cmd := update(t, m, keyEsc)
	if !back.BackToMenu() || cmd == nil {
		t.Error("Esc should request going back")
	}

	quit, cmd := update(t, m, keyRunes("q"))
	if !quit.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if quit.View() != "" {
		t.Error("Quitting view should be empty")
	}

	quit, _ = update(t, m, keyCtrlC)
	if !quit.IsQuitting() {
		t.Error("ctrl+c should quit")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, builtin(t, "classic"), nil)
	m, _ = update(t, m, keyEnter)

	view := m.View()
	for _, want := range []string{"Classic", "A* SEARCH", "LEGEND", "found", "13 cells"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q:\n%s", want, view)
		}
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("Tiny window should show the resize hint")
	}

	// Without room for the panel the status moves into the header
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 12})
	view = m.View()
	if strings.Contains(view, "A* SEARCH") {
		t.Error("Panel should be hidden when it does not fit")
	}
	if !strings.Contains(view, "path found") {
		t.Errorf("Header should carry the status:\n%s", view)
	}
}

func TestSearchForAppliesHints(t *testing.T) {
	base := config.Default().Search

	got := SearchFor(base, builtin(t, "spiral"))
	if got.Heuristic != "octile" || !got.Diagonal {
		t.Errorf("Expected octile with diagonals, got %+v", got)
	}

	got = SearchFor(base, builtin(t, "open"))
	if got != base {
		t.Errorf("Maze without hints should keep base settings, got %+v", got)
	}
}
