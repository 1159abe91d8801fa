package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/heuristic"
)

func updateSetup(t *testing.T, m SetupModel, msg tea.Msg) (SetupModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SetupModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SetupModel", next)
	}
	return sm, cmd
}

func newTestSetup() SetupModel {
	return NewSetupModel("Classic", config.Default().Search, 80, 24)
}

func TestSetupStartsWithDefaults(t *testing.T) {
	m := newTestSetup()

	if m.Search() != nil {
		t.Error("Search should be nil while choosing")
	}

	m, cmd := updateSetup(t, m, keyEnter)
	if cmd == nil {
		t.Error("Open maze should finish the setup")
	}
	got := m.Search()
	if got == nil {
		t.Fatal("Expected settings after opening the maze")
	}
	if got.Heuristic != string(heuristic.KindManhattan) || got.Diagonal {
		t.Errorf("Expected unchanged defaults, got %+v", *got)
	}
}

func TestSetupChoosesHeuristic(t *testing.T) {
	m := newTestSetup()

	m, _ = updateSetup(t, m, keyDown)
	m, _ = updateSetup(t, m, keyEnter)
	if !m.inHeuristics {
		t.Fatal("Heuristic entry should open the heuristic list")
	}
	if kind := m.heuristics[m.heuristicCursor].Kind; kind != heuristic.KindManhattan {
		t.Errorf("List should open on the current heuristic, got %s", kind)
	}
	if !strings.Contains(m.View(), "SELECT HEURISTIC") {
		t.Error("Expected the heuristic list view")
	}

	m, _ = updateSetup(t, m, keyDown)
	m, cmd := updateSetup(t, m, keyEnter)
	if cmd != nil || m.inHeuristics {
		t.Fatal("Choosing a heuristic should return to the setup menu")
	}
	if m.search.Heuristic != string(heuristic.KindOctile) {
		t.Errorf("Expected octile, got %s", m.search.Heuristic)
	}

	// Esc in the list keeps the choice
	m, _ = updateSetup(t, m, keyEnter)
	m, _ = updateSetup(t, m, keyUp)
	m, _ = updateSetup(t, m, keyEsc)
	if m.inHeuristics || m.WantsBack() {
		t.Error("Esc should only close the heuristic list")
	}
	if m.search.Heuristic != string(heuristic.KindOctile) {
		t.Errorf("Esc should keep octile, got %s", m.search.Heuristic)
	}
}

func TestSetupTogglesMovement(t *testing.T) {
	m := newTestSetup()

	m, _ = updateSetup(t, m, keyDown)
	m, _ = updateSetup(t, m, keyDown)
	m, _ = updateSetup(t, m, keyDown) // stays on the last entry
	m, _ = updateSetup(t, m, keyEnter)
	if !m.search.Diagonal {
		t.Fatal("Movement entry should enable diagonals")
	}
	if !strings.Contains(m.View(), "8-way") {
		t.Error("View should show 8-way movement")
	}

	m, _ = updateSetup(t, m, keyUp)
	m, _ = updateSetup(t, m, keyUp)
	m, _ = updateSetup(t, m, keyEnter)
	if got := m.Search(); got == nil || !got.Diagonal {
		t.Errorf("Expected diagonal settings, got %+v", got)
	}
}

func TestSetupBackAndQuit(t *testing.T) {
	m := newTestSetup()
	m, cmd := updateSetup(t, m, keyEsc)
	if cmd == nil || !m.WantsBack() || m.IsQuitting() {
		t.Error("Esc should go back")
	}
	if m.Search() != nil {
		t.Error("Going back should not produce settings")
	}

	m = newTestSetup()
	m, _ = updateSetup(t, m, keyDown)
	m, _ = updateSetup(t, m, keyEnter)
	m, cmd = updateSetup(t, m, keyRunes("q"))
	if cmd == nil || !m.IsQuitting() {
		t.Error("q should quit from the heuristic list")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}
