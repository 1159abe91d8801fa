package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pathfinder/internal/core"
)

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space plays", keySpace, core.ActionPlayPause},
		{"n steps", keyRunes("n"), core.ActionStep},
		{"enter solves", keyEnter, core.ActionSolve},
		{"r resets", keyRunes("r"), core.ActionReset},
		{"x clears", keyRunes("x"), core.ActionClearSearch},
		{"h cycles heuristic", keyRunes("h"), core.ActionCycleHeuristic},
		{"d toggles diagonal", keyRunes("d"), core.ActionToggleDiagonal},
		{"t cycles tie-break", keyRunes("t"), core.ActionCycleTieBreak},
		{"plus is faster", keyRunes("+"), core.ActionFaster},
		{"equals is faster", keyRunes("="), core.ActionFaster},
		{"minus is slower", keyRunes("-"), core.ActionSlower},
		{"arrow up", keyUp, core.ActionCursorUp},
		{"k is up", keyRunes("k"), core.ActionCursorUp},
		{"arrow down", keyDown, core.ActionCursorDown},
		{"arrow left", keyLeft, core.ActionCursorLeft},
		{"l is right", keyRunes("l"), core.ActionCursorRight},
		{"w toggles wall", keyRunes("w"), core.ActionToggleWall},
		{"tab opens history", keyTab, core.ActionHistory},
		{"question mark", keyRunes("?"), core.ActionHelp},
		{"esc goes back", keyEsc, core.ActionBack},
		{"b goes back", keyRunes("b"), core.ActionBack},
		{"q quits", keyRunes("q"), core.ActionQuit},
		{"ctrl+c quits", keyCtrlC, core.ActionQuit},
		{"unbound key", keyRunes("z"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{keyUp, MenuActionUp},
		{keyRunes("w"), MenuActionUp},
		{keyRunes("k"), MenuActionUp},
		{keyDown, MenuActionDown},
		{keyRunes("s"), MenuActionDown},
		{keyRunes("j"), MenuActionDown},
		{keyEnter, MenuActionSelect},
		{keySpace, MenuActionSelect},
		{keyTab, MenuActionHistory},
		{keyEsc, MenuActionBack},
		{keyRunes("b"), MenuActionBack},
		{keyRunes("q"), MenuActionQuit},
		{keyCtrlC, MenuActionQuit},
		{keyRunes("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("Key %q: expected %v, got %v", tt.msg.String(), tt.want, got)
		}
	}
}

func TestHelpListsBindings(t *testing.T) {
	keys := DefaultKeyMap()

	if len(keys.ShortHelp()) == 0 {
		t.Error("Short help should not be empty")
	}

	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 19 {
		t.Errorf("Expected every binding in the full help, got %d", total)
	}
}
