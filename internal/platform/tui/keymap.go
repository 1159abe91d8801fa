package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pathfinder/internal/core"
)

// KeyMap defines the visualizer key bindings.
// It centralizes bindings, feeds the help bar and makes mapping testable.
type KeyMap struct {
	PlayPause key.Binding
	Step      key.Binding
	Solve     key.Binding
	Reset     key.Binding
	Clear     key.Binding
	Heuristic key.Binding
	Diagonal  key.Binding
	TieBreak  key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Wall      key.Binding
	History   key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Step, k.Solve, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Step, k.Solve, k.Reset, k.Clear},
		{k.Heuristic, k.Diagonal, k.TieBreak, k.Faster, k.Slower},
		{k.Up, k.Down, k.Left, k.Right, k.Wall},
		{k.History, k.Help, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "step"),
		),
		Solve: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "solve"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset maze"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear search"),
		),
		Heuristic: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "heuristic"),
		),
		Diagonal: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "diagonal"),
		),
		TieBreak: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tie-break"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "cursor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "cursor down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "cursor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "cursor right"),
		),
		Wall: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w/click", "toggle wall"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "run history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a visualizer action.
// Returns ActionNone for unbound keys.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Quit, core.ActionQuit},
		{k.Back, core.ActionBack},
		{k.PlayPause, core.ActionPlayPause},
		{k.Step, core.ActionStep},
		{k.Solve, core.ActionSolve},
		{k.Reset, core.ActionReset},
		{k.Clear, core.ActionClearSearch},
		{k.Heuristic, core.ActionCycleHeuristic},
		{k.Diagonal, core.ActionToggleDiagonal},
		{k.TieBreak, core.ActionCycleTieBreak},
		{k.Faster, core.ActionFaster},
		{k.Slower, core.ActionSlower},
		{k.Up, core.ActionCursorUp},
		{k.Down, core.ActionCursorDown},
		{k.Left, core.ActionCursorLeft},
		{k.Right, core.ActionCursorRight},
		{k.Wall, core.ActionToggleWall},
		{k.History, core.ActionHistory},
		{k.Help, core.ActionHelp},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// MenuAction represents a picker-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionHistory
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a picker action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionHistory
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
