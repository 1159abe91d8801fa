package core

// Action represents a visualizer intent, abstracted from physical key presses.
type Action int

const (
	ActionNone           Action = iota
	ActionPlayPause             // Space - start, pause or resume the animation
	ActionStep                  // N - advance the search by one round
	ActionSolve                 // Enter - run the search to completion
	ActionReset                 // R - restore the maze and drop the search
	ActionClearSearch           // X - drop the search, keep the walls
	ActionCycleHeuristic        // H
	ActionToggleDiagonal        // D
	ActionCycleTieBreak         // T
	ActionFaster                // + or =
	ActionSlower                // -
	ActionCursorUp              // Up arrow, K
	ActionCursorDown            // Down arrow, J
	ActionCursorLeft            // Left arrow
	ActionCursorRight           // Right arrow, L
	ActionToggleWall            // W - toggle the wall under the cursor
	ActionHistory               // Tab - show run history
	ActionHelp                  // ? - expand the help bar
	ActionBack                  // Esc, B - leave the current view
	ActionQuit                  // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPlayPause:
		return "PlayPause"
	case ActionStep:
		return "Step"
	case ActionSolve:
		return "Solve"
	case ActionReset:
		return "Reset"
	case ActionClearSearch:
		return "ClearSearch"
	case ActionCycleHeuristic:
		return "CycleHeuristic"
	case ActionToggleDiagonal:
		return "ToggleDiagonal"
	case ActionCycleTieBreak:
		return "CycleTieBreak"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionCursorLeft:
		return "CursorLeft"
	case ActionCursorRight:
		return "CursorRight"
	case ActionToggleWall:
		return "ToggleWall"
	case ActionHistory:
		return "History"
	case ActionHelp:
		return "Help"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// CursorDelta returns the row and column offset of a cursor action.
func (a Action) CursorDelta() (dRow, dCol int, ok bool) {
	switch a {
	case ActionCursorUp:
		return -1, 0, true
	case ActionCursorDown:
		return 1, 0, true
	case ActionCursorLeft:
		return 0, -1, true
	case ActionCursorRight:
		return 0, 1, true
	}
	return 0, 0, false
}
