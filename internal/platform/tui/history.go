package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pathfinder/internal/maze"
	"github.com/vovakirdan/tui-pathfinder/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show the maze list sidebar
	sidebarWidth       = 20  // Width of maze list sidebar
	maxRuns            = 100 // Max runs to load
)

// allMazes is the sidebar entry that lists recent runs of every maze.
const allMazes = ""

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextMaze key.Binding
	PrevMaze key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMaze, k.PrevMaze, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMaze, k.PrevMaze},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev maze"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next maze"),
		),
		NextMaze: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next maze"),
		),
		PrevMaze: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev maze"),
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

// historyEntry is one sidebar item.
type historyEntry struct {
	ID   string
	Name string
}

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	entries     []historyEntry // "All mazes" first, then each maze
	cursor      int            // Currently selected entry
	store       RunStore
	runs        []storage.Run
	stats       *storage.MazeStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show maze list sidebar
}

// NewHistoryModel creates a new run history model.
// selected picks the initial maze; an unknown ID selects all mazes.
func NewHistoryModel(store RunStore, mazes []maze.Maze, selected string, width, height int) HistoryModel {
	entries := make([]historyEntry, 0, len(mazes)+1)
	entries = append(entries, historyEntry{ID: allMazes, Name: "All mazes"})
	cursor := 0
	for _, mz := range mazes {
		if mz.ID == selected {
			cursor = len(entries)
		}
		entries = append(entries, historyEntry{ID: mz.ID, Name: mz.Name})
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		entries:     entries,
		cursor:      cursor,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Maze", Width: 10},
		{Title: "Heuristic", Width: 9},
		{Title: "Diag", Width: 4},
		{Title: "Result", Width: 7},
		{Title: "Path", Width: 5},
		{Title: "Cost", Width: 7},
		{Title: "Expanded", Width: 8},
		{Title: "Mode", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // Leave room for header, stats, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// selectedID returns the maze ID of the current entry.
func (m HistoryModel) selectedID() string {
	if len(m.entries) == 0 {
		return allMazes
	}
	return m.entries[m.cursor].ID
}

// loadRuns loads runs and stats for the selected entry.
func (m *HistoryModel) loadRuns() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	id := m.selectedID()
	if id == allMazes {
		m.runs, m.loadErr = m.store.RecentRuns(maxRuns)
	} else {
		m.runs, m.loadErr = m.store.RunsForMaze(id, maxRuns)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetMazeStats(id)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		result, path, cost := "no path", "-", "-"
		if r.Found {
			result = "found"
			path = fmt.Sprintf("%d", r.PathLength)
			cost = fmt.Sprintf("%.2f", r.PathCost)
		}
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.MazeID,
			r.Heuristic,
			onOff(r.Diagonal),
			result,
			path,
			cost,
			fmt.Sprintf("%d", r.Expanded),
			string(r.Mode),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMaze), key.Matches(msg, m.keys.Right):
			if len(m.entries) > 0 {
				m.cursor = (m.cursor + 1) % len(m.entries)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMaze), key.Matches(msg, m.keys.Left):
			if len(m.entries) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.entries) - 1
				}
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN HISTORY"
	if len(m.entries) > 0 {
		title = fmt.Sprintf("RUN HISTORY - %s", m.entries[m.cursor].Name)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		// Wide layout: sidebar + table
		b.WriteString(m.renderWideLayout())
	} else {
		// Narrow layout: maze tabs + table
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// summary describes the aggregated stats of the selected maze.
func (m HistoryModel) summary() string {
	switch {
	case m.loadErr != nil:
		return "Could not load runs: " + m.loadErr.Error()
	case m.stats == nil:
		return fmt.Sprintf("%d recent runs", len(m.runs))
	case m.stats.Runs == 0:
		return "No runs for this maze"
	}

	s := fmt.Sprintf("%d runs, %d solved, avg %.1f expanded", m.stats.Runs, m.stats.Solved, m.stats.AvgExpanded)
	if m.stats.Solved > 0 {
		s += fmt.Sprintf(", best cost %.2f", m.stats.BestCost)
	}
	return s
}

// renderWideLayout renders the history with sidebar for maze selection.
func (m HistoryModel) renderWideLayout() string {
	// Sidebar (maze list)
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Mazes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, e := range m.entries {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		sidebar.WriteString(style.Render(cursor + truncate(e.Name, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableRendered := tableStyle.Render(m.renderTableContent())

	// Join horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the history with maze tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	// Maze tabs (horizontal)
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.entries))
	plain := 0
	for i, e := range m.entries {
		shortName := truncate(e.Name, 10)
		plain += len(shortName) + 3
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(shortName)
		} else {
			tabs[i] = tabStyle.Render(" " + shortName + " ")
		}
	}

	// Fall back to a single tab with arrows if they don't fit
	tabLine := strings.Join(tabs, " ")
	if plain > m.width-4 && len(m.entries) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.entries[m.cursor].Name)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.store == nil {
			return emptyStyle.Render("Run history is disabled.")
		}
		return emptyStyle.Render("No runs recorded yet.\nSolve a maze to record one!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

// RunHistory runs the run history screen.
// Returns true if user wants to go back to the picker, false if quitting.
func RunHistory(store RunStore, mazes []maze.Maze, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, mazes, allMazes, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
