package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pathfinder/internal/astar"
	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/core"
	"github.com/vovakirdan/tui-pathfinder/internal/grid"
	"github.com/vovakirdan/tui-pathfinder/internal/heuristic"
	"github.com/vovakirdan/tui-pathfinder/internal/maze"
	"github.com/vovakirdan/tui-pathfinder/internal/storage"
)

// panelWidth is the side panel width including its border.
const panelWidth = 30

// RunStore is the run history the visualizer writes to and reads from.
type RunStore interface {
	SaveRun(run storage.Run) (string, error)
	RunsForMaze(mazeID string, limit int) ([]storage.Run, error)
	RecentRuns(limit int) ([]storage.Run, error)
	GetMazeStats(mazeID string) (*storage.MazeStats, error)
}

var _ RunStore = (*storage.Store)(nil)

// Settings configures a visualizer session.
type Settings struct {
	Maze       maze.Maze
	Search     config.SearchConfig
	Playback   config.PlaybackConfig
	Runtime    core.RuntimeConfig
	Store      RunStore    // nil disables run history
	Logger     *log.Logger // nil discards log output
	Monochrome bool
}

// SearchFor applies a maze's suggested heuristic and movement on top of base.
func SearchFor(base config.SearchConfig, m maze.Maze) config.SearchConfig {
	if m.Heuristic != "" {
		if kind, err := heuristic.ParseKind(m.Heuristic); err == nil {
			base.Heuristic = string(kind)
		}
	}
	if m.Diagonal != nil {
		base.Diagonal = *m.Diagonal
	}
	return base
}

// Model is the Bubble Tea model of the search visualizer.
// It owns an editable grid and, once a search starts, an engine built
// from a snapshot of that grid. The engine is dropped before any edit.
type Model struct {
	maze      maze.Maze
	grid      *grid.Grid
	engine    *astar.Engine
	last      astar.StepResult
	heuristic heuristic.Kind
	diagonal  bool
	tieBreak  astar.TieBreak
	playback  config.PlaybackConfig
	stepMS    int
	playing   bool
	gen       int // bumped whenever playback stops or restarts
	saved     bool
	lastRunID string
	store     RunStore
	logger    *log.Logger
	session   string
	cursor    grid.Position
	dragging  bool
	status    string
	screen    *core.Screen
	theme     Theme
	keys      KeyMap
	help      help.Model
	history   *HistoryModel
	width     int
	height    int

	quitting   bool
	backToMenu bool
}

// NewModel creates a visualizer for the given settings.
func NewModel(s Settings) Model {
	if s.Maze.Rows == 0 || s.Maze.Cols == 0 {
		d := config.Default().Grid
		s.Maze = maze.Blank(d.Rows, d.Cols, d.Start.Position(), d.End.Position())
	}

	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	kind, err := heuristic.ParseKind(s.Search.Heuristic)
	if err != nil {
		kind = heuristic.KindManhattan
	}
	tb, err := astar.ParseTieBreak(s.Search.TieBreak)
	if err != nil {
		tb = astar.TieBreakHeap
	}

	playback := s.Playback
	if playback.MaxStepMS <= 0 {
		playback = config.Default().Playback
	}
	stepMS := int(s.Runtime.StepInterval / time.Millisecond)
	if stepMS <= 0 {
		stepMS = playback.StepMS
	}
	stepMS = core.Clamp(stepMS, playback.MinStepMS, playback.MaxStepMS)

	width, height := s.Runtime.ScreenW, s.Runtime.ScreenH
	if width <= 0 || height <= 0 {
		d := core.DefaultConfig()
		width, height = d.ScreenW, d.ScreenH
	}

	theme := DefaultTheme()
	if s.Monochrome {
		theme = MonochromeTheme()
	}

	bw, bh := boardSize(s.Maze.Rows, s.Maze.Cols)
	h := help.New()
	h.Width = width

	return Model{
		maze:      s.Maze,
		grid:      s.Maze.Grid(),
		heuristic: kind,
		diagonal:  s.Search.Diagonal,
		tieBreak:  tb,
		playback:  playback,
		stepMS:    stepMS,
		store:     s.Store,
		logger:    logger,
		session:   s.Runtime.Session,
		cursor:    s.Maze.Start,
		status:    "space to search, w or click to edit walls",
		screen:    core.NewScreen(bw, bh),
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      h,
		width:     width,
		height:    height,
	}
}

// Init initializes the model. Playback starts on the first key press.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.help.Width = wsm.Width
	}

	if m.history != nil {
		return m.updateHistory(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// updateHistory routes messages to the embedded run history view.
func (m Model) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if h, ok := next.(HistoryModel); ok {
		m.history = &h
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		// The history view quits when it runs alone; drop that command here.
		m.history = nil
		return m, nil
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if dRow, dCol, ok := action.CursorDelta(); ok {
		m.moveCursor(dRow, dCol)
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.pause()
		m.backToMenu = true
		return m, tea.Quit

	case core.ActionPlayPause:
		return m.togglePlay()

	case core.ActionStep:
		m.stepOnce()

	case core.ActionSolve:
		m.solve()

	case core.ActionReset:
		m.reset()

	case core.ActionClearSearch:
		m.clearSearch()
		m.status = "search cleared"

	case core.ActionCycleHeuristic:
		m.heuristic = heuristic.Next(m.heuristic)
		m.settingsChanged("heuristic: " + string(m.heuristic))

	case core.ActionToggleDiagonal:
		m.diagonal = !m.diagonal
		m.settingsChanged("diagonal moves: " + onOff(m.diagonal))

	case core.ActionCycleTieBreak:
		m.tieBreak = m.tieBreak.Next()
		m.settingsChanged("tie-break: " + string(m.tieBreak))

	case core.ActionFaster:
		m.stepMS = m.playback.Faster(m.stepMS)
		m.status = fmt.Sprintf("speed: %dms per step", m.stepMS)

	case core.ActionSlower:
		m.stepMS = m.playback.Slower(m.stepMS)
		m.status = fmt.Sprintf("speed: %dms per step", m.stepMS)

	case core.ActionToggleWall:
		m.toggleWall(m.cursor)

	case core.ActionHistory:
		return m.openHistory()

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleMouse toggles walls on click and paints them while dragging.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionRelease:
		m.dragging = false

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		p, ok := cellAt(m.grid, msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.cursor = p
		m.toggleWall(p)
		m.dragging = m.engine == nil

	case tea.MouseActionMotion:
		if !m.dragging || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		p, ok := cellAt(m.grid, msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.cursor = p
		m.grid.PaintWall(p)
	}

	return m, nil
}

// handleTick advances the animation by one search round.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || !m.playing || m.engine == nil {
		return m, nil
	}

	m.last = m.engine.Step()
	if m.last.Finished {
		m.playing = false
		m.finish(storage.ModeAnimated)
		return m, nil
	}

	return m, tickCmd(m.interval(), m.gen)
}

// togglePlay starts, pauses or resumes the animation.
// Playing a finished search replays it from the start.
func (m Model) togglePlay() (tea.Model, tea.Cmd) {
	if m.playing {
		m.pause()
		m.status = "paused"
		return m, nil
	}

	if m.engine != nil && m.engine.Finished() {
		m.clearSearch()
	}
	if !m.ensureEngine() {
		return m, nil
	}

	m.playing = true
	m.gen++
	m.status = "searching..."
	return m, tickCmd(m.interval(), m.gen)
}

// pause stops the animation. Ticks already scheduled become stale.
func (m *Model) pause() {
	if m.playing {
		m.playing = false
		m.gen++
	}
}

// ensureEngine builds an engine from the current grid if there is none.
func (m *Model) ensureEngine() bool {
	if m.engine != nil {
		return true
	}

	engine, err := astar.New(m.grid, m.maze.Start, m.maze.End, m.searchConfig().Options()...)
	if err != nil {
		m.status = err.Error()
		m.logger.Warn("cannot start search", "maze", m.maze.ID, "error", err)
		return false
	}

	m.engine = engine
	m.last = astar.StepResult{}
	m.saved = false
	m.logger.Debug("search started",
		"maze", m.maze.ID,
		"heuristic", m.heuristic,
		"diagonal", m.diagonal,
		"tie_break", m.tieBreak,
	)
	return true
}

// stepOnce pauses playback and advances the search by one round.
func (m *Model) stepOnce() {
	m.pause()
	if !m.ensureEngine() {
		return
	}
	if m.engine.Finished() {
		m.status = "search finished, x to clear"
		return
	}

	m.last = m.engine.Step()
	if m.last.Finished {
		m.finish(storage.ModeAnimated)
		return
	}
	m.status = fmt.Sprintf("step %d: expanded %v", m.engine.Stats().Steps, m.last.Current)
}

// solve runs the search to completion at once.
func (m *Model) solve() {
	m.pause()
	if !m.ensureEngine() {
		return
	}
	if m.engine.Finished() {
		m.status = "search finished, x to clear"
		return
	}

	m.last = m.engine.Drain()
	m.finish(storage.ModeInstant)
}

// finish reports a terminal search and records it once.
func (m *Model) finish(mode storage.Mode) {
	stats := m.engine.Stats()
	if m.engine.Found() {
		m.status = fmt.Sprintf("path found: %d cells, cost %.2f", stats.PathLength, stats.PathCost)
	} else {
		m.status = "no path: the goal is unreachable"
	}
	m.record(mode)
}

// record saves the finished search to the run store. At most once per search.
func (m *Model) record(mode storage.Mode) {
	if m.saved || m.engine == nil || !m.engine.Finished() {
		return
	}
	m.saved = true

	stats := m.engine.Stats()
	opts := m.engine.Options()
	run := storage.Run{
		MazeID:      m.maze.ID,
		Heuristic:   string(opts.Heuristic),
		Diagonal:    opts.AllowDiagonal,
		TieBreak:    string(opts.TieBreak),
		Found:       m.engine.Found(),
		PathLength:  stats.PathLength,
		PathCost:    stats.PathCost,
		Expanded:    stats.Expanded,
		Steps:       stats.Steps,
		MaxFrontier: stats.MaxFrontier,
		Walls:       m.engine.Grid().CountWalls(),
		Mode:        mode,
		Session:     m.session,
	}

	m.logger.Info("search finished",
		"maze", run.MazeID,
		"found", run.Found,
		"length", run.PathLength,
		"expanded", run.Expanded,
		"mode", run.Mode,
	)

	if m.store == nil {
		return
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "maze", run.MazeID, "error", err)
		return
	}
	m.lastRunID = id
}

// reset drops the search and restores the maze's original walls.
func (m *Model) reset() {
	m.clearSearch()
	m.grid = m.maze.Grid()
	m.dragging = false
	m.status = "maze reset"
}

// clearSearch drops the engine and keeps the walls.
func (m *Model) clearSearch() {
	m.pause()
	m.engine = nil
	m.last = astar.StepResult{}
	m.saved = false
	m.lastRunID = ""
}

// settingsChanged clears any search built with the previous settings.
func (m *Model) settingsChanged(status string) {
	if m.engine != nil {
		status += " (search cleared)"
	}
	m.clearSearch()
	m.status = status
}

// toggleWall flips the wall under p. Refused while a search exists.
func (m *Model) toggleWall(p grid.Position) bool {
	if m.engine != nil {
		m.status = "x to clear the search before editing walls"
		return false
	}
	return m.grid.ToggleWall(p)
}

// moveCursor moves the edit cursor, staying on the board.
func (m *Model) moveCursor(dRow, dCol int) {
	m.cursor = grid.P(
		core.Clamp(m.cursor.Row+dRow, 0, m.grid.Rows()-1),
		core.Clamp(m.cursor.Col+dCol, 0, m.grid.Cols()-1),
	)
}

// openHistory pauses playback and shows the run history of this maze.
func (m Model) openHistory() (tea.Model, tea.Cmd) {
	m.pause()
	h := NewHistoryModel(m.store, []maze.Maze{m.maze}, m.maze.ID, m.width, m.height)
	m.history = &h
	return m, h.Init()
}

func (m Model) interval() time.Duration {
	return time.Duration(m.stepMS) * time.Millisecond
}

func (m Model) searchConfig() config.SearchConfig {
	return config.SearchConfig{
		Heuristic: string(m.heuristic),
		Diagonal:  m.diagonal,
		TieBreak:  string(m.tieBreak),
	}
}

// stateLabel describes the search for the header and panel.
func (m Model) stateLabel() string {
	switch {
	case m.engine == nil:
		return "editing"
	case m.playing:
		return "running"
	}
	switch m.engine.State() {
	case astar.Ready:
		return "ready"
	case astar.Running:
		return "paused"
	case astar.Found:
		return "found"
	default:
		return "no path"
	}
}

func (m Model) stateStyle() lipgloss.Style {
	if m.engine != nil {
		switch m.engine.State() {
		case astar.Found:
			return m.theme.Found
		case astar.Exhausted:
			return m.theme.Exhausted
		}
	}
	return m.theme.Value
}

// View renders the board, the side panel when it fits, and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.history != nil {
		return m.history.View()
	}

	bw, bh := boardSize(m.grid.Rows(), m.grid.Cols())
	needH := boardTop + bh + 1 // header, board, help
	if m.width < bw || m.height < needH {
		return m.tooSmallView(bw, needH)
	}

	showPanel := m.width >= bw+1+panelWidth

	header := " " + m.theme.Title.Render(m.maze.Name) + "  " + m.stateStyle().Render("["+m.stateLabel()+"]")
	if !showPanel && m.status != "" {
		header += "  " + m.theme.Status.Render(m.status)
	}

	m.screen.Clear()
	drawBoard(m.screen, newBoardView(m.grid, m.maze.Start, m.maze.End, m.engine, m.last), m.theme, m.cursor, m.engine == nil)

	board := RenderScreen(m.screen)
	if showPanel {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, " ", m.renderPanel())
	}
	return header + "\n" + board + "\n" + m.theme.Help.Render(m.help.View(m.keys))
}

// renderPanel renders search settings, counters, legend and status.
func (m Model) renderPanel() string {
	t := m.theme
	var b strings.Builder

	row := func(label, value string, style lipgloss.Style) {
		b.WriteString(t.Label.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(style.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(t.Title.Render("A* SEARCH"))
	b.WriteString("\n\n")
	row("Maze", m.maze.Name, t.Value)
	row("State", m.stateLabel(), m.stateStyle())
	row("Heuristic", string(m.heuristic), t.Value)
	row("Diagonal", onOff(m.diagonal), t.Value)
	row("Tie-break", string(m.tieBreak), t.Value)
	row("Speed", fmt.Sprintf("%dms/step", m.stepMS), t.Value)
	row("Walls", fmt.Sprintf("%d", m.grid.CountWalls()), t.Value)

	if m.engine != nil {
		st := m.engine.Stats()
		b.WriteString("\n")
		row("Steps", fmt.Sprintf("%d", st.Steps), t.Value)
		row("Expanded", fmt.Sprintf("%d", st.Expanded), t.Value)
		row("Frontier", fmt.Sprintf("%d (max %d)", len(m.engine.OpenSet()), st.MaxFrontier), t.Value)
		if m.engine.Found() {
			row("Path", fmt.Sprintf("%d cells", st.PathLength), t.Found)
			row("Cost", fmt.Sprintf("%.2f", st.PathCost), t.Found)
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderLegend())

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(t.Status.Render(m.status))
	}

	return t.Panel.Width(panelWidth - 2).Render(b.String())
}

// renderLegend lists the board glyphs.
func (m Model) renderLegend() string {
	entries := []struct {
		state CellState
		label string
	}{
		{CellStart, "start"},
		{CellEnd, "end"},
		{CellWall, "wall"},
		{CellOpen, "open set"},
		{CellClosed, "closed set"},
		{CellCurrent, "current"},
		{CellPath, "path"},
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, m.theme.Title.Render("LEGEND"))
	for _, e := range entries {
		g := m.theme.glyph(e.state)
		lines = append(lines, styleFor(g.Color).Render(string(g.Runes[:]))+" "+m.theme.Label.Render(e.label))
	}
	return strings.Join(lines, "\n")
}

func (m Model) tooSmallView(needW, needH int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("Window too small", m.width))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Resize to at least %dx%d", needW, needH), m.width))
	b.WriteString("\n")
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the maze picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the visualizer as its own program.
// Returns true if the user asked to go back rather than quit.
func Run(s Settings) (goBack bool, err error) {
	p := tea.NewProgram(
		NewModel(s),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
