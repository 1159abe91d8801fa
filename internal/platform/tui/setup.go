package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pathfinder/internal/config"
	"github.com/vovakirdan/tui-pathfinder/internal/core"
	"github.com/vovakirdan/tui-pathfinder/internal/heuristic"
)

// Setup menu entries
const (
	setupStart = iota
	setupHeuristic
	setupMovement
	setupEntries
)

// SetupModel lets users choose the heuristic and movement before a maze opens.
type SetupModel struct {
	cursor          int
	heuristicCursor int
	inHeuristics    bool
	heuristics      []heuristic.Info
	search          config.SearchConfig
	title           string
	width           int
	height          int
	choosing        bool
	quitting        bool
	back            bool
}

// NewSetupModel creates a setup menu starting from search.
func NewSetupModel(title string, search config.SearchConfig, width, height int) SetupModel {
	return SetupModel{
		heuristics: heuristic.List(),
		search:     search,
		title:      title,
		width:      width,
		height:     height,
		choosing:   true,
	}
}

// Init initializes the model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := MapKeyToMenuAction(msg)

	if m.inHeuristics {
		return m.handleHeuristicKey(action)
	}
	return m.handleSetupKey(action)
}

func (m SetupModel) handleSetupKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < setupEntries-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case setupStart:
			m.choosing = false
			return m, tea.Quit
		case setupHeuristic:
			m.inHeuristics = true
			m.heuristicCursor = m.currentHeuristic()
		case setupMovement:
			m.search.Diagonal = !m.search.Diagonal
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m SetupModel) handleHeuristicKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.heuristicCursor > 0 {
			m.heuristicCursor--
		}
	case MenuActionDown:
		if m.heuristicCursor < len(m.heuristics)-1 {
			m.heuristicCursor++
		}
	case MenuActionSelect:
		if len(m.heuristics) > 0 {
			m.search.Heuristic = string(m.heuristics[m.heuristicCursor].Kind)
		}
		m.inHeuristics = false
	case MenuActionBack:
		m.inHeuristics = false
	}

	return m, nil
}

// currentHeuristic returns the list index of the selected heuristic.
func (m SetupModel) currentHeuristic() int {
	for i, info := range m.heuristics {
		if string(info.Kind) == m.search.Heuristic {
			return i
		}
	}
	return 0
}

// View renders the setup menu or the heuristic list.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inHeuristics {
		return m.viewHeuristics()
	}
	return m.viewSetup()
}

func (m SetupModel) viewSetup() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Search setup:", m.width))
	b.WriteString("\n\n")

	entries := []string{
		"Open maze",
		fmt.Sprintf("Heuristic: %s...", m.search.Heuristic),
		"Movement: " + movementLabel(m.search.Diagonal),
	}

	for i, entry := range entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+entry, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m SetupModel) viewHeuristics() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT HEURISTIC", m.width))
	b.WriteString("\n\n")

	for i, info := range m.heuristics {
		cursor := "  "
		if i == m.heuristicCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-10s %s", cursor, info.Title, info.Description)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func movementLabel(diagonal bool) string {
	if diagonal {
		return "8-way (sqrt2 diagonals)"
	}
	return "4-way"
}

// Search returns the chosen settings, or nil if still choosing.
func (m SetupModel) Search() *config.SearchConfig {
	if m.choosing {
		return nil
	}
	return &m.search
}

// IsQuitting returns true if user wants to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m SetupModel) WantsBack() bool {
	return m.back
}

// RunSetup runs the search setup menu and returns the chosen settings.
// Returns nil settings when the user backs out or quits.
func RunSetup(title string, search config.SearchConfig, cfg core.RuntimeConfig) (*config.SearchConfig, error) {
	p := tea.NewProgram(
		NewSetupModel(title, search, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(SetupModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Search(), nil
}
