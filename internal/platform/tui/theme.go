package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pathfinder/internal/core"
)

// Glyph is the two-column drawing of one board cell.
type Glyph struct {
	Runes [2]rune
	Color core.Color
}

// Theme contains the board glyphs and panel styles.
type Theme struct {
	// Board cells
	Empty   Glyph
	Wall    Glyph
	Start   Glyph
	End     Glyph
	Open    Glyph
	Closed  Glyph
	Current Glyph
	Path    Glyph
	Cursor  core.Color
	Border  core.Color

	// Side panel
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Found     lipgloss.Style
	Exhausted lipgloss.Style
	Status    lipgloss.Style
	Panel     lipgloss.Style
	Help      lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Empty:   Glyph{Runes: [2]rune{'·', ' '}, Color: core.ColorDarkGray},
		Wall:    Glyph{Runes: [2]rune{'█', '█'}, Color: core.ColorWhite},
		Start:   Glyph{Runes: [2]rune{'█', '█'}, Color: core.ColorBrightGreen},
		End:     Glyph{Runes: [2]rune{'█', '█'}, Color: core.ColorBrightRed},
		Open:    Glyph{Runes: [2]rune{'░', '░'}, Color: core.ColorCyan},
		Closed:  Glyph{Runes: [2]rune{'▒', '▒'}, Color: core.ColorBlue},
		Current: Glyph{Runes: [2]rune{'█', '█'}, Color: core.ColorBrightMagenta},
		Path:    Glyph{Runes: [2]rune{'█', '█'}, Color: core.ColorBrightYellow},
		Cursor:  core.ColorOrange,
		Border:  core.ColorGray,

		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Found:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Exhausted: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Italic(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a theme that relies on glyph shapes only.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Empty.Color = core.ColorDefault
	theme.Wall.Color = core.ColorDefault
	theme.Start = Glyph{Runes: [2]rune{'S', 'S'}}
	theme.End = Glyph{Runes: [2]rune{'E', 'E'}}
	theme.Open.Color = core.ColorDefault
	theme.Closed.Color = core.ColorDefault
	theme.Current = Glyph{Runes: [2]rune{'@', '@'}}
	theme.Path = Glyph{Runes: [2]rune{'*', '*'}}
	theme.Cursor = core.ColorDefault
	theme.Border = core.ColorDefault
	return theme
}
