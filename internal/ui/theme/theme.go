package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Highlight = lipgloss.Color("#FACC15") // Yellow, focused buttons
	Frame     = lipgloss.Color("#22D3EE") // Cyan, stat boxes
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Dataset variants are tagged by color throughout the UI.
var (
	ProfileColor = Secondary
	ScoredColor  = Accent
)

// Text
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Answer options
var (
	// Selected is the option under the cursor, Chosen the recorded answer.
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Chosen     = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Countdown
var (
	Clock   = lipgloss.NewStyle().Foreground(TextDim)
	Warning = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Progress bars
var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)

// Badge renders label as a small inverted tag.
func Badge(label string, c color.Color) string {
	return lipgloss.NewStyle().
		Foreground(BgDark).
		Background(c).
		Bold(true).
		Padding(0, 1).
		Render(label)
}
