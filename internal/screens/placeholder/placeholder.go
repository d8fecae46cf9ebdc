package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// PlaceholderScreen shows a message in place of a feature that cannot run,
// such as history when no result log is open or a dataset that failed to
// load.
type PlaceholderScreen struct {
	title   string
	message string
	isError bool
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen with the given title and message.
func New(title, message string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: message}
}

// NewError creates a PlaceholderScreen reporting err.
func NewError(title string, err error) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, message: err.Error(), isError: true}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (p *PlaceholderScreen) View(width, height int) string {
	heading := "╌╌ Unavailable ╌╌"
	color := theme.Text
	if p.isError {
		heading = "╌╌ Something went wrong ╌╌"
		color = theme.Error
	}

	body := lipgloss.NewStyle().
		Width(min(width-8, 64)).
		Align(lipgloss.Center).
		Foreground(color).
		Render(heading + "\n\n" + p.message)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
