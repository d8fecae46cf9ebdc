package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

// answerCard draws an answer sheet row per option letter with the bubble
// for filled marked.
func answerCard(filled int) string {
	lines := []string{"╭─────────╮"}
	for i, letter := range []string{"A", "B", "C", "D"} {
		bubble := "○"
		if i == filled {
			bubble = "●"
		}
		lines = append(lines, fmt.Sprintf("│ %s  %s    │", letter, bubble))
	}
	return strings.Join(append(lines, "╰─────────╯"), "\n")
}

// cardSteps is how many ticks the marked bubble stays on one option.
const cardSteps = 3

const tagline = "Know yourself. Test yourself."

type tickMsg time.Time

// WelcomeScreen shows a splash animation before transitioning to the home
// screen. Any key skips ahead.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	datasets     int
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced
// by homeFactory. datasets is the number of available tests.
func New(homeFactory func() screen.Screen, datasets int) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		datasets:    datasets,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// filledOption is the option marked on the card. It stays unmarked for the
// first phase and then moves down the sheet.
func (w *WelcomeScreen) filledOption() int {
	if w.elapsed < phase1End {
		return -1
	}
	return (w.tickCount / cardSteps) % 4
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(answerCard(w.filledOption())),
	}

	if w.elapsed >= phase2End {
		ready := fmt.Sprintf("%d tests ready", w.datasets)
		if w.datasets == 0 {
			ready = "no tests found"
		}
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(ready),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
