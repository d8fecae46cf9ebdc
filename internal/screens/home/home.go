package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/dataset"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/history"
	"github.com/abhisek/quizbox/internal/screens/placeholder"
	"github.com/abhisek/quizbox/internal/screens/play"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

const titleFull = "Q · U · I · Z · B · O · X"

// Options are the dependencies of the home screen.
type Options struct {
	Datasets []*dataset.Dataset
	Sinks    play.Sinks
	Results  store.ResultRepo // nil when history is disabled
}

type statsLoadedMsg struct {
	Results int
	Err     error
}

// HomeScreen lists the available tests and the history entry.
type HomeScreen struct {
	opts    Options
	menu    components.Menu
	results int
	loaded  bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts}

	var items []components.MenuItem
	for _, ds := range opts.Datasets {
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(ds.Title),
			Detail: describe(ds),
			Action: func() tea.Cmd { return h.startCmd(ds) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "HISTORY", Action: h.historyCmd},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	)

	h.menu = components.NewMenu(items)
	return h
}

// describe summarizes a dataset for the menu.
func describe(ds *dataset.Dataset) string {
	s := fmt.Sprintf("%d questions", ds.Total())
	if ds.Timed() {
		s += " · " + quiz.FormatClock(ds.TimeLimitSec)
	}
	return s
}

// startCmd opens a new session over ds.
func (h *HomeScreen) startCmd(ds *dataset.Dataset) tea.Cmd {
	sess, err := quiz.New(ds)
	if err != nil {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: placeholder.NewError(ds.Title, err)}
		}
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: play.New(sess, h.opts.Sinks)}
	}
}

func (h *HomeScreen) historyCmd() tea.Cmd {
	if h.opts.Results == nil {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: placeholder.New("History", "History is turned off for this run.")}
		}
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: history.New(h.opts.Results)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.opts.Results
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		n, err := repo.Count(context.Background(), "")
		return statsLoadedMsg{Results: n, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err == nil {
			h.results = msg.Results
			h.loaded = true
		}
		return h, nil
	case router.ResumedMsg:
		// A finished quiz or a history prune may have changed the count.
		return h, h.loadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	sections := []string{
		layout.Centered(cw, lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true), titleFull),
		components.StatsBox(h.renderStats(compact), cw),
	}

	if compact {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, h.menu.View()))
	} else {
		sections = append(sections, components.ButtonColumn(h.menu, cw, false))
		if d := h.menu.Items[h.menu.Selected].Detail; d != "" {
			sections = append(sections, layout.Centered(cw, theme.Hint, d))
		}
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStats(compact bool) string {
	tests := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	results := lipgloss.NewStyle().Foreground(theme.Frame).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	n := len(h.opts.Datasets)
	var resultText string
	switch {
	case h.opts.Results == nil:
		resultText = dim.Render("HISTORY OFF")
	case !h.loaded:
		resultText = dim.Render("…")
	case compact:
		resultText = results.Render(fmt.Sprintf("★%d", h.results))
	default:
		resultText = results.Render(fmt.Sprintf("★ %d RESULTS", h.results))
	}

	if compact {
		return fmt.Sprintf("%s %s", tests.Render(fmt.Sprintf("◆%d", n)), resultText)
	}
	return fmt.Sprintf("%s  %s", tests.Render(fmt.Sprintf("◆ %d TESTS", n)), resultText)
}
