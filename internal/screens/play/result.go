package play

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/dataset"
	"github.com/abhisek/quizbox/internal/export"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// ResultScreen shows the outcome of a finished session.
type ResultScreen struct {
	sess    *quiz.Session
	sinks   Sinks
	state   quiz.State
	outcome quiz.Outcome
	err     error

	showKey bool
	saved   string // history location, once recorded
	written string // exported file path
	errMsg  string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// NewResult creates a ResultScreen for a finished session.
func NewResult(sess *quiz.Session, sinks Sinks) *ResultScreen {
	r := &ResultScreen{
		sess:  sess,
		sinks: sinks,
		state: sess.State(),
	}
	r.outcome, r.err = sess.Outcome()
	return r
}

// Init records the run in the history sink.
func (r *ResultScreen) Init() tea.Cmd {
	if r.err != nil || r.sinks.History == nil {
		return nil
	}
	return r.exportTo("history", r.sinks.History)
}

func (r *ResultScreen) Title() string {
	return "Result"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if r.err == nil && r.sinks.Files != nil {
		hints = append(hints, layout.KeyHint{Key: "E", Description: "Export JSON"})
	}
	if r.err == nil && r.outcome.Variant == dataset.VariantScored {
		desc := "Show answers"
		if r.showKey {
			desc = "Hide answers"
		}
		hints = append(hints, layout.KeyHint{Key: "K", Description: desc})
	}
	return append(hints,
		layout.KeyHint{Key: "R", Description: "Retake"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.Err != nil {
			r.errMsg = fmt.Sprintf("%s export failed: %v", msg.Target, msg.Err)
			return r, nil
		}
		switch msg.Target {
		case "history":
			r.saved = msg.Location
		case "file":
			r.written = msg.Location
		}
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "e", "E":
			if r.err == nil && r.sinks.Files != nil {
				return r, r.exportTo("file", r.sinks.Files)
			}
		case "k", "K":
			if r.outcome.Variant == dataset.VariantScored {
				r.showKey = !r.showKey
			}
		case "r", "R":
			r.sess.Restart()
			next := New(r.sess, r.sinks)
			return r, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: next}
			}
		}
	}
	return r, nil
}

// exportTo snapshots the session now and writes the payload to sink
// asynchronously. A retake started before the write runs does not change
// what is written.
func (r *ResultScreen) exportTo(target string, sink export.Sink) tea.Cmd {
	p, err := r.sess.Export()
	if err != nil {
		return func() tea.Msg { return exportDoneMsg{Target: target, Err: err} }
	}
	return writeCmd(target, sink, p)
}

func writeCmd(target string, sink export.Sink, p quiz.Payload) tea.Cmd {
	return func() tea.Msg {
		loc, err := sink.Write(context.Background(), p)
		return exportDoneMsg{Target: target, Location: loc, Err: err}
	}
}

func (r *ResultScreen) View(width, height int) string {
	if r.err != nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Could not evaluate this run: %v\n\n  Press R to retake or Esc to go back.", r.err))
	}

	cw := components.ContentWidth(width)
	var sections []string

	if name := r.state.Name; name != "" {
		sections = append(sections, layout.Centered(cw, theme.Subtitle, name+", your result"))
	}

	switch r.outcome.Variant {
	case dataset.VariantProfile:
		sections = append(sections, r.renderProfile(cw))
	default:
		sections = append(sections, r.renderScored(cw))
	}

	var notes []string
	if r.saved != "" {
		notes = append(notes, "Saved to "+r.saved)
	}
	if r.written != "" {
		notes = append(notes, "Exported to "+r.written)
	}
	if len(notes) > 0 {
		sections = append(sections, layout.Centered(cw, theme.Hint, strings.Join(notes, " · ")))
	}
	if r.errMsg != "" {
		sections = append(sections, layout.Centered(cw, lipgloss.NewStyle().Foreground(theme.Error), r.errMsg))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (r *ResultScreen) renderProfile(cw int) string {
	o := r.outcome

	var lines []string
	lines = append(lines, theme.Title.Render(o.Headline()))
	if o.Profile != nil {
		if o.Profile.Role != "" {
			lines = append(lines, theme.Subtitle.Render(o.Profile.Role))
		}
		if o.Profile.Superpower != "" {
			lines = append(lines, "", theme.Body.Render("Superpower: "+o.Profile.Superpower))
		}
		if len(o.Profile.Learning) > 0 {
			lines = append(lines, "", theme.Body.Render("Where to grow:"))
			for _, l := range o.Profile.Learning {
				lines = append(lines, theme.Body.Render("  • "+l))
			}
		}
	}
	lines = append(lines, "", theme.Hint.Render(o.Summary))

	return components.Card(strings.Join(lines, "\n"), cw)
}

func (r *ResultScreen) renderScored(cw int) string {
	o := r.outcome

	var lines []string
	lines = append(lines, theme.Title.Render(o.Headline()))
	lines = append(lines, components.ScoreBar(o.Score, o.Total, cw-8).View())
	if o.Band != nil && o.Band.Text != "" {
		lines = append(lines, "", theme.Body.Width(cw-8).Render(o.Band.Text))
	}
	if r.state.Reason == quiz.ReasonTimeout {
		lines = append(lines, "", theme.Warning.Render("Time ran out. Unanswered questions count as blank."))
	}
	if limit := r.state.TimeLimit; limit > 0 {
		used := limit - r.state.TimeRemaining
		lines = append(lines, theme.Hint.Render("Time used: "+quiz.FormatClock(used)+" of "+quiz.FormatClock(limit)))
	}

	if r.showKey {
		lines = append(lines, "", r.renderAnswerKey())
	} else {
		lines = append(lines, "", theme.Hint.Render(o.Summary))
		if n := len(o.Mistakes); n > 0 {
			labels := make([]string, n)
			for i, m := range o.Mistakes {
				labels[i] = m.Question.Label()
			}
			lines = append(lines, theme.Hint.Render("To review: "+strings.Join(labels, ", ")))
		}
	}

	return components.Card(strings.Join(lines, "\n"), cw)
}

// renderAnswerKey lists every question with the given and correct answers.
func (r *ResultScreen) renderAnswerKey() string {
	ds := r.sess.Dataset()
	var b strings.Builder
	for i, q := range ds.Questions {
		a := r.state.Answers[i]
		line := fmt.Sprintf("%-4s %-12s → %s", q.Label(), quiz.AnswerText(q, a), quiz.AnswerKey(q))
		style := theme.Correct
		if !quiz.IsCorrect(q, a) {
			style = theme.Incorrect
		}
		b.WriteString(style.Render(line))
		if i < len(ds.Questions)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
