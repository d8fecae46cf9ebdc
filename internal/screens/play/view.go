package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/dataset"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

func (p *PlayScreen) View(width, height int) string {
	st := p.sess.State()
	if p.confirmQuit {
		return renderQuitConfirm(width, st)
	}
	if st.Phase == quiz.PhaseIntro {
		return p.renderIntro(width, height)
	}
	return p.renderQuestion(width, st)
}

// renderIntro renders the dataset card and name entry.
func (p *PlayScreen) renderIntro(width, height int) string {
	ds := p.sess.Dataset()
	cw := components.ContentWidth(width)

	var info []string
	info = append(info, theme.Title.Render(ds.Title))
	info = append(info, variantBadge(ds.Variant), "")
	info = append(info, theme.Body.Render(fmt.Sprintf("%d questions", ds.Total())))
	if ds.Timed() {
		info = append(info, theme.Body.Render("Time limit: "+quiz.FormatClock(ds.TimeLimitSec)))
	}
	switch ds.Variant {
	case dataset.VariantProfile:
		info = append(info, theme.Hint.Render("Pick the option that sounds most like you."))
	case dataset.VariantScored:
		info = append(info, theme.Hint.Render("Questions can be skipped and revisited."))
	}

	sections := []string{
		components.Card(strings.Join(info, "\n"), cw),
		"",
		layout.Centered(cw, theme.Subtitle, "What should we call you?"),
		lipgloss.PlaceHorizontal(cw, lipgloss.Center, p.input.View()),
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

// renderQuestion renders the active question display.
func (p *PlayScreen) renderQuestion(width int, st quiz.State) string {
	q := p.sess.Question(st.CurrentIndex)

	var b strings.Builder

	answered := 0
	for _, a := range st.Answers {
		if a.Valid() {
			answered++
		}
	}

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", st.CurrentIndex+1, st.Total))
	if q.Block != "" {
		infoLeft += theme.Hint.Render("  · " + q.Block)
	}
	infoRight := components.StepProgress(answered, st.Total, 24).View()

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, questionStyle.Render(q.Text)))
	b.WriteString("\n\n")

	if q.Kind == dataset.KindNumeric {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+p.input.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.options.View()))
	}
	b.WriteString("\n")

	if st.Answers[st.CurrentIndex].Skipped {
		b.WriteString(layout.Centered(width, theme.Hint, "skipped"))
		b.WriteString("\n")
	}
	if p.notice != "" {
		b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Accent), p.notice))
		b.WriteString("\n")
	}
	if st.Warning {
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, theme.Warning,
			fmt.Sprintf("Less than a minute left (%s)", quiz.FormatClock(st.TimeRemaining))))
	}

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int, st quiz.State) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(layout.Centered(width, theme.Title, "Finish the test now?"))
	b.WriteString("\n")

	unanswered := 0
	for _, a := range st.Answers {
		if !a.Valid() {
			unanswered++
		}
	}
	detail := "Your answers will be scored as they are."
	if unanswered > 0 {
		detail = fmt.Sprintf("%d unanswered question(s) will count as blank.", unanswered)
	}
	b.WriteString(layout.Centered(width, theme.Hint, detail))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, finish"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))

	return b.String()
}

// variantBadge tags a dataset as a profile or a scored test.
func variantBadge(v dataset.Variant) string {
	if v == dataset.VariantScored {
		return theme.Badge("SCORED", theme.ScoredColor)
	}
	return theme.Badge("PROFILE", theme.ProfileColor)
}
