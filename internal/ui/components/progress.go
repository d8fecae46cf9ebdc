package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// ProgressBar is a horizontal bar with an optional label on the left and
// suffix on the right.
type ProgressBar struct {
	Label  string
	Suffix string
	Ratio  float64 // clamped to [0, 1] when drawn
	Width  int     // total width including label and suffix
	Fill   lipgloss.Style
}

// StepProgress shows how many questions have an answer.
func StepProgress(done, total, width int) ProgressBar {
	return ProgressBar{
		Label: fmt.Sprintf("%d/%d", done, total),
		Ratio: ratio(done, total),
		Width: width,
		Fill:  theme.ProgressFilled,
	}
}

// ScoreBar shows a test score. The fill turns from red to amber to green
// as the share of correct answers grows.
func ScoreBar(score, total, width int) ProgressBar {
	r := ratio(score, total)
	pct := 0
	if total > 0 {
		pct = score * 100 / total
	}
	fill := theme.ProgressFilled.Background(theme.Success)
	switch {
	case r < 0.4:
		fill = fill.Background(theme.Error)
	case r < 0.7:
		fill = fill.Background(theme.Accent)
	}
	return ProgressBar{
		Label:  fmt.Sprintf("%d/%d", score, total),
		Suffix: fmt.Sprintf("%d%%", pct),
		Ratio:  r,
		Width:  width,
		Fill:   fill,
	}
}

func ratio(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func (p ProgressBar) View() string {
	var left, right string
	if p.Label != "" {
		left = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.Suffix != "" {
		right = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Suffix)
	}

	barWidth := max(4, p.Width-lipgloss.Width(left)-lipgloss.Width(right))
	r := min(1, max(0, p.Ratio))
	filled := int(float64(barWidth) * r)

	return left +
		p.Fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		right
}
