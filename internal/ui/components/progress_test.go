package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestStepProgress(t *testing.T) {
	p := StepProgress(3, 12, 30)
	if p.Ratio != 0.25 {
		t.Errorf("Ratio = %v, want 0.25", p.Ratio)
	}
	view := p.View()
	assert.True(t, strings.HasPrefix(view, "3/12"), "label first: %q", view)
	assert.Equal(t, 30, lipgloss.Width(view))
}

func TestScoreBar(t *testing.T) {
	tests := []struct {
		score, total int
		suffix       string
	}{
		{0, 10, "0%"},
		{7, 10, "70%"},
		{10, 10, "100%"},
		{0, 0, "0%"},
	}
	for _, tt := range tests {
		p := ScoreBar(tt.score, tt.total, 40)
		if p.Suffix != tt.suffix {
			t.Errorf("ScoreBar(%d, %d).Suffix = %q, want %q", tt.score, tt.total, p.Suffix, tt.suffix)
		}
		assert.Equal(t, 40, lipgloss.Width(p.View()))
	}
}

func TestProgressBarClampsRatio(t *testing.T) {
	over := ProgressBar{Ratio: 1.5, Width: 10, Fill: lipgloss.NewStyle()}
	assert.Equal(t, 10, lipgloss.Width(over.View()))

	under := ProgressBar{Ratio: -1, Width: 10, Fill: lipgloss.NewStyle()}
	assert.Equal(t, 10, lipgloss.Width(under.View()))
}
