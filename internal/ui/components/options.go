package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// OptionList renders the answer options of a question with a cursor, the
// current answer and, once revealed, the correct option.
type OptionList struct {
	Labels  []string // shown before each option, e.g. "A" or "1"
	Options []string
	Cursor  int
	Chosen  int // -1 when unanswered
	Correct int // -1 unless revealed
}

// NewOptionList creates a list with the cursor on the chosen option, or the
// first one when nothing is chosen.
func NewOptionList(labels, options []string, chosen int) OptionList {
	cursor := 0
	if chosen >= 0 && chosen < len(options) {
		cursor = chosen
	}
	return OptionList{
		Labels:  labels,
		Options: options,
		Cursor:  cursor,
		Chosen:  chosen,
		Correct: -1,
	}
}

// Up moves the cursor up one option.
func (o *OptionList) Up() {
	if o.Cursor > 0 {
		o.Cursor--
	}
}

// Down moves the cursor down one option.
func (o *OptionList) Down() {
	if o.Cursor < len(o.Options)-1 {
		o.Cursor++
	}
}

// View renders the options, one per line.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		label := fmt.Sprint(i + 1)
		if i < len(o.Labels) {
			label = o.Labels[i]
		}

		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}
		mark := " "
		if i == o.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)

		var style lipgloss.Style
		switch {
		case o.Correct >= 0 && i == o.Correct:
			style = theme.Correct
		case o.Correct >= 0 && i == o.Chosen:
			style = theme.Incorrect
		case i == o.Chosen:
			style = theme.Chosen
		case i == o.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
