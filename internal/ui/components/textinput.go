package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with quizbox styling.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	invalid     bool
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, numericOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Numeric inputs drop printable keys that cannot
// be part of a decimal number.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if t.NumericOnly && len(kmsg.Text) == 1 && !numericRune(rune(kmsg.Text[0])) {
			return t, nil
		}
		t.invalid = false
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func numericRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+'
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.invalid {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// MarkInvalid flags the value as rejected until the next keystroke.
func (t *TextInput) MarkInvalid() {
	t.invalid = true
}

// Invalid reports whether the value was rejected.
func (t TextInput) Invalid() bool {
	return t.invalid
}
