package play

import (
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/dataset"
	"github.com/abhisek/quizbox/internal/export"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// Sinks are the export targets available to the play screens.
type Sinks struct {
	Files   export.Sink // written on demand from the result screen
	History export.Sink // written once when a run finishes
}

// PlayScreen runs one quiz session: name entry, questions, and the quit
// confirmation. It hands over to ResultScreen when the session finishes.
type PlayScreen struct {
	sess  *quiz.Session
	sinks Sinks

	input       components.TextInput
	options     components.OptionList
	shown       int // question index the widgets were built for
	confirmQuit bool
	notice      string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)
var _ screen.EscCapturer = (*PlayScreen)(nil)

// New creates a PlayScreen for a session in the intro phase.
func New(sess *quiz.Session, sinks Sinks) *PlayScreen {
	return &PlayScreen{
		sess:  sess,
		sinks: sinks,
		input: components.NewTextInput("Your name (optional)", false, 40),
		shown: -1,
	}
}

func (p *PlayScreen) Init() tea.Cmd {
	return p.input.Init()
}

func (p *PlayScreen) Title() string {
	return p.sess.Dataset().Title
}

// CapturesEsc keeps Esc inside the screen while questions are shown so it
// can ask for confirmation instead of dropping the run.
func (p *PlayScreen) CapturesEsc() bool {
	return p.sess.State().Phase == quiz.PhaseActive
}

func (p *PlayScreen) Status() string {
	st := p.sess.State()
	if st.TimeLimit == 0 {
		return ""
	}
	clock := "⏱ " + quiz.FormatClock(st.TimeRemaining)
	if st.Warning {
		return theme.Warning.Render(clock)
	}
	return theme.Clock.Render(clock)
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	st := p.sess.State()
	if p.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish now"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if st.Phase == quiz.PhaseIntro {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}

	q := p.sess.Question(st.CurrentIndex)
	hints := []layout.KeyHint{}
	switch q.Kind {
	case dataset.KindLetterChoice:
		hints = append(hints,
			layout.KeyHint{Key: q.Options[0].Key + "-" + q.Options[len(q.Options)-1].Key, Description: "Choose"},
			layout.KeyHint{Key: "Space", Description: "Pick"})
	case dataset.KindIndexedChoice:
		hints = append(hints,
			layout.KeyHint{Key: "1-" + strconv.Itoa(len(q.Options)), Description: "Choose"},
			layout.KeyHint{Key: "Space", Description: "Pick"})
	case dataset.KindNumeric:
		hints = append(hints, layout.KeyHint{Key: "0-9", Description: "Type"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Enter", Description: "Next"},
		layout.KeyHint{Key: "Shift+Tab", Description: "Back"},
	)
	if p.sess.Dataset().Variant == dataset.VariantScored {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Skip"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return p.handleTick(msg)
	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.acceptsText() {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PlayScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != p.sess.Generation() {
		return p, nil
	}
	if p.sess.State().Phase != quiz.PhaseActive {
		return p, nil
	}
	if p.sess.Tick() {
		return p, p.finished()
	}
	return p, tickCmd(msg.Gen)
}

func (p *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	st := p.sess.State()

	switch st.Phase {
	case quiz.PhaseIntro:
		if key == "enter" {
			return p, p.start()
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	case quiz.PhaseFinished:
		return p, p.finished()
	}

	if p.confirmQuit {
		switch key {
		case "y", "Y":
			p.confirmQuit = false
			_ = p.sess.Finish(quiz.ReasonManual)
			return p, p.finished()
		case "n", "N", "esc":
			p.confirmQuit = false
		}
		return p, nil
	}

	p.notice = ""
	q := p.sess.Question(st.CurrentIndex)

	// Arrow keys edit numeric input, so only choice questions navigate with them.
	if q.Kind != dataset.KindNumeric {
		switch key {
		case "right":
			key = "tab"
		case "left":
			key = "shift+tab"
		}
	}

	switch key {
	case "esc":
		p.confirmQuit = true
		return p, nil
	case "enter", "tab":
		return p.advance(q)
	case "shift+tab":
		p.commitNumber(q)
		if p.sess.Previous() {
			p.syncWidgets()
		}
		return p, nil
	case "ctrl+s":
		if p.sess.Dataset().Variant != dataset.VariantScored {
			return p, nil
		}
		if p.sess.Skip() == quiz.MoveCompleted {
			return p, p.finished()
		}
		p.syncWidgets()
		return p, nil
	}

	switch q.Kind {
	case dataset.KindNumeric:
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	case dataset.KindLetterChoice:
		switch key {
		case "up":
			p.options.Up()
		case "down":
			p.options.Down()
		case "space", " ":
			p.pickCursor(q)
		default:
			letter := strings.ToUpper(key)
			if p.sess.SelectKey(letter) {
				p.syncWidgets()
			}
		}
	case dataset.KindIndexedChoice:
		switch key {
		case "up":
			p.options.Up()
		case "down":
			p.options.Down()
		case "space", " ":
			p.pickCursor(q)
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				if p.sess.SelectChoice(int(key[0] - '1')) {
					p.syncWidgets()
				}
			}
		}
	}
	return p, nil
}

// start leaves the intro and schedules the first tick on timed datasets.
func (p *PlayScreen) start() tea.Cmd {
	if !p.sess.Start(strings.TrimSpace(p.input.Value())) {
		return nil
	}
	p.syncWidgets()
	if p.sess.State().TimeLimit > 0 {
		return tickCmd(p.sess.Generation())
	}
	return nil
}

// pickCursor records the option under the cursor.
func (p *PlayScreen) pickCursor(q dataset.Question) {
	ok := false
	switch q.Kind {
	case dataset.KindLetterChoice:
		if p.options.Cursor < len(q.Options) {
			ok = p.sess.SelectKey(q.Options[p.options.Cursor].Key)
		}
	case dataset.KindIndexedChoice:
		ok = p.sess.SelectChoice(p.options.Cursor)
	}
	if ok {
		p.syncWidgets()
	}
}

// advance records the typed answer and moves forward. Choice questions
// advance only once an option has been picked.
func (p *PlayScreen) advance(q dataset.Question) (screen.Screen, tea.Cmd) {
	switch q.Kind {
	case dataset.KindNumeric:
		if !p.commitNumber(q) {
			p.input.MarkInvalid()
			p.notice = "Enter a number"
			return p, nil
		}
	}

	switch p.sess.Next() {
	case quiz.MoveCompleted:
		return p, p.finished()
	case quiz.MoveDenied:
		p.notice = "Pick an option to continue"
		if q.Kind == dataset.KindNumeric {
			p.notice = "Answer the question to continue"
		}
		return p, nil
	}
	p.syncWidgets()
	return p, nil
}

// commitNumber writes the numeric input into the session. It reports false
// when the text is not a number.
func (p *PlayScreen) commitNumber(q dataset.Question) bool {
	if q.Kind != dataset.KindNumeric {
		return true
	}
	return p.sess.EnterNumber(p.input.Value())
}

// syncWidgets rebuilds the option list and numeric input for the current
// question, preserving the recorded answer.
func (p *PlayScreen) syncWidgets() {
	st := p.sess.State()
	i := st.CurrentIndex
	q := p.sess.Question(i)
	a := st.Answers[i]

	switch q.Kind {
	case dataset.KindNumeric:
		if p.shown != i {
			p.input = components.NewTextInput("Your answer", true, 24)
			if a.Number != nil {
				p.input.SetValue(quiz.FormatNumber(*a.Number))
			}
		}
	default:
		labels := make([]string, len(q.Options))
		texts := make([]string, len(q.Options))
		chosen := -1
		for j, o := range q.Options {
			texts[j] = o.Text
			if q.Kind == dataset.KindLetterChoice {
				labels[j] = o.Key
				if a.Key == o.Key {
					chosen = j
				}
			} else {
				labels[j] = strconv.Itoa(j + 1)
				if a.Choice != nil && *a.Choice == j {
					chosen = j
				}
			}
		}
		cursor := p.options.Cursor
		p.options = components.NewOptionList(labels, texts, chosen)
		if p.shown == i && chosen < 0 {
			p.options.Cursor = min(cursor, len(texts)-1)
		}
	}
	p.shown = i
}

func (p *PlayScreen) acceptsText() bool {
	st := p.sess.State()
	switch st.Phase {
	case quiz.PhaseIntro:
		return true
	case quiz.PhaseActive:
		return !p.confirmQuit && p.sess.Question(st.CurrentIndex).Kind == dataset.KindNumeric
	}
	return false
}

// finished swaps this screen for the result screen.
func (p *PlayScreen) finished() tea.Cmd {
	next := NewResult(p.sess, p.sinks)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// tickCmd returns a 1-second tick command tagged with gen.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{Gen: gen}
	})
}
