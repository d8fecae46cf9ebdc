package play

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/dataset"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func intp(i int) *int           { return &i }
func floatp(f float64) *float64 { return &f }

func profileDataset() *dataset.Dataset {
	opts := []dataset.Option{{Key: "A", Text: "plan it"}, {Key: "B", Text: "build it"}}
	return &dataset.Dataset{
		ID:       "persona",
		Title:    "Persona",
		Variant:  dataset.VariantProfile,
		Letters:  []string{"A", "B"},
		Priority: []string{"A", "B"},
		Profiles: map[string]dataset.Profile{
			"A": {Title: "Architect", Role: "designs"},
			"B": {Title: "Builder", Role: "ships", Superpower: "speed"},
		},
		Questions: []dataset.Question{
			{ID: "1", Text: "first", Kind: dataset.KindLetterChoice, Options: opts},
			{ID: "2", Text: "second", Kind: dataset.KindLetterChoice, Options: opts},
		},
	}
}

func scoredDataset(limit int) *dataset.Dataset {
	return &dataset.Dataset{
		ID:           "arith",
		Title:        "Arithmetic",
		Variant:      dataset.VariantScored,
		TimeLimitSec: limit,
		Questions: []dataset.Question{
			{ID: "1", Text: "2+2", Kind: dataset.KindIndexedChoice, Options: []dataset.Option{{Text: "3"}, {Text: "4"}}, CorrectKey: intp(1)},
			{ID: "2", Text: "3*3", Kind: dataset.KindNumeric, CorrectNumber: floatp(9)},
		},
		ResultBands: []dataset.ResultBand{
			{Min: 0, Max: 1, Title: "Low"},
			{Min: 2, Max: 2, Title: "High", Text: "well done"},
		},
	}
}

type recordSink struct {
	payloads []quiz.Payload
}

func (r *recordSink) Write(_ context.Context, p quiz.Payload) (string, error) {
	r.payloads = append(r.payloads, p)
	return "history #1", nil
}

func newPlay(t *testing.T, ds *dataset.Dataset) (*PlayScreen, *quiz.Session) {
	t.Helper()
	sess, err := quiz.New(ds)
	require.NoError(t, err)
	p := New(sess, Sinks{})
	p.Init()
	return p, sess
}

func send(t *testing.T, s screen.Screen, msgs ...tea.Msg) (screen.Screen, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, m := range msgs {
		s, cmd = s.Update(m)
	}
	return s, cmd
}

// replacement runs cmd and returns the screen it asks the router to show.
func replacement(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	require.NotNil(t, cmd, "expected a command")
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg")
	return msg.Screen
}

func TestIntroStartsWithTrimmedName(t *testing.T) {
	p, sess := newPlay(t, profileDataset())
	assert.False(t, p.CapturesEsc())

	p.input.SetValue("  Ada ")
	send(t, p, specialKey(tea.KeyEnter))

	st := sess.State()
	assert.Equal(t, quiz.PhaseActive, st.Phase)
	assert.Equal(t, "Ada", st.Name)
	assert.True(t, p.CapturesEsc())
	assert.Contains(t, p.View(100, 30), "first")
}

func TestProfileRunEndsOnResultScreen(t *testing.T) {
	p, sess := newPlay(t, profileDataset())
	send(t, p, specialKey(tea.KeyEnter))

	send(t, p, keyPress('b'))
	if got := sess.State().Answers[0].Key; got != "B" {
		t.Fatalf("answer[0] = %q, want B", got)
	}
	send(t, p, specialKey(tea.KeyEnter))
	if got := sess.State().CurrentIndex; got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}

	_, cmd := send(t, p, keyPress('b'), specialKey(tea.KeyEnter))
	next := replacement(t, cmd)
	res, ok := next.(*ResultScreen)
	require.True(t, ok, "expected *ResultScreen, got %T", next)
	assert.Equal(t, quiz.PhaseFinished, sess.State().Phase)
	assert.Contains(t, res.View(100, 30), "Builder")
}

func TestEnterNeedsPickedOption(t *testing.T) {
	p, sess := newPlay(t, profileDataset())
	send(t, p, specialKey(tea.KeyEnter))

	send(t, p, specialKey(tea.KeyDown), specialKey(tea.KeyEnter))
	st := sess.State()
	assert.Equal(t, 0, st.CurrentIndex, "enter without a pick must not advance")
	assert.False(t, st.Answers[0].Valid())
	assert.Contains(t, p.View(100, 30), "Pick an option to continue")

	send(t, p, specialKey(tea.KeySpace))
	if got := sess.State().Answers[0].Key; got != "B" {
		t.Errorf("answer[0] = %q, want B", got)
	}
	send(t, p, specialKey(tea.KeyEnter))
	assert.Equal(t, 1, sess.State().CurrentIndex)
}

func TestSpacePicksIndexedOption(t *testing.T) {
	p, sess := newPlay(t, scoredDataset(0))
	send(t, p, specialKey(tea.KeyEnter))

	send(t, p, specialKey(tea.KeyEnter))
	assert.Equal(t, 0, sess.State().CurrentIndex)

	send(t, p, specialKey(tea.KeyDown), specialKey(tea.KeySpace), specialKey(tea.KeyEnter))
	st := sess.State()
	require.NotNil(t, st.Answers[0].Choice)
	assert.Equal(t, 1, *st.Answers[0].Choice)
	assert.Equal(t, 1, st.CurrentIndex)
}

func TestPreviousKeepsChosenOption(t *testing.T) {
	p, sess := newPlay(t, profileDataset())
	send(t, p, specialKey(tea.KeyEnter))
	send(t, p, keyPress('b'), specialKey(tea.KeyEnter))

	send(t, p, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if got := sess.State().CurrentIndex; got != 0 {
		t.Fatalf("index = %d, want 0", got)
	}
	assert.Equal(t, 1, p.options.Chosen)
	assert.Equal(t, 1, p.options.Cursor)
}

func TestNumericInput(t *testing.T) {
	p, sess := newPlay(t, scoredDataset(0))
	send(t, p, specialKey(tea.KeyEnter))
	send(t, p, keyPress('2'), specialKey(tea.KeyEnter))
	require.Equal(t, 1, sess.State().CurrentIndex)

	// Empty input cannot advance.
	send(t, p, specialKey(tea.KeyEnter))
	assert.Equal(t, 1, sess.State().CurrentIndex)
	assert.NotEmpty(t, p.notice)

	// Text that is not a number is rejected.
	p.input.SetValue("nine")
	send(t, p, specialKey(tea.KeyEnter))
	assert.True(t, p.input.Invalid())
	assert.Equal(t, "Enter a number", p.notice)
	assert.Nil(t, sess.State().Answers[1].Number)

	p.input.SetValue("9")
	_, cmd := send(t, p, specialKey(tea.KeyEnter))
	replacement(t, cmd)

	out, err := sess.Outcome()
	require.NoError(t, err)
	assert.Equal(t, 2, out.Score)
}

func TestSkipOnlyInScoredRuns(t *testing.T) {
	ctrlS := tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}

	p, sess := newPlay(t, profileDataset())
	send(t, p, specialKey(tea.KeyEnter), ctrlS)
	assert.Equal(t, 0, sess.State().CurrentIndex)

	p, sess = newPlay(t, scoredDataset(0))
	send(t, p, specialKey(tea.KeyEnter), ctrlS)
	st := sess.State()
	assert.Equal(t, 1, st.CurrentIndex)
	assert.True(t, st.Answers[0].Skipped)

	_, cmd := send(t, p, ctrlS)
	replacement(t, cmd)
	assert.Equal(t, quiz.PhaseFinished, sess.State().Phase)
}

func TestTimerTicks(t *testing.T) {
	p, sess := newPlay(t, scoredDataset(2))
	_, cmd := send(t, p, specialKey(tea.KeyEnter))
	require.NotNil(t, cmd, "timed start should schedule a tick")
	gen := sess.Generation()

	// A tick from another generation is dropped.
	_, cmd = send(t, p, timerTickMsg{Gen: gen + 1})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, sess.State().TimeRemaining)

	_, cmd = send(t, p, timerTickMsg{Gen: gen})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, sess.State().TimeRemaining)
	assert.Contains(t, p.Status(), "0:01")

	_, cmd = send(t, p, timerTickMsg{Gen: gen})
	replacement(t, cmd)
	st := sess.State()
	assert.Equal(t, quiz.PhaseFinished, st.Phase)
	assert.Equal(t, quiz.ReasonTimeout, st.Reason)
}

func TestUntimedRunHasNoStatus(t *testing.T) {
	p, _ := newPlay(t, scoredDataset(0))
	_, cmd := send(t, p, specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Empty(t, p.Status())
}

func TestQuitConfirm(t *testing.T) {
	p, sess := newPlay(t, scoredDataset(0))
	send(t, p, specialKey(tea.KeyEnter))

	send(t, p, specialKey(tea.KeyEscape))
	require.True(t, p.confirmQuit)
	assert.Contains(t, p.View(100, 30), "Finish the test now?")

	send(t, p, keyPress('n'))
	assert.False(t, p.confirmQuit)
	assert.Equal(t, quiz.PhaseActive, sess.State().Phase)

	send(t, p, specialKey(tea.KeyEscape))
	_, cmd := send(t, p, keyPress('y'))
	replacement(t, cmd)
	st := sess.State()
	assert.Equal(t, quiz.PhaseFinished, st.Phase)
	assert.Equal(t, quiz.ReasonManual, st.Reason)
}

func finishScored(t *testing.T, sinks Sinks) (*ResultScreen, *quiz.Session) {
	t.Helper()
	sess, err := quiz.New(scoredDataset(0))
	require.NoError(t, err)
	sess.Start("Ada")
	require.True(t, sess.SelectChoice(1))
	sess.Next()
	require.True(t, sess.EnterNumber("8"))
	sess.Next()
	require.Equal(t, quiz.PhaseFinished, sess.State().Phase)
	return NewResult(sess, sinks), sess
}

func TestResultRecordsHistory(t *testing.T) {
	hist := &recordSink{}
	r, _ := finishScored(t, Sinks{History: hist})

	cmd := r.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	require.Len(t, hist.payloads, 1)
	assert.Equal(t, "arith", hist.payloads[0].Meta().DatasetID)

	send(t, r, msg)
	view := r.View(100, 30)
	assert.Contains(t, view, "history #1")
	assert.Contains(t, view, "1/2")
	assert.Contains(t, view, "№2")
}

func TestResultExportOnDemand(t *testing.T) {
	files := &recordSink{}
	r, _ := finishScored(t, Sinks{Files: files})
	assert.Nil(t, r.Init(), "no history sink, nothing to record")

	_, cmd := send(t, r, keyPress('e'))
	require.NotNil(t, cmd)
	send(t, r, cmd())
	require.Len(t, files.payloads, 1)
	assert.Equal(t, "history #1", r.written)
}

func TestResultAnswerKeyToggle(t *testing.T) {
	r, _ := finishScored(t, Sinks{})

	send(t, r, keyPress('k'))
	require.True(t, r.showKey)
	view := r.View(100, 30)
	assert.Contains(t, view, "→ 9")

	send(t, r, keyPress('k'))
	assert.False(t, r.showKey)
}

func TestResultRetake(t *testing.T) {
	r, sess := finishScored(t, Sinks{})
	oldID := sess.ID()

	_, cmd := send(t, r, keyPress('r'))
	next := replacement(t, cmd)
	_, ok := next.(*PlayScreen)
	require.True(t, ok, "expected *PlayScreen, got %T", next)

	st := sess.State()
	assert.Equal(t, quiz.PhaseIntro, st.Phase)
	assert.NotEqual(t, oldID, st.SessionID)
	for i, a := range st.Answers {
		assert.False(t, a.HasValue(), "answer %d not cleared", i)
	}
}

func TestResultWritesFinishedRunAfterRetake(t *testing.T) {
	sess, err := quiz.New(profileDataset())
	require.NoError(t, err)
	sess.Start("Ada")
	for range 2 {
		sess.SelectKey("B")
		sess.Next()
	}
	finishedID := sess.ID()

	hist := &recordSink{}
	r := NewResult(sess, Sinks{History: hist})
	record := r.Init()
	require.NotNil(t, record)

	// Retake before the history write runs.
	send(t, r, keyPress('r'))
	require.Equal(t, quiz.PhaseIntro, sess.State().Phase)
	record()

	require.Len(t, hist.payloads, 1)
	got, ok := hist.payloads[0].(quiz.ProfilePayload)
	require.True(t, ok, "payload is %T", hist.payloads[0])
	if got.ProfileKey != "B" {
		t.Errorf("ProfileKey = %q, want B", got.ProfileKey)
	}
	require.Len(t, got.Answers, 2)
	for i, a := range got.Answers {
		require.NotNil(t, a, "answer %d", i)
		assert.Equal(t, "B", *a)
	}
	assert.Equal(t, finishedID, got.Meta().SessionID)
}

func TestResultExportBeforeRetake(t *testing.T) {
	files := &recordSink{}
	r, sess := finishScored(t, Sinks{Files: files})
	finishedID := sess.ID()

	_, write := send(t, r, keyPress('e'))
	require.NotNil(t, write)
	send(t, r, keyPress('r'))
	write()

	require.Len(t, files.payloads, 1)
	got, ok := files.payloads[0].(quiz.ScoredPayload)
	require.True(t, ok, "payload is %T", files.payloads[0])
	assert.Equal(t, 1, got.Score)
	assert.Equal(t, finishedID, got.Meta().SessionID)
}

func TestResultShowsProfile(t *testing.T) {
	sess, err := quiz.New(profileDataset())
	require.NoError(t, err)
	sess.Start("")
	for range 2 {
		sess.SelectKey("A")
		sess.Next()
	}

	r := NewResult(sess, Sinks{})
	view := r.View(100, 30)
	assert.Contains(t, view, "Architect")
	assert.Contains(t, view, "designs")
	assert.False(t, strings.Contains(view, "your result"), "anonymous run should not greet")
}
