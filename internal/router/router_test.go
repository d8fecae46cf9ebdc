package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/screen"
)

// fakeScreen records what the router delivered to it.
type fakeScreen struct {
	title   string
	inits   int
	resumed []string
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(ResumedMsg); ok {
		s.resumed = append(s.resumed, m.From)
	}
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return "view of " + s.title }
func (s *fakeScreen) Title() string        { return s.title }

func TestPushRunsInit(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	r := New(home)

	play := &fakeScreen{title: "Cognitive"}
	r.Update(PushScreenMsg{Screen: play})

	if r.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", r.Depth())
	}
	assert.Same(t, play, r.Active())
	assert.Equal(t, 1, play.inits)
	assert.Equal(t, "view of Cognitive", r.View(80, 24))
}

func TestPopResumesScreenBelow(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	r := New(home)
	r.Push(&fakeScreen{title: "History"})

	cmd := r.Update(PopScreenMsg{})
	require.NotNil(t, cmd)
	assert.Same(t, home, r.Active())

	msg := cmd()
	assert.Equal(t, ResumedMsg{From: "History"}, msg)
	r.Update(msg)
	assert.Equal(t, []string{"History"}, home.resumed)
}

func TestPopKeepsRoot(t *testing.T) {
	r := New(&fakeScreen{title: "Home"})

	if cmd := r.Pop(); cmd != nil {
		t.Error("Pop() on the root returned a command")
	}
	if r.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	tests := []struct {
		name string
		open []string
		want []string
	}{
		{"root only", []string{"Welcome"}, []string{"Result"}},
		{"over home", []string{"Home", "Cognitive"}, []string{"Home", "Result"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&fakeScreen{title: tt.open[0]})
			for _, title := range tt.open[1:] {
				r.Push(&fakeScreen{title: title})
			}

			result := &fakeScreen{title: "Result"}
			r.Update(ReplaceScreenMsg{Screen: result})

			assert.Equal(t, tt.want, r.Trail())
			assert.Equal(t, 1, result.inits)
		})
	}
}

func TestOtherMessagesReachActiveScreen(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	r := New(home)
	play := &fakeScreen{title: "Cognitive"}
	r.Push(play)

	r.Update(ResumedMsg{From: "x"})
	assert.Equal(t, []string{"x"}, play.resumed)
	assert.Empty(t, home.resumed)
}
