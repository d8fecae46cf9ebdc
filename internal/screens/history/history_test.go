package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/store"
)

type stubRepo struct {
	results []store.ResultRecord
	err     error
	opts    store.QueryOpts
}

func (r *stubRepo) Append(context.Context, *store.ResultRecord) error { return nil }
func (r *stubRepo) Query(_ context.Context, opts store.QueryOpts) ([]store.ResultRecord, error) {
	r.opts = opts
	return r.results, r.err
}
func (r *stubRepo) Count(context.Context, string) (int, error) { return len(r.results), nil }
func (r *stubRepo) Prune(context.Context, int) error           { return nil }

func load(t *testing.T, repo *stubRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	msg := s.Init()()
	s.Update(msg)
	return s
}

func TestLoadsNewestResults(t *testing.T) {
	repo := &stubRepo{results: []store.ResultRecord{
		{Sequence: 2, DatasetID: "cognitive", Headline: "7/10 · Sharp", Name: "Ada", Score: 7, Total: 10, SessionID: "s2", FinishedByTimeout: true, CompletedAt: time.Now()},
		{Sequence: 1, DatasetID: "neurocareer", Headline: "Architect", CompletedAt: time.Now()},
	}}
	s := load(t, repo)

	if repo.opts.Limit != pageSize {
		t.Errorf("query limit = %d, want %d", repo.opts.Limit, pageSize)
	}
	view := s.View(120, 30)
	for _, want := range []string{"#2", "7/10 · Sharp", "Architect", "⏱"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestExpandShowsDetails(t *testing.T) {
	repo := &stubRepo{results: []store.ResultRecord{
		{Sequence: 1, DatasetID: "cognitive", Score: 3, Total: 10, Variant: "scored", SessionID: "abc-123", CompletedAt: time.Now()},
	}}
	s := load(t, repo)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(120, 30)
	if !strings.Contains(view, "abc-123") {
		t.Errorf("expanded view missing session id:\n%s", view)
	}
	if !strings.Contains(view, "anonymous") {
		t.Errorf("expanded view missing anonymous name:\n%s", view)
	}
}

func TestNavigationStaysInBounds(t *testing.T) {
	repo := &stubRepo{results: make([]store.ResultRecord, 3)}
	s := load(t, repo)

	for range 5 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.selected != 2 {
		t.Errorf("selected = %d, want 2", s.selected)
	}
	for range 5 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	}
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
}

func TestEmptyAndErrorStates(t *testing.T) {
	s := load(t, &stubRepo{})
	if view := s.View(80, 20); !strings.Contains(view, "No results yet") {
		t.Errorf("empty view = %q", view)
	}

	s = load(t, &stubRepo{err: errors.New("disk full")})
	if view := s.View(80, 20); !strings.Contains(view, "disk full") {
		t.Errorf("error view = %q", view)
	}
}
