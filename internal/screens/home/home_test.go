package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/dataset"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screens/history"
	"github.com/abhisek/quizbox/internal/screens/placeholder"
	"github.com/abhisek/quizbox/internal/screens/play"
	"github.com/abhisek/quizbox/internal/store"
)

type countRepo struct {
	n int
}

func (r *countRepo) Append(context.Context, *store.ResultRecord) error { return nil }
func (r *countRepo) Query(context.Context, store.QueryOpts) ([]store.ResultRecord, error) {
	return nil, nil
}
func (r *countRepo) Count(context.Context, string) (int, error) { return r.n, nil }
func (r *countRepo) Prune(context.Context, int) error           { return nil }

func builtins(t *testing.T) []*dataset.Dataset {
	t.Helper()
	all, err := dataset.Builtins()
	require.NoError(t, err)
	require.NotEmpty(t, all)
	return all
}

// pushed runs cmd and returns the batch's PushScreenMsg, if any.
func pushed(t *testing.T, cmd tea.Cmd) router.PushScreenMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case router.PushScreenMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(router.PushScreenMsg); ok {
				return m
			}
		}
	}
	t.Fatal("no PushScreenMsg in command")
	return router.PushScreenMsg{}
}

func TestMenuListsDatasets(t *testing.T) {
	all := builtins(t)
	h := New(Options{Datasets: all})

	labels := h.menu.Labels()
	require.Len(t, labels, len(all)+2)
	for i, ds := range all {
		assert.Equal(t, strings.ToUpper(ds.Title), labels[i])
	}
	assert.Equal(t, "HISTORY", labels[len(all)])
	assert.Equal(t, "EXIT", labels[len(all)+1])
}

func TestSelectDatasetPushesPlay(t *testing.T) {
	h := New(Options{Datasets: builtins(t)})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg := pushed(t, cmd)
	_, ok := msg.Screen.(*play.PlayScreen)
	assert.True(t, ok, "expected *play.PlayScreen, got %T", msg.Screen)
}

func TestInvalidDatasetPushesError(t *testing.T) {
	broken := &dataset.Dataset{ID: "broken", Title: "Broken", Variant: dataset.VariantScored}
	h := New(Options{Datasets: []*dataset.Dataset{broken}})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg := pushed(t, cmd)
	p, ok := msg.Screen.(*placeholder.PlaceholderScreen)
	require.True(t, ok, "expected placeholder, got %T", msg.Screen)
	assert.Contains(t, p.View(80, 20), "no questions")
}

func TestHistoryEntry(t *testing.T) {
	all := builtins(t)

	h := New(Options{Datasets: all})
	h.menu.Selected = len(all)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, ok := pushed(t, cmd).Screen.(*placeholder.PlaceholderScreen)
	assert.True(t, ok, "history without a repo should show a placeholder")

	h = New(Options{Datasets: all, Results: &countRepo{}})
	h.menu.Selected = len(all)
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, ok = pushed(t, cmd).Screen.(*history.HistoryScreen)
	assert.True(t, ok, "expected history screen")
}

func TestStatsShowResultCount(t *testing.T) {
	h := New(Options{Datasets: builtins(t), Results: &countRepo{n: 12}})

	cmd := h.Init()
	require.NotNil(t, cmd)
	h.Update(cmd())

	view := h.View(120, 40)
	assert.Contains(t, view, "12 RESULTS")
	assert.Contains(t, view, "TESTS")
}

func TestStatsWithoutHistory(t *testing.T) {
	h := New(Options{Datasets: builtins(t)})
	assert.Nil(t, h.Init())
	assert.Contains(t, h.View(120, 40), "HISTORY OFF")
}

func TestResumeReloadsStats(t *testing.T) {
	repo := &countRepo{n: 1}
	h := New(Options{Datasets: builtins(t), Results: repo})
	h.Update(h.Init()())

	repo.n = 2
	_, cmd := h.Update(router.ResumedMsg{From: "Result"})
	require.NotNil(t, cmd)
	h.Update(cmd())
	assert.Contains(t, h.View(120, 40), "2 RESULTS")
}
