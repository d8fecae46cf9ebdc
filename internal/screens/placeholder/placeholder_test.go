package placeholder

import (
	"errors"
	"strings"
	"testing"
)

func TestViewShowsMessage(t *testing.T) {
	p := New("History", "History is turned off.")
	if got := p.Title(); got != "History" {
		t.Errorf("Title() = %q, want %q", got, "History")
	}
	view := p.View(80, 20)
	if !strings.Contains(view, "History is turned off.") {
		t.Errorf("view missing message:\n%s", view)
	}
	if !strings.Contains(view, "Unavailable") {
		t.Errorf("view missing heading:\n%s", view)
	}
}

func TestNewErrorShowsCause(t *testing.T) {
	p := NewError("Dataset", errors.New("dataset cognitive: no questions"))
	view := p.View(80, 20)
	if !strings.Contains(view, "no questions") {
		t.Errorf("view missing error:\n%s", view)
	}
	if !strings.Contains(view, "Something went wrong") {
		t.Errorf("view missing error heading:\n%s", view)
	}
}
