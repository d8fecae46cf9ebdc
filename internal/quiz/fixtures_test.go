package quiz

import (
	"sync"
	"time"

	"github.com/abhisek/quizbox/internal/dataset"
)

func intp(i int) *int           { return &i }
func floatp(f float64) *float64 { return &f }

func letterOpts() []dataset.Option {
	return []dataset.Option{{Key: "A", Text: "a"}, {Key: "B", Text: "b"}, {Key: "C", Text: "c"}, {Key: "D", Text: "d"}}
}

// profileDataset has five letter questions and tie-breaks on the first and
// fourth.
func profileDataset() *dataset.Dataset {
	ds := &dataset.Dataset{
		ID:       "persona",
		Title:    "Persona",
		Variant:  dataset.VariantProfile,
		Letters:  []string{"A", "B", "C", "D"},
		Priority: []string{"A", "B", "C", "D"},
		TieBreak: []dataset.QuestionID{"1", "4"},
		Profiles: map[string]dataset.Profile{
			"A": {Title: "Architect", Role: "designs", Superpower: "structure", Learning: []string{"patterns"}},
			"B": {Title: "Builder", Role: "ships", Superpower: "speed", Learning: []string{"tools"}},
			"C": {Title: "Critic", Role: "reviews", Superpower: "focus"},
			"D": {Title: "Dreamer", Role: "imagines", Superpower: "ideas"},
		},
	}
	for i := 1; i <= 5; i++ {
		ds.Questions = append(ds.Questions, dataset.Question{
			ID:      dataset.QuestionID(string(rune('0' + i))),
			Text:    "pick one",
			Kind:    dataset.KindLetterChoice,
			Options: letterOpts(),
		})
	}
	return ds
}

// scoredDataset has a choice question, a numeric question with tolerance
// and an exact numeric question.
func scoredDataset(limit int) *dataset.Dataset {
	return &dataset.Dataset{
		ID:           "arith",
		Title:        "Arithmetic",
		Variant:      dataset.VariantScored,
		TimeLimitSec: limit,
		Questions: []dataset.Question{
			{ID: "1", Text: "2+2", Kind: dataset.KindIndexedChoice, Options: []dataset.Option{{Text: "3"}, {Text: "4"}, {Text: "5"}}, CorrectKey: intp(1)},
			{ID: "2", Text: "about ten", Kind: dataset.KindNumeric, CorrectNumber: floatp(10), Tolerance: 2},
			{ID: "3", Text: "3*3", Kind: dataset.KindNumeric, CorrectNumber: floatp(9)},
		},
		ResultBands: []dataset.ResultBand{
			{Min: 0, Max: 1, Title: "Low", Text: "keep going"},
			{Min: 2, Max: 3, Title: "High", Text: "well done"},
		},
	}
}

// fakeScheduler records scheduled callbacks and cancellations so tests can
// fire ticks by hand.
type fakeScheduler struct {
	mu       sync.Mutex
	fns      []func()
	cancels  int
	interval time.Duration
}

func (f *fakeScheduler) Every(d time.Duration, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interval = d
	f.fns = append(f.fns, fn)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancels++
	}
}

// fire invokes the most recently scheduled callback.
func (f *fakeScheduler) fire() {
	f.mu.Lock()
	fn := f.fns[len(f.fns)-1]
	f.mu.Unlock()
	fn()
}

func (f *fakeScheduler) cancelCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancels
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
