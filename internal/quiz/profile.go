package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizbox/internal/dataset"
)

// Tally counts selections per letter.
type Tally map[string]int

// TallyAnswers counts the answered letters of a profile session. Keys that
// are not dataset letters are ignored.
func TallyAnswers(letters []string, answers []Answer) Tally {
	tally := make(Tally, len(letters))
	for _, l := range letters {
		tally[l] = 0
	}
	for _, a := range answers {
		if _, ok := tally[a.Key]; ok {
			tally[a.Key]++
		}
	}
	return tally
}

// Leaders returns the letters sharing the highest count, in letters order.
func (t Tally) Leaders(letters []string) []string {
	best := 0
	for _, l := range letters {
		best = max(best, t[l])
	}
	var out []string
	for _, l := range letters {
		if t[l] == best {
			out = append(out, l)
		}
	}
	return out
}

// Format renders the tally as "A: 2 • B: 1" in letters order.
func (t Tally) Format(letters []string) string {
	parts := make([]string, 0, len(letters))
	for _, l := range letters {
		parts = append(parts, fmt.Sprintf("%s: %d", l, t[l]))
	}
	return strings.Join(parts, " • ")
}

// Winner resolves the winning letter. Ties are broken by the answers to the
// tie-break questions in order, then by the first leader in priority, then
// by the first leader in letters order.
func Winner(letters, priority []string, tieBreak []int, answers []Answer) (string, Tally) {
	tally := TallyAnswers(letters, answers)
	leaders := tally.Leaders(letters)
	if len(leaders) == 0 {
		return "", tally
	}
	if len(leaders) == 1 {
		return leaders[0], tally
	}

	isLeader := make(map[string]bool, len(leaders))
	for _, l := range leaders {
		isLeader[l] = true
	}

	for _, i := range tieBreak {
		if i < 0 || i >= len(answers) {
			continue
		}
		if k := answers[i].Key; isLeader[k] {
			return k, tally
		}
	}
	for _, l := range priority {
		if isLeader[l] {
			return l, tally
		}
	}
	return leaders[0], tally
}

// ProfileScorer evaluates letter-choice sessions.
type ProfileScorer struct{}

func (ProfileScorer) Evaluate(ds *dataset.Dataset, answers []Answer) (Outcome, error) {
	key, tally := Winner(ds.Letters, ds.Priority, ds.TieBreakIndices(), answers)
	profile, ok := ds.Profiles[key]
	if !ok {
		return Outcome{}, fmt.Errorf("evaluate profile %q: %w", key, ErrProfileNotFound)
	}
	return Outcome{
		Variant:    dataset.VariantProfile,
		Total:      ds.Total(),
		ProfileKey: key,
		Profile:    &profile,
		Tally:      tally,
		Summary:    tally.Format(ds.Letters),
	}, nil
}
