package quiz

import (
	"fmt"

	"github.com/abhisek/quizbox/internal/dataset"
)

// Outcome is the evaluated result of a finished session. Profile fields are
// set for profile datasets and score fields for scored ones.
type Outcome struct {
	Variant dataset.Variant
	Total   int

	ProfileKey string
	Profile    *dataset.Profile
	Tally      Tally

	Score    int
	Band     *dataset.ResultBand // nil when no band matches
	Mistakes []Mistake

	// Summary is a one-line rendering of the answers or tally.
	Summary string
}

// Headline is the short result title shown on the result screen.
func (o Outcome) Headline() string {
	switch o.Variant {
	case dataset.VariantProfile:
		if o.Profile != nil {
			return o.Profile.Title
		}
		return o.ProfileKey
	default:
		if o.Band != nil {
			return fmt.Sprintf("%d/%d · %s", o.Score, o.Total, o.Band.Title)
		}
		return fmt.Sprintf("%d/%d", o.Score, o.Total)
	}
}

// Scorer aggregates a session's answers into an Outcome.
type Scorer interface {
	Evaluate(ds *dataset.Dataset, answers []Answer) (Outcome, error)
}

// ScorerFor selects the scoring strategy for a dataset variant.
func ScorerFor(ds *dataset.Dataset) (Scorer, error) {
	switch ds.Variant {
	case dataset.VariantProfile:
		return ProfileScorer{}, nil
	case dataset.VariantScored:
		return ScoredScorer{}, nil
	default:
		return nil, fmt.Errorf("select scorer: unknown variant %q", ds.Variant)
	}
}
