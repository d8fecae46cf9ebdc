package quiz

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/quizbox/internal/dataset"
)

// Blank is shown for a question without a usable answer.
const Blank = "—"

// IsCorrect grades one answer against its question.
func IsCorrect(q dataset.Question, a Answer) bool {
	switch q.Kind {
	case dataset.KindIndexedChoice:
		return a.Choice != nil && q.CorrectKey != nil && *a.Choice == *q.CorrectKey
	case dataset.KindNumeric:
		if a.Number == nil || q.CorrectNumber == nil {
			return false
		}
		n := *a.Number
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return false
		}
		return math.Abs(n-*q.CorrectNumber) <= q.Tolerance
	case dataset.KindLetterChoice:
		return false
	default:
		return false
	}
}

// Mistake pairs an incorrectly answered question with its position.
type Mistake struct {
	Index    int
	Question dataset.Question
}

// Score counts correct answers and lists the misses in question order.
func Score(questions []dataset.Question, answers []Answer) (int, []Mistake) {
	score := 0
	var mistakes []Mistake
	for i, q := range questions {
		var a Answer
		if i < len(answers) {
			a = answers[i]
		}
		if IsCorrect(q, a) {
			score++
			continue
		}
		mistakes = append(mistakes, Mistake{Index: i, Question: q})
	}
	return score, mistakes
}

// FindBand returns the first band containing score.
func FindBand(bands []dataset.ResultBand, score int) (dataset.ResultBand, bool) {
	for _, b := range bands {
		if b.Contains(score) {
			return b, true
		}
	}
	return dataset.ResultBand{}, false
}

// FormatNumber renders a float without trailing zeros.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// AnswerText renders an answer the way the result screen lists it: the
// option text, the number, or Blank.
func AnswerText(q dataset.Question, a Answer) string {
	switch q.Kind {
	case dataset.KindIndexedChoice:
		if a.Choice != nil && *a.Choice >= 0 && *a.Choice < len(q.Options) {
			return q.Options[*a.Choice].Text
		}
	case dataset.KindNumeric:
		if a.Number != nil {
			return FormatNumber(*a.Number)
		}
	case dataset.KindLetterChoice:
		if a.Key != "" {
			return a.Key
		}
	}
	return Blank
}

// AnswerKey renders the expected answer of a question.
func AnswerKey(q dataset.Question) string {
	switch q.Kind {
	case dataset.KindIndexedChoice:
		if q.CorrectKey != nil && *q.CorrectKey >= 0 && *q.CorrectKey < len(q.Options) {
			return q.Options[*q.CorrectKey].Text
		}
	case dataset.KindNumeric:
		if q.CorrectNumber != nil {
			s := FormatNumber(*q.CorrectNumber)
			if q.Tolerance > 0 {
				s += " ± " + FormatNumber(q.Tolerance)
			}
			return s
		}
	case dataset.KindLetterChoice:
	}
	return Blank
}

// ScoredScorer evaluates indexed-choice and numeric sessions.
type ScoredScorer struct{}

func (ScoredScorer) Evaluate(ds *dataset.Dataset, answers []Answer) (Outcome, error) {
	score, mistakes := Score(ds.Questions, answers)
	out := Outcome{
		Variant:  dataset.VariantScored,
		Total:    ds.Total(),
		Score:    score,
		Mistakes: mistakes,
	}
	if b, ok := FindBand(ds.ResultBands, score); ok {
		out.Band = &b
	}

	parts := make([]string, len(ds.Questions))
	for i, q := range ds.Questions {
		var a Answer
		if i < len(answers) {
			a = answers[i]
		}
		parts[i] = fmt.Sprintf("%s: %s", q.Label(), AnswerText(q, a))
	}
	out.Summary = strings.Join(parts, " • ")
	return out, nil
}
