package quiz

import (
	"math"
	"strconv"
	"strings"
)

// Answer is the response state of one question. At most one of Key,
// Choice and Number is set, and never together with Skipped.
type Answer struct {
	Key     string   `json:"key,omitempty"`    // letter-choice
	Choice  *int     `json:"choice,omitempty"` // indexed-choice
	Number  *float64 `json:"number,omitempty"` // numeric
	Skipped bool     `json:"skipped"`
}

// KeyAnswer selects a letter option.
func KeyAnswer(key string) Answer { return Answer{Key: key} }

// ChoiceAnswer selects an option by position.
func ChoiceAnswer(i int) Answer { return Answer{Choice: &i} }

// NumberAnswer records a numeric response.
func NumberAnswer(n float64) Answer { return Answer{Number: &n} }

// HasValue reports whether a non-empty value is present.
func (a Answer) HasValue() bool {
	return a.Key != "" || a.Choice != nil || a.Number != nil
}

// Valid reports whether the answer lets navigation advance.
func (a Answer) Valid() bool {
	return a.HasValue() || a.Skipped
}

// AnswerStore holds one Answer per question, addressed by index. Indices
// outside [0, Len()) are a programming error.
type AnswerStore struct {
	answers []Answer
}

// NewAnswerStore creates a store with n unset answers.
func NewAnswerStore(n int) *AnswerStore {
	return &AnswerStore{answers: make([]Answer, n)}
}

// Set writes the response for question i and clears its skipped flag.
func (s *AnswerStore) Set(i int, a Answer) {
	a.Skipped = false
	s.answers[i] = a
}

// SetSkipped marks question i skipped and drops any value.
func (s *AnswerStore) SetSkipped(i int) {
	s.answers[i] = Answer{Skipped: true}
}

// Clear unsets question i.
func (s *AnswerStore) Clear(i int) {
	s.answers[i] = Answer{}
}

// Get returns the current answer for question i.
func (s *AnswerStore) Get(i int) Answer {
	return s.answers[i]
}

// HasValidAnswer reports whether question i has a value or was skipped.
func (s *AnswerStore) HasValidAnswer(i int) bool {
	return s.answers[i].Valid()
}

// Len returns the number of questions tracked.
func (s *AnswerStore) Len() int {
	return len(s.answers)
}

// All returns a copy of every answer in question order.
func (s *AnswerStore) All() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Reset clears every answer.
func (s *AnswerStore) Reset() {
	for i := range s.answers {
		s.answers[i] = Answer{}
	}
}

// ParseNumber converts free-text numeric input. Empty input parses to nil
// with ok set, which clears the answer. Text that is not a finite number
// is rejected.
func ParseNumber(text string) (n *float64, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}
