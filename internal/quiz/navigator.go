package quiz

// Move is the result of a forward navigation attempt.
type Move int

const (
	MoveDenied    Move = iota // Guard failed, nothing changed
	MoveAdvanced              // Index moved to the next question
	MoveCompleted             // Last question passed, session should finish
)

func (m Move) String() string {
	switch m {
	case MoveAdvanced:
		return "advanced"
	case MoveCompleted:
		return "completed"
	default:
		return "denied"
	}
}

// Navigator moves the current question index within [0, total), gated by
// answer validity.
type Navigator struct {
	index     int
	answers   *AnswerStore
	allowSkip bool
}

// NewNavigator creates a navigator positioned at the first question.
func NewNavigator(answers *AnswerStore, allowSkip bool) *Navigator {
	return &Navigator{answers: answers, allowSkip: allowSkip}
}

// Index returns the current question index.
func (n *Navigator) Index() int {
	return n.index
}

// Total returns the number of questions.
func (n *Navigator) Total() int {
	return n.answers.Len()
}

// CanAdvance reports whether Next would do anything.
func (n *Navigator) CanAdvance() bool {
	return n.answers.HasValidAnswer(n.index)
}

// CanRetreat reports whether Previous would do anything.
func (n *Navigator) CanRetreat() bool {
	return n.index > 0
}

// IsLast reports whether the current question is the final one.
func (n *Navigator) IsLast() bool {
	return n.index == n.answers.Len()-1
}

// Next advances past an answered or skipped question. On the last question
// it reports MoveCompleted and leaves the index where it is.
func (n *Navigator) Next() Move {
	if !n.CanAdvance() {
		return MoveDenied
	}
	if n.index < n.answers.Len()-1 {
		n.index++
		return MoveAdvanced
	}
	return MoveCompleted
}

// Previous steps back one question. Revisiting never requires an answer.
func (n *Navigator) Previous() bool {
	if !n.CanRetreat() {
		return false
	}
	n.index--
	return true
}

// Skip marks the current question skipped and advances. Engines without
// skipping deny it.
func (n *Navigator) Skip() Move {
	if !n.allowSkip {
		return MoveDenied
	}
	n.answers.SetSkipped(n.index)
	return n.Next()
}

// Reset returns to the first question.
func (n *Navigator) Reset() {
	n.index = 0
}
