package quiz

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizbox/internal/dataset"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseIntro    Phase = iota // Waiting for Start
	PhaseActive                // Answering questions
	PhaseFinished              // Outcome computed
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "intro"
	}
}

// CompletionReason records how a session ended.
type CompletionReason string

const (
	ReasonInProgress CompletionReason = "in-progress"
	ReasonManual     CompletionReason = "manual"
	ReasonTimeout    CompletionReason = "timeout"
)

// State is a read-only snapshot of a session.
type State struct {
	SessionID     string
	Phase         Phase
	CurrentIndex  int
	Total         int
	Answers       []Answer
	TimeLimit     int // seconds, 0 when untimed
	TimeRemaining int // seconds, never negative
	Warning       bool
	StartedAt     time.Time
	FinishedAt    time.Time
	Reason        CompletionReason
	Name          string
	CanAdvance    bool
	CanRetreat    bool
}

// Result is handed to the finish hook once per finished run.
type Result struct {
	State   State
	Outcome Outcome
	Err     error
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithScheduler drives the countdown from sched. Without it the caller must
// call Tick once per second.
func WithScheduler(sched Scheduler) Option {
	return func(s *Session) { s.sched = sched }
}

// WithFinishHook registers fn to run after each finish commits. It is called
// without the session lock held.
func WithFinishHook(fn func(Result)) Option {
	return func(s *Session) { s.onFinish = fn }
}

// Session owns the mutable state of one assessment run over a dataset.
// All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	ds       *dataset.Dataset
	scorer   Scorer
	answers  *AnswerStore
	nav      *Navigator
	timer    *Timer
	sched    Scheduler
	now      func() time.Time
	onFinish func(Result)

	id         string
	gen        int
	phase      Phase
	name       string
	startedAt  time.Time
	finishedAt time.Time
	reason     CompletionReason
	outcome    *Outcome
	err        error
}

// New creates a session in the intro phase. It fails on a nil or invalid
// dataset.
func New(ds *dataset.Dataset, opts ...Option) (*Session, error) {
	if ds == nil {
		return nil, fmt.Errorf("create session: %w", ErrNoDataset)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	scorer, err := ScorerFor(ds)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	answers := NewAnswerStore(ds.Total())
	limit := 0
	if ds.Timed() {
		limit = ds.TimeLimitSec
	}
	s := &Session{
		ds:      ds,
		scorer:  scorer,
		answers: answers,
		nav:     NewNavigator(answers, ds.Variant == dataset.VariantScored),
		timer:   NewTimer(limit),
		now:     time.Now,
		id:      uuid.NewString(),
		phase:   PhaseIntro,
		reason:  ReasonInProgress,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// ID returns the identifier of the current run. Restart assigns a new one.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Dataset returns the dataset the session runs over.
func (s *Session) Dataset() *dataset.Dataset {
	return s.ds
}

// Question returns the question at index i.
func (s *Session) Question(i int) dataset.Question {
	return s.ds.Questions[i]
}

// Generation counts restarts. Callers that schedule their own ticks compare
// it to drop ticks from an earlier run.
func (s *Session) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Start moves from intro to active and starts the countdown on timed
// datasets. It reports false outside the intro phase.
func (s *Session) Start(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseIntro {
		return false
	}
	s.name = name
	s.phase = PhaseActive
	s.startedAt = s.now()

	if s.timer.Limit() > 0 {
		gen := s.gen
		s.timer.Start(s.sched, func() { s.tick(gen) })
	}
	return true
}

// SelectKey answers the current letter-choice question.
func (s *Session) SelectKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return false
	}
	i := s.nav.Index()
	q := s.ds.Questions[i]
	if q.Kind != dataset.KindLetterChoice || !q.HasOptionKey(key) {
		return false
	}
	s.answers.Set(i, KeyAnswer(key))
	return true
}

// SelectChoice answers the current indexed-choice question.
func (s *Session) SelectChoice(choice int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return false
	}
	i := s.nav.Index()
	q := s.ds.Questions[i]
	if q.Kind != dataset.KindIndexedChoice || choice < 0 || choice >= len(q.Options) {
		return false
	}
	s.answers.Set(i, ChoiceAnswer(choice))
	return true
}

// EnterNumber answers the current numeric question from free text. Empty
// text clears the answer; text that is not a finite number is rejected and
// leaves the answer unchanged.
func (s *Session) EnterNumber(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return false
	}
	i := s.nav.Index()
	if s.ds.Questions[i].Kind != dataset.KindNumeric {
		return false
	}
	n, ok := ParseNumber(text)
	if !ok {
		return false
	}
	if n == nil {
		s.answers.Clear(i)
	} else {
		s.answers.Set(i, NumberAnswer(*n))
	}
	return true
}

// SetAnswer writes an answer for any question while the session is active.
func (s *Session) SetAnswer(i int, a Answer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive || i < 0 || i >= s.answers.Len() {
		return false
	}
	if a.Skipped && !a.HasValue() {
		s.answers.SetSkipped(i)
	} else {
		s.answers.Set(i, a)
	}
	return true
}

// Next advances past an answered question. Passing the last question
// finishes the session.
func (s *Session) Next() Move {
	s.mu.Lock()
	if s.phase != PhaseActive {
		s.mu.Unlock()
		return MoveDenied
	}
	m := s.nav.Next()
	var res *Result
	if m == MoveCompleted {
		res = s.finishLocked(ReasonManual)
	}
	s.mu.Unlock()

	s.notify(res)
	return m
}

// Skip marks the current question skipped and advances. Profile sessions
// cannot skip.
func (s *Session) Skip() Move {
	s.mu.Lock()
	if s.phase != PhaseActive {
		s.mu.Unlock()
		return MoveDenied
	}
	m := s.nav.Skip()
	var res *Result
	if m == MoveCompleted {
		res = s.finishLocked(ReasonManual)
	}
	s.mu.Unlock()

	s.notify(res)
	return m
}

// Previous steps back one question.
func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return false
	}
	return s.nav.Previous()
}

// CanAdvance reports whether Next would move.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseActive && s.nav.CanAdvance()
}

// CanRetreat reports whether Previous would move.
func (s *Session) CanRetreat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseActive && s.nav.CanRetreat()
}

// Tick advances the countdown by one second. It reports true when this tick
// expired the timer and finished the session.
func (s *Session) Tick() bool {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()
	return s.tick(gen)
}

func (s *Session) tick(gen int) bool {
	s.mu.Lock()
	if gen != s.gen || s.phase != PhaseActive {
		s.mu.Unlock()
		return false
	}
	var res *Result
	if s.timer.Tick() {
		res = s.finishLocked(ReasonTimeout)
	}
	s.mu.Unlock()

	s.notify(res)
	return res != nil
}

// Finish completes an active session and evaluates it. Only the first call
// has an effect; later calls return the stored evaluation error.
func (s *Session) Finish(reason CompletionReason) error {
	s.mu.Lock()
	if s.phase == PhaseIntro {
		s.mu.Unlock()
		return fmt.Errorf("finish session: %w", ErrNotStarted)
	}
	res := s.finishLocked(reason)
	err := s.err
	s.mu.Unlock()

	s.notify(res)
	return err
}

// finishLocked commits the finish and returns the hook payload, or nil when
// the session had already finished.
func (s *Session) finishLocked(reason CompletionReason) *Result {
	if s.phase == PhaseFinished {
		return nil
	}
	s.timer.Stop()
	s.finishedAt = s.now()
	s.reason = reason
	s.phase = PhaseFinished

	out, err := s.scorer.Evaluate(s.ds, s.answers.All())
	s.outcome = &out
	s.err = err
	if err != nil {
		s.outcome = nil
	}

	res := &Result{State: s.stateLocked(), Err: err}
	if s.outcome != nil {
		res.Outcome = *s.outcome
	}
	return res
}

func (s *Session) notify(res *Result) {
	if res != nil && s.onFinish != nil {
		s.onFinish(*res)
	}
}

// Restart discards the run and returns to intro with a fresh id.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer.Reset()
	s.answers.Reset()
	s.nav.Reset()
	s.gen++
	s.id = uuid.NewString()
	s.phase = PhaseIntro
	s.name = ""
	s.startedAt = time.Time{}
	s.finishedAt = time.Time{}
	s.reason = ReasonInProgress
	s.outcome = nil
	s.err = nil
}

// Outcome returns the evaluation of a finished session.
func (s *Session) Outcome() (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseFinished {
		return Outcome{}, ErrNotFinished
	}
	if s.err != nil {
		return Outcome{}, s.err
	}
	return *s.outcome, nil
}

// Err returns the evaluation error of a finished session, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	active := s.phase == PhaseActive
	return State{
		SessionID:     s.id,
		Phase:         s.phase,
		CurrentIndex:  s.nav.Index(),
		Total:         s.answers.Len(),
		Answers:       s.answers.All(),
		TimeLimit:     s.timer.Limit(),
		TimeRemaining: s.timer.Remaining(),
		Warning:       active && s.timer.Warning(),
		StartedAt:     s.startedAt,
		FinishedAt:    s.finishedAt,
		Reason:        s.reason,
		Name:          s.name,
		CanAdvance:    active && s.nav.CanAdvance(),
		CanRetreat:    active && s.nav.CanRetreat(),
	}
}
