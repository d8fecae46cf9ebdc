package quiz

import (
	"fmt"
	"time"

	"github.com/abhisek/quizbox/internal/dataset"
)

// Payload is a serializable export of one session.
type Payload interface {
	// FileName is the suggested file name for the JSON document.
	FileName() string

	// Meta summarizes the payload for the result log.
	Meta() PayloadMeta
}

// PayloadMeta carries the indexable fields of an export.
type PayloadMeta struct {
	SessionID         string
	DatasetID         string
	Variant           dataset.Variant
	Name              string
	Headline          string
	Score             int
	Total             int
	FinishedByTimeout bool
	CompletedAt       time.Time
}

// ProfilePayload is the export of a profile session.
type ProfilePayload struct {
	Name         *string   `json:"name"`
	ProfileKey   string    `json:"profileKey"`
	ProfileTitle string    `json:"profileTitle"`
	Superpower   string    `json:"superpower"`
	Role         string    `json:"role"`
	Learning     []string  `json:"learning"`
	Answers      []*string `json:"answers"`
	Stats        Tally     `json:"stats"`
	CompletedAt  time.Time `json:"completedAt"`

	sessionID string
	datasetID string
	total     int
}

func (p ProfilePayload) FileName() string { return p.datasetID + "-result.json" }

func (p ProfilePayload) Meta() PayloadMeta {
	m := PayloadMeta{
		SessionID:   p.sessionID,
		DatasetID:   p.datasetID,
		Variant:     dataset.VariantProfile,
		Headline:    p.ProfileTitle,
		Score:       p.Stats[p.ProfileKey],
		Total:       p.total,
		CompletedAt: p.CompletedAt,
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	return m
}

// ScoredAnswer is one exported answer. Value is the option index, the
// number, or null.
type ScoredAnswer struct {
	Value   any  `json:"value"`
	Skipped bool `json:"skipped"`
}

// ScoredPayload is the export of a scored session.
type ScoredPayload struct {
	TestID            string         `json:"testId"`
	TestTitle         string         `json:"testTitle"`
	Name              *string        `json:"name"`
	Answers           []ScoredAnswer `json:"answers"`
	Score             int            `json:"score"`
	Level             *string        `json:"level"`
	Interpretation    *string        `json:"interpretation"`
	TimeLimitSec      int            `json:"timeLimitSec"`
	RemainingTimeSec  int            `json:"remainingTimeSec"`
	TimeUsedSec       int            `json:"timeUsedSec"`
	FinishedByTimeout bool           `json:"finishedByTimeout"`
	CompletedAt       time.Time      `json:"completedAt"`

	sessionID string
}

func (p ScoredPayload) FileName() string { return p.TestID + "-result.json" }

func (p ScoredPayload) Meta() PayloadMeta {
	m := PayloadMeta{
		SessionID:         p.sessionID,
		DatasetID:         p.TestID,
		Variant:           dataset.VariantScored,
		Score:             p.Score,
		Total:             len(p.Answers),
		FinishedByTimeout: p.FinishedByTimeout,
		CompletedAt:       p.CompletedAt,
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Level != nil {
		m.Headline = *p.Level
	}
	return m
}

// Export builds a payload from the current state without changing it. An
// unfinished session is evaluated as if it finished now.
func (s *Session) Export() (Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completedAt := s.now()
	out := s.outcome
	if s.phase == PhaseFinished {
		completedAt = s.finishedAt
		if s.err != nil {
			return nil, fmt.Errorf("export session: %w", s.err)
		}
	} else {
		o, err := s.scorer.Evaluate(s.ds, s.answers.All())
		if err != nil {
			return nil, fmt.Errorf("export session: %w", err)
		}
		out = &o
	}
	completedAt = completedAt.UTC()

	var name *string
	if s.name != "" {
		n := s.name
		name = &n
	}
	answers := s.answers.All()

	switch s.ds.Variant {
	case dataset.VariantProfile:
		p := ProfilePayload{
			Name:        name,
			ProfileKey:  out.ProfileKey,
			Stats:       out.Tally,
			Answers:     make([]*string, len(answers)),
			Learning:    []string{},
			CompletedAt: completedAt,
			sessionID:   s.id,
			datasetID:   s.ds.ID,
			total:       len(answers),
		}
		if out.Profile != nil {
			p.ProfileTitle = out.Profile.Title
			p.Superpower = out.Profile.Superpower
			p.Role = out.Profile.Role
			if len(out.Profile.Learning) > 0 {
				p.Learning = out.Profile.Learning
			}
		}
		for i, a := range answers {
			if a.Key != "" {
				k := a.Key
				p.Answers[i] = &k
			}
		}
		return p, nil

	default:
		remaining := s.timer.Remaining()
		p := ScoredPayload{
			TestID:            s.ds.ID,
			TestTitle:         s.ds.Title,
			Name:              name,
			Answers:           make([]ScoredAnswer, len(answers)),
			Score:             out.Score,
			TimeLimitSec:      s.timer.Limit(),
			RemainingTimeSec:  remaining,
			TimeUsedSec:       s.timer.Limit() - remaining,
			FinishedByTimeout: s.reason == ReasonTimeout,
			CompletedAt:       completedAt,
			sessionID:         s.id,
		}
		if out.Band != nil {
			level, text := out.Band.Title, out.Band.Text
			p.Level = &level
			p.Interpretation = &text
		}
		for i, a := range answers {
			p.Answers[i] = ScoredAnswer{Value: answerValue(a), Skipped: a.Skipped}
		}
		return p, nil
	}
}

func answerValue(a Answer) any {
	switch {
	case a.Choice != nil:
		return *a.Choice
	case a.Number != nil:
		return *a.Number
	case a.Key != "":
		return a.Key
	default:
		return nil
	}
}
