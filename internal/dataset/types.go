package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Variant selects the scoring strategy of a dataset.
type Variant string

const (
	VariantProfile Variant = "profile" // Most-selected letter wins
	VariantScored  Variant = "scored"  // Correct answers mapped to a band
)

// Kind is the answer format of a question.
type Kind string

const (
	KindLetterChoice  Kind = "letter-choice"
	KindIndexedChoice Kind = "indexed-choice"
	KindNumeric       Kind = "numeric"
)

// kindAliases maps the short type names used by older datasets.
var kindAliases = map[string]Kind{
	"choice": KindIndexedChoice,
	"number": KindNumeric,
	"letter": KindLetterChoice,
}

// UnmarshalJSON accepts both canonical kind names and their short aliases.
func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("question type: %w", err)
	}
	if alias, ok := kindAliases[s]; ok {
		*k = alias
		return nil
	}
	*k = Kind(s)
	return nil
}

// QuestionID identifies a question. Datasets may use JSON numbers or strings.
type QuestionID string

func (id *QuestionID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = QuestionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("question id: %w", err)
	}
	*id = QuestionID(n.String())
	return nil
}

// Option is a selectable answer. Letter-choice options carry a Key;
// indexed-choice options are addressed by position and may be written
// as plain strings in JSON.
type Option struct {
	Key  string `json:"key,omitempty"`
	Text string `json:"text"`
}

func (o *Option) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &o.Text)
	}
	type plain Option
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("option: %w", err)
	}
	*o = Option(p)
	return nil
}

// Question is a single immutable assessment item.
type Question struct {
	ID      QuestionID `json:"id"`
	Text    string     `json:"text"`
	Kind    Kind       `json:"type"`
	Options []Option   `json:"options,omitempty"`
	Block   string     `json:"block,omitempty"`

	// CorrectKey is the index of the correct option (indexed-choice only).
	CorrectKey *int `json:"correctKey,omitempty"`

	// CorrectNumber and Tolerance define the accepted range (numeric only).
	CorrectNumber *float64 `json:"correctNumber,omitempty"`
	Tolerance     float64  `json:"tolerance,omitempty"`
}

// HasOptionKey reports whether key is one of the question's letter options.
func (q Question) HasOptionKey(key string) bool {
	for _, o := range q.Options {
		if o.Key == key {
			return true
		}
	}
	return false
}

// Label returns a short human label such as "№3".
func (q Question) Label() string {
	return "№" + string(q.ID)
}

// ResultBand maps an inclusive score range to a level.
type ResultBand struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Contains reports whether score falls inside the band.
func (b ResultBand) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// Profile is the outcome description for a winning letter.
type Profile struct {
	Title      string   `json:"title"`
	Role       string   `json:"role"`
	Superpower string   `json:"superpower"`
	Learning   []string `json:"learning"`
	Image      string   `json:"image,omitempty"`
}

// Dataset is the static, read-only input of an assessment.
type Dataset struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Variant   Variant    `json:"variant,omitempty"`
	Questions []Question `json:"questions"`

	// Profile engine.
	Profiles map[string]Profile `json:"profiles,omitempty"`
	Letters  []string           `json:"letters,omitempty"`  // tally enumeration order
	Priority []string           `json:"priority,omitempty"` // fallback tie-break order
	TieBreak []QuestionID       `json:"tieBreak,omitempty"` // consulted first on ties

	// Scored engine.
	ResultBands  []ResultBand `json:"resultBands,omitempty"`
	TimeLimitSec int          `json:"timeLimitSec,omitempty"`
}

// Total returns the number of questions.
func (d *Dataset) Total() int {
	return len(d.Questions)
}

// Timed reports whether sessions on this dataset run a countdown.
func (d *Dataset) Timed() bool {
	return d.Variant == VariantScored && d.TimeLimitSec > 0
}

// IndexOf returns the position of the question with the given id, or -1.
func (d *Dataset) IndexOf(id QuestionID) int {
	for i, q := range d.Questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// TieBreakIndices resolves TieBreak ids to question positions, in order.
func (d *Dataset) TieBreakIndices() []int {
	out := make([]int, 0, len(d.TieBreak))
	for _, id := range d.TieBreak {
		if i := d.IndexOf(id); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}

// normalize fills the defaults that older datasets leave implicit.
func (d *Dataset) normalize() {
	if d.Variant == "" {
		if len(d.Profiles) > 0 {
			d.Variant = VariantProfile
		} else {
			d.Variant = VariantScored
		}
	}

	for i := range d.Questions {
		q := &d.Questions[i]
		if q.Kind == "" && d.Variant == VariantProfile {
			q.Kind = KindLetterChoice
		}
		if q.ID == "" {
			q.ID = QuestionID(strconv.Itoa(i + 1))
		}
	}

	if d.Variant == VariantProfile {
		if len(d.Letters) == 0 && len(d.Questions) > 0 {
			for _, o := range d.Questions[0].Options {
				d.Letters = append(d.Letters, o.Key)
			}
		}
		if len(d.Priority) == 0 {
			d.Priority = append([]string(nil), d.Letters...)
		}
	}
}
