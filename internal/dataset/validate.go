package dataset

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://quizbox/dataset.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validateDocument checks raw JSON against Schema.
func validateDocument(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile dataset schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema compiles Schema once per process.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go maps with typed slices.
		defBytes, err := json.Marshal(Schema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks the semantic rules a schema cannot express. It expects a
// normalized dataset.
func (d *Dataset) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(d.Questions) == 0 {
		add("dataset has no questions")
	}

	seen := make(map[QuestionID]bool, len(d.Questions))
	for i, q := range d.Questions {
		if seen[q.ID] {
			add("question %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
	}

	switch d.Variant {
	case VariantProfile:
		problems = append(problems, d.profileProblems()...)
	case VariantScored:
		problems = append(problems, d.scoredProblems()...)
	default:
		add("unknown variant %q", d.Variant)
	}

	if len(problems) > 0 {
		return &ValidationError{Source: d.ID, Problems: problems}
	}
	return nil
}

func (d *Dataset) profileProblems() []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(d.Letters) == 0 {
		add("profile dataset has no letters")
	}
	letters := make(map[string]bool, len(d.Letters))
	for _, l := range d.Letters {
		letters[l] = true
		if _, ok := d.Profiles[l]; !ok {
			add("no profile for letter %q", l)
		}
	}

	for i, q := range d.Questions {
		if q.Kind != KindLetterChoice {
			add("question %s: type %q not allowed in a profile dataset", q.ID, q.Kind)
			continue
		}
		if len(q.Options) == 0 {
			add("question %s: no options", q.ID)
		}
		for _, o := range q.Options {
			if o.Key == "" {
				add("question %d: option %q has no key", i, o.Text)
			} else if !letters[o.Key] {
				add("question %s: option key %q is not a dataset letter", q.ID, o.Key)
			}
		}
	}

	for _, id := range d.TieBreak {
		if d.IndexOf(id) < 0 {
			add("tie-break question %q does not exist", id)
		}
	}
	return problems
}

func (d *Dataset) scoredProblems() []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if d.TimeLimitSec < 0 {
		add("timeLimitSec must not be negative")
	}

	for _, q := range d.Questions {
		switch q.Kind {
		case KindIndexedChoice:
			if len(q.Options) == 0 {
				add("question %s: no options", q.ID)
			}
			if q.CorrectKey == nil {
				add("question %s: missing correctKey", q.ID)
			} else if *q.CorrectKey < 0 || *q.CorrectKey >= len(q.Options) {
				add("question %s: correctKey %d out of range", q.ID, *q.CorrectKey)
			}
		case KindNumeric:
			if q.CorrectNumber == nil {
				add("question %s: missing correctNumber", q.ID)
			}
			if q.Tolerance < 0 {
				add("question %s: negative tolerance", q.ID)
			}
		case KindLetterChoice:
			add("question %s: letter-choice is not allowed in a scored dataset", q.ID)
		default:
			add("question %s: unknown type %q", q.ID, q.Kind)
		}
	}

	for i, b := range d.ResultBands {
		if b.Min > b.Max {
			add("result band %d: min %d greater than max %d", i, b.Min, b.Max)
		}
	}
	return problems
}

// BandWarnings reports scores in [0, Total()] that no result band covers
// and scores covered by more than one band. Neither is an error: an
// uncovered score has no level and overlaps resolve to the first band.
func (d *Dataset) BandWarnings() []string {
	if d.Variant != VariantScored || len(d.ResultBands) == 0 {
		return nil
	}

	var warnings []string
	var gap []int
	flushGap := func() {
		if len(gap) == 0 {
			return
		}
		if len(gap) == 1 {
			warnings = append(warnings, fmt.Sprintf("score %d has no result band", gap[0]))
		} else {
			warnings = append(warnings, fmt.Sprintf("scores %d-%d have no result band", gap[0], gap[len(gap)-1]))
		}
		gap = gap[:0]
	}

	for score := 0; score <= d.Total(); score++ {
		var hits []int
		for i, b := range d.ResultBands {
			if b.Contains(score) {
				hits = append(hits, i)
			}
		}
		if len(hits) == 0 {
			gap = append(gap, score)
			continue
		}
		flushGap()
		if len(hits) > 1 {
			warnings = append(warnings, fmt.Sprintf("score %d matches result bands %v; band %d wins", score, hits, hits[0]))
		}
	}
	flushGap()
	return warnings
}
