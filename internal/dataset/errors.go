package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDataset is returned when a name matches neither a built-in
// dataset nor a readable file.
var ErrUnknownDataset = errors.New("unknown dataset")

// ValidationError reports why a dataset cannot be used. Sessions never
// start on a dataset that failed validation.
type ValidationError struct {
	Source   string
	Problems []string
	Err      error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid dataset")
	if e.Source != "" {
		fmt.Fprintf(&b, " %q", e.Source)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Problems) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Problems, "; "))
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }
