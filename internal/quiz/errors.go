package quiz

import "errors"

var (
	// ErrNoDataset is returned when a session is created without a dataset.
	ErrNoDataset = errors.New("no dataset")

	// ErrProfileNotFound is returned when the winning letter has no profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNotStarted is returned when finishing a session still in intro.
	ErrNotStarted = errors.New("session not started")

	// ErrNotFinished is returned when an outcome is requested before finish.
	ErrNotFinished = errors.New("session not finished")
)
