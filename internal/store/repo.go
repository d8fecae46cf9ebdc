package store

import (
	"context"
	"time"
)

// QueryOpts filters and paginates result queries.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	DatasetID string    // exact match when set
	From      time.Time // completed_at >= From
	To        time.Time // completed_at <= To
}

// ResultRecord is one exported session in the result log.
type ResultRecord struct {
	ID                int64
	Sequence          int64
	SessionID         string
	DatasetID         string
	Variant           string
	Name              string
	Headline          string
	Score             int
	Total             int
	FinishedByTimeout bool
	CompletedAt       time.Time
	Payload           []byte // exported JSON document
}

// ResultRepo is an append-only log of exported results.
type ResultRepo interface {
	// Append stores a result and fills in its ID and Sequence.
	Append(ctx context.Context, rec *ResultRecord) error

	// Query returns results newest first.
	Query(ctx context.Context, opts QueryOpts) ([]ResultRecord, error)

	// Count returns the number of stored results for datasetID, or all
	// results when datasetID is empty.
	Count(ctx context.Context, datasetID string) (int, error)

	// Prune deletes all but the keep most recent results.
	Prune(ctx context.Context, keep int) error
}
