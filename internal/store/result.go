package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const resultsTable = "quiz_results"

var resultColumns = []string{
	"id", "sequence", "session_id", "dataset_id", "variant", "name", "headline",
	"score", "total", "finished_by_timeout", "completed_at", "payload",
}

type resultRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *resultRepo) Append(ctx context.Context, rec *ResultRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := builder().Insert(resultsTable).
		Columns(resultColumns[1:]...).
		Values(
			seqNum, rec.SessionID, rec.DatasetID, rec.Variant, rec.Name, rec.Headline,
			rec.Score, rec.Total, rec.FinishedByTimeout, rec.CompletedAt.UnixMilli(), string(rec.Payload),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	rec.ID = id
	rec.Sequence = seqNum
	return nil
}

func (r *resultRepo) Query(ctx context.Context, opts QueryOpts) ([]ResultRecord, error) {
	b := builder()
	sel := b.Select(resultColumns...).
		From(b.Table(resultsTable)).
		OrderBy(entsql.Desc("sequence"))
	if p := filter(opts); p != nil {
		sel = sel.Where(p)
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	q, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, q, args, rows); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var (
			rec     ResultRecord
			millis  int64
			payload string
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.SessionID, &rec.DatasetID, &rec.Variant, &rec.Name, &rec.Headline,
			&rec.Score, &rec.Total, &rec.FinishedByTimeout, &millis, &payload,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.CompletedAt = time.UnixMilli(millis).UTC()
		rec.Payload = []byte(payload)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return out, nil
}

func (r *resultRepo) Count(ctx context.Context, datasetID string) (int, error) {
	b := builder()
	sel := b.Select(entsql.Count("*")).From(b.Table(resultsTable))
	if datasetID != "" {
		sel = sel.Where(entsql.EQ("dataset_id", datasetID))
	}
	q, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, q, args, rows); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("count results: %w", err)
		}
	}
	return n, rows.Err()
}

func (r *resultRepo) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	// Delete everything below the keep-th newest sequence.
	q := `DELETE FROM ` + resultsTable + ` WHERE sequence NOT IN (
		SELECT sequence FROM ` + resultsTable + ` ORDER BY sequence DESC LIMIT ?
	)`
	if err := r.drv.Exec(ctx, q, []any{keep}, nil); err != nil {
		return fmt.Errorf("prune results: %w", err)
	}
	return nil
}

func filter(opts QueryOpts) *entsql.Predicate {
	var preds []*entsql.Predicate
	if opts.DatasetID != "" {
		preds = append(preds, entsql.EQ("dataset_id", opts.DatasetID))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("completed_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("completed_at", opts.To.UnixMilli()))
	}
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return entsql.And(preds...)
	}
}
