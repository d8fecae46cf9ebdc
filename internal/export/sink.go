package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/store"
)

// Sink consumes exported session payloads. Write returns a short
// human-readable description of where the payload went.
type Sink interface {
	Write(ctx context.Context, p quiz.Payload) (string, error)
}

// Marshal renders a payload as indented JSON.
func Marshal(p quiz.Payload) ([]byte, error) {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return append(raw, '\n'), nil
}

// FileSink writes each payload to Dir under its suggested file name,
// replacing an earlier export of the same dataset.
type FileSink struct {
	Dir string
}

// Path returns the file a payload is written to.
func (s FileSink) Path(p quiz.Payload) string {
	return filepath.Join(s.Dir, p.FileName())
}

func (s FileSink) Write(_ context.Context, p quiz.Payload) (string, error) {
	raw, err := Marshal(p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := s.Path(p)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// StoreSink appends payloads to the SQLite result log.
type StoreSink struct {
	Repo store.ResultRepo

	// Keep caps the log size after each write; 0 disables pruning.
	Keep int
}

func (s StoreSink) Write(ctx context.Context, p quiz.Payload) (string, error) {
	raw, err := Marshal(p)
	if err != nil {
		return "", err
	}
	m := p.Meta()
	rec := &store.ResultRecord{
		SessionID:         m.SessionID,
		DatasetID:         m.DatasetID,
		Variant:           string(m.Variant),
		Name:              m.Name,
		Headline:          m.Headline,
		Score:             m.Score,
		Total:             m.Total,
		FinishedByTimeout: m.FinishedByTimeout,
		CompletedAt:       m.CompletedAt,
		Payload:           raw,
	}
	if err := s.Repo.Append(ctx, rec); err != nil {
		return "", fmt.Errorf("record result: %w", err)
	}
	if s.Keep > 0 {
		if err := s.Repo.Prune(ctx, s.Keep); err != nil {
			return "", fmt.Errorf("record result: %w", err)
		}
	}
	return fmt.Sprintf("history #%d", rec.Sequence), nil
}

// MultiSink writes to every sink in order. A failing sink does not stop
// the rest; all errors are joined.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, p quiz.Payload) (string, error) {
	var (
		where []string
		errs  []error
	)
	for _, s := range m {
		w, err := s.Write(ctx, p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if w != "" {
			where = append(where, w)
		}
	}
	return strings.Join(where, ", "), errors.Join(errs...)
}

// Discard drops every payload.
type Discard struct{}

func (Discard) Write(context.Context, quiz.Payload) (string, error) { return "", nil }
