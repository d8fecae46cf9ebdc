package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/dataset"
	"github.com/abhisek/quizbox/internal/export"
	"github.com/abhisek/quizbox/internal/quiz"
)

var scoreCmd = &cobra.Command{
	Use:   "score <dataset>",
	Short: "Score a set of answers without the TUI",
	Long: "Score a set of answers without the TUI and print the result JSON.\n\n" +
		"--answers is a JSON file holding either an array with one entry per question\n" +
		"or an exported result with an \"answers\" array. Entries are a letter, an option\n" +
		"index or number, null for blank, or {\"value\": ..., \"skipped\": true}.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answersPath, _ := cmd.Flags().GetString("answers")
		name, _ := cmd.Flags().GetString("name")
		outDir, _ := cmd.Flags().GetString("out")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ds, err := dataset.Resolve(args[0])
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}

		raw, err := os.ReadFile(answersPath)
		if err != nil {
			return fmt.Errorf("read answers: %w", err)
		}
		answers, fileName, err := decodeAnswers(ds, raw)
		if err != nil {
			return err
		}
		if name == "" && fileName != nil {
			name = *fileName
		}

		var history export.Sink = export.Discard{}
		if !cfg.NoHistory {
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			history = export.StoreSink{Repo: st.Results(), Keep: cfg.HistoryKeep}
		}

		ctx := context.Background()
		p, where, err := scoreAnswers(ctx, ds, name, answers, history)
		if err != nil {
			return err
		}

		doc, err := export.Marshal(p)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(doc); err != nil {
			return err
		}

		if where != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Recorded as", where)
		}
		if outDir != "" {
			loc, err := export.FileSink{Dir: outDir}.Write(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Wrote", loc)
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().String("answers", "", "JSON file with the answers (required)")
	scoreCmd.Flags().String("name", "", "Participant name")
	scoreCmd.Flags().String("out", "", "Also write <dataset>-result.json into this directory")
	_ = scoreCmd.MarkFlagRequired("answers")
}

// scoreAnswers runs answers through a session and returns its export. The
// history sink records the run from the session's finish hook.
func scoreAnswers(ctx context.Context, ds *dataset.Dataset, name string, answers []quiz.Answer, history export.Sink) (quiz.Payload, string, error) {
	var (
		sess    *quiz.Session
		where   string
		hookErr error
	)
	sess, err := quiz.New(ds, quiz.WithFinishHook(func(res quiz.Result) {
		if res.Err != nil {
			return
		}
		p, err := sess.Export()
		if err != nil {
			hookErr = err
			return
		}
		where, hookErr = history.Write(ctx, p)
	}))
	if err != nil {
		return nil, "", err
	}

	sess.Start(name)
	for i, a := range answers {
		if a.Valid() && !sess.SetAnswer(i, a) {
			return nil, "", fmt.Errorf("answer %d: rejected", i+1)
		}
	}
	if err := sess.Finish(quiz.ReasonManual); err != nil {
		return nil, "", err
	}
	if hookErr != nil {
		return nil, "", fmt.Errorf("record result: %w", hookErr)
	}

	p, err := sess.Export()
	if err != nil {
		return nil, "", err
	}
	return p, where, nil
}

// decodeAnswers reads a bare answer array or an exported result. It also
// returns the name recorded in an exported result.
func decodeAnswers(ds *dataset.Dataset, raw []byte) ([]quiz.Answer, *string, error) {
	var items []json.RawMessage
	var name *string

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc struct {
			Name    *string           `json:"name"`
			Answers []json.RawMessage `json:"answers"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, nil, fmt.Errorf("decode answers: %w", err)
		}
		items, name = doc.Answers, doc.Name
	} else if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, nil, fmt.Errorf("decode answers: %w", err)
	}

	if len(items) != ds.Total() {
		return nil, nil, fmt.Errorf("decode answers: got %d answers, dataset %q has %d questions", len(items), ds.ID, ds.Total())
	}

	out := make([]quiz.Answer, len(items))
	for i, item := range items {
		a, err := decodeAnswer(ds.Questions[i], item)
		if err != nil {
			return nil, nil, fmt.Errorf("decode answers: %s: %w", ds.Questions[i].Label(), err)
		}
		out[i] = a
	}
	return out, name, nil
}

func decodeAnswer(q dataset.Question, raw json.RawMessage) (quiz.Answer, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return quiz.Answer{}, err
	}

	if obj, ok := v.(map[string]any); ok {
		skipped, _ := obj["skipped"].(bool)
		inner, err := json.Marshal(obj["value"])
		if err != nil {
			return quiz.Answer{}, err
		}
		a, err := decodeAnswer(q, inner)
		if err != nil {
			return quiz.Answer{}, err
		}
		if skipped && !a.HasValue() {
			a.Skipped = true
		}
		return a, nil
	}

	switch val := v.(type) {
	case nil:
		return quiz.Answer{}, nil
	case string:
		switch q.Kind {
		case dataset.KindLetterChoice:
			if !q.HasOptionKey(val) {
				return quiz.Answer{}, fmt.Errorf("no option %q", val)
			}
			return quiz.KeyAnswer(val), nil
		case dataset.KindNumeric:
			n, ok := quiz.ParseNumber(val)
			if !ok {
				return quiz.Answer{}, fmt.Errorf("%q is not a number", val)
			}
			if n == nil {
				return quiz.Answer{}, nil
			}
			return quiz.NumberAnswer(*n), nil
		}
	case float64:
		switch q.Kind {
		case dataset.KindIndexedChoice:
			if val != math.Trunc(val) || val < 0 || int(val) >= len(q.Options) {
				return quiz.Answer{}, fmt.Errorf("option index %v out of range", val)
			}
			return quiz.ChoiceAnswer(int(val)), nil
		case dataset.KindNumeric:
			return quiz.NumberAnswer(val), nil
		}
	}
	return quiz.Answer{}, fmt.Errorf("unexpected %s for a %s question", string(raw), q.Kind)
}
