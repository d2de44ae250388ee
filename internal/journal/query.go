package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizme/internal/leitner"
	"github.com/abhisek/quizme/internal/question"
)

// Summary aggregates the answers of the current session.
type Summary struct {
	Answered  int
	Correct   int
	Incorrect int
	Invalid   int
	Snapshots int
}

// Accuracy returns correct answers as a fraction of scored answers.
func (s Summary) Accuracy() float64 {
	scored := s.Correct + s.Incorrect
	if scored == 0 {
		return 0
	}
	return float64(s.Correct) / float64(scored)
}

// Summary computes the session summary.
func (j *Journal) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	err := j.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'correct' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'incorrect' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'invalid' THEN 1 ELSE 0 END), 0)
		FROM answer_events WHERE session_id = ?`,
		j.sessionID,
	).Scan(&s.Answered, &s.Correct, &s.Incorrect, &s.Invalid)
	if err != nil {
		return Summary{}, fmt.Errorf("query answer summary: %w", err)
	}

	err = j.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM box_snapshots WHERE session_id = ?`, j.sessionID,
	).Scan(&s.Snapshots)
	if err != nil {
		return Summary{}, fmt.Errorf("query snapshot count: %w", err)
	}
	return s, nil
}

// QuestionHistory returns the answer events for one question, oldest first.
func (j *Journal) QuestionHistory(ctx context.Context, id question.ID) ([]AnswerEvent, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT kind, prompt, answer, outcome, from_tier, to_tier, answered_at
		FROM answer_events WHERE session_id = ? AND question_id = ? ORDER BY seq`,
		j.sessionID, id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query question history: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var (
			e                 AnswerEvent
			kind, outcome, at string
			fromTier, toTier  int
		)
		if err := rows.Scan(&kind, &e.Prompt, &e.Answer, &outcome, &fromTier, &toTier, &at); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		e.QuestionID = id
		e.Kind = question.Kind(kind)
		e.Outcome = Outcome(outcome)
		e.From = leitner.Tier(fromTier)
		e.To = leitner.Tier(toTier)
		e.AnsweredAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse answered_at: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// LatestSnapshot returns the most recent box snapshot, or nil if none exist.
func (j *Journal) LatestSnapshot(ctx context.Context) (*leitner.Snapshot, error) {
	var at, counts string
	err := j.db.QueryRowContext(ctx,
		`SELECT taken_at, counts FROM box_snapshots WHERE session_id = ? ORDER BY seq DESC LIMIT 1`,
		j.sessionID,
	).Scan(&at, &counts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	snap := &leitner.Snapshot{}
	if snap.Taken, err = time.Parse(time.RFC3339Nano, at); err != nil {
		return nil, fmt.Errorf("parse taken_at: %w", err)
	}
	if err := json.Unmarshal([]byte(counts), &snap.Counts); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot counts: %w", err)
	}
	return snap, nil
}
