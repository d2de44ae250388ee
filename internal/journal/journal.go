package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/quizme/internal/leitner"
	"github.com/abhisek/quizme/internal/question"
	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Journal is an append-only record of one review session: every scored or
// rejected answer and every box snapshot emitted by the manager. It is
// write-only from the scheduler's point of view.
type Journal struct {
	db        *sql.DB
	sessionID string
}

// MemoryDSN returns a DSN for a private in-memory database.
func MemoryDSN() string {
	return fmt.Sprintf("file:quizme-%s?mode=memory&cache=shared", uuid.NewString())
}

// Open connects to the SQLite database at dsn and creates the journal tables.
// An empty dsn opens a private in-memory database.
func Open(dsn string) (*Journal, error) {
	if dsn == "" {
		dsn = MemoryDSN()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A shared-cache memory database lives as long as one connection does.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Journal{db: db, sessionID: uuid.NewString()}, nil
}

// SessionID identifies the session whose events this journal records.
func (j *Journal) SessionID() string { return j.sessionID }

// DB returns the underlying *sql.DB for raw queries.
func (j *Journal) DB() *sql.DB { return j.db }

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS answer_events (
			seq          INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id   TEXT    NOT NULL,
			question_id  TEXT    NOT NULL,
			kind         TEXT    NOT NULL,
			prompt       TEXT    NOT NULL,
			answer       TEXT    NOT NULL,
			outcome      TEXT    NOT NULL,
			from_tier    INTEGER NOT NULL,
			to_tier      INTEGER NOT NULL,
			answered_at  TEXT    NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answer_events_question ON answer_events (session_id, question_id)`,
		`CREATE TABLE IF NOT EXISTS box_snapshots (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id  TEXT NOT NULL,
			taken_at    TEXT NOT NULL,
			counts      TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Outcome classifies an answer event.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeInvalid   Outcome = "invalid"
)

// AnswerEvent captures a single answer. For invalid answers From and To are
// both the tier the question stayed in.
type AnswerEvent struct {
	QuestionID question.ID
	Kind       question.Kind
	Prompt     string
	Answer     string
	Outcome    Outcome
	From       leitner.Tier
	To         leitner.Tier
	AnsweredAt time.Time
}

// AppendAnswer records an answer event.
func (j *Journal) AppendAnswer(ctx context.Context, e AnswerEvent) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(session_id, question_id, kind, prompt, answer, outcome, from_tier, to_tier, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.sessionID, e.QuestionID.String(), string(e.Kind), e.Prompt, e.Answer, string(e.Outcome),
		int(e.From), int(e.To), e.AnsweredAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

// AppendSnapshot records a box snapshot.
func (j *Journal) AppendSnapshot(ctx context.Context, s leitner.Snapshot) error {
	counts, err := json.Marshal(s.Counts)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO box_snapshots (session_id, taken_at, counts) VALUES (?, ?, ?)`,
		j.sessionID, s.Taken.UTC().Format(time.RFC3339Nano), string(counts),
	)
	if err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}
	return nil
}

// SnapshotSink adapts the journal to a leitner.Sink. Sinks cannot fail, so
// write errors are reported to stderr and otherwise ignored.
func (j *Journal) SnapshotSink(ctx context.Context) leitner.Sink {
	return leitner.SinkFunc(func(s leitner.Snapshot) {
		if err := j.AppendSnapshot(ctx, s); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to journal box snapshot: %v\n", err)
		}
	})
}
