package leitner

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizme/internal/question"
)

// ErrUnknownQuestion indicates a move was requested for a question the
// manager never registered. Questions returned by Next are always known,
// so this is a programming error and callers should treat it as fatal.
var ErrUnknownQuestion = errors.New("leitner: unknown question")

// Transition records a single move between tiers.
type Transition struct {
	QuestionID question.ID
	From       Tier
	To         Tier
	Correct    bool
}

// Changed reports whether the question actually changed box.
func (t Transition) Changed() bool { return t.From != t.To }

// Manager owns the fixed set of boxes and tracks which box each question is in.
// A Manager belongs to a single session and is not safe for concurrent use.
type Manager struct {
	boxes    [NumTiers]*Box
	location map[question.ID]Tier
	sink     Sink
	now      func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithSink sets the sink that receives box counts after each move.
func WithSink(s Sink) Option {
	return func(m *Manager) {
		if s != nil {
			m.sink = s
		}
	}
}

// WithClock overrides the time source used by Next and Snapshot.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a manager with the standard box layout.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		location: make(map[question.ID]Tier),
		sink:     nopSink{},
		now:      time.Now,
	}
	for i, spec := range Layout {
		m.boxes[i] = NewBox(spec.Name, spec.Interval)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register places a new question in Unasked Questions. Registering a
// question that is already managed leaves it where it is.
func (m *Manager) Register(q question.Question) {
	if _, ok := m.location[q.ID()]; ok {
		return
	}
	m.boxes[TierUnasked].Add(q)
	m.location[q.ID()] = TierUnasked
}

// Next returns the next question to present, or nil when no box in
// ScanOrder has an eligible question, which ends the session.
func (m *Manager) Next() question.Question {
	now := m.now()
	for _, t := range ScanOrder {
		if q := m.boxes[t].NextPriority(now); q != nil {
			return q
		}
	}
	return nil
}

// Move relocates q according to NextTier and emits a snapshot to the sink.
// The move is performed even when the tier does not change, so a known
// question answered correctly again still produces a snapshot.
func (m *Manager) Move(q question.Question, correct bool) (Transition, error) {
	from, ok := m.location[q.ID()]
	if !ok {
		return Transition{}, fmt.Errorf("move question %s: %w", q.ID(), ErrUnknownQuestion)
	}

	to := NextTier(from, correct)
	m.boxes[from].Remove(q)
	m.boxes[to].Add(q)
	m.location[q.ID()] = to

	m.sink.ObserveCounts(m.Snapshot())

	return Transition{QuestionID: q.ID(), From: from, To: to, Correct: correct}, nil
}

// Location returns the tier holding the question with the given ID.
func (m *Manager) Location(id question.ID) (Tier, bool) {
	t, ok := m.location[id]
	return t, ok
}

// Box returns the box for tier t, or nil if t is out of range.
func (m *Manager) Box(t Tier) *Box {
	if !t.Valid() {
		return nil
	}
	return m.boxes[t]
}

// Len returns the number of managed questions.
func (m *Manager) Len() int {
	return len(m.location)
}

// Snapshot returns the current per-box counts.
func (m *Manager) Snapshot() Snapshot {
	counts := make([]BoxCount, NumTiers)
	for i, b := range m.boxes {
		counts[i] = BoxCount{Tier: Tier(i), Name: b.Name(), Count: b.Len()}
	}
	return Snapshot{Taken: m.now(), Counts: counts}
}
