package leitner

import (
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/quizme/internal/question"
)

// Box holds a set of questions that share a minimum re-presentation interval.
type Box struct {
	name      string
	interval  time.Duration
	questions []question.Question
	members   map[question.ID]struct{}
}

// NewBox creates an empty box.
func NewBox(name string, interval time.Duration) *Box {
	return &Box{
		name:     name,
		interval: interval,
		members:  make(map[question.ID]struct{}),
	}
}

// Name returns the box name.
func (b *Box) Name() string { return b.name }

// Interval returns the minimum idle time before a question is eligible.
func (b *Box) Interval() time.Duration { return b.interval }

// Len returns the number of questions in the box.
func (b *Box) Len() int { return len(b.questions) }

// Contains reports whether the question with the given ID is in the box.
func (b *Box) Contains(id question.ID) bool {
	_, ok := b.members[id]
	return ok
}

// Questions returns the box contents in insertion order.
func (b *Box) Questions() []question.Question {
	return slices.Clone(b.questions)
}

// Add inserts q. Adding a question that is already present is a no-op.
func (b *Box) Add(q question.Question) {
	if b.Contains(q.ID()) {
		return
	}
	b.members[q.ID()] = struct{}{}
	b.questions = append(b.questions, q)
}

// Remove deletes q. Removing an absent question is a no-op.
func (b *Box) Remove(q question.Question) {
	id := q.ID()
	if !b.Contains(id) {
		return
	}
	delete(b.members, id)
	b.questions = slices.DeleteFunc(b.questions, func(c question.Question) bool {
		return c.ID() == id
	})
}

// NextPriority returns the question that has waited longest, provided its
// idle time has reached the box interval. It returns nil when the box is
// empty, when that question is not yet eligible, or when the interval is
// Forever. Ties go to the question added first.
func (b *Box) NextPriority(now time.Time) question.Question {
	if b.interval == Forever || len(b.questions) == 0 {
		return nil
	}

	oldest := b.questions[0]
	for _, q := range b.questions[1:] {
		if q.LastPresented().Before(oldest.LastPresented()) {
			oldest = q
		}
	}

	if now.Sub(oldest.LastPresented()) >= b.interval {
		return oldest
	}
	return nil
}

func (b *Box) String() string {
	return fmt.Sprintf("Box(name=%q, questions=%d)", b.name, len(b.questions))
}
