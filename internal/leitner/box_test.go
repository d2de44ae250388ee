package leitner

import (
	"testing"
	"time"

	"github.com/abhisek/quizme/internal/question"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presentedAt(t *testing.T, prompt string, at time.Time) question.Question {
	t.Helper()
	q := question.NewShortAnswer(prompt, "answer")
	q.Present(at)
	return q
}

func TestBox_AddIsIdempotent(t *testing.T) {
	b := NewBox("Test", time.Minute)
	q := question.NewShortAnswer("Q", "A")

	b.Add(q)
	b.Add(q)

	assert.Equal(t, 1, b.Len())
	assert.True(t, b.Contains(q.ID()))
}

func TestBox_RemoveAbsentIsNoop(t *testing.T) {
	b := NewBox("Test", time.Minute)
	in := question.NewShortAnswer("in", "A")
	out := question.NewShortAnswer("out", "A")
	b.Add(in)

	b.Remove(out)
	assert.Equal(t, 1, b.Len())

	b.Remove(in)
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.Contains(in.ID()))

	b.Remove(in)
	assert.Equal(t, 0, b.Len())
}

func TestBox_IdentityNotContent(t *testing.T) {
	b := NewBox("Test", 0)
	b.Add(question.NewShortAnswer("Same", "A"))
	b.Add(question.NewShortAnswer("Same", "A"))
	assert.Equal(t, 2, b.Len())
}

func TestBox_NextPriority_OnlyEligible(t *testing.T) {
	now := time.Now()
	b := NewBox("Missed Questions", 60*time.Second)

	a := presentedAt(t, "A", now.Add(-70*time.Second))
	bq := presentedAt(t, "B", now.Add(-30*time.Second))
	b.Add(bq)
	b.Add(a)

	got := b.NextPriority(now)
	require.NotNil(t, got)
	assert.Equal(t, a.ID(), got.ID())
}

func TestBox_NextPriority_OldestFirst(t *testing.T) {
	now := time.Now()
	b := NewBox("Unasked Questions", 0)

	newer := presentedAt(t, "newer", now.Add(-10*time.Second))
	oldest := presentedAt(t, "oldest", now.Add(-5*time.Minute))
	middle := presentedAt(t, "middle", now.Add(-time.Minute))
	b.Add(newer)
	b.Add(oldest)
	b.Add(middle)

	got := b.NextPriority(now)
	require.NotNil(t, got)
	assert.Equal(t, oldest.ID(), got.ID())
}

func TestBox_NextPriority_NoneEligible(t *testing.T) {
	now := time.Now()
	b := NewBox("Correctly Answered Once", 180*time.Second)
	b.Add(presentedAt(t, "A", now.Add(-179*time.Second)))
	b.Add(presentedAt(t, "B", now.Add(-time.Second)))

	assert.Nil(t, b.NextPriority(now))
}

func TestBox_NextPriority_BoundaryIsInclusive(t *testing.T) {
	now := time.Now()
	b := NewBox("Missed Questions", 60*time.Second)
	q := presentedAt(t, "A", now.Add(-60*time.Second))
	b.Add(q)

	got := b.NextPriority(now)
	require.NotNil(t, got)
	assert.Equal(t, q.ID(), got.ID())
}

func TestBox_NextPriority_TieGoesToFirstAdded(t *testing.T) {
	now := time.Now()
	at := now.Add(-time.Hour)
	b := NewBox("Unasked Questions", 0)
	first := presentedAt(t, "first", at)
	second := presentedAt(t, "second", at)
	b.Add(first)
	b.Add(second)

	got := b.NextPriority(now)
	require.NotNil(t, got)
	assert.Equal(t, first.ID(), got.ID())
}

func TestBox_NextPriority_ForeverNeverYields(t *testing.T) {
	now := time.Now()
	b := NewBox("Known Questions", Forever)
	q := question.NewShortAnswer("Q", "A")
	q.Reset(now.AddDate(-100, 0, 0))
	b.Add(q)

	assert.Nil(t, b.NextPriority(now))
}

func TestBox_NextPriority_Empty(t *testing.T) {
	assert.Nil(t, NewBox("Empty", 0).NextPriority(time.Now()))
}

func TestBox_QuestionsPreservesOrderAndCopies(t *testing.T) {
	b := NewBox("Test", 0)
	q1 := question.NewShortAnswer("1", "A")
	q2 := question.NewShortAnswer("2", "A")
	q3 := question.NewShortAnswer("3", "A")
	b.Add(q1)
	b.Add(q2)
	b.Add(q3)
	b.Remove(q2)

	got := b.Questions()
	require.Len(t, got, 2)
	assert.Equal(t, q1.ID(), got[0].ID())
	assert.Equal(t, q3.ID(), got[1].ID())

	got[0] = q2
	assert.Equal(t, q1.ID(), b.Questions()[0].ID())
}

func TestBox_String(t *testing.T) {
	b := NewBox("Missed Questions", time.Minute)
	b.Add(question.NewShortAnswer("Q", "A"))
	assert.Equal(t, `Box(name="Missed Questions", questions=1)`, b.String())
}
