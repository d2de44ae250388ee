package question

import (
	"time"

	"github.com/google/uuid"
)

// NeverAskedOffset is how far in the past a new question's last-presented
// time is placed. It must exceed every finite box interval so that a
// question that has never been shown is eligible in any box.
const NeverAskedOffset = 7 * 24 * time.Hour

// ID is the process-unique identity of a question. Two questions with the
// same text are still distinct; only the ID decides equality.
type ID uuid.UUID

// NewID returns a fresh random identifier.
func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Kind names a question variant as it appears in question files.
type Kind string

const (
	KindShortAnswer Kind = "shortanswer"
	KindTrueFalse   Kind = "truefalse"
)

// Question is a single reviewable item.
type Question interface {
	// ID returns the question's identity.
	ID() ID

	// Kind reports the variant.
	Kind() Kind

	// Prompt returns the raw prompt text without side effects.
	Prompt() string

	// Present returns the text to display and records now as the
	// last-presented time.
	Present(now time.Time) string

	// LastPresented returns when the question was last presented.
	LastPresented() time.Time

	// Reset marks the question as never presented, relative to now.
	Reset(now time.Time)

	// CheckAnswer scores the user's raw reply. It returns an error
	// matching ErrInvalidInput when the reply cannot be interpreted.
	CheckAnswer(input string) (bool, error)

	// IncorrectFeedback returns the message shown after a wrong answer.
	IncorrectFeedback() string
}

// base holds the state shared by every variant.
type base struct {
	id            ID
	prompt        string
	lastPresented time.Time
}

func newBase(prompt string) base {
	return base{
		id:            NewID(),
		prompt:        prompt,
		lastPresented: time.Now().Add(-NeverAskedOffset),
	}
}

func (b *base) ID() ID                   { return b.id }
func (b *base) Prompt() string           { return b.prompt }
func (b *base) LastPresented() time.Time { return b.lastPresented }

func (b *base) Reset(now time.Time) {
	b.lastPresented = now.Add(-NeverAskedOffset)
}

func (b *base) touch(now time.Time) {
	b.lastPresented = now
}
