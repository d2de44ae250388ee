package question

import (
	"strings"
	"time"
	"unicode"
)

var _ Question = (*ShortAnswer)(nil)

// ShortAnswer is a free-text question matched against a single expected answer.
type ShortAnswer struct {
	base
	answer        string
	caseSensitive bool
}

// ShortAnswerOption configures a ShortAnswer.
type ShortAnswerOption func(*ShortAnswer)

// CaseSensitive controls whether letter case must match. The default is
// case-insensitive.
func CaseSensitive(on bool) ShortAnswerOption {
	return func(q *ShortAnswer) { q.caseSensitive = on }
}

// NewShortAnswer creates a short-answer question.
func NewShortAnswer(prompt, answer string, opts ...ShortAnswerOption) *ShortAnswer {
	q := &ShortAnswer{
		base:   newBase(prompt),
		answer: answer,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *ShortAnswer) Kind() Kind { return KindShortAnswer }

// Answer returns the expected answer as written.
func (q *ShortAnswer) Answer() string { return q.answer }

// IsCaseSensitive reports whether comparison preserves case.
func (q *ShortAnswer) IsCaseSensitive() bool { return q.caseSensitive }

func (q *ShortAnswer) Present(now time.Time) string {
	q.touch(now)
	return q.prompt
}

// CheckAnswer compares the normalized input against the normalized answer.
// Short answers never reject input, so the error is always nil.
//
// Normalization rules:
// - Surrounding whitespace is trimmed
// - Letters are lower-cased unless the question is case-sensitive
// - Every rune that is not a letter, digit, underscore or space is dropped
func (q *ShortAnswer) CheckAnswer(input string) (bool, error) {
	return q.normalize(input) == q.normalize(q.answer), nil
}

func (q *ShortAnswer) IncorrectFeedback() string {
	return "Incorrect. The correct answer is: " + q.answer
}

func (q *ShortAnswer) normalize(s string) string {
	s = strings.TrimSpace(s)
	if !q.caseSensitive {
		s = strings.ToLower(s)
	}
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
