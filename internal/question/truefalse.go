package question

import (
	"strings"
	"time"
)

var _ Question = (*TrueFalse)(nil)

// TrueFalse is a question whose answer is a boolean.
type TrueFalse struct {
	base
	answer      bool
	explanation string
}

// TrueFalseOption configures a TrueFalse.
type TrueFalseOption func(*TrueFalse)

// WithExplanation sets the text shown after a wrong answer.
func WithExplanation(text string) TrueFalseOption {
	return func(q *TrueFalse) { q.explanation = text }
}

// NewTrueFalse creates a true/false question. The answer comes straight from
// decoded question data, so it is accepted as any and must be a genuine bool;
// strings such as "true" are rejected with a *ConstructionError.
func NewTrueFalse(prompt string, answer any, opts ...TrueFalseOption) (*TrueFalse, error) {
	b, ok := answer.(bool)
	if !ok {
		return nil, &ConstructionError{Field: "correct_answer", Want: "boolean", Got: answer}
	}
	q := &TrueFalse{
		base:   newBase(prompt),
		answer: b,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

func (q *TrueFalse) Kind() Kind { return KindTrueFalse }

// Answer returns the correct boolean.
func (q *TrueFalse) Answer() bool { return q.answer }

// Explanation returns the configured explanation, possibly empty.
func (q *TrueFalse) Explanation() string { return q.explanation }

func (q *TrueFalse) Present(now time.Time) string {
	q.touch(now)
	return q.prompt + " (True/False)"
}

// CheckAnswer accepts "t"/"true" and "f"/"false" in any case. Anything else
// returns an *InvalidInputError.
func (q *TrueFalse) CheckAnswer(input string) (bool, error) {
	var got bool
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "t", "true":
		got = true
	case "f", "false":
		got = false
	default:
		return false, &InvalidInputError{Input: input, Expected: "true or false"}
	}
	return got == q.answer, nil
}

func (q *TrueFalse) IncorrectFeedback() string {
	if q.explanation != "" {
		return "Incorrect. " + q.explanation
	}
	return "Incorrect."
}
