package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/quizme/internal/journal"
	"github.com/abhisek/quizme/internal/leitner"
	"github.com/abhisek/quizme/internal/question"
	"github.com/abhisek/quizme/internal/ui/theme"
)

// QuitSentinel ends the session when entered as an answer, in any case.
const QuitSentinel = "q"

// Prompter is the user-facing side of a session. Ask blocks until the user
// replies and returns io.EOF once input is exhausted.
type Prompter interface {
	Say(text string)
	Ask(prompt string) (string, error)
}

// Recorder receives one event per answer.
type Recorder interface {
	AppendAnswer(ctx context.Context, e journal.AnswerEvent) error
}

// Outcome describes how a session ended.
type Outcome string

const (
	// OutcomeCompleted means no box had an eligible question left.
	OutcomeCompleted Outcome = "completed"

	// OutcomeQuit means the user entered the quit sentinel or closed input.
	OutcomeQuit Outcome = "quit"
)

// Result summarizes a finished session.
type Result struct {
	Outcome   Outcome
	Asked     int
	Correct   int
	Incorrect int
	Invalid   int
}

// Controller runs the interactive review loop over a Manager.
type Controller struct {
	boxes    *leitner.Manager
	prompter Prompter
	recorder Recorder
	palette  theme.Palette
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder sets where answer events are written.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithPalette sets the console styles.
func WithPalette(p theme.Palette) Option {
	return func(c *Controller) { c.palette = p }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time used to stamp presented questions.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a controller.
func New(boxes *leitner.Manager, p Prompter, opts ...Option) *Controller {
	c := &Controller{
		boxes:    boxes,
		prompter: p,
		palette:  theme.Plain(),
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run asks questions until none is eligible, the user quits, or ctx is
// cancelled. A question counts as presented, and keeps its new timestamp,
// even when the user quits at its prompt.
//
// The returned error is non-nil only for cancellation, a failure to read
// input, or a move of an unmanaged question; the latter wraps
// leitner.ErrUnknownQuestion and indicates a bug.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	var res Result

	c.prompter.Say(c.palette.Hint.Render("Type 'q' at any time to quit the session."))

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		q := c.boxes.Next()
		if q == nil {
			c.prompter.Say(c.palette.Title.Render("All questions have been reviewed. Session complete!"))
			return c.finish(res, OutcomeCompleted), nil
		}

		text := q.Present(c.now())
		res.Asked++

		input, err := c.prompter.Ask(c.palette.Question.Render(text))
		if errors.Is(err, io.EOF) {
			return c.finish(res, OutcomeQuit), nil
		}
		if err != nil {
			return res, fmt.Errorf("read answer: %w", err)
		}
		if strings.EqualFold(strings.TrimSpace(input), QuitSentinel) {
			return c.finish(res, OutcomeQuit), nil
		}

		if err := c.answer(ctx, q, input, &res); err != nil {
			return res, err
		}
	}
}

// answer scores one reply and moves the question. An uninterpretable reply
// leaves the question where it is.
func (c *Controller) answer(ctx context.Context, q question.Question, input string, res *Result) error {
	from, _ := c.boxes.Location(q.ID())

	correct, err := q.CheckAnswer(input)
	if err != nil {
		if !errors.Is(err, question.ErrInvalidInput) {
			return fmt.Errorf("check answer: %w", err)
		}
		res.Invalid++
		c.prompter.Say(c.palette.Warning.Render("Invalid input: " + err.Error()))
		c.logger.Debug("invalid answer", "question", q.ID(), "tier", from.String(), "input", input)
		c.record(ctx, q, input, journal.OutcomeInvalid, from, from)
		return nil
	}

	outcome := journal.OutcomeIncorrect
	if correct {
		outcome = journal.OutcomeCorrect
		res.Correct++
		c.prompter.Say(c.palette.Correct.Render("Correct!"))
	} else {
		res.Incorrect++
		c.prompter.Say(c.palette.Incorrect.Render(q.IncorrectFeedback()))
	}

	tr, err := c.boxes.Move(q, correct)
	if err != nil {
		return err
	}
	c.logger.Debug("moved question",
		"question", q.ID(),
		"correct", correct,
		"from", tr.From.String(),
		"to", tr.To.String(),
		"changed", tr.Changed(),
	)
	c.record(ctx, q, input, outcome, tr.From, tr.To)
	return nil
}

func (c *Controller) record(ctx context.Context, q question.Question, input string, o journal.Outcome, from, to leitner.Tier) {
	if c.recorder == nil {
		return
	}
	err := c.recorder.AppendAnswer(ctx, journal.AnswerEvent{
		QuestionID: q.ID(),
		Kind:       q.Kind(),
		Prompt:     q.Prompt(),
		Answer:     input,
		Outcome:    o,
		From:       from,
		To:         to,
		AnsweredAt: c.now(),
	})
	// Recording is best-effort; it never interrupts the session.
	if err != nil {
		c.logger.Warn("failed to record answer", "question", q.ID(), "error", err)
	}
}

func (c *Controller) finish(res Result, o Outcome) Result {
	res.Outcome = o
	c.prompter.Say("Thank you, goodbye!")
	return res
}
