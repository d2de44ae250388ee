package question

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to check: errors.Is(err, question.ErrInvalidInput)
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConstruction = errors.New("invalid question")
)

// InvalidInputError indicates a reply that cannot be interpreted for the
// question's kind, such as "maybe" for a true/false question. It is not an
// incorrect answer and must not be scored.
type InvalidInputError struct {
	Input    string
	Expected string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%q is not a valid answer, expected %s", e.Input, e.Expected)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// ConstructionError indicates a question built from a value of the wrong type.
type ConstructionError struct {
	Field string
	Want  string
	Got   any
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s must be a %s, got %T (%v)", e.Field, e.Want, e.Got, e.Got)
}

func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }
