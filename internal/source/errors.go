package source

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to check: errors.Is(err, source.ErrMissingField)
var (
	ErrMalformedSource = errors.New("malformed question source")
	ErrMissingField    = errors.New("missing required field")
	ErrUnsupportedType = errors.New("unsupported question type")
	ErrInvalidRecord   = errors.New("invalid question record")
)

// MissingFieldError indicates a record without one of its required fields.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// UnsupportedTypeError indicates a record whose type is not a known kind.
type UnsupportedTypeError struct {
	Index int
	Type  any
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported question type: %v", e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

// InvalidRecordError indicates a record that has the required fields but
// fails schema validation or question construction.
type InvalidRecordError struct {
	Index int
	Err   error
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record: %v", e.Err)
}

func (e *InvalidRecordError) Unwrap() error { return e.Err }

func (e *InvalidRecordError) Is(target error) bool { return target == ErrInvalidRecord }
