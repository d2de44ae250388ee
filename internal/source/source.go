package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/quizme/internal/question"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Record is one decoded question definition, for example:
//
//	{"type": "truefalse", "question": "...", "correct_answer": true, "explanation": "..."}
//
// A nil Record stands for an array element that was not a JSON object.
type Record map[string]any

// Diagnostic describes a record that was skipped.
type Diagnostic struct {
	Index int
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("skipping question %d: %v", d.Index+1, d.Err)
}

// Bank is the result of loading a question source.
type Bank struct {
	Questions   []question.Question
	Diagnostics []Diagnostic
}

// Load reads the JSON question file at path and builds its questions.
// It fails only when the file cannot be read or is not a JSON array;
// individual bad records are reported in Bank.Diagnostics.
func Load(path string) (*Bank, error) {
	records, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	qs, diags := Build(records)
	return &Bank{Questions: qs, Diagnostics: diags}, nil
}

// ReadFile reads and decodes the question file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Decode parses a JSON array of question records. Numbers are kept as
// json.Number so that no value is silently coerced.
func Decode(r io.Reader) ([]Record, error) {
	doc, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an array of question records, got %s", ErrMalformedSource, jsonKind(doc))
	}

	records := make([]Record, len(items))
	for i, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records[i] = Record(obj)
		}
	}
	return records, nil
}

// Build converts records into questions in source order. Records that
// cannot be built are skipped and reported; they never abort the batch.
func Build(records []Record) ([]question.Question, []Diagnostic) {
	var (
		qs    []question.Question
		diags []Diagnostic
	)
	for i, rec := range records {
		q, err := build(i, rec)
		if err != nil {
			diags = append(diags, Diagnostic{Index: i, Err: err})
			continue
		}
		qs = append(qs, q)
	}
	return qs, diags
}

var requiredFields = []string{"question", "correct_answer"}

func build(i int, rec Record) (question.Question, error) {
	if rec == nil {
		return nil, &InvalidRecordError{Index: i, Err: errors.New("record is not a JSON object")}
	}

	raw, ok := rec["type"]
	if !ok {
		return nil, &MissingFieldError{Index: i, Field: "type"}
	}
	name, _ := raw.(string)
	kind := question.Kind(name)
	if _, known := recordSchemas[kind]; !known {
		return nil, &UnsupportedTypeError{Index: i, Type: raw}
	}

	for _, field := range requiredFields {
		if _, ok := rec[field]; !ok {
			return nil, &MissingFieldError{Index: i, Field: field}
		}
	}

	if err := validateRecord(kind, rec); err != nil {
		return nil, &InvalidRecordError{Index: i, Err: err}
	}

	prompt := rec["question"].(string)

	switch kind {
	case question.KindShortAnswer:
		var opts []question.ShortAnswerOption
		if cs, ok := rec["case_sensitive"].(bool); ok {
			opts = append(opts, question.CaseSensitive(cs))
		}
		return question.NewShortAnswer(prompt, rec["correct_answer"].(string), opts...), nil

	case question.KindTrueFalse:
		var opts []question.TrueFalseOption
		if expl, ok := rec["explanation"].(string); ok {
			opts = append(opts, question.WithExplanation(expl))
		}
		q, err := question.NewTrueFalse(prompt, rec["correct_answer"], opts...)
		if err != nil {
			return nil, &InvalidRecordError{Index: i, Err: err}
		}
		return q, nil
	}

	return nil, &UnsupportedTypeError{Index: i, Type: raw}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
