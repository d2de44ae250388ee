package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/quizme/internal/question"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchemas holds the JSON schema for each supported record kind.
// Required fields are checked before validation so that a missing field is
// reported by name; the schemas constrain the types of fields that are present.
var recordSchemas = map[question.Kind]map[string]any{
	question.KindShortAnswer: {
		"type":     "object",
		"required": []any{"type", "question", "correct_answer"},
		"properties": map[string]any{
			"type":           map[string]any{"const": string(question.KindShortAnswer)},
			"question":       map[string]any{"type": "string", "minLength": 1},
			"correct_answer": map[string]any{"type": "string"},
			"case_sensitive": map[string]any{"type": "boolean"},
		},
	},
	question.KindTrueFalse: {
		"type":     "object",
		"required": []any{"type", "question", "correct_answer"},
		"properties": map[string]any{
			"type":     map[string]any{"const": string(question.KindTrueFalse)},
			"question": map[string]any{"type": "string", "minLength": 1},
			// correct_answer is type-checked by question.NewTrueFalse.
			"explanation": map[string]any{"type": "string"},
		},
	},
}

// schemaCache caches compiled schemas by kind.
var schemaCache sync.Map // map[question.Kind]*jsonschema.Schema

// validateRecord validates a decoded record against the schema for kind.
func validateRecord(kind question.Kind, rec Record) error {
	compiled, err := compiledSchema(kind)
	if err != nil {
		return err
	}
	if err := compiled.Validate(map[string]any(rec)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(kind question.Kind) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := recordSchemas[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for kind %q", kind)
	}

	// The compiler expects a value decoded by jsonschema.UnmarshalJSON,
	// so round-trip the Go literal through its JSON encoding.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	defParsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://quizme/%s.json", kind)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", kind, err)
	}

	schemaCache.Store(kind, compiled)
	return compiled, nil
}
