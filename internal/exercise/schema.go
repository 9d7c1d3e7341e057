package exercise

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://exercise.json"

// elementSchema describes the shape a model-produced exercise must have.
// Identifiers are ignored, so "id" may be anything.
var elementSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type": map[string]any{
			"type": "string",
			"enum": []any{"fill-in-blank", "multiple-choice", "translation", "word-order"},
		},
		"question":      map[string]any{"type": "string", "minLength": 1},
		"correctAnswer": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"explanation": map[string]any{"type": "string"},
		"difficulty":  map[string]any{"type": "string"},
		"topic":       map[string]any{"type": "string"},
	},
	"required": []any{"type", "question", "correctAnswer"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON document, not Go literals.
		defBytes, err := json.Marshal(elementSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// SchemaValidator checks the raw element against the exercise JSON schema.
type SchemaValidator struct{}

func (v *SchemaValidator) Name() string { return "schema" }

func (v *SchemaValidator) Validate(_ *Exercise, raw json.RawMessage) *ValidationError {
	sch, err := compiledSchema()
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("compile schema: %v", err)}
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := sch.Validate(parsed); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	return nil
}
