package exercise

import (
	"encoding/json"
	"fmt"
)

// Validator checks one recovered exercise.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in diagnostics, e.g. "schema".
	Name() string

	// Validate returns nil if the exercise passes. raw is the element as
	// the model produced it, before decoding.
	Validate(ex *Exercise, raw json.RawMessage) *ValidationError
}

// ValidationError describes why an exercise was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Index     int    // Position of the element in the recovered array
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("exercise %d: validator %q: %s", e.Index, e.Validator, e.Message)
}

// DefaultValidators returns the chain Recover applies, in order.
func DefaultValidators() []Validator {
	return []Validator{
		&SchemaValidator{},
		&StructuralValidator{},
		&ChoicesValidator{},
	}
}
