package exercise

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// StructuralValidator checks that the decoded fields are usable: a known
// kind, and non-blank question and answer within length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(ex *Exercise, _ json.RawMessage) *ValidationError {
	if !ex.Kind.Valid() {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown type %q", ex.Kind)}
	}
	if strings.TrimSpace(ex.Question) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	if utf8.RuneCountInString(ex.Question) > 500 {
		return &ValidationError{Validator: v.Name(), Message: "question exceeds 500 characters"}
	}
	if strings.TrimSpace(ex.CorrectAnswer) == "" {
		return &ValidationError{Validator: v.Name(), Message: "correctAnswer is empty"}
	}
	if utf8.RuneCountInString(ex.Explanation) > 1000 {
		return &ValidationError{Validator: v.Name(), Message: "explanation exceeds 1000 characters"}
	}
	return nil
}
