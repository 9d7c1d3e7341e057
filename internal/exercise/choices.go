package exercise

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ChoicesValidator enforces the options invariant: multiple-choice needs at
// least two distinct options, and any options list must contain the
// correct answer, compared case-insensitively.
type ChoicesValidator struct{}

func (v *ChoicesValidator) Name() string { return "choices" }

func (v *ChoicesValidator) Validate(ex *Exercise, _ json.RawMessage) *ValidationError {
	if ex.Kind == KindMultipleChoice && len(ex.Options) < 2 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("multiple-choice needs at least 2 options, got %d", len(ex.Options)),
		}
	}
	if len(ex.Options) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(ex.Options))
	found := false
	for i, opt := range ex.Options {
		norm := normalize(opt)
		if norm == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %d is empty", i+1)}
		}
		if seen[norm] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate option %q", opt)}
		}
		seen[norm] = true
		if norm == normalize(ex.CorrectAnswer) {
			found = true
		}
	}
	if !found {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correctAnswer %q is not among the options", ex.CorrectAnswer),
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
