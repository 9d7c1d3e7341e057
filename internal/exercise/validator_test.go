package exercise

import (
	"encoding/json"
	"strings"
	"testing"
)

func validExercise() *Exercise {
	return &Exercise{
		Kind:          KindMultipleChoice,
		Question:      "Which article goes with \"Haus\"?",
		Options:       []string{"der", "die", "das"},
		CorrectAnswer: "das",
		Difficulty:    "A1",
		Topic:         "articles",
	}
}

func rawOf(t *testing.T, ex *Exercise) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(ex)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "choices", Index: 2, Message: "something went wrong"}
	expected := `exercise 2: validator "choices": something went wrong`
	if err.Error() != expected {
		t.Errorf("got %q, want %q", err.Error(), expected)
	}
}

func TestDefaultValidators_Chain(t *testing.T) {
	names := []string{"schema", "structural", "choices"}
	vs := DefaultValidators()
	if len(vs) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(vs))
	}
	for i, v := range vs {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestValidators_AcceptValidExercise(t *testing.T) {
	ex := validExercise()
	raw := rawOf(t, ex)
	for _, v := range DefaultValidators() {
		if err := v.Validate(ex, raw); err != nil {
			t.Errorf("%s: unexpected error: %v", v.Name(), err)
		}
	}
}

func TestSchemaValidator(t *testing.T) {
	v := &SchemaValidator{}
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"minimal", `{"type":"translation","question":"q","correctAnswer":"a"}`, true},
		{"numeric id allowed", `{"id":3,"type":"translation","question":"q","correctAnswer":"a"}`, true},
		{"missing answer", `{"type":"translation","question":"q"}`, false},
		{"unknown type", `{"type":"essay","question":"q","correctAnswer":"a"}`, false},
		{"options not strings", `{"type":"multiple-choice","question":"q","correctAnswer":"a","options":[1,2]}`, false},
		{"answer not string", `{"type":"translation","question":"q","correctAnswer":5}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&Exercise{}, json.RawMessage(tt.raw))
			if (err == nil) != tt.ok {
				t.Errorf("ok = %v, err = %v", tt.ok, err)
			}
		})
	}
}

func TestStructuralValidator_CountsCharacters(t *testing.T) {
	v := &StructuralValidator{}
	ex := validExercise()
	ex.Question = strings.Repeat("ü", 500)
	ex.Explanation = strings.Repeat("é", 1000)
	if err := v.Validate(ex, nil); err != nil {
		t.Fatalf("500 umlauts should fit: %v", err)
	}
	ex.Question = strings.Repeat("ü", 501)
	if err := v.Validate(ex, nil); err == nil {
		t.Fatal("expected error for 501 characters")
	}
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}
	tests := []struct {
		name   string
		mutate func(*Exercise)
	}{
		{"unknown kind", func(e *Exercise) { e.Kind = "essay" }},
		{"blank question", func(e *Exercise) { e.Question = "   " }},
		{"long question", func(e *Exercise) { e.Question = strings.Repeat("a", 501) }},
		{"blank answer", func(e *Exercise) { e.CorrectAnswer = "" }},
		{"long explanation", func(e *Exercise) { e.Explanation = strings.Repeat("a", 1001) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := validExercise()
			tt.mutate(ex)
			err := v.Validate(ex, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Validator != "structural" {
				t.Errorf("expected validator %q, got %q", "structural", err.Validator)
			}
		})
	}
}

func TestChoicesValidator(t *testing.T) {
	v := &ChoicesValidator{}
	tests := []struct {
		name   string
		mutate func(*Exercise)
		ok     bool
	}{
		{"valid", func(e *Exercise) {}, true},
		{"answer case differs", func(e *Exercise) { e.CorrectAnswer = " DAS " }, true},
		{"answer missing from options", func(e *Exercise) { e.CorrectAnswer = "den" }, false},
		{"too few options", func(e *Exercise) { e.Options = []string{"das"} }, false},
		{"no options", func(e *Exercise) { e.Options = nil }, false},
		{"duplicate options", func(e *Exercise) { e.Options = []string{"das", "Das", "der"} }, false},
		{"empty option", func(e *Exercise) { e.Options = []string{"das", " "} }, false},
		{"non-mc without options", func(e *Exercise) { e.Kind = KindTranslation; e.Options = nil }, true},
		{"non-mc options must contain answer", func(e *Exercise) { e.Kind = KindWordOrder; e.CorrectAnswer = "x" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := validExercise()
			tt.mutate(ex)
			err := v.Validate(ex, nil)
			if (err == nil) != tt.ok {
				t.Errorf("ok = %v, err = %v", tt.ok, err)
			}
		})
	}
}

func TestSamples_AreValid(t *testing.T) {
	samples := Samples()
	if len(samples) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(samples))
	}
	kinds := map[Kind]bool{}
	for _, ex := range samples {
		kinds[ex.Kind] = true
		for _, v := range DefaultValidators() {
			ex := ex
			if err := v.Validate(&ex, rawOf(t, &ex)); err != nil {
				t.Errorf("sample %s failed %s: %v", ex.ID, v.Name(), err)
			}
		}
	}
	for _, k := range Kinds {
		if !kinds[k] {
			t.Errorf("samples do not cover kind %q", k)
		}
	}

	samples[0].Question = "changed"
	if Samples()[0].Question == "changed" {
		t.Error("Samples must return a fresh slice")
	}
}
