package exercise

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrNoArray is returned when a segment contains no bracketed array.
var ErrNoArray = errors.New("no JSON array found")

var fencePattern = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)\\s*```")

// ExtractArray pulls a JSON array out of model output. Code fences are
// tried first, then the whole text. Within each, it takes the greedy span
// from the first '[' to the last ']' and, if that does not parse, retries
// with trailing commas removed. The first span that parses wins.
func ExtractArray(text string) ([]json.RawMessage, error) {
	var sources []string
	for _, m := range fencePattern.FindAllStringSubmatch(text, -1) {
		sources = append(sources, m[1])
	}
	sources = append(sources, text)

	var firstErr error
	for _, src := range sources {
		candidate, ok := bracketSpan(src)
		if !ok {
			continue
		}
		items, err := parseArray(candidate)
		if err == nil {
			return items, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		return nil, ErrNoArray
	}
	return nil, firstErr
}

func parseArray(candidate string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	err := json.Unmarshal([]byte(candidate), &items)
	if err == nil {
		return items, nil
	}
	if cleaned := stripTrailingCommas(candidate); cleaned != candidate {
		if retryErr := json.Unmarshal([]byte(cleaned), &items); retryErr == nil {
			return items, nil
		}
	}
	return nil, fmt.Errorf("parse JSON array: %w", err)
}

func bracketSpan(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// stripTrailingCommas drops commas that directly precede a closing ']'
// or '}'. Commas inside string literals are left alone.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(s) && strings.IndexByte(" \t\r\n", s[j]) >= 0 {
				j++
			}
			if j < len(s) && (s[j] == ']' || s[j] == '}') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// wireExercise is an element as the model sends it. The model's id, of
// whatever JSON type, shadows Exercise.ID and is discarded.
type wireExercise struct {
	Exercise
	ID json.RawMessage `json:"id"`
}

// Recoverer turns a structured segment into validated exercises.
type Recoverer struct {
	Validators []Validator

	// NewID generates identifiers; defaults to random UUIDs.
	NewID func() string
}

// NewRecoverer returns a Recoverer with the default validator chain.
func NewRecoverer() *Recoverer {
	return &Recoverer{Validators: DefaultValidators()}
}

// Recover parses segment with the default validator chain.
func Recover(segment string) ([]Exercise, error) {
	return NewRecoverer().Recover(segment)
}

// Recover extracts exercises from segment. It never panics.
//
// A blank segment yields no exercises and no error. A segment without a
// parseable array yields no exercises and an error. Otherwise each element
// is decoded and validated on its own: invalid elements are dropped and
// reported in the joined error, valid ones get a fresh identifier
// regardless of any id the model supplied.
func (r *Recoverer) Recover(segment string) (out []Exercise, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("recover exercises: %v", p)
		}
	}()

	if strings.TrimSpace(segment) == "" {
		return nil, nil
	}

	items, err := ExtractArray(segment)
	if err != nil {
		return nil, err
	}

	newID := r.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}

	var errs []error
	for i, raw := range items {
		ex, verr := r.decode(i, raw)
		if verr != nil {
			errs = append(errs, verr)
			continue
		}
		ex.ID = newID()
		out = append(out, ex)
	}
	return out, errors.Join(errs...)
}

func (r *Recoverer) decode(index int, raw json.RawMessage) (Exercise, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Exercise{}, &ValidationError{Validator: "decode", Index: index, Message: "element is not an object"}
	}

	var wire wireExercise
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return Exercise{}, &ValidationError{Validator: "decode", Index: index, Message: err.Error()}
	}
	ex := wire.Exercise

	for _, v := range r.Validators {
		if verr := v.Validate(&ex, trimmed); verr != nil {
			verr.Index = index
			return Exercise{}, verr
		}
	}
	return ex, nil
}
