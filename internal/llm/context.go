package llm

import (
	"context"
	"slices"
)

// Purpose labels the pipeline a completion belongs to. It is recorded
// on every logged event so usage can be split by feature.
const (
	PurposeChat      = "chat"
	PurposeExercises = "exercises"
	PurposeTranslate = "translate"
	PurposeExamples  = "examples"
	PurposeRelay     = "relay"
)

var purposes = []string{PurposeChat, PurposeExercises, PurposeTranslate, PurposeExamples, PurposeRelay}

// Purposes lists the known purpose labels.
func Purposes() []string { return slices.Clone(purposes) }

// KnownPurpose reports whether p is one of Purposes.
func KnownPurpose(p string) bool { return slices.Contains(purposes, p) }

type purposeKey struct{}

func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
