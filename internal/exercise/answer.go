package exercise

import (
	"strconv"
	"strings"
)

// CheckAnswer reports whether answer is correct for ex.
//
// Comparison trims whitespace and ignores case. For multiple-choice, a
// 1-based option number is accepted as well as the option text.
func CheckAnswer(ex Exercise, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}

	if ex.Kind == KindMultipleChoice {
		if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(ex.Options) {
			answer = ex.Options[idx-1]
		}
	}

	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(ex.CorrectAnswer))
}
