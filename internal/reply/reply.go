// Package reply splits a model completion into the conversational reply
// and the exercise payload that may follow the sentinel.
//
// The grammar is:
//
//	completion = reply [ Sentinel payload ]
//
// Every function here is total: any input yields a classification.
package reply

import (
	"strings"

	"github.com/abhisek/langbuddy/internal/exercise"
)

// Sentinel separates the reply from the structured payload.
const Sentinel = "|||EXERCISES|||"

// Outcome classifies a parsed completion.
type Outcome int

const (
	// OutcomeWithoutData means there was no usable payload segment.
	OutcomeWithoutData Outcome = iota
	// OutcomeWithData means at least one exercise was recovered.
	OutcomeWithData
	// OutcomeParseFailure means a payload segment was present but yielded
	// no exercises.
	OutcomeParseFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWithData:
		return "with-data"
	case OutcomeParseFailure:
		return "parse-failure"
	default:
		return "without-data"
	}
}

// Result is the tagged outcome of Parse.
type Result struct {
	Reply     string
	Segment   string
	Exercises []exercise.Exercise
	Outcome   Outcome

	// Err carries recovery diagnostics. It is set for parse failures and
	// when some elements were dropped; it is never meant for the user.
	Err error
}

// Partition splits text at the first Sentinel. The reply is the trimmed
// text before it. The segment is the trimmed text after it and ok reports
// whether that segment is non-empty. Without a sentinel the whole trimmed
// text is the reply.
func Partition(text string) (reply, segment string, ok bool) {
	before, after, found := strings.Cut(text, Sentinel)
	if !found {
		return strings.TrimSpace(text), "", false
	}
	segment = strings.TrimSpace(after)
	return strings.TrimSpace(before), segment, segment != ""
}

// Parse partitions text and recovers exercises from the segment.
func Parse(text string) Result {
	return ParseWith(exercise.NewRecoverer(), text)
}

// ParseWith is Parse with a caller-supplied recoverer.
func ParseWith(r *exercise.Recoverer, text string) Result {
	replyText, segment, ok := Partition(text)
	res := Result{Reply: replyText, Segment: segment, Outcome: OutcomeWithoutData}
	if !ok {
		return res
	}

	exercises, err := r.Recover(segment)
	res.Err = err
	if len(exercises) == 0 {
		res.Outcome = OutcomeParseFailure
		return res
	}
	res.Exercises = exercises
	res.Outcome = OutcomeWithData
	return res
}
