package vocab

import "time"

// ReviewIntervals is the expanding schedule in days. The n-th review of a
// word is due ReviewIntervals[n-1] days after the previous one.
var ReviewIntervals = []int{1, 3, 7, 14, 30, 60}

// LearnedIntervalDays applies once a word has been through every interval.
const LearnedIntervalDays = 90

// ReviewStatus describes where a word stands in its schedule.
type ReviewStatus string

const (
	ReviewNew     ReviewStatus = "new"
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
	ReviewLearned ReviewStatus = "learned"
)

// Learned reports whether the word has completed every interval.
func (w *Word) Learned() bool {
	return w.TimesReviewed > len(ReviewIntervals)
}

// IntervalDays returns the gap between the last review and the next one.
func (w *Word) IntervalDays() int {
	switch {
	case w.TimesReviewed <= 0:
		return 0
	case w.Learned():
		return LearnedIntervalDays
	default:
		return ReviewIntervals[w.TimesReviewed-1]
	}
}

// NextReview returns when the word is next due. Words that were never
// reviewed are due from the moment they were added.
func (w *Word) NextReview() time.Time {
	if w.LastReviewed == nil {
		return w.DateAdded
	}
	return w.LastReviewed.AddDate(0, 0, w.IntervalDays())
}

// IsDue reports whether the word is at or past its review date.
func (w *Word) IsDue(now time.Time) bool {
	return !now.Before(w.NextReview())
}

// ReviewStatus returns the word's status for display. A word is overdue
// once it has gone half an interval past its review date.
func (w *Word) ReviewStatus(now time.Time) ReviewStatus {
	if w.LastReviewed == nil {
		return ReviewNew
	}
	if !w.IsDue(now) {
		if w.Learned() {
			return ReviewLearned
		}
		return ReviewNotDue
	}
	grace := time.Duration(float64(w.IntervalDays()) * 0.5 * float64(24*time.Hour))
	if now.After(w.NextReview().Add(grace)) {
		return ReviewOverdue
	}
	return ReviewDue
}

// DaysUntilReview returns whole days until the next review, 0 if due.
func (w *Word) DaysUntilReview(now time.Time) int {
	if w.IsDue(now) {
		return 0
	}
	return int(w.NextReview().Sub(now).Hours()/24.0) + 1
}

// Due returns the words due at now, most overdue first. The input is not
// modified.
func Due(words []Word, now time.Time) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if w.IsDue(now) {
			out = append(out, w)
		}
	}
	sortByNextReview(out)
	return out
}
