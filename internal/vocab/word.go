package vocab

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Difficulty is the tier of an example sentence.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Tiers lists the difficulties in the order examples are shown.
var Tiers = []Difficulty{Beginner, Intermediate, Advanced}

// ExampleSentence is one sentence in the source language with its
// translation.
type ExampleSentence struct {
	Source     string     `json:"source"`
	Target     string     `json:"target"`
	Difficulty Difficulty `json:"difficulty"`
}

// Word is a saved vocabulary entry.
type Word struct {
	ID             string            `json:"id"`
	Word           string            `json:"word"`
	Translation    string            `json:"translation"`
	Context        string            `json:"context"`
	DateAdded      time.Time         `json:"dateAdded"`
	SourceLanguage string            `json:"sourceLanguage"`
	TargetLanguage string            `json:"targetLanguage"`
	Examples       []ExampleSentence `json:"examples,omitempty"`
	TimesReviewed  int               `json:"timesReviewed,omitempty"`
	LastReviewed   *time.Time        `json:"lastReviewed,omitempty"`
}

// NewWord creates an entry with a fresh ID dated now.
func NewWord(word, translation, context, sourceLang, targetLang string) Word {
	return Word{
		ID:             uuid.New().String(),
		Word:           word,
		Translation:    translation,
		Context:        context,
		DateAdded:      time.Now(),
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
	}
}

// SameWord reports whether a and b name the same word. Only the word text
// is compared, ignoring case and surrounding space; languages are not.
func SameWord(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Contains reports whether words already holds word.
func Contains(words []Word, word string) bool {
	_, ok := Find(words, word)
	return ok
}

// Find returns the index of word in words.
func Find(words []Word, word string) (int, bool) {
	for i, w := range words {
		if SameWord(w.Word, word) {
			return i, true
		}
	}
	return -1, false
}

// IndexByID returns the index of the word with the given ID.
func IndexByID(words []Word, id string) (int, bool) {
	for i, w := range words {
		if w.ID == id {
			return i, true
		}
	}
	return -1, false
}

// SortOrder selects how Sort orders words.
type SortOrder string

const (
	ByDate  SortOrder = "date"
	ByAlpha SortOrder = "alphabetical"
)

// Filter returns the words whose text or translation contains query,
// ignoring case. An empty query matches everything. The input is not
// modified.
func Filter(words []Word, query string) []Word {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if q == "" ||
			strings.Contains(strings.ToLower(w.Word), q) ||
			strings.Contains(strings.ToLower(w.Translation), q) {
			out = append(out, w)
		}
	}
	return out
}

// Sort orders words in place: ByDate puts the newest first, ByAlpha sorts
// by word ignoring case.
func Sort(words []Word, order SortOrder) {
	switch order {
	case ByAlpha:
		sort.SliceStable(words, func(i, j int) bool {
			return strings.ToLower(words[i].Word) < strings.ToLower(words[j].Word)
		})
	default:
		sort.SliceStable(words, func(i, j int) bool {
			return words[i].DateAdded.After(words[j].DateAdded)
		})
	}
}

func sortByNextReview(words []Word) {
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].NextReview().Before(words[j].NextReview())
	})
}

// MarkReviewed bumps the review counter and stamps the review time.
func (w *Word) MarkReviewed(now time.Time) {
	w.TimesReviewed++
	w.LastReviewed = &now
}
