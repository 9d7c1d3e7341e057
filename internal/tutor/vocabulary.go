package tutor

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/langbuddy/internal/store"
	"github.com/abhisek/langbuddy/internal/vocab"
)

// Vocabulary returns a copy of the saved words.
func (t *Tutor) Vocabulary() []vocab.Word {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]vocab.Word(nil), t.vocabulary...)
}

// DueVocabulary returns the saved words due for review, most overdue first.
func (t *Tutor) DueVocabulary() []vocab.Word {
	t.mu.Lock()
	defer t.mu.Unlock()
	return vocab.Due(t.vocabulary, t.now())
}

// AddVocabularyWord saves word with a best-effort translation. A word
// already present (ignoring case) is not added again; the existing entry
// is returned with added == false.
func (t *Tutor) AddVocabularyWord(ctx context.Context, word, sentence string) (w vocab.Word, added bool, err error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return vocab.Word{}, false, ErrEmptyWord
	}

	t.mu.Lock()
	if i, ok := vocab.Find(t.vocabulary, word); ok {
		existing := t.vocabulary[i]
		t.mu.Unlock()
		return existing, false, nil
	}
	from, to := t.profile.TargetLanguage, t.profile.NativeLanguage
	t.mu.Unlock()

	translation, source := t.deps.Translator.Translate(ctx, word, from, to)
	if strings.TrimSpace(translation) == "" {
		translation, source = vocab.Placeholder(word), vocab.SourcePlaceholder
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another add may have won while translating.
	if i, ok := vocab.Find(t.vocabulary, word); ok {
		return t.vocabulary[i], false, nil
	}

	w = vocab.NewWord(word, translation, sentence, from, to)
	w.DateAdded = t.now()
	t.vocabulary = append(t.vocabulary, w)
	t.deps.Store.Save(ctx, store.KeyVocabulary, t.vocabulary)

	t.log.WithFields(logrus.Fields{"word": word, "source": string(source)}).Debug("Added vocabulary word")
	return w, true, nil
}

// GenerateExamples attaches three example sentences to the word with the
// given ID, replacing any it had. It falls back to canned sentences when
// the model fails.
func (t *Tutor) GenerateExamples(ctx context.Context, id string) (vocab.Word, error) {
	t.mu.Lock()
	i, ok := vocab.IndexByID(t.vocabulary, id)
	if !ok {
		t.mu.Unlock()
		return vocab.Word{}, ErrWordNotFound
	}
	w := t.vocabulary[i]
	t.mu.Unlock()

	examples, fromModel := t.deps.Examples.Generate(ctx, w)
	if !fromModel {
		t.log.WithField("word", w.Word).Debug("Using fallback examples")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// The word may have been removed while generating.
	i, ok = vocab.IndexByID(t.vocabulary, id)
	if !ok {
		return vocab.Word{}, ErrWordNotFound
	}
	t.vocabulary[i].Examples = examples
	t.deps.Store.Save(ctx, store.KeyVocabulary, t.vocabulary)
	return t.vocabulary[i], nil
}

// RemoveWord deletes the word with the given ID.
func (t *Tutor) RemoveWord(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := vocab.IndexByID(t.vocabulary, id)
	if !ok {
		return ErrWordNotFound
	}
	next := make([]vocab.Word, 0, len(t.vocabulary)-1)
	next = append(next, t.vocabulary[:i]...)
	next = append(next, t.vocabulary[i+1:]...)
	t.vocabulary = next
	t.deps.Store.Save(ctx, store.KeyVocabulary, t.vocabulary)
	return nil
}

// ClearVocabulary deletes every saved word.
func (t *Tutor) ClearVocabulary(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vocabulary = nil
	t.deps.Store.Save(ctx, store.KeyVocabulary, []vocab.Word{})
}

// RecordReview marks the word with the given ID as reviewed now.
func (t *Tutor) RecordReview(ctx context.Context, id string) (vocab.Word, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := vocab.IndexByID(t.vocabulary, id)
	if !ok {
		return vocab.Word{}, ErrWordNotFound
	}
	t.vocabulary[i].MarkReviewed(t.now())
	t.deps.Store.Save(ctx, store.KeyVocabulary, t.vocabulary)
	return t.vocabulary[i], nil
}
