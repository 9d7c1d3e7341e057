package vocab

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langbuddy/internal/llm"
)

// Source says where a translation came from.
type Source string

const (
	SourceDictionary  Source = "dictionary"
	SourceCache       Source = "cache"
	SourceModel       Source = "model"
	SourcePlaceholder Source = "placeholder"
)

// Placeholder is the translation used when nothing else is available.
func Placeholder(text string) string {
	return "[" + text + "]"
}

// Translator translates single words and short phrases. It tries the
// built-in dictionary, then the cache, then the model, and finally falls
// back to a bracketed placeholder. It never fails.
type Translator struct {
	provider llm.Provider
	cache    *ristretto.Cache[string, string]
	log      logrus.FieldLogger
}

// NewTranslator returns a Translator. provider may be nil, in which case
// only the dictionary and placeholder are used.
func NewTranslator(provider llm.Provider, log logrus.FieldLogger) (*Translator, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create translation cache: %w", err)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Translator{provider: provider, cache: c, log: log.WithField("component", "translator")}, nil
}

// Close releases the cache.
func (t *Translator) Close() {
	t.cache.Close()
}

// Translate returns a translation of text from one language into another
// and where it came from.
func (t *Translator) Translate(ctx context.Context, text, from, to string) (string, Source) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Placeholder(text), SourcePlaceholder
	}

	if tr, ok := lookupDictionary(text, from, to); ok {
		return tr, SourceDictionary
	}

	key := cacheKey(text, from, to)
	if tr, ok := t.cache.Get(key); ok {
		return tr, SourceCache
	}

	if t.provider == nil {
		return Placeholder(text), SourcePlaceholder
	}

	tr, err := t.ask(ctx, text, from, to)
	if err != nil {
		t.log.WithError(err).WithField("text", text).Warn("Translation failed, using placeholder")
		return Placeholder(text), SourcePlaceholder
	}

	t.cache.Set(key, tr, 1)
	t.cache.Wait()
	return tr, SourceModel
}

func (t *Translator) ask(ctx context.Context, text, from, to string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTranslate)
	resp, err := t.provider.Generate(ctx, llm.Request{
		System: fmt.Sprintf("You are a professional translator. Translate %s text to %s accurately and naturally. Return only the translation without explanations.", from, to),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Translate this %s text to %s: %q", from, to, text)},
		},
		MaxTokens:   100,
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}

	tr := strings.Trim(strings.TrimSpace(resp.Text), `"'“”„`)
	tr = strings.TrimSpace(tr)
	if tr == "" {
		return "", fmt.Errorf("empty translation")
	}
	return tr, nil
}

func cacheKey(text, from, to string) string {
	return strings.ToLower(from) + ">" + strings.ToLower(to) + ":" + strings.ToLower(text)
}
