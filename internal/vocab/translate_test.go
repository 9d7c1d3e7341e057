package vocab

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/langbuddy/internal/llm"
)

func newTestTranslator(t *testing.T, p llm.Provider) *Translator {
	t.Helper()
	tr, err := NewTranslator(p, nil)
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	t.Cleanup(tr.Close)
	return tr
}

func TestTranslate_Dictionary(t *testing.T) {
	mock := llm.NewMockProvider()
	tr := newTestTranslator(t, mock)

	got, src := tr.Translate(context.Background(), " Guten Morgen ", "German", "English")
	if got != "good morning" || src != SourceDictionary {
		t.Errorf("got %q (%s)", got, src)
	}
	if mock.CallCount() != 0 {
		t.Error("dictionary hits must not call the model")
	}
}

func TestTranslate_DictionaryOnlyForGermanEnglish(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "hola"})
	tr := newTestTranslator(t, mock)

	got, src := tr.Translate(context.Background(), "hallo", "German", "Spanish")
	if got != "hola" || src != SourceModel {
		t.Errorf("got %q (%s)", got, src)
	}
}

func TestTranslate_ModelAndCache(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  \"the cat\"\n"})
	tr := newTestTranslator(t, mock)
	ctx := context.Background()

	got, src := tr.Translate(ctx, "die Katze", "German", "English")
	if got != "the cat" || src != SourceModel {
		t.Fatalf("got %q (%s)", got, src)
	}

	req, _ := mock.LastCall()
	if req.System == "" || len(req.Messages) != 1 {
		t.Errorf("unexpected request %+v", req)
	}

	got, src = tr.Translate(ctx, "Die Katze", "german", "english")
	if got != "the cat" || src != SourceCache {
		t.Errorf("second call: got %q (%s)", got, src)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 model call, got %d", mock.CallCount())
	}
}

func TestTranslate_FailureGivesPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"empty text", llm.MockResponse{Text: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTranslator(t, llm.NewMockProvider(tt.resp))
			got, src := tr.Translate(context.Background(), "Schmetterling", "German", "English")
			if got != "[Schmetterling]" || src != SourcePlaceholder {
				t.Errorf("got %q (%s)", got, src)
			}
		})
	}
}

func TestTranslate_NilProvider(t *testing.T) {
	tr := newTestTranslator(t, nil)
	got, src := tr.Translate(context.Background(), "Schmetterling", "German", "English")
	if got != "[Schmetterling]" || src != SourcePlaceholder {
		t.Errorf("got %q (%s)", got, src)
	}
}
