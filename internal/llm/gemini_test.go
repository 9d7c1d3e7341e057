package llm

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelNames(t *testing.T) {
	tests := map[string]string{
		"gemini-flash":     "gemini-2.5-flash",
		"gemini-pro":       "gemini-2.5-pro",
		"gemini-2.0-flash": "gemini-2.0-flash",
	}
	for in, want := range tests {
		if got := resolveModel(in, geminiModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToGeminiContents(t *testing.T) {
	req := Request{Messages: []Message{
		{Role: RoleAssistant, Content: "Willkommen!"},
		{Role: RoleUser, Content: "Hallo"},
		{Role: RoleAssistant, Content: "Guten Tag!"},
		{Role: RoleUser, Content: "Wie geht's?"},
	}}
	contents := toGeminiContents(req.Turns())

	roles := []string{"user", "model", "user"}
	if len(contents) != len(roles) {
		t.Fatalf("expected %d contents, got %d", len(roles), len(contents))
	}
	for i, c := range contents {
		if c.Role != roles[i] {
			t.Errorf("content %d: role %q, want %q", i, c.Role, roles[i])
		}
	}
	if contents[1].Parts[0].Text != "Guten Tag!" {
		t.Errorf("unexpected text: %q", contents[1].Parts[0].Text)
	}
}

func TestFromGeminiError(t *testing.T) {
	var rl *ErrRateLimit
	if err := fromGeminiError(genai.APIError{Code: http.StatusTooManyRequests}); !errors.As(err, &rl) {
		t.Errorf("429: got %T", err)
	}
	var down *ErrProviderUnavailable
	if err := fromGeminiError(&genai.APIError{Code: http.StatusServiceUnavailable}); !errors.As(err, &down) {
		t.Errorf("503: got %T", err)
	}
	if err := fromGeminiError(errors.New("dial tcp: refused")); !errors.As(err, &down) {
		t.Errorf("network: got %T", err)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
