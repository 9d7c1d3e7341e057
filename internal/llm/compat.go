package llm

import "fmt"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultGroqBaseURL       = "https://api.groq.com/openai/v1"
)

// OpenRouter ranks apps by these headers.
var openRouterAttribution = map[string]string{
	"HTTP-Referer": "https://github.com/abhisek/langbuddy",
	"X-Title":      "LangBuddy",
}

// NewOpenRouterProvider targets OpenRouter. Model IDs are vendor
// qualified ("meta-llama/llama-3.3-70b-instruct") and passed through.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	p := newChatCompletions(cfg.APIKey, orDefault(cfg.BaseURL, defaultOpenRouterBaseURL), cfg.Model, openRouterAttribution)
	p.legacyMaxTokens = true
	return p, nil
}

// NewGroqProvider targets Groq's OpenAI-compatible endpoint.
func NewGroqProvider(cfg GroqConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}
	p := newChatCompletions(cfg.APIKey, orDefault(cfg.BaseURL, defaultGroqBaseURL), cfg.Model, nil)
	p.legacyMaxTokens = true
	return p, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
