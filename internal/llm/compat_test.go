package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	srv := &completionServer{reply: "Ciao!"}
	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "meta-llama/llama-3.3-70b-instruct",
		BaseURL: srv.start(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct", p.ModelID())

	_, err = p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Ciao"}},
		MaxTokens: 800,
	})
	require.NoError(t, err)

	assert.Equal(t, "LangBuddy", srv.headers.Get("X-Title"))
	assert.NotEmpty(t, srv.headers.Get("HTTP-Referer"))
	assert.Equal(t, "Bearer sk-or-test", srv.headers.Get("Authorization"))
	assert.EqualValues(t, 800, srv.body["max_tokens"])
	assert.Equal(t, "meta-llama/llama-3.3-70b-instruct", srv.body["model"])
}

func TestGroqProvider(t *testing.T) {
	srv := &completionServer{reply: "¡Hola!"}
	p, err := NewGroqProvider(GroqConfig{APIKey: "gsk-test", Model: "llama-3.1-8b-instant", BaseURL: srv.start(t)})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "Hola"}}})
	require.NoError(t, err)
	assert.Equal(t, "¡Hola!", resp.Text)
	assert.Equal(t, "/v1/chat/completions", srv.path)
	assert.Empty(t, srv.headers.Get("X-Title"))
}

func TestCompatProviders_RequireKey(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x/y"})
	assert.Error(t, err)
	_, err = NewGroqProvider(GroqConfig{Model: "llama-3.1-8b-instant"})
	assert.Error(t, err)
}

func TestCompatProviders_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, defaultGroqBaseURL, orDefault("", defaultGroqBaseURL))
	assert.Equal(t, "http://proxy/v1", orDefault("http://proxy/v1", defaultGroqBaseURL))
}
