package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionServer answers chat completion calls with reply and records
// the last decoded request body and headers.
type completionServer struct {
	status  int
	reply   string
	finish  string
	body    map[string]any
	headers http.Header
	path    string
}

func (s *completionServer) start(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.path = r.URL.Path
		s.headers = r.Header.Clone()
		s.body = map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&s.body)

		w.Header().Set("Content-Type", "application/json")
		if s.status != 0 && s.status != http.StatusOK {
			w.WriteHeader(s.status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "upstream says no", "type": "server_error"},
			})
			return
		}
		finish := s.finish
		if finish == "" {
			finish = "stop"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini-2024-07-18",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": s.reply},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1"
}

func TestOpenAIProvider_Generate(t *testing.T) {
	srv := &completionServer{reply: "Guten Tag! |||EXERCISES||| []"}
	p := newChatCompletions("test-key", srv.start(t), "gpt-4o-mini", nil)

	resp, err := p.Generate(context.Background(), Request{
		System:      "You are a German tutor.",
		Messages:    []Message{{Role: RoleUser, Content: "Hallo"}},
		MaxTokens:   800,
		Temperature: 0.8,
	})
	require.NoError(t, err)

	assert.Equal(t, "Guten Tag! |||EXERCISES||| []", resp.Text)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)

	assert.Equal(t, "/v1/chat/completions", srv.path)
	assert.Equal(t, "Bearer test-key", srv.headers.Get("Authorization"))
	assert.EqualValues(t, 800, srv.body["max_completion_tokens"])
	assert.NotContains(t, srv.body, "max_tokens")

	msgs, ok := srv.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestOpenAIProvider_LengthFinish(t *testing.T) {
	srv := &completionServer{reply: "Es war einmal", finish: "length"}
	p := newChatCompletions("k", srv.start(t), "gpt-4o-mini", nil)

	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "Erzähl"}}})
	require.NoError(t, err)
	assert.True(t, resp.Truncated())
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		status    int
		rateLimit bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, false},
		{http.StatusBadGateway, false},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := &completionServer{status: tt.status}
			p := newChatCompletions("k", srv.start(t), "gpt-4o-mini", nil)

			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
			require.Error(t, err)

			var rl *ErrRateLimit
			var down *ErrProviderUnavailable
			if tt.rateLimit {
				assert.True(t, errors.As(err, &rl), "got %T", err)
			} else {
				assert.True(t, errors.As(err, &down), "got %T", err)
			}
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o-mini"})
	assert.Error(t, err)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4.1-mini"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", p.ModelID())
	assert.False(t, p.legacyMaxTokens)

	p, err = NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "local-model", BaseURL: "http://localhost:11434/v1"})
	require.NoError(t, err)
	assert.True(t, p.legacyMaxTokens)
}

func TestToChatMessages(t *testing.T) {
	msgs := toChatMessages(Request{
		System: "sys",
		Messages: []Message{
			{Role: RoleUser, Content: "Hallo"},
			{Role: RoleAssistant, Content: "Guten Tag!"},
		},
	})
	want := []string{openai.ChatMessageRoleSystem, openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant}
	require.Len(t, msgs, len(want))
	for i, m := range msgs {
		assert.Equal(t, want[i], m.Role, "message %d", i)
	}
}
