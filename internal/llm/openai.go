package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-4o-mini":  "gpt-4o-mini",
	"gpt-4.1-mini": "gpt-4.1-mini",
	"gpt-4.1":      "gpt-4.1",
}

// OpenAIProvider speaks the chat completions protocol. OpenAI itself and
// the compatible hosts in compat.go share it.
type OpenAIProvider struct {
	client *openai.Client
	model  string

	// legacyMaxTokens sends max_tokens instead of max_completion_tokens.
	// Most compatible hosts only understand the former.
	legacyMaxTokens bool
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	p := newChatCompletions(cfg.APIKey, cfg.BaseURL, resolveModel(cfg.Model, openaiModels), nil)
	p.legacyMaxTokens = cfg.BaseURL != ""
	return p, nil
}

// newChatCompletions builds a client for baseURL that adds headers to
// every request.
func newChatCompletions(apiKey, baseURL, model string, headers map[string]string) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if len(headers) > 0 {
		config.HTTPClient = &http.Client{
			Transport: &headerTransport{headers: headers, next: http.DefaultTransport},
		}
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    toChatMessages(req),
		Temperature: float32(req.Temperature),
	}
	if p.legacyMaxTokens {
		chatReq.MaxTokens = req.MaxTokens
	} else {
		chatReq.MaxCompletionTokens = req.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fromHTTPStatus(apiErr.HTTPStatusCode, err)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return nil, fromHTTPStatus(reqErr.HTTPStatusCode, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("no choices in completion")}
	}

	choice := resp.Choices[0]
	out := &Response{
		Text:       choice.Message.Content,
		Model:      resp.Model,
		StopReason: StopEnd,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if choice.FinishReason == openai.FinishReasonLength {
		out.StopReason = StopMaxTokens
	}
	if out.Model == "" {
		out.Model = p.model
	}
	return out, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func toChatMessages(req Request) []openai.ChatCompletionMessage {
	flat := req.Flatten()
	out := make([]openai.ChatCompletionMessage, len(flat))
	for i, m := range flat {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}

type headerTransport struct {
	headers map[string]string
	next    http.RoundTripper
}

func (t *headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	for k, v := range t.headers {
		r.Header.Set(k, v)
	}
	return t.next.RoundTrip(r)
}
