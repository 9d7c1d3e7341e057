package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// maxGatewayBody caps how much of a gateway reply is read.
const maxGatewayBody = 4 << 20

// GatewayProvider talks to an HTTP completion gateway: it POSTs
// {"messages":[{role,content}...]} and reads choices[0].message.content
// from the reply. Any non-2xx status or a body without that path counts
// as a failed generation.
type GatewayProvider struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

// NewGatewayProvider creates a provider for the gateway at cfg.URL.
func NewGatewayProvider(cfg GatewayConfig) (*GatewayProvider, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("gateway URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "gateway"
	}
	return &GatewayProvider{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}, nil
}

type gatewayRequest struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

func (p *GatewayProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(gatewayRequest{
		Messages:    req.Flatten(),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal gateway request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxGatewayBody))
	if err != nil {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("read gateway body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapGatewayStatus(resp, raw)
	}

	return parseGatewayBody(raw, p.model)
}

func (p *GatewayProvider) ModelID() string {
	return p.model
}

// parseGatewayBody extracts the completion text and usage from an
// OpenAI-shaped chat completion body.
func parseGatewayBody(raw []byte, fallbackModel string) (*Response, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &ErrInvalidResponse{Body: string(raw), Err: fmt.Errorf("gateway body is not JSON")}
	}
	doc := gjson.ParseBytes(raw)

	content := doc.Get("choices.0.message.content")
	if !content.Exists() || content.Type != gjson.String {
		return nil, &ErrInvalidResponse{Body: string(raw), Err: fmt.Errorf("missing choices[0].message.content")}
	}

	model := doc.Get("model").String()
	if model == "" {
		model = fallbackModel
	}

	stop := StopEnd
	if doc.Get("choices.0.finish_reason").String() == "length" {
		stop = StopMaxTokens
	}

	in := int(doc.Get("usage.prompt_tokens").Int())
	out := int(doc.Get("usage.completion_tokens").Int())
	total := int(doc.Get("usage.total_tokens").Int())
	if total == 0 {
		total = in + out
	}

	return &Response{
		Text:       content.String(),
		Usage:      Usage{InputTokens: in, OutputTokens: out, TotalTokens: total},
		Model:      model,
		StopReason: stop,
	}, nil
}

func mapGatewayStatus(resp *http.Response, raw []byte) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var wait time.Duration
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			wait = time.Duration(secs) * time.Second
		}
		return &ErrRateLimit{RetryAfter: wait, Err: fmt.Errorf("gateway returned HTTP %d", resp.StatusCode)}
	case resp.StatusCode >= 500:
		return &ErrProviderUnavailable{Err: fmt.Errorf("gateway returned HTTP %d: %s", resp.StatusCode, truncateBody(raw))}
	default:
		return &ErrRejected{StatusCode: resp.StatusCode, Body: string(raw)}
	}
}

func truncateBody(raw []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit] + "…"
	}
	return s
}
