package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *GatewayProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGatewayProvider(GatewayConfig{URL: server.URL + "/api/chat"})
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return p
}

func TestGatewayProvider_HappyPath(t *testing.T) {
	var got struct {
		Messages []Message `json:"messages"`
	}
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Guten Tag!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 3}
		}`))
	}

	p := newTestGateway(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:   "You are a German tutor.",
		Messages: []Message{{Role: RoleUser, Content: "Hallo"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Guten Tag!" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
	if resp.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", resp.Model)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Fatalf("expected derived total 15, got %d", resp.Usage.TotalTokens)
	}

	if len(got.Messages) != 2 {
		t.Fatalf("expected 2 messages on the wire, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != RoleSystem || got.Messages[1].Content != "Hallo" {
		t.Fatalf("unexpected wire messages: %+v", got.Messages)
	}
}

func TestGatewayProvider_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":"Failed to generate response"}`,
			check: func(t *testing.T, err error) {
				var unavail *ErrProviderUnavailable
				if !errors.As(err, &unavail) {
					t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
				}
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				var rl *ErrRateLimit
				if !errors.As(err, &rl) {
					t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
				}
			},
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   `{"error":"Invalid messages format"}`,
			check: func(t *testing.T, err error) {
				var rejected *ErrRejected
				if !errors.As(err, &rejected) || rejected.StatusCode != http.StatusBadRequest {
					t.Fatalf("expected ErrRejected 400, got %T (%v)", err, err)
				}
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>oops</html>`,
			check: func(t *testing.T, err error) {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
				}
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices": []}`,
			check: func(t *testing.T, err error) {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
				}
			},
		},
		{
			name:   "content not a string",
			status: http.StatusOK,
			body:   `{"choices": [{"message": {"content": 42}}]}`,
			check: func(t *testing.T, err error) {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "Hallo"}}})
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestGatewayProvider_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p, err := NewGatewayProvider(GatewayConfig{URL: url})
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "Hallo"}}})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
}

func TestNewGatewayProvider_RequiresURL(t *testing.T) {
	if _, err := NewGatewayProvider(GatewayConfig{}); err == nil {
		t.Fatal("expected error for empty URL")
	}
}
