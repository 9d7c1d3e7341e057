package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection reset")}}
}

func TestRetry_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantText  string
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "first attempt succeeds",
			responses: []MockResponse{{Text: "Hallo"}},
			wantText:  "Hallo",
			wantCalls: 1,
		},
		{
			name:      "recovers after outage",
			responses: []MockResponse{unavailable(), {Text: "Hallo"}},
			wantText:  "Hallo",
			wantCalls: 2,
		},
		{
			name:      "gives up after max attempts",
			responses: []MockResponse{unavailable(), unavailable(), unavailable(), {Text: "never"}},
			wantErr:   true,
			wantCalls: 3,
		},
		{
			name: "rate limit honors retry-after",
			responses: []MockResponse{
				{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
				{Text: "Hallo"},
			},
			wantText:  "Hallo",
			wantCalls: 2,
		},
		{
			name: "rejected request is final",
			responses: []MockResponse{
				{Err: &ErrRejected{StatusCode: 401, Body: `{"error":"bad key"}`}},
				{Text: "never"},
			},
			wantErr:   true,
			wantCalls: 1,
		},
		{
			name: "unreadable reply retried once",
			responses: []MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("empty")}},
				{Err: &ErrInvalidResponse{Err: errors.New("empty")}},
				{Text: "never"},
			},
			wantErr:   true,
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, fastRetry(), nil)

			resp, err := p.Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantText, resp.Text)
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), MockResponse{Text: "ok"})
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroConfigCallsOnce(t *testing.T) {
	mock := NewMockProvider(unavailable())
	p := WithRetry(mock, RetryConfig{}, nil)

	_, err := p.Generate(context.Background(), Request{})
	assert.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "mock", p.ModelID())
}

func TestRetry_WaitIsCapped(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 10}}
	for attempt := range 5 {
		got := r.wait(attempt, errors.New("x"))
		assert.LessOrEqual(t, got, 1200*time.Millisecond, "attempt %d", attempt)
	}
	assert.Equal(t, 3*time.Second, r.wait(0, &ErrRateLimit{RetryAfter: 3 * time.Second}))
}

func TestFromHTTPStatus(t *testing.T) {
	base := errors.New("upstream")
	var (
		rl       *ErrRateLimit
		down     *ErrProviderUnavailable
		rejected *ErrRejected
	)
	assert.True(t, errors.As(fromHTTPStatus(429, base), &rl))
	assert.True(t, errors.As(fromHTTPStatus(408, base), &down))
	assert.True(t, errors.As(fromHTTPStatus(503, base), &down))
	assert.True(t, errors.As(fromHTTPStatus(0, base), &down))
	require.True(t, errors.As(fromHTTPStatus(404, base), &rejected))
	assert.Equal(t, 404, rejected.StatusCode)
	assert.ErrorIs(t, rejected, base)
}
