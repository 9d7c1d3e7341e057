package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockResponse is one scripted reply. StopReason defaults to StopEnd.
type MockResponse struct {
	Text       string
	Usage      Usage
	StopReason string
	Err        error
}

// MockProvider replays scripted replies in order and records every
// request it receives. Tests drive the tutor with it.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate pops the next reply. Running out of replies looks like an
// outage so callers exercise their fallback path.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("mock: no reply scripted for call %d", len(m.Calls))}
	}

	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	stop := next.StopReason
	if stop == "" {
		stop = StopEnd
	}
	return &Response{Text: next.Text, Usage: next.Usage, Model: "mock", StopReason: stop}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse scripts one more reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or false if none was made.
func (m *MockProvider) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}

// EchoProvider backs the "mock" provider so the app runs without a
// network. It repeats the learner's last message.
type EchoProvider struct{}

// NewEchoProvider creates an EchoProvider.
func NewEchoProvider() *EchoProvider { return &EchoProvider{} }

func (EchoProvider) Generate(_ context.Context, req Request) (*Response, error) {
	last := ""
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == RoleUser {
			last = req.Messages[i].Content
			break
		}
	}
	return &Response{
		Text:       fmt.Sprintf("(offline) You said: %s", last),
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

func (EchoProvider) ModelID() string { return "mock" }
