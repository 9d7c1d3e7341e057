package llm

import (
	"context"
	"strings"
)

// Provider is the completion abstraction every tutor pipeline talks to.
// It accepts an ordered, role-tagged message list and returns one text
// completion.
type Provider interface {
	// Generate sends the prompt and returns the model's reply text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system instruction block. Providers with a native
	// system slot use it; the gateway sends it as the first message.
	System string

	// Messages is the windowed conversation, oldest first, ending with
	// the newest user utterance.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role is the message sender role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model's output.
type Response struct {
	// Text is the raw completion. It is untrusted: it may carry an
	// exercise payload after the sentinel, or garbage.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped: StopEnd or
	// StopMaxTokens.
	StopReason string
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Truncated reports whether the completion was cut off by MaxTokens. A
// truncated chat reply usually has a broken exercise payload.
func (r *Response) Truncated() bool {
	return r.StopReason == StopMaxTokens
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Flatten returns the request as a single message list with the system
// block first. Used by providers that have no separate system slot.
func (r Request) Flatten() []Message {
	out := make([]Message, 0, len(r.Messages)+1)
	if r.System != "" {
		out = append(out, Message{Role: RoleSystem, Content: r.System})
	}
	return append(out, r.Messages...)
}

// Turns returns Messages as alternating user/assistant turns that start
// with the user, for APIs that reject anything else. System entries are
// treated as user text, consecutive turns from the same side are joined,
// and assistant turns before the first user turn are dropped. The windowed
// history often begins with an assistant reply.
func (r Request) Turns() []Message {
	out := make([]Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		role := RoleUser
		if m.Role == RoleAssistant {
			role = RoleAssistant
		}
		if len(out) == 0 && role == RoleAssistant {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Role == role {
			out[n-1].Content = strings.TrimSpace(out[n-1].Content + "\n\n" + m.Content)
			continue
		}
		out = append(out, Message{Role: role, Content: m.Content})
	}
	return out
}
