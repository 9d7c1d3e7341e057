package relay

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langbuddy/internal/llm"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	MaxTokens   int           `json:"max_tokens" validate:"omitempty,min=1,max=8192"`
	Temperature float64       `json:"temperature" validate:"omitempty,gte=0,lte=2"`
}

// ChatMessage is one role-tagged message.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content"`
}

// ChatResponse mirrors the chat-completion shape clients read
// choices[0].message.content from.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   ChatUsage    `json:"usage"`
}

type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func (s *Server) healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func methodNotAllowed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, fiber.MethodPost)
	return sendError(c, fiber.StatusMethodNotAllowed, "Method not allowed")
}

// chat forwards the messages to the provider. System messages are merged
// into the request's system block in order.
func (s *Server) chat(c *fiber.Ctx) error {
	if s.provider == nil {
		return sendError(c, fiber.StatusInternalServerError, "LLM provider not configured")
	}

	var req ChatRequest
	if err := s.validate.ParseAndValidate(c, &req); err != nil {
		return err
	}

	llmReq := toRequest(req)
	if llmReq.MaxTokens == 0 {
		llmReq.MaxTokens = s.cfg.MaxTokens
	}
	if llmReq.Temperature == 0 {
		llmReq.Temperature = s.cfg.Temperature
	}

	ctx := llm.WithPurpose(c.UserContext(), llm.PurposeRelay)
	resp, err := s.provider.Generate(ctx, llmReq)
	if err != nil {
		entry := s.log.WithError(err).WithField("messages", len(req.Messages))
		var rl *llm.ErrRateLimit
		if errors.As(err, &rl) {
			entry.Warn("Provider rate limited")
		} else {
			entry.Error("Provider failed")
		}
		return sendError(c, fiber.StatusInternalServerError, "Failed to generate response")
	}

	model := resp.Model
	if model == "" {
		model = s.provider.ModelID()
	}
	total := resp.Usage.TotalTokens
	if total == 0 {
		total = resp.Usage.InputTokens + resp.Usage.OutputTokens
	}

	s.log.WithFields(logrus.Fields{
		"model":         model,
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
	}).Debug("Relayed completion")

	return c.JSON(ChatResponse{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []ChatChoice{{
			Index:        0,
			Message:      ChatMessage{Role: string(llm.RoleAssistant), Content: resp.Text},
			FinishReason: finishReason(resp.StopReason),
		}},
		Usage: ChatUsage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      total,
		},
	})
}

func toRequest(req ChatRequest) llm.Request {
	var system []string
	out := llm.Request{
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	for _, m := range req.Messages {
		role := llm.Role(m.Role)
		if role == llm.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		out.Messages = append(out.Messages, llm.Message{Role: role, Content: m.Content})
	}
	out.System = strings.Join(system, "\n\n")
	return out
}

func finishReason(stop string) string {
	switch stop {
	case llm.StopMaxTokens:
		return "length"
	case "error":
		return "error"
	default:
		return "stop"
	}
}
