// Package session holds the chat session model. A Session is append-only:
// Append returns a new Session and never mutates the receiver's slice.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Message is one immutable turn in a conversation.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage stamps content with a fresh ID and the current time.
func NewMessage(content string, isUser bool) Message {
	return Message{
		ID:        uuid.New().String(),
		Content:   content,
		IsUser:    isUser,
		Timestamp: time.Now(),
	}
}

// Session is the ordered conversation the learner is currently having.
type Session struct {
	ID        string     `json:"id"`
	Messages  []Message  `json:"messages"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}

// New starts an empty session.
func New() *Session {
	return &Session{
		ID:        uuid.New().String(),
		Messages:  []Message{},
		StartTime: time.Now(),
	}
}

// Append returns a copy of s with msgs added at the end.
func (s *Session) Append(msgs ...Message) *Session {
	next := *s
	next.Messages = make([]Message, 0, len(s.Messages)+len(msgs))
	next.Messages = append(next.Messages, s.Messages...)
	next.Messages = append(next.Messages, msgs...)
	return &next
}

// Last returns the final n messages, or all of them if there are fewer.
func (s *Session) Last(n int) []Message {
	if s == nil || n <= 0 {
		return nil
	}
	if len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// LastAssistant returns the most recent assistant message.
func (s *Session) LastAssistant() (Message, bool) {
	if s == nil {
		return Message{}, false
	}
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if !s.Messages[i].IsUser {
			return s.Messages[i], true
		}
	}
	return Message{}, false
}

// Len returns the number of messages; a nil session has none.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Messages)
}
