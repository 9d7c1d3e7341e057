// Package chat is the conversation screen.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langbuddy/internal/screen"
	"github.com/abhisek/langbuddy/internal/tutor"
	"github.com/abhisek/langbuddy/internal/ui/components"
	"github.com/abhisek/langbuddy/internal/ui/layout"
)

const (
	pageSize  = 5
	inputSize = 500
)

// replyMsg carries a completed turn back from the model.
type replyMsg struct {
	Turn *tutor.Turn
}

// typingTickMsg animates the typing indicator.
type typingTickMsg time.Time

// wordAddedMsg reports the result of /add.
type wordAddedMsg struct {
	Word  string
	Added bool
	Err   error
}

// exercisesMsg reports the result of /more.
type exercisesMsg struct {
	Count     int
	FromModel bool
	Err       error
}

// Screen shows the conversation and the input line.
type Screen struct {
	tutor   *tutor.Tutor
	input   components.TextInput
	visible int
	frame   int
	notice  string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.InputCapturer   = (*Screen)(nil)
)

func New(t *tutor.Tutor) *Screen {
	return &Screen{
		tutor:   t,
		input:   components.NewTextInput("Type a message, /add <word> or /more", inputSize),
		visible: pageSize,
	}
}

func (s *Screen) Init() tea.Cmd {
	s.syncInput()
	cmds := []tea.Cmd{s.input.Init()}
	if s.tutor.Pending() {
		cmds = append(cmds, typingTick())
	}
	return tea.Batch(cmds...)
}

func (s *Screen) Title() string { return "Chat" }

// CapturingInput is always true: the input line is always focused.
func (s *Screen) CapturingInput() bool { return true }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "History"},
		{Key: "Ctrl+E", Description: "Exercises on/off"},
		{Key: "Tab", Description: "Switch view"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.syncInput()
		if msg.Turn != nil && msg.Turn.Received {
			s.notice = fmt.Sprintf("%d new exercises are ready.", len(msg.Turn.Result.Exercises))
		}
		return s, nil

	case typingTickMsg:
		if !s.tutor.Pending() {
			s.syncInput()
			return s, nil
		}
		s.frame++
		return s, typingTick()

	case wordAddedMsg:
		switch {
		case msg.Err != nil:
			s.notice = msg.Err.Error()
		case msg.Added:
			s.notice = fmt.Sprintf("Added %q to your vocabulary.", msg.Word)
		default:
			s.notice = fmt.Sprintf("%q is already in your vocabulary.", msg.Word)
		}
		return s, nil

	case exercisesMsg:
		switch {
		case msg.Err != nil:
			s.notice = msg.Err.Error()
		case msg.FromModel:
			s.notice = fmt.Sprintf("%d new exercises are ready.", msg.Count)
		default:
			s.notice = "Couldn't generate exercises, loaded the practice set instead."
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return s.submit()
	case "pgup":
		total := s.messageCount()
		if s.visible < total {
			s.visible = min(s.visible+pageSize, total)
		}
		return s, nil
	case "pgdown":
		s.visible = max(s.visible-pageSize, pageSize)
		return s, nil
	case "ctrl+e":
		p := s.tutor.Profile()
		p.GenerateExercises = !p.GenerateExercises
		s.tutor.UpdateProfile(context.Background(), p)
		if p.GenerateExercises {
			s.notice = "Exercise generation is on."
		} else {
			s.notice = "Exercise generation is off."
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit handles slash commands or starts a chat turn. The user message is
// recorded before the model is called so it shows up immediately.
func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return s, nil
	}
	s.notice = ""

	if cmd, ok := s.command(text); ok {
		s.input.Reset()
		return s, cmd
	}

	ctx := context.Background()
	pending, err := s.tutor.BeginSend(ctx, text)
	if errors.Is(err, tutor.ErrBusy) {
		s.notice = "Still waiting for the last reply."
		return s, nil
	}
	if pending == nil {
		return s, nil
	}

	s.input.Reset()
	s.visible = pageSize
	s.frame = 0
	s.syncInput()

	t := s.tutor
	complete := func() tea.Msg {
		return replyMsg{Turn: t.CompleteSend(ctx, pending)}
	}
	return s, tea.Batch(complete, typingTick())
}

func (s *Screen) command(text string) (tea.Cmd, bool) {
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	t := s.tutor

	switch name {
	case "/add":
		if arg == "" {
			s.notice = "Usage: /add <word>"
			return nil, true
		}
		sentence := ""
		if last, ok := t.Snapshot().Session.LastAssistant(); ok {
			sentence = last.Content
		}
		return func() tea.Msg {
			w, added, err := t.AddVocabularyWord(context.Background(), arg, sentence)
			return wordAddedMsg{Word: w.Word, Added: added, Err: err}
		}, true

	case "/more":
		s.notice = "Generating exercises..."
		return func() tea.Msg {
			list, fromModel, err := t.MoreExercises(context.Background())
			return exercisesMsg{Count: len(list), FromModel: fromModel, Err: err}
		}, true

	case "/clear":
		t.ClearSession(context.Background())
		s.visible = pageSize
		s.notice = "Started a new conversation."
		return nil, true
	}
	return nil, false
}

// syncInput disables the input line while a reply is pending.
func (s *Screen) syncInput() {
	s.input.Disabled = s.tutor.Pending()
	s.input.DisabledText = "Waiting for LangBuddy..."
}

func (s *Screen) messageCount() int {
	return s.tutor.Snapshot().Session.Len()
}

func typingTick() tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(t time.Time) tea.Msg {
		return typingTickMsg(t)
	})
}
