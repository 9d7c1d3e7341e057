// Package exercises is the practice screen for the active exercise set.
package exercises

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langbuddy/internal/exercise"
	"github.com/abhisek/langbuddy/internal/screen"
	"github.com/abhisek/langbuddy/internal/tutor"
	"github.com/abhisek/langbuddy/internal/ui/components"
	"github.com/abhisek/langbuddy/internal/ui/layout"
)

// moreMsg reports the result of a request for more exercises.
type moreMsg struct {
	FromModel bool
	Err       error
}

// Screen walks through the current exercise set one item at a time.
type Screen struct {
	tutor      *tutor.Tutor
	set        *exercise.Set
	batch      string
	choice     components.Choice
	input      components.TextInput
	generating bool
	notice     string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.InputCapturer   = (*Screen)(nil)
)

func New(t *tutor.Tutor) *Screen {
	s := &Screen{tutor: t}
	s.sync()
	return s
}

// Init picks up a batch that arrived while the screen was hidden.
func (s *Screen) Init() tea.Cmd {
	s.sync()
	if s.typing() {
		return s.input.Init()
	}
	return nil
}

func (s *Screen) Title() string { return "Exercises" }

// CapturingInput is true while a typed answer is being entered.
func (s *Screen) CapturingInput() bool { return s.typing() }

func (s *Screen) KeyHints() []layout.KeyHint {
	ex, ok := s.set.Current()
	switch {
	case !ok:
		return []layout.KeyHint{{Key: "m", Description: "Generate exercises"}}
	case s.answered():
		return []layout.KeyHint{
			{Key: "n/p", Description: "Next/Prev"},
			{Key: "m", Description: "More exercises"},
			{Key: "Tab", Description: "Switch view"},
		}
	case ex.Kind == exercise.KindMultipleChoice:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-9", Description: "Pick"},
			{Key: "Enter", Description: "Check"},
			{Key: "n/p", Description: "Skip"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "PgUp/PgDn", Description: "Prev/Next"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case moreMsg:
		s.generating = false
		switch {
		case msg.Err != nil:
			s.notice = msg.Err.Error()
		case !msg.FromModel:
			s.notice = "Couldn't generate new exercises, here is a practice set."
		default:
			s.notice = ""
		}
		s.sync()
		return s, s.focus()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.typing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch key {
	case "pgdown":
		return s, s.move(s.set.Next())
	case "pgup":
		return s, s.move(s.set.Prev())
	}

	ex, ok := s.set.Current()
	if !ok || s.answered() || ex.Kind == exercise.KindMultipleChoice {
		switch key {
		case "n", "right":
			return s, s.move(s.set.Next())
		case "p", "left":
			return s, s.move(s.set.Prev())
		case "m":
			return s, s.more()
		}
	}
	if !ok || s.answered() {
		return s, nil
	}

	if ex.Kind == exercise.KindMultipleChoice {
		var done bool
		s.choice, done = s.choice.Update(msg)
		if done {
			s.check(s.choice.Value())
		}
		return s, nil
	}

	if key == "enter" {
		if answer := strings.TrimSpace(s.input.Value()); answer != "" {
			s.check(answer)
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// check records answer and reveals the result.
func (s *Screen) check(answer string) {
	r, ok := s.set.Answer(answer)
	if !ok {
		return
	}
	s.reveal(r)
}

func (s *Screen) reveal(r exercise.Result) {
	ex, _ := s.set.Current()
	if ex.Kind == exercise.KindMultipleChoice {
		for i, opt := range ex.Options {
			if exercise.CheckAnswer(ex, opt) {
				s.choice.Reveal(i)
				break
			}
		}
		if s.choice.Chosen < 0 {
			for i, opt := range ex.Options {
				if opt == r.Answer {
					s.choice.Selected, s.choice.Chosen = i, i
				}
			}
		}
		return
	}
	s.input.Model.SetValue(r.Answer)
	s.input.Submit(r.Correct)
}

func (s *Screen) more() tea.Cmd {
	if s.generating {
		return nil
	}
	s.generating = true
	s.notice = "Generating new exercises..."
	t := s.tutor
	return func() tea.Msg {
		_, fromModel, err := t.MoreExercises(context.Background())
		return moreMsg{FromModel: fromModel, Err: err}
	}
}

func (s *Screen) move(moved bool) tea.Cmd {
	if !moved {
		return nil
	}
	s.prepare()
	return s.focus()
}

// sync starts over when the tutor holds a different batch than the one on
// screen.
func (s *Screen) sync() {
	items := s.tutor.Exercises()
	id := batchID(items)
	if s.set != nil && id == s.batch {
		return
	}
	s.set = exercise.NewSet(items)
	s.batch = id
	s.prepare()
}

// prepare sets up the answer widget for the current exercise, restoring an
// earlier answer if there is one.
func (s *Screen) prepare() {
	ex, ok := s.set.Current()
	if !ok {
		return
	}
	s.choice = components.NewChoice(ex.Options)
	s.input = components.NewTextInput("Your answer...", 200)
	if r, done := s.set.Answers[ex.ID]; done {
		s.reveal(r)
	}
}

func (s *Screen) focus() tea.Cmd {
	if s.typing() {
		return s.input.Init()
	}
	return nil
}

func (s *Screen) answered() bool {
	ex, ok := s.set.Current()
	if !ok {
		return false
	}
	_, done := s.set.Answers[ex.ID]
	return done
}

func (s *Screen) typing() bool {
	ex, ok := s.set.Current()
	return ok && ex.Kind != exercise.KindMultipleChoice && !s.answered()
}

func batchID(items []exercise.Exercise) string {
	ids := make([]string, len(items))
	for i, ex := range items {
		ids[i] = ex.ID
	}
	return strings.Join(ids, ",")
}
