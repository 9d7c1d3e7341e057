// Package vocabulary lists saved words and shows their example sentences.
package vocabulary

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langbuddy/internal/router"
	"github.com/abhisek/langbuddy/internal/screen"
	"github.com/abhisek/langbuddy/internal/tutor"
	"github.com/abhisek/langbuddy/internal/ui/components"
	"github.com/abhisek/langbuddy/internal/ui/layout"
	"github.com/abhisek/langbuddy/internal/vocab"
)

type mode int

const (
	modeList mode = iota
	modeFilter
	modeAdd
	modeConfirmClear
)

// examplesMsg is sent when example sentences have been attached to a word.
type examplesMsg struct {
	ID   string
	Word vocab.Word
	Err  error
}

// addedMsg is sent when a word typed on this screen has been saved.
type addedMsg struct {
	Word  vocab.Word
	Added bool
	Err   error
}

// Screen is the filterable vocabulary list.
type Screen struct {
	tutor   *tutor.Tutor
	mode    mode
	order   vocab.SortOrder
	query   string
	input   components.TextInput
	cursor  int
	loading map[string]bool
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
		order:   vocab.ByDate,
		loading: make(map[string]bool),
	}
}

func (s *Screen) Init() tea.Cmd {
	s.clampCursor()
	return nil
}

func (s *Screen) Title() string { return "Vocabulary" }

func (s *Screen) CapturingInput() bool {
	return s.mode == modeFilter || s.mode == modeAdd
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeFilter:
		return []layout.KeyHint{{Key: "Enter", Description: "Apply"}, {Key: "Esc", Description: "Clear filter"}}
	case modeAdd:
		return []layout.KeyHint{{Key: "Enter", Description: "Save word"}, {Key: "Esc", Description: "Cancel"}}
	case modeConfirmClear:
		return []layout.KeyHint{{Key: "y", Description: "Delete all"}, {Key: "n", Description: "Keep"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "/", Description: "Filter"},
		{Key: "a", Description: "Add"},
		{Key: "s", Description: "Sort"},
		{Key: "e", Description: "Examples"},
		{Key: "r", Description: "Reviewed"},
		{Key: "d", Description: "Delete"},
	}
}

// Words returns the visible words in display order.
func (s *Screen) Words() []vocab.Word {
	words := vocab.Filter(s.tutor.Vocabulary(), s.query)
	vocab.Sort(words, s.order)
	return words
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case examplesMsg:
		delete(s.loading, msg.ID)
		if msg.Err != nil {
			s.notice = msg.Err.Error()
		} else {
			s.notice = fmt.Sprintf("Examples ready for %q.", msg.Word.Word)
		}
		return s, nil

	case addedMsg:
		switch {
		case msg.Err != nil:
			s.notice = msg.Err.Error()
		case msg.Added:
			s.notice = fmt.Sprintf("Added %q (%s).", msg.Word.Word, msg.Word.Translation)
		default:
			s.notice = fmt.Sprintf("%q is already saved.", msg.Word.Word)
		}
		return s, nil

	case tea.KeyPressMsg:
		switch s.mode {
		case modeFilter:
			return s.updateFilter(msg)
		case modeAdd:
			return s.updateAdd(msg)
		case modeConfirmClear:
			return s.updateConfirm(msg)
		}
		return s.updateList(msg)
	}

	if s.CapturingInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) updateList(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	words := s.Words()

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case "down", "j":
		if s.cursor < len(words)-1 {
			s.cursor++
		}
		return s, nil
	case "/":
		s.mode = modeFilter
		s.input = components.NewTextInput("Search words...", 50)
		s.input.Model.SetValue(s.query)
		return s, s.input.Init()
	case "a":
		s.mode = modeAdd
		s.input = components.NewTextInput("Word to save...", 80)
		return s, s.input.Init()
	case "s":
		if s.order == vocab.ByDate {
			s.order = vocab.ByAlpha
		} else {
			s.order = vocab.ByDate
		}
		s.cursor = 0
		return s, nil
	case "C":
		if len(words) > 0 {
			s.mode = modeConfirmClear
		}
		return s, nil
	}

	if len(words) == 0 {
		return s, nil
	}
	w := words[s.cursor]

	switch msg.String() {
	case "enter":
		d := NewDetail(s.tutor, w.ID)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: d} }
	case "e":
		if s.loading[w.ID] {
			return s, nil
		}
		s.loading[w.ID] = true
		return s, generateExamples(s.tutor, w.ID)
	case "r":
		if _, err := s.tutor.RecordReview(context.Background(), w.ID); err != nil {
			s.notice = err.Error()
		} else {
			s.notice = fmt.Sprintf("Marked %q as reviewed.", w.Word)
		}
	case "d":
		if err := s.tutor.RemoveWord(context.Background(), w.ID); err != nil {
			s.notice = err.Error()
		} else {
			s.notice = fmt.Sprintf("Deleted %q.", w.Word)
		}
		s.clampCursor()
	}
	return s, nil
}

func (s *Screen) updateFilter(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.mode = modeList
		return s, nil
	case "esc":
		s.mode = modeList
		s.query = ""
		s.cursor = 0
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.query = s.input.Value()
	s.cursor = 0
	return s, cmd
}

func (s *Screen) updateAdd(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeList
		return s, nil
	case "enter":
		word := s.input.Value()
		s.mode = modeList
		t := s.tutor
		return s, func() tea.Msg {
			w, added, err := t.AddVocabularyWord(context.Background(), word, "")
			return addedMsg{Word: w, Added: added, Err: err}
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) updateConfirm(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		s.tutor.ClearVocabulary(context.Background())
		s.notice = "Vocabulary cleared."
		s.cursor = 0
		s.mode = modeList
	case "n", "N", "esc":
		s.mode = modeList
	}
	return s, nil
}

func (s *Screen) clampCursor() {
	n := len(s.Words())
	if s.cursor >= n {
		s.cursor = max(n-1, 0)
	}
}

func generateExamples(t *tutor.Tutor, id string) tea.Cmd {
	return func() tea.Msg {
		w, err := t.GenerateExamples(context.Background(), id)
		return examplesMsg{ID: id, Word: w, Err: err}
	}
}
