package chat

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langbuddy/internal/llm"
	"github.com/abhisek/langbuddy/internal/store"
	"github.com/abhisek/langbuddy/internal/tutor"
)

func newTutor(responses ...llm.MockResponse) *tutor.Tutor {
	t := tutor.New(tutor.Deps{
		Provider: llm.NewMockProvider(responses...),
		Store:    store.NewPersistence(store.NewMemoryKV(), nil),
	})
	t.Load(context.Background())
	return t
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(s *Screen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

// drain runs cmd and any batched commands, feeding the resulting messages
// back into the screen.
func drain(s *Screen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(s, c)
		}
		return
	}
	if msg != nil {
		s.Update(msg)
	}
}

func TestSend_UserMessageShowsBeforeReply(t *testing.T) {
	tr := newTutor(llm.MockResponse{Text: "Guten Tag!"})
	s := New(tr)
	s.Init()

	typeText(s, "Hallo")
	cmd := enter(s)

	st := tr.Snapshot()
	if st.Session.Len() != 1 || !st.Pending {
		t.Fatalf("before reply: %d messages, pending=%v", st.Session.Len(), st.Pending)
	}
	if !s.input.Disabled {
		t.Error("input should be disabled while pending")
	}
	if s.input.Value() != "" {
		t.Errorf("input not cleared: %q", s.input.Value())
	}
	if !strings.Contains(s.View(80, 30), "typing") {
		t.Error("typing indicator missing while pending")
	}

	drain(s, cmd)

	st = tr.Snapshot()
	if st.Session.Len() != 2 || st.Pending {
		t.Fatalf("after reply: %d messages, pending=%v", st.Session.Len(), st.Pending)
	}
	if s.input.Disabled {
		t.Error("input should be enabled after the reply")
	}
	view := s.View(80, 30)
	if !strings.Contains(view, "Hallo") || !strings.Contains(view, "Guten Tag!") {
		t.Errorf("view missing conversation:\n%s", view)
	}
}

func TestSend_BlankIgnored(t *testing.T) {
	tr := newTutor()
	s := New(tr)

	typeText(s, "   ")
	if cmd := enter(s); cmd != nil {
		t.Error("blank input should not start a turn")
	}
	if tr.Snapshot().Session != nil {
		t.Error("blank input created a session")
	}
}

func TestSend_ExercisesNotice(t *testing.T) {
	tr := newTutor(llm.MockResponse{Text: `Gut! |||EXERCISES||| [{"type":"translation","question":"Translate: house","correctAnswer":"Haus","difficulty":"A1","topic":"nouns"}]`})
	s := New(tr)

	typeText(s, "Hallo")
	drain(s, enter(s))

	if !strings.Contains(s.notice, "1 new exercises") {
		t.Errorf("notice = %q", s.notice)
	}
	if tr.Surface() != tutor.SurfaceExercises {
		t.Errorf("surface = %s, want exercises", tr.Surface())
	}
}

func TestAddCommand(t *testing.T) {
	tr := newTutor(llm.MockResponse{Text: "Das ist ein Haus."})
	s := New(tr)

	typeText(s, "Was ist das?")
	drain(s, enter(s))

	typeText(s, "/add Haus")
	drain(s, enter(s))

	words := tr.Vocabulary()
	if len(words) != 1 || words[0].Word != "Haus" {
		t.Fatalf("vocabulary = %+v", words)
	}
	if words[0].Context != "Das ist ein Haus." {
		t.Errorf("context = %q, want the last reply", words[0].Context)
	}
	if !strings.Contains(s.notice, "Added") {
		t.Errorf("notice = %q", s.notice)
	}

	typeText(s, "/add haus")
	drain(s, enter(s))
	if !strings.Contains(s.notice, "already") {
		t.Errorf("duplicate notice = %q", s.notice)
	}
}

func TestMoreCommand_FallsBackToSamples(t *testing.T) {
	tr := newTutor()
	s := New(tr)

	typeText(s, "/more")
	drain(s, enter(s))

	if len(tr.Exercises()) == 0 {
		t.Fatal("expected the sample exercises")
	}
	if !strings.Contains(s.notice, "practice set") {
		t.Errorf("notice = %q", s.notice)
	}
	if tr.Snapshot().Session != nil {
		t.Error("/more should not touch the conversation")
	}
}

func TestToggleExercises(t *testing.T) {
	tr := newTutor()
	s := New(tr)

	s.Update(tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl})
	if tr.Profile().GenerateExercises {
		t.Error("ctrl+e should turn exercise generation off")
	}
	s.Update(tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl})
	if !tr.Profile().GenerateExercises {
		t.Error("ctrl+e should turn exercise generation back on")
	}
}

func TestPaging(t *testing.T) {
	var responses []llm.MockResponse
	for range 6 {
		responses = append(responses, llm.MockResponse{Text: "ok"})
	}
	tr := newTutor(responses...)
	s := New(tr)
	for _, text := range []string{"eins", "zwei", "drei", "vier", "fünf", "sechs"} {
		if _, err := tr.Send(context.Background(), text); err != nil {
			t.Fatal(err)
		}
	}

	if !strings.Contains(s.View(100, 60), "7 earlier messages") {
		t.Errorf("expected the earlier-messages hint:\n%s", s.View(100, 60))
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if s.visible != 10 {
		t.Errorf("visible = %d after pgup, want 10", s.visible)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if s.visible != 12 {
		t.Errorf("visible = %d, want capped at 12", s.visible)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	if s.visible != pageSize {
		t.Errorf("visible = %d, want %d", s.visible, pageSize)
	}
}

func TestWelcome(t *testing.T) {
	s := New(newTutor())
	if !strings.Contains(s.View(80, 24), "German tutor") {
		t.Errorf("empty chat should greet the learner:\n%s", s.View(80, 24))
	}
}
