package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langbuddy/internal/llm"
	"github.com/abhisek/langbuddy/internal/router"
	"github.com/abhisek/langbuddy/internal/store"
	"github.com/abhisek/langbuddy/internal/tutor"
)

func newModel(responses ...llm.MockResponse) (AppModel, *tutor.Tutor) {
	t := tutor.New(tutor.Deps{
		Provider: llm.NewMockProvider(responses...),
		Store:    store.NewPersistence(store.NewMemoryKV(), nil),
	})
	t.Load(context.Background())
	m := newAppModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(AppModel), t
}

func press(m AppModel, msg tea.KeyPressMsg) (AppModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func TestTabCyclesSurfaces(t *testing.T) {
	m, tr := newModel()

	want := []string{"Exercises", "Vocabulary", "Profile", "Chat"}
	for _, title := range want {
		m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
		if got := m.router.Active().Title(); got != title {
			t.Fatalf("active = %q, want %q", got, title)
		}
	}

	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if m.surface != tutor.SurfaceProfile || tr.Surface() != tutor.SurfaceProfile {
		t.Errorf("shift+tab: app %s, tutor %s", m.surface, tr.Surface())
	}
}

func TestNumberKeysRespectInput(t *testing.T) {
	m, _ := newModel()

	// Chat always captures input, so "3" is typed, not a tab switch.
	m, _ = press(m, tea.KeyPressMsg{Code: '3', Text: "3"})
	if m.surface != tutor.SurfaceChat {
		t.Fatalf("surface = %s, want chat", m.surface)
	}

	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	m, _ = press(m, tea.KeyPressMsg{Code: '4', Text: "4"})
	if m.surface != tutor.SurfaceProfile {
		t.Errorf("surface = %s, want profile", m.surface)
	}
}

func TestReplyWithExercisesSwitchesSurface(t *testing.T) {
	m, tr := newModel(llm.MockResponse{
		Text: `Super! |||EXERCISES||| [{"type":"translation","question":"Translate: dog","correctAnswer":"Hund","difficulty":"A1","topic":"animals"}]`,
	})

	if _, err := tr.Send(context.Background(), "Hallo"); err != nil {
		t.Fatal(err)
	}
	// Any message lets the app notice the tutor moved on.
	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyPgUp})

	if m.router.Active().Title() != "Exercises" {
		t.Fatalf("active = %q, want Exercises", m.router.Active().Title())
	}
	view := m.render()
	if !strings.Contains(view, "Practice (1)") {
		t.Errorf("header should badge the exercise count:\n%s", view)
	}
	if !strings.Contains(view, "Translate: dog") {
		t.Errorf("exercise not rendered:\n%s", view)
	}
}

func TestEscPopsPushedScreen(t *testing.T) {
	m, tr := newModel()
	if _, _, err := tr.AddVocabularyWord(context.Background(), "Haus", ""); err != nil {
		t.Fatal(err)
	}
	m, _ = press(m, tea.KeyPressMsg{Code: '3', Text: "3"}) // typed into chat
	tr.SetSurface(tutor.SurfaceVocabulary)
	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyDown})

	m, cmd := press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	push := findPush(cmd)
	if push == nil {
		t.Fatal("enter on a word should push the detail screen")
	}
	updated, _ := m.Update(*push)
	m = updated.(AppModel)
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if !strings.Contains(m.render(), "Back") {
		t.Error("footer should offer going back")
	}

	m, cmd = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	updated, _ = m.Update(cmd())
	m = updated.(AppModel)
	if m.router.Depth() != 1 || m.router.Active().Title() != "Vocabulary" {
		t.Errorf("after esc: depth %d, active %q", m.router.Depth(), m.router.Active().Title())
	}
}

func TestTooSmall(t *testing.T) {
	m, _ := newModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "too small") {
		t.Error("expected the minimum size message")
	}
}

// findPush runs cmd, unwrapping batches, and returns the first push.
func findPush(cmd tea.Cmd) *router.PushScreenMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case router.PushScreenMsg:
		return &msg
	case tea.BatchMsg:
		for _, c := range msg {
			if p := findPush(c); p != nil {
				return p
			}
		}
	}
	return nil
}
