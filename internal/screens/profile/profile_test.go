package profile

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	prof "github.com/abhisek/langbuddy/internal/profile"
	"github.com/abhisek/langbuddy/internal/store"
	"github.com/abhisek/langbuddy/internal/tutor"
)

func newScreen() (*Screen, *tutor.Tutor, *store.MemoryKV) {
	kv := store.NewMemoryKV()
	tr := tutor.New(tutor.Deps{Store: store.NewPersistence(kv, nil)})
	tr.Load(context.Background())
	return New(tr), tr, kv
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// selectItem moves the cursor to the item with the given label and
// presses enter.
func selectItem(t *testing.T, s *Screen, label string) {
	t.Helper()
	for s.menu.Selected > 0 {
		s.Update(specialKey(tea.KeyUp))
	}
	for s.menu.Items[s.menu.Selected].Label != label {
		if s.menu.Selected == len(s.menu.Items)-1 {
			t.Fatalf("no menu item %q", label)
		}
		s.Update(specialKey(tea.KeyDown))
	}
	s.Update(specialKey(tea.KeyEnter))
}

func TestCycleSettings(t *testing.T) {
	s, tr, _ := newScreen()

	selectItem(t, s, "Level")
	selectItem(t, s, "Replies")
	selectItem(t, s, "Exercises")
	selectItem(t, s, "Learning")

	p := tr.Profile()
	if p.Level != prof.LevelA2 {
		t.Errorf("level = %s, want A2", p.Level)
	}
	if p.ResponseMode != prof.ModeTargetOnly {
		t.Errorf("mode = %s, want target-only", p.ResponseMode)
	}
	if p.GenerateExercises {
		t.Error("exercise generation should be off")
	}
	if p.TargetLanguage != "Spanish" {
		t.Errorf("target = %s, want Spanish", p.TargetLanguage)
	}

	view := s.View(80, 24)
	for _, want := range []string{"A2", "Spanish only", "off"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestChangesAreSaved(t *testing.T) {
	s, _, kv := newScreen()
	selectItem(t, s, "Level")

	reloaded := tutor.New(tutor.Deps{Store: store.NewPersistence(kv, nil)})
	reloaded.Load(context.Background())
	if reloaded.Profile().Level != prof.LevelA2 {
		t.Errorf("persisted level = %s, want A2", reloaded.Profile().Level)
	}
}

func TestEditName(t *testing.T) {
	s, tr, _ := newScreen()

	selectItem(t, s, "Name")
	if !s.CapturingInput() {
		t.Fatal("editing should capture input")
	}
	for _, r := range "Mia" {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyEnter))

	if tr.Profile().Name != "Mia" {
		t.Errorf("name = %q, want Mia", tr.Profile().Name)
	}
	if s.CapturingInput() {
		t.Error("enter should end editing")
	}

	// A blank value keeps the old name.
	selectItem(t, s, "Name")
	s.Update(specialKey(tea.KeyEnter))
	if tr.Profile().Name != "Mia" {
		t.Errorf("blank edit changed the name to %q", tr.Profile().Name)
	}
}

func TestResetEverything(t *testing.T) {
	s, tr, kv := newScreen()
	if _, _, err := tr.AddVocabularyWord(context.Background(), "Haus", ""); err != nil {
		t.Fatal(err)
	}
	selectItem(t, s, "Level")

	selectItem(t, s, "Reset everything")
	s.Update(keyPress('n'))
	if len(tr.Vocabulary()) != 1 {
		t.Fatal("n should cancel the reset")
	}

	selectItem(t, s, "Reset everything")
	s.Update(keyPress('y'))
	if len(tr.Vocabulary()) != 0 || tr.Profile().Level != prof.LevelA1 {
		t.Errorf("reset left state behind: %d words, level %s", len(tr.Vocabulary()), tr.Profile().Level)
	}
	if kv.Len() != 0 {
		t.Errorf("store still holds %d keys", kv.Len())
	}
}
