// Package profile is the learner settings screen.
package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	prof "github.com/abhisek/langbuddy/internal/profile"
	"github.com/abhisek/langbuddy/internal/screen"
	"github.com/abhisek/langbuddy/internal/tutor"
	"github.com/abhisek/langbuddy/internal/ui/components"
	"github.com/abhisek/langbuddy/internal/ui/layout"
	"github.com/abhisek/langbuddy/internal/ui/theme"
)

// TargetLanguages are offered in the language picker. Only German has
// dictionary and sample content; the model handles the rest.
var TargetLanguages = []string{"German", "Spanish", "French", "Italian"}

// Screen edits the profile through a menu. Each change is saved at once.
type Screen struct {
	tutor   *tutor.Tutor
	menu    components.Menu
	editing string // field being typed into, "" when not editing
	input   components.TextInput
	confirm bool
	notice  string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.InputCapturer   = (*Screen)(nil)
)

func New(t *tutor.Tutor) *Screen {
	s := &Screen{tutor: t}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Name", Value: func() string { return s.profile().Name }, Action: s.edit("Name")},
		{Label: "Level", Value: func() string { return string(s.profile().Level) }, Action: s.change(func(p *prof.Profile) {
			p.Level = prof.NextLevel(p.Level)
		})},
		{Label: "Learning", Value: func() string { return s.profile().TargetLanguage }, Action: s.change(func(p *prof.Profile) {
			p.TargetLanguage = nextLanguage(p.TargetLanguage)
		})},
		{Label: "Native language", Value: func() string { return s.profile().NativeLanguage }, Action: s.edit("Native language")},
		{Label: "Replies", Value: func() string { return modeLabel(s.profile()) }, Action: s.change(func(p *prof.Profile) {
			p.ResponseMode = prof.NextMode(p.ResponseMode)
		})},
		{Label: "Exercises", Value: func() string { return onOff(s.profile().GenerateExercises) }, Action: s.change(func(p *prof.Profile) {
			p.GenerateExercises = !p.GenerateExercises
		})},
		{Label: "New conversation", Action: func() tea.Cmd {
			s.tutor.ClearSession(context.Background())
			s.notice = "Conversation cleared."
			return nil
		}},
		{Label: "Reset everything", Action: func() tea.Cmd {
			s.confirm = true
			return nil
		}},
	})
	return s
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Profile" }

func (s *Screen) CapturingInput() bool { return s.editing != "" }

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.editing != "":
		return []layout.KeyHint{{Key: "Enter", Description: "Save"}, {Key: "Esc", Description: "Cancel"}}
	case s.confirm:
		return []layout.KeyHint{{Key: "y", Description: "Reset"}, {Key: "n", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Change"},
		{Key: "Tab", Description: "Switch view"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.editing != "" {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch {
	case s.editing != "":
		return s.updateEdit(kmsg)
	case s.confirm:
		switch kmsg.String() {
		case "y", "Y":
			s.tutor.ClearAll(context.Background())
			s.notice = "Everything has been reset."
			s.confirm = false
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(kmsg)
	return s, cmd
}

func (s *Screen) updateEdit(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = ""
		return s, nil
	case "enter":
		value := strings.TrimSpace(s.input.Value())
		field := s.editing
		s.editing = ""
		if value == "" {
			return s, nil
		}
		s.save(func(p *prof.Profile) {
			switch field {
			case "Name":
				p.Name = value
			case "Native language":
				p.NativeLanguage = value
			}
		})
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) edit(field string) func() tea.Cmd {
	return func() tea.Cmd {
		s.editing = field
		s.input = components.NewTextInput(field, 40)
		return s.input.Init()
	}
}

func (s *Screen) change(fn func(*prof.Profile)) func() tea.Cmd {
	return func() tea.Cmd {
		s.save(fn)
		return nil
	}
}

func (s *Screen) save(fn func(*prof.Profile)) {
	p := s.tutor.Profile()
	fn(&p)
	s.tutor.UpdateProfile(context.Background(), p)
	s.notice = "Saved."
}

func (s *Screen) profile() prof.Profile {
	return s.tutor.Profile()
}

func (s *Screen) View(width, height int) string {
	p := s.profile()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("  " + p.Name))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("   %s level, learning %s", p.Level, p.TargetLanguage)))
	b.WriteString("\n\n")

	menu := s.menu.View()
	for _, line := range strings.Split(strings.TrimRight(menu, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	switch {
	case s.editing != "":
		b.WriteString(theme.Subtitle.Render("  "+s.editing+": ") + s.input.View())
	case s.confirm:
		b.WriteString(theme.ErrorText.Render("  Reset profile, conversation, exercises and vocabulary? (y/n)"))
	case s.notice != "":
		b.WriteString(theme.Hint.Render("  " + s.notice))
	}
	return b.String()
}

func nextLanguage(current string) string {
	for i, l := range TargetLanguages {
		if strings.EqualFold(l, current) {
			return TargetLanguages[(i+1)%len(TargetLanguages)]
		}
	}
	return TargetLanguages[0]
}

func modeLabel(p prof.Profile) string {
	if p.ResponseMode == prof.ModeTargetOnly {
		return p.TargetLanguage + " only"
	}
	return fmt.Sprintf("Bilingual (%s + %s)", p.TargetLanguage, p.NativeLanguage)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
