package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestChoice_ArrowsAndEnter(t *testing.T) {
	c := NewChoice([]string{"der", "die", "das"})

	c, done := c.Update(key("down"))
	if done {
		t.Fatal("moving the cursor must not confirm")
	}
	c, done = c.Update(key("enter"))
	if !done {
		t.Fatal("enter should confirm")
	}
	if c.Value() != "die" {
		t.Errorf("Value() = %q, want die", c.Value())
	}

	// Further keys are ignored once confirmed.
	c, done = c.Update(key("up"))
	if done || c.Value() != "die" {
		t.Errorf("choice changed after confirm: %q", c.Value())
	}
}

func TestChoice_NumberKeys(t *testing.T) {
	c := NewChoice([]string{"a", "b"})
	c, done := c.Update(key("3"))
	if done {
		t.Error("out-of-range number should be ignored")
	}
	c, done = c.Update(key("2"))
	if !done || c.Value() != "b" {
		t.Errorf("got done=%v value=%q, want b", done, c.Value())
	}

	c.Reveal(0)
	if !strings.Contains(c.View(), "1) a") {
		t.Errorf("view missing option: %q", c.View())
	}
}

func TestMenu(t *testing.T) {
	level := "A1"
	m := NewMenu([]MenuItem{
		{Label: "Level", Value: func() string { return level }, Action: func() tea.Cmd {
			level = "A2"
			return nil
		}},
		{Label: "Reset"},
	})

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("enter"))
	if level != "A2" {
		t.Errorf("action did not run, level = %s", level)
	}
	if !strings.Contains(m.View(), "A2") {
		t.Errorf("view should show the current value: %q", m.View())
	}
}

func TestTextInput_Disabled(t *testing.T) {
	in := NewTextInput("Type...", 0)
	in.Disabled = true
	in.DisabledText = "waiting"

	in, _ = in.Update(key("x"))
	if in.Value() != "" {
		t.Errorf("disabled input accepted text: %q", in.Value())
	}
	if !strings.Contains(in.View(), "waiting") {
		t.Errorf("view = %q, want disabled text", in.View())
	}
}

func TestScoreBar(t *testing.T) {
	v := ScoreBar{Correct: 2, Answered: 3, Total: 5, Width: 30}.View()
	if !strings.Contains(v, "2/5 correct") {
		t.Errorf("caption missing: %q", v)
	}
	if strings.Count(v, "█") == 0 {
		t.Errorf("bar should be partly filled: %q", v)
	}
}
