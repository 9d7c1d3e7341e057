package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langbuddy/internal/ui/theme"
)

// Choice is a single-answer option picker. Arrow keys move the cursor,
// number keys pick directly and enter confirms. After Reveal the correct
// option is highlighted.
type Choice struct {
	Options  []string
	Selected int
	Chosen   int // -1 until confirmed
	correct  int // -1 until revealed
}

func NewChoice(options []string) Choice {
	return Choice{Options: options, Chosen: -1, correct: -1}
}

// Update returns true once an option has been confirmed by this message.
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	if c.Chosen >= 0 {
		return c, false
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Chosen = c.Selected
		return c, true
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(c.Options) {
			c.Selected = n - 1
			c.Chosen = c.Selected
			return c, true
		}
	}
	return c, false
}

// Value is the confirmed option, or "" if none.
func (c Choice) Value() string {
	if c.Chosen < 0 || c.Chosen >= len(c.Options) {
		return ""
	}
	return c.Options[c.Chosen]
}

// Reveal marks option i as the correct one.
func (c *Choice) Reveal(i int) {
	c.correct = i
}

func (c Choice) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && c.Chosen < 0 {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		switch {
		case c.correct >= 0 && i == c.correct:
			b.WriteString(theme.Correct.Render(line))
		case c.Chosen >= 0 && i == c.Chosen:
			b.WriteString(theme.Incorrect.Render(line))
		case c.Chosen >= 0:
			b.WriteString(theme.Subtitle.Render(line))
		case i == c.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
