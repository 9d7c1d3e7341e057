package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langbuddy/internal/session"
	"github.com/abhisek/langbuddy/internal/ui/layout"
	"github.com/abhisek/langbuddy/internal/ui/theme"
)

var dots = []string{".  ", ".. ", "..."}

func (s *Screen) View(width, height int) string {
	st := s.tutor.Snapshot()
	textWidth := max(width-6, 10)

	var footer strings.Builder
	if s.notice != "" {
		footer.WriteString(theme.Hint.Render("  " + s.notice))
		footer.WriteString("\n")
	}
	s.input.SetWidth(textWidth)
	footer.WriteString("  " + s.input.View())

	var body []string
	if st.Session.Len() == 0 {
		body = strings.Split(welcome(st.Profile.TargetLanguage, textWidth), "\n")
	} else {
		msgs := st.Session.Last(s.visible)
		if hidden := st.Session.Len() - len(msgs); hidden > 0 {
			body = append(body, theme.Hint.Render(fmt.Sprintf("  ↑ %d earlier messages (PgUp to load %d more)", hidden, min(pageSize, hidden))), "")
		}
		for _, m := range msgs {
			body = append(body, strings.Split(renderMessage(m, textWidth), "\n")...)
			body = append(body, "")
		}
	}
	if st.Pending {
		body = append(body, "  "+theme.AssistantLabel.Render("LangBuddy")+theme.Subtitle.Render(" is typing"+dots[s.frame%len(dots)]))
	}

	// Keep the newest lines when the conversation overflows.
	room := max(height-lipgloss.Height(footer.String())-1, 1)
	if len(body) > room {
		body = body[len(body)-room:]
	}

	return strings.Join(body, "\n") + "\n" +
		strings.Repeat("\n", max(room-len(body), 0)) +
		footer.String()
}

func renderMessage(m session.Message, width int) string {
	label := theme.AssistantLabel.Render("LangBuddy")
	if m.IsUser {
		label = theme.UserLabel.Render("You")
	}
	stamp := theme.Subtitle.Render(m.Timestamp.Format("15:04"))
	text := lipgloss.NewStyle().Foreground(theme.Text).PaddingLeft(2).Render(layout.Wrap(m.Content, width-2))
	return "  " + label + " " + stamp + "\n" + text
}

func welcome(language string, width int) string {
	title := theme.Title.Render(fmt.Sprintf("Hallo! I'm your %s tutor", language))
	body := layout.Wrap(fmt.Sprintf(
		"Start chatting with me in English or %s. I'll help you learn by creating exercises "+
			"from our conversations. Press Ctrl+E to turn exercise generation on or off, and "+
			"use /add <word> to save a word to your vocabulary.", language), width-2)
	return "\n  " + title + "\n\n" + lipgloss.NewStyle().PaddingLeft(2).Foreground(theme.TextDim).Render(body)
}
