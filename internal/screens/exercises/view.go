package exercises

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langbuddy/internal/exercise"
	"github.com/abhisek/langbuddy/internal/ui/components"
	"github.com/abhisek/langbuddy/internal/ui/layout"
	"github.com/abhisek/langbuddy/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	textWidth := max(width-8, 20)

	ex, ok := s.set.Current()
	if !ok {
		return s.renderEmpty(textWidth)
	}

	var b strings.Builder

	info := fmt.Sprintf("  Exercise %d of %d", s.set.Index+1, len(s.set.Items))
	meta := strings.Join(nonEmpty(ex.Kind.Label(), ex.Topic, ex.Difficulty), " · ")
	b.WriteString(theme.Title.Render(info))
	b.WriteString(theme.Subtitle.Render("   " + meta))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Bold(true).Foreground(theme.Text).
		Render(layout.Wrap(ex.Question, textWidth)))
	b.WriteString("\n\n")

	if ex.Kind == exercise.KindMultipleChoice {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.choice.View()))
	} else {
		if ex.Kind == exercise.KindWordOrder && len(ex.Options) > 0 {
			b.WriteString(theme.Subtitle.Render("  Words: " + strings.Join(ex.Options, " / ")))
			b.WriteString("\n\n")
		}
		b.WriteString("  " + s.input.View())
		b.WriteString("\n")
	}

	if r, done := s.set.Answers[ex.ID]; done {
		b.WriteString("\n")
		b.WriteString(renderFeedback(ex, r, textWidth))
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  " + s.notice))
	}

	correct, attempted := s.set.Score()
	bar := components.ScoreBar{Correct: correct, Answered: attempted, Total: len(s.set.Items), Width: max(width-4, 10)}.View()
	if s.set.Done() {
		bar += "\n" + theme.Hint.Render("  All done! Press m for more exercises.")
	}

	used := lipgloss.Height(b.String()) + lipgloss.Height(bar)
	return b.String() + strings.Repeat("\n", max(height-used, 1)) + "  " + bar
}

func renderFeedback(ex exercise.Exercise, r exercise.Result, width int) string {
	var b strings.Builder
	if r.Correct {
		b.WriteString(theme.Correct.Render("  ✓ Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("  ✗ Not quite."))
		b.WriteString(theme.Body.Render(" The answer is: "))
		b.WriteString(theme.Correct.Render(ex.CorrectAnswer))
	}
	b.WriteString("\n")
	if ex.Explanation != "" {
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Foreground(theme.TextDim).
			Render(layout.Wrap(ex.Explanation, width)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Screen) renderEmpty(width int) string {
	msg := "No exercises yet. Chat with LangBuddy to get exercises based on your conversation, or press m to generate some now."
	if s.generating {
		msg = "Generating new exercises..."
	} else if s.notice != "" {
		msg = s.notice
	}
	return "\n" + theme.Title.Render("  Practice") + "\n\n" +
		lipgloss.NewStyle().PaddingLeft(2).Foreground(theme.TextDim).Render(layout.Wrap(msg, width))
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
