package vocabulary

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langbuddy/internal/ui/layout"
	"github.com/abhisek/langbuddy/internal/ui/theme"
	"github.com/abhisek/langbuddy/internal/vocab"
)

func (s *Screen) View(width, height int) string {
	var top strings.Builder

	order := "newest first"
	if s.order == vocab.ByAlpha {
		order = "A-Z"
	}
	all := s.tutor.Vocabulary()
	words := s.Words()

	top.WriteString(theme.Title.Render(fmt.Sprintf("  My Vocabulary (%d)", len(all))))
	top.WriteString(theme.Subtitle.Render("   sorted " + order))
	if s.query != "" && s.mode != modeFilter {
		top.WriteString(theme.Subtitle.Render(fmt.Sprintf("   filter %q", s.query)))
	}
	top.WriteString("\n")

	switch s.mode {
	case modeFilter, modeAdd:
		top.WriteString("  " + s.input.View() + "\n")
	case modeConfirmClear:
		top.WriteString(theme.ErrorText.Render(fmt.Sprintf("  Delete all %d words? (y/n)", len(all))) + "\n")
	}
	top.WriteString("\n")

	bottom := ""
	if s.notice != "" {
		bottom = theme.Hint.Render("  " + s.notice)
	}

	if len(words) == 0 {
		empty := "No words yet. Use /add <word> in the chat or press a to save one."
		if len(all) > 0 {
			empty = "No words match the filter."
		}
		return top.String() + lipgloss.NewStyle().PaddingLeft(2).Foreground(theme.TextDim).
			Render(layout.Wrap(empty, max(width-6, 20))) + "\n\n" + bottom
	}

	room := max(height-lipgloss.Height(top.String())-lipgloss.Height(bottom)-1, 1)
	start := 0
	if s.cursor >= room {
		start = s.cursor - room + 1
	}
	end := min(start+room, len(words))

	wordWidth := 0
	for _, w := range words[start:end] {
		wordWidth = max(wordWidth, lipgloss.Width(w.Word))
	}

	var list strings.Builder
	for i := start; i < end; i++ {
		list.WriteString(s.renderRow(words[i], i == s.cursor, wordWidth))
		list.WriteString("\n")
	}

	return top.String() + list.String() + "\n" + bottom
}

func (s *Screen) renderRow(w vocab.Word, selected bool, wordWidth int) string {
	pad := strings.Repeat(" ", max(wordWidth-lipgloss.Width(w.Word), 0))
	line := w.Word + pad + "  " + theme.Subtitle.Render(w.Translation)

	var tags []string
	if s.loading[w.ID] {
		tags = append(tags, "examples...")
	} else if len(w.Examples) > 0 {
		tags = append(tags, fmt.Sprintf("%d examples", len(w.Examples)))
	}
	if w.TimesReviewed > 0 {
		tags = append(tags, fmt.Sprintf("reviewed %dx", w.TimesReviewed))
	}
	switch w.ReviewStatus(s.tutor.Now()) {
	case vocab.ReviewDue:
		tags = append(tags, "due")
	case vocab.ReviewOverdue:
		tags = append(tags, "overdue")
	}
	if len(tags) > 0 {
		line += theme.Hint.Render("  " + strings.Join(tags, ", "))
	}

	if selected {
		return theme.Selected.Render("  ▸ ") + line
	}
	return "    " + line
}
