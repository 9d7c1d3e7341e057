package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langbuddy/internal/ui/theme"
)

// ScoreBar shows progress through an exercise set: answered items fill the
// bar, and the caption gives the number correct.
type ScoreBar struct {
	Correct  int
	Answered int
	Total    int
	Width    int
}

func (s ScoreBar) View() string {
	caption := fmt.Sprintf("  %d/%d correct", s.Correct, s.Total)
	barWidth := max(s.Width-lipgloss.Width(caption), 4)

	filled := 0
	if s.Total > 0 {
		filled = min(barWidth*s.Answered/s.Total, barWidth)
	}

	return lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)) +
		theme.Subtitle.Render(caption)
}
