package vocabulary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langbuddy/internal/screen"
	"github.com/abhisek/langbuddy/internal/tutor"
	"github.com/abhisek/langbuddy/internal/ui/layout"
	"github.com/abhisek/langbuddy/internal/ui/theme"
	"github.com/abhisek/langbuddy/internal/vocab"
)

// Detail shows one word with its context and example sentences.
type Detail struct {
	tutor   *tutor.Tutor
	id      string
	loading bool
	notice  string
}

var (
	_ screen.Screen          = (*Detail)(nil)
	_ screen.KeyHintProvider = (*Detail)(nil)
)

func NewDetail(t *tutor.Tutor, id string) *Detail {
	return &Detail{tutor: t, id: id}
}

// Init fetches examples for a word that has none yet.
func (d *Detail) Init() tea.Cmd {
	w, ok := d.word()
	if !ok || len(w.Examples) > 0 {
		return nil
	}
	d.loading = true
	return generateExamples(d.tutor, d.id)
}

func (d *Detail) Title() string { return "Word" }

func (d *Detail) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "e", Description: "New examples"},
		{Key: "r", Description: "Reviewed"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *Detail) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case examplesMsg:
		if msg.ID != d.id {
			return d, nil
		}
		d.loading = false
		if msg.Err != nil {
			d.notice = msg.Err.Error()
		}
		return d, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "e":
			if d.loading {
				return d, nil
			}
			d.loading = true
			d.notice = ""
			return d, generateExamples(d.tutor, d.id)
		case "r":
			if w, err := d.tutor.RecordReview(context.Background(), d.id); err != nil {
				d.notice = err.Error()
			} else {
				d.notice = fmt.Sprintf("Reviewed %d times.", w.TimesReviewed)
			}
		}
	}
	return d, nil
}

func (d *Detail) word() (vocab.Word, bool) {
	words := d.tutor.Vocabulary()
	i, ok := vocab.IndexByID(words, d.id)
	if !ok {
		return vocab.Word{}, false
	}
	return words[i], true
}

func (d *Detail) View(width, height int) string {
	w, ok := d.word()
	if !ok {
		return theme.ErrorText.Render("\n  This word has been deleted.")
	}
	textWidth := max(width-8, 20)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("  " + w.Word))
	b.WriteString(theme.Subtitle.Render("  " + w.Translation))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %s → %s, added %s",
		w.SourceLanguage, w.TargetLanguage, w.DateAdded.Format("2 Jan 2006"))))
	b.WriteString("\n")
	if w.TimesReviewed > 0 && w.LastReviewed != nil {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  Reviewed %d times, last on %s",
			w.TimesReviewed, w.LastReviewed.Format("2 Jan 2006"))))
		b.WriteString("\n")
	}
	now := d.tutor.Now()
	switch days := w.DaysUntilReview(now); {
	case w.ReviewStatus(now) == vocab.ReviewLearned:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  Learned. Next check in %d days", days)))
	case days == 0:
		b.WriteString(theme.Hint.Render("  Due for review"))
	default:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  Next review in %d days", days)))
	}
	b.WriteString("\n")

	if w.Context != "" {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("  Context"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Italic(true).Foreground(theme.Text).
			Render(layout.Wrap(w.Context, textWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("  Examples"))
	b.WriteString("\n")
	switch {
	case d.loading:
		b.WriteString(theme.Hint.Render("    Generating examples..."))
		b.WriteString("\n")
	case len(w.Examples) == 0:
		b.WriteString(theme.Hint.Render("    None yet. Press e to generate some."))
		b.WriteString("\n")
	default:
		for _, ex := range w.Examples {
			b.WriteString(renderExample(ex, textWidth))
		}
	}

	if d.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  " + d.notice))
	}
	return b.String()
}

func renderExample(ex vocab.ExampleSentence, width int) string {
	tier := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("    [%s]", ex.Difficulty))
	body := lipgloss.NewStyle().PaddingLeft(4).Render(
		theme.Body.Render(layout.Wrap(ex.Source, width)) + "\n" +
			theme.Subtitle.Render(layout.Wrap(ex.Target, width)))
	return tier + "\n" + body + "\n"
}
