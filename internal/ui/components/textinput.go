package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langbuddy/internal/ui/theme"
)

// TextInput wraps bubbles/textinput. While disabled it ignores input and
// shows DisabledText instead of the field.
type TextInput struct {
	Model        textinput.Model
	Disabled     bool
	DisabledText string
	submitted    bool
	valid        bool
}

// NewTextInput creates a focused input. limit <= 0 means no limit.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards msg to the field unless the input is disabled or already
// submitted.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Disabled || t.submitted {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	if t.Disabled {
		return theme.Hint.Render(t.DisabledText)
	}
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// SetWidth sets the visible field width.
func (t *TextInput) SetWidth(w int) {
	t.Model.SetWidth(w)
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

// Reset clears the value and any submitted mark.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.submitted = false
	t.valid = false
}

// Submit marks the input as answered with a correctness result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Submitted reports whether Submit was called since the last Reset.
func (t TextInput) Submitted() bool {
	return t.submitted
}
