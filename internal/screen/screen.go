// Package screen defines what the app router needs from a view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langbuddy/internal/ui/layout"
)

// Screen is one view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content without header or footer.
	View(width, height int) string

	Title() string
}

// KeyHintProvider is implemented by screens that supply their own footer
// hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a text field. While
// CapturingInput is true the app leaves tab and letter keys to the screen.
type InputCapturer interface {
	CapturingInput() bool
}
