// Package app is the root Bubble Tea model: a header with one tab per
// surface, the router for the active surface and a footer with key hints.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langbuddy/internal/router"
	"github.com/abhisek/langbuddy/internal/screen"
	"github.com/abhisek/langbuddy/internal/screens/chat"
	"github.com/abhisek/langbuddy/internal/screens/exercises"
	"github.com/abhisek/langbuddy/internal/screens/profile"
	"github.com/abhisek/langbuddy/internal/screens/vocabulary"
	"github.com/abhisek/langbuddy/internal/tutor"
	"github.com/abhisek/langbuddy/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Tutor *tutor.Tutor
	Log   logrus.FieldLogger
}

var tabLabels = map[tutor.Surface]string{
	tutor.SurfaceChat:       "Chat",
	tutor.SurfaceExercises:  "Practice",
	tutor.SurfaceVocabulary: "Vocabulary",
	tutor.SurfaceProfile:    "Profile",
}

// AppModel is the root model. The tutor decides which surface is shown;
// the router only holds the active surface's screen and anything pushed on
// top of it.
type AppModel struct {
	tutor   *tutor.Tutor
	router  *router.Router
	screens map[tutor.Surface]screen.Screen
	surface tutor.Surface
	width   int
	height  int
}

func newAppModel(t *tutor.Tutor) AppModel {
	screens := map[tutor.Surface]screen.Screen{
		tutor.SurfaceChat:       chat.New(t),
		tutor.SurfaceExercises:  exercises.New(t),
		tutor.SurfaceVocabulary: vocabulary.New(t),
		tutor.SurfaceProfile:    profile.New(t),
	}
	surface := t.Surface()
	return AppModel{
		tutor:   t,
		router:  router.New(screens[surface]),
		screens: screens,
		surface: surface,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		case "tab":
			m.tutor.SetSurface(m.step(1))
			cmd := m.syncSurface()
			return m, cmd
		case "shift+tab":
			m.tutor.SetSurface(m.step(-1))
			cmd := m.syncSurface()
			return m, cmd
		case "1", "2", "3", "4":
			if !m.capturing() {
				m.tutor.SetSurface(tutor.Surfaces[int(msg.String()[0]-'1')])
				cmd := m.syncSurface()
				return m, cmd
			}
		}

	default:
		// Async results keep flowing to surfaces that are not on screen.
		cmds = append(cmds, m.updateHidden(msg)...)
	}

	cmds = append(cmds, m.router.Update(msg))
	cmds = append(cmds, m.syncSurface())
	return m, tea.Batch(cmds...)
}

// syncSurface shows the tutor's current surface if it changed, for example
// after a reply delivered new exercises.
func (m *AppModel) syncSurface() tea.Cmd {
	current := m.tutor.Surface()
	if current == m.surface {
		return nil
	}
	m.surface = current
	return m.router.Reset(m.screens[current])
}

func (m *AppModel) updateHidden(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	active := m.router.Active()
	for surface, s := range m.screens {
		if s == active {
			continue
		}
		updated, cmd := s.Update(msg)
		m.screens[surface] = updated
		cmds = append(cmds, cmd)
	}
	return cmds
}

func (m AppModel) step(delta int) tutor.Surface {
	n := len(tutor.Surfaces)
	for i, s := range tutor.Surfaces {
		if s == m.surface {
			return tutor.Surfaces[((i+delta)%n+n)%n]
		}
	}
	return tutor.SurfaceChat
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.render())
	}
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.tabs(), m.status(), m.width)
	footer := layout.RenderFooter(m.hints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) tabs() []layout.Tab {
	st := m.tutor.Snapshot()
	tabs := make([]layout.Tab, 0, len(tutor.Surfaces))
	for _, s := range tutor.Surfaces {
		tab := layout.Tab{Label: tabLabels[s], Active: s == m.surface}
		switch s {
		case tutor.SurfaceExercises:
			tab.Badge = len(st.Exercises)
		case tutor.SurfaceVocabulary:
			tab.Badge = len(st.Vocabulary)
		}
		tabs = append(tabs, tab)
	}
	return tabs
}

func (m AppModel) status() string {
	p := m.tutor.Profile()
	status := fmt.Sprintf("%s · %s", p.TargetLanguage, p.Level)
	if !p.GenerateExercises {
		status += " · no exercises"
	}
	return status
}

func (m AppModel) hints() []layout.KeyHint {
	var hints []layout.KeyHint
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = append(hints, hp.KeyHints()...)
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	if layout.IsCompactWidth(m.width) && len(hints) > 3 {
		hints = hints[:3]
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts.Tutor), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if opts.Log != nil {
			opts.Log.WithError(err).Error("TUI exited with error")
		}
		return err
	}
	return nil
}
