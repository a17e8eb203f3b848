// Package tui is the read-only terminal viewer of a recovery journey.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/journey"
)

// Loader computes the journey to display.
type Loader func() (*journey.Journey, error)

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Refresh, k.Help, k.Quit}}
}

type journeyMsg struct {
	journey *journey.Journey
	err     error
}

type Model struct {
	load     Loader
	journey  *journey.Journey
	err      error
	viewport viewport.Model
	keys     KeyMap
	help     help.Model
	ready    bool
	quitting bool
}

func NewModel(load Loader) Model {
	return Model{
		load:     load,
		viewport: viewport.New(80, 20),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		j, err := load()
		return journeyMsg{journey: j, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.viewport.Width = msg.Width - h
		m.viewport.Height = msg.Height - v - 4
		m.help.Width = msg.Width - h
		m.render()
		return m, nil

	case journeyMsg:
		m.journey, m.err = msg.journey, msg.err
		m.ready = true
		m.render()
		if m.err == nil {
			m.viewport.GotoBottom()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetch()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) render() {
	switch {
	case !m.ready:
		m.viewport.SetContent("Loading journey...")
	case errors.Is(m.err, apperrors.ErrNoIndexDate):
		m.viewport.SetContent("No index event date on record. Run 'heartline onboard' to get started.")
	case m.err != nil:
		m.viewport.SetContent(errorStyle.Render(m.err.Error()) + "\nPress r to retry.")
	default:
		m.viewport.SetContent(RenderTimeline(m.journey.Days, m.journey.Today))
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render("Recovery journey")
	if m.journey != nil && m.err == nil {
		header += "  " + summaryStyle.Render("since "+m.journey.IndexDate) + "\n" + RenderStreak(m.journey.Streak)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		m.viewport.View(),
		m.help.View(m.keys),
	))
}
