// Package tui is a read-only browser for the tracked-time report.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hubsync/hubsync/internal/report"
	"github.com/hubsync/hubsync/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7")).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")).Padding(0, 1)
)

type reportMsg struct {
	content string
}

type errMsg struct {
	err error
}

type model struct {
	store    *storage.Store
	start    string
	stop     string
	viewport viewport.Model
	ready    bool
	err      error
}

// Run shows the report for the given date range until the user quits.
func Run(store *storage.Store, start, stop string) error {
	m := model{store: store, start: start, stop: stop}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return m.refresh()
}

func (m model) refresh() tea.Cmd {
	return func() tea.Msg {
		matrix, labels, err := report.Generate(m.store, m.start, m.stop)
		if err != nil {
			return errMsg{err}
		}
		return reportMsg{content: matrix.Render(labels)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		return m, nil

	case reportMsg:
		m.err = nil
		m.viewport.SetContent(msg.content)
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Refresh):
			return m, m.refresh()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := "Tracked time by user and project"
	if m.start != "" || m.stop != "" {
		title = fmt.Sprintf("%s (%s … %s)", title, m.start, m.stop)
	}

	body := m.viewport.View()
	if m.err != nil {
		body = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	help := helpStyle.Render("r refresh • ↑/↓ scroll • q quit")
	return titleStyle.Render(title) + "\n" + body + "\n" + help
}
