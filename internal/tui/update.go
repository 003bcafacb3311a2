package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/trackdown/internal/query"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Timeframe):
			m.tfIndex = (m.tfIndex + 1) % len(timeframes)
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Archived):
			if m.policy == query.ActiveWithHistory {
				m.policy = query.ActiveOnly
			} else {
				m.policy = query.ActiveWithHistory
			}
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
