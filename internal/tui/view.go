package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/julianstephens/trackdown/internal/errors"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loadErr != nil {
		return docStyle.Render(apperrors.Format(m.loadErr))
	}

	status := fmt.Sprintf("%d entries, %s", len(m.table.Rows()), m.timeframe())

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("trackdown"),
		statusStyle.Render(status),
		m.table.View(),
		m.help.View(m.keys),
	)
	return docStyle.Render(ui)
}
