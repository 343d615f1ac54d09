package app

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the active screen under a shared header. Screens supply
// their own footers because the key hints differ per screen.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	var body string
	switch m.view {
	case ViewLogin:
		body = m.login.view(m.width)
	case ViewDashboard:
		body = m.dash.view(m.inv)
	case ViewAddItem:
		body = m.add.view()
	case ViewSearch:
		body = m.search.view()
	case ViewChat:
		body = m.chat.view()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.styles.Content.Render(body),
	)
}

func (m Model) headerView() string {
	left := m.styles.Header.Render("DIY Visual Finder")
	if username := m.sessions.Username(); username != "" {
		right := m.styles.Muted.Render("Welcome, " + username)
		gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
		if gap > 0 {
			return lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right)
		}
		return left + " " + right
	}
	return left
}
