package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"diyfinder/internal/api"
)

// Update is the single mutation point: every keypress, resize and
// command completion flows through here. Completion messages are applied
// against the root model first; everything else is routed to the active
// screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.chat.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+l":
			if m.sessions.Username() != "" {
				m.log.Info("logged out", zap.String("username", m.sessions.Username()))
				m.logout()
				return m, m.login.focusCmd()
			}

		case "esc":
			if m.sessions.Username() != "" && m.view != ViewDashboard {
				return m, m.changeView(ViewDashboard)
			}
		}

		if m.view == ViewDashboard {
			switch msg.String() {
			case "a":
				return m, m.changeView(ViewAddItem)
			case "s":
				return m, m.changeView(ViewSearch)
			case "c":
				return m, m.changeView(ViewChat)
			case "r":
				return m, tea.Batch(m.refreshInventory(), m.dash.spin.Tick)
			}
		}

	case loginResultMsg:
		if msg.err != nil {
			m.login = m.login.handleFailedLogin(msg.err)
			return m, nil
		}
		return m, tea.Batch(m.applyLogin(msg.sess), m.dash.spin.Tick)

	case registerResultMsg:
		var cmd tea.Cmd
		m.login, cmd = m.login.handleRegistered(msg, m.client)
		return m, cmd

	case inventoryMsg:
		if !m.inv.Apply(msg.seq, msg.items, msg.err) {
			m.log.Debug("dropped superseded inventory fetch", zap.Uint64("seq", msg.seq))
		}
		return m, nil

	case imagePickedMsg:
		return m.applyImagePicked(msg)

	case itemAddedMsg:
		m.add.submitting = false
		if msg.err != nil {
			m.add.errMsg = msg.err.Error()
			return m, nil
		}
		refresh := m.onItemAdded()
		return m, tea.Batch(refresh, m.changeView(ViewDashboard), m.dash.spin.Tick)

	case searchResultMsg:
		// Same staleness rule as inventory and chat: the seq must match
		// and the search must still be outstanding.
		if msg.seq != m.search.seq || !m.search.searching {
			return m, nil
		}
		m.search.searching = false
		if msg.err != nil {
			m.search.errMsg = msg.err.Error()
			return m, nil
		}
		m.search.results = msg.results
		if m.search.results == nil {
			m.search.results = []api.SearchResult{}
		}
		return m, nil

	case chatReplyMsg:
		m.chat = m.chat.applyReply(msg)
		return m, nil

	case ItemIngestedMsg:
		if msg.Err != nil {
			m.log.Warn("drop-folder ingest failed",
				zap.String("path", msg.Path), zap.Error(msg.Err))
			return m, nil
		}
		m.log.Info("drop-folder ingest", zap.String("path", msg.Path))
		return m, tea.Batch(m.refreshInventory(), m.dash.spin.Tick)
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewLogin:
		m.login, cmd = m.login.update(msg, m.client)
	case ViewDashboard:
		m.dash, cmd = m.dash.update(msg)
	case ViewAddItem:
		m.add, cmd = m.add.update(msg)
	case ViewSearch:
		m.search, cmd = m.search.update(msg, m.client, m.sessions.Username())
	case ViewChat:
		m.chat, cmd = m.chat.update(msg, m.client, m.sessions.Username())
	}
	return m, cmd
}

// applyImagePicked lands a finished file decode on the screen that asked
// for it. A decode racing a navigation away is dropped. Add-item submits
// immediately; search waits for an explicit submit.
func (m Model) applyImagePicked(msg imagePickedMsg) (tea.Model, tea.Cmd) {
	if m.view != msg.target {
		return m, nil
	}

	switch msg.target {
	case ViewAddItem:
		if msg.err != nil {
			m.add.pickedPath = ""
			m.add.errMsg = msg.err.Error()
			return m, m.add.picker.Init()
		}
		m.add.pendingURI = msg.uri
		m.add.submitting = true
		m.add.errMsg = ""
		return m, tea.Batch(
			addItemCmd(m.client, msg.uri, m.sessions.Username()),
			m.add.spin.Tick,
		)

	case ViewSearch:
		if msg.err != nil {
			m.search.pickedPath = ""
			m.search.errMsg = msg.err.Error()
			return m, m.search.picker.Init()
		}
		m.search.pendingURI = msg.uri
		m.search.errMsg = ""
		return m, nil
	}
	return m, nil
}
