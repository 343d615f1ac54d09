// Package app is the diyfinder TUI: a single root model that owns
// session and navigation state, five screens as sub-models, and every
// backend interaction as a command whose completion message is applied
// in the update loop. The files split as:
//   - model.go: root model, navigation and session transitions
//   - model_types.go: view enum, transcript message, tea messages
//   - model_update.go: the update loop
//   - view.go: top-level rendering
//   - login.go, dashboard.go, additem.go, search.go, chat.go: screens
package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"diyfinder/cmd/diyfinder/ui"
	"diyfinder/internal/api"
	"diyfinder/internal/config"
	"diyfinder/internal/inventory"
	"diyfinder/internal/logging"
	"diyfinder/internal/session"
)

// Model is the root model: the single authority for which screen is
// visible and who the current user is.
type Model struct {
	client   *api.Client
	cfg      config.Config
	styles   ui.Styles
	log      *zap.Logger
	sessions *session.Store
	inv      *inventory.Cache

	view View

	login  loginModel
	dash   dashboardModel
	add    addItemModel
	search searchModel
	chat   chatModel

	width  int
	height int
	ready  bool
}

// New creates the root model. sessions is shared with the drop-folder
// watcher, which reads the current username from its own goroutine.
func New(cfg config.Config, client *api.Client, sessions *session.Store) Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))
	return Model{
		client:   client,
		cfg:      cfg,
		styles:   styles,
		log:      logging.Get("app"),
		sessions: sessions,
		inv:      &inventory.Cache{},
		view:     ViewLogin,
		login:    newLoginModel(styles),
		dash:     newDashboardModel(styles),
		add:      newAddItemModel(styles),
		search:   newSearchModel(styles),
		chat:     newChatModel(styles),
	}
}

// Init starts the login form cursor blink.
func (m Model) Init() tea.Cmd {
	return m.login.focusCmd()
}

// =============================================================================
// ORCHESTRATOR TRANSITIONS
// =============================================================================

// applyLogin installs the session, lands on the dashboard and issues
// exactly one inventory refresh. It has no failure mode: auth failures
// are handled by the login view before this is reached.
func (m *Model) applyLogin(sess session.Session) tea.Cmd {
	m.sessions.Set(sess)
	m.login = newLoginModel(m.styles)
	m.view = ViewDashboard
	m.log.Info("logged in", zap.String("username", sess.Username), zap.Int("user_id", sess.ID))
	return m.refreshInventory()
}

// logout clears session and inventory unconditionally and lands on the
// login screen. Idempotent.
func (m *Model) logout() {
	m.sessions.Clear()
	m.inv.Reset()
	m.add = newAddItemModel(m.styles)
	m.resetSearch()
	m.resetChat()
	m.view = ViewLogin
}

// resetSearch and resetChat recreate the sub-model but keep its sequence
// counter, so a completion from before the teardown stays stale forever.
func (m *Model) resetSearch() {
	seq := m.search.seq
	m.search = newSearchModel(m.styles)
	m.search.seq = seq
}

func (m *Model) resetChat() {
	seq := m.chat.seq
	m.chat = newChatModel(m.styles)
	m.chat.seq = seq
}

// changeView switches screens synchronously. Leaving add-item, search or
// chat tears down that screen's transient state (pending uploads, the
// chat transcript); the inventory cache survives navigation. The
// returned command initializes components of the entered screen.
func (m *Model) changeView(target View) tea.Cmd {
	if target == m.view {
		return nil
	}

	switch m.view {
	case ViewAddItem:
		m.add = newAddItemModel(m.styles)
	case ViewSearch:
		m.resetSearch()
	case ViewChat:
		m.resetChat()
	}

	m.view = target
	m.log.Debug("view change", zap.Stringer("view", target))

	switch target {
	case ViewLogin:
		return m.login.focusCmd()
	case ViewAddItem:
		return m.add.enterCmd()
	case ViewSearch:
		return m.search.enterCmd()
	case ViewChat:
		return m.chat.enterCmd()
	}
	return nil
}

// onItemAdded reloads the inventory after a confirmed add without
// changing the view; the add-item flow issues its own transition.
func (m *Model) onItemAdded() tea.Cmd {
	return m.refreshInventory()
}

// refreshInventory starts a sequence-tagged inventory fetch. Without a
// session it is a no-op.
func (m *Model) refreshInventory() tea.Cmd {
	username := m.sessions.Username()
	if username == "" {
		return nil
	}

	seq := m.inv.Begin()
	client := m.client
	return func() tea.Msg {
		resp, err := client.UserItems(context.Background(), username)
		if err != nil {
			return inventoryMsg{seq: seq, err: err}
		}
		if !resp.Success {
			msg := resp.Error
			if msg == "" {
				msg = "failed to load inventory"
			}
			return inventoryMsg{seq: seq, err: errors.New(msg)}
		}
		return inventoryMsg{seq: seq, items: resp.Items}
	}
}

// defaultAddItem builds the auto-submit payload: the photo plus
// default-empty descriptive fields. Classification is the backend's job.
func defaultAddItem(uri, username string) api.AddItemRequest {
	return api.AddItemRequest{
		Quantity:  1,
		Condition: "good",
		Image:     uri,
		Username:  username,
	}
}
