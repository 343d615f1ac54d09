package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"diyfinder/cmd/diyfinder/ui"
	"diyfinder/internal/api"
	"diyfinder/internal/session"
)

// loginTab selects between the sign-in and registration forms.
type loginTab int

const (
	tabSignIn loginTab = iota
	tabRegister
)

// Field order within the registration form.
const (
	regUsername = iota
	regPassword
	regEmail
	regFullName
	regPhone
	regAddress
)

// loginModel is the authentication screen: two tabbed forms sharing one
// error banner. Registration is always followed, on success, by an
// explicit login with the same credentials; a failure in that second
// step is reported distinctly.
type loginModel struct {
	styles ui.Styles

	tab       loginTab
	signIn    []textinput.Model
	register  []textinput.Model
	focus     int
	loading   bool
	errMsg    string
	notice    string
	chainedIn bool // true while the post-registration login is in flight
}

func newLoginModel(styles ui.Styles) loginModel {
	mk := func(placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 128
		if secret {
			in.EchoMode = textinput.EchoPassword
		}
		return in
	}

	return loginModel{
		styles: styles,
		signIn: []textinput.Model{
			mk("username", false),
			mk("password", true),
		},
		register: []textinput.Model{
			mk("username", false),
			mk("password", true),
			mk("email", false),
			mk("full name (optional)", false),
			mk("phone number (optional)", false),
			mk("address (optional)", false),
		},
	}
}

func (l *loginModel) fields() []textinput.Model {
	if l.tab == tabRegister {
		return l.register
	}
	return l.signIn
}

func (l loginModel) focusCmd() tea.Cmd {
	return l.setFocus(0)
}

// setFocus moves the input cursor; only one field blinks at a time.
func (l loginModel) setFocus(idx int) tea.Cmd {
	fields := l.fields()
	var cmd tea.Cmd
	for i := range fields {
		if i == idx {
			cmd = fields[i].Focus()
		} else {
			fields[i].Blur()
		}
	}
	return cmd
}

func (l loginModel) update(msg tea.Msg, client *api.Client) (loginModel, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey || l.loading {
		return l.forward(msg)
	}

	switch key.Type {
	case tea.KeyCtrlT:
		// Switch tabs; the shared error banner resets.
		if l.tab == tabSignIn {
			l.tab = tabRegister
		} else {
			l.tab = tabSignIn
		}
		l.focus = 0
		l.errMsg = ""
		return l, l.setFocus(0)

	case tea.KeyTab, tea.KeyDown:
		l.focus = (l.focus + 1) % len(l.fields())
		return l, l.setFocus(l.focus)

	case tea.KeyShiftTab, tea.KeyUp:
		l.focus = (l.focus - 1 + len(l.fields())) % len(l.fields())
		return l, l.setFocus(l.focus)

	case tea.KeyEnter:
		return l.submit(client)
	}

	return l.forward(msg)
}

func (l loginModel) forward(msg tea.Msg) (loginModel, tea.Cmd) {
	fields := l.fields()
	var cmds []tea.Cmd
	for i := range fields {
		var cmd tea.Cmd
		fields[i], cmd = fields[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return l, tea.Batch(cmds...)
}

func (l loginModel) submit(client *api.Client) (loginModel, tea.Cmd) {
	if l.tab == tabSignIn {
		username := strings.TrimSpace(l.signIn[0].Value())
		password := l.signIn[1].Value()
		if username == "" || password == "" {
			return l, nil
		}
		l.loading = true
		l.errMsg = ""
		l.chainedIn = false
		return l, loginCmd(client, username, password, "")
	}

	reg := api.Registration{
		Username:    strings.TrimSpace(l.register[regUsername].Value()),
		Password:    l.register[regPassword].Value(),
		Email:       strings.TrimSpace(l.register[regEmail].Value()),
		FullName:    strings.TrimSpace(l.register[regFullName].Value()),
		PhoneNumber: strings.TrimSpace(l.register[regPhone].Value()),
		Address:     strings.TrimSpace(l.register[regAddress].Value()),
	}
	if reg.Username == "" || reg.Password == "" || reg.Email == "" {
		return l, nil
	}
	l.loading = true
	l.errMsg = ""
	return l, registerCmd(client, reg)
}

// handleRegistered reacts to a finished registration: failure shows the
// banner, success chains the login.
func (l loginModel) handleRegistered(msg registerResultMsg, client *api.Client) (loginModel, tea.Cmd) {
	if msg.err != nil {
		l.loading = false
		l.errMsg = msg.err.Error()
		return l, nil
	}
	l.notice = "Account created, signing in..."
	l.chainedIn = true
	return l, loginCmd(client, msg.username, msg.password, msg.email)
}

// handleFailedLogin shows a login failure, distinguishing the
// post-registration case so the user knows the account does exist.
func (l loginModel) handleFailedLogin(err error) loginModel {
	l.loading = false
	l.notice = ""
	if l.chainedIn {
		l.errMsg = "Account created, but sign-in failed: " + err.Error()
	} else {
		l.errMsg = err.Error()
	}
	l.chainedIn = false
	return l
}

func (l loginModel) view(width int) string {
	var b strings.Builder

	b.WriteString(l.styles.Title.Render("DIY Visual Finder"))
	b.WriteString("\n")
	b.WriteString(l.styles.Subtitle.Render("Organize your garage and workshop inventory with AI-powered visual search"))
	b.WriteString("\n\n")

	signIn, register := "[ Sign In ]", "  Register  "
	if l.tab == tabRegister {
		signIn, register = "  Sign In  ", "[ Register ]"
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		l.styles.Selected.Render(signIn), "  ", l.styles.Muted.Render(register))
	if l.tab == tabRegister {
		tabs = lipgloss.JoinHorizontal(lipgloss.Top,
			l.styles.Muted.Render(signIn), "  ", l.styles.Selected.Render(register))
	}
	b.WriteString(tabs)
	b.WriteString("\n\n")

	if l.errMsg != "" {
		b.WriteString(l.styles.Banner.Width(min(width-4, 72)).Render(l.errMsg))
		b.WriteString("\n\n")
	}
	if l.notice != "" {
		b.WriteString(l.styles.Info.Render(l.notice))
		b.WriteString("\n\n")
	}

	for i, field := range l.fields() {
		cursor := "  "
		if i == l.focus {
			cursor = l.styles.KeyHint.Render("> ")
		}
		b.WriteString(cursor + field.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if l.loading {
		b.WriteString(l.styles.Muted.Render("Signing in..."))
	} else {
		b.WriteString(l.styles.Footer.Render("enter submit • tab next field • ctrl+t switch form"))
	}
	return b.String()
}

// =============================================================================
// COMMANDS
// =============================================================================

func loginCmd(client *api.Client, username, password, email string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Login(context.Background(), username, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if !resp.Success {
			msg := resp.Message
			if msg == "" {
				msg = "login failed"
			}
			return loginResultMsg{err: errors.New(msg)}
		}
		return loginResultMsg{sess: session.Session{ID: resp.UserID, Username: username, Email: email}}
	}
}

func registerCmd(client *api.Client, reg api.Registration) tea.Cmd {
	return func() tea.Msg {
		out := registerResultMsg{username: reg.Username, password: reg.Password, email: reg.Email}
		resp, err := client.Register(context.Background(), reg)
		if err != nil {
			out.err = err
			return out
		}
		if !resp.Success {
			msg := resp.Message
			if msg == "" {
				msg = "registration failed"
			}
			out.err = errors.New(msg)
		}
		return out
	}
}
