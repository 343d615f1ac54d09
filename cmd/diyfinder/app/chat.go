package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"diyfinder/cmd/diyfinder/ui"
	"diyfinder/internal/api"
	"diyfinder/internal/markdown"
)

// suggestedQuestions seed an empty transcript. Picking one submits it
// through the same path as typed input.
var suggestedQuestions = []string{
	"How many M6 bolts do I have?",
	"What's in my garage?",
	"What's the largest M8 Screw I have?",
	"Do I have an M6 Nut?",
}

// chatModel holds one conversation with the inventory assistant. The
// transcript is append-only; assistant entries are stored already run
// through the markdown transform so the view never re-renders them.
type chatModel struct {
	styles ui.Styles
	input  textinput.Model
	vp     viewport.Model
	spin   spinner.Model

	messages []Message
	waiting  bool
	seq      uint64
	sized    bool
}

func newChatModel(styles ui.Styles) chatModel {
	in := textinput.New()
	in.Placeholder = "Ask about your inventory..."
	in.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return chatModel{
		styles: styles,
		input:  in,
		vp:     viewport.New(80, 16),
		spin:   sp,
	}
}

func (c *chatModel) enterCmd() tea.Cmd {
	c.input.Focus()
	return textinput.Blink
}

func (c *chatModel) setSize(width, height int) {
	c.vp.Width = width
	// Title, input line and footer take the rest of the frame.
	if h := height - 8; h > 4 {
		c.vp.Height = h
	}
	c.sized = true
	c.refresh()
}

// begin tags a new turn so a reply that loses a race with sign-out or a
// later turn can be recognized and dropped.
func (c *chatModel) begin() uint64 {
	c.seq++
	c.waiting = true
	return c.seq
}

func (c chatModel) update(msg tea.Msg, client *api.Client, username string) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		if c.waiting {
			return c, nil
		}
		switch key := msg.String(); key {
		case "enter":
			return c.submit(c.input.Value(), client, username)
		case "1", "2", "3", "4":
			if len(c.messages) == 0 && c.input.Value() == "" {
				return c.submit(suggestedQuestions[int(key[0]-'1')], client, username)
			}
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// submit sends one user message. Blank input is ignored without any
// state change.
func (c chatModel) submit(text string, client *api.Client, username string) (chatModel, tea.Cmd) {
	text = strings.TrimSpace(text)
	if text == "" || username == "" {
		return c, nil
	}

	c.messages = append(c.messages, Message{Role: "user", Content: text})
	c.input.SetValue("")
	seq := c.begin()
	c.refresh()
	return c, tea.Batch(chatCmd(client, username, text, seq), c.spin.Tick)
}

// applyReply folds a completed turn into the transcript. Stale replies
// are dropped: a mismatched seq, or a matching one whose turn was torn
// down (waiting cleared by reset) before the reply arrived.
func (c chatModel) applyReply(msg chatReplyMsg) chatModel {
	if msg.seq != c.seq || !c.waiting {
		return c
	}
	c.waiting = false

	var content string
	switch {
	case msg.err != nil:
		content = "Sorry, I encountered an error: " + msg.err.Error()
	case msg.appErr != "":
		content = "Error: " + msg.appErr
	default:
		content = markdown.Render(msg.reply)
	}
	c.messages = append(c.messages, Message{Role: "assistant", Content: content})
	c.refresh()
	return c
}

func (c *chatModel) refresh() {
	var b strings.Builder
	for i, m := range c.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch m.Role {
		case "user":
			b.WriteString(c.styles.UserMessage.Render("You: ") + m.Content)
		default:
			b.WriteString(c.styles.AssistantMessage.Render("Assistant: ") + c.styles.Markup(m.Content))
		}
	}
	c.vp.SetContent(b.String())
	c.vp.GotoBottom()
}

func (c chatModel) view() string {
	var b strings.Builder

	b.WriteString(c.styles.Title.Render("Inventory Assistant"))
	b.WriteString("\n\n")

	if len(c.messages) == 0 && !c.waiting {
		b.WriteString(c.styles.Subtitle.Render("Try one of these:"))
		b.WriteString("\n")
		for i, q := range suggestedQuestions {
			b.WriteString(c.styles.KeyHint.Render("  "+string(rune('1'+i))+" ") + c.styles.Muted.Render(q))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString(c.vp.View())
		b.WriteString("\n")
	}

	if c.waiting {
		b.WriteString(c.spin.View() + c.styles.Muted.Render(" thinking..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(c.input.View())
	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render("enter send • esc dashboard"))
	return b.String()
}

func chatCmd(client *api.Client, username, text string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), api.ChatRequest{Username: username, Text: text})
		if err != nil {
			return chatReplyMsg{seq: seq, err: err}
		}
		if !resp.Success {
			appErr := resp.Error
			if appErr == "" {
				appErr = resp.Response
			}
			if appErr == "" {
				appErr = "unknown error"
			}
			return chatReplyMsg{seq: seq, appErr: appErr}
		}
		return chatReplyMsg{seq: seq, reply: resp.Response}
	}
}
