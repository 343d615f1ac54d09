package app

import (
	"errors"
	"strings"
	"testing"

	"diyfinder/cmd/diyfinder/ui"
	"diyfinder/internal/api"
)

func testStyles() ui.Styles {
	return ui.NewStyles(ui.LightTheme())
}

func TestChatBlankSubmitIsNoOp(t *testing.T) {
	c := newChatModel(testStyles())
	client := api.NewClient("http://localhost:0")

	for _, input := range []string{"", "   ", "\t"} {
		c.input.SetValue(input)
		next, cmd := c.submit(c.input.Value(), client, "bob")
		if cmd != nil {
			t.Errorf("input %q produced a command", input)
		}
		if len(next.messages) != 0 {
			t.Errorf("input %q appended a message", input)
		}
		if next.waiting {
			t.Errorf("input %q set waiting", input)
		}
	}
}

func TestChatSubmitAppendsAndClears(t *testing.T) {
	c := newChatModel(testStyles())
	client := api.NewClient("http://localhost:0")

	c.input.SetValue("  How many M6 bolts do I have?  ")
	c, cmd := c.submit(c.input.Value(), client, "bob")
	if cmd == nil {
		t.Fatal("submit produced no command")
	}
	if len(c.messages) != 1 || c.messages[0].Role != "user" {
		t.Fatalf("messages = %+v", c.messages)
	}
	if c.messages[0].Content != "How many M6 bolts do I have?" {
		t.Fatalf("content = %q, want trimmed", c.messages[0].Content)
	}
	if c.input.Value() != "" {
		t.Fatal("submit did not clear the input")
	}
	if !c.waiting {
		t.Fatal("submit did not mark waiting")
	}
}

func TestChatReplyRendersMarkdown(t *testing.T) {
	c := newChatModel(testStyles())
	client := api.NewClient("http://localhost:0")
	c, _ = c.submit("list them", client, "bob")

	c = c.applyReply(chatReplyMsg{
		seq:   c.seq,
		reply: "**bold** and *italic*\n- a\n- b",
	})
	if c.waiting {
		t.Fatal("reply left waiting set")
	}
	last := c.messages[len(c.messages)-1]
	if last.Role != "assistant" {
		t.Fatalf("role = %q", last.Role)
	}
	want := "<strong>bold</strong> and <em>italic</em><br>• a<br>• b"
	if last.Content != want {
		t.Fatalf("content = %q, want %q", last.Content, want)
	}
}

func TestChatErrorMessages(t *testing.T) {
	client := api.NewClient("http://localhost:0")

	t.Run("application failure", func(t *testing.T) {
		c := newChatModel(testStyles())
		c, _ = c.submit("hi", client, "bob")
		c = c.applyReply(chatReplyMsg{seq: c.seq, appErr: "query failed"})
		last := c.messages[len(c.messages)-1]
		if last.Content != "Error: query failed" {
			t.Fatalf("content = %q", last.Content)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		c := newChatModel(testStyles())
		c, _ = c.submit("hi", client, "bob")
		c = c.applyReply(chatReplyMsg{seq: c.seq, err: errors.New("connection refused")})
		last := c.messages[len(c.messages)-1]
		if last.Content != "Sorry, I encountered an error: connection refused" {
			t.Fatalf("content = %q", last.Content)
		}
	})
}

func TestChatStaleReplyDropped(t *testing.T) {
	c := newChatModel(testStyles())
	client := api.NewClient("http://localhost:0")
	c, _ = c.submit("first", client, "bob")
	stale := c.seq
	c, _ = c.submit("second", client, "bob")

	c = c.applyReply(chatReplyMsg{seq: stale, reply: "answer to first"})
	if !c.waiting {
		t.Fatal("stale reply cleared waiting for the newer turn")
	}
	for _, m := range c.messages {
		if m.Role == "assistant" {
			t.Fatal("stale reply entered the transcript")
		}
	}
}

func TestChatSuggestedQuestionsShownWhenEmpty(t *testing.T) {
	c := newChatModel(testStyles())
	v := c.view()
	for _, q := range suggestedQuestions {
		if !strings.Contains(v, q) {
			t.Errorf("empty transcript view missing %q", q)
		}
	}

	client := api.NewClient("http://localhost:0")
	c, _ = c.submit("hello", client, "bob")
	v = c.view()
	for _, q := range suggestedQuestions {
		if strings.Contains(v, q) {
			t.Errorf("suggestions still shown after first message: %q", q)
		}
	}
}
