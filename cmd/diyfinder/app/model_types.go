package app

import (
	"diyfinder/internal/api"
	"diyfinder/internal/session"
)

// View identifies which screen is visible. Exactly one is active at a
// time; transitions are synchronous.
type View int

const (
	ViewLogin View = iota
	ViewDashboard
	ViewAddItem
	ViewSearch
	ViewChat
)

// String returns the display name for each view.
func (v View) String() string {
	names := []string{"login", "dashboard", "add-item", "search", "chat"}
	if int(v) < len(names) {
		return names[v]
	}
	return "unknown"
}

// Message is a single entry in the chat transcript. Assistant content is
// stored already rendered through the markdown transform.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Messages for tea updates.
type (
	// loginResultMsg reports a completed login attempt.
	loginResultMsg struct {
		sess session.Session
		err  error
	}

	// registerResultMsg reports a completed registration. On success the
	// login view chains an explicit login with the same credentials; its
	// failure is surfaced distinctly from a registration failure.
	registerResultMsg struct {
		username string
		password string
		email    string
		err      error
	}

	// inventoryMsg reports a completed inventory fetch. seq ties it to
	// the fetch that produced it; stale completions are discarded.
	inventoryMsg struct {
		seq   uint64
		items []api.InventoryItem
		err   error
	}

	// imagePickedMsg reports a finished file decode for the view that
	// requested it (add-item or search).
	imagePickedMsg struct {
		target View
		uri    string
		err    error
	}

	// itemAddedMsg reports a completed add-item submission.
	itemAddedMsg struct {
		err error
	}

	// searchResultMsg reports a completed visual search, seq-tagged like
	// inventory fetches.
	searchResultMsg struct {
		seq     uint64
		results []api.SearchResult
		err     error
	}

	// chatReplyMsg reports one chat turn. appErr is set for a well-formed
	// unsuccessful response; err for a transport failure. The two produce
	// different assistant messages.
	chatReplyMsg struct {
		seq    uint64
		reply  string
		appErr string
		err    error
	}
)

// ItemIngestedMsg reports a drop-folder ingest. It is exported because
// the watcher bridge delivers it from outside the program via Send.
type ItemIngestedMsg struct {
	Path string
	Err  error
}
