package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"diyfinder/cmd/diyfinder/ui"
	"diyfinder/internal/api"
)

// searchModel runs visual similarity search: pick a reference photo,
// submit it, show scored matches. Results belong to the photo that
// produced them; removing the photo removes the results with it.
type searchModel struct {
	styles ui.Styles
	picker filepicker.Model
	spin   spinner.Model

	pickedPath string
	pendingURI string
	searching  bool
	errMsg     string
	results    []api.SearchResult
	seq        uint64
}

func newSearchModel(styles ui.Styles) searchModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg"}
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return searchModel{styles: styles, picker: fp, spin: sp}
}

func (s searchModel) enterCmd() tea.Cmd {
	return s.picker.Init()
}

// begin tags a new search. Completions carrying an older tag are stale
// and get dropped in the update loop.
func (s *searchModel) begin() uint64 {
	s.seq++
	s.searching = true
	s.errMsg = ""
	return s.seq
}

func (s searchModel) update(msg tea.Msg, client *api.Client, username string) (searchModel, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(tick)
		return s, cmd
	}
	if s.searching {
		return s, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && s.pendingURI != "" {
		switch key.String() {
		case "x":
			s.pickedPath = ""
			s.pendingURI = ""
			s.errMsg = ""
			s.results = nil
			return s, s.picker.Init()
		case "enter":
			if username == "" {
				return s, nil
			}
			seq := s.begin()
			return s, tea.Batch(searchCmd(client, s.pendingURI, username, seq), s.spin.Tick)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)

	if didSelect, path := s.picker.DidSelectFile(msg); didSelect {
		s.pickedPath = path
		s.errMsg = ""
		return s, tea.Batch(cmd, decodeCmd(ViewSearch, path))
	}
	return s, cmd
}

func (s searchModel) view() string {
	var b strings.Builder

	b.WriteString(s.styles.Title.Render("Visual Search"))
	b.WriteString("\n")
	b.WriteString(s.styles.Subtitle.Render("Find items that look like a reference photo"))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(s.styles.Banner.Render(s.errMsg))
		b.WriteString("\n\n")
	}

	switch {
	case s.searching:
		b.WriteString(s.spin.View() + s.styles.Bold.Render(" Searching your inventory..."))
		b.WriteString("\n")
	case s.pendingURI != "":
		b.WriteString(s.styles.Body.Render("Reference photo: " + s.pickedPath))
		b.WriteString("\n\n")
		b.WriteString(s.resultsView())
		b.WriteString(s.styles.Footer.Render("enter search • x remove photo • esc dashboard"))
	default:
		b.WriteString(s.picker.View())
		b.WriteString("\n")
		b.WriteString(s.styles.Footer.Render("enter select photo • esc dashboard"))
	}
	return b.String()
}

func (s searchModel) resultsView() string {
	if s.results == nil {
		return ""
	}
	if len(s.results) == 0 {
		return s.styles.Muted.Render("No similar items found.") + "\n\n"
	}

	t := ui.NewTable(fmt.Sprintf("Matches (%d)", len(s.results)), "Match", "Name", "Category", "Location", "Box")
	for _, r := range s.results {
		t.AddRow(
			fmt.Sprintf("%d%%", int(math.Round(r.Score*100))),
			r.Name,
			r.Category,
			r.Location,
			r.StorageBox,
		)
	}
	return t.View(s.styles) + "\n\n"
}

func searchCmd(client *api.Client, uri, username string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Search(context.Background(), api.SearchRequest{Image: uri, Username: username})
		if err != nil {
			return searchResultMsg{seq: seq, err: err}
		}
		if !resp.Success {
			msg := resp.Error
			if msg == "" {
				msg = "search failed"
			}
			return searchResultMsg{seq: seq, err: errors.New(msg)}
		}
		return searchResultMsg{seq: seq, results: resp.Results}
	}
}
