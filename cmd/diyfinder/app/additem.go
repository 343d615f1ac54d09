package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"diyfinder/cmd/diyfinder/ui"
	"diyfinder/internal/api"
	"diyfinder/internal/imaging"
)

// addItemModel turns a selected photo into a stored inventory item with
// zero additional input: picking a file decodes it and submits
// immediately. While the request is out the screen shows a spinner; a
// failure keeps the selected photo and stays here.
type addItemModel struct {
	styles ui.Styles
	picker filepicker.Model
	spin   spinner.Model

	pickedPath string
	pendingURI string
	submitting bool
	errMsg     string
}

func newAddItemModel(styles ui.Styles) addItemModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg"}
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return addItemModel{styles: styles, picker: fp, spin: sp}
}

func (a addItemModel) enterCmd() tea.Cmd {
	return a.picker.Init()
}

func (a addItemModel) update(msg tea.Msg) (addItemModel, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(tick)
		return a, cmd
	}

	// Submission is not cancellable; the picker is hidden until the
	// in-flight request resolves, so a second file cannot be selected.
	if a.submitting {
		return a, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "x" && a.pendingURI != "" {
		a.pickedPath = ""
		a.pendingURI = ""
		a.errMsg = ""
		return a, a.picker.Init()
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)

	if didSelect, path := a.picker.DidSelectFile(msg); didSelect {
		a.pickedPath = path
		a.errMsg = ""
		return a, tea.Batch(cmd, decodeCmd(ViewAddItem, path))
	}
	return a, cmd
}

func (a addItemModel) view() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Add New Item"))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtitle.Render("Pick a photo and the backend will classify and store it automatically"))
	b.WriteString("\n\n")

	if a.errMsg != "" {
		b.WriteString(a.styles.Banner.Render(a.errMsg))
		b.WriteString("\n\n")
	}

	switch {
	case a.submitting:
		b.WriteString(a.spin.View() + a.styles.Bold.Render(" AI processing your item..."))
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render(fmt.Sprintf("Analyzing %s and adding it to your inventory", a.pickedPath)))
		b.WriteString("\n")
	case a.pendingURI != "":
		b.WriteString(a.styles.Body.Render(fmt.Sprintf("Selected photo: %s (%s)", a.pickedPath, humanSize(len(a.pendingURI)))))
		b.WriteString("\n\n")
		b.WriteString(a.styles.Footer.Render("x remove photo • esc dashboard"))
	default:
		b.WriteString(a.picker.View())
		b.WriteString("\n")
		b.WriteString(a.styles.Footer.Render("enter select photo • esc dashboard"))
	}
	return b.String()
}

// humanSize reports the encoded payload size for the preview line.
func humanSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%d KiB", n/1024)
}

// =============================================================================
// COMMANDS
// =============================================================================

// decodeCmd reads and encodes a picked file off the update loop, then
// reports back to whichever screen asked.
func decodeCmd(target View, path string) tea.Cmd {
	return func() tea.Msg {
		uri, err := imaging.EncodeFile(path)
		return imagePickedMsg{target: target, uri: uri, err: err}
	}
}

func addItemCmd(client *api.Client, uri, username string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.AddItem(context.Background(), defaultAddItem(uri, username))
		if err != nil {
			return itemAddedMsg{err: err}
		}
		if !resp.Success {
			msg := resp.Error
			if msg == "" {
				msg = "failed to add item"
			}
			return itemAddedMsg{err: errors.New(msg)}
		}
		return itemAddedMsg{}
	}
}
