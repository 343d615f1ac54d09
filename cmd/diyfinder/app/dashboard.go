package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"diyfinder/cmd/diyfinder/ui"
	"diyfinder/internal/inventory"
)

// dashboardModel is the navigation hub: the inventory listing plus keys
// into every other screen.
type dashboardModel struct {
	styles ui.Styles
	spin   spinner.Model
}

func newDashboardModel(styles ui.Styles) dashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return dashboardModel{styles: styles, spin: sp}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		d.spin, cmd = d.spin.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d dashboardModel) view(inv *inventory.Cache) string {
	var b strings.Builder

	b.WriteString(d.styles.Title.Render("Your Inventory"))
	b.WriteString("\n")

	switch {
	case inv.Loading:
		b.WriteString(d.spin.View() + d.styles.Muted.Render(" Loading inventory..."))
		b.WriteString("\n")
	case inv.Err != "":
		b.WriteString(d.styles.Banner.Render(inv.Err))
		b.WriteString("\n")
		b.WriteString(d.styles.Footer.Render("r retry"))
		b.WriteString("\n")
		if len(inv.Items) > 0 {
			b.WriteString(d.styles.Muted.Render(fmt.Sprintf("Showing the last loaded %d items.", len(inv.Items))))
			b.WriteString("\n")
		}
	case len(inv.Items) == 0:
		b.WriteString(d.styles.Muted.Render("No items yet. Press a to add your first item from a photo."))
		b.WriteString("\n")
	}

	if len(inv.Items) > 0 {
		tbl := ui.NewTable("", "Name", "Category", "Qty", "Location", "Box", "Condition")
		for _, item := range inv.Items {
			tbl.AddRow(item.Name, item.Category, fmt.Sprintf("%d", item.Quantity),
				item.Location, item.StorageBox, item.Condition)
		}
		b.WriteString(tbl.View(d.styles))
	}

	b.WriteString("\n")
	b.WriteString(d.styles.Footer.Render("a add item • s search • c chat • r reload • ctrl+l sign out • ctrl+c quit"))
	return b.String()
}
