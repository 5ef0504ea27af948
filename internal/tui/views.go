package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/storefront/internal/tui/components"
	"github.com/mmcdole/storefront/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmLogout:
		return m.renderConfirm("Log Out?", "This ends your session on this machine.\nFavorites are kept.")
	case StateConfirmDelete:
		title := ""
		if m.pendingDelete != nil {
			title = m.pendingDelete.Title
		}
		return m.renderConfirm("Delete Product?", fmt.Sprintf("%q will be deleted.", styles.Truncate(title, 40)))
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderFooter(),
	)

	// Overlay the open modal, if any
	if modal := m.modalView(); modal != "" {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			modal)
	}

	return view
}

func (m Model) modalView() string {
	switch {
	case m.SearchModal.IsVisible():
		return m.SearchModal.View()
	case m.CategoryPicker.IsVisible():
		return m.CategoryPicker.View()
	case m.PriceModal.IsVisible():
		return m.PriceModal.View()
	case m.ProductForm.IsVisible():
		return m.ProductForm.View()
	case m.LoginModal.IsVisible():
		return m.LoginModal.View()
	}
	return ""
}

func (m Model) renderContent() string {
	if m.Screen == ScreenDetail {
		return m.Inspector.View()
	}

	list := m.List
	if m.Screen == ScreenFavorites {
		list = m.FavoritesList
	}

	if m.calculateLayout(m.Width).inspectorWidth == 0 {
		return list.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list.View(), m.Inspector.View())
}

// renderHeader renders the title, the active tab and the user
func (m Model) renderHeader() string {
	tabs := []struct {
		label  string
		screen Screen
	}{
		{"Catalog", ScreenCatalog},
		{fmt.Sprintf("Favorites (%d)", m.FavoritesSvc.Count()), ScreenFavorites},
	}

	active := m.Screen
	if active == ScreenDetail {
		active = m.returnTo
	}

	parts := []string{styles.TitleStyle.Render("Storefront")}
	for _, tab := range tabs {
		if tab.screen == active {
			parts = append(parts, styles.HighlightStyle.Render(tab.label))
		} else {
			parts = append(parts, styles.DimStyle.Render(" "+tab.label+" "))
		}
	}
	left := strings.Join(parts, "  ")

	user := styles.DimStyle.Render("guest · L to log in")
	if u, ok := m.SessionSvc.Current(); ok {
		user = styles.AccentStyle.Render("● ") + styles.SubtitleStyle.Render(u.Name)
	}

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(user), 1)
	return left + strings.Repeat(" ", gap) + user
}

// renderFooter renders a single-line status bar
func (m Model) renderFooter() string {
	// Left side: spinner while loading, else status message, else the catalog error
	var left string
	switch {
	case m.pending > 0 || m.catalog.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading "+m.catalog.Mode.Label()+"...")
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	case m.catalog.Err != nil:
		left = styles.ErrorStyle.Render(m.catalog.Err.Error()) + styles.DimStyle.Render(" · r to retry")
	}

	// Center: mode, counts and price range
	center := m.renderCatalogSummary()

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth+2 >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func (m Model) renderCatalogSummary() string {
	st := m.catalog
	parts := []string{st.Mode.Label()}

	switch {
	case st.HasMore():
		parts = append(parts, fmt.Sprintf("%d of %d", len(st.Items), st.Total))
	default:
		parts = append(parts, fmt.Sprintf("%d items", len(st.Items)))
	}
	if st.PriceRange != nil {
		parts = append(parts, fmt.Sprintf("%s → %d shown", st.PriceRange, len(st.VisibleItems())))
	}
	return styles.DimStyle.Render(strings.Join(parts, " · "))
}

// renderHelp renders the help screen from the key map
func (m Model) renderHelp() string {
	var columns []string
	for _, section := range Keys.HelpSections() {
		lines := []string{styles.ModalTitleStyle.Render(section.Title)}
		for _, b := range section.Bindings {
			h := b.Help()
			lines = append(lines, styles.HelpKeyStyle.Render(styles.Pad(h.Key, 10))+styles.HelpDescStyle.Render(h.Desc))
		}
		columns = append(columns, lipgloss.NewStyle().MarginRight(4).Render(strings.Join(lines, "\n")))
	}

	help := lipgloss.JoinHorizontal(lipgloss.Top, columns...) +
		"\n\n" + styles.DimStyle.Render("Press ? or esc to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderConfirm renders a yes/no confirmation modal
func (m Model) renderConfirm(title, body string) string {
	content := styles.ModalTitleStyle.Render(title) + "\n" +
		body + "\n\n" +
		styles.HelpKeyStyle.Render("[Y]") + " Yes      " + styles.HelpKeyStyle.Render("[N]") + " No"

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := components.SpinnerFrames
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}
