package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/products"
	"github.com/mmcdole/storefront/internal/tui/components"
	"github.com/mmcdole/storefront/internal/tui/styles"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			return m, LogoutCmd(m.SessionSvc)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmDelete:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			target := m.pendingDelete
			m.pendingDelete = nil
			if target != nil {
				return m, DeleteProductCmd(m.ProductsSvc, *target)
			}
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
			m.pendingDelete = nil
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Theme):
		dark, err := m.SessionSvc.ToggleTheme()
		styles.Apply(dark)
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Saving theme failed: %v", err), true)
		}
		return m, nil

	case key.Matches(msg, Keys.Login):
		if m.SessionSvc.Authenticated() {
			m.State = StateConfirmLogout
			return m, nil
		}
		m.LoginModal.Show()
		return m, nil

	case key.Matches(msg, Keys.Favorites):
		if m.Screen == ScreenFavorites {
			m.switchScreen(ScreenCatalog)
		} else {
			m.switchScreen(ScreenFavorites)
		}
		return m, nil

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil
	}

	// Actions on the selected product, available on every screen
	if handled, cmd := m.handleProductKeys(msg); handled {
		return m, cmd
	}

	switch m.Screen {
	case ScreenDetail:
		return m.handleDetailKeys(msg)
	case ScreenFavorites:
		return m.handleFavoritesKeys(msg)
	default:
		return m.handleCatalogKeys(msg)
	}
}

// handleProductKeys handles favorite/add/edit/delete
func (m *Model) handleProductKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Favorite):
		return true, m.toggleFavorite(m.selectedProduct())

	case key.Matches(msg, Keys.Add):
		if ok, cmd := m.requireSession(); !ok {
			return true, cmd
		}
		category := ""
		if m.catalog.Mode.Kind == domain.ModeCategory {
			category = m.catalog.Mode.Category
		}
		m.ProductForm.ShowAdd(category)
		return true, nil

	case key.Matches(msg, Keys.Edit):
		p := m.selectedProduct()
		if p == nil {
			return true, nil
		}
		if ok, cmd := m.requireSession(); !ok {
			return true, cmd
		}
		m.ProductForm.ShowEdit(p.ID, products.FormFromProduct(*p))
		return true, nil

	case key.Matches(msg, Keys.Delete):
		p := m.selectedProduct()
		if p == nil {
			return true, nil
		}
		if ok, cmd := m.requireSession(); !ok {
			return true, cmd
		}
		m.pendingDelete = p
		m.State = StateConfirmDelete
		return true, nil
	}
	return false, nil
}

func (m Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Search):
		m.searchTarget = searchCatalog
		query := ""
		if m.catalog.Mode.Kind == domain.ModeSearching {
			query = m.catalog.Mode.Query
		}
		m.SearchModal.Show("Search products", "type to search...", query)
		m.SearchModal.SetHint("results update as you type · enter search now · esc close")
		return m, nil

	case key.Matches(msg, Keys.Category):
		active := ""
		if m.catalog.Mode.Kind == domain.ModeCategory {
			active = m.catalog.Mode.Category
		}
		m.CategoryPicker.Show(active)
		if len(m.categories) == 0 {
			return m, LoadCategoriesCmd(m.CategorySvc)
		}
		return m, nil

	case key.Matches(msg, Keys.PriceRange):
		m.PriceModal.Show(m.catalog.PriceRange)
		return m, nil

	case key.Matches(msg, Keys.ClearFilter):
		m.CatalogSync.ClearPriceRange()
		m.searchSeq++
		return m, m.dispatch(ReloadCmd(m.CatalogSync))

	case key.Matches(msg, Keys.Refresh):
		return m, tea.Batch(m.refreshCmd(), RefreshCategoriesCmd(m.CategorySvc))

	case key.Matches(msg, Keys.Enter):
		return m, m.openDetail(m.List.Selected())
	}

	var moved bool
	m.List, moved = m.List.Update(msg)
	if moved {
		m.updateInspector()
		return m, m.maybeLoadMore()
	}
	return m, nil
}

func (m Model) handleFavoritesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Search):
		m.searchTarget = searchFavorites
		m.SearchModal.Show("Filter favorites", "type to filter...", m.favoritesQuery)
		m.SearchModal.SetHint("enter keep filter · esc close")
		return m, nil

	case key.Matches(msg, Keys.Escape, Keys.Back):
		if m.favoritesQuery != "" {
			m.favoritesQuery = ""
			m.refreshFavorites()
			return m, nil
		}
		m.switchScreen(ScreenCatalog)
		return m, nil

	case key.Matches(msg, Keys.Enter):
		return m, m.openDetail(m.FavoritesList.Selected())
	}

	var moved bool
	m.FavoritesList, moved = m.FavoritesList.Update(msg)
	if moved {
		m.updateInspector()
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Escape, Keys.Back) {
		m.leaveDetail()
		return m, nil
	}
	var cmd tea.Cmd
	m.Inspector, cmd = m.Inspector.Update(msg)
	return m, cmd
}

// routeToModal sends msg to the open modal; handled is false when none is open
func (m Model) routeToModal(msg tea.Msg) (bool, tea.Model, tea.Cmd) {
	switch {
	case m.SearchModal.IsVisible():
		newModel, cmd := m.handleSearchModal(msg)
		return true, newModel, cmd

	case m.CategoryPicker.IsVisible():
		keyMsg, ok := msg.(tea.KeyMsg)
		if !ok {
			return true, m, nil
		}
		_, cmd, selection := m.CategoryPicker.HandleKey(keyMsg)
		if selection == nil {
			return true, m, cmd
		}
		m.searchSeq++
		return true, m, tea.Batch(cmd, m.dispatch(FilterCategoryCmd(m.CatalogSync, selection.Slug)))

	case m.PriceModal.IsVisible():
		var cmd tea.Cmd
		var r *domain.PriceRange
		m.PriceModal, cmd, r = m.PriceModal.Update(msg)
		if r == nil {
			return true, m, cmd
		}
		if r.IsEmpty() {
			m.CatalogSync.ClearPriceRange()
			m.searchSeq++
			return true, m, tea.Batch(cmd, m.dispatch(ReloadCmd(m.CatalogSync)), m.setStatus("Price filter cleared", false))
		}
		m.CatalogSync.SetPriceRange(*r)
		m.refreshCatalog()
		return true, m, tea.Batch(cmd, m.maybeLoadMore(), m.setStatus("Price filter: "+r.String(), false))

	case m.ProductForm.IsVisible():
		var cmd tea.Cmd
		var submitted bool
		m.ProductForm, cmd, submitted = m.ProductForm.Update(msg)
		if !submitted {
			return true, m, cmd
		}
		draft, err := m.ProductsSvc.ParseDraft(m.ProductForm.Form())
		if err != nil {
			var ve domain.ValidationError
			if errors.As(err, &ve) {
				m.ProductForm.SetErrors(ve.Fields)
				return true, m, cmd
			}
			return true, m, tea.Batch(cmd, m.setStatus(err.Error(), true))
		}
		m.ProductForm.SetErrors(nil)
		return true, m, tea.Batch(cmd, SaveProductCmd(m.ProductsSvc, m.ProductForm.EditID(), draft))

	case m.LoginModal.IsVisible():
		var cmd tea.Cmd
		var creds *components.Credentials
		m.LoginModal, cmd, creds = m.LoginModal.Update(msg)
		if creds == nil {
			return true, m, cmd
		}
		user, err := m.SessionSvc.Login(creds.Email, creds.Password)
		if err != nil {
			m.LoginModal.SetError(err.Error())
			return true, m, cmd
		}
		m.LoginModal.Hide()
		return true, m, tea.Batch(cmd, m.setStatus("Logged in as "+user.Name, false))
	}

	return false, m, nil
}

// handleSearchModal feeds the search box. Catalog searches are debounced:
// every edit bumps searchSeq and only the tick carrying the latest value searches.
func (m Model) handleSearchModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.SearchModal.Value()
	var cmd tea.Cmd
	var submitted bool
	m.SearchModal, cmd, submitted = m.SearchModal.Update(msg)
	value := m.SearchModal.Value()
	cmds := []tea.Cmd{cmd}

	if m.searchTarget == searchFavorites {
		if value != before {
			m.favoritesQuery = value
			m.refreshFavorites()
		}
		if submitted {
			m.SearchModal.Hide()
		}
		return m, tea.Batch(cmds...)
	}

	switch {
	case submitted:
		m.SearchModal.Hide()
		m.searchSeq++
		cmds = append(cmds, m.dispatch(SearchCmd(m.CatalogSync, value)))
	case value != before:
		m.searchSeq++
		if m.opts.SearchDebounce <= 0 {
			cmds = append(cmds, m.dispatch(SearchCmd(m.CatalogSync, value)))
		} else {
			cmds = append(cmds, DebounceSearchCmd(m.searchSeq, value, m.opts.SearchDebounce))
		}
	}
	return m, tea.Batch(cmds...)
}
