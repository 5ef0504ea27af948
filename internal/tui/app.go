package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/storefront/internal/catalog"
	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/favorites"
	"github.com/mmcdole/storefront/internal/products"
	"github.com/mmcdole/storefront/internal/session"
	"github.com/mmcdole/storefront/internal/tui/components"
	"github.com/mmcdole/storefront/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
	StateConfirmDelete
)

// Screen is the view shown in the content area
type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenFavorites
	ScreenDetail
)

// searchTarget selects what the search modal drives
type searchTarget int

const (
	searchCatalog   searchTarget = iota // remote search (debounced)
	searchFavorites                     // local fuzzy filter
)

const (
	statusTimeout      = 3 * time.Second
	errorStatusTimeout = 5 * time.Second
	tickInterval       = 100 * time.Millisecond
)

// Services groups the application services the model drives
type Services struct {
	Catalog    *catalog.Sync
	Categories *catalog.Categories
	Favorites  *favorites.Service
	Session    *session.Service
	Products   *products.Service
}

// Options tunes catalog behaviour of the UI
type Options struct {
	SearchDebounce    time.Duration // Quiet period before a typed search is sent
	PrefetchThreshold int           // Rows from the end that trigger the next page
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State  ApplicationState
	Screen Screen
	Ready  bool

	// Services
	CatalogSync  *catalog.Sync
	CategorySvc  *catalog.Categories
	FavoritesSvc *favorites.Service
	SessionSvc   *session.Service
	ProductsSvc  *products.Service

	// UI Components
	List           components.ProductList
	FavoritesList  components.ProductList
	Inspector      components.Inspector
	SearchModal    components.InputModal
	CategoryPicker components.CategoryPicker
	PriceModal     components.PriceModal
	ProductForm    components.ProductForm
	LoginModal     components.LoginModal

	// Data
	catalog    catalog.State
	categories []domain.Category

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	SpinnerFrame  int
	ShowInspector bool

	opts           Options
	pending        int // catalog commands in flight
	searchSeq      int // bumped by every mode-changing request; stale debounce ticks are dropped
	searchTarget   searchTarget
	favoritesQuery string
	returnTo       Screen // screen to go back to from the detail view
	pendingDelete  *domain.Product
}

// NewModel creates a new application model
func NewModel(svc Services, opts Options) Model {
	if opts.PrefetchThreshold < 0 {
		opts.PrefetchThreshold = 0
	}
	styles.Apply(svc.Session.IsDark())

	m := Model{
		State:          StateBrowsing,
		Screen:         ScreenCatalog,
		CatalogSync:    svc.Catalog,
		CategorySvc:    svc.Categories,
		FavoritesSvc:   svc.Favorites,
		SessionSvc:     svc.Session,
		ProductsSvc:    svc.Products,
		List:           components.NewProductList("All products"),
		FavoritesList:  components.NewProductList("Favorites"),
		Inspector:      components.NewInspector(),
		SearchModal:    components.NewInputModal(),
		CategoryPicker: components.NewCategoryPicker(),
		PriceModal:     components.NewPriceModal(),
		ProductForm:    components.NewProductForm(),
		LoginModal:     components.NewLoginModal(),
		ShowInspector:  true,
		opts:           opts,
		pending:        1, // first page is requested by Init
	}
	m.FavoritesList.SetEmptyText("No favorites yet. Press f on a product to add it.")
	m.List.SetLoading(true)
	m.refreshFavorites()
	return m
}

// Init loads the first page and the category vocabulary.
// Cached categories are shown at once and replaced when the refetch lands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadPageCmd(m.CatalogSync, 0, m.CatalogSync.PageSize()),
		LoadCategoriesCmd(m.CategorySvc),
		RefreshCategoriesCmd(m.CategorySvc),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case CatalogUpdatedMsg:
		m.pending = max(m.pending-1, 0)
		m.refreshCatalog()
		if msg.Err != nil && !isQuietCatalogErr(msg.Err) {
			slog.Warn("catalog operation failed", "op", msg.Op, "error", msg.Err)
			return m, m.setStatus(msg.Err.Error(), true)
		}
		return m, m.maybeLoadMore()

	case SearchDebounceMsg:
		if msg.Seq != m.searchSeq {
			return m, nil
		}
		return m, m.dispatch(SearchCmd(m.CatalogSync, msg.Query))

	case CategoriesLoadedMsg:
		m.categories = msg.Categories
		m.CategoryPicker.SetCategories(msg.Categories)
		return m, nil

	case ProductLoadedMsg:
		if current := m.Inspector.Product(); m.Screen == ScreenDetail && current != nil && current.ID == msg.Product.ID {
			m.Inspector.SetProduct(msg.Product)
		}
		return m, nil

	case ProductSavedMsg:
		m.ProductForm.Hide()
		if current := m.Inspector.Product(); m.Screen == ScreenDetail && current != nil && current.ID == msg.Product.ID {
			m.Inspector.SetProduct(msg.Product)
		}
		if msg.Created {
			return m, m.setStatus(fmt.Sprintf("Added %q (#%d)", msg.Product.Title, msg.Product.ID), false)
		}
		return m, m.setStatus(fmt.Sprintf("Saved %q", msg.Product.Title), false)

	case ProductDeletedMsg:
		if m.FavoritesSvc.IsFavorite(msg.ID) {
			if err := m.FavoritesSvc.Remove(msg.ID); err != nil {
				slog.Error("failed to drop deleted product from favorites", "id", msg.ID, "error", err)
			}
			m.refreshFavorites()
		}
		if current := m.Inspector.Product(); m.Screen == ScreenDetail && current != nil && current.ID == msg.ID {
			m.leaveDetail()
		}
		return m, m.setStatus(fmt.Sprintf("Deleted %q", msg.Title), false)

	case LogoutCompleteMsg:
		if msg.Error != nil {
			return m, m.setStatus(fmt.Sprintf("Logout failed: %v", msg.Error), true)
		}
		return m, m.setStatus("Logged out", false)

	case ErrMsg:
		return m.handleErr(msg)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Remaining messages (cursor blink) go to the open modal
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}
	return m, nil
}

func (m Model) handleErr(msg ErrMsg) (tea.Model, tea.Cmd) {
	var ve domain.ValidationError
	switch {
	case m.ProductForm.IsVisible() && errors.As(msg.Err, &ve):
		m.ProductForm.SetErrors(ve.Fields)
		return m, nil
	case errors.Is(msg.Err, domain.ErrUnauthenticated):
		m.ProductForm.Hide()
		m.LoginModal.Show()
		return m, m.setStatus("Log in to manage products", true)
	}
	slog.Error("operation failed", "context", msg.Context, "error", msg.Err)
	return m, m.setStatus(msg.Error(), true)
}

// dispatch counts a catalog command as in flight
func (m *Model) dispatch(cmd tea.Cmd) tea.Cmd {
	m.pending++
	m.List.SetLoading(true)
	return cmd
}

// setStatus shows a status line that clears itself
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	if isErr {
		return ClearStatusCmd(errorStatusTimeout)
	}
	return ClearStatusCmd(statusTimeout)
}

// refreshCatalog re-reads the catalog snapshot into the list
func (m *Model) refreshCatalog() {
	prevMode := m.catalog.Mode
	m.catalog = m.CatalogSync.Snapshot()
	if m.catalog.Mode != prevMode {
		m.List.ResetCursor()
	}

	m.List.SetItems(m.catalog.VisibleItems())
	m.List.SetFavorites(m.FavoritesSvc.IDs())
	m.List.SetLoading(m.pending > 0 || m.catalog.Loading)
	m.List.SetTitle(m.catalogTitle())
	m.List.SetEmptyText(m.catalogEmptyText())
	m.updateInspector()
}

// refreshFavorites re-reads favorites with the current filter
func (m *Model) refreshFavorites() {
	items := m.FavoritesSvc.Find(m.favoritesQuery)
	m.FavoritesList.SetItems(items)
	m.FavoritesList.SetFavorites(m.FavoritesSvc.IDs())
	m.List.SetFavorites(m.FavoritesSvc.IDs())

	title := fmt.Sprintf("Favorites (%d)", m.FavoritesSvc.Count())
	if m.favoritesQuery != "" {
		title = fmt.Sprintf("Favorites · %q (%d/%d)", m.favoritesQuery, len(items), m.FavoritesSvc.Count())
	}
	m.FavoritesList.SetTitle(title)
	m.updateInspector()
}

// maybeLoadMore requests the next page when the cursor nears the end of the listing
func (m *Model) maybeLoadMore() tea.Cmd {
	if m.Screen != ScreenCatalog || m.pending > 0 || m.catalog.Err != nil {
		return nil
	}
	if !m.catalog.HasMore() || !m.List.NearEnd(m.opts.PrefetchThreshold) {
		return nil
	}
	return m.dispatch(LoadMoreCmd(m.CatalogSync))
}

// refreshCmd retries after a failure, otherwise re-fetches the current mode
func (m *Model) refreshCmd() tea.Cmd {
	m.searchSeq++
	if m.catalog.Err == nil && m.catalog.Mode.Kind == domain.ModeListing {
		return m.dispatch(ReloadCmd(m.CatalogSync))
	}
	return m.dispatch(RetryCmd(m.CatalogSync))
}

// activeList returns the list of the current screen
func (m *Model) activeList() *components.ProductList {
	if m.Screen == ScreenFavorites || (m.Screen == ScreenDetail && m.returnTo == ScreenFavorites) {
		return &m.FavoritesList
	}
	return &m.List
}

// selectedProduct returns the product the next action applies to
func (m Model) selectedProduct() *domain.Product {
	if m.Screen == ScreenDetail {
		return m.Inspector.Product()
	}
	return m.activeList().Selected()
}

func (m *Model) updateInspector() {
	if m.Screen == ScreenDetail {
		if p := m.Inspector.Product(); p != nil {
			m.Inspector.SetFavorite(m.FavoritesSvc.IsFavorite(p.ID))
		}
		return
	}
	p := m.activeList().Selected()
	m.Inspector.SetProduct(p)
	m.Inspector.SetFavorite(p != nil && m.FavoritesSvc.IsFavorite(p.ID))
}

func (m *Model) openDetail(p *domain.Product) tea.Cmd {
	if p == nil {
		return nil
	}
	m.returnTo = m.Screen
	m.Screen = ScreenDetail
	m.Inspector.SetProduct(p)
	m.Inspector.SetFocused(true)
	m.updateInspector()
	m.updateLayout()
	return LoadProductCmd(m.ProductsSvc, p.ID)
}

func (m *Model) leaveDetail() {
	m.Screen = m.returnTo
	m.Inspector.SetFocused(false)
	m.updateInspector()
	m.updateLayout()
}

func (m *Model) switchScreen(screen Screen) {
	m.Screen = screen
	m.Inspector.SetFocused(false)
	m.updateInspector()
	m.updateLayout()
}

func (m *Model) toggleFavorite(p *domain.Product) tea.Cmd {
	if p == nil {
		return nil
	}
	added, err := m.FavoritesSvc.Toggle(*p)
	if err != nil {
		return m.setStatus(fmt.Sprintf("Saving favorites failed: %v", err), true)
	}
	m.refreshFavorites()
	if added {
		return m.setStatus("Added to favorites: "+p.Title, false)
	}
	return m.setStatus("Removed from favorites: "+p.Title, false)
}

// requireSession opens the login modal when nobody is logged in
func (m *Model) requireSession() (bool, tea.Cmd) {
	if m.SessionSvc.Authenticated() {
		return true, nil
	}
	m.LoginModal.Show()
	return false, m.setStatus("Log in to manage products", true)
}

func (m Model) catalogTitle() string {
	st := m.catalog
	title := st.Mode.Label()
	if c := m.categoryName(st.Mode.Category); st.Mode.Kind == domain.ModeCategory && c != "" {
		title = "category: " + c
	}

	visible := len(st.VisibleItems())
	switch {
	case st.PriceRange != nil:
		title += fmt.Sprintf(" (%d of %d loaded, %s)", visible, len(st.Items), st.PriceRange)
	case st.Mode.Kind == domain.ModeListing && st.Total > 0:
		title += fmt.Sprintf(" (%d/%d)", len(st.Items), st.Total)
	default:
		title += fmt.Sprintf(" (%d)", visible)
	}
	return title
}

func (m Model) catalogEmptyText() string {
	st := m.catalog
	switch {
	case st.Loading || m.pending > 0:
		return "Loading..."
	case st.Err != nil:
		return "Could not load products. Press r to retry."
	case len(st.Items) > 0 && st.PriceRange != nil:
		return "No loaded products in this price range"
	case st.Mode.Kind == domain.ModeSearching:
		return fmt.Sprintf("No products match %q", st.Mode.Query)
	default:
		return "No products"
	}
}

func (m Model) categoryName(slug string) string {
	for _, c := range m.categories {
		if c.Slug == slug {
			return c.DisplayName()
		}
	}
	return slug
}
