package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/tui/styles"
)

// Spinner frames for loading animation
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for the product list
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// "↑ more" and "↓ more" each take 1 line
	ScrollIndicatorLines = 2
)

// ProductList is a scrollable list of products
type ProductList struct {
	items     []domain.Product
	favorites map[int]bool

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title     string
	emptyText string

	// Loading state
	loading      bool
	spinnerFrame int
}

// NewProductList creates a new product list with a title
func NewProductList(title string) ProductList {
	return ProductList{
		title:     title,
		emptyText: "No products",
		focused:   true,
	}
}

// SetItems replaces the items, keeping the cursor in range
func (l *ProductList) SetItems(items []domain.Product) {
	l.items = items
	if l.cursor >= len(items) {
		l.cursor = max(len(items)-1, 0)
	}
	l.ensureVisible()
}

// ResetCursor moves the cursor to the first item
func (l *ProductList) ResetCursor() {
	l.cursor = 0
	l.offset = 0
}

// SetFavorites sets the ids marked with a heart
func (l *ProductList) SetFavorites(ids map[int]bool) {
	l.favorites = ids
}

// SetTitle sets the header line
func (l *ProductList) SetTitle(title string) {
	l.title = title
}

// SetEmptyText sets the message shown when there are no items
func (l *ProductList) SetEmptyText(text string) {
	l.emptyText = text
}

// SetLoading toggles the loading footer
func (l *ProductList) SetLoading(loading bool) {
	l.loading = loading
}

// SetSpinnerFrame advances the spinner
func (l *ProductList) SetSpinnerFrame(frame int) {
	l.spinnerFrame = frame
}

// SetFocused sets the border highlight
func (l *ProductList) SetFocused(focused bool) {
	l.focused = focused
}

// SetSize sets the rendered size including the border
func (l *ProductList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// Len returns the number of items
func (l ProductList) Len() int {
	return len(l.items)
}

// Cursor returns the selected index
func (l ProductList) Cursor() int {
	return l.cursor
}

// Selected returns the product under the cursor
func (l ProductList) Selected() *domain.Product {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return nil
	}
	p := l.items[l.cursor]
	return &p
}

// Update handles navigation keys; moved reports whether the cursor changed
func (l ProductList) Update(msg tea.Msg) (ProductList, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.items) == 0 {
		return l, false
	}

	before := l.cursor
	count := len(l.items)
	half := max(l.maxVisible/2, 1)

	switch {
	case key.Matches(keyMsg, ProductListKeys.Down):
		l.cursor = min(l.cursor+1, count-1)
	case key.Matches(keyMsg, ProductListKeys.Up):
		l.cursor = max(l.cursor-1, 0)
	case key.Matches(keyMsg, ProductListKeys.Home):
		l.cursor = 0
	case key.Matches(keyMsg, ProductListKeys.End):
		l.cursor = count - 1
	case key.Matches(keyMsg, ProductListKeys.HalfDown):
		l.cursor = min(l.cursor+half, count-1)
	case key.Matches(keyMsg, ProductListKeys.HalfUp):
		l.cursor = max(l.cursor-half, 0)
	default:
		return l, false
	}

	l.ensureVisible()
	return l, l.cursor != before
}

// NearEnd reports whether the cursor is within threshold rows of the last item
func (l ProductList) NearEnd(threshold int) bool {
	return l.cursor >= len(l.items)-1-threshold
}

func (l *ProductList) recalcMaxVisible() {
	// Interior height minus title line and scroll indicators
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines - 1
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ProductList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

// View renders the list inside its border
func (l ProductList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent())
}

func (l ProductList) renderContent() string {
	itemWidth := max(l.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	count := len(l.items)
	if count == 0 {
		msg := styles.DimStyle.Render(l.emptyText)
		if l.loading {
			msg = l.renderLoading()
		}
		return titleLine + "\n" + " " + "\n" + msg + "\n" + " "
	}

	end := min(l.offset+l.maxVisible, count)
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderItem(l.items[i], i == l.cursor, itemWidth))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	switch {
	case l.loading && end == count:
		footer = l.renderLoading()
	case end < count:
		footer = styles.DimStyle.Render("↓ more")
	}

	return titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (l ProductList) renderLoading() string {
	spinner := SpinnerFrames[l.spinnerFrame%len(SpinnerFrames)]
	return styles.DimStyle.Render(spinner + " Loading...")
}

func (l ProductList) renderItem(p domain.Product, selected bool, width int) string {
	heart := styles.NotFavoriteChar
	if l.favorites[p.ID] {
		heart = styles.FavoriteChar
	}

	price := fmt.Sprintf("%10s", p.FormattedPrice())
	rating := fmt.Sprintf(" ★%.1f", p.Rating)
	category := ""
	if p.Category != "" {
		category = "  " + p.Category
	}

	// heart + space, price, rating, margins
	fixed := 2 + lipgloss.Width(price) + lipgloss.Width(rating) + 2
	titleWidth := width - fixed - lipgloss.Width(category)
	if titleWidth < 8 {
		category = ""
		titleWidth = width - fixed
	}
	title := styles.Pad(styles.Truncate(p.Title, max(titleWidth, 1)), max(titleWidth, 1))

	// Sold-out products show their category in red
	categoryFg := styles.DimGray
	if p.HasStock() && !p.InStock() {
		categoryFg = styles.Red
	}

	parts := []styles.RowPart{
		{Text: heart + " ", Foreground: styles.ColorPtr(styles.Red)},
		{Text: title},
		{Text: category, Foreground: &categoryFg},
		{Text: rating, Foreground: styles.ColorPtr(styles.DimGray)},
		{Text: price, Foreground: styles.ColorPtr(styles.Accent)},
	}
	return styles.RenderListRow(parts, selected, width)
}
