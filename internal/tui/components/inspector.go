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

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector displays the full record of one product
type Inspector struct {
	product    *domain.Product
	favorite   bool
	title      string
	width      int
	height     int
	offset     int // scroll offset
	maxVisible int // max visible lines
	focused    bool
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{title: "Details"}
}

// SetProduct sets the product to display
func (i *Inspector) SetProduct(p *domain.Product) {
	if p == nil || i.product == nil || p.ID != i.product.ID {
		i.offset = 0 // Reset scroll on item change
	}
	i.product = p
}

// Product returns the displayed product
func (i Inspector) Product() *domain.Product {
	return i.product
}

// SetFavorite marks the product as a favorite
func (i *Inspector) SetFavorite(favorite bool) {
	i.favorite = favorite
}

// SetFocused sets the border highlight
func (i *Inspector) SetFocused(focused bool) {
	i.focused = focused
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Reserve border, scroll indicators, title and blank line
	i.maxVisible = height - InspectorBorderHeight - InspectorScrollIndicators - 2
	if i.maxVisible < 1 {
		i.maxVisible = 1
	}
}

// HasProduct returns true if there is a product to display
func (i Inspector) HasProduct() bool {
	return i.product != nil
}

// Update scrolls the description
func (i Inspector) Update(msg tea.Msg) (Inspector, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, ProductListKeys.Down):
			i.offset = min(i.offset+1, i.maxOffset())
		case key.Matches(keyMsg, ProductListKeys.Up):
			if i.offset > 0 {
				i.offset--
			}
		case key.Matches(keyMsg, ProductListKeys.Home):
			i.offset = 0
		}
	}
	return i, nil
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder
	if i.focused {
		style = styles.ActiveBorder
	}

	contentWidth := max(i.width-3, 10)
	content := i.renderInspector(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate(i.title, contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(i.maxVisible-len(headerLines)-len(footerLines), 1)

	// Clamp body scroll offset
	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(i.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if content.header != "" {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if content.footer != "" {
		parts = append(parts, footerLines...)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

// maxOffset is the furthest the body can scroll at the current size
func (i Inspector) maxOffset() int {
	content := i.renderInspector(max(i.width-3, 10))
	available := max(i.maxVisible-len(splitLines(content.header))-len(splitLines(content.footer)), 1)
	return max(len(splitLines(content.body))-available, 0)
}

func (i Inspector) renderInspector(width int) inspectorContent {
	if i.product == nil {
		return inspectorContent{body: styles.DimStyle.Render("No product selected")}
	}
	p := *i.product
	return inspectorContent{
		header: i.renderHeader(p, width),
		body:   renderBody(p, width),
		footer: renderFooter(p, width),
	}
}

func (i Inspector) renderHeader(p domain.Product, width int) string {
	var b strings.Builder

	title := p.Title
	if i.favorite {
		title = styles.FavoriteChar + " " + title
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(title, width)))
	b.WriteString("\n")

	// Meta line: Brand · Category
	var meta []string
	if p.Brand != "" {
		meta = append(meta, p.Brand)
	}
	if p.Category != "" {
		meta = append(meta, p.Category)
	}
	if len(meta) > 0 {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(strings.Join(meta, " · "), width)))
		b.WriteString("\n")
	}

	// Price, rating and stock grouped left
	status := []string{styles.BadgeStyle.Render(p.FormattedPrice())}
	if p.Rating > 0 {
		var ratingStyle lipgloss.Style
		switch {
		case p.Rating >= 4:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Green)
		case p.Rating >= 3:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Accent)
		default:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Red)
		}
		status = append(status, ratingStyle.Render(fmt.Sprintf("★ %.1f", p.Rating)))
	}
	if label := p.StockLabel(); label != "" {
		stockStyle := styles.SuccessStyle
		if !p.InStock() {
			stockStyle = styles.ErrorStyle
		}
		status = append(status, stockStyle.Render(label))
	}
	b.WriteString(strings.Join(status, "   "))

	return b.String()
}

func renderBody(p domain.Product, width int) string {
	if p.Description == "" {
		return styles.DimStyle.Render("No description")
	}
	return lipgloss.NewStyle().Width(width).Foreground(styles.LightGray).Render(p.Description)
}

func renderFooter(p domain.Product, width int) string {
	var lines []string
	lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("ID %d", p.ID)))
	if img := p.MainImage(); img != "" {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(img, width)))
	}
	if n := len(p.Images); n > 1 {
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("+%d more images", n-1)))
	}
	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
