package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

const (
	categoryPickerWidth   = 32
	categoryPickerVisible = 12
	allProductsLabel      = "All products"
)

// CategorySelection is the user's category choice; an empty Slug means all products
type CategorySelection struct {
	Slug string
}

// categorySource adapts categories to fuzzy.Source (lowercased display names)
type categorySource []domain.Category

func (s categorySource) String(i int) string {
	return strings.ToLower(s[i].DisplayName() + " " + s[i].Slug)
}

func (s categorySource) Len() int {
	return len(s)
}

// pickerRow is one selectable line
type pickerRow struct {
	slug    string
	label   string
	matches []int // matched byte positions in label
}

// CategoryPicker is a popup for choosing a category with a fuzzy filter
type CategoryPicker struct {
	visible    bool
	categories []domain.Category
	active     string
	rows       []pickerRow
	cursor     int
	offset     int
	filter     textinput.Model
}

// NewCategoryPicker creates a new category picker
func NewCategoryPicker() CategoryPicker {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "> "
	ti.CharLimit = 40
	ti.Width = categoryPickerWidth - 4
	return CategoryPicker{filter: ti}
}

// SetCategories replaces the vocabulary
func (m *CategoryPicker) SetCategories(categories []domain.Category) {
	m.categories = categories
	m.applyFilter()
}

// Show displays the picker with the cursor on the active category
func (m *CategoryPicker) Show(active string) {
	m.visible = true
	m.active = active
	m.filter.SetValue("")
	m.filter.Focus()
	m.applyFilter()
	for i, row := range m.rows {
		if row.slug == active {
			m.cursor = i
			break
		}
	}
	m.ensureVisible()
}

// Hide dismisses the picker
func (m *CategoryPicker) Hide() {
	m.visible = false
	m.filter.Blur()
}

// IsVisible returns whether the picker is shown
func (m CategoryPicker) IsVisible() bool {
	return m.visible
}

// Query returns the current filter text
func (m CategoryPicker) Query() string {
	return m.filter.Value()
}

// Filtered returns the slugs currently listed, in display order
func (m CategoryPicker) Filtered() []string {
	slugs := make([]string, len(m.rows))
	for i, row := range m.rows {
		slugs[i] = row.slug
	}
	return slugs
}

// HandleKey processes a key press, returns (handled, cmd, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *CategoryPicker) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd, *CategorySelection) {
	if !m.visible {
		return false, nil, nil
	}

	switch msg.String() {
	case "down", "ctrl+n", "ctrl+j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.ensureVisible()
		}
		return true, nil, nil
	case "up", "ctrl+p", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
		return true, nil, nil
	case "enter":
		if len(m.rows) == 0 {
			return true, nil, nil
		}
		chosen := m.rows[m.cursor]
		m.Hide()
		return true, nil, &CategorySelection{Slug: chosen.slug}
	case "esc":
		m.Hide()
		return true, nil, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return true, cmd, nil // consume all keys when visible
}

func (m *CategoryPicker) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	rows := make([]pickerRow, 0, len(m.categories)+1)

	if query == "" {
		rows = append(rows, pickerRow{label: allProductsLabel})
		for _, c := range m.categories {
			rows = append(rows, pickerRow{slug: c.Slug, label: c.DisplayName()})
		}
	} else {
		for _, match := range fuzzy.FindFrom(query, categorySource(m.categories)) {
			c := m.categories[match.Index]
			label := c.DisplayName()
			// Highlight only positions that fall inside the display name
			var inLabel []int
			for _, idx := range match.MatchedIndexes {
				if idx < len(label) {
					inLabel = append(inLabel, idx)
				}
			}
			rows = append(rows, pickerRow{slug: c.Slug, label: label, matches: inLabel})
		}
	}

	m.rows = rows
	m.cursor = 0
	m.offset = 0
}

func (m *CategoryPicker) ensureVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+categoryPickerVisible {
		m.offset = m.cursor - categoryPickerVisible + 1
	}
}

// View renders the picker
func (m CategoryPicker) View() string {
	if !m.visible {
		return ""
	}

	filter := m.filter
	filter.PromptStyle = styles.FilterPromptStyle
	filter.TextStyle = styles.FilterStyle
	filter.PlaceholderStyle = styles.DimStyle

	var lines []string
	lines = append(lines, filter.View(), "")

	if len(m.rows) == 0 {
		lines = append(lines, styles.DimStyle.Render("No matches"))
	}

	end := min(m.offset+categoryPickerVisible, len(m.rows))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(m.rows[i], i == m.cursor))
	}
	if end < len(m.rows) {
		lines = append(lines, styles.DimStyle.Render("↓ more"))
	}

	return modalFrame("Category", strings.Join(lines, "\n"), "enter select · esc close")
}

func (m CategoryPicker) renderRow(row pickerRow, selected bool) string {
	prefix := "  "
	if row.slug == m.active {
		prefix = "✓ "
	}

	text := highlightMatches(styles.Truncate(row.label, categoryPickerWidth-4), row.matches)
	line := prefix + text

	style := lipgloss.NewStyle().Foreground(styles.LightGray)
	switch {
	case selected:
		style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SurfaceAlt)
	case row.slug == m.active:
		style = lipgloss.NewStyle().Foreground(styles.Accent)
	}
	return style.Render(styles.Pad(line, categoryPickerWidth))
}

// highlightMatches bolds matched byte positions of s
func highlightMatches(s string, matches []int) string {
	if len(matches) == 0 {
		return s
	}
	hit := make(map[int]bool, len(matches))
	for _, idx := range matches {
		hit[idx] = true
	}
	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(styles.AccentStyle.Bold(true).Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
