package components

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Price input errors
var (
	ErrPriceNotNumber = errors.New("prices must be numbers")
	ErrPriceNegative  = errors.New("prices cannot be negative")
	ErrPriceInverted  = errors.New("min price is above max price")
)

// ParsePriceRange converts the min/max text into a range.
// Blank inputs leave that bound open; both blank yields an empty range (clear).
func ParsePriceRange(minText, maxText string) (domain.PriceRange, error) {
	lower, err := parseBound(minText)
	if err != nil {
		return domain.PriceRange{}, err
	}
	upper, err := parseBound(maxText)
	if err != nil {
		return domain.PriceRange{}, err
	}
	if lower != nil && upper != nil && lower.GreaterThan(*upper) {
		return domain.PriceRange{}, ErrPriceInverted
	}
	return domain.NewPriceRange(lower, upper), nil
}

func parseBound(text string) (*decimal.Decimal, error) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "$"))
	if text == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, ErrPriceNotNumber
	}
	if d.IsNegative() {
		return nil, ErrPriceNegative
	}
	return &d, nil
}

// PriceModal edits the client-side price range
type PriceModal struct {
	visible bool
	fields  fieldSet
	err     error
}

// NewPriceModal creates a new price range modal
func NewPriceModal() PriceModal {
	return PriceModal{
		fields: newFieldSet(
			fieldSpec{label: "Min $", key: "min", placeholder: "0", limit: 12},
			fieldSpec{label: "Max $", key: "max", placeholder: "no limit", limit: 12},
		),
	}
}

// Show displays the modal pre-filled with the current range
func (m *PriceModal) Show(current *domain.PriceRange) {
	m.visible = true
	m.err = nil
	var lower, upper string
	if current != nil {
		if current.Min.Valid {
			lower = current.Min.Decimal.String()
		}
		if current.Max.Valid {
			upper = current.Max.Decimal.String()
		}
	}
	m.fields.reset(lower, upper)
}

// Hide dismisses the modal
func (m *PriceModal) Hide() {
	m.visible = false
	m.fields.blur()
}

// IsVisible returns whether the modal is shown
func (m PriceModal) IsVisible() bool {
	return m.visible
}

// Update handles input events. On a valid submit it returns the parsed range
// (empty when both inputs are blank) and hides itself.
func (m PriceModal) Update(msg tea.Msg) (PriceModal, tea.Cmd, *domain.PriceRange) {
	if !m.visible {
		return m, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Hide()
			return m, nil, nil
		case "tab", "down":
			m.fields.next()
			return m, nil, nil
		case "shift+tab", "up":
			m.fields.prev()
			return m, nil, nil
		case "enter":
			r, err := ParsePriceRange(m.fields.value(0), m.fields.value(1))
			if err != nil {
				m.err = err
				return m, nil, nil
			}
			m.Hide()
			return m, nil, &r
		}
	}

	m.err = nil
	cmd := m.fields.update(msg)
	return m, cmd, nil
}

// View renders the modal
func (m PriceModal) View() string {
	if !m.visible {
		return ""
	}
	content := m.fields.view(40)
	if m.err != nil {
		content += "\n\n" + errorLine(m.err.Error())
	}
	return modalFrame("Price range", content, "tab next · enter apply · blank both to clear · esc close")
}
