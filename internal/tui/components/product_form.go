package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/storefront/internal/products"
)

// ProductForm is the add/edit product modal
type ProductForm struct {
	visible bool
	editID  int // 0 when adding
	fields  fieldSet
}

// NewProductForm creates a new product form
func NewProductForm() ProductForm {
	return ProductForm{
		fields: newFieldSet(
			fieldSpec{label: "Title", key: "title", limit: 200},
			fieldSpec{label: "Description", key: "description", limit: 500},
			fieldSpec{label: "Price", key: "price", placeholder: "0.00", limit: 12},
			fieldSpec{label: "Stock", key: "stock", placeholder: "0", limit: 9},
			fieldSpec{label: "Brand", key: "brand", limit: 80},
			fieldSpec{label: "Category", key: "category", placeholder: "e.g. smartphones", limit: 80},
		),
	}
}

// ShowAdd displays an empty form; category is pre-filled when filtering by one
func (m *ProductForm) ShowAdd(category string) {
	m.visible = true
	m.editID = 0
	m.fields.reset("", "", "", "", "", category)
}

// ShowEdit displays the form pre-filled for product id
func (m *ProductForm) ShowEdit(id int, form products.Form) {
	m.visible = true
	m.editID = id
	m.fields.reset(form.Title, form.Description, form.Price, form.Stock, form.Brand, form.Category)
}

// Hide dismisses the form
func (m *ProductForm) Hide() {
	m.visible = false
	m.fields.blur()
}

// IsVisible returns whether the form is shown
func (m ProductForm) IsVisible() bool {
	return m.visible
}

// EditID returns the product being edited, 0 when adding
func (m ProductForm) EditID() int {
	return m.editID
}

// SetErrors shows per-field messages (field key -> message)
func (m *ProductForm) SetErrors(fields map[string]string) {
	m.fields.errors = fields
}

// Form returns the current field text
func (m ProductForm) Form() products.Form {
	return products.Form{
		Title:       m.fields.value(0),
		Description: m.fields.value(1),
		Price:       m.fields.value(2),
		Stock:       m.fields.value(3),
		Brand:       m.fields.value(4),
		Category:    m.fields.value(5),
	}
}

// Update handles input events; submitted is true on ctrl+s or enter on the last field
func (m ProductForm) Update(msg tea.Msg) (ProductForm, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Hide()
			return m, nil, false
		case "tab", "down":
			m.fields.next()
			return m, nil, false
		case "shift+tab", "up":
			m.fields.prev()
			return m, nil, false
		case "ctrl+s":
			return m, nil, true
		case "enter":
			if m.fields.onLast() {
				return m, nil, true
			}
			m.fields.next()
			return m, nil, false
		}
	}

	cmd := m.fields.update(msg)
	return m, cmd, false
}

// View renders the form
func (m ProductForm) View() string {
	if !m.visible {
		return ""
	}
	title := "Add product"
	if m.editID != 0 {
		title = "Edit product"
	}
	return modalFrame(title, m.fields.view(56), "tab next · ctrl+s save · esc cancel")
}
