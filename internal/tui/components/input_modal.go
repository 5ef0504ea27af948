package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/storefront/internal/tui/styles"
)

// InputModal is a single-line text input modal (search box)
type InputModal struct {
	visible bool
	title   string
	hint    string
	input   textinput.Model
}

// NewInputModal creates a new input modal
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 36
	ti.Prompt = "/ "

	return InputModal{
		input: ti,
	}
}

// Show displays the modal with a title, placeholder and initial value
func (m *InputModal) Show(title, placeholder, value string) {
	m.visible = true
	m.title = title
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// SetHint sets the dim line under the input
func (m *InputModal) SetHint(hint string) {
	m.hint = hint
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// Update handles input events, returns (modal, cmd, submitted).
// Esc hides the modal.
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 40

	input := m.input
	input.PromptStyle = styles.FilterPromptStyle
	input.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	input.PlaceholderStyle = styles.DimStyle

	content := lipgloss.NewStyle().Width(modalWidth).Render(input.View())
	footer := "enter apply · esc close"
	if m.hint != "" {
		footer = m.hint
	}
	return modalFrame(m.title, content, footer)
}
