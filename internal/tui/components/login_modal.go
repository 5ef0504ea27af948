package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Credentials entered in the login modal
type Credentials struct {
	Email    string
	Password string
}

// LoginModal collects an email and a hidden password
type LoginModal struct {
	visible bool
	fields  fieldSet
	err     string
}

// NewLoginModal creates a new login modal
func NewLoginModal() LoginModal {
	return LoginModal{
		fields: newFieldSet(
			fieldSpec{label: "Email", key: "email", placeholder: "you@example.com", limit: 120},
			fieldSpec{label: "Password", key: "password", limit: 120, password: true},
		),
	}
}

// Show displays the modal with empty fields
func (m *LoginModal) Show() {
	m.visible = true
	m.err = ""
	m.fields.reset()
}

// Hide dismisses the modal
func (m *LoginModal) Hide() {
	m.visible = false
	m.fields.blur()
}

// IsVisible returns whether the modal is shown
func (m LoginModal) IsVisible() bool {
	return m.visible
}

// SetError shows a message under the fields (e.g. rejected credentials)
func (m *LoginModal) SetError(err string) {
	m.err = err
}

// Update handles input events. Enter on the email field moves to the password;
// enter on the password submits.
func (m LoginModal) Update(msg tea.Msg) (LoginModal, tea.Cmd, *Credentials) {
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
			if !m.fields.onLast() {
				m.fields.next()
				return m, nil, nil
			}
			return m, nil, &Credentials{Email: m.fields.value(0), Password: m.fields.value(1)}
		}
	}

	cmd := m.fields.update(msg)
	return m, cmd, nil
}

// View renders the modal
func (m LoginModal) View() string {
	if !m.visible {
		return ""
	}
	content := m.fields.view(44)
	if m.err != "" {
		content += "\n\n" + errorLine(m.err)
	}
	return modalFrame("Log in", content, "any email and password are accepted · esc close")
}
