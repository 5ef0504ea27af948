package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/storefront/internal/tui/styles"
)

// fieldSet is an ordered group of labelled text inputs with one focused field
type fieldSet struct {
	labels []string
	keys   []string // error-map key per field
	inputs []textinput.Model
	focus  int
	errors map[string]string
}

type fieldSpec struct {
	label       string
	key         string
	placeholder string
	limit       int
	password    bool
}

func newFieldSet(specs ...fieldSpec) fieldSet {
	fs := fieldSet{}
	for _, field := range specs {
		ti := textinput.New()
		ti.Placeholder = field.placeholder
		ti.CharLimit = field.limit
		ti.Width = 32
		ti.Prompt = ""
		if field.password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		fs.labels = append(fs.labels, field.label)
		fs.keys = append(fs.keys, field.key)
		fs.inputs = append(fs.inputs, ti)
	}
	return fs
}

func (fs *fieldSet) reset(values ...string) {
	fs.errors = nil
	for i := range fs.inputs {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		fs.inputs[i].SetValue(v)
		fs.inputs[i].CursorEnd()
	}
	fs.setFocus(0)
}

func (fs *fieldSet) setFocus(i int) {
	if len(fs.inputs) == 0 {
		return
	}
	fs.focus = (i + len(fs.inputs)) % len(fs.inputs)
	for j := range fs.inputs {
		if j == fs.focus {
			fs.inputs[j].Focus()
		} else {
			fs.inputs[j].Blur()
		}
	}
}

func (fs *fieldSet) blur() {
	for i := range fs.inputs {
		fs.inputs[i].Blur()
	}
}

func (fs *fieldSet) next() { fs.setFocus(fs.focus + 1) }
func (fs *fieldSet) prev() { fs.setFocus(fs.focus - 1) }

func (fs fieldSet) onLast() bool {
	return fs.focus == len(fs.inputs)-1
}

func (fs fieldSet) value(i int) string {
	return fs.inputs[i].Value()
}

// update routes msg to the focused input
func (fs *fieldSet) update(msg tea.Msg) tea.Cmd {
	if len(fs.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	fs.inputs[fs.focus], cmd = fs.inputs[fs.focus].Update(msg)
	return cmd
}

func (fs fieldSet) view(width int) string {
	labelWidth := 0
	for _, l := range fs.labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	var lines []string
	for i, ti := range fs.inputs {
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
		ti.PlaceholderStyle = styles.DimStyle
		ti.Cursor.Style = styles.AccentStyle

		label := styles.DimStyle.Render(styles.Pad(fs.labels[i], labelWidth))
		if i == fs.focus {
			label = styles.AccentStyle.Render(styles.Pad(fs.labels[i], labelWidth))
		}
		lines = append(lines, label+"  "+ti.View())

		if msg, ok := fs.errors[fs.keys[i]]; ok {
			lines = append(lines, strings.Repeat(" ", labelWidth+2)+
				styles.ErrorStyle.Render(styles.Truncate(msg, max(width-labelWidth-2, 10))))
		}
	}
	return strings.Join(lines, "\n")
}

// modalFrame wraps content in the standard modal border
func modalFrame(title, content, footer string) string {
	body := styles.ModalTitleStyle.Render(title) + "\n" + content
	if footer != "" {
		body += "\n\n" + styles.DimStyle.Render(footer)
	}
	return styles.ModalStyle.Render(body)
}

func errorLine(s string) string {
	return styles.ErrorStyle.Render(s)
}
