package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is one colour scheme of the UI
type Palette struct {
	Accent     lipgloss.Color
	Surface    lipgloss.Color
	SurfaceAlt lipgloss.Color
	Dim        lipgloss.Color
	Muted      lipgloss.Color
	Text       lipgloss.Color
	Green      lipgloss.Color
	Red        lipgloss.Color
	Blue       lipgloss.Color
}

// DarkPalette is used on dark terminals
var DarkPalette = Palette{
	Accent:     lipgloss.Color("#F59E0B"),
	Surface:    lipgloss.Color("#1F2937"),
	SurfaceAlt: lipgloss.Color("#374151"),
	Dim:        lipgloss.Color("#6B7280"),
	Muted:      lipgloss.Color("#9CA3AF"),
	Text:       lipgloss.Color("#F9FAFB"),
	Green:      lipgloss.Color("#10B981"),
	Red:        lipgloss.Color("#EF4444"),
	Blue:       lipgloss.Color("#3B82F6"),
}

// LightPalette is used on light terminals
var LightPalette = Palette{
	Accent:     lipgloss.Color("#B45309"),
	Surface:    lipgloss.Color("#F3F4F6"),
	SurfaceAlt: lipgloss.Color("#E5E7EB"),
	Dim:        lipgloss.Color("#9CA3AF"),
	Muted:      lipgloss.Color("#4B5563"),
	Text:       lipgloss.Color("#111827"),
	Green:      lipgloss.Color("#047857"),
	Red:        lipgloss.Color("#B91C1C"),
	Blue:       lipgloss.Color("#1D4ED8"),
}

// Color palette (set by Apply)
var (
	Accent     lipgloss.Color
	Surface    lipgloss.Color
	SurfaceAlt lipgloss.Color
	DimGray    lipgloss.Color
	LightGray  lipgloss.Color
	White      lipgloss.Color
	Green      lipgloss.Color
	Red        lipgloss.Color
	Blue       lipgloss.Color
)

// Borders
var (
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
)

// Help styles
var (
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
)

// Badge styles
var (
	BadgeStyle    lipgloss.Style
	DimBadgeStyle lipgloss.Style
)

// Spinner and filter styles
var (
	SpinnerStyle      lipgloss.Style
	FilterStyle       lipgloss.Style
	FilterPromptStyle lipgloss.Style
)

// Row indicators
const (
	FavoriteChar    = "♥"
	NotFavoriteChar = " "
)

var dark = true

func init() {
	Apply(true)
}

// IsDark reports whether the dark palette is active
func IsDark() bool {
	return dark
}

// Apply switches every style to the dark or light palette
func Apply(useDark bool) {
	dark = useDark
	p := LightPalette
	if useDark {
		p = DarkPalette
	}

	Accent = p.Accent
	Surface = p.Surface
	SurfaceAlt = p.SurfaceAlt
	DimGray = p.Dim
	LightGray = p.Muted
	White = p.Text
	Green = p.Green
	Red = p.Red
	Blue = p.Blue

	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent)
	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray)

	TitleStyle = lipgloss.NewStyle().Foreground(White).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(LightGray)
	DimStyle = lipgloss.NewStyle().Foreground(DimGray)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Accent).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true).
		MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(Accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(DimGray)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Accent).
		Padding(0, 1)
	DimBadgeStyle = lipgloss.NewStyle().
		Foreground(LightGray).
		Background(SurfaceAlt).
		Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().Foreground(Accent)
	FilterStyle = lipgloss.NewStyle().Foreground(Accent)
	FilterPromptStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
}

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled on its own so ANSI resets do not break the background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(SurfaceAlt)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill the width, minus one margin char each side
	if padding := width - visibleLen - 2; padding > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(SurfaceAlt)
		}
		b.WriteString(padStyle.Render(strings.Repeat(" ", padding)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(SurfaceAlt)
	}
	margin := marginStyle.Render(" ")

	return margin + b.String() + margin
}

// ColorPtr returns a pointer to c for RowPart
func ColorPtr(c lipgloss.Color) *lipgloss.Color {
	return &c
}
