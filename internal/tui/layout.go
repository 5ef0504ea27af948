package tui

// Layout proportions
const (
	ListColumnPercent = 60 // Product list when the details pane is shown
	MinColumnWidth    = 30
	MinSplitWidth     = 90 // Narrower terminals never show the details pane

	// Header line + footer line
	ChromeHeight = 2
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	listWidth      int
	inspectorWidth int // 0 if not shown
}

// calculateLayout computes column widths for the current screen
func (m Model) calculateLayout(availableWidth int) columnLayout {
	if m.Screen == ScreenDetail {
		return columnLayout{inspectorWidth: availableWidth}
	}
	if !m.ShowInspector || availableWidth < MinSplitWidth {
		return columnLayout{listWidth: availableWidth}
	}
	listWidth := max(availableWidth*ListColumnPercent/100, MinColumnWidth)
	return columnLayout{
		listWidth:      listWidth,
		inspectorWidth: availableWidth - listWidth,
	}
}

// updateLayout sizes every component for the current window
func (m *Model) updateLayout() {
	if !m.Ready {
		return
	}
	contentHeight := max(m.Height-ChromeHeight, 3)
	layout := m.calculateLayout(m.Width)

	m.List.SetSize(layout.listWidth, contentHeight)
	m.FavoritesList.SetSize(layout.listWidth, contentHeight)
	m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
}
