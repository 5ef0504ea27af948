package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding
	Back     key.Binding

	// Catalog
	Search      key.Binding
	Category    key.Binding
	PriceRange  key.Binding
	ClearFilter key.Binding
	Refresh     key.Binding

	// Products
	Favorite  key.Binding
	Favorites key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding

	// Session
	Login key.Binding
	Theme key.Binding

	// General
	ToggleInspector key.Binding
	Quit            key.Binding
	Help            key.Binding
	Escape          key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first item"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last item"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("h", "left", "backspace"),
			key.WithHelp("h/←", "back"),
		),

		// Catalog
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		PriceRange: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "price range"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh/retry"),
		),

		// Products
		Favorite: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f", "toggle favorite"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("F", "tab"),
			key.WithHelp("F/tab", "favorites"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add product"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit product"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete product"),
		),

		// Session
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "login/logout"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),

		// General
		ToggleInspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle details pane"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close/cancel"),
		),

		// Confirmations
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// HelpSections groups bindings for the help screen
func (k KeyMap) HelpSections() []HelpSection {
	return []HelpSection{
		{Title: "NAVIGATION", Bindings: []key.Binding{k.Up, k.Down, k.HalfUp, k.HalfDown, k.Home, k.End, k.Enter, k.Back}},
		{Title: "CATALOG", Bindings: []key.Binding{k.Search, k.Category, k.PriceRange, k.ClearFilter, k.Refresh}},
		{Title: "PRODUCTS", Bindings: []key.Binding{k.Favorite, k.Favorites, k.Add, k.Edit, k.Delete}},
		{Title: "OTHER", Bindings: []key.Binding{k.Login, k.Theme, k.ToggleInspector, k.Help, k.Escape, k.Quit}},
	}
}

// HelpSection is a titled group of bindings
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
