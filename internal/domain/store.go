package domain

// Store handles local persistence (BoltDB + memory).
// Values are opaque blobs to callers; nothing here is a source of truth for the catalog.
type Store interface {
	// === Session ===
	GetSession() (*Session, bool)
	SaveSession(session Session) error
	ClearSession() error

	// === Preferences ===
	GetTheme() (string, bool)
	SaveTheme(theme string) error

	// === Favorites ===
	GetFavorites() ([]Product, bool)
	SaveFavorites(products []Product) error

	// === Category vocabulary ===
	GetCategories() ([]Category, bool)
	SaveCategories(categories []Category) error

	// === Invalidation ===
	InvalidateCache() error // Drops refetchable data only

	Close() error
}
