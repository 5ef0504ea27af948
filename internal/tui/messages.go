package tui

import (
	"fmt"

	"github.com/mmcdole/storefront/internal/domain"
)

// Message types for Bubble Tea

// ErrMsg indicates an error occurred
type ErrMsg struct {
	Err     error
	Context string
}

func (e ErrMsg) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %v", e.Context, e.Err)
	}
	return e.Err.Error()
}

// StatusMsg updates the status bar
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar
type ClearStatusMsg struct{}

// TickMsg advances the spinner
type TickMsg struct{}

// CatalogUpdatedMsg is sent when a catalog operation finished (successfully or not).
// The model re-reads the catalog snapshot on receipt.
type CatalogUpdatedMsg struct {
	Op  string
	Err error
}

// SearchDebounceMsg fires when the search input has been quiet for the debounce window.
// Only the message whose Seq is still current dispatches a search.
type SearchDebounceMsg struct {
	Seq   int
	Query string
}

// CategoriesLoadedMsg carries the category vocabulary
type CategoriesLoadedMsg struct {
	Categories []domain.Category
}

// ProductLoadedMsg carries a freshly fetched product for the detail view
type ProductLoadedMsg struct {
	Product *domain.Product
}

// ProductSavedMsg is sent after a product was added or updated
type ProductSavedMsg struct {
	Product *domain.Product
	Created bool
}

// ProductDeletedMsg is sent after a product was deleted
type ProductDeletedMsg struct {
	ID    int
	Title string
}

// LogoutCompleteMsg is sent when logout completes
type LogoutCompleteMsg struct {
	Error error
}
