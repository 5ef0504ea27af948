package domain

import "context"

// ModeKind identifies how the catalog list is being populated
type ModeKind int

const (
	ModeListing   ModeKind = iota // Paged listing of the whole collection
	ModeSearching                 // Free-text search results
	ModeCategory                  // Single category results
)

// String returns the display name of the mode kind
func (k ModeKind) String() string {
	switch k {
	case ModeSearching:
		return "search"
	case ModeCategory:
		return "category"
	default:
		return "listing"
	}
}

// Mode is the active data-acquisition strategy. Modes are mutually exclusive and
// comparable: two fetches belong to the same mode iff their Modes are equal.
type Mode struct {
	Kind     ModeKind
	Query    string // Set only for ModeSearching
	Category string // Set only for ModeCategory
}

// ListingMode returns the paged listing mode
func ListingMode() Mode { return Mode{Kind: ModeListing} }

// SearchMode returns the search mode for query
func SearchMode(query string) Mode { return Mode{Kind: ModeSearching, Query: query} }

// CategoryMode returns the category filter mode for category
func CategoryMode(category string) Mode { return Mode{Kind: ModeCategory, Category: category} }

// Label returns a short description for status lines
func (m Mode) Label() string {
	switch m.Kind {
	case ModeSearching:
		return "search: " + m.Query
	case ModeCategory:
		return "category: " + m.Category
	default:
		return "all products"
	}
}

// Page is one response of the remote collection
type Page struct {
	Products []Product
	Total    int // Server-reported total for the query
	Skip     int
	Limit    int
}

// CatalogClient: read-side network operations used by the catalog sync
type CatalogClient interface {
	// ListProducts returns one page of the unfiltered collection
	ListProducts(ctx context.Context, skip, limit int) (*Page, error)

	// SearchProducts returns the complete result set for a free-text query
	SearchProducts(ctx context.Context, query string) (*Page, error)

	// ProductsByCategory returns the complete result set for a category
	ProductsByCategory(ctx context.Context, category string) (*Page, error)

	// Categories returns the remote category vocabulary
	Categories(ctx context.Context) ([]Category, error)
}

// ProductRepository: CRUD network operations (implemented by source clients)
type ProductRepository interface {
	GetProduct(ctx context.Context, id int) (*Product, error)
	AddProduct(ctx context.Context, draft ProductDraft) (*Product, error)
	UpdateProduct(ctx context.Context, id int, draft ProductDraft) (*Product, error)
	DeleteProduct(ctx context.Context, id int) error
}
