// Package catalog keeps the client-side view of the remote product collection
// consistent across paging, search and category filtering.
package catalog

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/storefront/internal/domain"
)

// DefaultPageSize is the listing page size used when none is configured
const DefaultPageSize = 10

// Sync owns the catalog state. Transitions block for the duration of their
// fetch and are safe to call from multiple goroutines.
//
// Every mode switch bumps a generation counter; a fetch that completes after
// its generation has moved on is discarded with domain.ErrSuperseded.
type Sync struct {
	client   domain.CatalogClient
	pageSize int
	logger   *slog.Logger

	mu         sync.Mutex
	items      []domain.Product
	seen       map[int]struct{} // IDs present in items
	mode       domain.Mode
	offset     int
	total      int
	priceRange *domain.PriceRange
	loading    bool
	err        error
	generation uint64
}

// ticket identifies the mode generation a fetch was dispatched for
type ticket struct {
	generation uint64
	mode       domain.Mode
}

// NewSync creates an empty catalog in listing mode
func NewSync(client domain.CatalogClient, pageSize int, logger *slog.Logger) *Sync {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Sync{
		client:   client,
		pageSize: pageSize,
		logger:   logger,
		seen:     make(map[int]struct{}),
		mode:     domain.ListingMode(),
	}
}

// PageSize returns the listing page size
func (s *Sync) PageSize() int {
	return s.pageSize
}

// dispatchLocked marks a fetch outstanding for the current generation
func (s *Sync) dispatchLocked() ticket {
	s.loading = true
	s.err = nil
	return ticket{generation: s.generation, mode: s.mode}
}

// staleLocked reports whether the mode changed since t was issued
func (s *Sync) staleLocked(t ticket) bool {
	return t.generation != s.generation
}

// switchModeLocked enters mode with an empty result set and invalidates in-flight fetches
func (s *Sync) switchModeLocked(mode domain.Mode) {
	s.generation++
	s.mode = mode
	s.items = nil
	s.seen = make(map[int]struct{})
	s.offset = 0
	s.total = 0
	s.err = nil
	s.loading = false
}

// appendLocked adds products whose ID is not yet present and returns how many were added
func (s *Sync) appendLocked(products []domain.Product) int {
	added := 0
	for _, p := range products {
		if _, dup := s.seen[p.ID]; dup {
			continue
		}
		s.seen[p.ID] = struct{}{}
		s.items = append(s.items, p)
		added++
	}
	return added
}
