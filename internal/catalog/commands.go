package catalog

import (
	"context"
	"strings"

	"github.com/mmcdole/storefront/internal/domain"
)

// LoadPage fetches one listing page and appends the products not already shown.
// Offset advances to offset+limit even when every product was a duplicate.
func (s *Sync) LoadPage(ctx context.Context, offset, limit int) error {
	s.mu.Lock()
	if s.mode.Kind != domain.ModeListing {
		s.mu.Unlock()
		return domain.ErrNotListing
	}
	if s.loading {
		s.mu.Unlock()
		return domain.ErrBusy
	}
	t := s.dispatchLocked()
	s.mu.Unlock()

	page, err := s.client.ListProducts(ctx, offset, limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.staleLocked(t) {
		s.logger.Debug("discarding stale page", "offset", offset, "mode", t.mode.Label())
		return domain.ErrSuperseded
	}
	s.loading = false

	if err != nil {
		s.err = &domain.FetchError{Op: "load page", Err: err}
		s.logger.Warn("page load failed", "offset", offset, "limit", limit, "error", err)
		return s.err
	}

	added := s.appendLocked(page.Products)
	s.total = page.Total
	s.offset = offset + limit
	s.logger.Debug("page loaded", "offset", offset, "limit", limit, "added", added,
		"dropped", len(page.Products)-added, "total", s.total)
	return nil
}

// LoadMore loads the page after the current offset (infinite scroll)
func (s *Sync) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.mode.Kind != domain.ModeListing {
		s.mu.Unlock()
		return domain.ErrNotListing
	}
	if !s.hasMoreLocked() {
		s.mu.Unlock()
		return domain.ErrNoMore
	}
	offset := s.offset
	s.mu.Unlock()

	return s.LoadPage(ctx, offset, s.pageSize)
}

// Reload returns to listing mode and loads the first page
func (s *Sync) Reload(ctx context.Context) error {
	s.ResetToListing()
	return s.LoadPage(ctx, 0, s.pageSize)
}

// Search replaces the shown products with the results for query.
// A blank query returns to the first listing page.
func (s *Sync) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Reload(ctx)
	}
	return s.replace(ctx, domain.SearchMode(query))
}

// FilterByCategory replaces the shown products with those in category.
// Selecting the active category again turns the filter off.
func (s *Sync) FilterByCategory(ctx context.Context, category string) error {
	category = strings.TrimSpace(category)

	s.mu.Lock()
	toggleOff := category == "" || (s.mode.Kind == domain.ModeCategory && s.mode.Category == category)
	s.mu.Unlock()

	if toggleOff {
		return s.Reload(ctx)
	}
	return s.replace(ctx, domain.CategoryMode(category))
}

// Retry re-runs the fetch for the current mode after a failure
func (s *Sync) Retry(ctx context.Context) error {
	s.mu.Lock()
	mode := s.mode
	offset := s.offset
	s.mu.Unlock()

	switch mode.Kind {
	case domain.ModeSearching, domain.ModeCategory:
		return s.replace(ctx, mode)
	default:
		return s.LoadPage(ctx, offset, s.pageSize)
	}
}

// ResetToListing clears the shown products and returns to listing mode.
// The price range is kept.
func (s *Sync) ResetToListing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switchModeLocked(domain.ListingMode())
}

// SetPriceRange sets the client-side price refinement
func (s *Sync) SetPriceRange(r domain.PriceRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.IsEmpty() {
		s.priceRange = nil
		return
	}
	s.priceRange = &r
}

// ClearPriceRange removes the price refinement
func (s *Sync) ClearPriceRange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceRange = nil
}

// replace switches to mode and fills the result set with one complete fetch
func (s *Sync) replace(ctx context.Context, mode domain.Mode) error {
	s.mu.Lock()
	s.switchModeLocked(mode)
	t := s.dispatchLocked()
	s.mu.Unlock()

	var (
		page *domain.Page
		err  error
		op   string
	)
	switch mode.Kind {
	case domain.ModeSearching:
		op = "search"
		page, err = s.client.SearchProducts(ctx, mode.Query)
	case domain.ModeCategory:
		op = "filter by category"
		page, err = s.client.ProductsByCategory(ctx, mode.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.staleLocked(t) {
		s.logger.Debug("discarding stale results", "mode", mode.Label())
		return domain.ErrSuperseded
	}
	s.loading = false

	if err != nil {
		s.err = &domain.FetchError{Op: op, Err: err}
		s.logger.Warn("catalog fetch failed", "mode", mode.Label(), "error", err)
		return s.err
	}

	s.appendLocked(page.Products)
	s.total = page.Total
	s.logger.Debug("results loaded", "mode", mode.Label(), "count", len(s.items), "total", s.total)
	return nil
}
