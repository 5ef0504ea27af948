package catalog

import (
	"slices"

	"github.com/samber/lo"

	"github.com/mmcdole/storefront/internal/domain"
)

// State is a point-in-time copy of the catalog for renderers
type State struct {
	Items      []domain.Product
	Mode       domain.Mode
	Offset     int
	Total      int
	PriceRange *domain.PriceRange
	Loading    bool
	Err        error
}

// HasMore reports whether another listing page exists
func (st State) HasMore() bool {
	return st.Mode.Kind == domain.ModeListing && st.Offset < st.Total
}

// VisibleItems returns Items refined by the price range
func (st State) VisibleItems() []domain.Product {
	return filterByPrice(st.Items, st.PriceRange)
}

// Snapshot returns a deep copy of the current state
func (s *Sync) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Items:   lo.Map(s.items, func(p domain.Product, _ int) domain.Product { return cloneProduct(p) }),
		Mode:    s.mode,
		Offset:  s.offset,
		Total:   s.total,
		Loading: s.loading,
		Err:     s.err,
	}
	if s.priceRange != nil {
		r := *s.priceRange
		st.PriceRange = &r
	}
	return st
}

// VisibleItems returns the shown products refined by the price range
func (s *Sync) VisibleItems() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterByPrice(s.items, s.priceRange)
}

// HasMore reports whether LoadMore would fetch another page
func (s *Sync) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMoreLocked()
}

func (s *Sync) hasMoreLocked() bool {
	return s.mode.Kind == domain.ModeListing && s.offset < s.total
}

// Mode returns the active mode
func (s *Sync) Mode() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Loading reports whether a fetch is outstanding
func (s *Sync) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error of the last fetch, if any
func (s *Sync) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// PriceRange returns the active price refinement, or nil
func (s *Sync) PriceRange() *domain.PriceRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.priceRange == nil {
		return nil
	}
	r := *s.priceRange
	return &r
}

func filterByPrice(items []domain.Product, r *domain.PriceRange) []domain.Product {
	if r == nil || r.IsEmpty() {
		return slices.Clone(items)
	}
	return lo.Filter(items, func(p domain.Product, _ int) bool {
		return r.Contains(p.Price)
	})
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = slices.Clone(p.Images)
	if p.Stock != nil {
		stock := *p.Stock
		p.Stock = &stock
	}
	return p
}
