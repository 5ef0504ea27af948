// Package favorites keeps the user's saved products in the local store.
package favorites

import (
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"

	"github.com/mmcdole/storefront/internal/domain"
)

// Service manages favorite products. Each favorite is a snapshot of the product
// at the time it was saved.
type Service struct {
	store  domain.Store
	logger *slog.Logger

	mu    sync.Mutex
	items []domain.Product
}

// NewService creates a favorites service and loads saved favorites
func NewService(store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	items, _ := store.GetFavorites()
	logger.Debug("loaded favorites", "count", len(items))
	return &Service{store: store, logger: logger, items: items}
}

// Toggle adds the product when absent and removes it otherwise.
// Returns true when the product was added. The list is unchanged when saving fails.
func (s *Service) Toggle(p domain.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexLocked(p.ID); idx >= 0 {
		return false, s.commitLocked(slices.Delete(slices.Clone(s.items), idx, idx+1))
	}
	return true, s.commitLocked(append(slices.Clone(s.items), p))
}

// Remove drops the product with id; unknown ids are ignored
func (s *Service) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}
	return s.commitLocked(slices.Delete(slices.Clone(s.items), idx, idx+1))
}

// IsFavorite reports whether id is saved
func (s *Service) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(id) >= 0
}

// IDs returns the saved product ids as a set
func (s *Service) IDs() map[int]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.SliceToMap(s.items, func(p domain.Product) (int, bool) { return p.ID, true })
}

// List returns favorites in the order they were saved
func (s *Service) List() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Count returns the number of favorites
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Find returns favorites whose title fuzzily matches query, best match first.
// A blank query returns every favorite.
func (s *Service) Find(query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	items := s.List()
	if query == "" {
		return items
	}

	titles := lo.Map(items, func(p domain.Product, _ int) string { return p.Title })
	matches := fuzzy.RankFindFold(query, titles)

	// Sort by distance (lower is better), keeping saved order for ties
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	return lo.Map(matches, func(m fuzzy.Rank, _ int) domain.Product {
		return items[m.OriginalIndex]
	})
}

func (s *Service) indexLocked(id int) int {
	return slices.IndexFunc(s.items, func(p domain.Product) bool { return p.ID == id })
}

// commitLocked saves next and only then makes it the current list
func (s *Service) commitLocked(next []domain.Product) error {
	if err := s.store.SaveFavorites(next); err != nil {
		s.logger.Error("failed to save favorites", "error", err)
		return err
	}
	s.items = next
	return nil
}
