package catalog

import (
	"context"
	"log/slog"

	"github.com/mmcdole/storefront/internal/domain"
)

// Categories serves the category vocabulary, caching it in the local store
type Categories struct {
	client domain.CatalogClient
	store  domain.Store
	logger *slog.Logger
}

// NewCategories creates a new category vocabulary service
func NewCategories(client domain.CatalogClient, store domain.Store, logger *slog.Logger) *Categories {
	if logger == nil {
		logger = slog.Default()
	}
	return &Categories{client: client, store: store, logger: logger}
}

// Fetch loads the vocabulary from the server and caches it
func (c *Categories) Fetch(ctx context.Context) ([]domain.Category, error) {
	categories, err := c.client.Categories(ctx)
	if err != nil {
		c.logger.Error("failed to fetch categories", "error", err)
		return nil, err
	}
	if err := c.store.SaveCategories(categories); err != nil {
		c.logger.Error("failed to save categories", "error", err)
	}
	c.logger.Debug("fetched categories", "count", len(categories))
	return categories, nil
}

// Cached returns the stored vocabulary without touching the network
func (c *Categories) Cached() ([]domain.Category, bool) {
	return c.store.GetCategories()
}

// Load returns the cached vocabulary when present, else fetches it
func (c *Categories) Load(ctx context.Context) ([]domain.Category, error) {
	if categories, ok := c.Cached(); ok && len(categories) > 0 {
		c.logger.Debug("categories from cache", "count", len(categories))
		return categories, nil
	}
	return c.Fetch(ctx)
}
