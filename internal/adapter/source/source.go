package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/storefront/internal/adapter"
	"github.com/mmcdole/storefront/internal/adapter/source/dummyjson"
	"github.com/mmcdole/storefront/internal/domain"
)

// CatalogSource combines the interfaces a catalog backend must implement.
type CatalogSource interface {
	domain.CatalogClient     // Read side: listing, search, category, vocabulary
	domain.ProductRepository // Write side: get, add, update, delete

	// Ping checks the catalog is reachable
	Ping(ctx context.Context) error
}

// NewClient creates a CatalogSource for the catalog API at baseURL
func NewClient(baseURL string, opts dummyjson.Options, logger *slog.Logger) (CatalogSource, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("server URL is required")
	}
	return dummyjson.NewClient(baseURL, opts, logger), nil
}

// NewClientFromConfig creates a CatalogSource from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (CatalogSource, error) {
	return NewClient(cfg.Server.URL, dummyjson.Options{
		Timeout:         cfg.Server.Timeout,
		RetryMax:        cfg.Server.RetryMax,
		RetryWaitMin:    cfg.Server.RetryWaitMin,
		RetryWaitMax:    cfg.Server.RetryWaitMax,
		BreakerFailures: cfg.Server.BreakerFailures,
		BreakerCooldown: cfg.Server.BreakerCooldown,
	}, logger)
}
