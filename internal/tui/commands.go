package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/storefront/internal/catalog"
	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/products"
	"github.com/mmcdole/storefront/internal/session"
)

// Command factories for async operations

// catalogCmd runs one catalog operation off the UI goroutine.
// No timeout here; the transport applies its own.
func catalogCmd(op string, run func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return CatalogUpdatedMsg{Op: op, Err: run(context.Background())}
	}
}

// LoadPageCmd loads one listing page
func LoadPageCmd(sync *catalog.Sync, offset, limit int) tea.Cmd {
	return catalogCmd("load page", func(ctx context.Context) error {
		return sync.LoadPage(ctx, offset, limit)
	})
}

// LoadMoreCmd loads the next listing page
func LoadMoreCmd(sync *catalog.Sync) tea.Cmd {
	return catalogCmd("load more", sync.LoadMore)
}

// ReloadCmd resets to the listing and loads the first page
func ReloadCmd(sync *catalog.Sync) tea.Cmd {
	return catalogCmd("reload", sync.Reload)
}

// SearchCmd replaces the list with the results for query
func SearchCmd(sync *catalog.Sync, query string) tea.Cmd {
	return catalogCmd("search", func(ctx context.Context) error {
		return sync.Search(ctx, query)
	})
}

// FilterCategoryCmd replaces the list with one category (or toggles back to the listing)
func FilterCategoryCmd(sync *catalog.Sync, category string) tea.Cmd {
	return catalogCmd("filter by category", func(ctx context.Context) error {
		return sync.FilterByCategory(ctx, category)
	})
}

// RetryCmd re-runs the fetch of the current mode
func RetryCmd(sync *catalog.Sync) tea.Cmd {
	return catalogCmd("retry", sync.Retry)
}

// DebounceSearchCmd schedules a search for query after delay
func DebounceSearchCmd(seq int, query string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq, Query: query}
	})
}

// LoadCategoriesCmd loads the category vocabulary (cache first)
func LoadCategoriesCmd(categories *catalog.Categories) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		list, err := categories.Load(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading categories"}
		}
		return CategoriesLoadedMsg{Categories: list}
	}
}

// RefreshCategoriesCmd re-fetches the category vocabulary from the server.
// Failures are logged; the cached vocabulary stays in use.
func RefreshCategoriesCmd(categories *catalog.Categories) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		list, err := categories.Fetch(ctx)
		if err != nil {
			slog.Warn("category refresh failed", "error", err)
			return nil
		}
		return CategoriesLoadedMsg{Categories: list}
	}
}

// LoadProductCmd fetches a single product for the detail view
func LoadProductCmd(svc *products.Service, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		p, err := svc.Get(ctx, id)
		if err != nil {
			// Locally created products are never persisted remotely
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil
			}
			return ErrMsg{Err: err, Context: "loading product"}
		}
		return ProductLoadedMsg{Product: p}
	}
}

// SaveProductCmd adds (id == 0) or updates a product
func SaveProductCmd(svc *products.Service, id int, draft domain.ProductDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if id == 0 {
			p, err := svc.Create(ctx, draft)
			if err != nil {
				return ErrMsg{Err: err, Context: "adding product"}
			}
			return ProductSavedMsg{Product: p, Created: true}
		}

		p, err := svc.Update(ctx, id, draft)
		if err != nil {
			return ErrMsg{Err: err, Context: "updating product"}
		}
		return ProductSavedMsg{Product: p}
	}
}

// DeleteProductCmd deletes a product
func DeleteProductCmd(svc *products.Service, p domain.Product) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.Delete(ctx, p.ID); err != nil {
			return ErrMsg{Err: err, Context: "deleting product"}
		}
		return ProductDeletedMsg{ID: p.ID, Title: p.Title}
	}
}

// LogoutCmd ends the session
func LogoutCmd(svc *session.Service) tea.Cmd {
	return func() tea.Msg {
		return LogoutCompleteMsg{Error: svc.Logout()}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// isQuietCatalogErr reports outcomes that need no user feedback
func isQuietCatalogErr(err error) bool {
	return errors.Is(err, domain.ErrSuperseded) ||
		errors.Is(err, domain.ErrBusy) ||
		errors.Is(err, domain.ErrNoMore) ||
		errors.Is(err, domain.ErrNotListing)
}
