package dummyjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/mmcdole/storefront/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "Storefront/1.0"
	maxErrorBody   = 4096
)

// Options tunes the transport policy
type Options struct {
	Timeout         time.Duration // Per-attempt timeout
	RetryMax        int
	RetryWaitMin    time.Duration
	RetryWaitMax    time.Duration
	BreakerFailures uint32 // Consecutive failures before the breaker opens; 0 disables tripping
	BreakerCooldown time.Duration
}

// DefaultOptions mirrors the config defaults
func DefaultOptions() Options {
	return Options{
		Timeout:         defaultTimeout,
		RetryMax:        3,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    4 * time.Second,
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
	}
}

// Client implements domain.CatalogClient and domain.ProductRepository for dummyjson
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	group      singleflight.Group
	logger     *slog.Logger
}

// NewClient creates a new dummyjson API client
func NewClient(baseURL string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = opts.Timeout
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = opts.RetryWaitMin
	rc.RetryWaitMax = opts.RetryWaitMax
	rc.Logger = logger
	// Hand the final response back instead of a "giving up" error so statuses can be mapped
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: rc,
		breaker:    newBreaker(opts),
		logger:     logger,
	}
}

func newBreaker(opts Options) *gobreaker.CircuitBreaker[[]byte] {
	st := gobreaker.Settings{
		Name:        "dummyjson",
		MaxRequests: 1,
		Timeout:     opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return opts.BreakerFailures > 0 && counts.ConsecutiveFailures >= opts.BreakerFailures
		},
		// Client errors and cancellations say nothing about server health
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *domain.APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status < http.StatusInternalServerError
			}
			return errors.Is(err, domain.ErrProductNotFound) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
	}
	return gobreaker.NewCircuitBreaker[[]byte](st)
}

// doRequest performs a JSON request through the breaker and the retrying transport
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	respBody, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, method, reqURL, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("catalog circuit open", "method", method, "url", reqURL)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	return respBody, err
}

func (c *Client) roundTrip(ctx context.Context, method, reqURL string, body []byte) ([]byte, error) {
	var reqBody any
	if body != nil {
		reqBody = body
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("catalog request", "method", method, "url", reqURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("catalog request failed", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("catalog request error", "request_id", requestID, "status", resp.StatusCode,
			"body", string(respBody[:min(len(respBody), maxErrorBody)]))
		return nil, &domain.APIError{Status: resp.StatusCode, Message: errorMessage(respBody)}
	}

	return respBody, nil
}

func errorMessage(body []byte) string {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		return er.Message
	}
	return ""
}

func decode[T any](body []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &v, nil
}

func (c *Client) getPage(ctx context.Context, path string, query url.Values) (*domain.Page, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	resp, err := decode[ProductsResponse](body)
	if err != nil {
		c.logger.Error("JSON parse error", "path", path, "error", err, "bodyLen", len(body))
		return nil, err
	}
	return MapPage(resp), nil
}

// ListProducts returns one page of the unfiltered collection
func (c *Client) ListProducts(ctx context.Context, skip, limit int) (*domain.Page, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))
	return c.getPage(ctx, "/products", query)
}

// SearchProducts returns every product matching query.
// limit=0 asks dummyjson for the whole result set instead of its default 30.
func (c *Client) SearchProducts(ctx context.Context, query string) (*domain.Page, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", "0")
	return c.getPage(ctx, "/products/search", q)
}

// ProductsByCategory returns every product in category
func (c *Client) ProductsByCategory(ctx context.Context, category string) (*domain.Page, error) {
	q := url.Values{}
	q.Set("limit", "0")
	return c.getPage(ctx, "/products/category/"+url.PathEscape(category), q)
}

// Categories returns the normalized category vocabulary.
// Concurrent callers share one request.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	v, err, shared := c.group.Do("categories", func() (any, error) {
		body, err := c.doRequest(ctx, http.MethodGet, "/products/categories", nil, nil)
		if err != nil {
			return nil, err
		}
		raw, err := decode[CategoriesResponse](body)
		if err != nil {
			return nil, err
		}
		return MapCategories(*raw), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("categories request shared")
	}
	return v.([]domain.Category), nil
}

// GetProduct returns a single product
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	body, err := c.doRequest(ctx, http.MethodGet, productPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeProduct(body)
}

// AddProduct creates a product; dummyjson simulates the write and echoes it with a new id
func (c *Client) AddProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/products/add", nil, MapDraft(draft))
	if err != nil {
		return nil, err
	}
	return c.decodeProduct(body)
}

// UpdateProduct patches a product with the draft fields
func (c *Client) UpdateProduct(ctx context.Context, id int, draft domain.ProductDraft) (*domain.Product, error) {
	body, err := c.doRequest(ctx, http.MethodPatch, productPath(id), nil, MapDraft(draft))
	if err != nil {
		return nil, err
	}
	return c.decodeProduct(body)
}

// DeleteProduct deletes a product
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	body, err := c.doRequest(ctx, http.MethodDelete, productPath(id), nil, nil)
	if err != nil {
		return err
	}
	dto, err := decode[ProductDTO](body)
	if err != nil {
		return err
	}
	c.logger.Info("product deleted", "id", id, "is_deleted", dto.IsDeleted, "deleted_on", dto.DeletedOn)
	return nil
}

func (c *Client) decodeProduct(body []byte) (*domain.Product, error) {
	dto, err := decode[ProductDTO](body)
	if err != nil {
		return nil, err
	}
	p := MapProduct(*dto)
	return &p, nil
}

func productPath(id int) string {
	return "/products/" + strconv.Itoa(id)
}

// Ping checks the catalog is reachable
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("limit", "1")
	query.Set("select", "id")
	_, err := c.doRequest(ctx, http.MethodGet, "/products", query, nil)
	return err
}

var (
	_ domain.CatalogClient     = (*Client)(nil)
	_ domain.ProductRepository = (*Client)(nil)
)
