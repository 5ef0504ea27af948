package dummyjson

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/domain"
)

func testOptions() Options {
	return Options{
		Timeout:         2 * time.Second,
		RetryMax:        2,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    2 * time.Millisecond,
		BreakerFailures: 3,
		BreakerCooldown: time.Minute,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, testOptions(), nil)
}

const productJSON = `{"id":1,"title":"Essence Mascara","description":"Lengthening mascara","category":"beauty",
"price":9.99,"rating":4.94,"stock":5,"brand":"Essence","images":["a.png",""],"thumbnail":"t.png"}`

func Test_Client_ListProducts(t *testing.T) {
	// given
	var gotPath, gotQuery, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = io.WriteString(w, `{"products":[`+productJSON+`],"total":194,"skip":10,"limit":10}`)
	})

	// when
	page, err := client.ListProducts(context.Background(), 10, 10)

	// then
	require.NoError(t, err)
	assert.Equal(t, "/products", gotPath)
	assert.Equal(t, "limit=10&skip=10", gotQuery)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, 194, page.Total)
	require.Len(t, page.Products, 1)

	p := page.Products[0]
	assert.Equal(t, 1, p.ID)
	assert.True(t, decimal.RequireFromString("9.99").Equal(p.Price))
	assert.Equal(t, []string{"a.png"}, p.Images)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 5, *p.Stock)
}

func Test_Client_RequestPaths(t *testing.T) {
	testCases := []struct {
		name      string
		call      func(c *Client) error
		wantPath  string
		wantQuery string
	}{
		{
			name: "search escapes the query",
			call: func(c *Client) error {
				_, err := c.SearchProducts(context.Background(), "red phone&co")
				return err
			},
			wantPath:  "/products/search",
			wantQuery: "limit=0&q=red+phone%26co",
		},
		{
			name: "category is path escaped",
			call: func(c *Client) error {
				_, err := c.ProductsByCategory(context.Background(), "home decoration")
				return err
			},
			wantPath:  "/products/category/home%20decoration",
			wantQuery: "limit=0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var gotPath, gotQuery string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.EscapedPath()
				gotQuery = r.URL.RawQuery
				_, _ = io.WriteString(w, `{"products":[],"total":0,"skip":0,"limit":0}`)
			})
			// when
			err := tc.call(client)
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.wantPath, gotPath)
			assert.Equal(t, tc.wantQuery, gotQuery)
		})
	}
}

func Test_Client_Categories_NormalizesShapes(t *testing.T) {
	// given
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		_, _ = io.WriteString(w, `["beauty",{"slug":"home-decoration","name":"Home Decoration","url":"x"},
			{"name":"Misc"},"beauty",""]`)
	})

	// when
	categories, err := client.Categories(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{Slug: "beauty"},
		{Slug: "home-decoration", Name: "Home Decoration"},
		{Slug: "Misc", Name: "Misc"},
	}, categories)
}

func Test_Client_Categories_SharesConcurrentCalls(t *testing.T) {
	// given
	var calls atomic.Int32
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = io.WriteString(w, `["beauty"]`)
	})

	// when
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Categories(context.Background())
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	// then
	assert.Equal(t, int32(1), calls.Load())
}

func Test_Client_StatusMapping(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		wantAPI   int
		wantMsg   string
		wantCalls int32
	}{
		{
			name:      "404 maps to product not found",
			status:    http.StatusNotFound,
			body:      `{"message":"Product with id '999' not found"}`,
			wantErr:   domain.ErrProductNotFound,
			wantCalls: 1,
		},
		{
			name:      "400 maps to api error without retry",
			status:    http.StatusBadRequest,
			body:      `{"message":"Invalid id"}`,
			wantAPI:   http.StatusBadRequest,
			wantMsg:   "Invalid id",
			wantCalls: 1,
		},
		{
			name:      "500 is retried then surfaced",
			status:    http.StatusInternalServerError,
			body:      `oops`,
			wantAPI:   http.StatusInternalServerError,
			wantCalls: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var calls atomic.Int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			// when
			_, err := client.GetProduct(context.Background(), 999)

			// then
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantAPI != 0 {
				var apiErr *domain.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tc.wantAPI, apiErr.Status)
				assert.Equal(t, tc.wantMsg, apiErr.Message)
			}
			assert.Equal(t, tc.wantCalls, calls.Load())
		})
	}
}

func Test_Client_RetriesThenSucceeds(t *testing.T) {
	// given
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, productJSON)
	})

	// when
	p, err := client.GetProduct(context.Background(), 1)

	// then
	require.NoError(t, err)
	assert.Equal(t, "Essence Mascara", p.Title)
	assert.Equal(t, int32(2), calls.Load())
}

func Test_Client_Offline(t *testing.T) {
	// given
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	opts := testOptions()
	opts.RetryMax = 0
	client := NewClient(url, opts, nil)

	// when
	_, err := client.ListProducts(context.Background(), 0, 10)

	// then
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func Test_Client_BreakerOpensOnServerErrors(t *testing.T) {
	// given
	var calls atomic.Int32
	opts := testOptions()
	opts.RetryMax = 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, opts, nil)

	// when
	for range 3 {
		_, err := client.ListProducts(context.Background(), 0, 10)
		var apiErr *domain.APIError
		require.True(t, errors.As(err, &apiErr))
	}
	_, err := client.ListProducts(context.Background(), 0, 10)

	// then
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.Equal(t, int32(3), calls.Load())
}

func Test_Client_BreakerIgnoresClientErrors(t *testing.T) {
	// given
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	// when
	for range 5 {
		_, err := client.GetProduct(context.Background(), 1)
		require.ErrorIs(t, err, domain.ErrProductNotFound)
	}

	// then
	assert.Equal(t, int32(5), calls.Load())
}

func Test_Client_WriteOperations(t *testing.T) {
	draft := domain.ProductDraft{
		Title:       "Lamp",
		Description: "Desk lamp",
		Price:       decimal.RequireFromString("19.50"),
		Stock:       4,
		Brand:       "Lumo",
		Category:    "home-decoration",
	}

	testCases := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantBody   bool
	}{
		{
			name: "add posts the draft",
			call: func(c *Client) error {
				p, err := c.AddProduct(context.Background(), draft)
				if err == nil {
					assert.Equal(t, 195, p.ID)
				}
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/products/add",
			wantBody:   true,
		},
		{
			name: "update patches by id",
			call: func(c *Client) error {
				_, err := c.UpdateProduct(context.Background(), 7, draft)
				return err
			},
			wantMethod: http.MethodPatch,
			wantPath:   "/products/7",
			wantBody:   true,
		},
		{
			name: "delete by id",
			call: func(c *Client) error {
				return c.DeleteProduct(context.Background(), 7)
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/products/7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var gotMethod, gotPath, gotContentType string
			var gotBody map[string]any
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				gotContentType = r.Header.Get("Content-Type")
				if r.ContentLength > 0 {
					_ = json.NewDecoder(r.Body).Decode(&gotBody)
				}
				_, _ = io.WriteString(w, `{"id":195,"title":"Lamp","price":19.5,"isDeleted":true}`)
			})

			// when
			err := tc.call(client)

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.wantMethod, gotMethod)
			assert.Equal(t, tc.wantPath, gotPath)
			if tc.wantBody {
				assert.Equal(t, "application/json", gotContentType)
				assert.Equal(t, "Lamp", gotBody["title"])
				assert.EqualValues(t, 19.5, gotBody["price"])
				assert.EqualValues(t, 4, gotBody["stock"])
			}
		})
	}
}

func Test_Client_Ping(t *testing.T) {
	// given
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"products":[{"id":1}],"total":194,"skip":0,"limit":1}`)
	})

	// when
	err := client.Ping(context.Background())

	// then
	require.NoError(t, err)
	assert.Equal(t, "limit=1&select=id", gotQuery)
}
