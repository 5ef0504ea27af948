package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/store"
)

type categoryClient struct {
	mockClient
	categories []domain.Category
	err        error
	calls      int
}

func (c *categoryClient) Categories(_ context.Context) ([]domain.Category, error) {
	c.calls++
	return c.categories, c.err
}

func Test_Categories(t *testing.T) {
	vocabulary := []domain.Category{{Slug: "beauty"}, {Slug: "laptops", Name: "Laptops"}}

	testCases := []struct {
		name      string
		cached    []domain.Category
		client    *categoryClient
		want      []domain.Category
		wantErr   error
		wantCalls int
	}{
		{
			name:      "fetches and caches when store is empty",
			client:    &categoryClient{categories: vocabulary},
			want:      vocabulary,
			wantCalls: 1,
		},
		{
			name:      "serves from cache",
			cached:    vocabulary[:1],
			client:    &categoryClient{categories: vocabulary},
			want:      vocabulary[:1],
			wantCalls: 0,
		},
		{
			name:      "surfaces fetch errors",
			client:    &categoryClient{err: domain.ErrServerOffline},
			wantErr:   domain.ErrServerOffline,
			wantCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			st, err := store.NewLocalStore("", "")
			require.NoError(t, err)
			if tc.cached != nil {
				require.NoError(t, st.SaveCategories(tc.cached))
			}
			svc := NewCategories(tc.client, st, nil)

			// when
			got, err := svc.Load(context.Background())

			// then
			assert.Equal(t, tc.wantCalls, tc.client.calls)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			cached, ok := svc.Cached()
			require.True(t, ok)
			assert.Equal(t, tc.want, cached)
		})
	}
}

func Test_Categories_FetchReplacesCache(t *testing.T) {
	// given
	st, err := store.NewLocalStore("", "")
	require.NoError(t, err)
	require.NoError(t, st.SaveCategories([]domain.Category{{Slug: "beauty"}}))
	fresh := []domain.Category{{Slug: "beauty"}, {Slug: "groceries", Name: "Groceries"}}
	client := &categoryClient{categories: fresh}
	svc := NewCategories(client, st, nil)

	// when
	stale, err := svc.Load(context.Background())
	require.NoError(t, err)
	got, err := svc.Fetch(context.Background())

	// then
	require.NoError(t, err)
	assert.Len(t, stale, 1)
	assert.Equal(t, fresh, got)
	assert.Equal(t, 1, client.calls)
	cached, ok := svc.Cached()
	require.True(t, ok)
	assert.Equal(t, fresh, cached)
}

func Test_Categories_FetchFailureKeepsCache(t *testing.T) {
	// given
	st, err := store.NewLocalStore("", "")
	require.NoError(t, err)
	cachedVocabulary := []domain.Category{{Slug: "beauty"}}
	require.NoError(t, st.SaveCategories(cachedVocabulary))
	svc := NewCategories(&categoryClient{err: domain.ErrServerOffline}, st, nil)

	// when
	_, err = svc.Fetch(context.Background())

	// then
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	cached, ok := svc.Cached()
	require.True(t, ok)
	assert.Equal(t, cachedVocabulary, cached)
}
