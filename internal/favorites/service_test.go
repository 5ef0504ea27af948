package favorites

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/domain"
	"github.com/mmcdole/storefront/internal/store"
)

func newStore(t *testing.T) *store.LocalStore {
	t.Helper()
	s, err := store.NewLocalStore("", "")
	require.NoError(t, err)
	return s
}

func item(id int, title string) domain.Product {
	return domain.Product{ID: id, Title: title, Price: decimal.NewFromInt(int64(id))}
}

func Test_Service_Toggle(t *testing.T) {
	// given
	st := newStore(t)
	svc := NewService(st, nil)

	// when
	added, err := svc.Toggle(item(1, "iPhone 9"))
	require.NoError(t, err)
	_, err = svc.Toggle(item(2, "Samsung Universe 9"))
	require.NoError(t, err)

	// then
	assert.True(t, added)
	assert.True(t, svc.IsFavorite(1))
	assert.Equal(t, 2, svc.Count())

	// toggling again removes
	added, err = svc.Toggle(item(1, "iPhone 9"))
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, svc.IsFavorite(1))

	saved, ok := st.GetFavorites()
	require.True(t, ok)
	require.Len(t, saved, 1)
	assert.Equal(t, 2, saved[0].ID)
}

func Test_Service_LoadsSavedFavorites(t *testing.T) {
	// given
	st := newStore(t)
	require.NoError(t, st.SaveFavorites([]domain.Product{item(5, "Lipstick"), item(7, "Mascara")}))

	// when
	svc := NewService(st, nil)

	// then
	assert.Equal(t, map[int]bool{5: true, 7: true}, svc.IDs())
	assert.Equal(t, "Lipstick", svc.List()[0].Title)
}

func Test_Service_Remove(t *testing.T) {
	// given
	svc := NewService(newStore(t), nil)
	_, err := svc.Toggle(item(1, "A"))
	require.NoError(t, err)

	// when
	require.NoError(t, svc.Remove(1))
	require.NoError(t, svc.Remove(42))

	// then
	assert.Empty(t, svc.List())
}

func Test_Service_Find(t *testing.T) {
	svc := NewService(newStore(t), nil)
	for _, p := range []domain.Product{
		item(1, "Essence Mascara Lash Princess"),
		item(2, "Red Lipstick"),
		item(3, "Eyeshadow Palette with Mirror"),
		item(4, "Red Nail Polish"),
	} {
		_, err := svc.Toggle(p)
		require.NoError(t, err)
	}

	testCases := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "blank returns all", query: " ", want: []int{1, 2, 3, 4}},
		{name: "case insensitive", query: "MASCARA", want: []int{1}},
		{name: "subsequence match", query: "rdlip", want: []int{2}},
		{name: "no match", query: "laptop", want: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			got := svc.Find(tc.query)
			// then
			ids := make([]int, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

type failingStore struct {
	domain.Store
	saved []domain.Product
}

func (f failingStore) GetFavorites() ([]domain.Product, bool) { return f.saved, f.saved != nil }
func (failingStore) SaveFavorites([]domain.Product) error     { return errors.New("disk full") }

func Test_Service_StoreErrorLeavesListUnchanged(t *testing.T) {
	testCases := []struct {
		name   string
		saved  []domain.Product
		action func(svc *Service) error
		want   []int
	}{
		{
			name: "toggle on",
			action: func(svc *Service) error {
				_, err := svc.Toggle(item(1, "A"))
				return err
			},
		},
		{
			name:  "toggle off",
			saved: []domain.Product{item(1, "A"), item(2, "B")},
			action: func(svc *Service) error {
				_, err := svc.Toggle(item(1, "A"))
				return err
			},
			want: []int{1, 2},
		},
		{
			name:   "remove",
			saved:  []domain.Product{item(1, "A"), item(2, "B")},
			action: func(svc *Service) error { return svc.Remove(2) },
			want:   []int{1, 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := NewService(failingStore{saved: tc.saved}, nil)

			// when
			err := tc.action(svc)

			// then
			assert.EqualError(t, err, "disk full")
			var ids []int
			for _, p := range svc.List() {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.want, ids)
			assert.Equal(t, len(tc.want), svc.Count())
		})
	}
}
