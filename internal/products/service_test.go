package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/domain"
)

// mockRepository is a mock implementation of domain.ProductRepository
type mockRepository struct {
	product *domain.Product
	error   error

	added   []domain.ProductDraft
	updated map[int]domain.ProductDraft
	deleted []int
}

func (m *mockRepository) GetProduct(_ context.Context, _ int) (*domain.Product, error) {
	return m.product, m.error
}

func (m *mockRepository) AddProduct(_ context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	m.added = append(m.added, draft)
	return m.product, m.error
}

func (m *mockRepository) UpdateProduct(_ context.Context, id int, draft domain.ProductDraft) (*domain.Product, error) {
	if m.updated == nil {
		m.updated = make(map[int]domain.ProductDraft)
	}
	m.updated[id] = draft
	return m.product, m.error
}

func (m *mockRepository) DeleteProduct(_ context.Context, id int) error {
	m.deleted = append(m.deleted, id)
	return m.error
}

type staticAuth bool

func (a staticAuth) Authenticated() bool { return bool(a) }

func validDraft() domain.ProductDraft {
	return domain.ProductDraft{
		Title:       "Desk Lamp",
		Description: "Adjustable LED lamp",
		Price:       decimal.RequireFromString("24.99"),
		Stock:       8,
		Brand:       "Lumo",
		Category:    "home-decoration",
	}
}

func Test_Service_Create(t *testing.T) {
	created := &domain.Product{ID: 195, Title: "Desk Lamp"}
	invalid := validDraft()
	invalid.Title = ""
	invalid.Price = decimal.NewFromInt(-1)

	testCases := []struct {
		name       string
		auth       staticAuth
		draft      domain.ProductDraft
		repo       *mockRepository
		wantErr    error
		wantFields map[string]string
		wantCalls  int
	}{
		{
			name:      "Success - product created",
			auth:      true,
			draft:     validDraft(),
			repo:      &mockRepository{product: created},
			wantCalls: 1,
		},
		{
			name:    "Error - no session",
			auth:    false,
			draft:   validDraft(),
			repo:    &mockRepository{product: created},
			wantErr: domain.ErrUnauthenticated,
		},
		{
			name:  "Error - invalid draft",
			auth:  true,
			draft: invalid,
			repo:  &mockRepository{product: created},
			wantFields: map[string]string{
				"title": "failed on rule: required",
				"price": "failed on rule: gte",
			},
		},
		{
			name:      "Error - api failure",
			auth:      true,
			draft:     validDraft(),
			repo:      &mockRepository{error: &domain.APIError{Status: 400, Message: "bad"}},
			wantCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := NewService(tc.repo, tc.auth, nil)
			// when
			p, err := svc.Create(context.Background(), tc.draft)
			// then
			assert.Len(t, tc.repo.added, tc.wantCalls)
			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.wantFields != nil:
				var ve domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tc.wantFields, ve.Fields)
			case tc.repo.error != nil:
				var apiErr *domain.APIError
				assert.ErrorAs(t, err, &apiErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, created, p)
			}
		})
	}
}

func Test_Service_UpdateAndDelete(t *testing.T) {
	// given
	repo := &mockRepository{product: &domain.Product{ID: 7}}
	svc := NewService(repo, staticAuth(true), nil)

	// when
	_, err := svc.Update(context.Background(), 7, validDraft())
	require.NoError(t, err)
	err = svc.Delete(context.Background(), 7)

	// then
	require.NoError(t, err)
	assert.Equal(t, validDraft(), repo.updated[7])
	assert.Equal(t, []int{7}, repo.deleted)
}

func Test_Service_Delete_RequiresSession(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, nil, nil)

	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Empty(t, repo.deleted)
}

func Test_Service_Get_NotFound(t *testing.T) {
	svc := NewService(&mockRepository{error: domain.ErrProductNotFound}, nil, nil)

	p, err := svc.Get(context.Background(), 999)

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Nil(t, p)
}

func Test_Service_ParseDraft(t *testing.T) {
	testCases := []struct {
		name       string
		form       Form
		want       domain.ProductDraft
		wantFields map[string]string
	}{
		{
			name: "valid form",
			form: Form{
				Title: " Desk Lamp ", Description: "Adjustable LED lamp", Price: "$24.99",
				Stock: "8", Brand: "Lumo", Category: "home-decoration",
			},
			want: validDraft(),
		},
		{
			name: "conversion and rule errors reported together",
			form: Form{Title: "Lamp", Price: "cheap", Stock: "2.5", Brand: "Lumo", Category: "x"},
			wantFields: map[string]string{
				"price":       "must be a number",
				"stock":       "must be a whole number",
				"description": "failed on rule: required",
			},
		},
		{
			name: "blank numbers are required",
			form: Form{Title: "Lamp", Description: "d", Brand: "b", Category: "c"},
			wantFields: map[string]string{
				"price": "failed on rule: required",
				"stock": "failed on rule: required",
			},
		},
		{
			name: "negative stock",
			form: Form{Title: "Lamp", Description: "d", Price: "1", Stock: "-3", Brand: "b", Category: "c"},
			wantFields: map[string]string{
				"stock": "failed on rule: gte",
			},
		},
	}

	svc := NewService(&mockRepository{}, staticAuth(true), nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			draft, err := svc.ParseDraft(tc.form)
			// then
			if tc.wantFields != nil {
				var ve domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tc.wantFields, ve.Fields)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want.Title, draft.Title)
			assert.True(t, tc.want.Price.Equal(draft.Price))
			assert.Equal(t, tc.want.Stock, draft.Stock)
			assert.Equal(t, tc.want.Category, draft.Category)
		})
	}
}

func Test_FormFromProduct(t *testing.T) {
	stock := 3
	form := FormFromProduct(domain.Product{
		Title: "Lamp", Price: decimal.RequireFromString("5.5"), Stock: &stock, Category: "c",
	})
	assert.Equal(t, "5.50", form.Price)
	assert.Equal(t, "3", form.Stock)
	assert.Equal(t, "Lamp", form.Title)
}
