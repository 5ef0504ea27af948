package dummyjson

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"

	"github.com/mmcdole/storefront/internal/domain"
)

// MapProducts converts dummyjson products to domain products
func MapProducts(dtos []ProductDTO) []domain.Product {
	return lo.Map(dtos, func(d ProductDTO, _ int) domain.Product {
		return MapProduct(d)
	})
}

// MapProduct converts a single dummyjson product to a domain product
func MapProduct(d ProductDTO) domain.Product {
	p := domain.Product{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Rating:      d.Rating,
		Category:    d.Category,
		Images:      lo.Compact(d.Images),
		Thumbnail:   d.Thumbnail,
		Brand:       d.Brand,
	}
	if d.Stock != nil {
		stock := *d.Stock
		p.Stock = &stock
	}
	return p
}

// MapPage converts a products envelope to a domain page
func MapPage(resp *ProductsResponse) *domain.Page {
	return &domain.Page{
		Products: MapProducts(resp.Products),
		Total:    resp.Total,
		Skip:     resp.Skip,
		Limit:    resp.Limit,
	}
}

// MapCategories normalizes raw category entries (strings or objects).
// Identity is the slug, then the name, then the raw text; duplicates and blanks are dropped.
func MapCategories(raw CategoriesResponse) []domain.Category {
	categories := lo.FilterMap(raw, func(entry json.RawMessage, _ int) (domain.Category, bool) {
		c := mapCategory(entry)
		return c, c.Slug != ""
	})
	return lo.UniqBy(categories, func(c domain.Category) string { return c.Slug })
}

func mapCategory(entry json.RawMessage) domain.Category {
	var s string
	if err := json.Unmarshal(entry, &s); err == nil {
		return domain.Category{Slug: strings.TrimSpace(s)}
	}

	var obj CategoryDTO
	if err := json.Unmarshal(entry, &obj); err == nil {
		slug := lo.CoalesceOrEmpty(strings.TrimSpace(obj.Slug), strings.TrimSpace(obj.Name))
		return domain.Category{Slug: slug, Name: strings.TrimSpace(obj.Name)}
	}

	return domain.Category{Slug: strings.Trim(strings.TrimSpace(string(entry)), `"`)}
}

// MapDraft converts a domain draft to the request body
func MapDraft(d domain.ProductDraft) DraftRequest {
	return DraftRequest{
		Title:       d.Title,
		Description: d.Description,
		Price:       json.Number(d.Price.String()),
		Stock:       d.Stock,
		Brand:       d.Brand,
		Category:    d.Category,
	}
}
