package store

import (
	"github.com/shopspring/decimal"

	"github.com/mmcdole/storefront/internal/domain"
)

func fromDomain(p domain.Product) storedProduct {
	return storedProduct{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.String(),
		Rating:      p.Rating,
		Category:    p.Category,
		Images:      p.Images,
		Thumbnail:   p.Thumbnail,
		Brand:       p.Brand,
		Stock:       p.Stock,
	}
}

// toDomain restores a favorite; an unreadable price decodes as zero
func (sp storedProduct) toDomain() domain.Product {
	price, err := decimal.NewFromString(sp.Price)
	if err != nil {
		price = decimal.Zero
	}
	return domain.Product{
		ID:          sp.ID,
		Title:       sp.Title,
		Description: sp.Description,
		Price:       price,
		Rating:      sp.Rating,
		Category:    sp.Category,
		Images:      sp.Images,
		Thumbnail:   sp.Thumbnail,
		Brand:       sp.Brand,
		Stock:       sp.Stock,
	}
}
