package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by the remote collection
type Product struct {
	ID          int             // Unique within the remote collection
	Title       string          // Display title
	Description string          // Long description (detail view)
	Price       decimal.Decimal // Non-negative unit price
	Rating      float64         // Average rating, 0-5
	Category    string          // Category slug
	Images      []string        // Ordered image URLs
	Thumbnail   string          // Optional thumbnail URL
	Brand       string          // Optional brand
	Stock       *int            // Optional stock count (nil = unknown)
}

// HasStock reports whether a stock count was provided
func (p Product) HasStock() bool {
	return p.Stock != nil
}

// InStock returns true if the product has a known positive stock count
func (p Product) InStock() bool {
	return p.Stock != nil && *p.Stock > 0
}

// StockLabel returns a human-readable stock description
func (p Product) StockLabel() string {
	switch {
	case p.Stock == nil:
		return ""
	case *p.Stock > 0:
		return fmt.Sprintf("In Stock (%d)", *p.Stock)
	default:
		return "Out of Stock"
	}
}

// FormattedPrice returns the price with a currency sign and two decimals
func (p Product) FormattedPrice() string {
	return "$" + p.Price.StringFixed(2)
}

// MainImage returns the image to show first: the first image, then the thumbnail
func (p Product) MainImage() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return p.Thumbnail
}

// Category is an entry of the remote category vocabulary
type Category struct {
	Slug string // Identifier used in /products/category/{slug}
	Name string // Display name
}

// DisplayName returns the name, or a capitalized slug when the server sent none
func (c Category) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Slug == "" {
		return ""
	}
	return strings.ToUpper(c.Slug[:1]) + c.Slug[1:]
}

// ProductDraft holds the editable fields of a product for add/update calls
type ProductDraft struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Brand       string          `json:"brand" validate:"required"`
	Category    string          `json:"category" validate:"required"`
}

// DraftFromProduct pre-fills a draft from an existing product (edit form)
func DraftFromProduct(p Product) ProductDraft {
	d := ProductDraft{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Brand:       p.Brand,
		Category:    p.Category,
	}
	if p.Stock != nil {
		d.Stock = *p.Stock
	}
	return d
}
