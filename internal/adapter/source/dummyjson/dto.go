package dummyjson

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductsResponse is the paged envelope of /products, /products/search and /products/category/{c}
type ProductsResponse struct {
	Products []ProductDTO `json:"products"`
	Total    int          `json:"total"`
	Skip     int          `json:"skip"`
	Limit    int          `json:"limit"`
}

// ProductDTO is a product as served by dummyjson
type ProductDTO struct {
	ID                 int             `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage float64         `json:"discountPercentage"`
	Rating             float64         `json:"rating"`
	Stock              *int            `json:"stock"`
	Tags               []string        `json:"tags"`
	Brand              string          `json:"brand"`
	Images             []string        `json:"images"`
	Thumbnail          string          `json:"thumbnail"`

	// Set on DELETE responses
	IsDeleted bool   `json:"isDeleted,omitempty"`
	DeletedOn string `json:"deletedOn,omitempty"`
}

// CategoryDTO is the object form of a /products/categories entry
type CategoryDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CategoriesResponse holds raw entries; older servers return plain strings, newer ones objects
type CategoriesResponse []json.RawMessage

// DraftRequest is the JSON body of POST /products/add and PATCH /products/{id}
type DraftRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	Brand       string      `json:"brand"`
	Category    string      `json:"category"`
}

// ErrorResponse is the body dummyjson sends with non-2xx statuses
type ErrorResponse struct {
	Message string `json:"message"`
}
