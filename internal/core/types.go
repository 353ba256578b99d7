package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogClient is the remote catalog API as seen by the service.
// Satisfied by *catalogapi.Client.
type CatalogClient interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CreateProduct(ctx context.Context, in ProductInput) (Product, error)
	UpdateProduct(ctx context.Context, id int, in ProductInput) (ProductPatch, error)
}

// Category is read-only reference data used to populate selection controls.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product is a single catalog record as returned by the remote API.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    *Category       `json:"category"`
	Images      []string        `json:"images"`
}

// CategoryID returns the category id, or 0 when the product has none.
func (p Product) CategoryID() int {
	if p.Category == nil {
		return 0
	}
	return p.Category.ID
}

// CategoryName returns the category name, or "" when the product has none.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// ProductInput is the validated payload sent on create and update.
type ProductInput struct {
	Title       string
	Price       decimal.Decimal
	Description string
	CategoryID  int
	Images      []string
}

// ProductForm holds the raw form values submitted by the browser.
// Images is free text with one URL per line.
type ProductForm struct {
	Title       string
	Price       string
	Description string
	CategoryID  string
	Images      string
}

// ProductPatch carries only the fields the server returned from an update.
// Nil fields were absent from the response and are left untouched on merge.
type ProductPatch struct {
	Title       *string
	Price       *decimal.Decimal
	Description *string
	Images      *[]string

	// CategorySet distinguishes "category absent" from "category: null".
	CategorySet bool
	Category    *Category
}

// Apply returns a copy of p with the patch fields shallow-merged in.
func (p Product) Apply(patch ProductPatch) Product {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Images != nil {
		p.Images = append([]string(nil), (*patch.Images)...)
	}
	if patch.CategorySet {
		p.Category = patch.Category
	}
	return p
}

// SortField names a sortable column. The zero value means unsorted.
type SortField string

const (
	SortNone  SortField = ""
	SortTitle SortField = "title"
	SortPrice SortField = "price"
)

// ParseSortField validates a column name coming from the UI.
func ParseSortField(s string) (SortField, bool) {
	switch SortField(s) {
	case SortTitle, SortPrice:
		return SortField(s), true
	}
	return SortNone, false
}

// SortDir is the sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Toggle flips the direction.
func (d SortDir) Toggle() SortDir {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}
