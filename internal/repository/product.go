package repository

import (
	"context"
	"encoding/json"

	"pimapi/internal/model"
)

// UpdateProductParams carries a partial update; nil fields are left unchanged.
type UpdateProductParams struct {
	SKU         *string
	Name        *string
	Description *string
	Price       *float64
	FamilyID    *string
	Details     json.RawMessage
	Images      *[]string
	IsArchived  *bool
	IsPublished *bool
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)

	// CreateBulk inserts all products in one transaction and returns the
	// number of rows inserted.
	CreateBulk(ctx context.Context, ps []model.Product) (int, error)

	FindByID(ctx context.Context, id string) (*model.Product, error)

	// ExistsBySKU reports whether a live product already uses the sku
	// (exact, case-sensitive match).
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// List returns a page of products matching the filter plus the total
	// count over the same filter, computed from a single transaction.
	List(ctx context.Context, f ProductFilter, pq PageQuery) (*PageResult[model.Product], error)

	Update(ctx context.Context, id string, p UpdateProductParams) (*model.Product, error)

	SoftDelete(ctx context.Context, id string) error
}
