package repositories

import (
	"context"
	"errors"

	"inventory/internal/models"
	"inventory/internal/query"
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Insert stores a new product, assigning an ID when it has none.
	Insert(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Update replaces the stored fields of an existing product.
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	// Query returns the products matching every filter, ordered by sorts in
	// turn and then by ID.
	Query(ctx context.Context, filters []query.Filter, sorts []query.Sort) ([]models.Product, error)
	// EnsureIndexes prepares the store for the given sort orders.
	EnsureIndexes(ctx context.Context, hints []query.Sort) error
}
