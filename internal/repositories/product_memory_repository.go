package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"inventory/internal/models"
	"inventory/internal/query"
)

var _ ProductRepository = (*MemoryProductRepository)(nil)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// Insert adds a new product.
func (r *MemoryProductRepository) Insert(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if _, ok := r.products[product.ID]; ok {
		return fmt.Errorf("failed to create product: ID %s already exists", product.ID)
	}
	r.products[product.ID] = *product
	return nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", ErrProductNotFound, id)
	}
	return &product, nil
}

// Update modifies an existing product. CreatedAt is kept from the stored copy.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("%w: id %s", ErrProductNotFound, product.ID)
	}
	updated := *product
	updated.CreatedAt = stored.CreatedAt
	r.products[product.ID] = updated
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: id %s", ErrProductNotFound, id)
	}
	delete(r.products, id)
	return nil
}

// Query filters and sorts a snapshot of the stored products.
func (r *MemoryProductRepository) Query(_ context.Context, filters []query.Filter, sorts []query.Sort) ([]models.Product, error) {
	for _, f := range filters {
		if err := f.Check(); err != nil {
			return nil, err
		}
	}
	for _, s := range sorts {
		if err := s.Check(); err != nil {
			return nil, err
		}
	}

	r.mu.RLock()
	result := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if matchesAll(p, filters) {
			result = append(result, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		for _, s := range sorts {
			if c := s.Compare(result[i], result[j]); c != 0 {
				return c < 0
			}
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func matchesAll(p models.Product, filters []query.Filter) bool {
	for _, f := range filters {
		if !f.Match(p) {
			return false
		}
	}
	return true
}

// EnsureIndexes only checks the hints; a map needs no indexes.
func (r *MemoryProductRepository) EnsureIndexes(_ context.Context, hints []query.Sort) error {
	for _, h := range hints {
		if err := h.Check(); err != nil {
			return err
		}
	}
	return nil
}
