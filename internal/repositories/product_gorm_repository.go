package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventory/internal/models"
	"inventory/internal/query"
)

var _ ProductRepository = (*GORMProductRepository)(nil)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Insert creates a new product in the database.
func (r *GORMProductRepository) Insert(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Update writes every mutable column of product. Save would insert a missing
// row, so the update is explicit and a zero row count means not found.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("name", "description", "price", "stock", "updated_at").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", ErrProductNotFound, product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %s", ErrProductNotFound, id)
	}
	return nil
}

// Query translates the filters and sorts into a single SELECT.
func (r *GORMProductRepository) Query(ctx context.Context, filters []query.Filter, sorts []query.Sort) ([]models.Product, error) {
	tx := r.db.WithContext(ctx).Model(&models.Product{})
	for _, f := range filters {
		if err := f.Check(); err != nil {
			return nil, err
		}
		col, err := f.Field.Column()
		if err != nil {
			return nil, err
		}
		// column and operator are whitelisted by Check
		tx = tx.Where(fmt.Sprintf("%s %s ?", col, f.Op), f.Value)
	}
	for _, s := range sorts {
		if err := s.Check(); err != nil {
			return nil, err
		}
		col, err := s.Field.Column()
		if err != nil {
			return nil, err
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: s.Order == query.Desc})
	}
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})

	var products []models.Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

// EnsureIndexes creates one index per hint if it does not exist yet.
func (r *GORMProductRepository) EnsureIndexes(ctx context.Context, hints []query.Sort) error {
	for _, h := range hints {
		if err := h.Check(); err != nil {
			return err
		}
		col, err := h.Field.Column()
		if err != nil {
			return err
		}
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_products_%s_%s ON products (%s %s)",
			col, h.Order, col, h.Order)
		if err := r.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index on %s: %w", col, err)
		}
	}
	return nil
}
