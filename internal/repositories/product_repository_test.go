package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory/internal/database"
	"inventory/internal/models"
	"inventory/internal/query"
	"inventory/internal/repositories"
)

// newSQLiteRepo opens a private in-memory database for one test.
func newSQLiteRepo(t *testing.T) repositories.ProductRepository {
	t.Helper()
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repositories.NewGORMProductRepository(db)
}

// forEachStore runs fn against every ProductRepository implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, repo repositories.ProductRepository)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, repositories.NewMemoryProductRepository())
	})
	t.Run("sqlite", func(t *testing.T) {
		fn(t, newSQLiteRepo(t))
	})
}

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func product(name, price string, stock int64, createdAt time.Time) models.Product {
	return models.Product{
		Name:        name,
		Description: "Test product description",
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func seed(t *testing.T, repo repositories.ProductRepository, products ...models.Product) []models.Product {
	t.Helper()
	for i := range products {
		require.NoError(t, repo.Insert(context.Background(), &products[i]))
	}
	return products
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestProductRepository_InsertAndGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()
		p := product("Laptop", "1200.00", 10, base)

		require.NoError(t, repo.Insert(ctx, &p))
		assert.NotEmpty(t, p.ID)

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Laptop", got.Name)
		assert.True(t, got.Price.Equal(decimal.NewFromInt(1200)), "price %s", got.Price)
		assert.Equal(t, int64(10), got.Stock)
		assert.True(t, got.CreatedAt.Equal(base))
		assert.True(t, got.UpdatedAt.Equal(base))
	})
}

func TestProductRepository_GetMissing(t *testing.T) {
	forEachStore(t, func(t *testing.T, repo repositories.ProductRepository) {
		_, err := repo.GetByID(context.Background(), "does-not-exist")
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestProductRepository_Update(t *testing.T) {
	forEachStore(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()
		p := seed(t, repo, product("Keyboard", "75.00", 25, base))[0]

		p.Name = "Keyboard pro"
		p.Price = decimal.RequireFromString("80.50")
		p.Stock = 0
		p.UpdatedAt = base.Add(time.Hour)
		p.CreatedAt = base.Add(48 * time.Hour)
		require.NoError(t, repo.Update(ctx, &p))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Keyboard pro", got.Name)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("80.50")))
		assert.Equal(t, int64(0), got.Stock)
		assert.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))
		assert.True(t, got.CreatedAt.Equal(base), "created at must not change")
	})
}

func TestProductRepository_UpdateMissing(t *testing.T) {
	forEachStore(t, func(t *testing.T, repo repositories.ProductRepository) {
		p := product("Ghost", "1.00", 1, base)
		p.ID = "missing"

		err := repo.Update(context.Background(), &p)

		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		_, err = repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, repositories.ErrProductNotFound, "update must not insert")
	})
}

func TestProductRepository_Delete(t *testing.T) {
	forEachStore(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()
		p := seed(t, repo, product("Mouse", "25.00", 50, base))[0]

		require.NoError(t, repo.Delete(ctx, p.ID))

		_, err := repo.GetByID(ctx, p.ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, p.ID), repositories.ErrProductNotFound)
	})
}

func TestProductRepository_QueryAvailable(t *testing.T) {
	forEachStore(t, func(t *testing.T, repo repositories.ProductRepository) {
		seed(t, repo,
			product("Empty one", "1.00", 0, base),
			product("Single", "2.00", 1, base.Add(time.Minute)),
			product("Empty two", "3.00", 0, base.Add(2*time.Minute)),
			product("Five", "4.00", 5, base.Add(3*time.Minute)),
		)

		got, err := repo.Query(context.Background(), []query.Filter{query.Available()}, []query.Sort{query.ByName()})

		require.NoError(t, err)
		assert.Equal(t, []string{"Five", "Single"}, names(got))
	})
}

func TestProductRepository_QuerySorts(t *testing.T) {
	forEachStore(t, func(t *testing.T, repo repositories.ProductRepository) {
		seed(t, repo,
			product("Banana", "9.99", 3, base),
			product("Apple", "19.99", 2, base.Add(time.Hour)),
			product("Cherry", "0.50", 1, base.Add(2*time.Hour)),
		)
		ctx := context.Background()

		byName, err := repo.Query(ctx, nil, []query.Sort{query.ByName()})
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple", "Banana", "Cherry"}, names(byName))

		byPrice, err := repo.Query(ctx, nil, []query.Sort{query.ByPrice()})
		require.NoError(t, err)
		assert.Equal(t, []string{"Cherry", "Banana", "Apple"}, names(byPrice))

		byRecency, err := repo.Query(ctx, nil, []query.Sort{query.ByRecency()})
		require.NoError(t, err)
		assert.Equal(t, []string{"Cherry", "Apple", "Banana"}, names(byRecency))

		cheap, err := repo.Query(ctx, []query.Filter{{Field: query.FieldPrice, Op: query.OpLT, Value: 10}}, []query.Sort{query.ByPrice()})
		require.NoError(t, err)
		assert.Equal(t, []string{"Cherry", "Banana"}, names(cheap))
	})
}

func TestProductRepository_QueryRejectsUnsupported(t *testing.T) {
	forEachStore(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()

		_, err := repo.Query(ctx, []query.Filter{{Field: query.FieldName, Op: query.OpGT, Value: 0}}, nil)
		assert.ErrorIs(t, err, query.ErrUnsupported)

		_, err = repo.Query(ctx, nil, []query.Sort{{Field: query.FieldStock, Order: query.Asc}})
		assert.ErrorIs(t, err, query.ErrUnsupported)
	})
}

func TestProductRepository_EnsureIndexes(t *testing.T) {
	forEachStore(t, func(t *testing.T, repo repositories.ProductRepository) {
		ctx := context.Background()

		require.NoError(t, repo.EnsureIndexes(ctx, query.IndexHints))
		// idempotent
		require.NoError(t, repo.EnsureIndexes(ctx, query.IndexHints))
		assert.ErrorIs(t, repo.EnsureIndexes(ctx, []query.Sort{{Field: "sku", Order: query.Asc}}), query.ErrUnsupported)
	})
}
