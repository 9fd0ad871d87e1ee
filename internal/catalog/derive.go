package catalog

import (
	"github.com/shopspring/decimal"

	"inventory/internal/models"
)

// TotalValue is the inventory value of p: price times units in stock.
func TotalValue(p models.Product) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Stock))
}

// IsAvailable reports whether p has any units in stock.
func IsAvailable(p models.Product) bool {
	return p.Stock > 0
}
