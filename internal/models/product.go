package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an inventory item as persisted by the store.
// Derived values (total value, availability) are never stored here.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:varchar(500);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(14,2);not null"`
	Stock       int64           `json:"stock" gorm:"not null"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime:false;not null"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"autoUpdateTime:false;not null"`
}

// TableName keeps the collection name stable regardless of GORM's naming strategy.
func (Product) TableName() string {
	return "products"
}
