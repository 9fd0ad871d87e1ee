package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"inventory/internal/catalog"
	"inventory/internal/models"
)

func TestTotalValue(t *testing.T) {
	tests := []struct {
		price string
		stock int64
		want  string
	}{
		{"20.00", 5, "100"},
		{"0.10", 3, "0.3"},
		{"19.99", 0, "0"},
		{"0", 1000, "0"},
		{"1234.56", 9007199254740991, "11119927911933037848.96"},
	}
	for _, tt := range tests {
		p := models.Product{Price: decimal.RequireFromString(tt.price), Stock: tt.stock}
		got := catalog.TotalValue(p)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s x %d = %s", tt.price, tt.stock, got)
	}
}

func TestTotalValue_FollowsCurrentFields(t *testing.T) {
	p := models.Product{Price: decimal.RequireFromString("2.50"), Stock: 4}
	assert.Equal(t, "10", catalog.TotalValue(p).String())

	p.Stock = 6
	assert.Equal(t, "15", catalog.TotalValue(p).String())

	p.Price = decimal.RequireFromString("1.25")
	assert.Equal(t, "7.5", catalog.TotalValue(p).String())
}

func TestIsAvailable(t *testing.T) {
	for stock, want := range map[int64]bool{0: false, 1: true, 500: true} {
		assert.Equal(t, want, catalog.IsAvailable(models.Product{Stock: stock}), "stock %d", stock)
	}
}
