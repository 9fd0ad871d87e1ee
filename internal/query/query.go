// Package query declares the read patterns the product store must support as
// data: numeric filters, sort orders and the index hints that back them.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"inventory/internal/models"
)

// ErrUnsupported is returned for a field or operator a store cannot evaluate.
var ErrUnsupported = errors.New("unsupported query")

// Field names a product attribute used in a filter or sort.
type Field string

const (
	FieldName      Field = "name"
	FieldPrice     Field = "price"
	FieldStock     Field = "stock"
	FieldCreatedAt Field = "createdAt"
)

var columns = map[Field]string{
	FieldName:      "name",
	FieldPrice:     "price",
	FieldStock:     "stock",
	FieldCreatedAt: "created_at",
}

// Column returns the storage column for f.
func (f Field) Column() (string, error) {
	col, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("%w: unknown field %q", ErrUnsupported, f)
	}
	return col, nil
}

// Op is a numeric comparison operator.
type Op string

const (
	OpGT  Op = ">"
	OpGTE Op = ">="
	OpLT  Op = "<"
	OpLTE Op = "<="
	OpEQ  Op = "="
)

// Filter selects products whose numeric Field compares to Value with Op.
type Filter struct {
	Field Field   `json:"field"`
	Op    Op      `json:"op"`
	Value float64 `json:"value"`
}

// Check reports whether a store can evaluate f.
func (f Filter) Check() error {
	if f.Field != FieldStock && f.Field != FieldPrice {
		return fmt.Errorf("%w: cannot filter on %q", ErrUnsupported, f.Field)
	}
	switch f.Op {
	case OpGT, OpGTE, OpLT, OpLTE, OpEQ:
		return nil
	}
	return fmt.Errorf("%w: unknown operator %q", ErrUnsupported, f.Op)
}

// Match evaluates f against p. An unsupported filter matches nothing.
func (f Filter) Match(p models.Product) bool {
	var cmp int
	value := decimal.NewFromFloat(f.Value)
	switch f.Field {
	case FieldStock:
		cmp = decimal.NewFromInt(p.Stock).Cmp(value)
	case FieldPrice:
		cmp = p.Price.Cmp(value)
	default:
		return false
	}
	switch f.Op {
	case OpGT:
		return cmp > 0
	case OpGTE:
		return cmp >= 0
	case OpLT:
		return cmp < 0
	case OpLTE:
		return cmp <= 0
	case OpEQ:
		return cmp == 0
	}
	return false
}

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort orders products by Field.
type Sort struct {
	Field Field `json:"sortBy"`
	Order Order `json:"order"`
}

// Check reports whether a store can sort by s.
func (s Sort) Check() error {
	switch s.Field {
	case FieldName, FieldPrice, FieldCreatedAt:
	default:
		return fmt.Errorf("%w: cannot sort by %q", ErrUnsupported, s.Field)
	}
	if s.Order != Asc && s.Order != Desc {
		return fmt.Errorf("%w: unknown order %q", ErrUnsupported, s.Order)
	}
	return nil
}

// Compare returns -1, 0 or 1 as a sorts before, with or after b under s.
func (s Sort) Compare(a, b models.Product) int {
	var cmp int
	switch s.Field {
	case FieldName:
		cmp = strings.Compare(a.Name, b.Name)
	case FieldPrice:
		cmp = a.Price.Cmp(b.Price)
	case FieldCreatedAt:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	}
	if s.Order == Desc {
		cmp = -cmp
	}
	return cmp
}

// ParseSort reads a sort key such as "price" or "-createdAt"; a leading '-'
// means descending. An empty key yields ByRecency.
func ParseSort(key string) (Sort, error) {
	if key == "" {
		return ByRecency(), nil
	}
	s := Sort{Field: Field(key), Order: Asc}
	if strings.HasPrefix(key, "-") {
		s = Sort{Field: Field(key[1:]), Order: Desc}
	}
	return s, s.Check()
}

// Available selects products with at least one unit in stock.
func Available() Filter {
	return Filter{Field: FieldStock, Op: OpGT, Value: 0}
}

// ByRecency lists the newest products first.
func ByRecency() Sort {
	return Sort{Field: FieldCreatedAt, Order: Desc}
}

// ByName lists products alphabetically.
func ByName() Sort {
	return Sort{Field: FieldName, Order: Asc}
}

// ByPrice lists the cheapest products first.
func ByPrice() Sort {
	return Sort{Field: FieldPrice, Order: Asc}
}

// IndexHints are the indexes a store should maintain for the sorts above.
var IndexHints = []Sort{ByName(), ByPrice(), ByRecency()}
