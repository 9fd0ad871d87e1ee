package catalog

import (
	"github.com/shopspring/decimal"

	"inventory/internal/models"
)

// Candidate is an unvalidated product as received from a caller. A nil field
// means the caller did not supply it. Numbers stay float64 so that non-finite
// and fractional input can be reported instead of rejected by the decoder.
type Candidate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *float64 `json:"stock"`
}

// Record is a candidate that passed validation: strings trimmed, price held
// as a decimal, stock as an integer.
type Record struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
}

// CandidateFrom turns a stored product back into a full candidate so that a
// merged update can be validated as a whole.
func CandidateFrom(p models.Product) Candidate {
	name := p.Name
	description := p.Description
	price := p.Price.InexactFloat64()
	stock := float64(p.Stock)
	return Candidate{
		Name:        &name,
		Description: &description,
		Price:       &price,
		Stock:       &stock,
	}
}

// Merge overlays the fields set in patch onto c and returns the result.
// Neither argument is modified.
func (c Candidate) Merge(patch Candidate) Candidate {
	merged := c
	if patch.Name != nil {
		merged.Name = patch.Name
	}
	if patch.Description != nil {
		merged.Description = patch.Description
	}
	if patch.Price != nil {
		merged.Price = patch.Price
	}
	if patch.Stock != nil {
		merged.Stock = patch.Stock
	}
	return merged
}

// Apply copies the record's fields onto p, leaving ID and timestamps alone.
func (r Record) Apply(p *models.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
	p.Stock = r.Stock
}
