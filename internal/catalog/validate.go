package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Field bounds for a product.
const (
	NameMinLength        = 2
	NameMaxLength        = 100
	DescriptionMinLength = 10
	DescriptionMaxLength = 500
	// MaxStock is the largest stock count that survives a round trip through
	// a JSON number without losing precision.
	MaxStock = 1<<53 - 1
)

var (
	nameRules        = fmt.Sprintf("min=%d,max=%d", NameMinLength, NameMaxLength)
	descriptionRules = fmt.Sprintf("min=%d,max=%d", DescriptionMinLength, DescriptionMaxLength)
	priceRules       = "finite,gte=0"
	stockRules       = fmt.Sprintf("finite,whole,gte=0,lte=%d", MaxStock)
)

// Validator checks candidates field by field. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the product-specific rules registered.
func NewValidator() *Validator {
	v := validator.New()
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("finite", isFinite)
	_ = v.RegisterValidation("whole", isWhole)
	return &Validator{validate: v}
}

func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isWhole(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return f == math.Trunc(f)
}

// Validate checks every field of c and returns the accepted Record, or a
// *ValidationError listing one violation per invalid field. c is not modified.
func (v *Validator) Validate(c Candidate) (Record, error) {
	var (
		rec        Record
		violations []Violation
	)

	if s, viol := v.text("name", c.Name, nameRules); viol != nil {
		violations = append(violations, *viol)
	} else {
		rec.Name = s
	}

	if s, viol := v.text("description", c.Description, descriptionRules); viol != nil {
		violations = append(violations, *viol)
	} else {
		rec.Description = s
	}

	if c.Price == nil {
		violations = append(violations, required("price"))
	} else if viol := v.number("price", *c.Price, priceRules); viol != nil {
		violations = append(violations, *viol)
	} else {
		rec.Price = decimal.NewFromFloat(*c.Price)
	}

	if c.Stock == nil {
		violations = append(violations, required("stock"))
	} else if viol := v.number("stock", *c.Stock, stockRules); viol != nil {
		violations = append(violations, *viol)
	} else {
		rec.Stock = int64(*c.Stock)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			return violations[i].Field < violations[j].Field
		})
		return Record{}, &ValidationError{Violations: violations}
	}
	return rec, nil
}

func (v *Validator) text(field string, value *string, rules string) (string, *Violation) {
	if value == nil {
		viol := required(field)
		return "", &viol
	}
	s := strings.TrimSpace(*value)
	if s == "" {
		viol := required(field)
		return "", &viol
	}
	if err := v.validate.Var(s, rules); err != nil {
		return "", violationFor(field, err)
	}
	return s, nil
}

func (v *Validator) number(field string, value float64, rules string) *Violation {
	if err := v.validate.Var(value, rules); err != nil {
		return violationFor(field, err)
	}
	return nil
}

func required(field string) Violation {
	return Violation{
		Field:   field,
		Kind:    RequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

// violationFor translates the first failed validator tag into a Violation.
func violationFor(field string, err error) *Violation {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &Violation{Field: field, Kind: InvalidNumber, Message: err.Error()}
	}
	fe := fieldErrs[0]
	viol := &Violation{Field: field}
	switch fe.Tag() {
	case "min":
		viol.Kind = LengthOutOfRange
		viol.Message = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		viol.Kind = LengthOutOfRange
		viol.Message = fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "finite":
		viol.Kind = InvalidNumber
		viol.Message = fmt.Sprintf("%s must be a finite number", field)
	case "whole":
		viol.Kind = NotInteger
		viol.Message = fmt.Sprintf("%s must be a whole number", field)
	case "gte":
		viol.Kind = OutOfRange
		viol.Message = fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		viol.Kind = OutOfRange
		viol.Message = fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		viol.Kind = InvalidNumber
		viol.Message = fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
	return viol
}
