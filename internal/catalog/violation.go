package catalog

import (
	"fmt"
	"strings"
)

// ViolationKind classifies a failed field constraint.
type ViolationKind string

const (
	RequiredField    ViolationKind = "RequiredField"
	LengthOutOfRange ViolationKind = "LengthOutOfRange"
	InvalidNumber    ViolationKind = "InvalidNumber"
	NotInteger       ViolationKind = "NotInteger"
	OutOfRange       ViolationKind = "OutOfRange"
)

// Violation describes one failed constraint on one field.
type Violation struct {
	Field   string        `json:"field"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

// ValidationError is returned by Validate when at least one field is invalid.
// Violations holds every failure found, at most one per field.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Kind))
	}
	return "invalid product: " + strings.Join(parts, ", ")
}

// Kinds maps each invalid field to its violation kind.
func (e *ValidationError) Kinds() map[string]ViolationKind {
	kinds := make(map[string]ViolationKind, len(e.Violations))
	for _, v := range e.Violations {
		kinds[v.Field] = v.Kind
	}
	return kinds
}
