package survey

import (
	"fmt"
	"strings"
)

// FieldError is one validation failure, scoped to a field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every validation failure of a form.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether a field path has at least one error.
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (e *FieldErrors) add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// AllocationExceededError blocks a submission whose capped allocation totals more than 100%.
type AllocationExceededError struct {
	Field string
	Total float64
}

func (e *AllocationExceededError) Error() string {
	return fmt.Sprintf("total allocation for %s is %.2f%%, it cannot exceed 100%%", e.Field, e.Total)
}
