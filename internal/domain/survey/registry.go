// Package survey holds the per-year survey schemas together with the
// validation, normalization and serialization rules applied to them.
package survey

import (
	"errors"
	"fmt"
	"sort"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

// ErrUnknownYear is returned when no schema is registered for a survey year.
var ErrUnknownYear = errors.New("survey year not supported")

// SumRule bounds the total of an allocation field.
type SumRule struct {
	Min     float64
	Max     float64
	Message string
}

// Field describes one answer of the survey form.
type Field struct {
	Name     string        `json:"name"`
	Kind     entities.Kind `json:"kind"`
	Section  int           `json:"section"`
	Required bool          `json:"required"`
	// Rules uses go-playground/validator syntax and is applied to the
	// canonical value of the field when present.
	Rules string   `json:"-"`
	Sum   *SumRule `json:"-"`
}

// Range pairs a minimum field with its maximum counterpart.
type Range struct {
	Min string
	Max string
}

// Schema is the definition of one survey edition.
type Schema struct {
	Year   int     `json:"year"`
	Table  string  `json:"table"`
	Fields []Field `json:"fields"`
	Ranges []Range `json:"-"`
	// Capped lists allocation fields whose total may not exceed 100 on submit.
	Capped []string `json:"-"`

	byName map[string]Field
}

// NewSchema indexes the fields of a survey edition.
func NewSchema(year int, fields []Field, ranges []Range, capped []string) *Schema {
	s := &Schema{
		Year:   year,
		Table:  fmt.Sprintf("survey_responses_%d", year),
		Fields: fields,
		Ranges: ranges,
		Capped: capped,
		byName: make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		s.byName[f.Name] = f
	}
	return s
}

// Field looks up a field definition by name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Registry maps survey years to their schema.
type Registry struct {
	schemas map[int]*Schema
}

// NewRegistry builds a registry from the given schemas.
func NewRegistry(schemas ...*Schema) *Registry {
	r := &Registry{schemas: make(map[int]*Schema, len(schemas))}
	for _, s := range schemas {
		r.schemas[s.Year] = s
	}
	return r
}

// Schema returns the schema for a year.
func (r *Registry) Schema(year int) (*Schema, error) {
	s, ok := r.schemas[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
	return s, nil
}

// Years lists the registered years in ascending order.
func (r *Registry) Years() []int {
	years := make([]int, 0, len(r.schemas))
	for y := range r.schemas {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Schemas lists the registered schemas ordered by year.
func (r *Registry) Schemas() []*Schema {
	out := make([]*Schema, 0, len(r.schemas))
	for _, y := range r.Years() {
		out = append(out, r.schemas[y])
	}
	return out
}
