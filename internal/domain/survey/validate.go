package survey

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

// allocationEpsilon absorbs float noise such as 33.3 + 33.3 + 33.4.
const allocationEpsilon = 1e-9

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate normalizes form input and checks it against the schema. It never
// stops at the first problem: every violation is returned.
func (s *Schema) Validate(input map[string]interface{}) (entities.Record, FieldErrors) {
	rec, malformed := s.Normalize(input)
	var errs FieldErrors

	bad := make(map[string]bool, len(malformed))
	for _, name := range malformed {
		bad[name] = true
		f, _ := s.Field(name)
		errs.add(name, formatMessage(f.Kind))
	}

	for _, f := range s.Fields {
		if bad[f.Name] {
			continue
		}
		v, ok := rec.Get(f.Name)
		if !ok {
			if f.Required {
				errs.add(f.Name, "This field is required")
			}
			continue
		}
		s.validateField(f, v, &errs)
	}

	for _, r := range s.Ranges {
		lo, okMin := rec.Number(r.Min)
		hi, okMax := rec.Number(r.Max)
		if okMin && okMax && hi < lo {
			errs.add(r.Max, fmt.Sprintf("Must be greater than or equal to %s", r.Min))
		}
	}

	return rec, errs
}

// Decode normalizes a partial form, as saved in a draft. Only answers that
// cannot be decoded are rejected; required and range rules wait for submit.
func (s *Schema) Decode(input map[string]interface{}) (entities.Record, FieldErrors) {
	rec, malformed := s.Normalize(input)
	var errs FieldErrors
	for _, name := range malformed {
		f, _ := s.Field(name)
		errs.add(name, formatMessage(f.Kind))
	}
	return rec, errs
}

func (s *Schema) validateField(f Field, v entities.Value, errs *FieldErrors) {
	switch f.Kind {
	case entities.KindAllocation:
		for _, key := range entities.SortedKeys(v.Allocation) {
			checkVar(v.Allocation[key], f.Rules, fmt.Sprintf("%s[%s]", f.Name, key), errs)
		}
		if f.Sum != nil && len(v.Allocation) > 0 {
			total := entities.AllocationTotal(v.Allocation)
			if total < f.Sum.Min-allocationEpsilon || total > f.Sum.Max+allocationEpsilon {
				errs.add(f.Name, f.Sum.Message)
			}
		}
		return
	case entities.KindTeam:
		for i, member := range v.Team {
			err := validate.Struct(member)
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					errs.add(fmt.Sprintf("%s[%d].%s", f.Name, i, fe.Field()), validationMessage(fe))
				}
			}
		}
		return
	case entities.KindYear:
		if v.Number == entities.PresentYear {
			return
		}
	case entities.KindSet:
		if f.Required && len(v.Set) == 0 {
			errs.add(f.Name, "Select at least one option")
			return
		}
	}
	checkVar(v.Interface(), f.Rules, f.Name, errs)
}

func checkVar(value interface{}, rules, path string, errs *FieldErrors) {
	if rules == "" {
		return
	}
	var verrs validator.ValidationErrors
	if err := validate.Var(value, rules); errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.add(path, validationMessage(fe))
		}
	}
}

// ValidateAccount checks the viewer account form, including the password confirmation.
func ValidateAccount(v entities.NewViewer) FieldErrors {
	var errs FieldErrors
	var verrs validator.ValidationErrors
	if err := validate.Struct(v); errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.add(fe.Field(), validationMessage(fe))
		}
	}
	return errs
}

func formatMessage(kind entities.Kind) string {
	switch kind {
	case entities.KindNumber:
		return "Must be numeric"
	case entities.KindYear:
		return "Must be a year or \"present\""
	case entities.KindSet:
		return "Must be a list of options"
	case entities.KindAllocation:
		return "Must be a mapping of category to percentage"
	case entities.KindTeam:
		return "Must be a list of team members"
	case entities.KindFlag:
		return "Must be true or false"
	}
	return "Invalid value"
}

// validationMessage returns a human-readable validation message
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "url":
		return "Invalid URL format"
	case "eqfield":
		if e.Param() == "Password" {
			return "Passwords don't match"
		}
		return "Must match " + e.Param()
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		if e.Kind() == reflect.Slice {
			return "Select at least " + e.Param() + " option(s)"
		}
		return "Must be at least " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}

// CheckAllocations enforces the submit-time cap on weighted allocations.
// It reports the first capped field whose total exceeds 100%.
func (s *Schema) CheckAllocations(rec entities.Record) error {
	for _, name := range s.Capped {
		if total := entities.AllocationTotal(rec.Allocation(name)); total > 100+allocationEpsilon {
			return &AllocationExceededError{Field: name, Total: total}
		}
	}
	return nil
}
