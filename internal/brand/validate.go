package brand

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names so API clients see the names they sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterStructValidation(locationPairRule, Location{})
	})
	return validate
}

// locationPairRule enforces that latitude and longitude come together.
func locationPairRule(sl validator.StructLevel) {
	loc := sl.Current().Interface().(Location)
	if (loc.Latitude == nil) != (loc.Longitude == nil) {
		if loc.Latitude == nil {
			sl.ReportError(loc.Latitude, "latitude", "Latitude", "required_with_longitude", "")
		} else {
			sl.ReportError(loc.Longitude, "longitude", "Longitude", "required_with_latitude", "")
		}
	}
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError lists every rule a profile violated.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return "invalid brand profile: " + strings.Join(parts, ", ")
}

// Validate checks a profile against its field rules and the location
// invariants. It returns a *ValidationError on rule failures.
func Validate(p *BrandProfile) error {
	if p == nil {
		return &ValidationError{Fields: []FieldError{{Field: "profile", Rule: "required"}}}
	}
	return Struct(p)
}

// Struct validates any value with `validate` tags using the shared
// validator. Rule failures come back as *ValidationError.
func Struct(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Rule: fe.Tag()})
	}
	return out
}
