// Package validation turns form structs into field -> code violations.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Violations maps a form field name to a violation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already has one.
func (v Violations) Add(field, code string) {
	if _, exists := v[field]; !exists {
		v[field] = code
	}
}

// First returns the first violated field in order, if any.
func (v Violations) First(order ...string) (field, code string, ok bool) {
	for _, f := range order {
		if c, exists := v[f]; exists {
			return f, c, true
		}
	}
	return "", "", false
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// Report fields by their form name.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		// Decimals validate by sign (gt=0 positive, gte=0 non-negative),
		// never through a float conversion.
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			if d, ok := v.Interface().(decimal.Decimal); ok {
				return d.Sign()
			}
			return nil
		}, decimal.Decimal{})
	})
	return validate
}

// Struct validates s using its `validate` tags and merges the result into v.
func Struct(s any, v Violations) {
	err := instance().Struct(s)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.Add("_form", "invalid")
		return
	}
	for _, fe := range fieldErrs {
		v.Add(fe.Field(), codeFor(fe))
	}
}

func codeFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "email"
	case "max":
		return "too_long"
	case "min":
		return "too_short"
	case "eqfield":
		return "must_match"
	case "gt":
		return "must_be_positive"
	case "gte":
		return "must_be_non_negative"
	default:
		return "invalid"
	}
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
	}
}

func PositiveDecimal(field string, val decimal.Decimal, v Violations) {
	if !val.IsPositive() {
		v.Add(field, "must_be_positive")
	}
}

// DecimalFits reports "out_of_range" unless val has at most maxDigits digits,
// of which at most places follow the decimal point.
func DecimalFits(field string, val decimal.Decimal, maxDigits, places int, v Violations) {
	exp := int64(val.Exponent())
	if exp > int64(maxDigits) || exp < -int64(maxDigits) {
		v.Add(field, "out_of_range")
		return
	}
	digits := int64(val.NumDigits())
	decimals := int64(0)
	switch {
	case exp >= 0:
		digits += exp
	case -exp > digits:
		digits, decimals = -exp, -exp
	default:
		decimals = -exp
	}
	if digits > int64(maxDigits) || decimals > int64(places) || digits-decimals > int64(maxDigits-places) {
		v.Add(field, "out_of_range")
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v.Add(field, "must_be_non_negative")
	}
}
