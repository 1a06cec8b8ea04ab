// Package forms holds the field sets of the driver-facing forms and the pure
// validators that turn them into per-field error messages.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to its error message. A missing or empty
// entry means the field is valid.
type Errors map[string]string

// Valid reports whether no field carries an error.
func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Merge copies other into e, keeping messages already present in e.
func (e Errors) Merge(other Errors) Errors {
	if e == nil {
		e = Errors{}
	}
	for k, v := range other {
		if e[k] == "" && v != "" {
			e[k] = v
		}
	}
	return e
}

var (
	emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)
	tenDigits  = regexp.MustCompile(`^\d{10}$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their form name so errors line up with inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	must(v.RegisterValidation("basicemail", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
		return tenDigits.MatchString(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// check runs the struct tags of form and maps failures through messages,
// keyed by field then tag. Unknown pairs fall back to "<field> is invalid".
func check(form any, messages map[string]map[string]string) Errors {
	out := Errors{}
	err := validate.Struct(form)
	if err == nil {
		return out
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		panic(err) // only reachable with a non-struct argument
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, done := out[field]; done {
			continue
		}
		msg := messages[field][fe.Tag()]
		if msg == "" {
			msg = field + " is invalid"
		}
		out[field] = msg
	}
	return out
}
