// Package validate wraps go-playground/validator with messages keyed by JSON field names.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = val.RegisterValidation("docid", func(fl validator.FieldLevel) bool {
		return DocID(fl.Field().String())
	})
	return val
}

// DocID reports whether s can be used as (or inside) a single Firestore document id: no path
// separators, not "." or "..", no reserved __x__ form, at most 256 bytes.
func DocID(s string) bool {
	if s == "" || s == "." || s == ".." || len(s) > 256 || strings.Contains(s, "/") {
		return false
	}
	return !(strings.HasPrefix(s, "__") && strings.HasSuffix(s, "__"))
}

// Struct validates s and returns a single readable error, or nil.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Var validates a single value against a tag such as "oneof=a b".
func Var(field string, value any, tag string) error {
	if err := v.Var(value, tag); err != nil {
		return fmt.Errorf("%s is invalid", field)
	}
	return nil
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", f, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", f)
	case "url":
		return f + " must be a valid URL"
	case "email":
		return f + " must be a valid email"
	case "docid":
		return f + " must be a plain id without slashes"
	default:
		return f + " is invalid"
	}
}
