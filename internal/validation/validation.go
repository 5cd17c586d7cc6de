// Package validation checks request structs against their `binding` tags,
// the same tags gin uses when binding, and reports the first failure as a
// domain input error named after the JSON field.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"wardrobe-storefront/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
		Configure(validate)
	})
	return validate
}

// Configure makes v report fields by their JSON name. It is applied to
// gin's binding engine too, so bind failures read like Struct failures.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// Struct validates v. The returned error matches domain.ErrInvalidInput.
func Struct(v interface{}) error {
	return Translate(instance().Struct(v))
}

// Translate turns a validation or request decoding error into a domain
// input error carrying a client-facing message. nil stays nil.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.Invalid(message(verrs[0]))
	}
	return domain.Invalid("malformed request")
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Bool {
			return field + " must be accepted"
		}
		return field + " required"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "e164":
		return field + " must be a phone number in international format"
	default:
		return fmt.Sprintf("%s failed %s check", field, fe.Tag())
	}
}
