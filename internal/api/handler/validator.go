package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/virtualvault/storefront/internal/core/domain"
)

// FieldViolation is one failed rule on one request field.
type FieldViolation struct {
	Field   string
	Tag     string
	Message string
}

// ValidationError lists violations in struct field order.
type ValidationError struct {
	Fields []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// First returns the first violation; callers that report one field at a
// time use it.
func (e *ValidationError) First() FieldViolation {
	if len(e.Fields) == 0 {
		return FieldViolation{}
	}
	return e.Fields[0]
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in messages follow the json (or form) tag.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	// RegisterValidation only fails on an empty or reserved tag name.
	_ = v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return !domain.AddressMissing(fl.Field().Interface())
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := &ValidationError{Fields: make([]FieldViolation, 0, len(ve))}
			for _, fe := range ve {
				out.Fields = append(out.Fields, FieldViolation{
					Field:   fe.Field(),
					Tag:     fe.Tag(),
					Message: fieldError(fe),
				})
			}
			return out
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "numeric", "number":
		return field + " must be a number"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
	case "address":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
