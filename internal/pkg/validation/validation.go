package validation

import (
	"fmt"
	"regexp"
	"strings"

	"fieldside/internal/core/domain"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// IBAN in the IR scheme: "IR" followed by 24 digits.
var shebaPattern = regexp.MustCompile(`^IR\d{24}$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("sheba", func(fl validator.FieldLevel) bool {
		return shebaPattern.MatchString(fl.Field().String())
	})
}

// Struct validates a request struct against its validate tags and
// returns the first failure as a domain validation error.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return domain.NewValidationError(fieldName(fe), message(fe))
	}

	return domain.NewValidationError("", err.Error())
}

// Var validates a single value against a tag expression.
func Var(field string, value interface{}, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return domain.NewValidationError(field, fmt.Sprintf("failed %s validation", tag))
	}
	return nil
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "sheba":
		return "must be a valid sheba number (IR followed by 24 digits)"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
