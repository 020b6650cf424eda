package validators

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance with the project's custom tags registered:
//
//   - timezone: an IANA zone name accepted by time.LoadLocation ("" and "Local" included)
func New() *Validate {
	v := validator.New()
	_ = v.RegisterValidation("timezone", validateTimezone)
	return v
}

func validateTimezone(fl validator.FieldLevel) bool {
	_, err := time.LoadLocation(fl.Field().String())
	return err == nil
}
