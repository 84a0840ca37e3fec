// Package validator plugs the rule-table validation engine into echo.
package validator

import (
	"homeserve/internal/errors"
	"homeserve/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates the echo validator backed by the shared engine.
func New() echo.Validator {
	return &RequestValidator{validate: validation.Engine()}
}

// Validate runs the declared schema of Validatable payloads and falls back to
// struct tags for everything else. Failures are returned as *validation.Error.
func (v *RequestValidator) Validate(i any) error {
	if req, ok := i.(validation.Validatable); ok {
		return validation.Validate(req)
	}

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	failures := make([]validation.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		failures = append(failures, validation.FieldError{
			Field:   fe.Field(),
			Message: fe.Field() + " failed the " + fe.Tag() + " rule",
		})
	}

	return &validation.Error{Fields: failures}
}
