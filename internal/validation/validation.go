// Package validation evaluates declarative rule tables against request fields.
// A Schema is data: handlers describe their inputs as a list of rules and a
// single engine checks them, so no route hand-writes its own checks.
package validation

import (
	"net/http"
	"reflect"
	"strings"

	domainerrors "homeserve/internal/domain/errors"
)

// Predicate reports whether a field value is acceptable.
type Predicate func(value any) bool

// Rule checks one field. Optional rules are skipped when the field is absent or empty.
type Rule struct {
	Field    string
	Check    Predicate
	Message  string
	Optional bool
}

// Schema is an ordered rule table. Several rules may target the same field;
// only the first failing rule per field is reported.
type Schema []Rule

// Validatable is implemented by request payloads that declare their own schema.
type Validatable interface {
	Schema() Schema
	Fields() map[string]any
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects every failed field. It matches ErrValidationFailed under errors.Is.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) hold.
func (e *Error) Is(target error) bool {
	return target == domainerrors.ErrValidationFailed
}

// HTTPCode returns the HTTP status code
func (e *Error) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *Error) ErrorCode() string {
	return domainerrors.ErrValidationFailed.ErrorCode()
}

// Message returns the first failure, which is what clients usually display.
func (e *Error) Message() string {
	if len(e.Fields) == 0 {
		return domainerrors.ErrValidationFailed.Message()
	}

	return e.Fields[0].Message
}

// Details returns every failure joined into one string.
func (e *Error) Details() string {
	return e.Error()
}

// Validate runs the schema against fields and returns *Error when any rule fails.
func (s Schema) Validate(fields map[string]any) error {
	var failures []FieldError
	failed := make(map[string]bool)

	for _, rule := range s {
		if failed[rule.Field] {
			continue
		}

		value := fields[rule.Field]
		if rule.Optional && isEmpty(value) {
			continue
		}

		if rule.Check == nil || rule.Check(value) {
			continue
		}

		failed[rule.Field] = true
		failures = append(failures, FieldError{Field: rule.Field, Message: rule.Message})
	}

	if len(failures) > 0 {
		return &Error{Fields: failures}
	}

	return nil
}

// Validate checks v against its declared schema.
func Validate(v Validatable) error {
	return v.Schema().Validate(v.Fields())
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}

		return isEmpty(rv.Elem().Interface())
	case reflect.String, reflect.Slice, reflect.Map:
		return rv.Len() == 0
	default:
		return false
	}
}
