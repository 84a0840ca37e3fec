package validation

import (
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Engine returns the shared go-playground validator, used for struct tags and Tag predicates.
func Engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}

			return name
		})
	})

	return validate
}

// Tag adapts a validator tag such as "email" or "numeric,len=6" into a predicate.
func Tag(tag string) Predicate {
	return func(value any) bool {
		if value == nil {
			return false
		}

		return Engine().Var(deref(value), tag) == nil
	}
}

// Required fails on nil, empty strings and empty collections.
func Required() Predicate {
	return func(value any) bool {
		if s, ok := deref(value).(string); ok {
			return strings.TrimSpace(s) != ""
		}

		return !isEmpty(value)
	}
}

// MinLength accepts strings with at least n runes.
func MinLength(n int) Predicate {
	return func(value any) bool {
		s, ok := deref(value).(string)

		return ok && len([]rune(s)) >= n
	}
}

// Between accepts numbers in [lo, hi].
func Between(lo, hi float64) Predicate {
	return func(value any) bool {
		n, ok := toFloat(value)

		return ok && n >= lo && n <= hi
	}
}

// AtLeast accepts numbers >= lo.
func AtLeast(lo float64) Predicate {
	return func(value any) bool {
		n, ok := toFloat(value)

		return ok && n >= lo
	}
}

// GreaterThan accepts numbers > lo.
func GreaterThan(lo float64) Predicate {
	return func(value any) bool {
		n, ok := toFloat(value)

		return ok && n > lo
	}
}

// OneOf accepts strings from a closed set.
func OneOf(allowed ...string) Predicate {
	return func(value any) bool {
		s, ok := deref(value).(string)

		return ok && slices.Contains(allowed, s)
	}
}

// UUID accepts canonical UUID strings and non-nil uuid.UUID values.
func UUID() Predicate {
	return func(value any) bool {
		switch v := deref(value).(type) {
		case uuid.UUID:
			return v != uuid.Nil
		case string:
			id, err := uuid.Parse(v)

			return err == nil && id != uuid.Nil
		default:
			return false
		}
	}
}

func deref(value any) any {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}

	return rv.Interface()
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(deref(value))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
