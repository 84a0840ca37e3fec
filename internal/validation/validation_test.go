package validation

import (
	"errors"
	"testing"

	domainerrors "homeserve/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingSchema = Schema{
	{Field: "serviceId", Check: UUID(), Message: "serviceId must be a valid id"},
	{Field: "date", Check: Tag("datetime=2006-01-02"), Message: "date must be YYYY-MM-DD"},
	{Field: "price", Check: AtLeast(0), Message: "price must not be negative"},
	{Field: "specialInstructions", Check: MinLength(3), Message: "instructions are too short", Optional: true},
}

func TestSchema_Validate_Success(t *testing.T) {
	err := bookingSchema.Validate(map[string]any{
		"serviceId": uuid.NewString(),
		"date":      "2026-03-14",
		"price":     500.0,
	})

	assert.NoError(t, err)
}

func TestSchema_Validate_CollectsFailures(t *testing.T) {
	err := bookingSchema.Validate(map[string]any{
		"serviceId":           "not-a-uuid",
		"date":                "14/03/2026",
		"price":               -1,
		"specialInstructions": "x",
	})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 4)
	assert.Equal(t, "serviceId", verr.Fields[0].Field)
	assert.Equal(t, "serviceId must be a valid id", verr.Message())
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	appErr, ok := domainerrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestSchema_Validate_FirstFailurePerField(t *testing.T) {
	schema := Schema{
		{Field: "otp", Check: Required(), Message: "otp is required"},
		{Field: "otp", Check: Tag("numeric,len=6"), Message: "otp must be 6 digits"},
	}

	err := schema.Validate(map[string]any{})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "otp is required", verr.Fields[0].Message)

	err = schema.Validate(map[string]any{"otp": "12ab56"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "otp must be 6 digits", verr.Fields[0].Message)

	assert.NoError(t, schema.Validate(map[string]any{"otp": "482913"}))
}

func TestSchema_Validate_OptionalSkipsEmpty(t *testing.T) {
	var comment *string
	schema := Schema{{Field: "comment", Check: MinLength(5), Message: "too short", Optional: true}}

	assert.NoError(t, schema.Validate(map[string]any{"comment": comment}))
	assert.NoError(t, schema.Validate(map[string]any{"comment": ""}))
	assert.Error(t, schema.Validate(map[string]any{"comment": "abc"}))
}

func TestPredicates(t *testing.T) {
	rating := 4
	assert.True(t, Between(1, 5)(rating))
	assert.True(t, Between(1, 5)(&rating))
	assert.False(t, Between(1, 5)(6))
	assert.False(t, Between(1, 5)("5"))

	assert.True(t, GreaterThan(0)(30))
	assert.False(t, GreaterThan(0)(0))

	assert.True(t, OneOf("provider", "customer")("customer"))
	assert.False(t, OneOf("provider", "customer")("admin"))

	assert.True(t, Tag("email")("jane@example.com"))
	assert.False(t, Tag("email")("jane"))
	assert.False(t, Tag("email")(nil))

	assert.True(t, Required()("x"))
	assert.False(t, Required()("   "))
	assert.False(t, Required()(nil))

	assert.True(t, UUID()(uuid.New()))
	assert.False(t, UUID()(uuid.Nil))
}
