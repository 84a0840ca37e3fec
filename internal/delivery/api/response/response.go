package response

import (
	"net/http"

	deliverycontext "homeserve/internal/delivery/context"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/errors"

	"github.com/labstack/echo/v4"
)

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, domainerrors.SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    meta(c),
	})
}

// Created returns a 201 response
func Created(c echo.Context, data any) error {
	return Success(c, http.StatusCreated, data)
}

// OK returns a 200 response
func OK(c echo.Context, data any) error {
	return Success(c, http.StatusOK, data)
}

// Message returns a 200 response whose data is a single message.
func Message(c echo.Context, message string) error {
	return Success(c, http.StatusOK, map[string]string{"message": message})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for authentication/authorization errors
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, domainerrors.ErrorResponse{
		Success: false,
		Error:   message,
		Code:    errorCode,
		Details: details,
		Meta:    meta(c),
	})
}

// BindingError reports a body that could not be decoded. The error handler renders it.
func BindingError(err error) error {
	return domainerrors.ErrValidationFailed.WithDetails(err.Error())
}

// InvalidID reports a malformed path identifier.
func InvalidID(param string) error {
	return domainerrors.ErrValidationFailed.WithDetails(param + " must be a valid UUID")
}

// HandleAppError hands err to the centralized error handler with a stack attached.
func HandleAppError(c echo.Context, err error) error {
	return errors.WithStack(err)
}

func meta(c echo.Context) *domainerrors.MetaInfo {
	return &domainerrors.MetaInfo{
		RequestID: deliverycontext.GetRequestID(c),
	}
}
