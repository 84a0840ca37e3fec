package handler

import (
	"log/slog"

	"homeserve/internal/delivery/api/response"
	"homeserve/internal/usecase"
	"homeserve/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BookingHandlerParams holds dependencies for BookingHandler, injected by Fx.
type BookingHandlerParams struct {
	fx.In

	BookingUC usecase.BookingUsecase
	Logger    *slog.Logger
}

// BookingHandler serves customer and partner booking routes.
type BookingHandler struct {
	bookingUC usecase.BookingUsecase
	logger    *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler
func NewBookingHandler(params BookingHandlerParams) *BookingHandler {
	return &BookingHandler{
		bookingUC: params.BookingUC,
		logger:    params.Logger,
	}
}

// CreateBookingRequest represents the request body for booking a service
type CreateBookingRequest struct {
	ServiceID           string   `json:"serviceId"`
	Date                string   `json:"date"`
	Time                string   `json:"time"`
	Address             string   `json:"address"`
	SpecialInstructions string   `json:"specialInstructions"`
	Price               *float64 `json:"price"`
}

func (r *CreateBookingRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "serviceId", Check: validation.UUID(), Message: "Service id must be a UUID"},
		{Field: "date", Check: validation.Tag("datetime=2006-01-02"), Message: "Date must be formatted as YYYY-MM-DD"},
		{Field: "time", Check: validation.Tag("datetime=15:04"), Message: "Time must be formatted as HH:MM"},
		{Field: "address", Check: validation.Required(), Message: "Address is required"},
		{Field: "price", Check: validation.AtLeast(0), Message: "Price cannot be negative", Optional: true},
	}
}

func (r *CreateBookingRequest) Fields() map[string]any {
	return map[string]any{
		"serviceId": r.ServiceID,
		"date":      r.Date,
		"time":      r.Time,
		"address":   r.Address,
		"price":     r.Price,
	}
}

// UpdateBookingStatusRequest represents the request body for a direct status change
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateBookingStatusRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "status", Check: validation.Required(), Message: "Status is required"},
	}
}

func (r *UpdateBookingStatusRequest) Fields() map[string]any {
	return map[string]any{"status": r.Status}
}

// CompletionOTPRequest carries the code the customer relayed to the partner
type CompletionOTPRequest struct {
	OTP string `json:"otp"`
}

func (r *CompletionOTPRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "otp", Check: validation.Required(), Message: "Verification code is required"},
		{Field: "otp", Check: validation.Tag("numeric"), Message: "Verification code must be numeric"},
	}
}

func (r *CompletionOTPRequest) Fields() map[string]any {
	return map[string]any{"otp": r.OTP}
}

// CreateBooking books a service for the caller
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingUC.Create(c.Request().Context(), actor, &usecase.CreateBookingInput{
		ServiceID:           uuid.MustParse(req.ServiceID),
		Date:                req.Date,
		Time:                req.Time,
		Address:             req.Address,
		SpecialInstructions: req.SpecialInstructions,
		Price:               req.Price,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, newBookingView(booking))
}

// ListMyBookings returns the caller's bookings as a customer
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingUC.ListForCustomer(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(bookings, newBookingView))
}

// GetBooking returns one booking visible to the caller
func (h *BookingHandler) GetBooking(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.bookingUC.Get(c.Request().Context(), actor, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newBookingView(booking))
}

// ListPartnerBookings returns bookings of the calling partner's services
func (h *BookingHandler) ListPartnerBookings(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingUC.ListForPartner(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(bookings, newBookingView))
}

// UpdateStatus sets a booking status without the customer code
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateBookingStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingUC.Transition(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newBookingView(booking))
}

// RequestCompletionOTP emails the customer a completion code
func (h *BookingHandler) RequestCompletionOTP(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.bookingUC.RequestCompletionOtp(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Completion code sent to the customer")
}

// VerifyCompletionOTP completes a booking with the customer's code
func (h *BookingHandler) VerifyCompletionOTP(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req CompletionOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.bookingUC.VerifyCompletionOtp(c.Request().Context(), actor, id, req.OTP)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newBookingView(booking))
}
