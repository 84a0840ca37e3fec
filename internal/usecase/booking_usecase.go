package usecase

import (
	"context"

	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/policy"

	"github.com/google/uuid"
)

// CreateBookingInput defines the data required to book a service.
// A nil Price books at the service's list price.
type CreateBookingInput struct {
	ServiceID           uuid.UUID
	Date                string
	Time                string
	Address             string
	SpecialInstructions string
	Price               *float64
}

// BookingUsecase owns the booking lifecycle.
type BookingUsecase interface {
	Create(ctx context.Context, actor *policy.Actor, input *CreateBookingInput) (*entity.Booking, error)
	Get(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID) (*entity.Booking, error)
	ListForCustomer(ctx context.Context, actor *policy.Actor) ([]*entity.Booking, error)
	ListForPartner(ctx context.Context, actor *policy.Actor) ([]*entity.Booking, error)

	// Transition sets the status directly. Only the owning partner may call it.
	Transition(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID, status string) (*entity.Booking, error)

	// RequestCompletionOtp emails a one-time code to the booking's customer.
	RequestCompletionOtp(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID) error

	// VerifyCompletionOtp completes the booking once the partner relays the customer's code.
	VerifyCompletionOtp(ctx context.Context, actor *policy.Actor, bookingID uuid.UUID, otp string) (*entity.Booking, error)
}
