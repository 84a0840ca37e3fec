package repository

import (
	"context"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingRepository manages bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error

	// FindByID returns the booking or ErrBookingNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// ListByUser returns the bookings made by a customer, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)

	// ListByProvider returns the bookings of every service owned by the partner, newest first.
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Booking, error)

	// UpdateStatus overwrites the status of one booking.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error

	CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error)
}
