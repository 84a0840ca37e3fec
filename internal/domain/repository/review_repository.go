package repository

import (
	"context"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewRepository manages booking reviews.
type ReviewRepository interface {
	// Create persists a review. A second review for the same booking and target
	// yields ErrDuplicateReview.
	Create(ctx context.Context, review *entity.Review) error

	ExistsForBooking(ctx context.Context, bookingID uuid.UUID, target entity.ReviewTarget) (bool, error)

	// ListForProvider returns provider-directed reviews of the partner, newest first.
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Review, error)

	// AverageForProvider aggregates the provider-directed reviews of the partner.
	AverageForProvider(ctx context.Context, providerID uuid.UUID) (*entity.ProviderRating, error)

	// Summary returns the total number of reviews and the mean rating across all of them.
	Summary(ctx context.Context) (count int64, average float64, err error)
}
