package usecase

import (
	"context"

	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/policy"

	"github.com/google/uuid"
)

// SubmitReviewInput defines a rating left on a completed booking.
type SubmitReviewInput struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
	Target    entity.ReviewTarget
}

// ReviewUsecase records and aggregates booking reviews.
type ReviewUsecase interface {
	Submit(ctx context.Context, actor *policy.Actor, input *SubmitReviewInput) (*entity.Review, error)
	ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Review, error)
	AverageForProvider(ctx context.Context, providerID uuid.UUID) (*entity.ProviderRating, error)
}
