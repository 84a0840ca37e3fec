package service

import (
	"context"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
)

// RatingCache caches provider rating aggregates.
type RatingCache interface {
	// Get returns the cached aggregate and whether it was present.
	Get(ctx context.Context, providerID uuid.UUID) (*entity.ProviderRating, bool, error)
	Set(ctx context.Context, rating *entity.ProviderRating) error
	Invalidate(ctx context.Context, providerID uuid.UUID) error
}
