package repository

import (
	"context"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
)

// ProviderProfileRepository manages partner profiles, one per user.
type ProviderProfileRepository interface {
	// FindByUserID returns the profile or ErrProfileNotFound.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error)

	// Upsert creates the profile or replaces the existing one for the same user.
	Upsert(ctx context.Context, profile *entity.ProviderProfile) error
}
