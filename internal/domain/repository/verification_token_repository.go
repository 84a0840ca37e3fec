package repository

import (
	"context"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
)

// VerificationTokenRepository persists pending email OTPs.
type VerificationTokenRepository interface {
	// DeleteByUserID removes any token issued to the user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// Create stores a new token. The store holds at most one token per user.
	Create(ctx context.Context, token *entity.EmailVerificationToken) error

	// FindLatestByEmail returns the most recently created token for the email
	// or ErrNoVerificationRequest.
	FindLatestByEmail(ctx context.Context, email string) (*entity.EmailVerificationToken, error)

	// IncrementAttempts records one failed check.
	IncrementAttempts(ctx context.Context, id uuid.UUID) error

	// Delete removes a consumed or expired token. A token already gone yields
	// ErrNoVerificationRequest, so only one of two concurrent verifications wins.
	Delete(ctx context.Context, id uuid.UUID) error
}
