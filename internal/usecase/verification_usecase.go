package usecase

import (
	"context"

	"homeserve/internal/domain/entity"
)

// VerificationUsecase issues and checks email one-time codes. It backs both
// signup verification and booking completion.
type VerificationUsecase interface {
	// CreateAndSend replaces any pending code of the user and emails a new one.
	// A delivery failure yields ErrDeliveryFailed; the stored code stays valid.
	CreateAndSend(ctx context.Context, user *entity.User) error

	// Resend issues a new code to an existing, unverified account.
	Resend(ctx context.Context, email string) error

	// Verify consumes the pending code of email and returns the verified user.
	Verify(ctx context.Context, email, otp string) (*entity.User, error)
}
