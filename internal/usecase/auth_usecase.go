// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a customer.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// RegisterPartnerInput defines the data required to register a partner with a provider profile.
type RegisterPartnerInput struct {
	Email           string
	Password        string
	FullName        string
	OccupationID    *uuid.UUID
	Bio             string
	ExperienceYears int
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by every operation that issues a token pair.
type AuthOutput struct {
	User   *entity.User
	Tokens *service.TokenPair

	// EmailOTPSent is false when the verification email could not be delivered.
	// Registration still succeeds; the user can ask for a resend.
	EmailOTPSent bool
}

// AuthUsecase defines the credential and session operations.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	RegisterPartner(ctx context.Context, input *RegisterPartnerInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh rotates the session: the presented refresh token is consumed and a new pair issued.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
