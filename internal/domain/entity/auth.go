package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents a long-lived, authorized user session.
// It is used to obtain a new Access Token after the old one expires, without requiring credentials.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this specific refresh token record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // The exact time when this refresh token will expire and become invalid.
	CreatedAt time.Time // Timestamp of when this session was created (i.e., when the user logged in).
}

// EmailVerificationToken is a pending one-time code bound to a user's email.
// At most one exists per user.
type EmailVerificationToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Email     string
	OTPHash   string // bcrypt hash of the code; the code itself is never stored.
	ExpiresAt time.Time
	Attempts  int // Failed checks so far.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the token is past its expiry at the given instant.
func (t *EmailVerificationToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
