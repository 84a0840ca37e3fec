// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the marketplace: a customer, a partner or an admin.
type User struct {
	ID              uuid.UUID  // The Global Unique Identifier (GUID) for the user.
	ExternalUID     string     // Stable identifier issued by the identity provider.
	Email           string     // Unique login identifier.
	PasswordHash    *string    // bcrypt hash; nil for legacy accounts that only exist at the identity provider.
	FullName        string     // The user's display name.
	Role            Role       // Fixed at registration or by an admin.
	IsEmailVerified bool       // Flipped only by a successful OTP verification.
	LastLogin       *time.Time // Set on every successful login.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasPassword reports whether a local password hash is stored for the user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
