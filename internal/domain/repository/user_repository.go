// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
// Implementations report missing rows with the matching not-found error from the domain errors package.
package repository

import (
	"context"
	"time"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. A taken email yields ErrUserAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	// UpdateLastLogin stamps a successful login.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// MarkEmailVerified sets IsEmailVerified. Calling it twice is harmless.
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	// UpdateRole changes the role of a user.
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error

	// List returns users ordered by creation, optionally restricted to one role.
	List(ctx context.Context, role *entity.Role) ([]*entity.User, error)

	// CountByRole returns the number of users per role.
	CountByRole(ctx context.Context) (map[entity.Role]int64, error)
}
