package repository

import (
	"context"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
)

// AddressRepository defines the interface for customer address persistence.
type AddressRepository interface {
	// CreateAddress persists a new address.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// FindAddressByID retrieves an address by its unique ID or returns ErrAddressNotFound.
	FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)

	// FindAddressesByUser retrieves all addresses of a user, default first.
	FindAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)

	// ClearDefault unsets the default flag on every address of the user.
	ClearDefault(ctx context.Context, userID uuid.UUID) error

	// SetDefault flags one address as the default.
	SetDefault(ctx context.Context, id uuid.UUID) error

	// DeleteAddress removes an address by its ID.
	DeleteAddress(ctx context.Context, id uuid.UUID) error
}
