package usecase

import (
	"context"

	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/policy"

	"github.com/google/uuid"
)

// ProviderProfileInput defines the editable fields of a partner profile.
type ProviderProfileInput struct {
	OccupationID    *uuid.UUID
	Bio             string
	ExperienceYears int
}

// AddressInput defines a new customer address.
type AddressInput struct {
	Label       string
	FullAddress string
	IsDefault   bool
}

// ProfileUsecase manages partner profiles and customer addresses.
type ProfileUsecase interface {
	GetProviderProfile(ctx context.Context, actor *policy.Actor) (*entity.ProviderProfile, error)
	UpsertProviderProfile(ctx context.Context, actor *policy.Actor, input *ProviderProfileInput) (*entity.ProviderProfile, error)

	ListAddresses(ctx context.Context, actor *policy.Actor) ([]*entity.Address, error)

	// CreateAddress stores an address. The first address of a user always becomes the default.
	CreateAddress(ctx context.Context, actor *policy.Actor, input *AddressInput) (*entity.Address, error)
	DeleteAddress(ctx context.Context, actor *policy.Actor, id uuid.UUID) error
	SetDefaultAddress(ctx context.Context, actor *policy.Actor, id uuid.UUID) (*entity.Address, error)
}
