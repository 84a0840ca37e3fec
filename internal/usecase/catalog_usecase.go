package usecase

import (
	"context"

	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/policy"

	"github.com/google/uuid"
)

// CategoryInput defines the editable fields of a service category.
type CategoryInput struct {
	Name        string
	Description string
}

// ServiceTypeInput defines the editable fields of a service type.
type ServiceTypeInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
}

// OccupationInput defines the editable fields of an occupation.
type OccupationInput struct {
	Name string
}

// ServiceInput defines the editable fields of a bookable service.
// A nil Availability means available.
type ServiceInput struct {
	Name            string
	Description     string
	Price           float64
	ServiceTypeID   *uuid.UUID
	CategoryID      *uuid.UUID
	DurationMinutes int
	Availability    *bool
	TimeSlots       []string
}

// CatalogUsecase manages the taxonomy and the bookable services.
type CatalogUsecase interface {
	ListCategories(ctx context.Context) ([]*entity.ServiceCategory, error)
	CreateCategory(ctx context.Context, actor *policy.Actor, input *CategoryInput) (*entity.ServiceCategory, error)
	UpdateCategory(ctx context.Context, actor *policy.Actor, id uuid.UUID, input *CategoryInput) (*entity.ServiceCategory, error)
	DeleteCategory(ctx context.Context, actor *policy.Actor, id uuid.UUID) error

	ListServiceTypes(ctx context.Context, categoryID *uuid.UUID) ([]*entity.ServiceType, error)
	CreateServiceType(ctx context.Context, actor *policy.Actor, input *ServiceTypeInput) (*entity.ServiceType, error)
	UpdateServiceType(ctx context.Context, actor *policy.Actor, id uuid.UUID, input *ServiceTypeInput) (*entity.ServiceType, error)
	DeleteServiceType(ctx context.Context, actor *policy.Actor, id uuid.UUID) error

	ListOccupations(ctx context.Context) ([]*entity.Occupation, error)
	CreateOccupation(ctx context.Context, actor *policy.Actor, input *OccupationInput) (*entity.Occupation, error)
	UpdateOccupation(ctx context.Context, actor *policy.Actor, id uuid.UUID, input *OccupationInput) (*entity.Occupation, error)
	DeleteOccupation(ctx context.Context, actor *policy.Actor, id uuid.UUID) error

	ListServices(ctx context.Context, filter entity.ServiceFilter) ([]*entity.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error)

	// ListPartnerServices returns the services provided by the calling partner.
	ListPartnerServices(ctx context.Context, actor *policy.Actor) ([]*entity.Service, error)

	// CreateService creates a service owned by a calling partner, or an unowned
	// catalog service when the caller is an admin.
	CreateService(ctx context.Context, actor *policy.Actor, input *ServiceInput) (*entity.Service, error)
	UpdateService(ctx context.Context, actor *policy.Actor, id uuid.UUID, input *ServiceInput) (*entity.Service, error)

	// DeleteService removes a service of the calling partner; admins may remove any service.
	DeleteService(ctx context.Context, actor *policy.Actor, id uuid.UUID) error
}
