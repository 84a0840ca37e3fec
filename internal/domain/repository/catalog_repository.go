package repository

import (
	"context"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
)

// CatalogRepository manages the admin-owned taxonomy: categories, service types and occupations.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]*entity.ServiceCategory, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.ServiceCategory, error)
	CreateCategory(ctx context.Context, category *entity.ServiceCategory) error
	UpdateCategory(ctx context.Context, category *entity.ServiceCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// ListServiceTypes returns all types, or only those of one category when categoryID is set.
	ListServiceTypes(ctx context.Context, categoryID *uuid.UUID) ([]*entity.ServiceType, error)
	FindServiceTypeByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error)
	CreateServiceType(ctx context.Context, serviceType *entity.ServiceType) error
	UpdateServiceType(ctx context.Context, serviceType *entity.ServiceType) error
	DeleteServiceType(ctx context.Context, id uuid.UUID) error

	ListOccupations(ctx context.Context) ([]*entity.Occupation, error)
	FindOccupationByID(ctx context.Context, id uuid.UUID) (*entity.Occupation, error)
	CreateOccupation(ctx context.Context, occupation *entity.Occupation) error
	UpdateOccupation(ctx context.Context, occupation *entity.Occupation) error
	DeleteOccupation(ctx context.Context, id uuid.UUID) error
}
