package repository

import (
	"context"

	"homeserve/internal/domain/entity"

	"github.com/google/uuid"
)

// ServiceRepository manages bookable services.
type ServiceRepository interface {
	List(ctx context.Context, filter entity.ServiceFilter) ([]*entity.Service, error)

	// FindByID returns the service or ErrServiceNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)

	Create(ctx context.Context, svc *entity.Service) error
	Update(ctx context.Context, svc *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
