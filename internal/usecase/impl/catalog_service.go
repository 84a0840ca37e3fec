package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "homeserve/internal/delivery/context"
	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/policy"
	"homeserve/internal/domain/repository"
	"homeserve/internal/usecase"
	"homeserve/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager   repository.TransactionManager
	catalogRepo repository.CatalogRepository
	serviceRepo repository.ServiceRepository
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CatalogRepo repository.CatalogRepository
	ServiceRepo repository.ServiceRepository
	Logger      *slog.Logger
}

var (
	nameSchema = validation.Schema{
		{Field: "name", Check: validation.Required(), Message: "name is required"},
	}

	serviceSchema = validation.Schema{
		{Field: "name", Check: validation.Required(), Message: "name is required"},
		{Field: "price", Check: validation.AtLeast(0), Message: "price must not be negative"},
		{Field: "durationMinutes", Check: validation.GreaterThan(0), Message: "durationMinutes must be positive"},
	}
)

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:   params.TxManager,
		catalogRepo: params.CatalogRepo,
		serviceRepo: params.ServiceRepo,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func requireName(name string) error {
	return nameSchema.Validate(map[string]any{"name": name})
}

// --- Categories ---

func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.ServiceCategory, error) {
	categories, err := srv.catalogRepo.ListCategories(ctx)

	return categories, errors.Wrap(err, "failed to list categories")
}

func (srv *catalogService) CreateCategory(ctx context.Context, actor *policy.Actor, input *usecase.CategoryInput) (*entity.ServiceCategory, error) {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireName(input.Name); err != nil {
		return nil, err
	}

	category := &entity.ServiceCategory{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}
	if err := srv.catalogRepo.CreateCategory(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}
	srv.log(ctx).Info("Category created", slog.Any("categoryID", category.ID))

	return category, nil
}

func (srv *catalogService) UpdateCategory(ctx context.Context, actor *policy.Actor, id uuid.UUID, input *usecase.CategoryInput) (*entity.ServiceCategory, error) {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireName(input.Name); err != nil {
		return nil, err
	}

	var category *entity.ServiceCategory
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		catalogRepo := repoFactory.NewCatalogRepository()

		found, err := catalogRepo.FindCategoryByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to find category")
		}
		found.Name = strings.TrimSpace(input.Name)
		found.Description = strings.TrimSpace(input.Description)

		if err := catalogRepo.UpdateCategory(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update category")
		}
		category = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute category update transaction")
	}

	return category, nil
}

func (srv *catalogService) DeleteCategory(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return err
	}

	return errors.Wrap(srv.catalogRepo.DeleteCategory(ctx, id), "failed to delete category")
}

// --- Service types ---

func (srv *catalogService) ListServiceTypes(ctx context.Context, categoryID *uuid.UUID) ([]*entity.ServiceType, error) {
	serviceTypes, err := srv.catalogRepo.ListServiceTypes(ctx, categoryID)

	return serviceTypes, errors.Wrap(err, "failed to list service types")
}

func (srv *catalogService) CreateServiceType(ctx context.Context, actor *policy.Actor, input *usecase.ServiceTypeInput) (*entity.ServiceType, error) {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireName(input.Name); err != nil {
		return nil, err
	}

	serviceType := &entity.ServiceType{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		catalogRepo := repoFactory.NewCatalogRepository()

		if _, err := catalogRepo.FindCategoryByID(ctx, input.CategoryID); err != nil {
			return errors.Wrap(err, "failed to find category")
		}

		return errors.Wrap(catalogRepo.CreateServiceType(ctx, serviceType), "failed to create service type")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute service type transaction")
	}

	return serviceType, nil
}

func (srv *catalogService) UpdateServiceType(ctx context.Context, actor *policy.Actor, id uuid.UUID, input *usecase.ServiceTypeInput) (*entity.ServiceType, error) {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireName(input.Name); err != nil {
		return nil, err
	}

	var serviceType *entity.ServiceType
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		catalogRepo := repoFactory.NewCatalogRepository()

		found, err := catalogRepo.FindServiceTypeByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to find service type")
		}

		if input.CategoryID != uuid.Nil && input.CategoryID != found.CategoryID {
			if _, err := catalogRepo.FindCategoryByID(ctx, input.CategoryID); err != nil {
				return errors.Wrap(err, "failed to find category")
			}
			found.CategoryID = input.CategoryID
		}
		found.Name = strings.TrimSpace(input.Name)
		found.Description = strings.TrimSpace(input.Description)

		if err := catalogRepo.UpdateServiceType(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update service type")
		}
		serviceType = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute service type update transaction")
	}

	return serviceType, nil
}

func (srv *catalogService) DeleteServiceType(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return err
	}

	return errors.Wrap(srv.catalogRepo.DeleteServiceType(ctx, id), "failed to delete service type")
}

// --- Occupations ---

func (srv *catalogService) ListOccupations(ctx context.Context) ([]*entity.Occupation, error) {
	occupations, err := srv.catalogRepo.ListOccupations(ctx)

	return occupations, errors.Wrap(err, "failed to list occupations")
}

func (srv *catalogService) CreateOccupation(ctx context.Context, actor *policy.Actor, input *usecase.OccupationInput) (*entity.Occupation, error) {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireName(input.Name); err != nil {
		return nil, err
	}

	occupation := &entity.Occupation{Name: strings.TrimSpace(input.Name)}
	if err := srv.catalogRepo.CreateOccupation(ctx, occupation); err != nil {
		return nil, errors.Wrap(err, "failed to create occupation")
	}

	return occupation, nil
}

func (srv *catalogService) UpdateOccupation(ctx context.Context, actor *policy.Actor, id uuid.UUID, input *usecase.OccupationInput) (*entity.Occupation, error) {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := requireName(input.Name); err != nil {
		return nil, err
	}

	var occupation *entity.Occupation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		catalogRepo := repoFactory.NewCatalogRepository()

		found, err := catalogRepo.FindOccupationByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to find occupation")
		}
		found.Name = strings.TrimSpace(input.Name)

		if err := catalogRepo.UpdateOccupation(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update occupation")
		}
		occupation = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute occupation update transaction")
	}

	return occupation, nil
}

func (srv *catalogService) DeleteOccupation(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return err
	}

	return errors.Wrap(srv.catalogRepo.DeleteOccupation(ctx, id), "failed to delete occupation")
}
