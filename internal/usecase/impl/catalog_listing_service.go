package impl

import (
	"context"
	"log/slog"
	"strings"

	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/policy"
	"homeserve/internal/domain/repository"
	"homeserve/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func (srv *catalogService) ListServices(ctx context.Context, filter entity.ServiceFilter) ([]*entity.Service, error) {
	services, err := srv.serviceRepo.List(ctx, filter)

	return services, errors.Wrap(err, "failed to list services")
}

func (srv *catalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := srv.serviceRepo.FindByID(ctx, id)

	return svc, errors.Wrap(err, "failed to find service")
}

func (srv *catalogService) ListPartnerServices(ctx context.Context, actor *policy.Actor) ([]*entity.Service, error) {
	if err := policy.RequireRole(actor, entity.RolePartner); err != nil {
		return nil, err
	}

	return srv.ListServices(ctx, entity.ServiceFilter{ProviderID: &actor.UserID})
}

// CreateService stores a partner service, or an unowned catalog service for admins.
func (srv *catalogService) CreateService(ctx context.Context, actor *policy.Actor, input *usecase.ServiceInput) (*entity.Service, error) {
	if err := policy.RequireRole(actor, entity.RolePartner, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	svc := &entity.Service{}
	if actor.Role == entity.RolePartner {
		providerID := actor.UserID
		svc.ProviderID = &providerID
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := applyServiceInput(ctx, repoFactory.NewCatalogRepository(), svc, input); err != nil {
			return err
		}

		return errors.Wrap(repoFactory.NewServiceRepository().Create(ctx, svc), "failed to create service")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute service creation transaction")
	}

	srv.log(ctx).Info("Service created", slog.Any("serviceID", svc.ID), slog.Any("providerID", svc.ProviderID))

	return svc, nil
}

// UpdateService edits a service of the calling partner.
func (srv *catalogService) UpdateService(ctx context.Context, actor *policy.Actor, id uuid.UUID, input *usecase.ServiceInput) (*entity.Service, error) {
	if err := policy.RequireRole(actor, entity.RolePartner); err != nil {
		return nil, err
	}
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}

	var updated *entity.Service
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		serviceRepo := repoFactory.NewServiceRepository()

		svc, err := serviceRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to find service")
		}

		if err := policy.RequireServiceOwner(actor, svc); err != nil {
			return err
		}

		if err := applyServiceInput(ctx, repoFactory.NewCatalogRepository(), svc, input); err != nil {
			return err
		}

		if err := serviceRepo.Update(ctx, svc); err != nil {
			return errors.Wrap(err, "failed to update service")
		}
		updated = svc

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute service update transaction")
	}

	return updated, nil
}

// DeleteService removes a service of the calling partner; admins may remove any.
func (srv *catalogService) DeleteService(ctx context.Context, actor *policy.Actor, id uuid.UUID) error {
	if err := policy.RequireRole(actor, entity.RolePartner, entity.RoleAdmin); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		serviceRepo := repoFactory.NewServiceRepository()

		svc, err := serviceRepo.FindByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to find service")
		}

		if !actor.IsAdmin() {
			if err := policy.RequireServiceOwner(actor, svc); err != nil {
				return err
			}
		}

		return errors.Wrap(serviceRepo.Delete(ctx, id), "failed to delete service")
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute service deletion transaction")
	}

	srv.log(ctx).Info("Service deleted", slog.Any("serviceID", id), slog.Any("actorID", actor.UserID))

	return nil
}

func validateServiceInput(input *usecase.ServiceInput) error {
	return serviceSchema.Validate(map[string]any{
		"name":            input.Name,
		"price":           input.Price,
		"durationMinutes": input.DurationMinutes,
	})
}

// applyServiceInput copies input onto svc, resolving the category from the
// service type when only the type is given.
func applyServiceInput(ctx context.Context, catalogRepo repository.CatalogRepository, svc *entity.Service, input *usecase.ServiceInput) error {
	categoryID := input.CategoryID

	if input.ServiceTypeID != nil {
		serviceType, err := catalogRepo.FindServiceTypeByID(ctx, *input.ServiceTypeID)
		if err != nil {
			return errors.Wrap(err, "failed to find service type")
		}
		if categoryID == nil {
			categoryID = &serviceType.CategoryID
		}
	}

	if categoryID != nil {
		if _, err := catalogRepo.FindCategoryByID(ctx, *categoryID); err != nil {
			return errors.Wrap(err, "failed to find category")
		}
	}

	svc.Name = strings.TrimSpace(input.Name)
	svc.Description = strings.TrimSpace(input.Description)
	svc.Price = input.Price
	svc.ServiceTypeID = input.ServiceTypeID
	svc.CategoryID = categoryID
	svc.DurationMinutes = input.DurationMinutes
	svc.Availability = input.Availability == nil || *input.Availability
	svc.TimeSlots = input.TimeSlots
	if svc.TimeSlots == nil {
		svc.TimeSlots = []string{}
	}

	return nil
}
