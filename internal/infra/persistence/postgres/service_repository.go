package postgres

import (
	"context"

	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/repository"
	"homeserve/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func (repo *serviceRepository) List(ctx context.Context, filter entity.ServiceFilter) ([]*entity.Service, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ServiceTypeID != nil {
		query = query.Where("service_type_id = ?", *filter.ServiceTypeID)
	}
	if filter.ProviderID != nil {
		query = query.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.Available != nil {
		query = query.Where("availability = ?", *filter.Available)
	}

	var models []model.ServiceModel
	if err := query.Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list services")
	}

	services := make([]*entity.Service, 0, len(models))
	for i := range models {
		services = append(services, toServiceDomain(&models[i]))
	}

	return services, nil
}

func (repo *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var serviceM model.ServiceModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&serviceM).Error; err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrServiceNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find service")
	}

	return toServiceDomain(&serviceM), nil
}

func (repo *serviceRepository) Create(ctx context.Context, svc *entity.Service) error {
	serviceM := fromServiceDomain(svc)
	if err := repo.db.WithContext(ctx).Create(serviceM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create service")
	}

	svc.ID = serviceM.ID
	svc.CreatedAt = serviceM.CreatedAt
	svc.UpdatedAt = serviceM.UpdatedAt

	return nil
}

// Update rewrites the mutable columns. The owner never changes.
func (repo *serviceRepository) Update(ctx context.Context, svc *entity.Service) error {
	serviceM := fromServiceDomain(svc)

	return saveRow(ctx, repo.db, serviceM, svc.ID, domainerrors.ErrServiceNotFound, "provider_id")
}

func (repo *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, repo.db, &model.ServiceModel{}, id, domainerrors.ErrServiceNotFound)
}

func (repo *serviceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ServiceModel{}).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count services")
	}

	return count, nil
}

func toServiceDomain(data *model.ServiceModel) *entity.Service {
	slots := []string(data.TimeSlots)
	if slots == nil {
		slots = []string{}
	}

	return &entity.Service{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		Price:           data.Price,
		ServiceTypeID:   data.ServiceTypeID,
		CategoryID:      data.CategoryID,
		DurationMinutes: data.DurationMinutes,
		Availability:    data.Availability,
		TimeSlots:       slots,
		ProviderID:      data.ProviderID,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromServiceDomain(data *entity.Service) *model.ServiceModel {
	return &model.ServiceModel{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		Price:           data.Price,
		ServiceTypeID:   data.ServiceTypeID,
		CategoryID:      data.CategoryID,
		DurationMinutes: data.DurationMinutes,
		Availability:    data.Availability,
		TimeSlots:       datatypes.JSONSlice[string](data.TimeSlots),
		ProviderID:      data.ProviderID,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
