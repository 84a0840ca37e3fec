package postgres

import (
	"context"

	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/repository"
	"homeserve/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// catalogRepository serves categories, service types and occupations.
type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

// deleteByID removes one row and reports notFound when nothing matched.
func deleteByID(ctx context.Context, db *gorm.DB, value any, id uuid.UUID, notFound error) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(value)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("resource is still referenced")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete")
	}
	if result.RowsAffected == 0 {
		return notFound
	}

	return nil
}

// saveRow updates every column of an existing row except the key, the creation
// time and any extra omitted columns.
func saveRow(ctx context.Context, db *gorm.DB, value any, id uuid.UUID, notFound error, omit ...string) error {
	omit = append([]string{"id", "created_at"}, omit...)
	result := db.WithContext(ctx).Where("id = ?", id).Select("*").Omit(omit...).Updates(value)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("duplicate value")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update")
	}
	if result.RowsAffected == 0 {
		return notFound
	}

	return nil
}

func (repo *catalogRepository) ListCategories(ctx context.Context) ([]*entity.ServiceCategory, error) {
	var models []model.ServiceCategoryModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list categories")
	}

	categories := make([]*entity.ServiceCategory, 0, len(models))
	for i := range models {
		categories = append(categories, toCategoryDomain(&models[i]))
	}

	return categories, nil
}

func (repo *catalogRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.ServiceCategory, error) {
	var categoryM model.ServiceCategoryModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&categoryM).Error; err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find category")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *catalogRepository) CreateCategory(ctx context.Context, category *entity.ServiceCategory) error {
	categoryM := &model.ServiceCategoryModel{Name: category.Name, Description: category.Description}
	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("category already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}
	*category = *toCategoryDomain(categoryM)

	return nil
}

func (repo *catalogRepository) UpdateCategory(ctx context.Context, category *entity.ServiceCategory) error {
	return saveRow(ctx, repo.db, &model.ServiceCategoryModel{
		Name:        category.Name,
		Description: category.Description,
	}, category.ID, domainerrors.ErrCategoryNotFound)
}

func (repo *catalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, repo.db, &model.ServiceCategoryModel{}, id, domainerrors.ErrCategoryNotFound)
}

func (repo *catalogRepository) ListServiceTypes(ctx context.Context, categoryID *uuid.UUID) ([]*entity.ServiceType, error) {
	query := repo.db.WithContext(ctx).Order("name ASC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var models []model.ServiceTypeModel
	if err := query.Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list service types")
	}

	types := make([]*entity.ServiceType, 0, len(models))
	for i := range models {
		types = append(types, toServiceTypeDomain(&models[i]))
	}

	return types, nil
}

func (repo *catalogRepository) FindServiceTypeByID(ctx context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	var typeM model.ServiceTypeModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&typeM).Error; err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrServiceTypeNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find service type")
	}

	return toServiceTypeDomain(&typeM), nil
}

func (repo *catalogRepository) CreateServiceType(ctx context.Context, serviceType *entity.ServiceType) error {
	typeM := &model.ServiceTypeModel{
		CategoryID:  serviceType.CategoryID,
		Name:        serviceType.Name,
		Description: serviceType.Description,
	}
	if err := repo.db.WithContext(ctx).Create(typeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create service type")
	}
	*serviceType = *toServiceTypeDomain(typeM)

	return nil
}

func (repo *catalogRepository) UpdateServiceType(ctx context.Context, serviceType *entity.ServiceType) error {
	return saveRow(ctx, repo.db, &model.ServiceTypeModel{
		CategoryID:  serviceType.CategoryID,
		Name:        serviceType.Name,
		Description: serviceType.Description,
	}, serviceType.ID, domainerrors.ErrServiceTypeNotFound)
}

func (repo *catalogRepository) DeleteServiceType(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, repo.db, &model.ServiceTypeModel{}, id, domainerrors.ErrServiceTypeNotFound)
}

func (repo *catalogRepository) ListOccupations(ctx context.Context) ([]*entity.Occupation, error) {
	var models []model.OccupationModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list occupations")
	}

	occupations := make([]*entity.Occupation, 0, len(models))
	for i := range models {
		occupations = append(occupations, toOccupationDomain(&models[i]))
	}

	return occupations, nil
}

func (repo *catalogRepository) FindOccupationByID(ctx context.Context, id uuid.UUID) (*entity.Occupation, error) {
	var occupationM model.OccupationModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&occupationM).Error; err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrOccupationNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find occupation")
	}

	return toOccupationDomain(&occupationM), nil
}

func (repo *catalogRepository) CreateOccupation(ctx context.Context, occupation *entity.Occupation) error {
	occupationM := &model.OccupationModel{Name: occupation.Name}
	if err := repo.db.WithContext(ctx).Create(occupationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("occupation already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create occupation")
	}
	*occupation = *toOccupationDomain(occupationM)

	return nil
}

func (repo *catalogRepository) UpdateOccupation(ctx context.Context, occupation *entity.Occupation) error {
	return saveRow(ctx, repo.db, &model.OccupationModel{Name: occupation.Name}, occupation.ID, domainerrors.ErrOccupationNotFound)
}

func (repo *catalogRepository) DeleteOccupation(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, repo.db, &model.OccupationModel{}, id, domainerrors.ErrOccupationNotFound)
}

func toCategoryDomain(data *model.ServiceCategoryModel) *entity.ServiceCategory {
	return &entity.ServiceCategory{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toServiceTypeDomain(data *model.ServiceTypeModel) *entity.ServiceType {
	return &entity.ServiceType{
		ID:          data.ID,
		CategoryID:  data.CategoryID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toOccupationDomain(data *model.OccupationModel) *entity.Occupation {
	return &entity.Occupation{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
