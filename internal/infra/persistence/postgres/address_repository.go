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

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository instance.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

func (repo *addressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	addressM := &model.AddressModel{
		UserID:      address.UserID,
		Label:       address.Label,
		FullAddress: address.FullAddress,
		IsDefault:   address.IsDefault,
	}
	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create address")
	}
	*address = *toAddressDomain(addressM)

	return nil
}

func (repo *addressRepository) FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&addressM).Error; err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrAddressNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find address")
	}

	return toAddressDomain(&addressM), nil
}

func (repo *addressRepository) FindAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	var models []model.AddressModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list addresses")
	}

	addresses := make([]*entity.Address, 0, len(models))
	for i := range models {
		addresses = append(addresses, toAddressDomain(&models[i]))
	}

	return addresses, nil
}

func (repo *addressRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Model(&model.AddressModel{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear default address")
	}

	return nil
}

func (repo *addressRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Model(&model.AddressModel{}).Where("id = ?", id).Update("is_default", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set default address")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAddressNotFound
	}

	return nil
}

func (repo *addressRepository) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, repo.db, &model.AddressModel{}, id, domainerrors.ErrAddressNotFound)
}

func toAddressDomain(data *model.AddressModel) *entity.Address {
	return &entity.Address{
		ID:          data.ID,
		UserID:      data.UserID,
		Label:       data.Label,
		FullAddress: data.FullAddress,
		IsDefault:   data.IsDefault,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
