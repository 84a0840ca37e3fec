package postgres

import (
	"context"

	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/repository"
	"homeserve/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type providerProfileRepository struct {
	db *gorm.DB
}

func NewProviderProfileRepository(db *gorm.DB) repository.ProviderProfileRepository {
	return &providerProfileRepository{db: db}
}

func (repo *providerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ProviderProfile, error) {
	var profileM model.ProviderProfileModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileM).Error; err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find provider profile")
	}

	return toProviderProfileDomain(&profileM), nil
}

// Upsert inserts the profile or overwrites the mutable columns of the user's existing one.
func (repo *providerProfileRepository) Upsert(ctx context.Context, profile *entity.ProviderProfile) error {
	profileM := &model.ProviderProfileModel{
		UserID:          profile.UserID,
		OccupationID:    profile.OccupationID,
		Bio:             profile.Bio,
		ExperienceYears: profile.ExperienceYears,
	}

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"occupation_id", "bio", "experience_years", "updated_at"}),
	}).Create(profileM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert provider profile")
	}

	stored, err := repo.FindByUserID(ctx, profile.UserID)
	if err != nil {
		return err
	}
	*profile = *stored

	return nil
}

func toProviderProfileDomain(data *model.ProviderProfileModel) *entity.ProviderProfile {
	return &entity.ProviderProfile{
		ID:              data.ID,
		UserID:          data.UserID,
		OccupationID:    data.OccupationID,
		Bio:             data.Bio,
		ExperienceYears: data.ExperienceYears,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
