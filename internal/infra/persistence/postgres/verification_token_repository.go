package postgres

import (
	"context"

	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/repository"
	"homeserve/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type verificationTokenRepository struct {
	db *gorm.DB
}

// NewVerificationTokenRepository is the constructor for verificationTokenRepository.
func NewVerificationTokenRepository(db *gorm.DB) repository.VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (repo *verificationTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.EmailVerificationTokenModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete verification tokens")
	}

	return nil
}

func (repo *verificationTokenRepository) Create(ctx context.Context, token *entity.EmailVerificationToken) error {
	tokenM := &model.EmailVerificationTokenModel{
		ID:        token.ID,
		UserID:    token.UserID,
		Email:     token.Email,
		OTPHash:   token.OTPHash,
		ExpiresAt: token.ExpiresAt,
		Attempts:  token.Attempts,
	}

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("a verification token already exists for this user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create verification token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt
	token.UpdatedAt = tokenM.UpdatedAt

	return nil
}

func (repo *verificationTokenRepository) FindLatestByEmail(ctx context.Context, email string) (*entity.EmailVerificationToken, error) {
	var tokenM model.EmailVerificationTokenModel
	// Codes are checked seconds after issue; replicas may not have them yet.
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&tokenM).Error
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrNoVerificationRequest
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find verification token")
	}

	return &entity.EmailVerificationToken{
		ID:        tokenM.ID,
		UserID:    tokenM.UserID,
		Email:     tokenM.Email,
		OTPHash:   tokenM.OTPHash,
		ExpiresAt: tokenM.ExpiresAt,
		Attempts:  tokenM.Attempts,
		CreatedAt: tokenM.CreatedAt,
		UpdatedAt: tokenM.UpdatedAt,
	}, nil
}

func (repo *verificationTokenRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).Model(&model.EmailVerificationTokenModel{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to increment verification attempts")
	}

	return nil
}

func (repo *verificationTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.EmailVerificationTokenModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete verification token")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNoVerificationRequest
	}

	return nil
}
