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

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create relies on the (booking_id, target) unique index to reject concurrent duplicates.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := &model.ReviewModel{
		BookingID:  review.BookingID,
		Target:     review.Target.String(),
		ReviewerID: review.ReviewerID,
		RevieweeID: review.RevieweeID,
		Rating:     review.Rating,
		Comment:    review.Comment,
	}
	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateReview
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

func (repo *reviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID, target entity.ReviewTarget) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ReviewModel{}).
		Where("booking_id = ? AND target = ?", bookingID, target.String()).
		Count(&count).Error; err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check review")
	}

	return count > 0, nil
}

func (repo *reviewRepository) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Review, error) {
	var models []model.ReviewModel
	if err := repo.db.WithContext(ctx).
		Where("reviewee_id = ? AND target = ?", providerID, entity.ReviewTargetProvider.String()).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(models))
	for i := range models {
		reviews = append(reviews, toReviewDomain(&models[i]))
	}

	return reviews, nil
}

func (repo *reviewRepository) AverageForProvider(ctx context.Context, providerID uuid.UUID) (*entity.ProviderRating, error) {
	var row struct {
		AverageRating float64
		RatingsCount  int64
	}
	if err := repo.db.WithContext(ctx).Model(&model.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS ratings_count").
		Where("reviewee_id = ? AND target = ?", providerID, entity.ReviewTargetProvider.String()).
		Scan(&row).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to aggregate ratings")
	}

	return &entity.ProviderRating{
		ProviderID:    providerID,
		AverageRating: row.AverageRating,
		RatingsCount:  row.RatingsCount,
	}, nil
}

func (repo *reviewRepository) Summary(ctx context.Context) (int64, float64, error) {
	var row struct {
		Count   int64
		Average float64
	}
	if err := repo.db.WithContext(ctx).Model(&model.ReviewModel{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Scan(&row).Error; err != nil {
		return 0, 0, domainerrors.NewDatabaseExecuteError(err, "failed to summarise reviews")
	}

	return row.Count, row.Average, nil
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:         data.ID,
		BookingID:  data.BookingID,
		ReviewerID: data.ReviewerID,
		RevieweeID: data.RevieweeID,
		Target:     entity.ReviewTarget(data.Target),
		Rating:     data.Rating,
		Comment:    data.Comment,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
