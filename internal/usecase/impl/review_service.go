package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "homeserve/internal/delivery/context"
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/policy"
	"homeserve/internal/domain/repository"
	"homeserve/internal/domain/service"
	"homeserve/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager   repository.TransactionManager
	reviewRepo  repository.ReviewRepository
	ratingCache service.RatingCache
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ReviewRepo  repository.ReviewRepository
	RatingCache service.RatingCache
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:   params.TxManager,
		reviewRepo:  params.ReviewRepo,
		ratingCache: params.RatingCache,
		logger:      params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Submit records one review per booking and direction.
func (srv *reviewService) Submit(ctx context.Context, actor *policy.Actor, input *usecase.SubmitReviewInput) (*entity.Review, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	var review *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		booking, err := repoFactory.NewBookingRepository().FindByID(ctx, input.BookingID)
		if err != nil {
			return errors.Wrap(err, "failed to find booking")
		}

		if booking.Status != entity.BookingStatusCompleted {
			return domainerrors.ErrBookingNotCompleted
		}

		svc, err := repoFactory.NewServiceRepository().FindByID(ctx, booking.ServiceID)
		if err != nil && !errors.Is(err, domainerrors.ErrServiceNotFound) {
			return errors.Wrap(err, "failed to find booking service")
		}

		reviewerID, revieweeID, err := policy.ResolveReviewParties(actor, booking, svc, input.Target)
		if err != nil {
			return err
		}

		if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
			return domainerrors.ErrInvalidRating
		}

		exists, err := reviewRepo.ExistsForBooking(ctx, booking.ID, input.Target)
		if err != nil {
			return errors.Wrap(err, "failed to check existing review")
		}
		if exists {
			return domainerrors.ErrDuplicateReview
		}

		candidate := &entity.Review{
			BookingID:  booking.ID,
			ReviewerID: reviewerID,
			RevieweeID: revieweeID,
			Target:     input.Target,
			Rating:     input.Rating,
			Comment:    strings.TrimSpace(input.Comment),
		}
		// The unique (booking, target) index rejects a concurrent duplicate that passed the check above.
		if err := reviewRepo.Create(ctx, candidate); err != nil {
			return errors.Wrap(err, "failed to create review")
		}
		review = candidate

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute review transaction")
	}

	if review.Target == entity.ReviewTargetProvider {
		if err := srv.ratingCache.Invalidate(ctx, review.RevieweeID); err != nil {
			srv.log(ctx).Warn("Failed to invalidate rating cache", slog.Any("providerID", review.RevieweeID), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Review submitted",
		slog.Any("reviewID", review.ID),
		slog.Any("bookingID", review.BookingID),
		slog.String("target", review.Target.String()),
	)

	return review, nil
}

// ListForProvider returns the reviews customers left for a partner.
func (srv *reviewService) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.ListForProvider(ctx, providerID)

	return reviews, errors.Wrap(err, "failed to list provider reviews")
}

// AverageForProvider aggregates a partner's ratings, served from cache when possible.
func (srv *reviewService) AverageForProvider(ctx context.Context, providerID uuid.UUID) (*entity.ProviderRating, error) {
	cached, ok, err := srv.ratingCache.Get(ctx, providerID)
	if err != nil {
		srv.log(ctx).Warn("Failed to read rating cache", slog.Any("providerID", providerID), slog.Any("error", err))
	}
	if ok {
		return cached, nil
	}

	rating, err := srv.reviewRepo.AverageForProvider(ctx, providerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate provider rating")
	}

	if err := srv.ratingCache.Set(ctx, rating); err != nil {
		srv.log(ctx).Warn("Failed to write rating cache", slog.Any("providerID", providerID), slog.Any("error", err))
	}

	return rating, nil
}
