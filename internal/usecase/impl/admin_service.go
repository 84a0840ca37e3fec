package impl

import (
	"context"
	"log/slog"

	deliverycontext "homeserve/internal/delivery/context"
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/policy"
	"homeserve/internal/domain/repository"
	"homeserve/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	serviceRepo repository.ServiceRepository
	reviewRepo  repository.ReviewRepository
	logger      *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	BookingRepo repository.BookingRepository
	ServiceRepo repository.ServiceRepository
	ReviewRepo  repository.ReviewRepository
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		bookingRepo: params.BookingRepo,
		serviceRepo: params.ServiceRepo,
		reviewRepo:  params.ReviewRepo,
		logger:      params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *adminService) Stats(ctx context.Context, actor *policy.Actor) (*entity.PlatformStats, error) {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}

	usersByRole, err := srv.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	bookingsByStatus, err := srv.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count bookings")
	}

	services, err := srv.serviceRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count services")
	}

	reviews, average, err := srv.reviewRepo.Summary(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize reviews")
	}

	return &entity.PlatformStats{
		UsersByRole:      usersByRole,
		BookingsByStatus: bookingsByStatus,
		Services:         services,
		Reviews:          reviews,
		AverageRating:    average,
	}, nil
}

func (srv *adminService) ListUsers(ctx context.Context, actor *policy.Actor, role *entity.Role) ([]*entity.User, error) {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := srv.userRepo.List(ctx, role)

	return users, errors.Wrap(err, "failed to list users")
}

// AssignRole changes a user's role and revokes their refresh tokens so the
// new role takes effect on the next sign-in.
func (srv *adminService) AssignRole(ctx context.Context, actor *policy.Actor, userID uuid.UUID, role string) (*entity.User, error) {
	if err := policy.RequireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}

	newRole, ok := entity.ParseRole(role)
	if !ok {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role " + role)
	}

	if userID == actor.UserID {
		return nil, domainerrors.ErrCannotDemoteSelf
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if err := userRepo.UpdateRole(ctx, userID, newRole); err != nil {
			return errors.Wrap(err, "failed to update role")
		}

		if err := repoFactory.NewRefreshTokenRepository().DeleteRefreshTokensByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke refresh tokens")
		}

		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to reload user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute role assignment transaction")
	}

	srv.log(ctx).Info("Role assigned",
		slog.Any("userID", userID),
		slog.String("role", newRole.String()),
		slog.Any("adminID", actor.UserID),
	)

	return user, nil
}
