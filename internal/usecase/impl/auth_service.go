package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "homeserve/internal/delivery/context"
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/repository"
	"homeserve/internal/domain/service"
	"homeserve/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	identity         service.IdentityProvider
	verification     usecase.VerificationUsecase
	logger           *slog.Logger
	now              func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Identity         service.IdentityProvider
	Verification     usecase.VerificationUsecase
	Logger           *slog.Logger
}

// registration describes one signup flavour.
type registration struct {
	email    string
	password string
	fullName string
	role     entity.Role

	// afterCreate runs inside the signup transaction once the user row exists.
	afterCreate func(ctx context.Context, repoFactory repository.RepositoryFactory, user *entity.User) error
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		identity:         params.Identity,
		verification:     params.Verification,
		logger:           params.Logger,
		now:              time.Now,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unverified customer account and emails a verification code.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return srv.register(ctx, &registration{
		email:    input.Email,
		password: input.Password,
		fullName: input.FullName,
		role:     entity.RoleUser,
	})
}

// RegisterPartner creates a partner account together with its provider profile.
func (srv *authService) RegisterPartner(ctx context.Context, input *usecase.RegisterPartnerInput) (*usecase.AuthOutput, error) {
	return srv.register(ctx, &registration{
		email:    input.Email,
		password: input.Password,
		fullName: input.FullName,
		role:     entity.RolePartner,
		afterCreate: func(ctx context.Context, repoFactory repository.RepositoryFactory, user *entity.User) error {
			if input.OccupationID != nil {
				if _, err := repoFactory.NewCatalogRepository().FindOccupationByID(ctx, *input.OccupationID); err != nil {
					return errors.Wrap(err, "failed to find occupation")
				}
			}

			profile := &entity.ProviderProfile{
				UserID:          user.ID,
				OccupationID:    input.OccupationID,
				Bio:             input.Bio,
				ExperienceYears: input.ExperienceYears,
			}

			return errors.Wrap(repoFactory.NewProviderProfileRepository().Upsert(ctx, profile), "failed to create provider profile")
		},
	})
}

func (srv *authService) register(ctx context.Context, reg *registration) (*usecase.AuthOutput, error) {
	email := normalizeEmail(reg.email)
	srv.log(ctx).Info("Starting registration", slog.Any("role", reg.role), slog.String("email", email))

	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing user")
	}

	// bcrypt is CPU-bound; hash before opening the transaction.
	passwordHash, err := srv.hasher.Hash(reg.password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	externalUID, err := srv.identity.CreateIdentity(ctx, email, reg.password, reg.fullName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create external identity")
	}

	user := &entity.User{
		ExternalUID:  externalUID,
		Email:        email,
		PasswordHash: &passwordHash,
		FullName:     strings.TrimSpace(reg.fullName),
		Role:         reg.role,
	}

	var tokens *service.TokenPair
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		if reg.afterCreate != nil {
			if err := reg.afterCreate(ctx, repoFactory, user); err != nil {
				return err
			}
		}

		issued, err := srv.issueSession(ctx, repoFactory.NewRefreshTokenRepository(), user)
		if err != nil {
			return err
		}
		tokens = issued

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.Any("role", reg.role), slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	otpSent := true
	if err := srv.verification.CreateAndSend(ctx, user); err != nil {
		// The account exists; the user can request a resend.
		srv.log(ctx).Warn("Registration completed without verification email", slog.Any("userID", user.ID), slog.Any("error", err))
		otpSent = false
	}

	srv.log(ctx).Info("Registration completed", slog.Any("role", reg.role), slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Tokens: tokens, EmailOTPSent: otpSent}, nil
}

// Login checks credentials and issues a new session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if err := srv.checkPassword(ctx, user, input.Password); err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	loginAt := srv.now()
	var tokens *service.TokenPair
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
			return errors.Wrap(err, "failed to update last login")
		}

		issued, err := srv.issueSession(ctx, repoFactory.NewRefreshTokenRepository(), user)
		if err != nil {
			return err
		}
		tokens = issued

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute login transaction")
	}
	user.LastLogin = &loginAt

	if err := srv.refreshTokenRepo.DeleteExpiredRefreshTokens(ctx); err != nil {
		srv.log(ctx).Warn("Failed to prune expired refresh tokens", slog.Any("error", err))
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Tokens: tokens}, nil
}

// checkPassword verifies the local hash, or asks the identity provider for
// legacy accounts that never stored one.
func (srv *authService) checkPassword(ctx context.Context, user *entity.User, password string) error {
	if user.HasPassword() {
		if !srv.hasher.Check(password, *user.PasswordHash) {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
		}

		return nil
	}

	uid, err := srv.identity.VerifyPassword(ctx, user.Email, password)
	if err != nil {
		if errors.Is(err, domainerrors.ErrIdentityProviderFailed) {
			return errors.Wrap(err, "failed to verify legacy password")
		}

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "legacy password rejected")
	}

	if uid == "" || uid != user.ExternalUID {
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "identity does not match account")
	}

	return nil
}

// Refresh consumes the presented refresh token and issues a new pair.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "invalid refresh token")
	}

	var (
		user   *entity.User
		tokens *service.TokenPair
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.NewRefreshTokenRepository()
		tokenHash := srv.tokenService.HashToken(refreshToken)

		stored, err := refreshRepo.FindRefreshTokenByHash(ctx, tokenHash)
		if err != nil {
			return errors.Wrap(err, "refresh token not found or expired")
		}
		if stored.UserID != claims.UserID {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token owner mismatch")
		}

		if err := refreshRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(err, "failed to revoke refresh token")
		}

		// Reload so a role changed since login is reflected in the new tokens.
		found, err := repoFactory.NewUserRepository().FindByID(ctx, claims.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}
		user = found

		issued, err := srv.issueSession(ctx, refreshRepo, user)
		if err != nil {
			return err
		}
		tokens = issued

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to refresh session", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute refresh token transaction")
	}

	return &usecase.AuthOutput{User: user, Tokens: tokens}, nil
}

// Logout deletes the stored refresh token. Unknown tokens are ignored.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	if _, err := srv.tokenService.ValidateRefreshToken(refreshToken); err != nil {
		// Even if the token is invalid, we can proceed to delete it from the database.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, srv.tokenService.HashToken(refreshToken)); err != nil {
		return errors.Wrap(err, "failed to delete refresh token")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// Profile returns the current user.
func (srv *authService) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func (srv *authService) issueSession(ctx context.Context, refreshRepo repository.RefreshTokenRepository, user *entity.User) (*service.TokenPair, error) {
	tokens, err := srv.tokenService.GenerateTokens(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	record := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(tokens.RefreshToken),
		ExpiresAt: srv.now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := refreshRepo.CreateRefreshToken(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return tokens, nil
}
