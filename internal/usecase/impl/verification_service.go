// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"homeserve/config"
	deliverycontext "homeserve/internal/delivery/context"
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/repository"
	"homeserve/internal/domain/service"
	"homeserve/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// verificationService implements the VerificationUsecase interface.
type verificationService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	tokenRepo repository.VerificationTokenRepository
	hasher    service.PasswordHasher
	generator service.OTPGenerator
	mailer    service.OTPMailer
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// VerificationServiceParams holds dependencies for VerificationService, injected by Fx.
type VerificationServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	TokenRepo repository.VerificationTokenRepository
	Hasher    service.PasswordHasher
	Generator service.OTPGenerator
	Mailer    service.OTPMailer
	Config    *config.Config
	Logger    *slog.Logger
}

// NewVerificationService is the constructor for verificationService.
func NewVerificationService(params VerificationServiceParams) usecase.VerificationUsecase {
	ttl := 10 * time.Minute
	if params.Config != nil && params.Config.OTP != nil && params.Config.OTP.TTL > 0 {
		ttl = params.Config.OTP.TTL
	}

	return &verificationService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		tokenRepo: params.TokenRepo,
		hasher:    params.Hasher,
		generator: params.Generator,
		mailer:    params.Mailer,
		ttl:       ttl,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *verificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAndSend replaces the user's pending code and emails the new one.
func (srv *verificationService) CreateAndSend(ctx context.Context, user *entity.User) error {
	code, err := srv.generator.Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate verification code")
	}

	otpHash, err := srv.hasher.Hash(code)
	if err != nil {
		srv.log(ctx).Error("Failed to hash verification code", slog.Any("userID", user.ID), slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash verification code")
	}

	token := &entity.EmailVerificationToken{
		UserID:    user.ID,
		Email:     user.Email,
		OTPHash:   otpHash,
		ExpiresAt: srv.now().Add(srv.ttl),
	}

	// Delete and insert together so a user never holds two live codes.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.NewVerificationTokenRepository()

		if err := tokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
			return errors.Wrap(err, "failed to delete previous verification codes")
		}

		return errors.Wrap(tokenRepo.Create(ctx, token), "failed to store verification code")
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute verification code transaction")
	}

	ttlMinutes := int(srv.ttl / time.Minute)
	if err := srv.mailer.SendOTPEmail(ctx, user.Email, code, ttlMinutes); err != nil {
		srv.log(ctx).Warn("Failed to deliver verification code", slog.Any("userID", user.ID), slog.Any("error", err))

		return domainerrors.ErrDeliveryFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("Verification code sent", slog.Any("userID", user.ID), slog.Time("expiresAt", token.ExpiresAt))

	return nil
}

// Resend issues a new code for an existing, unverified account.
func (srv *verificationService) Resend(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return errors.Wrap(err, "failed to find user for resend")
	}

	if user.IsEmailVerified {
		return domainerrors.ErrAlreadyVerified
	}

	return srv.CreateAndSend(ctx, user)
}

// Verify checks otp against the latest code issued to email.
func (srv *verificationService) Verify(ctx context.Context, email, otp string) (*entity.User, error) {
	token, err := srv.tokenRepo.FindLatestByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find verification code")
	}

	if token.IsExpired(srv.now()) {
		if err := srv.tokenRepo.Delete(ctx, token.ID); err != nil && !errors.Is(err, domainerrors.ErrNoVerificationRequest) {
			return nil, errors.Wrap(err, "failed to delete expired verification code")
		}
		srv.log(ctx).Info("Verification code expired", slog.Any("userID", token.UserID))

		return nil, domainerrors.ErrOtpExpired
	}

	// bcrypt is CPU-bound; compare before opening the transaction.
	if !srv.hasher.Check(otp, token.OTPHash) {
		if err := srv.tokenRepo.IncrementAttempts(ctx, token.ID); err != nil {
			return nil, errors.Wrap(err, "failed to record verification attempt")
		}
		srv.log(ctx).Warn("Invalid verification code", slog.Any("userID", token.UserID), slog.Int("attempts", token.Attempts+1))

		return nil, domainerrors.ErrInvalidOtp
	}

	var verified *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// Deleting first claims the code; a concurrent verification loses here.
		if err := repoFactory.NewVerificationTokenRepository().Delete(ctx, token.ID); err != nil {
			return err
		}

		if err := userRepo.MarkEmailVerified(ctx, token.UserID); err != nil {
			return errors.Wrap(err, "failed to mark email verified")
		}

		user, err := userRepo.FindByID(ctx, token.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to reload verified user")
		}
		verified = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute verification transaction")
	}

	srv.log(ctx).Info("Email verified", slog.Any("userID", verified.ID))

	return verified, nil
}
