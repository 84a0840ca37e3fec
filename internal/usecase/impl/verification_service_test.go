package impl

import (
	"context"
	"testing"
	"time"

	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerificationService_VerifyRoundTrip(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	srv := f.verificationService()
	user := f.seedUser(t, "customer@example.com", entity.RoleUser)

	f.mailer.On("SendOTPEmail", mock.Anything, user.Email, "482913", 10).Return(nil).Once()

	require.NoError(t, srv.CreateAndSend(ctx, user))

	verified, err := srv.Verify(ctx, user.Email, "482913")
	require.NoError(t, err)
	assert.True(t, verified.IsEmailVerified)
	assert.Equal(t, user.ID, verified.ID)

	_, err = srv.Verify(ctx, user.Email, "482913")
	assert.True(t, errors.Is(err, domainerrors.ErrNoVerificationRequest))
	f.mailer.AssertExpectations(t)
}

func TestVerificationService_StoresOnlyHash(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	srv := f.verificationService()
	user := f.seedUser(t, "customer@example.com", entity.RoleUser)

	f.mailer.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, srv.CreateAndSend(ctx, user))

	token, err := f.repos.NewVerificationTokenRepository().FindLatestByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.NotEqual(t, "482913", token.OTPHash)
	assert.True(t, f.hasher.Check("482913", token.OTPHash))
}

func TestVerificationService_ReissueReplacesPreviousCode(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	f.generator.codes = []string{"111111", "222222"}
	srv := f.verificationService()
	user := f.seedUser(t, "customer@example.com", entity.RoleUser)

	f.mailer.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, srv.CreateAndSend(ctx, user))
	require.NoError(t, srv.CreateAndSend(ctx, user))

	_, err := srv.Verify(ctx, user.Email, "111111")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidOtp))

	_, err = srv.Verify(ctx, user.Email, "222222")
	assert.NoError(t, err)
}

func TestVerificationService_WrongCodeCountsAttempts(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	srv := f.verificationService()
	user := f.seedUser(t, "customer@example.com", entity.RoleUser)

	f.mailer.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, srv.CreateAndSend(ctx, user))

	for range 2 {
		_, err := srv.Verify(ctx, user.Email, "000000")
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidOtp))
	}

	token, err := f.repos.NewVerificationTokenRepository().FindLatestByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, 2, token.Attempts)

	_, err = srv.Verify(ctx, user.Email, "482913")
	assert.NoError(t, err)
}

func TestVerificationService_Expired(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	srv := f.verificationService()
	user := f.seedUser(t, "customer@example.com", entity.RoleUser)

	issuedAt := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return issuedAt }

	f.mailer.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	require.NoError(t, srv.CreateAndSend(ctx, user))

	srv.now = func() time.Time { return issuedAt.Add(defaultTestOTPTTL + time.Second) }

	_, err := srv.Verify(ctx, user.Email, "482913")
	assert.True(t, errors.Is(err, domainerrors.ErrOtpExpired))

	_, err = srv.Verify(ctx, user.Email, "482913")
	assert.True(t, errors.Is(err, domainerrors.ErrNoVerificationRequest))
}

func TestVerificationService_NoRequest(t *testing.T) {
	f := newTestFixture(t)

	_, err := f.verificationService().Verify(context.Background(), "nobody@example.com", "482913")
	assert.True(t, errors.Is(err, domainerrors.ErrNoVerificationRequest))
}

func TestVerificationService_DeliveryFailure(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	srv := f.verificationService()
	user := f.seedUser(t, "customer@example.com", entity.RoleUser)

	f.mailer.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp unavailable")).Once()

	err := srv.CreateAndSend(ctx, user)
	assert.True(t, errors.Is(err, domainerrors.ErrDeliveryFailed))

	// The code stays stored so the user can still verify once mail recovers.
	_, err = srv.Verify(ctx, user.Email, "482913")
	assert.NoError(t, err)
}

func TestVerificationService_Resend(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		verified bool
		wantErr  error
	}{
		{name: "unverified user", email: "customer@example.com"},
		{name: "mixed case padded email", email: "  Customer@Example.COM "},
		{name: "already verified", email: "customer@example.com", verified: true, wantErr: domainerrors.ErrAlreadyVerified},
		{name: "unknown email", email: "nobody@example.com", wantErr: domainerrors.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFixture(t)
			ctx := context.Background()
			srv := f.verificationService()
			user := f.seedUser(t, "customer@example.com", entity.RoleUser)
			if tt.verified {
				require.NoError(t, f.repos.NewUserRepository().MarkEmailVerified(ctx, user.ID))
			}

			f.mailer.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

			err := srv.Resend(ctx, tt.email)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

				return
			}
			require.NoError(t, err)
			f.mailer.AssertNumberOfCalls(t, "SendOTPEmail", 1)
		})
	}
}

func TestVerificationService_AcceptsEmailAsTypedAtSignup(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	f.generator.codes = []string{"111111", "482913"}
	verification := f.verificationService()
	auth := f.authService(verification)

	f.mailer.On("SendOTPEmail", mock.Anything, "alice@example.com", mock.Anything, 10).Return(nil).Twice()

	output, err := auth.Register(ctx, &usecase.RegisterInput{
		Email:    "Alice@Example.com",
		Password: "Password123!",
		FullName: "Alice",
	})
	require.NoError(t, err)
	require.True(t, output.EmailOTPSent)

	_, err = auth.Login(ctx, &usecase.LoginInput{Email: "Alice@Example.com", Password: "Password123!"})
	require.NoError(t, err)

	require.NoError(t, verification.Resend(ctx, "Alice@Example.com"))

	verified, err := verification.Verify(ctx, " Alice@Example.com", "482913")
	require.NoError(t, err)
	assert.True(t, verified.IsEmailVerified)
	assert.Equal(t, output.User.ID, verified.ID)

	err = verification.Resend(ctx, "ALICE@EXAMPLE.COM")
	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyVerified), "got %v", err)
	f.mailer.AssertExpectations(t)
}
