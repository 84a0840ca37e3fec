package impl

import (
	"context"
	"testing"

	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_ProviderProfile(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	srv := f.profileService()
	partner := actorOf(f.seedUser(t, "partner@example.com", entity.RolePartner))

	_, err := srv.GetProviderProfile(ctx, partner)
	assert.True(t, errors.Is(err, domainerrors.ErrProfileNotFound))

	saved, err := srv.UpsertProviderProfile(ctx, partner, &usecase.ProviderProfileInput{Bio: "Tiles", ExperienceYears: 3})
	require.NoError(t, err)
	assert.Equal(t, partner.UserID, saved.UserID)

	_, err = srv.UpsertProviderProfile(ctx, partner, &usecase.ProviderProfileInput{Bio: "Tiles and grout", ExperienceYears: 4})
	require.NoError(t, err)

	got, err := srv.GetProviderProfile(ctx, partner)
	require.NoError(t, err)
	assert.Equal(t, "Tiles and grout", got.Bio)
	assert.Equal(t, 4, got.ExperienceYears)

	unknown := uuid.New()
	_, err = srv.UpsertProviderProfile(ctx, partner, &usecase.ProviderProfileInput{OccupationID: &unknown})
	assert.True(t, errors.Is(err, domainerrors.ErrOccupationNotFound))

	customer := actorOf(f.seedUser(t, "customer@example.com", entity.RoleUser))
	_, err = srv.GetProviderProfile(ctx, customer)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestProfileService_Addresses(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	srv := f.profileService()
	customer := actorOf(f.seedUser(t, "customer@example.com", entity.RoleUser))

	home, err := srv.CreateAddress(ctx, customer, &usecase.AddressInput{Label: "Home", FullAddress: "12 Market Street"})
	require.NoError(t, err)
	assert.True(t, home.IsDefault, "first address becomes the default")

	office, err := srv.CreateAddress(ctx, customer, &usecase.AddressInput{Label: "Office", FullAddress: "1 Tower Road"})
	require.NoError(t, err)
	assert.False(t, office.IsDefault)

	_, err = srv.SetDefaultAddress(ctx, customer, office.ID)
	require.NoError(t, err)

	addresses, err := srv.ListAddresses(ctx, customer)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, office.ID, addresses[0].ID)
	assert.False(t, addresses[1].IsDefault)

	require.NoError(t, srv.DeleteAddress(ctx, customer, office.ID))

	addresses, err = srv.ListAddresses(ctx, customer)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.True(t, addresses[0].IsDefault, "remaining address is promoted")

	_, err = srv.CreateAddress(ctx, customer, &usecase.AddressInput{Label: "Empty"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProfileService_AddressesArePrivate(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	srv := f.profileService()
	owner := actorOf(f.seedUser(t, "owner@example.com", entity.RoleUser))
	stranger := actorOf(f.seedUser(t, "stranger@example.com", entity.RoleUser))

	home, err := srv.CreateAddress(ctx, owner, &usecase.AddressInput{Label: "Home", FullAddress: "12 Market Street"})
	require.NoError(t, err)

	err = srv.DeleteAddress(ctx, stranger, home.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))

	_, err = srv.SetDefaultAddress(ctx, stranger, home.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestAdminService_Stats(t *testing.T) {
	s := newBookingScenario(t)
	ctx := context.Background()
	admin := s.f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	booking := s.f.seedBooking(t, s.customer, s.service, entity.BookingStatusCompleted)
	s.f.seedBooking(t, s.customer, s.service, entity.BookingStatusUpcoming)

	_, err := s.f.reviewService(nil).Submit(ctx, actorOf(s.customer), &usecase.SubmitReviewInput{
		BookingID: booking.ID,
		Rating:    4,
		Target:    entity.ReviewTargetProvider,
	})
	require.NoError(t, err)

	stats, err := s.f.adminService().Stats(ctx, actorOf(admin))
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.UsersByRole[entity.RoleUser])
	assert.EqualValues(t, 1, stats.UsersByRole[entity.RolePartner])
	assert.EqualValues(t, 1, stats.UsersByRole[entity.RoleAdmin])
	assert.EqualValues(t, 1, stats.BookingsByStatus[entity.BookingStatusCompleted])
	assert.EqualValues(t, 1, stats.BookingsByStatus[entity.BookingStatusUpcoming])
	assert.EqualValues(t, 0, stats.BookingsByStatus[entity.BookingStatusCancelled])
	assert.EqualValues(t, 1, stats.Services)
	assert.EqualValues(t, 1, stats.Reviews)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.001)

	_, err = s.f.adminService().Stats(ctx, actorOf(s.partner))
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestAdminService_AssignRole(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()
	srv := f.adminService()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	customer := f.seedUser(t, "customer@example.com", entity.RoleUser)

	f.mailer.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	login, err := f.authService(f.verificationService()).Login(ctx, &usecase.LoginInput{
		Email:    customer.Email,
		Password: "Password123!",
	})
	require.NoError(t, err)

	promoted, err := srv.AssignRole(ctx, actorOf(admin), customer.ID, "partner")
	require.NoError(t, err)
	assert.Equal(t, entity.RolePartner, promoted.Role)

	_, err = f.repos.NewRefreshTokenRepository().FindRefreshTokenByHash(ctx, f.tokens.HashToken(login.Tokens.RefreshToken))
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid), "sessions are revoked on role change")

	_, err = srv.AssignRole(ctx, actorOf(admin), admin.ID, "user")
	assert.True(t, errors.Is(err, domainerrors.ErrCannotDemoteSelf))

	_, err = srv.AssignRole(ctx, actorOf(admin), customer.ID, "superuser")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.AssignRole(ctx, actorOf(admin), uuid.New(), "partner")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))

	partners := entity.RolePartner
	listed, err := srv.ListUsers(ctx, actorOf(admin), &partners)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, customer.ID, listed[0].ID)
}
