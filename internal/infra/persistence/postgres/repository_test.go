package postgres_test

import (
	"context"
	"testing"
	"time"

	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/repository"
	"homeserve/internal/errors"
	"homeserve/internal/infra/persistence/postgres"
	"homeserve/internal/infra/persistence/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

func newRepos(t *testing.T) repository.RepositoryFactory {
	t.Helper()

	return postgres.NewRepositoryFactory(testutil.MustOpenTestDB(t, testutil.WithAutoMigrate()))
}

func createUser(t *testing.T, repos repository.RepositoryFactory, email string, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{ExternalUID: "local:" + email, Email: email, FullName: email, Role: role}
	require.NoError(t, repos.NewUserRepository().Create(context.Background(), user))

	return user
}

func createService(t *testing.T, repos repository.RepositoryFactory, provider *entity.User) *entity.Service {
	t.Helper()

	svc := &entity.Service{Name: "Repair", Price: 75, DurationMinutes: 60, Availability: true, TimeSlots: []string{"10:00"}}
	if provider != nil {
		svc.ProviderID = &provider.ID
	}
	require.NoError(t, repos.NewServiceRepository().Create(context.Background(), svc))

	return svc
}

func createBooking(t *testing.T, repos repository.RepositoryFactory, customer *entity.User, svc *entity.Service, status entity.BookingStatus) *entity.Booking {
	t.Helper()

	booking := &entity.Booking{UserID: customer.ID, ServiceID: svc.ID, Date: "2026-11-02", Time: "10:00", Price: svc.Price, Status: status}
	require.NoError(t, repos.NewBookingRepository().Create(context.Background(), booking))

	return booking
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	repos := newRepos(t)
	createUser(t, repos, "a@example.com", entity.RoleUser)

	err := repos.NewUserRepository().Create(context.Background(), &entity.User{
		ExternalUID: "local:other",
		Email:       "a@example.com",
		Role:        entity.RoleUser,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestServiceRepository_RoundTripsTimeSlots(t *testing.T) {
	repos := newRepos(t)
	partner := createUser(t, repos, "p@example.com", entity.RolePartner)
	svc := createService(t, repos, partner)

	got, err := repos.NewServiceRepository().FindByID(context.Background(), svc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, got.TimeSlots)
	assert.True(t, got.IsOwnedBy(partner.ID))
}

func TestBookingRepository(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	bookingRepo := repos.NewBookingRepository()

	customer := createUser(t, repos, "c@example.com", entity.RoleUser)
	partner := createUser(t, repos, "p@example.com", entity.RolePartner)
	other := createUser(t, repos, "o@example.com", entity.RolePartner)

	mine := createBooking(t, repos, customer, createService(t, repos, partner), entity.BookingStatusUpcoming)
	createBooking(t, repos, customer, createService(t, repos, other), entity.BookingStatusCancelled)

	byProvider, err := bookingRepo.ListByProvider(ctx, partner.ID)
	require.NoError(t, err)
	require.Len(t, byProvider, 1)
	assert.Equal(t, mine.ID, byProvider[0].ID)

	byUser, err := bookingRepo.ListByUser(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	require.NoError(t, bookingRepo.UpdateStatus(ctx, mine.ID, entity.BookingStatusCompleted))
	assert.True(t, errors.Is(bookingRepo.UpdateStatus(ctx, uuid.New(), entity.BookingStatusCompleted), domainerrors.ErrBookingNotFound))

	counts, err := bookingRepo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[entity.BookingStatus]int64{
		entity.BookingStatusUpcoming:  0,
		entity.BookingStatusCompleted: 1,
		entity.BookingStatusCancelled: 1,
	}, counts)
}

func TestReviewRepository_UniquePerDirection(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	reviewRepo := repos.NewReviewRepository()

	customer := createUser(t, repos, "c@example.com", entity.RoleUser)
	partner := createUser(t, repos, "p@example.com", entity.RolePartner)
	booking := createBooking(t, repos, customer, createService(t, repos, partner), entity.BookingStatusCompleted)

	review := &entity.Review{
		BookingID:  booking.ID,
		ReviewerID: customer.ID,
		RevieweeID: partner.ID,
		Target:     entity.ReviewTargetProvider,
		Rating:     5,
	}
	require.NoError(t, reviewRepo.Create(ctx, review))

	duplicate := *review
	duplicate.ID = uuid.Nil
	assert.True(t, errors.Is(reviewRepo.Create(ctx, &duplicate), domainerrors.ErrDuplicateReview))

	require.NoError(t, reviewRepo.Create(ctx, &entity.Review{
		BookingID:  booking.ID,
		ReviewerID: partner.ID,
		RevieweeID: customer.ID,
		Target:     entity.ReviewTargetCustomer,
		Rating:     3,
	}))

	exists, err := reviewRepo.ExistsForBooking(ctx, booking.ID, entity.ReviewTargetProvider)
	require.NoError(t, err)
	assert.True(t, exists)

	rating, err := reviewRepo.AverageForProvider(ctx, partner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rating.RatingsCount)
	assert.InDelta(t, 5.0, rating.AverageRating, 0.001)

	count, average, err := reviewRepo.Summary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.InDelta(t, 4.0, average, 0.001)
}

func TestVerificationTokenRepository_DeleteClaimsOnce(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	tokenRepo := repos.NewVerificationTokenRepository()
	user := createUser(t, repos, "c@example.com", entity.RoleUser)

	token := &entity.EmailVerificationToken{
		UserID:    user.ID,
		Email:     user.Email,
		OTPHash:   "hash",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, tokenRepo.Create(ctx, token))

	require.NoError(t, tokenRepo.IncrementAttempts(ctx, token.ID))

	found, err := tokenRepo.FindLatestByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Attempts)

	require.NoError(t, tokenRepo.Delete(ctx, token.ID))
	assert.True(t, errors.Is(tokenRepo.Delete(ctx, token.ID), domainerrors.ErrNoVerificationRequest))
}

func TestTokenLookups_ReadFromPrimary(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	// The replica never receives the schema, so any read routed there fails.
	require.NoError(t, db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")},
	})))
	repos := postgres.NewRepositoryFactory(db)
	ctx := context.Background()
	user := createUser(t, repos, "replica@example.com", entity.RoleUser)

	require.NoError(t, repos.NewVerificationTokenRepository().Create(ctx, &entity.EmailVerificationToken{
		UserID:    user.ID,
		Email:     user.Email,
		OTPHash:   "hash",
		ExpiresAt: time.Now().Add(time.Minute),
	}))
	found, err := repos.NewVerificationTokenRepository().FindLatestByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	require.NoError(t, repos.NewRefreshTokenRepository().CreateRefreshToken(ctx, &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: "refresh-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	stored, err := repos.NewRefreshTokenRepository().FindRefreshTokenByHash(ctx, "refresh-hash")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)

	_, err = repos.NewUserRepository().FindByID(ctx, user.ID)
	assert.Error(t, err, "plain reads still go to the replica")
}

func TestTransactionManager_RollsBack(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	txManager := postgres.NewTransactionManager(db)
	ctx := context.Background()

	err := txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().Create(ctx, &entity.User{
			ExternalUID: "local:rollback",
			Email:       "rollback@example.com",
			Role:        entity.RoleUser,
		}); err != nil {
			return err
		}

		return errors.New("abort")
	})
	require.Error(t, err)

	_, err = postgres.NewUserRepository(db).FindByEmail(ctx, "rollback@example.com")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestAddressRepository_DefaultHandling(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()
	addressRepo := repos.NewAddressRepository()
	user := createUser(t, repos, "c@example.com", entity.RoleUser)

	home := &entity.Address{UserID: user.ID, Label: "Home", FullAddress: "1 Main", IsDefault: true}
	office := &entity.Address{UserID: user.ID, Label: "Office", FullAddress: "2 Side"}
	require.NoError(t, addressRepo.CreateAddress(ctx, home))
	require.NoError(t, addressRepo.CreateAddress(ctx, office))

	require.NoError(t, addressRepo.ClearDefault(ctx, user.ID))
	require.NoError(t, addressRepo.SetDefault(ctx, office.ID))

	addresses, err := addressRepo.FindAddressesByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.Equal(t, office.ID, addresses[0].ID)
	assert.True(t, addresses[0].IsDefault)
	assert.False(t, addresses[1].IsDefault)

	assert.True(t, errors.Is(addressRepo.SetDefault(ctx, uuid.New()), domainerrors.ErrAddressNotFound))
}
