package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"homeserve/config"
	"homeserve/internal/domain/entity"
	"homeserve/internal/domain/policy"
	"homeserve/internal/domain/repository"
	"homeserve/internal/domain/service"
	"homeserve/internal/infra/auth"
	"homeserve/internal/infra/cache"
	"homeserve/internal/infra/identity"
	"homeserve/internal/infra/persistence/postgres"
	"homeserve/internal/infra/persistence/testutil"
	"homeserve/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const defaultTestOTPTTL = 10 * time.Minute

// sha256Hasher stands in for bcrypt so tests stay fast.
type sha256Hasher struct{}

func (sha256Hasher) Hash(secret string) (string, error) {
	sum := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(sum[:]), nil
}

func (h sha256Hasher) Check(secret, hash string) bool {
	digest, _ := h.Hash(secret)

	return digest == hash
}

// queuedGenerator hands out codes in order, repeating the last one.
type queuedGenerator struct {
	mu    sync.Mutex
	codes []string
}

func (g *queuedGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := g.codes[0]
	if len(g.codes) > 1 {
		g.codes = g.codes[1:]
	}

	return code, nil
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendOTPEmail(ctx context.Context, address, code string, ttlMinutes int) error {
	return m.Called(ctx, address, code, ttlMinutes).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishBookingEvent(ctx context.Context, event *service.BookingEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type testFixture struct {
	cfg       *config.Config
	logger    *slog.Logger
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
	hasher    service.PasswordHasher
	tokens    service.TokenService
	identity  service.IdentityProvider
	generator *queuedGenerator
	mailer    *mockMailer
	publisher *mockPublisher
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Auth:    &config.AuthConfig{BcryptCost: config.MinBcryptCost},
		OTP:     &config.OTPConfig{Length: 6, TTL: defaultTestOTPTTL},
		Booking: &config.BookingConfig{AllowDirectCompletion: true},
	}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return &testFixture{
		cfg:       cfg,
		logger:    logger,
		txManager: postgres.NewTransactionManager(db),
		repos:     postgres.NewRepositoryFactory(db),
		hasher:    sha256Hasher{},
		tokens:    tokens,
		identity:  identity.NewLocalProvider(logger),
		generator: &queuedGenerator{codes: []string{"482913"}},
		mailer:    new(mockMailer),
		publisher: new(mockPublisher),
	}
}

func (f *testFixture) verificationService() *verificationService {
	return NewVerificationService(VerificationServiceParams{
		TxManager: f.txManager,
		UserRepo:  f.repos.NewUserRepository(),
		TokenRepo: f.repos.NewVerificationTokenRepository(),
		Hasher:    f.hasher,
		Generator: f.generator,
		Mailer:    f.mailer,
		Config:    f.cfg,
		Logger:    f.logger,
	}).(*verificationService)
}

func (f *testFixture) authService(verification usecase.VerificationUsecase) *authService {
	return NewAuthService(AuthServiceParams{
		TxManager:        f.txManager,
		UserRepo:         f.repos.NewUserRepository(),
		RefreshTokenRepo: f.repos.NewRefreshTokenRepository(),
		Hasher:           f.hasher,
		TokenService:     f.tokens,
		Identity:         f.identity,
		Verification:     verification,
		Logger:           f.logger,
	}).(*authService)
}

func (f *testFixture) bookingService(verification usecase.VerificationUsecase) *bookingService {
	return NewBookingService(BookingServiceParams{
		TxManager:    f.txManager,
		BookingRepo:  f.repos.NewBookingRepository(),
		ServiceRepo:  f.repos.NewServiceRepository(),
		UserRepo:     f.repos.NewUserRepository(),
		Verification: verification,
		Publisher:    f.publisher,
		Config:       f.cfg,
		Logger:       f.logger,
	}).(*bookingService)
}

func (f *testFixture) reviewService(ratingCache service.RatingCache) usecase.ReviewUsecase {
	if ratingCache == nil {
		ratingCache = cache.NewNoopRatingCache()
	}

	return NewReviewService(ReviewServiceParams{
		TxManager:   f.txManager,
		ReviewRepo:  f.repos.NewReviewRepository(),
		RatingCache: ratingCache,
		Logger:      f.logger,
	})
}

func (f *testFixture) catalogService() usecase.CatalogUsecase {
	return NewCatalogService(CatalogServiceParams{
		TxManager:   f.txManager,
		CatalogRepo: f.repos.NewCatalogRepository(),
		ServiceRepo: f.repos.NewServiceRepository(),
		Logger:      f.logger,
	})
}

func (f *testFixture) profileService() usecase.ProfileUsecase {
	return NewProfileService(ProfileServiceParams{
		TxManager:   f.txManager,
		ProfileRepo: f.repos.NewProviderProfileRepository(),
		AddressRepo: f.repos.NewAddressRepository(),
		Logger:      f.logger,
	})
}

func (f *testFixture) adminService() usecase.AdminUsecase {
	return NewAdminService(AdminServiceParams{
		TxManager:   f.txManager,
		UserRepo:    f.repos.NewUserRepository(),
		BookingRepo: f.repos.NewBookingRepository(),
		ServiceRepo: f.repos.NewServiceRepository(),
		ReviewRepo:  f.repos.NewReviewRepository(),
		Logger:      f.logger,
	})
}

// seedUser stores a user with the given role and password "Password123!".
func (f *testFixture) seedUser(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()

	hash, err := f.hasher.Hash("Password123!")
	require.NoError(t, err)

	user := &entity.User{
		ExternalUID:  "local:" + email,
		Email:        email,
		PasswordHash: &hash,
		FullName:     "Test " + role.String(),
		Role:         role,
	}
	require.NoError(t, f.repos.NewUserRepository().Create(context.Background(), user))

	return user
}

// seedService stores a service owned by provider.
func (f *testFixture) seedService(t *testing.T, provider *entity.User, price float64) *entity.Service {
	t.Helper()

	svc := &entity.Service{
		Name:            "Deep cleaning",
		Price:           price,
		DurationMinutes: 120,
		Availability:    true,
		TimeSlots:       []string{"09:00", "14:00"},
	}
	if provider != nil {
		svc.ProviderID = &provider.ID
	}
	require.NoError(t, f.repos.NewServiceRepository().Create(context.Background(), svc))

	return svc
}

// seedBooking stores a booking of svc for customer in the given status.
func (f *testFixture) seedBooking(t *testing.T, customer *entity.User, svc *entity.Service, status entity.BookingStatus) *entity.Booking {
	t.Helper()

	booking := &entity.Booking{
		UserID:    customer.ID,
		ServiceID: svc.ID,
		Date:      "2026-11-02",
		Time:      "09:00",
		Address:   "12 Market Street",
		Price:     svc.Price,
		Status:    status,
	}
	require.NoError(t, f.repos.NewBookingRepository().Create(context.Background(), booking))

	return booking
}

func actorOf(user *entity.User) *policy.Actor {
	return &policy.Actor{UserID: user.ID, Email: user.Email, Role: user.Role}
}
