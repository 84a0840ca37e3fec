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

type mockRatingCache struct {
	mock.Mock
}

func (m *mockRatingCache) Get(ctx context.Context, providerID uuid.UUID) (*entity.ProviderRating, bool, error) {
	args := m.Called(ctx, providerID)
	rating, _ := args.Get(0).(*entity.ProviderRating)

	return rating, args.Bool(1), args.Error(2)
}

func (m *mockRatingCache) Set(ctx context.Context, rating *entity.ProviderRating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *mockRatingCache) Invalidate(ctx context.Context, providerID uuid.UUID) error {
	return m.Called(ctx, providerID).Error(0)
}

func TestReviewService_SubmitBothDirections(t *testing.T) {
	s := newBookingScenario(t)
	ctx := context.Background()
	booking := s.f.seedBooking(t, s.customer, s.service, entity.BookingStatusCompleted)

	ratingCache := new(mockRatingCache)
	ratingCache.On("Invalidate", mock.Anything, s.partner.ID).Return(nil).Once()
	srv := s.f.reviewService(ratingCache)

	forProvider, err := srv.Submit(ctx, actorOf(s.customer), &usecase.SubmitReviewInput{
		BookingID: booking.ID,
		Rating:    5,
		Comment:   "Spotless",
		Target:    entity.ReviewTargetProvider,
	})
	require.NoError(t, err)
	assert.Equal(t, s.customer.ID, forProvider.ReviewerID)
	assert.Equal(t, s.partner.ID, forProvider.RevieweeID)

	forCustomer, err := srv.Submit(ctx, actorOf(s.partner), &usecase.SubmitReviewInput{
		BookingID: booking.ID,
		Rating:    4,
		Target:    entity.ReviewTargetCustomer,
	})
	require.NoError(t, err)
	assert.Equal(t, s.customer.ID, forCustomer.RevieweeID)

	_, err = srv.Submit(ctx, actorOf(s.customer), &usecase.SubmitReviewInput{
		BookingID: booking.ID,
		Rating:    1,
		Target:    entity.ReviewTargetProvider,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateReview))

	ratingCache.AssertExpectations(t)
}

func TestReviewService_SubmitRejections(t *testing.T) {
	tests := []struct {
		name    string
		status  entity.BookingStatus
		actor   func(s *bookingScenario) *entity.User
		rating  int
		target  entity.ReviewTarget
		wantErr error
	}{
		{
			name:    "booking not completed",
			status:  entity.BookingStatusUpcoming,
			actor:   func(s *bookingScenario) *entity.User { return s.customer },
			rating:  5,
			target:  entity.ReviewTargetProvider,
			wantErr: domainerrors.ErrBookingNotCompleted,
		},
		{
			name:    "rating out of range",
			status:  entity.BookingStatusCompleted,
			actor:   func(s *bookingScenario) *entity.User { return s.customer },
			rating:  6,
			target:  entity.ReviewTargetProvider,
			wantErr: domainerrors.ErrInvalidRating,
		},
		{
			name:    "partner reviewing itself",
			status:  entity.BookingStatusCompleted,
			actor:   func(s *bookingScenario) *entity.User { return s.partner },
			rating:  5,
			target:  entity.ReviewTargetProvider,
			wantErr: domainerrors.ErrForbidden,
		},
		{
			name:    "customer reviewing customer",
			status:  entity.BookingStatusCompleted,
			actor:   func(s *bookingScenario) *entity.User { return s.customer },
			rating:  5,
			target:  entity.ReviewTargetCustomer,
			wantErr: domainerrors.ErrForbidden,
		},
		{
			name:    "unknown target",
			status:  entity.BookingStatusCompleted,
			actor:   func(s *bookingScenario) *entity.User { return s.customer },
			rating:  5,
			target:  entity.ReviewTarget("service"),
			wantErr: domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newBookingScenario(t)
			booking := s.f.seedBooking(t, s.customer, s.service, tt.status)

			_, err := s.f.reviewService(nil).Submit(context.Background(), actorOf(tt.actor(s)), &usecase.SubmitReviewInput{
				BookingID: booking.ID,
				Rating:    tt.rating,
				Target:    tt.target,
			})
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestReviewService_SubmitUnknownBooking(t *testing.T) {
	s := newBookingScenario(t)

	_, err := s.f.reviewService(nil).Submit(context.Background(), actorOf(s.customer), &usecase.SubmitReviewInput{
		BookingID: uuid.New(),
		Rating:    5,
		Target:    entity.ReviewTargetProvider,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrBookingNotFound))
}

func TestReviewService_AverageForProvider(t *testing.T) {
	s := newBookingScenario(t)
	ctx := context.Background()
	srv := s.f.reviewService(nil)

	for _, rating := range []int{5, 4} {
		booking := s.f.seedBooking(t, s.customer, s.service, entity.BookingStatusCompleted)
		_, err := srv.Submit(ctx, actorOf(s.customer), &usecase.SubmitReviewInput{
			BookingID: booking.ID,
			Rating:    rating,
			Target:    entity.ReviewTargetProvider,
		})
		require.NoError(t, err)
	}

	average, err := srv.AverageForProvider(ctx, s.partner.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, average.AverageRating, 0.001)
	assert.EqualValues(t, 2, average.RatingsCount)

	reviews, err := srv.ListForProvider(ctx, s.partner.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	empty, err := srv.AverageForProvider(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, empty.RatingsCount)
}

func TestReviewService_AverageServedFromCache(t *testing.T) {
	s := newBookingScenario(t)
	ctx := context.Background()
	cached := &entity.ProviderRating{ProviderID: s.partner.ID, AverageRating: 3.5, RatingsCount: 8}

	ratingCache := new(mockRatingCache)
	ratingCache.On("Get", mock.Anything, s.partner.ID).Return(cached, true, nil).Once()

	got, err := s.f.reviewService(ratingCache).AverageForProvider(ctx, s.partner.ID)
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	ratingCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestReviewService_AverageCacheMissStoresResult(t *testing.T) {
	s := newBookingScenario(t)
	ctx := context.Background()

	ratingCache := new(mockRatingCache)
	ratingCache.On("Get", mock.Anything, s.partner.ID).Return(nil, false, errors.New("redis down")).Once()
	ratingCache.On("Set", mock.Anything, mock.MatchedBy(func(r *entity.ProviderRating) bool {
		return r.ProviderID == s.partner.ID
	})).Return(nil).Once()

	_, err := s.f.reviewService(ratingCache).AverageForProvider(ctx, s.partner.ID)
	require.NoError(t, err)
	ratingCache.AssertExpectations(t)
}
