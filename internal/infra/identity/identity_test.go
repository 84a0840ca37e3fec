package identity

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/errors"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUserCreator struct {
	mock.Mock
}

func (m *mockUserCreator) CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	args := m.Called(ctx, user)
	record, _ := args.Get(0).(*auth.UserRecord)

	return record, args.Error(1)
}

func TestLocalProvider_CreateIdentity(t *testing.T) {
	provider := NewLocalProvider(discardLogger())

	first, err := provider.CreateIdentity(context.Background(), "a@example.com", "pw", "A")
	require.NoError(t, err)
	second, err := provider.CreateIdentity(context.Background(), "a@example.com", "pw", "A")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, LocalUIDPrefix))
	assert.NotEqual(t, first, second)
}

func TestLocalProvider_VerifyPassword(t *testing.T) {
	provider := NewLocalProvider(discardLogger())

	_, err := provider.VerifyPassword(context.Background(), "a@example.com", "pw")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestFirebaseProvider_CreateIdentity(t *testing.T) {
	users := new(mockUserCreator)
	users.On("CreateUser", mock.Anything, mock.Anything).
		Return(&auth.UserRecord{UserInfo: &auth.UserInfo{UID: "fb-uid-1"}}, nil).Once()

	provider := &firebaseProvider{users: users, logger: discardLogger()}

	uid, err := provider.CreateIdentity(context.Background(), "a@example.com", "pw", "A")
	require.NoError(t, err)
	assert.Equal(t, "fb-uid-1", uid)
	users.AssertExpectations(t)
}

func TestFirebaseProvider_CreateIdentityFailure(t *testing.T) {
	users := new(mockUserCreator)
	users.On("CreateUser", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded")).Once()

	provider := &firebaseProvider{users: users, logger: discardLogger()}

	_, err := provider.CreateIdentity(context.Background(), "a@example.com", "pw", "A")
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityProviderFailed))
}

func TestFirebaseProvider_VerifyPassword(t *testing.T) {
	provider := &firebaseProvider{
		logger: discardLogger(),
		verify: func(_ context.Context, email, password string) (string, error) {
			if email == "legacy@example.com" && password == "secret" {
				return "fb-legacy", nil
			}

			return "", errors.New("INVALID_PASSWORD")
		},
	}

	uid, err := provider.VerifyPassword(context.Background(), "legacy@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fb-legacy", uid)

	_, err = provider.VerifyPassword(context.Background(), "legacy@example.com", "wrong")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestFirebaseProvider_VerifyPasswordWithoutAPIKey(t *testing.T) {
	provider := &firebaseProvider{logger: discardLogger()}

	_, err := provider.VerifyPassword(context.Background(), "legacy@example.com", "secret")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}
