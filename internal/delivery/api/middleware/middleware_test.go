package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homeserve/config"
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/service"
	"homeserve/internal/errors"
	"homeserve/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateTokens(userID uuid.UUID, email string, role entity.Role) (*service.TokenPair, error) {
	args := m.Called(userID, email, role)
	pair, _ := args.Get(0).(*service.TokenPair)

	return pair, args.Error(1)
}

func (m *mockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *mockTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *mockTokenService) GetRefreshTokenDuration() time.Duration {
	return time.Hour
}

func (m *mockTokenService) HashToken(token string) string {
	return token
}

func newTestEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.Default(), cfg).HandleHTTPError

	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domainerrors.ErrorResponse {
	t.Helper()

	var body domainerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		setup      func(m *mockTokenService)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHENTICATED",
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc",
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHENTICATED",
		},
		{
			name:   "invalid token",
			header: "Bearer broken",
			setup: func(m *mockTokenService) {
				m.On("ValidateAccessToken", "broken").Return(nil, errors.New("bad signature"))
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_OR_EXPIRED_TOKEN",
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setup: func(m *mockTokenService) {
				m.On("ValidateAccessToken", "good").Return(&service.Claims{
					UserID: userID, Email: "a@example.com", Role: entity.RolePartner, Type: service.TokenTypeAccess,
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(mockTokenService)
			if tt.setup != nil {
				tt.setup(tokens)
			}

			e := newTestEcho(&config.Config{})
			auth := NewAuthMiddleware(tokens)
			e.GET("/me", func(c echo.Context) error {
				actor, ok := GetActor(c)
				require.True(t, ok)
				assert.Equal(t, userID, actor.UserID)
				assert.Equal(t, entity.RolePartner, actor.Role)

				return c.NoContent(http.StatusOK)
			}, auth.Authenticate)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				body := decodeError(t, rec)
				assert.False(t, body.Success)
				assert.Equal(t, tt.wantCode, body.Code)
			}
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	tokens := new(mockTokenService)
	tokens.On("ValidateAccessToken", "customer").Return(&service.Claims{
		UserID: uuid.New(), Role: entity.RoleUser, Type: service.TokenTypeAccess,
	}, nil)

	e := newTestEcho(&config.Config{})
	auth := NewAuthMiddleware(tokens)
	e.GET("/partner", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, auth.Authenticate, auth.RequireRole(entity.RolePartner))

	req := httptest.NewRequest(http.MethodGet, "/partner", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer customer")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "FORBIDDEN", body.Code)
	assert.Nil(t, body.Details)
}

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		err         error
		wantStatus  int
		wantCode    string
		wantDetails bool
	}{
		{
			name:       "domain error",
			cfg:        &config.Config{},
			err:        errors.Wrap(domainerrors.ErrBookingNotFound, "load booking"),
			wantStatus: http.StatusNotFound,
			wantCode:   "BOOKING_NOT_FOUND",
		},
		{
			name:        "validation error carries fields",
			cfg:         &config.Config{},
			err:         &validation.Error{Fields: []validation.FieldError{{Field: "email", Message: "Email is invalid"}}},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantDetails: true,
		},
		{
			name:       "echo error",
			cfg:        &config.Config{},
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:        "unknown error outside production",
			cfg:         &config.Config{},
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantDetails: true,
		},
		{
			name: "unknown error in production",
			cfg: func() *config.Config {
				cfg := &config.Config{}
				cfg.Env.Env = config.ProductionEnv

				return cfg
			}(),
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(tt.cfg)
			e.GET("/fail", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.wantDetails, body.Details != nil)
		})
	}
}
