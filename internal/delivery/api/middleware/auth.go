package middleware

import (
	"strings"

	deliverycontext "homeserve/internal/delivery/context"
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/policy"
	"homeserve/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the Bearer access token and stores the caller as a policy.Actor.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated
		}

		tokenString, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || strings.TrimSpace(tokenString) == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("authorization header must be a Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(strings.TrimSpace(tokenString))
		if err != nil {
			return domainerrors.ErrInvalidOrExpiredToken
		}

		if claims.UserID == uuid.Nil || !claims.Role.IsValid() {
			return domainerrors.ErrInvalidOrExpiredToken
		}

		deliverycontext.SetActor(c, &policy.Actor{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})

		return next(c)
	}
}

// RequireRole rejects callers whose role is not listed.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := deliverycontext.GetActor(c)
			if err := policy.RequireRole(actor, roles...); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// GetActor returns the authenticated caller set by Authenticate.
func GetActor(c echo.Context) (*policy.Actor, bool) {
	return deliverycontext.GetActor(c)
}
