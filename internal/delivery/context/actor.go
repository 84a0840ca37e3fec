package context

import (
	"context"
	"log/slog"

	"homeserve/internal/domain/policy"

	"github.com/labstack/echo/v4"
)

// KeyActor is the echo.Context key of the authenticated caller.
const KeyActor ContextKey = "actor"

// SetActor stores the authenticated caller in echo.Context and tags the
// request logger with user_id and role.
func SetActor(c echo.Context, actor *policy.Actor) {
	c.Set(string(KeyActor), actor)

	ctx := c.Request().Context()
	if logger := GetLogger(ctx); logger != nil {
		logger = logger.With(slog.Any("user_id", actor.UserID), slog.String("role", actor.Role.String()))
		c.SetRequest(c.Request().WithContext(context.WithValue(ctx, KeyLogger, logger)))
	}
}

// GetActor returns the authenticated caller, if any.
func GetActor(c echo.Context) (*policy.Actor, bool) {
	actor, ok := c.Get(string(KeyActor)).(*policy.Actor)

	return actor, ok && actor != nil
}
