package handler

import (
	"log/slog"

	"homeserve/internal/delivery/api/response"
	"homeserve/internal/domain/entity"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/usecase"
	"homeserve/internal/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler serves platform statistics and account management.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// AssignRoleRequest is the body of a role change. Unknown roles are rejected by the admin use case.
type AssignRoleRequest struct {
	Role string `json:"role"`
}

func (r *AssignRoleRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "role", Check: validation.Required(), Message: "Role is required"},
	}
}

func (r *AssignRoleRequest) Fields() map[string]any {
	return map[string]any{"role": r.Role}
}

// Stats returns the dashboard summary
func (h *AdminHandler) Stats(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.adminUC.Stats(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, stats)
}

// ListUsers returns accounts, optionally filtered by ?role=
func (h *AdminHandler) ListUsers(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var role *entity.Role
	if raw := c.QueryParam("role"); raw != "" {
		parsed, ok := entity.ParseRole(raw)
		if !ok {
			return domainerrors.ErrValidationFailed.WithDetails("unknown role " + raw)
		}
		role = &parsed
	}

	users, err := h.adminUC.ListUsers(c.Request().Context(), actor, role)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(users, newUserView))
}

// AssignRole changes another user's role
func (h *AdminHandler) AssignRole(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AssignRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.adminUC.AssignRole(c.Request().Context(), actor, userID, req.Role)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newUserView(user))
}
