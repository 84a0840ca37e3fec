// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"homeserve/internal/delivery/api/middleware"
	"homeserve/internal/delivery/api/response"
	domainerrors "homeserve/internal/domain/errors"
	"homeserve/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// actorFrom returns the caller set by the auth middleware.
func actorFrom(c echo.Context) (*policy.Actor, error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return nil, domainerrors.ErrUnauthenticated
	}

	return actor, nil
}

// bindAndValidate decodes the body into req and runs its declared rules.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return response.BindingError(err)
	}

	return c.Validate(req)
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, response.InvalidID(name)
	}

	return id, nil
}

// optionalUUID parses a query parameter, treating an empty value as absent.
func optionalUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, response.InvalidID(name)
	}

	return &id, nil
}

// parseOptionalUUID converts an optional body field.
func parseOptionalUUID(raw *string) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}

	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}

	return &id
}
