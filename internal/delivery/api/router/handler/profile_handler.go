package handler

import (
	"log/slog"
	"net/http"

	"homeserve/internal/delivery/api/response"
	"homeserve/internal/usecase"
	"homeserve/internal/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler serves partner profiles and customer addresses.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// ProviderProfileRequest is the body of a partner profile upsert
type ProviderProfileRequest struct {
	OccupationID    *string `json:"occupationId"`
	Bio             string  `json:"bio"`
	ExperienceYears int     `json:"experienceYears"`
}

func (r *ProviderProfileRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "occupationId", Check: validation.UUID(), Message: "Occupation id must be a UUID", Optional: true},
	}
}

func (r *ProviderProfileRequest) Fields() map[string]any {
	return map[string]any{"occupationId": r.OccupationID}
}

// AddressRequest is the body of a new address
type AddressRequest struct {
	Label       string `json:"label"`
	FullAddress string `json:"fullAddress"`
	IsDefault   bool   `json:"isDefault"`
}

func (r *AddressRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "label", Check: validation.Required(), Message: "Label is required"},
		{Field: "fullAddress", Check: validation.Required(), Message: "Full address is required"},
	}
}

func (r *AddressRequest) Fields() map[string]any {
	return map[string]any{"label": r.Label, "fullAddress": r.FullAddress}
}

// GetProviderProfile returns the calling partner's profile
func (h *ProfileHandler) GetProviderProfile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	profile, err := h.profileUC.GetProviderProfile(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newProviderProfileView(profile))
}

// UpsertProviderProfile creates or replaces the calling partner's profile
func (h *ProfileHandler) UpsertProviderProfile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req ProviderProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profileUC.UpsertProviderProfile(c.Request().Context(), actor, &usecase.ProviderProfileInput{
		OccupationID:    parseOptionalUUID(req.OccupationID),
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newProviderProfileView(profile))
}

// ListAddresses returns the caller's addresses, default first
func (h *ProfileHandler) ListAddresses(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	addresses, err := h.profileUC.ListAddresses(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(addresses, newAddressView))
}

// CreateAddress stores a new address for the caller
func (h *ProfileHandler) CreateAddress(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req AddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.profileUC.CreateAddress(c.Request().Context(), actor, &usecase.AddressInput{
		Label:       req.Label,
		FullAddress: req.FullAddress,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, newAddressView(address))
}

// DeleteAddress removes one of the caller's addresses
func (h *ProfileHandler) DeleteAddress(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.profileUC.DeleteAddress(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SetDefaultAddress marks one of the caller's addresses as default
func (h *ProfileHandler) SetDefaultAddress(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	address, err := h.profileUC.SetDefaultAddress(c.Request().Context(), actor, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newAddressView(address))
}
