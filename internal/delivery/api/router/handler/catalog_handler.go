package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"homeserve/internal/delivery/api/response"
	"homeserve/internal/domain/entity"
	"homeserve/internal/usecase"
	"homeserve/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves the taxonomy and the bookable services.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// NamedRequest is the body of category and occupation writes
type NamedRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *NamedRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "name", Check: validation.Required(), Message: "Name is required"},
	}
}

func (r *NamedRequest) Fields() map[string]any {
	return map[string]any{"name": r.Name}
}

// ServiceTypeRequest is the body of service type writes
type ServiceTypeRequest struct {
	NamedRequest
	CategoryID string `json:"categoryId"`
}

func (r *ServiceTypeRequest) Schema() validation.Schema {
	return append(validation.Schema{
		{Field: "categoryId", Check: validation.UUID(), Message: "Category id must be a UUID"},
	}, r.NamedRequest.Schema()...)
}

func (r *ServiceTypeRequest) Fields() map[string]any {
	fields := r.NamedRequest.Fields()
	fields["categoryId"] = r.CategoryID

	return fields
}

func (r *ServiceTypeRequest) toInput() *usecase.ServiceTypeInput {
	return &usecase.ServiceTypeInput{
		CategoryID:  uuid.MustParse(r.CategoryID),
		Name:        r.Name,
		Description: r.Description,
	}
}

// ServiceRequest is the body of service writes. Numeric rules are enforced by the catalog use case.
type ServiceRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	ServiceTypeID   *string  `json:"serviceTypeId"`
	CategoryID      *string  `json:"categoryId"`
	DurationMinutes int      `json:"durationMinutes"`
	Availability    *bool    `json:"availability"`
	TimeSlots       []string `json:"timeSlots"`
}

func (r *ServiceRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "serviceTypeId", Check: validation.UUID(), Message: "Service type id must be a UUID", Optional: true},
		{Field: "categoryId", Check: validation.UUID(), Message: "Category id must be a UUID", Optional: true},
	}
}

func (r *ServiceRequest) Fields() map[string]any {
	return map[string]any{"serviceTypeId": r.ServiceTypeID, "categoryId": r.CategoryID}
}

func (r *ServiceRequest) toInput() *usecase.ServiceInput {
	return &usecase.ServiceInput{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		ServiceTypeID:   parseOptionalUUID(r.ServiceTypeID),
		CategoryID:      parseOptionalUUID(r.CategoryID),
		DurationMinutes: r.DurationMinutes,
		Availability:    r.Availability,
		TimeSlots:       r.TimeSlots,
	}
}

// ListCategories returns every service category
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(categories, newCategoryView))
}

// CreateCategory adds a category
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req NamedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.catalogUC.CreateCategory(c.Request().Context(), actor, &usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, newCategoryView(category))
}

// UpdateCategory edits a category
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req NamedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.catalogUC.UpdateCategory(c.Request().Context(), actor, id, &usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newCategoryView(category))
}

// DeleteCategory removes a category
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeleteCategory(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListServiceTypes returns service types, optionally of one category
func (h *CatalogHandler) ListServiceTypes(c echo.Context) error {
	categoryID, err := optionalUUID(c, "categoryId")
	if err != nil {
		return err
	}

	types, err := h.catalogUC.ListServiceTypes(c.Request().Context(), categoryID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(types, newServiceTypeView))
}

// CreateServiceType adds a service type
func (h *CatalogHandler) CreateServiceType(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req ServiceTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	serviceType, err := h.catalogUC.CreateServiceType(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, newServiceTypeView(serviceType))
}

// UpdateServiceType edits a service type
func (h *CatalogHandler) UpdateServiceType(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ServiceTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	serviceType, err := h.catalogUC.UpdateServiceType(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newServiceTypeView(serviceType))
}

// DeleteServiceType removes a service type
func (h *CatalogHandler) DeleteServiceType(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeleteServiceType(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListOccupations returns every occupation
func (h *CatalogHandler) ListOccupations(c echo.Context) error {
	occupations, err := h.catalogUC.ListOccupations(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(occupations, newOccupationView))
}

// CreateOccupation adds an occupation
func (h *CatalogHandler) CreateOccupation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req NamedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	occupation, err := h.catalogUC.CreateOccupation(c.Request().Context(), actor, &usecase.OccupationInput{Name: req.Name})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, newOccupationView(occupation))
}

// UpdateOccupation renames an occupation
func (h *CatalogHandler) UpdateOccupation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req NamedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	occupation, err := h.catalogUC.UpdateOccupation(c.Request().Context(), actor, id, &usecase.OccupationInput{Name: req.Name})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newOccupationView(occupation))
}

// DeleteOccupation removes an occupation
func (h *CatalogHandler) DeleteOccupation(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeleteOccupation(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListServices returns services filtered by categoryId, serviceTypeId and available
func (h *CatalogHandler) ListServices(c echo.Context) error {
	var filter entity.ServiceFilter

	var err error
	if filter.CategoryID, err = optionalUUID(c, "categoryId"); err != nil {
		return err
	}
	if filter.ServiceTypeID, err = optionalUUID(c, "serviceTypeId"); err != nil {
		return err
	}
	if raw := c.QueryParam("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BindingError(err)
		}
		filter.Available = &available
	}

	services, err := h.catalogUC.ListServices(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(services, newServiceView))
}

// GetService returns one service
func (h *CatalogHandler) GetService(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	svc, err := h.catalogUC.GetService(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newServiceView(svc))
}

// ListPartnerServices returns the calling partner's services
func (h *CatalogHandler) ListPartnerServices(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	services, err := h.catalogUC.ListPartnerServices(c.Request().Context(), actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(services, newServiceView))
}

// CreateService adds a service owned by the calling partner, or a catalog service for admins
func (h *CatalogHandler) CreateService(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req ServiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc, err := h.catalogUC.CreateService(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, newServiceView(svc))
}

// UpdateService edits a service of the calling partner
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ServiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc, err := h.catalogUC.UpdateService(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newServiceView(svc))
}

// DeleteService removes a service
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeleteService(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
