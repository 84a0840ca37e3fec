package handler

import (
	"log/slog"

	"homeserve/internal/delivery/api/response"
	"homeserve/internal/domain/entity"
	"homeserve/internal/usecase"
	"homeserve/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler serves review submission and provider ratings.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

// SubmitReviewRequest represents the request body for reviewing a completed booking.
// Rating bounds are checked by the review use case.
type SubmitReviewRequest struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Target    string `json:"target"`
}

func (r *SubmitReviewRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "bookingId", Check: validation.UUID(), Message: "Booking id must be a UUID"},
		{
			Field:   "target",
			Check:   validation.OneOf(entity.ReviewTargetProvider.String(), entity.ReviewTargetCustomer.String()),
			Message: "Target must be provider or customer",
		},
	}
}

func (r *SubmitReviewRequest) Fields() map[string]any {
	return map[string]any{"bookingId": r.BookingID, "target": r.Target}
}

// SubmitReview records a review
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req SubmitReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewUC.Submit(c.Request().Context(), actor, &usecase.SubmitReviewInput{
		BookingID: uuid.MustParse(req.BookingID),
		Rating:    req.Rating,
		Comment:   req.Comment,
		Target:    entity.ReviewTarget(req.Target),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, newReviewView(review))
}

// ProviderRating returns the average rating of a partner
func (h *ReviewHandler) ProviderRating(c echo.Context) error {
	providerID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	rating, err := h.reviewUC.AverageForProvider(c.Request().Context(), providerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, rating)
}

// ProviderReviews lists the reviews left for a partner
func (h *ReviewHandler) ProviderReviews(c echo.Context) error {
	providerID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.reviewUC.ListForProvider(c.Request().Context(), providerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, mapViews(reviews, newReviewView))
}
