// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"homeserve/internal/delivery/api/middleware"
	"homeserve/internal/delivery/api/router/handler"
	"homeserve/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	BookingHandler *handler.BookingHandler
	ReviewHandler  *handler.ReviewHandler
	CatalogHandler *handler.CatalogHandler
	ProfileHandler *handler.ProfileHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	bookingHandler *handler.BookingHandler
	reviewHandler  *handler.ReviewHandler
	catalogHandler *handler.CatalogHandler
	profileHandler *handler.ProfileHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		bookingHandler: params.BookingHandler,
		reviewHandler:  params.ReviewHandler,
		catalogHandler: params.CatalogHandler,
		profileHandler: params.ProfileHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	authenticate := r.authMiddleware.Authenticate
	requirePartner := r.authMiddleware.RequireRole(entity.RolePartner)
	requireAdmin := r.authMiddleware.RequireRole(entity.RoleAdmin)

	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/register/partner", r.authHandler.RegisterPartner)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/verify-email-otp", r.authHandler.VerifyEmailOTP)
		authGroup.POST("/resend-email-otp", r.authHandler.ResendEmailOTP)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/profile", r.authHandler.Profile, authenticate)
	}

	// Public catalog
	e.GET("/categories", r.catalogHandler.ListCategories)
	e.GET("/service-types", r.catalogHandler.ListServiceTypes)
	e.GET("/services", r.catalogHandler.ListServices)
	e.GET("/services/:id", r.catalogHandler.GetService)
	e.GET("/occupations", r.catalogHandler.ListOccupations)
	e.GET("/providers/:id/rating", r.reviewHandler.ProviderRating)
	e.GET("/providers/:id/reviews", r.reviewHandler.ProviderReviews)

	// Occupation writes share the public path, so they carry route-level middleware.
	e.POST("/occupations", r.catalogHandler.CreateOccupation, authenticate, requireAdmin)
	e.PUT("/occupations/:id", r.catalogHandler.UpdateOccupation, authenticate, requireAdmin)
	e.DELETE("/occupations/:id", r.catalogHandler.DeleteOccupation, authenticate, requireAdmin)

	// Any authenticated caller may book; ownership is checked per booking.
	bookingsGroup := e.Group("/bookings", authenticate)
	{
		bookingsGroup.POST("", r.bookingHandler.CreateBooking)
		bookingsGroup.GET("/me", r.bookingHandler.ListMyBookings)
		bookingsGroup.GET("/:id", r.bookingHandler.GetBooking)
	}

	e.POST("/reviews", r.reviewHandler.SubmitReview, authenticate)

	addressesGroup := e.Group("/addresses", authenticate)
	{
		addressesGroup.GET("", r.profileHandler.ListAddresses)
		addressesGroup.POST("", r.profileHandler.CreateAddress)
		addressesGroup.DELETE("/:id", r.profileHandler.DeleteAddress)
		addressesGroup.PUT("/:id/default", r.profileHandler.SetDefaultAddress)
	}

	partnerGroup := e.Group("/partner", authenticate, requirePartner)
	{
		partnerGroup.GET("/bookings", r.bookingHandler.ListPartnerBookings)
		partnerGroup.PUT("/bookings/:id/status", r.bookingHandler.UpdateStatus)
		partnerGroup.POST("/bookings/:id/complete-otp", r.bookingHandler.RequestCompletionOTP)
		partnerGroup.POST("/bookings/:id/complete-verify", r.bookingHandler.VerifyCompletionOTP)

		partnerGroup.GET("/services", r.catalogHandler.ListPartnerServices)
		partnerGroup.POST("/services", r.catalogHandler.CreateService)
		partnerGroup.PUT("/services/:id", r.catalogHandler.UpdateService)
		partnerGroup.DELETE("/services/:id", r.catalogHandler.DeleteService)

		partnerGroup.GET("/profile", r.profileHandler.GetProviderProfile)
		partnerGroup.PUT("/profile", r.profileHandler.UpsertProviderProfile)
	}

	adminGroup := e.Group("/admin", authenticate, requireAdmin)
	{
		adminGroup.GET("/stats", r.adminHandler.Stats)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PUT("/users/:id/role", r.adminHandler.AssignRole)

		adminGroup.POST("/categories", r.catalogHandler.CreateCategory)
		adminGroup.PUT("/categories/:id", r.catalogHandler.UpdateCategory)
		adminGroup.DELETE("/categories/:id", r.catalogHandler.DeleteCategory)

		adminGroup.POST("/service-types", r.catalogHandler.CreateServiceType)
		adminGroup.PUT("/service-types/:id", r.catalogHandler.UpdateServiceType)
		adminGroup.DELETE("/service-types/:id", r.catalogHandler.DeleteServiceType)

		adminGroup.POST("/services", r.catalogHandler.CreateService)
		adminGroup.DELETE("/services/:id", r.catalogHandler.DeleteService)
	}
}
