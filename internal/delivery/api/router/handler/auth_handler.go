package handler

import (
	"log/slog"
	"slices"

	"homeserve/internal/delivery/api/response"
	"homeserve/internal/usecase"
	"homeserve/internal/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const minPasswordLength = 8

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC         usecase.AuthUsecase
	VerificationUC usecase.VerificationUsecase
	Logger         *slog.Logger
}

// AuthHandler serves registration, login and email verification.
type AuthHandler struct {
	authUC         usecase.AuthUsecase
	verificationUC usecase.VerificationUsecase
	logger         *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:         params.AuthUC,
		verificationUC: params.VerificationUC,
		logger:         params.Logger,
	}
}

var credentialRules = validation.Schema{
	{Field: "email", Check: validation.Required(), Message: "Email is required"},
	{Field: "email", Check: validation.Tag("email"), Message: "Email is invalid"},
	{Field: "password", Check: validation.MinLength(minPasswordLength), Message: "Password must be at least 8 characters"},
}

// RegisterRequest represents the request body for customer registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (r *RegisterRequest) Schema() validation.Schema {
	return slices.Concat(credentialRules, validation.Schema{
		{Field: "fullName", Check: validation.Required(), Message: "Full name is required"},
	})
}

func (r *RegisterRequest) Fields() map[string]any {
	return map[string]any{"email": r.Email, "password": r.Password, "fullName": r.FullName}
}

// RegisterPartnerRequest represents the request body for partner registration
type RegisterPartnerRequest struct {
	RegisterRequest
	OccupationID    *string `json:"occupationId"`
	Bio             string  `json:"bio"`
	ExperienceYears int     `json:"experienceYears"`
}

func (r *RegisterPartnerRequest) Schema() validation.Schema {
	return slices.Concat(r.RegisterRequest.Schema(), validation.Schema{
		{Field: "occupationId", Check: validation.UUID(), Message: "Occupation id must be a UUID", Optional: true},
		{Field: "experienceYears", Check: validation.AtLeast(0), Message: "Experience years cannot be negative"},
	})
}

func (r *RegisterPartnerRequest) Fields() map[string]any {
	fields := r.RegisterRequest.Fields()
	fields["occupationId"] = r.OccupationID
	fields["experienceYears"] = r.ExperienceYears

	return fields
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "email", Check: validation.Tag("email"), Message: "Email is invalid"},
		{Field: "password", Check: validation.Required(), Message: "Password is required"},
	}
}

func (r *LoginRequest) Fields() map[string]any {
	return map[string]any{"email": r.Email, "password": r.Password}
}

// VerifyEmailOTPRequest represents the request body for email verification
type VerifyEmailOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r *VerifyEmailOTPRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "email", Check: validation.Tag("email"), Message: "Email is invalid"},
		{Field: "otp", Check: validation.Required(), Message: "Verification code is required"},
		{Field: "otp", Check: validation.Tag("numeric"), Message: "Verification code must be numeric"},
	}
}

func (r *VerifyEmailOTPRequest) Fields() map[string]any {
	return map[string]any{"email": r.Email, "otp": r.OTP}
}

// ResendEmailOTPRequest represents the request body for a new verification code
type ResendEmailOTPRequest struct {
	Email string `json:"email"`
}

func (r *ResendEmailOTPRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "email", Check: validation.Tag("email"), Message: "Email is invalid"},
	}
}

func (r *ResendEmailOTPRequest) Fields() map[string]any {
	return map[string]any{"email": r.Email}
}

// RefreshTokenRequest carries a refresh token for rotation or logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *RefreshTokenRequest) Schema() validation.Schema {
	return validation.Schema{
		{Field: "refreshToken", Check: validation.Required(), Message: "Refresh token is required"},
	}
}

func (r *RefreshTokenRequest) Fields() map[string]any {
	return map[string]any{"refreshToken": r.RefreshToken}
}

// Register handles customer registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, newAuthView(out, true))
}

// RegisterPartner handles partner registration
func (h *AuthHandler) RegisterPartner(c echo.Context) error {
	var req RegisterPartnerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.authUC.RegisterPartner(c.Request().Context(), &usecase.RegisterPartnerInput{
		Email:           req.Email,
		Password:        req.Password,
		FullName:        req.FullName,
		OccupationID:    parseOptionalUUID(req.OccupationID),
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, newAuthView(out, true))
}

// Login handles credential login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newAuthView(out, false))
}

// VerifyEmailOTP consumes a signup verification code
func (h *AuthHandler) VerifyEmailOTP(c echo.Context) error {
	var req VerifyEmailOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.verificationUC.Verify(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newUserView(user))
}

// ResendEmailOTP issues a new signup verification code
func (h *AuthHandler) ResendEmailOTP(c echo.Context) error {
	var req ResendEmailOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.verificationUC.Resend(c.Request().Context(), req.Email); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Verification code sent")
}

// Refresh rotates the token pair
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.authUC.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newAuthView(out, false))
}

// Logout revokes a refresh token
func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authUC.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Successfully logged out")
}

// Profile returns the authenticated user
func (h *AuthHandler) Profile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	user, err := h.authUC.Profile(c.Request().Context(), actor.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, newUserView(user))
}
