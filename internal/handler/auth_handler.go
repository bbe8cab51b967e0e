package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dailydiet/internal/auth"
	"dailydiet/internal/errors"
	"dailydiet/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookies     auth.CookieOptions
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies auth.CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// SignUpRequest represents a user registration request.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required" example:"John Doe"`
	Email    string `json:"email" validate:"required,email" example:"john@x.com"`
	Password string `json:"password" validate:"required,min=6" example:"12345678"`
}

// SignInRequest represents a user sign-in request.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email" example:"john@x.com"`
	Password string `json:"password" validate:"required,min=6" example:"12345678"`
}

// SignUp godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Param request body SignUpRequest true "Registration data"
// @Success 201
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	if auth.SessionIDFromRequest(c) != "" {
		return domainError(errors.ErrAlreadyAuthenticated)
	}

	var req SignUpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.authService.SignUp(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusCreated)
}

// SignIn godoc
// @Summary Sign in and receive a session cookie
// @Tags auth
// @Accept json
// @Param request body SignInRequest true "Credentials"
// @Success 200 "Set-Cookie: sessionId"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	if auth.SessionIDFromRequest(c) != "" {
		return domainError(errors.ErrAlreadyAuthenticated)
	}

	var req SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sessionID, _, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}

	c.SetCookie(auth.SessionCookie(sessionID, h.cookies))
	return c.NoContent(http.StatusOK)
}

// SignOut godoc
// @Summary Revoke the current session
// @Tags auth
// @Security SessionCookie
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.authService.SignOut(c.Request().Context(), user); err != nil {
		return domainError(err)
	}

	c.SetCookie(auth.ExpiredSessionCookie(h.cookies))
	return c.NoContent(http.StatusNoContent)
}
