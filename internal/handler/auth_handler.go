package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"emotiguide/internal/auth"
	"emotiguide/internal/errors"
	"emotiguide/internal/model"
	"emotiguide/internal/service"
	"emotiguide/internal/session"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a sign-in or register form submission.
type LoginRequest struct {
	Mode     string `json:"mode" validate:"omitempty,oneof=login register"`
	Username string `json:"username" validate:"max=64"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"max=128"`
	Email    string `json:"email" validate:"omitempty,email"`
	Major    string `json:"major" validate:"max=128"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
}

// Login godoc
// @Summary Sign in or register
// @Description Fabricates a user for the profile without verifying credentials and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Profile-ID header string false "Profile id" default(default)
// @Param request body LoginRequest true "Login form"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	token, user, err := h.authService.Login(c.Request().Context(), profileFrom(c), session.LoginCommand{
		Mode:     session.LoginMode(req.Mode),
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		Major:    req.Major,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: token,
		User:        user,
	})
}

// Logout godoc
// @Summary Logout user
// @Description Clears the current user. Mood history is kept.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	store, err := storeFrom(c)
	if err != nil {
		return err
	}
	user := store.User()
	if user == nil {
		return mapError(errors.ErrNotLoggedIn)
	}
	return c.JSON(http.StatusOK, user)
}

// RequireSession rejects tokens whose user is no longer the current user of
// their profile and stores the session store in the context.
func (h *AuthHandler) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := claimsFrom(c)
		if err != nil {
			return err
		}

		store, err := h.authService.Authorize(c.Request().Context(), claims)
		if err != nil {
			return mapError(err)
		}

		c.Set(ContextStore, store)
		return next(c)
	}
}

func claimsFrom(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ContextClaims).(*auth.Claims)
	if !ok {
		return nil, mapError(errors.ErrNotLoggedIn)
	}
	return claims, nil
}
