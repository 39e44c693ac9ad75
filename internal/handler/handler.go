package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"emotiguide/internal/errors"
	"emotiguide/internal/session"
)

const (
	// ProfileHeader selects the profile of public routes.
	ProfileHeader = "X-Profile-ID"
	// ContextClaims is where the JWT middleware stores the validated claims.
	ContextClaims = "claims"
	// ContextStore is where RequireSession stores the caller's session store.
	ContextStore = "session_store"
)

func profileFrom(c echo.Context) string {
	return c.Request().Header.Get(ProfileHeader)
}

func storeFrom(c echo.Context) (*session.Store, error) {
	store, ok := c.Get(ContextStore).(*session.Store)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing session",
			Code:  "SESSION_ENDED",
		})
	}
	return store, nil
}

func mapError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "VALIDATION_ERROR",
	})
}

func validationFailed(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}
