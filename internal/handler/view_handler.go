package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"emotiguide/internal/view"
)

// ControllerResolver returns the view controller of a profile.
type ControllerResolver interface {
	Get(ctx context.Context, profile string) (*view.Controller, error)
}

// ViewHandler handles panel navigation and rendering.
type ViewHandler struct {
	views ControllerResolver
}

// NewViewHandler creates a new view handler.
func NewViewHandler(views ControllerResolver) *ViewHandler {
	return &ViewHandler{views: views}
}

// SelectPanelRequest represents a panel switch.
type SelectPanelRequest struct {
	Panel string `json:"panel" validate:"required"`
}

// SettingsRequest represents the voice preferences.
type SettingsRequest struct {
	VoiceEnabled *bool  `json:"voice_enabled" validate:"required"`
	VoiceGender  string `json:"voice_gender" validate:"required,oneof=female male"`
}

func (h *ViewHandler) controller(c echo.Context) (*view.Controller, error) {
	store, err := storeFrom(c)
	if err != nil {
		return nil, err
	}
	ctrl, err := h.views.Get(c.Request().Context(), store.Profile())
	if err != nil {
		return nil, mapError(err)
	}
	return ctrl, nil
}

// GetView godoc
// @Summary Active panel
// @Tags view
// @Produce json
// @Security BearerAuth
// @Success 200 {object} view.Page
// @Failure 401 {object} errors.ErrorResponse
// @Router /view [get]
func (h *ViewHandler) GetView(c echo.Context) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ctrl.Render())
}

// SelectPanel godoc
// @Summary Switch panel
// @Tags view
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SelectPanelRequest true "Panel"
// @Success 200 {object} view.Page
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /view/panel [put]
func (h *ViewHandler) SelectPanel(c echo.Context) error {
	var req SelectPanelRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	panel, err := view.ParsePanel(req.Panel)
	if err != nil {
		return mapError(err)
	}

	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	if err := ctrl.Select(panel); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, ctrl.Render())
}

// GetPanel godoc
// @Summary Render a panel
// @Description Renders one panel without making it active.
// @Tags view
// @Produce json
// @Security BearerAuth
// @Param panel path string true "Panel" Enums(home, dashboard, music, games, chat, career)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /view/panels/{panel} [get]
func (h *ViewHandler) GetPanel(c echo.Context) error {
	panel, err := view.ParsePanel(c.Param("panel"))
	if err != nil {
		return mapError(err)
	}

	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	rendered, err := ctrl.RenderPanel(panel)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, rendered)
}

// UpdateSettings godoc
// @Summary Update voice settings
// @Tags view
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SettingsRequest true "Settings"
// @Success 200 {object} view.Settings
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /view/settings [put]
func (h *ViewHandler) UpdateSettings(c echo.Context) error {
	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	settings, err := ctrl.UpdateSettings(*req.VoiceEnabled, req.VoiceGender)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, settings)
}
