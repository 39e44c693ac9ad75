package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"emotiguide/internal/model"
	"emotiguide/internal/view"
)

// GuidanceHandler handles career advice and chat endpoints.
type GuidanceHandler struct {
	views ControllerResolver
}

// NewGuidanceHandler creates a new guidance handler.
func NewGuidanceHandler(views ControllerResolver) *GuidanceHandler {
	return &GuidanceHandler{views: views}
}

// ChatRequest represents a chat message from the student.
type ChatRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// ChatResponse represents the reply and the updated conversation.
type ChatResponse struct {
	Reply    *model.ChatMessage  `json:"reply"`
	Messages []model.ChatMessage `json:"messages"`
}

func (h *GuidanceHandler) controller(c echo.Context) (*view.Controller, error) {
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

// RequestCareerAdvice godoc
// @Summary Request career advice
// @Description Switches to the career panel and starts fetching advice in the background. Poll GET /career/advice.
// @Tags guidance
// @Produce json
// @Security BearerAuth
// @Success 202 {object} view.CareerView
// @Failure 401 {object} errors.ErrorResponse
// @Router /career/advice [post]
func (h *GuidanceHandler) RequestCareerAdvice(c echo.Context) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	state, err := ctrl.RequestCareerAdvice()
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusAccepted, state)
}

// GetCareerAdvice godoc
// @Summary Career advice state
// @Tags guidance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} view.CareerView
// @Failure 401 {object} errors.ErrorResponse
// @Router /career/advice [get]
func (h *GuidanceHandler) GetCareerAdvice(c echo.Context) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ctrl.CareerState())
}

// ListChatMessages godoc
// @Summary Chat conversation
// @Tags guidance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ChatMessage
// @Failure 401 {object} errors.ErrorResponse
// @Router /chat/messages [get]
func (h *GuidanceHandler) ListChatMessages(c echo.Context) error {
	ctrl, err := h.controller(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ctrl.Conversation())
}

// SendChatMessage godoc
// @Summary Send a chat message
// @Description Sends the message to the AI companion. On failure the conversation is unchanged and the request can be retried.
// @Tags guidance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChatRequest true "Message"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /chat/messages [post]
func (h *GuidanceHandler) SendChatMessage(c echo.Context) error {
	var req ChatRequest
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
	reply, err := ctrl.SendChat(c.Request().Context(), req.Text)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Reply:    reply,
		Messages: ctrl.Conversation(),
	})
}
