package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"emotiguide/internal/capture"
	"emotiguide/internal/errors"
	"emotiguide/internal/model"
	"emotiguide/internal/session"
)

// SessionResolver returns the session store of a profile.
type SessionResolver interface {
	Get(ctx context.Context, profile string) (*session.Store, error)
}

// DetectionSubmitter accepts detections from the capture loop.
type DetectionSubmitter interface {
	Submit(ctx context.Context, det capture.Detection) (queued bool, entry *model.MoodEntry, err error)
}

// MoodHandler handles session and mood endpoints.
type MoodHandler struct {
	sessions   SessionResolver
	detections DetectionSubmitter
}

// NewMoodHandler creates a new mood handler.
func NewMoodHandler(sessions SessionResolver, detections DetectionSubmitter) *MoodHandler {
	return &MoodHandler{sessions: sessions, detections: detections}
}

// RecordMoodRequest represents a mood reading.
type RecordMoodRequest struct {
	Emotion    string   `json:"emotion" validate:"required"`
	Confidence *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
	Note       string   `json:"note" validate:"max=500"`
}

// DetectionRequest represents a reading posted by the capture loop.
type DetectionRequest struct {
	SessionID  string   `json:"session_id" validate:"max=64"`
	Emotion    string   `json:"emotion" validate:"required"`
	Confidence *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
	Note       string   `json:"note" validate:"max=500"`
}

// DetectionResponse represents the outcome of a submitted detection.
type DetectionResponse struct {
	Status string           `json:"status"`
	Entry  *model.MoodEntry `json:"entry,omitempty"`
}

// GetSession godoc
// @Summary Load session
// @Description Current user, mood history, current emotion, session id and load warnings of the profile.
// @Tags session
// @Produce json
// @Param X-Profile-ID header string false "Profile id" default(default)
// @Success 200 {object} session.Snapshot
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /session [get]
func (h *MoodHandler) GetSession(c echo.Context) error {
	store, err := h.sessions.Get(c.Request().Context(), profileFrom(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, store.Snapshot())
}

// ListMoods godoc
// @Summary Mood history
// @Tags moods
// @Produce json
// @Param X-Profile-ID header string false "Profile id" default(default)
// @Success 200 {array} model.MoodEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /moods [get]
func (h *MoodHandler) ListMoods(c echo.Context) error {
	store, err := h.sessions.Get(c.Request().Context(), profileFrom(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, store.History())
}

// RecordMood godoc
// @Summary Record a mood
// @Description Appends a reading for the current session and persists the history.
// @Tags moods
// @Accept json
// @Produce json
// @Param X-Profile-ID header string false "Profile id" default(default)
// @Param request body RecordMoodRequest true "Mood reading"
// @Success 201 {object} model.MoodEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /moods [post]
func (h *MoodHandler) RecordMood(c echo.Context) error {
	var req RecordMoodRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	emotion, ok := model.ParseEmotion(req.Emotion)
	if !ok {
		return mapError(errors.NewValidationError("emotion", errors.ErrInvalidEmotion))
	}

	store, err := h.sessions.Get(c.Request().Context(), profileFrom(c))
	if err != nil {
		return mapError(err)
	}

	entry, err := store.Record(c.Request().Context(), session.Detection{
		Emotion:    emotion,
		Confidence: *req.Confidence,
		Note:       req.Note,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, entry)
}

// SubmitDetection godoc
// @Summary Submit a capture detection
// @Description Queues a detection for asynchronous recording. When the queue is full it is recorded immediately.
// @Description A detection tagged with a session that has ended is rejected.
// @Tags capture
// @Accept json
// @Produce json
// @Param X-Profile-ID header string false "Profile id" default(default)
// @Param request body DetectionRequest true "Detection"
// @Success 201 {object} DetectionResponse
// @Success 202 {object} DetectionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /capture/detections [post]
func (h *MoodHandler) SubmitDetection(c echo.Context) error {
	var req DetectionRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	emotion, ok := model.ParseEmotion(req.Emotion)
	if !ok {
		return mapError(errors.NewValidationError("emotion", errors.ErrInvalidEmotion))
	}

	profile, err := session.NormalizeProfile(profileFrom(c))
	if err != nil {
		return mapError(err)
	}

	queued, entry, err := h.detections.Submit(c.Request().Context(), capture.Detection{
		Profile:    profile,
		SessionID:  req.SessionID,
		Emotion:    emotion,
		Confidence: *req.Confidence,
		Note:       req.Note,
	})
	if err != nil {
		return mapError(err)
	}

	if queued {
		return c.JSON(http.StatusAccepted, DetectionResponse{Status: "queued"})
	}
	return c.JSON(http.StatusCreated, DetectionResponse{Status: "recorded", Entry: entry})
}
