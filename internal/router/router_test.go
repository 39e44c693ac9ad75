package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emotiguide/internal/auth"
	"emotiguide/internal/capture"
	"emotiguide/internal/catalog"
	"emotiguide/internal/errors"
	"emotiguide/internal/handler"
	"emotiguide/internal/kv"
	"emotiguide/internal/metrics"
	"emotiguide/internal/model"
	"emotiguide/internal/service"
	"emotiguide/internal/session"
	"emotiguide/internal/view"
)

type stubGuidance struct{}

func (stubGuidance) FetchCareerAdvice(_ context.Context, emotion model.Emotion, academicContext string) (*model.CareerAdvice, error) {
	return &model.CareerAdvice{
		Title:       "Data Analyst",
		Description: "Advice for a " + academicContext + " feeling " + string(emotion),
		Steps:       []string{"Learn SQL"},
	}, nil
}

func (stubGuidance) SendChatMessage(_ context.Context, _ []model.ChatMessage, text string) (*model.ChatMessage, error) {
	return &model.ChatMessage{Role: model.ChatRoleModel, Text: "echo: " + text, Timestamp: 1}, nil
}

type testServer struct {
	e        *echo.Echo
	sessions *session.Registry
	views    *view.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop().Sugar()
	reg := prometheus.NewRegistry()
	recorder := metrics.New(reg)

	sessions := session.NewRegistry(kv.NewMemory(), session.Options{Observer: recorder})
	t.Cleanup(sessions.Close)
	views := view.NewRegistry(sessions, stubGuidance{}, catalog.Default(), view.Options{Observer: recorder})
	t.Cleanup(views.Wait)
	// Unbuffered and never started, so every detection is applied synchronously.
	dispatcher := capture.NewDispatcher(sessions, 0, log)

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	authService := service.NewAuthService(sessions, jwtService)

	e := echo.New()
	Register(e, log, jwtService, reg, Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Mood:     handler.NewMoodHandler(sessions, dispatcher),
		View:     handler.NewViewHandler(views),
		Guidance: handler.NewGuidanceHandler(views),
	})
	return &testServer{e: e, sessions: sessions, views: views}
}

func (s *testServer) do(t *testing.T, method, path, body, profile, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if profile != "" {
		req.Header.Set(handler.ProfileHeader, profile)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, profile, body string) handler.AuthResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", body, profile, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errors.ErrorResponse {
	t.Helper()
	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	s.do(t, http.MethodPost, "/api/moods", `{"emotion":"happy","confidence":0.9}`, "", "")
	rec = s.do(t, http.MethodGet, "/metrics", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `emotiguide_session_moods_recorded_total{emotion="Happy"} 1`)
}

func TestLoginEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{name: "defaults", body: `{"password":"pw"}`, expectedStatus: http.StatusOK},
		{name: "register", body: `{"mode":"register","password":"pw","fullName":"Akash Thakur","email":"akash@example.com"}`, expectedStatus: http.StatusOK},
		{name: "missing password", body: `{"username":"akash"}`, expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_ERROR"},
		{name: "register without email", body: `{"mode":"register","password":"pw","fullName":"Akash"}`, expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_ERROR"},
		{name: "bad email", body: `{"password":"pw","email":"nope"}`, expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_ERROR"},
		{name: "malformed body", body: `{"password":`, expectedStatus: http.StatusBadRequest, expectedCode: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			rec := s.do(t, http.MethodPost, "/api/auth/login", tt.body, "", "")

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
				return
			}
			var resp handler.AuthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.AccessToken)
			require.NotNil(t, resp.User)
			assert.NotEmpty(t, resp.User.ID)
		})
	}
}

func TestInvalidProfileHeader(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/session", "", "bad:profile", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
}

func TestMoodFlow(t *testing.T) {
	s := newTestServer(t)
	login := s.login(t, "lab", `{"username":"","password":"pw"}`)
	assert.Equal(t, session.DefaultUsername, login.User.Username)

	rec := s.do(t, http.MethodPost, "/api/moods", `{"emotion":"Happy","confidence":0.87}`, "lab", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var entry model.MoodEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, login.User.ID, entry.UserID)
	assert.Equal(t, 0.87, entry.Confidence)

	rec = s.do(t, http.MethodPost, "/api/moods", `{"emotion":"Bored","confidence":0.5}`, "lab", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/moods", `{"emotion":"Sad","confidence":1.5}`, "lab", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/moods", `{"emotion":"Sad"}`, "lab", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "confidence is required")

	rec = s.do(t, http.MethodGet, "/api/session", "", "lab", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, login.User.ID, snap.SessionID)
	assert.Equal(t, model.EmotionHappy, snap.CurrentEmotion)
	assert.Len(t, snap.History, 1)

	rec = s.do(t, http.MethodGet, "/api/moods", "", "other", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDetectionEndpoint(t *testing.T) {
	s := newTestServer(t)
	login := s.login(t, "lab", `{"password":"pw"}`)

	rec := s.do(t, http.MethodPost, "/api/capture/detections", `{"session_id":"`+login.User.ID+`","emotion":"surprised","confidence":0.66}`, "lab", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp handler.DetectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "recorded", resp.Status)
	assert.Equal(t, model.EmotionSurprised, resp.Entry.Emotion)

	rec = s.do(t, http.MethodPost, "/api/capture/detections", `{"session_id":"anon","emotion":"Sad","confidence":0.5}`, "lab", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "STALE_SESSION", decodeError(t, rec).Code)
}

func TestSecuredRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/me", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "SESSION_ENDED", decodeError(t, rec).Code)

	rec = s.do(t, http.MethodGet, "/api/me", "", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	first := s.login(t, "lab", `{"password":"pw","major":"Physics"}`)
	rec = s.do(t, http.MethodGet, "/api/me", "", "", first.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), first.User.ID)

	second := s.login(t, "lab", `{"password":"pw"}`)
	rec = s.do(t, http.MethodGet, "/api/me", "", "", first.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a newer login ends the previous token")

	rec = s.do(t, http.MethodPost, "/api/auth/logout", "", "", second.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/view", "", "", second.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/session", "", "lab", "")
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Nil(t, snap.User)
	assert.Equal(t, model.AnonymousUserID, snap.SessionID)
}

func TestViewEndpoints(t *testing.T) {
	s := newTestServer(t)
	login := s.login(t, "lab", `{"password":"pw"}`)

	rec := s.do(t, http.MethodGet, "/api/view", "", "", login.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"active":"home"`)
	assert.Contains(t, rec.Body.String(), "No mood detected yet.")

	rec = s.do(t, http.MethodPut, "/api/view/panel", `{"panel":"music"}`, "", login.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lo-Fi Study")

	rec = s.do(t, http.MethodPut, "/api/view/panel", `{"panel":"settings"}`, "", login.AccessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/view/panels/dashboard", "", "", login.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)

	rec = s.do(t, http.MethodPut, "/api/view/settings", `{"voice_enabled":false,"voice_gender":"male"}`, "", login.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"voice_enabled":false,"voice_gender":"male"}`, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/view/settings", `{"voice_gender":"male"}`, "", login.AccessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuidanceEndpoints(t *testing.T) {
	s := newTestServer(t)
	login := s.login(t, "lab", `{"password":"pw"}`)

	rec := s.do(t, http.MethodPost, "/api/career/advice", "", "", login.AccessToken)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"loading"`)

	s.views.Wait()
	rec = s.do(t, http.MethodGet, "/api/career/advice", "", "", login.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var career view.CareerView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &career))
	assert.Equal(t, view.CareerLoaded, career.Status)
	assert.Equal(t, "Advice for a BCA Student feeling Neutral", career.Advice.Description)

	rec = s.do(t, http.MethodPost, "/api/chat/messages", `{"text":"hello"}`, "", login.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var chat handler.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &chat))
	assert.Equal(t, "echo: hello", chat.Reply.Text)
	assert.Len(t, chat.Messages, 2)

	rec = s.do(t, http.MethodPost, "/api/chat/messages", `{"text":""}`, "", login.AccessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/chat/messages", "", "", login.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var messages []model.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	assert.Len(t, messages, 2)
}

func TestSecuredRoutesRejectMalformedClaims(t *testing.T) {
	s := newTestServer(t)
	login := s.login(t, "", `{"password":"pw"}`)

	sign := func(claims *auth.Claims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return token
	}
	now := time.Now()

	tests := []struct {
		name  string
		token string
	}{
		{
			name: "empty profile",
			token: sign(&auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   login.User.ID,
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}}),
		},
		{
			name: "empty subject",
			token: sign(&auth.Claims{Profile: session.DefaultProfile, RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}}),
		},
		{
			name: "expired",
			token: sign(&auth.Claims{Profile: session.DefaultProfile, RegisteredClaims: jwt.RegisteredClaims{
				Subject:   login.User.ID,
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			}}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/me", "", "", tt.token)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "SESSION_ENDED", decodeError(t, rec).Code)
		})
	}

	rec := s.do(t, http.MethodGet, "/api/me", "", "", login.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code, "the issued token stays valid")
}
