package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"emotiguide/internal/auth"
	"emotiguide/internal/errors"
	"emotiguide/internal/handler"
)

// TokenValidator checks a session token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// Handlers groups the HTTP handlers wired by Register.
type Handlers struct {
	Auth     *handler.AuthHandler
	Mood     *handler.MoodHandler
	View     *handler.ViewHandler
	Guidance *handler.GuidanceHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *zap.SugaredLogger,
	tokens TokenValidator,
	gatherer prometheus.Gatherer,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(log)))
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes, profile taken from the X-Profile-ID header
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/session", h.Mood.GetSession)
	api.GET("/moods", h.Mood.ListMoods)
	api.POST("/moods", h.Mood.RecordMood)
	api.POST("/capture/detections", h.Mood.SubmitDetection)

	// Secured routes (require a session token of the profile's current user)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  handler.ContextClaims,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return tokens.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid session token",
				Code:  "SESSION_ENDED",
			})
		},
	}), h.Auth.RequireSession)

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/me", h.Auth.Me)

	secured.GET("/view", h.View.GetView)
	secured.PUT("/view/panel", h.View.SelectPanel)
	secured.GET("/view/panels/:panel", h.View.GetPanel)
	secured.PUT("/view/settings", h.View.UpdateSettings)

	secured.POST("/career/advice", h.Guidance.RequestCareerAdvice)
	secured.GET("/career/advice", h.Guidance.GetCareerAdvice)
	secured.GET("/chat/messages", h.Guidance.ListChatMessages)
	secured.POST("/chat/messages", h.Guidance.SendChatMessage)
}

func requestLoggerConfig(log *zap.SugaredLogger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.Warnw("request failed", append(fields, "error", v.Error)...)
				return nil
			}
			log.Infow("request", fields...)
			return nil
		},
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
