package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"emotiguide/docs"
	"emotiguide/internal/app"
	"emotiguide/internal/auth"
	"emotiguide/internal/capture"
	"emotiguide/internal/catalog"
	"emotiguide/internal/config"
	"emotiguide/internal/guidance"
	"emotiguide/internal/handler"
	"emotiguide/internal/logger"
	"emotiguide/internal/metrics"
	"emotiguide/internal/router"
	"emotiguide/internal/service"
	"emotiguide/internal/session"
	"emotiguide/internal/view"
)

// @title EmotiGuide API
// @version 1.0
// @description Student wellness dashboard backend: mood history, dashboard panels, career advice and an AI chat companion.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "emotiguide: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kvStore, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("store init: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warnw("closing store failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(reg)

	sessions := session.NewRegistry(kvStore, session.Options{
		Logger:               log,
		Observer:             recorder,
		HistoryWarnThreshold: cfg.HistoryWarnThreshold,
	})
	defer sessions.Close()

	if cfg.GuidanceAPIKey == "" {
		return errors.New("GUIDANCE_API_KEY is required")
	}
	llm, err := guidance.NewOpenAIModel(cfg.GuidanceAPIKey, cfg.GuidanceBaseURL, cfg.GuidanceModel)
	if err != nil {
		return err
	}
	guidanceClient := guidance.NewLLMClient(llm, guidance.Config{
		Timeout:    cfg.GuidanceTimeout,
		MaxRetries: cfg.GuidanceMaxRetries,
		Backoff:    cfg.GuidanceBackoff,
	}, log, recorder)

	views := view.NewRegistry(sessions, guidanceClient, catalog.Default(), view.Options{
		DefaultAcademicContext: cfg.DefaultAcademicContext,
		Logger:                 log,
		Observer:               recorder,
	})

	dispatcher := capture.NewDispatcher(sessions, cfg.CaptureQueueSize, log)
	// Queued detections are drained on Close rather than dropped on shutdown.
	dispatcher.Start(context.WithoutCancel(ctx))
	metrics.RegisterQueueDepth(reg, cfg.CaptureQueueSize, dispatcher.Len)

	if cfg.CaptureSimulator {
		sim := capture.NewSimulator(dispatcher, cfg.CaptureSimulatorProfile, cfg.CaptureSimulatorInterval, nil, log)
		go sim.Run(ctx)
		log.Infow("capture simulator enabled", "profile", cfg.CaptureSimulatorProfile, "interval", cfg.CaptureSimulatorInterval)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTokenTTL)
	authService := service.NewAuthService(sessions, jwtService)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, log, jwtService, reg, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Mood:     handler.NewMoodHandler(sessions, dispatcher),
		View:     handler.NewViewHandler(views),
		Guidance: handler.NewGuidanceHandler(views),
	})

	addr := ":" + cfg.ServerPort
	go func() {
		log.Infow("server starting", "addr", addr, "store", cfg.StoreDriver, "swagger", "/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warnw("http shutdown failed", "error", err)
	}

	dispatcher.Close()
	// Ending every session cancels in-flight advice fetches before waiting on them.
	sessions.Close()
	views.Wait()
	return nil
}
