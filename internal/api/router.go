package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/animetrack/anime-tracker/docs"
	"github.com/animetrack/anime-tracker/internal/api/handler"
	"github.com/animetrack/anime-tracker/internal/api/metrics"
	"github.com/animetrack/anime-tracker/internal/api/middleware"
	"github.com/animetrack/anime-tracker/internal/api/web"
	"github.com/animetrack/anime-tracker/internal/core/service"
	"github.com/animetrack/anime-tracker/internal/infrastructure/db"
	"github.com/animetrack/anime-tracker/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, store *db.Store, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	e.Renderer = renderer

	// Each router owns its registry so tests can build several.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Dependencies ---
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(store.Users, tokens, cfg.Auth.BcryptCost, log.With().Str("component", "auth").Logger())
	animeService := service.NewAnimeService(store.Animes, log.With().Str("component", "anime").Logger())

	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
	})
	animeHandler := handler.NewAnimeHandler(animeService)
	pageHandler := handler.NewPageHandler(animeService)

	apiGate := middleware.Auth(tokens, cfg.Auth.CookieName, middleware.ModeAPI)
	uiGate := middleware.Auth(tokens, cfg.Auth.CookieName, middleware.ModeUI)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Anime routes (cookie token required) ---
	anime := e.Group("/anime", apiGate)
	anime.POST("", animeHandler.Create)
	anime.GET("", animeHandler.List)
	anime.GET("/:id", animeHandler.Get)
	anime.PUT("/:id", animeHandler.Update)
	anime.DELETE("/:id", animeHandler.Delete)

	// --- Pages ---
	e.GET("/", pageHandler.Index)
	e.GET("/dashboard", pageHandler.Dashboard, uiGate)

	// --- Health probes and ops (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(map[string]handler.Pinger{store.Driver: store})

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
