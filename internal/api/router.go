// Package api provides the HTTP API for PaddleSpot.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/api/handler"
	"github.com/paddlespot/paddlespot/internal/api/middleware"
	"github.com/paddlespot/paddlespot/internal/community"
	"github.com/paddlespot/paddlespot/internal/event"
	"github.com/paddlespot/paddlespot/internal/provider/resilience"
	"github.com/paddlespot/paddlespot/internal/recommend"
	"github.com/paddlespot/paddlespot/internal/session"
	"github.com/paddlespot/paddlespot/internal/spot"
	"github.com/paddlespot/paddlespot/internal/weather"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	RequireTLS  bool

	Verifier middleware.TokenVerifier

	// Database is pinged by the readiness check. Nil when running in memory.
	Database handler.Pinger
	Registry *resilience.Registry

	SpotService      *spot.Service
	SessionService   *session.Service
	CommunityService *community.Service
	EventService     *event.Service
	WeatherService   *weather.Service
	Engine           *recommend.Engine

	// RecommendTimeout bounds one recommendation pass.
	RecommendTimeout time.Duration
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "paddlespot-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS(cfg.RequireTLS))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.RequireJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Database, cfg.Registry)
	spotHandler := handler.NewSpotHandler(cfg.SpotService, cfg.Logger)
	recommendHandler := handler.NewRecommendHandler(cfg.SpotService, cfg.Engine, cfg.RecommendTimeout, cfg.Logger)
	weatherHandler := handler.NewWeatherHandler(cfg.WeatherService, cfg.Logger)
	sessionHandler := handler.NewSessionHandler(cfg.SessionService, cfg.Logger)
	communityHandler := handler.NewCommunityHandler(cfg.CommunityService, cfg.Logger)
	eventHandler := handler.NewEventHandler(cfg.EventService, cfg.Logger)

	authMiddleware := middleware.Auth(cfg.Verifier)

	writeRateLimit := middleware.RateLimitByUser(middleware.WriteRateLimit)
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/providers", opsHandler.ProviderStatus)
		})

		r.Route("/spots", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", spotHandler.ListSpots)
			r.With(authMiddleware, writeRateLimit).Post("/", spotHandler.CreateSpot)
			r.Get("/{spotId}", spotHandler.GetSpot)
			r.With(authMiddleware, middleware.RequireAdmin, writeRateLimit).Delete("/{spotId}", spotHandler.DeleteSpot)
		})

		// Recommendations and weather fan out to the weather provider.
		r.With(expensiveRateLimit).Post("/recommendations", recommendHandler.Recommend)
		r.Route("/weather", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Get("/current", weatherHandler.GetCurrent)
			r.Get("/forecast", weatherHandler.GetForecast)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))
			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", sessionHandler.ListSessions)
				r.Post("/", sessionHandler.CreateSession)
				r.Get("/stats", sessionHandler.GetStats)
				r.Delete("/{sessionId}", sessionHandler.DeleteSession)
			})
		})

		r.Route("/community/posts", func(r chi.Router) {
			r.With(standardRateLimit).Get("/", communityHandler.ListPosts)
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Use(writeRateLimit)
				r.Post("/", communityHandler.CreatePost)
				r.Post("/{postId}/like", communityHandler.ToggleLike)
				r.Post("/{postId}/replies", communityHandler.CreateReply)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.With(standardRateLimit).Get("/", eventHandler.ListEvents)
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Use(writeRateLimit)
				r.Post("/", eventHandler.CreateEvent)
				r.Post("/{eventId}/join", eventHandler.ToggleJoin)
				r.Delete("/{eventId}", eventHandler.DeleteEvent)
			})
		})
	})

	return r
}
