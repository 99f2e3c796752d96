package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"volunteerhub/internal/config"
	"volunteerhub/internal/handler"
	"volunteerhub/internal/metrics"
	"volunteerhub/internal/telemetry"
)

// Handlers groups the HTTP handlers served under /api.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Event        *handler.EventHandler
	Location     *handler.EventLocationHandler
	Tag          *handler.EventTagHandler
	Registration *handler.RegistrationHandler
	Metric       *handler.MetricHandler
	Skill        *handler.SkillHandler
}

// Register wires routes and middleware. identity resolves the caller and
// never rejects a request on its own.
func Register(e *echo.Echo, cfg *config.Config, log zerolog.Logger, identity echo.MiddlewareFunc, h Handlers) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ulid.Make().String() },
	}))
	e.Use(middleware.Recover())
	e.Use(telemetry.Middleware())
	e.Use(requestLogger(log))
	e.Use(metrics.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", identity)
	if cfg.RateLimit.RPS > 0 {
		api.Use(rateLimiter(cfg.RateLimit))
	}

	// Auth routes
	api.POST("/auth/email", h.Auth.RequestSignIn)
	api.POST("/auth/email/verify", h.Auth.VerifySignIn)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.POST("/auth/accounts", h.Auth.LinkAccount)
	api.GET("/auth/accounts", h.Auth.Accounts)

	// User routes
	api.GET("/users/exists", h.User.Exists)
	api.POST("/users", h.User.Create)
	api.GET("/users/me", h.User.Me)
	api.PATCH("/users/me", h.User.Update)
	api.DELETE("/users/me", h.User.Delete)

	// Event routes
	api.GET("/events", h.Event.GetAll)
	api.GET("/events/approved", h.Event.GetApproved)
	api.GET("/events/pending", h.Event.GetPending)
	api.GET("/events/cancelled", h.Event.GetCancelled)
	api.GET("/events/organiser/:userId", h.Event.GetByOrganiser)
	api.POST("/events/search", h.Event.Search)
	api.GET("/events/:id", h.Event.GetOne)
	api.POST("/events", h.Event.Create)
	api.PATCH("/events", h.Event.UpdateMany)
	api.PATCH("/events/:id", h.Event.Update)
	api.POST("/events/:id/approve", h.Event.Approve)
	api.POST("/events/:id/cancel", h.Event.Cancel)
	api.DELETE("/events/:id", h.Event.Delete)

	// Location routes
	api.GET("/locations", h.Location.GetAll)
	api.POST("/locations/search", h.Location.Search)
	api.GET("/locations/:id", h.Location.GetOne)
	api.POST("/locations", h.Location.Create)
	api.PATCH("/locations/:id", h.Location.Update)
	api.DELETE("/locations/:id", h.Location.Delete)

	// Tag routes
	api.GET("/tags/:eventId", h.Tag.GetByEvent)
	api.GET("/tags/:eventId/:name", h.Tag.GetOne)
	api.POST("/tags", h.Tag.Create)
	api.POST("/tags/batch", h.Tag.CreateMany)
	api.DELETE("/tags/:eventId/:name", h.Tag.Delete)

	// Registration routes
	api.GET("/registrations/participant/:participant", h.Registration.GetByParticipant)
	api.GET("/registrations/:eventId", h.Registration.GetByEvent)
	api.GET("/registrations/:eventId/:participant", h.Registration.GetOne)
	api.POST("/registrations", h.Registration.Create)
	api.DELETE("/registrations/:eventId/:participant", h.Registration.Delete)

	// Metric routes
	api.GET("/metrics", h.Metric.GetAll)
	api.POST("/metrics/search", h.Metric.Search)
	api.GET("/metrics/event/:eventId", h.Metric.GetByEvent)
	api.GET("/metrics/:id", h.Metric.GetOne)
	api.POST("/metrics", h.Metric.Create)
	api.POST("/metrics/batch", h.Metric.CreateMany)
	api.PATCH("/metrics/:id", h.Metric.Update)
	api.DELETE("/metrics/:id", h.Metric.Delete)

	// Skill routes
	api.GET("/skills/user/:userId", h.Skill.GetByUser)
	api.GET("/skills/:id", h.Skill.GetOne)
	api.POST("/skills", h.Skill.Create)
	api.DELETE("/skills/:id", h.Skill.Delete)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func rateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RPS),
		Burst:     cfg.Burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}
