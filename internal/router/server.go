package router

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/cache"
	"volunteerhub/internal/config"
	"volunteerhub/internal/handler"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/service"
)

// Server is the assembled HTTP application.
type Server struct {
	Echo *echo.Echo
	// Auth is exposed for the background purge of expired sign-in tokens.
	Auth service.AuthService
}

// New builds repositories, services and handlers over gormDB and the cache
// and registers them on a fresh echo instance.
func New(cfg *config.Config, log zerolog.Logger, gormDB *gorm.DB, cacheClient *cache.Client, sender service.LinkSender) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	credRepo := repository.NewCredentialRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	locationRepo := repository.NewEventLocationRepository(gormDB)
	tagRepo := repository.NewEventTagRepository(gormDB)
	registrationRepo := repository.NewEventRegistrationRepository(gormDB)
	metricRepo := repository.NewMetricRepository(gormDB)
	skillRepo := repository.NewSkillRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, credRepo, jwtService, tokenStore, sender, log)
	strict := cfg.Auth.StrictCreate

	Register(e, cfg, log, auth.Identity(jwtService, tokenStore), Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(service.NewUserService(userRepo)),
		Event:        handler.NewEventHandler(service.NewEventService(eventRepo)),
		Location:     handler.NewEventLocationHandler(service.NewEventLocationService(locationRepo, cacheClient, strict)),
		Tag:          handler.NewEventTagHandler(service.NewEventTagService(tagRepo)),
		Registration: handler.NewRegistrationHandler(service.NewRegistrationService(registrationRepo, strict)),
		Metric:       handler.NewMetricHandler(service.NewMetricService(metricRepo)),
		Skill:        handler.NewSkillHandler(service.NewSkillService(skillRepo)),
	})

	return &Server{Echo: e, Auth: authService}
}
