package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"volunteerhub/docs"
	"volunteerhub/internal/cache"
	"volunteerhub/internal/config"
	"volunteerhub/internal/db"
	"volunteerhub/internal/metrics"
	"volunteerhub/internal/router"
	"volunteerhub/internal/service"
	"volunteerhub/internal/telemetry"
)

// purgeInterval is how often expired sign-in tokens are removed.
const purgeInterval = time.Hour

var rootCmd = &cobra.Command{
	Use:   "volunteerhub",
	Short: "VolunteerHub API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		logger := config.NewLogger(cfg.Logging)
		gormDB, err := db.Open(cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("database init: %w", err)
		}
		if err := db.Migrate(gormDB, cfg.Database.Reset); err != nil {
			return err
		}
		logger.Info().Bool("reset", cfg.Database.Reset).Msg("schema migrated")
		return nil
	},
}

// @title VolunteerHub API
// @version 1.0
// @description Community volunteering events, locations, registrations and contribution metrics.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting volunteerhub")

	metrics.Init()
	if cfg.Server.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.Server.SwaggerHost, "https://"), "http://")
	}

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("tracing init: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	gormDB, err := db.Open(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	if err := db.Migrate(gormDB, cfg.Database.Reset); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, caching and token revocation degraded")
	}

	server := router.New(cfg, logger, gormDB, cacheClient, service.NewLogLinkSender(logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Server.Port
		logger.Info().Str("addr", addr).Str("swagger", swaggerURL(cfg.Server)).Msg("listening")
		if err := server.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server start: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Echo.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		purgeLoop(gctx, server.Auth, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func purgeLoop(ctx context.Context, authService service.AuthService, logger zerolog.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := authService.PurgeExpired(ctx); err != nil {
				logger.Error().Err(err).Msg("purge expired verification tokens")
			}
		}
	}
}

func swaggerURL(cfg config.ServerConfig) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.Port
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
