package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/config"
	"github.com/noah-isme/learnroute-api/internal/database"
	"github.com/noah-isme/learnroute-api/internal/handler"
	"github.com/noah-isme/learnroute-api/internal/middleware"
	"github.com/noah-isme/learnroute-api/internal/repository"
	"github.com/noah-isme/learnroute-api/internal/router"
	"github.com/noah-isme/learnroute-api/internal/service"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

// run owns every connection so deferred cleanup completes before main exits.
func run(logger zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.AppEnv == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect %s database: %w", cfg.DatabaseDriver, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.AutoMigrate(repository.AllModels()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	var menuCache *redis.Client
	if cfg.RedisURL != "" {
		client, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, menu hierarchy cache disabled")
		} else {
			menuCache = client
			defer client.Close()
		}
	}

	var publisher service.EventPublisher
	if cfg.NATSURL != "" {
		conn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, activity events disabled")
		} else {
			publisher = conn
			defer conn.Drain()
		}
	}

	validator := validation.NewValidator()
	engine := validator.Engine()

	userStore := repository.NewUserStore(db, engine)
	menuStore := repository.NewMenuStore(db, engine)
	skillPathStore := repository.NewSkillPathStore(db, engine)
	moduleStore := repository.NewModuleStore(db, engine)
	resourceStore := repository.NewResourceStore(db, engine)
	enrollmentStore := repository.NewEnrollmentStore(db, engine)
	resourceStatusStore := repository.NewResourceStatusStore(db, engine)
	activityStore := repository.NewActivityLogStore(db, engine)

	userService := service.NewUserService(userStore, cfg.BcryptCost, logger)
	menuService := service.NewMenuService(menuStore, menuCache, cfg.MenuCacheTTL, logger)
	skillPathService := service.NewSkillPathService(skillPathStore, moduleStore, logger)
	moduleService := service.NewModuleService(moduleStore, skillPathStore, resourceStore, logger)
	resourceService := service.NewResourceService(resourceStore, moduleStore, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentStore, userStore, skillPathStore, logger)
	resourceStatusService := service.NewResourceStatusService(resourceStatusStore, userStore, resourceStore, logger)
	activityService := service.NewActivityLogService(activityStore, publisher, cfg.ActivitySubject, logger)

	deps := router.Dependencies{
		UserHandler:           handler.NewUserHandler(userService, validator, logger),
		MenuHandler:           handler.NewMenuHandler(menuService, validator, logger),
		SkillPathHandler:      handler.NewSkillPathHandler(skillPathService, validator, logger),
		ModuleHandler:         handler.NewModuleHandler(moduleService, validator, logger),
		ResourceHandler:       handler.NewResourceHandler(resourceService, validator, logger),
		EnrollmentHandler:     handler.NewEnrollmentHandler(enrollmentService, validator, logger),
		ResourceStatusHandler: handler.NewResourceStatusHandler(resourceStatusService, validator, logger),
		ActivityLogHandler:    handler.NewActivityLogHandler(activityService, validator, logger),
		UserCreateLimiter:     middleware.RateLimit("users:create", cfg.RateLimitMax, cfg.RateLimitWindow),
	}
	if cfg.AuthEnabled() {
		deps.JWTMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	} else {
		logger.Warn().Msg("jwt secret not configured, catalog writes are public")
	}

	app := router.New(cfg, logger, deps)

	listenErr := make(chan error, 1)
	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("env", cfg.AppEnv).Msg("server starting")
		listenErr <- app.Listen(cfg.HTTPAddress())
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return waitForShutdown(shutdownCtx, app, listenErr, cfg.ShutdownTimeout, logger)
}

// waitForShutdown blocks until ctx is cancelled or the listener fails.
// A listener failure is returned. Otherwise the app is shut down within timeout.
func waitForShutdown(ctx context.Context, app *fiber.App, listenErr <-chan error, timeout time.Duration, logger zerolog.Logger) error {
	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
	return nil
}
