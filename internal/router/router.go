package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/config"
	"github.com/noah-isme/learnroute-api/internal/handler"
	"github.com/noah-isme/learnroute-api/internal/middleware"
	"github.com/noah-isme/learnroute-api/internal/models"
	"github.com/noah-isme/learnroute-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	UserHandler           *handler.UserHandler
	MenuHandler           *handler.MenuHandler
	SkillPathHandler      *handler.SkillPathHandler
	ModuleHandler         *handler.ModuleHandler
	ResourceHandler       *handler.ResourceHandler
	EnrollmentHandler     *handler.EnrollmentHandler
	ResourceStatusHandler *handler.ResourceStatusHandler
	ActivityLogHandler    *handler.ActivityLogHandler

	// JWTMiddleware protects catalog writes when set. Nil leaves every route public.
	JWTMiddleware fiber.Handler
	// UserCreateLimiter throttles sign ups when set.
	UserCreateLimiter fiber.Handler
}

// New builds the fiber application with the common middleware stack and all routes.
func New(cfg config.Config, logger zerolog.Logger, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: handler.ErrorHandler(logger),
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    cfg.AppEnv == "development",
	})
	Register(app, cfg, deps)
	return app
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/", handler.Welcome(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	var writeGuards []fiber.Handler
	if deps.JWTMiddleware != nil {
		writeGuards = []fiber.Handler{deps.JWTMiddleware, middleware.RequireRole(models.RoleAdmin)}
	}
	var signUpGuards []fiber.Handler
	if deps.UserCreateLimiter != nil {
		signUpGuards = append(signUpGuards, deps.UserCreateLimiter)
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users"), signUpGuards...)
	}
	if deps.MenuHandler != nil {
		deps.MenuHandler.Register(api.Group("/menus"), writeGuards...)
	}
	if deps.SkillPathHandler != nil {
		deps.SkillPathHandler.Register(api.Group("/skill-paths"), writeGuards...)
	}
	if deps.ModuleHandler != nil {
		deps.ModuleHandler.Register(api.Group("/modules"), writeGuards...)
	}
	if deps.ResourceHandler != nil {
		deps.ResourceHandler.Register(api.Group("/resources"), writeGuards...)
	}
	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.Register(api.Group("/enrollments"))
	}
	if deps.ResourceStatusHandler != nil {
		deps.ResourceStatusHandler.Register(api.Group("/resource-statuses"))
	}
	if deps.ActivityLogHandler != nil {
		deps.ActivityLogHandler.Register(api.Group("/activity-logs"))
	}

	app.Use(handler.NotFound)
}
