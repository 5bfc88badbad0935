package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/learnroute-api/internal/config"
	"github.com/noah-isme/learnroute-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}

		return utils.SendSuccess(c, "Server is running", payload)
	}
}

// Welcome answers the root route.
func Welcome(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "Welcome to "+cfg.AppName, fiber.Map{"docs": "/api/health"})
	}
}

// NotFound is the fallback for unknown routes.
func NotFound(c *fiber.Ctx) error {
	return utils.SendNotFound(c, "Route not found")
}
