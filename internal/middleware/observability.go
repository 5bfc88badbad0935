package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/observability"
)

const (
	observedPrefix = "/api"
	// unmatchedRoute labels API requests that fell through to the 404 fallback, keeping raw paths out of metric labels.
	unmatchedRoute = "unmatched"
)

var latencyBuckets = []struct {
	limit time.Duration
	label string
}{
	{25 * time.Millisecond, "<=25ms"},
	{50 * time.Millisecond, "<=50ms"},
	{100 * time.Millisecond, "<=100ms"},
	{250 * time.Millisecond, "<=250ms"},
	{500 * time.Millisecond, "<=500ms"},
}

// Observability records Prometheus metrics and one log line per API request.
// Server errors log at error level with the handler error attached, client errors at warn.
func Observability(logger zerolog.Logger) fiber.Handler {
	observability.RegisterMetrics()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if !strings.HasPrefix(c.Path(), observedPrefix) {
			return err
		}

		duration := time.Since(start)
		route := routeLabel(c)
		method := c.Method()
		status := c.Response().StatusCode()
		statusLabel := strconv.Itoa(status)

		observability.HTTPRequests().WithLabelValues(method, route, statusLabel).Inc()
		observability.HTTPLatency().WithLabelValues(method, route).Observe(duration.Seconds())
		class := errorClass(status)
		if class != "" {
			observability.HTTPErrors().WithLabelValues(method, route, statusLabel).Inc()
		}

		fields := logger.With().
			Str("correlation_id", GetCorrelationID(c)).
			Str("route", route).
			Str("method", method).
			Int("status", status).
			Float64("latency_ms", float64(duration)/float64(time.Millisecond)).
			Str("latency_bucket", latencyBucket(duration))
		if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
			fields = fields.Str("user_id", userID)
		}
		requestLogger := fields.Logger()

		switch class {
		case "server":
			requestLogger.Error().Err(err).Str("error_class", class).Msg("request failed")
		case "client":
			requestLogger.Warn().Str("error_class", class).Msg("request completed with client error")
		default:
			requestLogger.Info().Msg("request completed")
		}
		return err
	}
}

// routeLabel returns the matched route template, or unmatchedRoute when only middleware ran.
func routeLabel(c *fiber.Ctx) string {
	route := c.Route()
	if route == nil || route.Path == "" || route.Path == "/" {
		return unmatchedRoute
	}
	return route.Path
}

func errorClass(status int) string {
	switch {
	case status >= fiber.StatusInternalServerError:
		return "server"
	case status >= fiber.StatusBadRequest:
		return "client"
	default:
		return ""
	}
}

func latencyBucket(duration time.Duration) string {
	for _, bucket := range latencyBuckets {
		if duration <= bucket.limit {
			return bucket.label
		}
	}
	return ">500ms"
}
