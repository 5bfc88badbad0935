package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/learnroute-api/internal/observability"
)

func decodeBody(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	return metric.GetCounter().GetValue()
}

func TestObservabilityCountsAPIRequestsByRouteTemplate(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Use(Observability(zerolog.Nop()))
	app.Get("/api/menus/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	requests := observability.HTTPRequests().WithLabelValues(http.MethodGet, "/api/menus/:id", "404")
	errorsCounter := observability.HTTPErrors().WithLabelValues(http.MethodGet, "/api/menus/:id", "404")
	beforeRequests := counterValue(t, requests)
	beforeErrors := counterValue(t, errorsCounter)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/menus/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, beforeRequests+1, counterValue(t, requests))
	require.Equal(t, beforeErrors+1, counterValue(t, errorsCounter))
}

func TestObservabilityLabelsFallbackRequestsAsUnmatched(t *testing.T) {
	app := fiber.New()
	app.Use(Observability(zerolog.Nop()))
	app.Get("/api/menus/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	unmatched := observability.HTTPErrors().WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := counterValue(t, unmatched)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/unknown/"+time.Now().Format("150405.000000"), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	require.Equal(t, before+1, counterValue(t, unmatched))
}

func TestErrorClassAndLatencyBucket(t *testing.T) {
	require.Equal(t, "", errorClass(fiber.StatusOK))
	require.Equal(t, "client", errorClass(fiber.StatusTooManyRequests))
	require.Equal(t, "server", errorClass(fiber.StatusServiceUnavailable))

	require.Equal(t, "<=25ms", latencyBucket(10*time.Millisecond))
	require.Equal(t, "<=250ms", latencyBucket(250*time.Millisecond))
	require.Equal(t, ">500ms", latencyBucket(time.Second))
}

func TestCorrelationIDPropagatesIncomingHeader(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(CorrelationIDFromContext(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "abc-123", resp.Header.Get("X-Correlation-ID"))
}

func TestRateLimitRejectsBurst(t *testing.T) {
	app := fiber.New()
	app.Post("/", RateLimit("users:create", 1, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestCorrelationIDReplacesUnsafeHeader(t *testing.T) {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetCorrelationID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "bad id with spaces")
	resp, err := app.Test(req)
	require.NoError(t, err)

	id := resp.Header.Get("X-Correlation-ID")
	require.NotEqual(t, "bad id with spaces", id)
	require.Len(t, id, 36)
}
