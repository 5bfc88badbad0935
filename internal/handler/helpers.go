package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/middleware"
	"github.com/noah-isme/learnroute-api/internal/service"
	"github.com/noah-isme/learnroute-api/internal/utils"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

var errInvalidBody = errors.New("invalid request body")

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

// parseQueryBool returns nil when the parameter is absent.
func parseQueryBool(c *fiber.Ctx, key string) (*bool, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// listQuery reads page, limit, sort and search. Out of range values are clamped by the store.
func listQuery(c *fiber.Ctx) (dto.ListQuery, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return dto.ListQuery{}, errors.New("page must be an integer")
	}
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return dto.ListQuery{}, errors.New("limit must be an integer")
	}
	return dto.ListQuery{
		Page:   page,
		Limit:  limit,
		Sort:   strings.TrimSpace(c.Query("sort")),
		Search: strings.TrimSpace(c.Query("search")),
	}, nil
}

// queryID reads an optional identifier filter. ok is false for a malformed value.
func queryID(c *fiber.Ctx, key string) (string, bool) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return "", true
	}
	return value, validation.ID(value)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// bindJSON decodes the body into target. Type mismatches come back as validation.Errors.
func bindJSON(c *fiber.Ctx, target interface{}) error {
	if len(c.Body()) == 0 {
		return errInvalidBody
	}
	if err := c.BodyParser(target); err != nil {
		if fields := validation.FromDecode(err); fields != nil {
			return fields
		}
		return errInvalidBody
	}
	return nil
}

func pathID(c *fiber.Ctx, param string) (string, bool) {
	id := strings.TrimSpace(c.Params(param))
	return id, validation.ID(id)
}

// respondError maps a failure to the response envelope. Server errors are logged and answered with failure.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, failure string) error {
	if errors.Is(err, errInvalidBody) {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		return utils.SendValidationError(c, "Validation failed", fields)
	}

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case service.KindValidation:
			return utils.SendValidationError(c, svcErr.Message, svcErr.Fields)
		case service.KindNotFound:
			return utils.SendNotFound(c, svcErr.Message)
		case service.KindConflict, service.KindBadReference:
			return utils.SendError(c, fiber.StatusBadRequest, svcErr.Message)
		case service.KindUnauthorized:
			return utils.SendError(c, fiber.StatusUnauthorized, svcErr.Message)
		case service.KindForbidden:
			return utils.SendError(c, fiber.StatusForbidden, svcErr.Message)
		}
	}

	requestLogger(logger, c).Error().Err(err).Msg(failure)
	return utils.SendError(c, fiber.StatusInternalServerError, failure)
}

// guarded prepends guards to a route's handler chain.
func guarded(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, h)
}

func toPagination(p dto.Pagination) utils.Pagination {
	return utils.Pagination{Page: p.Page, Limit: p.Limit, Total: p.Total, Pages: p.Pages}
}
