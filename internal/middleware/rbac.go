package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/learnroute-api/internal/utils"
)

// RequireRole admits requests whose "user_role" local matches one of roles.
// It must run after JWTProtected. A request without any role is treated as unauthenticated.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if normalized := strings.ToLower(strings.TrimSpace(role)); normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "Authentication required")
		}
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "Insufficient permissions")
		}
		return c.Next()
	}
}
