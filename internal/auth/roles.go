package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/domain"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// RequireRole ensures the principal holds one of the allowed roles.
// Rejections carry the caller's home route so clients redirect there
// instead of rendering a raw error.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbiddenWithHome("insufficient role", principal.Role.HomeRoute())
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures the caller is authenticated with any role.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
