package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bienestar-app/bienestar-api/internal/utils"
	"github.com/bienestar-app/bienestar-api/pkg/token"
)

// Context local keys populated by JWTProtected.
const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
	LocalIsStaff  = "is_staff"
	LocalFullName = "full_name"
)

// JWTProtected returns a middleware that validates bearer tokens and binds
// the resolved identity to the request context.
func JWTProtected(issuer *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		claims, err := issuer.Validate(tokenString)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserRole, strings.ToLower(strings.TrimSpace(claims.Role)))
		c.Locals(LocalIsStaff, claims.IsStaff)
		c.Locals(LocalFullName, claims.FullName)

		return c.Next()
	}
}
