package middleware

import (
	"errors"
	"strings"

	"tour-booking/types"
	"tour-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys for the authenticated principal.
const (
	ContextUserID   = "userId"
	ContextUserRole = "userRole"
)

// RequireAuth verifies the session token and stores the principal's identity
// in the request context. The token is read from the session cookie first;
// a Bearer header is accepted as a fallback for non-browser clients.
// A missing token is 401, an invalid or expired one is 403.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies("token")
		if tokenStr == "" {
			auth := c.Get("Authorization")
			if parts := strings.SplitN(auth, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Unauthorized",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			message := "Forbidden"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Session expired"
			}
			return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
				Message: message,
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(ContextUserID, claims.UserID)
		c.Locals(ContextUserRole, claims.Role)
		return c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// principal holds one of the given roles. Must run after RequireAuth.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(ContextUserRole).(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Unauthorized",
				Status:  fiber.StatusUnauthorized,
			})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Forbidden",
			Status:  fiber.StatusForbidden,
		})
	}
}

// CurrentUserID returns the authenticated user's id from the context.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(ContextUserID).(uint)
	return id, ok
}
