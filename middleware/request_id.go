package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ContextRequestID is the context key for the request id.
const ContextRequestID = "requestId"

// RequestID ensures each request has a request ID. It reads X-Request-ID if
// provided; otherwise, it generates a UUID. The value is stored in the
// request context and also set in the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(ContextRequestID, rid)
		c.Set("X-Request-ID", rid)
		return c.Next()
	}
}
