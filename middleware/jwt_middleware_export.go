package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// JWTMiddlewareForExport reads JWT from Authorization header.
// If missing, it also accepts a token from query string (?token=...).
// Scoped for download endpoints invoked via window.open.
func JWTMiddlewareForExport(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			tokenStr = c.Query("token", "")
		}
		return authenticate(c, secret, tokenStr)
	}
}
