package middleware

import (
	"strings"

	"inventara/utils"

	"github.com/gofiber/fiber/v2"
)

// Key c.Locals yang diisi setelah token valid.
const (
	LocalUserID    = "userID"
	LocalUserRole  = "userRole"
	LocalUserName  = "userName"
	LocalUserEmail = "userEmail"
)

// JWTMiddleware hanya menerima token dari header Authorization: Bearer.
func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authenticate(c, secret, bearerToken(c))
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func authenticate(c *fiber.Ctx, secret, tokenStr string) error {
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"error":   "Token tidak ditemukan atau format salah",
		})
	}

	claims, err := utils.ParseToken(secret, tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"error":   "Token tidak valid atau kadaluarsa",
		})
	}

	c.Locals(LocalUserID, claims.ID)
	c.Locals(LocalUserRole, claims.Role)
	c.Locals(LocalUserName, claims.Name)
	c.Locals(LocalUserEmail, claims.Email)

	return c.Next()
}
