package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware mengizinkan origin dari CORS_ORIGINS. Daftar kosong berarti
// semua origin tanpa credentials.
func CorsMiddleware(origins []string) fiber.Handler {
	cfg := cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,OPTIONS",
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = "*"
		return cors.New(cfg)
	}
	cfg.AllowOrigins = strings.Join(origins, ",")
	cfg.AllowCredentials = true
	return cors.New(cfg)
}
