package routes

import (
	"inventara/controllers"
	"inventara/middleware"

	"github.com/gofiber/fiber/v2"
)

// RiwayatRoutes: log aktivitas user (admin only).
func RiwayatRoutes(app *fiber.App, h Handlers) {
	app.Get("/logs", h.jwt(), h.Authz.Require(middleware.ObjLog, middleware.ActRead), controllers.GetLogs)
}
