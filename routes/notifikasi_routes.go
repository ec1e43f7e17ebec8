package routes

import (
	"inventara/middleware"

	"github.com/gofiber/fiber/v2"
)

func NotifikasiRoutes(app *fiber.App, h Handlers) {
	own := h.Authz.Require(middleware.ObjNotifikasi, middleware.ActOwn)

	notif := app.Group("/notifikasi", h.jwt())
	notif.Get("/", own, h.Notifikasi.GetOwn)
	notif.Patch("/read-all", own, h.Notifikasi.MarkAllRead)
	notif.Patch("/:id/read", own, h.Notifikasi.MarkRead)
	// kirim manual, admin only
	notif.Post("/send", h.Authz.Require(middleware.ObjNotifikasi, middleware.ActSend), h.Notifikasi.Send)

	perangkat := app.Group("/perangkat", h.jwt())
	perangkat.Post("/", own, h.Notifikasi.RegisterDevice)
	perangkat.Delete("/", own, h.Notifikasi.RemoveDevice)
}
