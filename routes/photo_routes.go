package routes

import (
	"github.com/gofiber/fiber/v2"
)

// PhotoRoutes publik agar bisa dipakai langsung di tag <img>.
func PhotoRoutes(app *fiber.App, h Handlers) {
	app.Get("/photo/:kind/:name", h.Aset.ServePhoto)
}
