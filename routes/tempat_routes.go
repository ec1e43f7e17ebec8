package routes

import (
	"inventara/middleware"

	"github.com/gofiber/fiber/v2"
)

func TempatRoutes(app *fiber.App, h Handlers) {
	tempat := app.Group("/tempats", h.jwt())
	read := h.Authz.Require(middleware.ObjMaster, middleware.ActRead)
	write := h.Authz.Require(middleware.ObjMaster, middleware.ActWrite)

	// GET untuk semua role
	tempat.Get("/", read, h.Aset.GetAllTempat)
	tempat.Get("/:id/ruangans", read, h.Aset.GetRuanganOfTempat)
	tempat.Get("/:id/kendaraans", read, h.Aset.GetKendaraanOfTempat)
	tempat.Get("/:id", read, h.Aset.GetTempatByID)

	// tulis hanya admin
	tempat.Post("/", write, h.Aset.CreateTempat)
	tempat.Post("/import", write, h.Aset.ImportTempat)
	tempat.Delete("/bulk", write, h.Aset.BulkDeleteTempat)
	tempat.Put("/:name", write, h.Aset.UpdateTempat)
	tempat.Delete("/:name", write, h.Aset.DeleteTempat)
}
